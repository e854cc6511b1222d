//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the cmakeext command into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/cmakeext", "./cmd/cmakeext")
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Ext builds the CLI and uses it to build the default extension.
func Ext() error {
	mg.Deps(Build)
	return sh.RunV("bin/cmakeext", "build-ext")
}

// Clean removes the binary and the extension build tree.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("build")
}
