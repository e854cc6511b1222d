package cmakeext

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Layout is the packaging tool's view of where build products go.
type Layout struct {
	// BuildTemp is the scratch directory cmake configures and builds in.
	BuildTemp string

	// BuildLib is the root the packaging tool collects built modules from.
	BuildLib string

	// Suffix is the file suffix of a compiled module, e.g. ".so" or
	// ".cpython-312-x86_64-linux-gnu.so".
	Suffix string

	// Inplace places modules under PackageRoot instead of BuildLib.
	Inplace     bool
	PackageRoot string

	// CopyToSource, if set, receives a copy of every built module under its
	// package directories after a successful build.
	CopyToSource string
}

// DefaultLayout returns the layout for the host platform.
func DefaultLayout() Layout {
	return LayoutFor(runtime.GOOS, runtime.GOARCH)
}

// LayoutFor returns the default layout for goos/goarch.
func LayoutFor(goos, goarch string) Layout {
	plat := goos + "-" + goarch
	suffix := ".so"
	if goos == platformWindows {
		suffix = ".pyd"
	}
	return Layout{
		BuildTemp:   filepath.Join("build", "temp."+plat),
		BuildLib:    filepath.Join("build", "lib."+plat),
		Suffix:      suffix,
		PackageRoot: ".",
	}
}

// ExtFullPath returns the path of the compiled module for a dotted name.
//
// # Parameters
//
//   - name: Dotted module name. Every component but the last is a package
//     directory.
//
// # Returns
//
// The module path under BuildLib, or under PackageRoot when Inplace is set.
// The path is relative when the root is relative.
//
// # Example
//
//	l := Layout{BuildLib: "build/lib.linux-x86_64", Suffix: ".so"}
//	l.ExtFullPath("_stk")         // build/lib.linux-x86_64/_stk.so
//	l.ExtFullPath("pkg.sub._ext") // build/lib.linux-x86_64/pkg/sub/_ext.so
func (l Layout) ExtFullPath(name string) string {
	parts := strings.Split(name, ".")
	file := parts[len(parts)-1] + l.Suffix

	root := l.BuildLib
	if l.Inplace {
		root = l.PackageRoot
	}

	elems := append([]string{root}, parts[:len(parts)-1]...)
	elems = append(elems, file)
	return filepath.Join(elems...)
}

// ExtDir returns the absolute directory the compiled module must land in.
// It is handed to cmake as CMAKE_LIBRARY_OUTPUT_DIRECTORY.
func (l Layout) ExtDir(name string) (string, error) {
	abs, err := filepath.Abs(l.ExtFullPath(name))
	if err != nil {
		return "", fmt.Errorf("resolve output path for %s: %w", name, err)
	}
	return filepath.Dir(abs), nil
}

// packageDirs returns the package directories of a dotted name, relative.
func packageDirs(name string) string {
	parts := strings.Split(name, ".")
	return filepath.Join(parts[:len(parts)-1]...)
}
