package cmakeext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var nativeLibraryExtensions = []string{".so", ".pyd", ".dll", ".dylib", ".bundle"}

// findBuiltExtensions returns the native libraries for ext found directly in
// extDir. A file matches when its name starts with the module's base name and
// carries a native library extension, so both "_stk.so" and
// "_stk.cpython-312-x86_64-linux-gnu.so" are found.
func findBuiltExtensions(extDir string, ext Extension) ([]string, error) {
	entries, err := os.ReadDir(extDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", extDir, err)
	}

	base := ext.baseName()
	var found []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !isNativeLibrary(name) {
			continue
		}
		if name != base && !strings.HasPrefix(name, base+".") {
			continue
		}
		found = append(found, filepath.Join(extDir, name))
	}

	sort.Strings(found)
	return found, nil
}

func isNativeLibrary(path string) bool {
	return MatchesExtension(path, nativeLibraryExtensions...)
}

// copyToSource copies built modules into root under the extension's package
// directories and returns the destination paths.
func copyToSource(root string, ext Extension, built []string) ([]string, error) {
	if root == "" || len(built) == 0 {
		return nil, nil
	}

	destDir := filepath.Join(root, packageDirs(ext.Name))

	var installed []string
	for _, src := range built {
		dest := filepath.Join(destDir, filepath.Base(src))
		if samePath(src, dest) {
			installed = append(installed, dest)
			continue
		}
		if err := copyFile(src, dest); err != nil {
			return installed, fmt.Errorf("copy %s to %s: %w", src, dest, err)
		}
		installed = append(installed, dest)
	}
	return installed, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
