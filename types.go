package cmakeext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode is the CMake configuration selector passed as CMAKE_BUILD_TYPE and
// --config.
type Mode string

const (
	ModeDebug   Mode = "Debug"
	ModeRelease Mode = "Release"
)

// ModeFor returns ModeDebug when debug is set and ModeRelease otherwise.
func ModeFor(debug bool) Mode {
	if debug {
		return ModeDebug
	}
	return ModeRelease
}

// Upper returns the mode name as used in per-configuration CMake variables,
// e.g. "RELEASE" in CMAKE_LIBRARY_OUTPUT_DIRECTORY_RELEASE.
func (m Mode) Upper() string {
	return strings.ToUpper(string(m))
}

// ResolveDebug applies the build mode policy: an explicit tool-level debug
// indicator wins when it is non-nil, otherwise the environment value is used.
func ResolveDebug(toolDebug *bool, envDebug bool) bool {
	if toolDebug != nil {
		return *toolDebug
	}
	return envDebug
}

// Extension names a CMake-backed extension module.
type Extension struct {
	// Name is the dotted module name, e.g. "_stk" or "pkg.sub._ext".
	Name string

	// SourceDir is the absolute directory containing CMakeLists.txt.
	SourceDir string
}

// NewExtension returns an Extension whose source directory is made absolute.
func NewExtension(name, sourceDir string) (Extension, error) {
	if name == "" {
		return Extension{}, fmt.Errorf("extension name is empty")
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return Extension{}, fmt.Errorf("resolve source dir for %s: %w", name, err)
	}
	return Extension{Name: name, SourceDir: abs}, nil
}

// baseName returns the last component of the dotted module name.
func (e Extension) baseName() string {
	parts := strings.Split(e.Name, ".")
	return parts[len(parts)-1]
}

// BuildConfig contains configuration for one build invocation.
//
// It is constructed once by the caller. The driver does not consult the
// process environment for any of these values.
type BuildConfig struct {
	// Build mode
	Debug bool // Debug configuration instead of Release

	// Arguments
	ExtraArgs []string          // Appended verbatim after the fixed configure flags
	BuildArgs []string          // Appended after --config <mode> in the compile step
	Env       map[string]string // Extra environment for both cmake invocations

	// Toolchain
	Interpreter string // Passed as PYTHON_EXECUTABLE when set
	Generator   string // Passed as -G when set
	Parallel    int    // Number of parallel jobs for --parallel (0 = cmake default)

	// Paths
	Layout Layout

	// Platform overrides runtime.GOOS for flag assembly. Empty means the host.
	GOOS string

	Verbose bool
}

// Mode returns the resolved build mode.
func (c *BuildConfig) Mode() Mode {
	return ModeFor(c.Debug)
}

// StepResult describes one external tool invocation.
type StepResult struct {
	Command  []string // Tool followed by its arguments
	Dir      string   // Working directory
	Output   []string // Combined stdout/stderr lines
	ExitCode int
}

// BuildResult contains the output and status of building one extension.
type BuildResult struct {
	Extension     string   // Dotted extension name
	Success       bool     // True if configure and compile both succeeded
	Mode          Mode     // Resolved build mode
	ConfigureArgs []string // Flags passed to the configure step
	BuildArgs     []string // Arguments passed to the compile step
	Output        []string // Lines of output from both steps
	Extensions    []string // Paths to built native libraries
	Installed     []string // Copies placed under Layout.CopyToSource
	Error         error    // Error if the build failed, nil otherwise
}
