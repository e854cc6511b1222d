package cmakeext

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
)

const platformWindows = "windows"

// AssembleFlags builds the configure flags for one extension.
//
// # Parameters
//
//   - project: Supplies the fixed defines and the debug-info option
//   - config: Supplies the mode, interpreter, generator and extra arguments
//   - extDir: Absolute directory the compiled module must be written to
//
// # Returns
//
// The flags in a fixed order:
//  1. the project's defines
//  2. the project's debug-info option (ON for Debug, OFF for Release)
//  3. -DCMAKE_BUILD_TYPE=<mode>
//  4. -DPYTHON_EXECUTABLE=<interpreter>, when an interpreter is configured
//  5. -DCMAKE_LIBRARY_OUTPUT_DIRECTORY=<extDir>
//  6. -DCMAKE_LIBRARY_OUTPUT_DIRECTORY_<MODE>=<extDir>, on Windows only
//  7. -G <generator>, when a generator is configured
//  8. config.ExtraArgs, skipping empty tokens
//
// The Windows flag exists because multi-configuration generators (Visual
// Studio) append the configuration name to the plain output directory.
//
// # Example
//
//	flags := AssembleFlags(STK, &BuildConfig{GOOS: "linux"}, "/src/build/lib.linux-amd64")
//	// [-DSTK_BUILD_PYTHON_WRAPPER=ON -DSTK_BUILD_TESTS=OFF
//	//  -DSTK_BUILD_WITH_DEBUG_INFO=OFF -DCMAKE_BUILD_TYPE=Release
//	//  -DCMAKE_LIBRARY_OUTPUT_DIRECTORY=/src/build/lib.linux-amd64]
//
// # Thread Safety
//
// This function is thread-safe and does not modify config.
func AssembleFlags(project Project, config *BuildConfig, extDir string) []string {
	mode := config.Mode()

	flags := make([]string, 0, len(project.Defines)+len(config.ExtraArgs)+6)
	for _, def := range project.Defines {
		flags = append(flags, def.Arg())
	}

	if project.DebugInfoOption != "" {
		flags = append(flags, BoolDefine(project.DebugInfoOption, mode == ModeDebug).Arg())
	}

	flags = append(flags, Define{Key: "CMAKE_BUILD_TYPE", Value: string(mode)}.Arg())

	if config.Interpreter != "" {
		flags = append(flags, Define{Key: "PYTHON_EXECUTABLE", Value: config.Interpreter}.Arg())
	}

	flags = append(flags, Define{Key: "CMAKE_LIBRARY_OUTPUT_DIRECTORY", Value: extDir}.Arg())

	if targetOS(config) == platformWindows {
		flags = append(flags, Define{Key: "CMAKE_LIBRARY_OUTPUT_DIRECTORY_" + mode.Upper(), Value: extDir}.Arg())
	}

	if config.Generator != "" {
		flags = append(flags, "-G", config.Generator)
	}

	for _, arg := range config.ExtraArgs {
		if arg = strings.TrimSpace(arg); arg != "" {
			flags = append(flags, arg)
		}
	}

	return flags
}

// CompileArgs returns the arguments of the compile step for config:
// "--build . --config <mode>", then "--parallel N" when Parallel is set, then
// config.BuildArgs.
func CompileArgs(config *BuildConfig) []string {
	return compileArgs(config.Mode(), config.compileExtras())
}

// compileExtras returns the compile arguments that follow "--config <mode>".
func (c *BuildConfig) compileExtras() []string {
	var extra []string
	if c.Parallel > 0 {
		extra = append(extra, "--parallel", strconv.Itoa(c.Parallel))
	}
	return append(extra, c.BuildArgs...)
}

// compileArgs builds the arguments of the compile step, starting with
// "--build .".
func compileArgs(mode Mode, extra []string) []string {
	args := []string{"--build", ".", "--config", string(mode)}
	return append(args, extra...)
}

// PrintFlags writes the flag list one per line, for diagnostics.
func PrintFlags(w io.Writer, flags []string) error {
	if _, err := fmt.Fprintln(w, "cmake arguments:"); err != nil {
		return err
	}
	for _, flag := range flags {
		if _, err := fmt.Fprintf(w, "  %s\n", flag); err != nil {
			return err
		}
	}
	return nil
}

func targetOS(config *BuildConfig) string {
	if config.GOOS != "" {
		return config.GOOS
	}
	return runtime.GOOS
}
