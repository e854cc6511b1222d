// Package cmakeext builds CMake-based native extension modules on behalf of a
// packaging tool.
//
// A packaging tool knows where it wants a compiled extension to end up; CMake
// knows how to compile it. This package sits between the two: it checks that
// cmake is usable, assembles the configure flags for a project, runs the
// configure and compile steps in a temporary build directory and points CMake's
// library output directory at the location the packaging tool resolves for the
// extension.
//
// # Basic Usage
//
//	driver := cmakeext.NewDriver(cmakeext.STK)
//
//	config := &cmakeext.BuildConfig{
//	    Debug:     cmakeext.ResolveDebug(toolDebug, envDebug),
//	    ExtraArgs: strings.Fields(os.Getenv("CMAKE_ARGS")),
//	    Layout:    cmakeext.DefaultLayout(),
//	}
//
//	ext, err := cmakeext.NewExtension("_stk", ".")
//	results, err := driver.BuildAll(ctx, config, []cmakeext.Extension{ext})
//
// # Build Sequence
//
// Every extension goes through the same linear sequence:
//
//	Preflight ──► AssembleFlags ──► Configure ──► Build ──► locate artifacts
//
// Each step either succeeds or aborts the build with a typed error:
//   - *ToolNotFoundError - cmake missing, not runnable, or too old
//   - *ConfigureError - "cmake <source> <flags...>" exited non-zero
//   - *BuildError - "cmake --build . --config <mode>" exited non-zero
//
// Nothing is retried and nothing is rolled back. The captured tool output is
// carried on the error so the packaging tool can show it to the user.
//
// # Configuration
//
// The driver never reads the environment itself. Callers build a BuildConfig
// once at the call boundary; the cmakeext command does so with viper from the
// DEBUG and CMAKE_ARGS variables and an optional cmakeext.toml.
//
// # Platform Support
//
// Linux, macOS and Windows. On Windows an extra per-configuration library
// output directory is passed, since multi-configuration generators ignore the
// plain CMAKE_LIBRARY_OUTPUT_DIRECTORY there.
package cmakeext
