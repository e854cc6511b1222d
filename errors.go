package cmakeext

import "fmt"

// ToolNotFoundError reports that the build tool is missing, cannot be run,
// or is older than the driver's minimum version. No processes beyond the
// version probe are started when it is returned.
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("cannot find %s executable: %v", e.Tool, e.Err)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// ConfigureError reports a non-zero exit of the configure step.
type ConfigureError struct {
	Result *StepResult
	Err    error
}

func (e *ConfigureError) Error() string {
	return formatFailure("CMake configure", e.Result.Output, e.Err)
}

func (e *ConfigureError) Unwrap() error { return e.Err }

// ExitCode returns the exit status of the configure invocation.
func (e *ConfigureError) ExitCode() int { return e.Result.ExitCode }

// BuildError reports a non-zero exit of the compile step. Compiler
// diagnostics are in Result.Output and are not interpreted.
type BuildError struct {
	Result *StepResult
	Err    error
}

func (e *BuildError) Error() string {
	return formatFailure("CMake build", e.Result.Output, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ExitCode returns the exit status of the compile invocation.
func (e *BuildError) ExitCode() int { return e.Result.ExitCode }
