package internal

import (
	"errors"

	cmakeext "github.com/contriboss/cmake-extension-go"
)

// exitCodeToolNotFound follows the shell convention for "command not found".
const exitCodeToolNotFound = 127

// exitCode maps a command failure to a process exit status. Configure and
// build failures pass the tool's own status through.
func exitCode(err error) int {
	var notFound *cmakeext.ToolNotFoundError
	var configureErr *cmakeext.ConfigureError
	var buildErr *cmakeext.BuildError

	switch {
	case err == nil:
		return 0
	case errors.As(err, &notFound):
		return exitCodeToolNotFound
	case errors.As(err, &configureErr):
		return nonZero(configureErr.ExitCode())
	case errors.As(err, &buildErr):
		return nonZero(buildErr.ExitCode())
	default:
		return 1
	}
}

func nonZero(code int) int {
	if code == 0 {
		return 1
	}
	return code
}
