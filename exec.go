package cmakeext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/magefile/mage/sh"
)

// Replaced in tests.
var (
	execLookPath       = exec.LookPath
	execCommandContext = exec.CommandContext
)

// runStep runs one external command in dir, streaming its combined output to
// stream and capturing it into the returned StepResult.
//
// ran is false when the process could not be started at all (missing
// binary, permission denied) or was killed by a signal.
func runStep(ctx context.Context, stream io.Writer, dir string, env map[string]string, name string, args ...string) (result *StepResult, ran bool, err error) {
	cmd := execCommandContext(ctx, name, args...)
	cmd.Dir = dir
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Env = append(cmd.Env, envList(env)...)

	var captured bytes.Buffer
	out := io.Writer(&captured)
	if stream != nil {
		out = io.MultiWriter(stream, &captured)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	err = cmd.Run()

	result = &StepResult{
		Command:  append([]string{name}, args...),
		Dir:      dir,
		Output:   splitLines(captured.String()),
		ExitCode: sh.ExitStatus(err),
	}
	return result, sh.CmdRan(err), err
}

func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
