package cmakeext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultMinVersion is the oldest cmake accepted by Preflight. 3.12 is the
// first release with "cmake --build . --parallel".
const DefaultMinVersion = "3.12"

// Driver builds CMake-backed extension modules.
//
// A Driver holds no per-build state and can be reused for any number of
// builds. Builds against the same Layout.BuildTemp must not run concurrently.
type Driver struct {
	// Project supplies the fixed configure flags.
	Project Project

	// Tool is the build tool to locate during preflight.
	Tool ToolRequirement

	// MinVersion is the minimum accepted cmake version. Empty disables the check.
	MinVersion string

	// Stdout receives the assembled flag list and the tools' output.
	Stdout io.Writer

	// Logger receives progress messages.
	Logger *log.Logger
}

// NewDriver returns a Driver for project that writes to the process's
// stdout and logs to stderr.
func NewDriver(project Project) *Driver {
	return &Driver{
		Project: project,
		Tool: ToolRequirement{
			Name:         "cmake",
			Alternatives: []string{"cmake3"},
			Purpose:      "CMake build system",
		},
		MinVersion: DefaultMinVersion,
		Stdout:     os.Stdout,
		Logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "cmakeext"}),
	}
}

// CanBuild checks if this driver can handle the project file
func (d *Driver) CanBuild(projectFile string) bool {
	return MatchesPattern(filepath.Base(projectFile), `^CMakeLists\.txt$`)
}

// RequiredTools returns the tools needed for CMake builds
func (d *Driver) RequiredTools() []ToolRequirement {
	return []ToolRequirement{d.Tool}
}

// CheckTools verifies that cmake is in PATH without running it. The error
// names the tool and its purpose.
func (d *Driver) CheckTools() error {
	return CheckRequiredTools(d.RequiredTools())
}

// Preflight locates the build tool and runs "<tool> --version".
//
// It fails with *ToolNotFoundError when the tool is not in PATH, cannot be
// run, exits non-zero, or reports a version below MinVersion. A cancelled
// ctx is returned as is. The returned Toolchain is the only way to run the
// configure and compile steps.
func (d *Driver) Preflight(ctx context.Context) (*Toolchain, error) {
	if err := d.CheckTools(); err != nil {
		return nil, &ToolNotFoundError{Tool: d.Tool.Name, Err: err}
	}
	name, path, err := LocateTool(d.Tool)
	if err != nil {
		return nil, &ToolNotFoundError{Tool: d.Tool.Name, Err: err}
	}

	step, ran, err := runStep(ctx, nil, "", nil, path, "--version")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !ran {
			return nil, &ToolNotFoundError{Tool: name, Err: fmt.Errorf("%s could not be run: %w", path, err)}
		}
		return nil, &ToolNotFoundError{Tool: name, Err: fmt.Errorf("%s --version exited with status %d", path, step.ExitCode)}
	}

	info := ToolInfo{Name: name, Path: path}
	version, ok := parseCMakeVersion(strings.Join(step.Output, "\n"))
	if !ok {
		d.logger().Warn("could not parse cmake version", "path", path)
	} else {
		info.Version = version
	}

	if ok && d.MinVersion != "" {
		atLeast, comparable := versionAtLeast(version, d.MinVersion)
		switch {
		case !comparable:
			d.logger().Warn("cannot compare cmake version", "version", version, "minimum", d.MinVersion)
		case !atLeast:
			return nil, &ToolNotFoundError{
				Tool: name,
				Err:  fmt.Errorf("version %s is older than the required %s", version, d.MinVersion),
			}
		}
	}

	d.logger().Debug("found build tool", "path", info.Path, "version", info.Version)

	return &Toolchain{
		ToolInfo: info,
		stream:   d.Stdout,
		logger:   d.logger(),
	}, nil
}

// BuildExtension preflights the tool and builds a single extension.
func (d *Driver) BuildExtension(ctx context.Context, config *BuildConfig, ext Extension) (*BuildResult, error) {
	tc, err := d.Preflight(ctx)
	if err != nil {
		return &BuildResult{Extension: ext.Name, Mode: config.Mode(), Error: err}, err
	}
	return d.buildWith(ctx, tc, config, ext)
}

// BuildAll preflights the tool once and builds extensions in order.
//
// Processing stops at the first failure. The results slice holds one entry
// per extension processed, including the failed one. A preflight failure
// returns no results.
func (d *Driver) BuildAll(ctx context.Context, config *BuildConfig, extensions []Extension) ([]*BuildResult, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	tc, err := d.Preflight(ctx)
	if err != nil {
		return nil, err
	}

	var results []*BuildResult
	for _, ext := range extensions {
		if ctxErr := ctx.Err(); ctxErr != nil {
			results = append(results, &BuildResult{Extension: ext.Name, Mode: config.Mode(), Error: ctxErr})
			return results, ctxErr
		}

		result, err := d.buildWith(ctx, tc, config, ext)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// buildWith runs flag assembly, configure, compile and artifact location.
func (d *Driver) buildWith(ctx context.Context, tc *Toolchain, config *BuildConfig, ext Extension) (*BuildResult, error) {
	mode := config.Mode()
	result := &BuildResult{
		Extension: ext.Name,
		Mode:      mode,
	}
	fail := func(err error) (*BuildResult, error) {
		result.Error = err
		return result, err
	}

	if _, err := d.findProjectFile(ext.SourceDir); err != nil {
		return fail(err)
	}

	extDir, err := config.Layout.ExtDir(ext.Name)
	if err != nil {
		return fail(err)
	}

	buildDir, err := buildTempDir(config.Layout)
	if err != nil {
		return fail(err)
	}

	flags := AssembleFlags(d.Project, config, extDir)
	result.ConfigureArgs = flags

	if d.Stdout != nil {
		if err := PrintFlags(d.Stdout, flags); err != nil {
			return fail(fmt.Errorf("failed to print cmake arguments: %w", err))
		}
	}

	steps := tc.withEnv(config.Env)
	steps.verbose = config.Verbose

	d.logger().Info("configuring", "extension", ext.Name, "project", d.Project.Name, "mode", mode)
	step, err := steps.Configure(ctx, buildDir, ext.SourceDir, flags)
	if step != nil {
		result.Output = append(result.Output, step.Output...)
	}
	if err != nil {
		return fail(err)
	}

	d.logger().Info("building", "extension", ext.Name, "mode", mode)
	step, err = steps.Build(ctx, buildDir, mode, config.compileExtras())
	result.BuildArgs = step.Command[1:]
	result.Output = append(result.Output, step.Output...)
	if err != nil {
		return fail(err)
	}

	built, err := findBuiltExtensions(extDir, ext)
	if err != nil {
		return fail(err)
	}
	if len(built) == 0 {
		d.logger().Warn("no compiled module found", "extension", ext.Name, "dir", extDir)
	}
	result.Extensions = built

	installed, err := copyToSource(config.Layout.CopyToSource, ext, built)
	result.Installed = installed
	if err != nil {
		return fail(err)
	}

	result.Success = true
	return result, nil
}

// Clean runs "cmake --build . --target clean" in the build temp directory.
// A directory that was never configured is left alone.
func (d *Driver) Clean(ctx context.Context, config *BuildConfig) error {
	buildDir, err := buildTempDir(config.Layout)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(buildDir, "CMakeCache.txt")); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.logger().Debug("nothing to clean", "dir", buildDir)
			return nil
		}
		return err
	}

	tc, err := d.Preflight(ctx)
	if err != nil {
		return err
	}

	step, _, err := tc.withEnv(config.Env).run(ctx, buildDir, "--build", ".", "--config", string(config.Mode()), "--target", "clean")
	if err != nil {
		return &BuildError{Result: step, Err: err}
	}
	return nil
}

// findProjectFile returns the CMakeLists.txt directly inside sourceDir.
func (d *Driver) findProjectFile(sourceDir string) (string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to read source directory %s: %w", sourceDir, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && d.CanBuild(entry.Name()) {
			return filepath.Join(sourceDir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no CMakeLists.txt in %s", sourceDir)
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

func buildTempDir(layout Layout) (string, error) {
	if layout.BuildTemp == "" {
		return "", fmt.Errorf("build temp directory is not set")
	}
	abs, err := filepath.Abs(layout.BuildTemp)
	if err != nil {
		return "", fmt.Errorf("resolve build temp directory: %w", err)
	}
	return abs, nil
}

// Toolchain is a located, version-checked build tool. It runs the two build
// steps; obtain one from Driver.Preflight.
type Toolchain struct {
	ToolInfo

	// Env is added to the environment of every invocation.
	Env map[string]string

	stream  io.Writer
	logger  *log.Logger
	verbose bool
}

// Configure creates buildDir if needed and runs "<tool> <sourceDir> <flags...>"
// inside it. A non-zero exit is returned as *ConfigureError.
func (t *Toolchain) Configure(ctx context.Context, buildDir, sourceDir string, flags []string) (*StepResult, error) {
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build directory %s: %w", buildDir, err)
	}

	args := append([]string{sourceDir}, flags...)
	step, _, err := t.run(ctx, buildDir, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return step, ctxErr
		}
		return step, &ConfigureError{Result: step, Err: err}
	}
	return step, nil
}

// Build runs "<tool> --build . --config <mode> [buildArgs...]" in buildDir.
// A non-zero exit is returned as *BuildError.
func (t *Toolchain) Build(ctx context.Context, buildDir string, mode Mode, buildArgs []string) (*StepResult, error) {
	step, _, err := t.run(ctx, buildDir, compileArgs(mode, buildArgs)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return step, ctxErr
		}
		return step, &BuildError{Result: step, Err: err}
	}
	return step, nil
}

func (t *Toolchain) run(ctx context.Context, dir string, args ...string) (*StepResult, bool, error) {
	logger := t.logger
	if logger == nil {
		logger = log.Default()
	}
	if t.verbose {
		logger.Info("running", "cmd", t.Path+" "+strings.Join(args, " "), "dir", dir)
	} else {
		logger.Debug("running", "cmd", t.Path+" "+strings.Join(args, " "), "dir", dir)
	}
	return runStep(ctx, t.stream, dir, t.Env, t.Path, args...)
}

// withEnv returns a copy of t with env added to its environment.
func (t *Toolchain) withEnv(env map[string]string) *Toolchain {
	c := *t
	if len(env) == 0 {
		return &c
	}
	merged := make(map[string]string, len(t.Env)+len(env))
	for k, v := range t.Env {
		merged[k] = v
	}
	for k, v := range env {
		merged[k] = v
	}
	c.Env = merged
	return &c
}
