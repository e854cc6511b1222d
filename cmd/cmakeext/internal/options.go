package internal

import (
	"fmt"
	"strings"

	cmakeext "github.com/contriboss/cmake-extension-go"
	"github.com/contriboss/cmake-extension-go/internal/config"

	"github.com/spf13/cobra"
)

const defaultExtension = "_stk"

// buildOptions are the flags shared by commands that resolve a BuildConfig.
type buildOptions struct {
	extensions  []string
	debug       bool
	inplace     bool
	buildTemp   string
	buildLib    string
	suffix      string
	interpreter string
	generator   string
	parallel    int
	buildArgs   []string
}

func (o *buildOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&o.extensions, "ext", "e", []string{defaultExtension}, "extension as name[=source-dir], repeatable")
	f.BoolVarP(&o.debug, "debug", "g", false, "build the Debug configuration (overrides DEBUG)")
	f.BoolVarP(&o.inplace, "inplace", "i", false, "place compiled modules in the source tree")
	f.StringVarP(&o.buildTemp, "build-temp", "t", "", "directory for temporary build files")
	f.StringVarP(&o.buildLib, "build-lib", "b", "", "directory compiled modules are placed in")
	f.StringVar(&o.suffix, "suffix", "", "file suffix of compiled modules")
	f.StringVar(&o.interpreter, "interpreter", "", "interpreter passed as PYTHON_EXECUTABLE")
	f.StringVarP(&o.generator, "generator", "G", "", "CMake generator")
	f.IntVarP(&o.parallel, "parallel", "j", 0, "number of parallel build jobs")
	f.StringArrayVar(&o.buildArgs, "build-arg", nil, "extra argument for the compile step, repeatable")
}

// resolve merges flags over settings and returns the build configuration.
func (o *buildOptions) resolve(cmd *cobra.Command, g *globalOptions, settings *config.Settings) (*cmakeext.BuildConfig, error) {
	f := cmd.Flags()
	if f.Changed("build-temp") {
		settings.BuildTemp = o.buildTemp
	}
	if f.Changed("build-lib") {
		settings.BuildLib = o.buildLib
	}
	if f.Changed("suffix") {
		settings.Suffix = o.suffix
	}
	if f.Changed("interpreter") {
		settings.Interpreter = o.interpreter
	}
	if f.Changed("generator") {
		settings.Generator = o.generator
	}
	if f.Changed("parallel") {
		settings.Parallel = o.parallel
	}
	if f.Changed("build-arg") {
		settings.BuildArgs = o.buildArgs
	}

	var toolDebug *bool
	if f.Changed("debug") {
		toolDebug = &o.debug
	}

	cfg, err := settings.BuildConfig(toolDebug)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = g.verbose
	if o.inplace {
		cfg.Layout.Inplace = true
		cfg.Layout.PackageRoot = g.source
	}
	return cfg, nil
}

// parseExtensions turns name[=dir] specs into extensions. A missing dir
// defaults to source.
func parseExtensions(specs []string, source string) ([]cmakeext.Extension, error) {
	exts := make([]cmakeext.Extension, 0, len(specs))
	for _, spec := range specs {
		name, dir, ok := strings.Cut(spec, "=")
		if !ok || dir == "" {
			dir = source
		}
		ext, err := cmakeext.NewExtension(strings.TrimSpace(name), dir)
		if err != nil {
			return nil, fmt.Errorf("invalid --ext %q: %w", spec, err)
		}
		exts = append(exts, ext)
	}
	return exts, nil
}
