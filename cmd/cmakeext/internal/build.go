package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyToSourceUsage = "copy compiled modules into this directory under their package path"

func newBuildExtCommand(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}
	var copyToSource string

	cmd := &cobra.Command{
		Use:   "build-ext",
		Short: "Configure and build extension modules",
		Long: `Build-ext checks that cmake is available, configures each extension in the
temporary build directory and builds it. The library output directory is set
to the location the compiled module is expected at.`,
		Example: `  cmakeext build-ext
  cmakeext build-ext --debug --ext _stk=src
  CMAKE_ARGS="-DSTK_USE_CUDA=ON" cmakeext build-ext -j 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := g.loadSettings()
			if err != nil {
				return err
			}

			cfg, err := opts.resolve(cmd, g, settings)
			if err != nil {
				return err
			}
			cfg.Layout.CopyToSource = copyToSource

			exts, err := parseExtensions(opts.extensions, g.source)
			if err != nil {
				return err
			}

			results, err := g.driver(cmd, settings).BuildAll(cmd.Context(), cfg, exts)
			for _, result := range results {
				if !result.Success {
					continue
				}
				for _, path := range result.Extensions {
					fmt.Fprintf(cmd.OutOrStdout(), "built %s: %s\n", result.Extension, path)
				}
				for _, path := range result.Installed {
					fmt.Fprintf(cmd.OutOrStdout(), "copied %s: %s\n", result.Extension, path)
				}
			}
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&copyToSource, "copy-to-source", "", copyToSourceUsage)

	return cmd
}
