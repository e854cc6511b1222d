package internal

import (
	"fmt"
	"strings"

	cmakeext "github.com/contriboss/cmake-extension-go"

	"github.com/spf13/cobra"
)

func newFlagsCommand(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the cmake arguments without running anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := g.loadSettings()
			if err != nil {
				return err
			}

			cfg, err := opts.resolve(cmd, g, settings)
			if err != nil {
				return err
			}

			exts, err := parseExtensions(opts.extensions, g.source)
			if err != nil {
				return err
			}

			project := g.driver(cmd, settings).Project
			out := cmd.OutOrStdout()
			for _, ext := range exts {
				extDir, err := cfg.Layout.ExtDir(ext.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "# %s (%s)\n", ext.Name, cfg.Mode())
				if err := cmakeext.PrintFlags(out, cmakeext.AssembleFlags(project, cfg, extDir)); err != nil {
					return err
				}

				fmt.Fprintf(out, "build arguments:\n  %s\n", strings.Join(cmakeext.CompileArgs(cfg), " "))
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
