package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCleanCommand(g *globalOptions) *cobra.Command {
	opts := &buildOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts from the temporary build directory",
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

			if err := g.driver(cmd, settings).Clean(cmd.Context(), cfg); err != nil {
				return err
			}

			if all {
				if err := os.RemoveAll(cfg.Layout.BuildTemp); err != nil {
					return fmt.Errorf("failed to remove %s: %w", cfg.Layout.BuildTemp, err)
				}
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "also remove the temporary build directory")
	return cmd
}
