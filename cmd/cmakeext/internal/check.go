package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that cmake can be run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := g.loadSettings()
			if err != nil {
				return err
			}

			tc, err := g.driver(cmd, settings).Preflight(cmd.Context())
			if err != nil {
				return err
			}

			version := tc.Version
			if version == "" {
				version = "unknown version"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", tc.Name, version, tc.Path)
			return nil
		},
	}
}
