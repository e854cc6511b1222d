package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := g.loadSettings()
			if err != nil {
				return err
			}

			data, err := settings.TOML()
			if err != nil {
				return fmt.Errorf("failed to render settings: %w", err)
			}

			out := cmd.OutOrStdout()
			if settings.ConfigFile != "" {
				fmt.Fprintf(out, "# loaded from %s\n", settings.ConfigFile)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
