// Package internal implements the cmakeext command, the hook a packaging
// tool invokes to build CMake-backed extension modules.
package internal

import (
	"context"
	"os"

	cmakeext "github.com/contriboss/cmake-extension-go"
	"github.com/contriboss/cmake-extension-go/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	configFile string
	source     string
}

// NewRootCommand returns the cmakeext command tree.
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Build CMake-based native extension modules",
		Long: `cmakeext runs the CMake configure and build steps for a native extension
module and places the compiled library where the packaging tool expects it.

Environment:
  DEBUG       build the Debug configuration when non-zero (default: Release)
  CMAKE_ARGS  extra whitespace-separated arguments appended to the configure step`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (default is cmakeext.toml in the source directory)")
	rootCmd.PersistentFlags().StringVarP(&g.source, "source", "s", ".", "directory containing CMakeLists.txt")

	rootCmd.AddCommand(newBuildExtCommand(g))
	rootCmd.AddCommand(newFlagsCommand(g))
	rootCmd.AddCommand(newCheckCommand(g))
	rootCmd.AddCommand(newCleanCommand(g))
	rootCmd.AddCommand(newConfigCommand(g))

	return rootCmd
}

// Execute runs the root command and exits with a status derived from the
// failure. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

func (g *globalOptions) loadSettings() (*config.Settings, error) {
	return config.Load(config.LoadOptions{
		ConfigFilePath: g.configFile,
		SearchDirs:     []string{g.source},
	})
}

func (g *globalOptions) logger(cmd *cobra.Command) *log.Logger {
	level := log.InfoLevel
	if g.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

func (g *globalOptions) driver(cmd *cobra.Command, settings *config.Settings) *cmakeext.Driver {
	d := cmakeext.NewDriver(cmakeext.STK)
	d.Stdout = cmd.OutOrStdout()
	d.Logger = g.logger(cmd)
	d.MinVersion = settings.MinVersion
	return d
}
