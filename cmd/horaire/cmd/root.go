// Package cmd provides the CLI commands for horaire-ets.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antoinebou12/horaire-ets/internal/config"
	"github.com/antoinebou12/horaire-ets/internal/logging"
	"github.com/antoinebou12/horaire-ets/pkg/version"
)

var (
	configPath     string
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the horaire CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "horaire",
		Short: "ETS course catalogue search service",
		Long: `horaire-ets serves ranked search and autocomplete over the ETS course
catalogue. Queries range from partial course codes ("MAT") through
misspelled French words ("algèbr") to natural-language phrases
("structures de données algorithmes").

Run 'horaire serve' to start the HTTP API, or 'horaire search <query>'
to query a catalogue file directly.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("horaire version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.horaire-ets/logs/")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func setupLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.Config{Level: "info", WriteToStderr: true}
	if debugMode {
		cfg = logging.DebugConfig()
	}
	cleanup, err := logging.SetupDefault(cfg)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	return nil
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
