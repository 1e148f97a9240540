package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/antoinebou12/horaire-ets/internal/course"
	"github.com/antoinebou12/horaire-ets/internal/ingest"
	"github.com/antoinebou12/horaire-ets/internal/mcpserver"
	"github.com/antoinebou12/horaire-ets/internal/search"
	"github.com/antoinebou12/horaire-ets/internal/store"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalogue search tools over MCP (stdio)",
		Long: `Exposes search_courses and autocomplete_courses as Model Context
Protocol tools on stdio, for AI clients. The catalogue is loaded from
the SQLite cache or the configured JSON file; there is no background
scraping in MCP mode.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := slog.Default()
			provider := course.NewProvider()

			if cfg.Data.DatabasePath != "" {
				if db, err := store.Open(cfg.Data.DatabasePath); err == nil {
					if cached, err := db.LoadAll(cmd.Context()); err == nil && len(cached) > 0 {
						provider.Publish(cached)
					}
					_ = db.Close()
				}
			}
			if !provider.Ready() && cfg.Data.Path != "" {
				if _, err := ingest.LoadAndPublish(cfg.Data.Path, provider, logger); err != nil {
					logger.Warn("catalogue_file_load_failed", slog.String("error", err.Error()))
				}
			}

			svc := search.NewService(provider, logger)
			return mcpserver.NewServer(svc, logger).Run(cmd.Context())
		},
	}
	return cmd
}
