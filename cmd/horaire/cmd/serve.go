package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/antoinebou12/horaire-ets/internal/course"
	"github.com/antoinebou12/horaire-ets/internal/httpapi"
	"github.com/antoinebou12/horaire-ets/internal/ingest"
	"github.com/antoinebou12/horaire-ets/internal/search"
	"github.com/antoinebou12/horaire-ets/internal/store"
)

func newServeCmd() *cobra.Command {
	var noScrape bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search API",
		Long: `Starts the catalogue search service. The catalogue is loaded from the
SQLite cache and/or the configured JSON file, then refreshed by the
scraper on its interval. Search endpoints return empty results until a
catalogue is available.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.Default()
			provider := course.NewProvider()

			// Warm start from the SQLite cache before any network round trip.
			var db *store.Store
			if cfg.Data.DatabasePath != "" {
				db, err = store.Open(cfg.Data.DatabasePath)
				if err != nil {
					logger.Warn("catalogue_cache_unavailable", slog.String("error", err.Error()))
				} else {
					defer func() { _ = db.Close() }()
					if cached, err := db.LoadAll(ctx); err == nil && len(cached) > 0 {
						snap := provider.Publish(cached)
						logger.Info("catalogue_published",
							slog.String("source", "cache"),
							slog.Uint64("version", snap.Version),
							slog.Int("courses", snap.Size()))
					}
				}
			}

			if cfg.Data.Path != "" {
				if _, err := ingest.LoadAndPublish(cfg.Data.Path, provider, logger); err != nil {
					logger.Warn("catalogue_file_load_failed",
						slog.String("path", cfg.Data.Path),
						slog.String("error", err.Error()))
				}
				watcher := ingest.NewWatcher(cfg.Data.Path, provider, logger)
				go func() {
					if err := watcher.Run(ctx); err != nil {
						logger.Warn("watcher_stopped", slog.String("error", err.Error()))
					}
				}()
			}

			if !noScrape && cfg.Data.ScrapeURL != "" {
				scraper := ingest.NewScraper(ingest.ScraperConfig{
					BaseURL:    cfg.Data.ScrapeURL,
					Programmes: parseProgrammes(cfg.Data.Programmes),
					Workers:    cfg.Data.ScrapeWorkers,
				}, logger)

				var save func(context.Context, []course.Course) error
				if db != nil {
					save = db.SaveAll
				}
				go scraper.Run(ctx, cfg.Data.ScrapeInterval.Std(), provider, save)
			}

			svc := search.NewService(provider, logger)
			server := httpapi.NewServer(cfg, svc, logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&noScrape, "no-scrape", false, "Disable the background catalogue scraper")
	return cmd
}

func parseProgrammes(raw []string) []course.Programme {
	programmes := make([]course.Programme, 0, len(raw))
	for _, tag := range raw {
		programmes = append(programmes, course.ParseProgramme(tag))
	}
	return programmes
}
