package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/antoinebou12/horaire-ets/internal/ingest"
	"github.com/antoinebou12/horaire-ets/internal/store"
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the catalogue once and persist it to the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Data.ScrapeURL == "" {
				return fmt.Errorf("data.scrape_url is not configured")
			}

			logger := slog.Default()
			scraper := ingest.NewScraper(ingest.ScraperConfig{
				BaseURL:    cfg.Data.ScrapeURL,
				Programmes: parseProgrammes(cfg.Data.Programmes),
				Workers:    cfg.Data.ScrapeWorkers,
			}, logger)

			courses, err := scraper.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			if cfg.Data.DatabasePath != "" {
				db, err := store.Open(cfg.Data.DatabasePath)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := db.SaveAll(cmd.Context(), courses); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scraped %d courses\n", len(courses))
			return nil
		},
	}
	return cmd
}
