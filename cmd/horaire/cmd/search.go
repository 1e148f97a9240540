package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antoinebou12/horaire-ets/internal/course"
	"github.com/antoinebou12/horaire-ets/internal/ingest"
	"github.com/antoinebou12/horaire-ets/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		dataPath    string
		algorithm   string
		limit       int
		maxDistance int
		programmes  []string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a catalogue file from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				return fmt.Errorf("--data is required (path to a catalogue JSON file)")
			}

			courses, err := ingest.LoadFile(dataPath, slog.Default())
			if err != nil {
				return err
			}

			provider := course.NewProvider()
			provider.Publish(courses)
			svc := search.NewService(provider, slog.Default())

			query := strings.Join(args, " ")
			var maxDist *int
			if cmd.Flags().Changed("max-distance") {
				maxDist = &maxDistance
			}

			var opts *search.Options
			if len(programmes) > 0 {
				opts = &search.Options{Programmes: parseProgrammes(programmes)}
			}

			hits := svc.SearchWith(search.ParseAlgorithm(algorithm), query, limit, maxDist, opts)

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(hits)
			}

			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no results")
				return nil
			}
			for i, hit := range hits {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-10s %6.4f  %s\n", i+1, hit.Code, hit.Score, hit.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Path to a catalogue JSON file")
	cmd.Flags().StringVar(&algorithm, "algorithm", "hybrid", "Ranking algorithm: bm25, fuzzy, or hybrid")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")
	cmd.Flags().IntVar(&maxDistance, "max-distance", 0, "Maximum edit distance for fuzzy matching")
	cmd.Flags().StringSliceVar(&programmes, "programmes", nil, "Restrict to programme prefixes (e.g. LOG,MAT)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
