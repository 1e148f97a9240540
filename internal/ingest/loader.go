// Package ingest feeds the catalogue provider: a JSON file loader, an
// HTTP catalogue scraper, and a file watcher that republishes snapshots
// when the data file changes. Publishing is always a whole-snapshot
// atomic swap; in-flight queries keep reading the snapshot they started
// with.
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/antoinebou12/horaire-ets/internal/course"
	herrors "github.com/antoinebou12/horaire-ets/internal/errors"
)

// LoadFile reads a JSON array of courses from path. Records with an empty
// code are dropped and logged rather than failing the whole load — a
// single malformed record must not prevent the catalogue from serving.
func LoadFile(path string, logger *slog.Logger) ([]course.Course, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, herrors.New(herrors.ErrCodeFileNotFound,
				fmt.Sprintf("catalogue file not found: %s", path), err)
		}
		return nil, herrors.Wrap(herrors.ErrCodeFileNotFound, err)
	}

	var raw []course.Course
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, herrors.New(herrors.ErrCodeFileCorrupt,
			fmt.Sprintf("invalid catalogue JSON in %s: %v", path, err), err)
	}

	courses := make([]course.Course, 0, len(raw))
	dropped := 0
	for _, c := range raw {
		if course.NormalizeCode(c.Code) == "" {
			dropped++
			continue
		}
		courses = append(courses, c)
	}
	if dropped > 0 {
		logger.Warn("catalogue_records_dropped",
			slog.String("path", path),
			slog.Int("dropped", dropped))
	}

	return courses, nil
}

// LoadAndPublish loads the catalogue file and publishes it to the
// provider. Returns the number of courses published.
func LoadAndPublish(path string, provider *course.Provider, logger *slog.Logger) (int, error) {
	courses, err := LoadFile(path, logger)
	if err != nil {
		return 0, err
	}
	snap := provider.Publish(courses)
	if logger != nil {
		logger.Info("catalogue_published",
			slog.String("source", path),
			slog.Uint64("version", snap.Version),
			slog.Int("courses", snap.Size()))
	}
	return snap.Size(), nil
}
