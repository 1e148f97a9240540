package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/antoinebou12/horaire-ets/internal/course"
	herrors "github.com/antoinebou12/horaire-ets/internal/errors"
)

// ScraperConfig configures the catalogue scraper.
type ScraperConfig struct {
	// BaseURL is the catalogue endpoint. The scraper requests
	// BaseURL?programme=<tag> and expects a JSON array of courses.
	BaseURL string

	// Programmes lists the programme catalogues to fetch. Empty means all
	// known programmes.
	Programmes []course.Programme

	// Workers bounds concurrent fetches (default: 4).
	Workers int

	// RequestTimeout bounds a single catalogue request (default: 30s).
	RequestTimeout time.Duration
}

// Scraper fetches the course catalogue programme by programme and merges
// the results. Individual programme failures are logged and skipped so a
// partial catalogue still publishes.
type Scraper struct {
	config ScraperConfig
	client *http.Client
	logger *slog.Logger
}

// NewScraper creates a scraper with the given configuration.
func NewScraper(config ScraperConfig, logger *slog.Logger) *Scraper {
	if config.Workers <= 0 {
		config.Workers = 4
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if len(config.Programmes) == 0 {
		config.Programmes = course.Programmes()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		config: config,
		client: &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}
}

// Fetch downloads every configured programme catalogue concurrently and
// returns the merged, deduplicated course list ordered by code.
func (s *Scraper) Fetch(ctx context.Context) ([]course.Course, error) {
	if s.config.BaseURL == "" {
		return nil, herrors.New(herrors.ErrCodeScrapeFailed, "scraper has no base URL", nil)
	}

	var (
		mu     sync.Mutex
		merged []course.Course
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for _, programme := range s.config.Programmes {
		g.Go(func() error {
			courses, err := s.fetchProgramme(gctx, programme)
			if err != nil {
				// One bad programme page must not abort the whole scrape.
				s.logger.Warn("programme_fetch_failed",
					slog.String("programme", string(programme)),
					slog.String("error", err.Error()))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			merged = append(merged, courses...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeScrapeFailed, err)
	}
	if failed == len(s.config.Programmes) {
		return nil, herrors.New(herrors.ErrCodeNetworkUnavailable,
			"every programme fetch failed", nil)
	}

	merged = course.Dedupe(merged)
	sort.Slice(merged, func(i, j int) bool { return merged[i].Code < merged[j].Code })

	s.logger.Info("catalogue_scraped",
		slog.Int("programmes", len(s.config.Programmes)-failed),
		slog.Int("failed", failed),
		slog.Int("courses", len(merged)))
	return merged, nil
}

func (s *Scraper) fetchProgramme(ctx context.Context, programme course.Programme) ([]course.Course, error) {
	endpoint, err := url.Parse(s.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("programme", string(programme))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var courses []course.Course
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}

	kept := courses[:0]
	for _, c := range courses {
		if course.NormalizeCode(c.Code) == "" {
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

// Run scrapes immediately and then on every interval tick until the
// context is cancelled, publishing each successful scrape to the provider
// and persisting it through save (which may be nil).
func (s *Scraper) Run(ctx context.Context, interval time.Duration,
	provider *course.Provider, save func(context.Context, []course.Course) error) {

	if interval <= 0 {
		interval = 24 * time.Hour
	}

	scrape := func() {
		courses, err := s.Fetch(ctx)
		if err != nil {
			s.logger.Error("scrape_failed", slog.String("error", err.Error()))
			return
		}
		snap := provider.Publish(courses)
		s.logger.Info("catalogue_published",
			slog.String("source", "scraper"),
			slog.Uint64("version", snap.Version),
			slog.Int("courses", snap.Size()))
		if save != nil {
			if err := save(ctx, courses); err != nil {
				s.logger.Error("catalogue_save_failed", slog.String("error", err.Error()))
			}
		}
	}

	scrape()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			scrape()
		}
	}
}
