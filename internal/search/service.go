package search

import (
	"log/slog"
	"time"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// Service binds the scorers to a catalogue provider and a logger. It is
// the entry point the HTTP, MCP, and CLI surfaces share: every method
// reads one snapshot for its whole duration and returns empty results
// while the provider is not ready, never an error.
type Service struct {
	provider *course.Provider
	logger   *slog.Logger
}

// NewService creates a search service over the given provider. A nil
// logger falls back to slog.Default.
func NewService(provider *course.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, logger: logger}
}

// Ready reports whether a non-empty catalogue snapshot is available.
func (s *Service) Ready() bool {
	return s.provider.Ready()
}

// Snapshot exposes the current catalogue snapshot for surfaces that list
// courses directly.
func (s *Service) Snapshot() *course.Snapshot {
	return s.provider.Snapshot()
}

// SearchBM25 runs the BM25F scorer against the current snapshot.
func (s *Service) SearchBM25(query string, limit int, opts *Options) []Hit {
	courses, ok := s.corpus()
	if !ok {
		return []Hit{}
	}
	start := time.Now()
	hits := SearchBM25(courses, query, limit, opts)
	s.logQuery("bm25", query, len(hits), start)
	return hits
}

// SearchFuzzy runs the edit-distance scorer against the current snapshot.
func (s *Service) SearchFuzzy(query string, limit int, maxDistance *int, opts *Options) []Hit {
	courses, ok := s.corpus()
	if !ok {
		return []Hit{}
	}
	start := time.Now()
	hits := SearchFuzzy(courses, query, limit, maxDistance, opts)
	s.logQuery("fuzzy", query, len(hits), start)
	return hits
}

// SearchHybrid fuses BM25F and fuzzy scoring against the current snapshot.
func (s *Service) SearchHybrid(query string, limit int, maxDistance *int, opts *Options) []Hit {
	courses, ok := s.corpus()
	if !ok {
		return []Hit{}
	}
	start := time.Now()
	hits := SearchHybrid(courses, query, limit, maxDistance, opts)
	s.logQuery("hybrid", query, len(hits), start)
	return hits
}

// Search routes the query to a scorer by shape (see Route) and runs it.
// Used when the caller does not name an algorithm.
func (s *Service) Search(query string, limit int, maxDistance *int, opts *Options) []Hit {
	switch Route(query) {
	case AlgorithmBM25:
		return s.SearchBM25(query, limit, opts)
	case AlgorithmFuzzy:
		return s.SearchFuzzy(query, limit, maxDistance, opts)
	default:
		return s.SearchHybrid(query, limit, maxDistance, opts)
	}
}

// SearchWith dispatches to the named algorithm.
func (s *Service) SearchWith(algorithm Algorithm, query string, limit int, maxDistance *int, opts *Options) []Hit {
	switch algorithm {
	case AlgorithmBM25:
		return s.SearchBM25(query, limit, opts)
	case AlgorithmFuzzy:
		return s.SearchFuzzy(query, limit, maxDistance, opts)
	default:
		return s.SearchHybrid(query, limit, maxDistance, opts)
	}
}

// Autocomplete runs the prefix scorer against the current snapshot.
func (s *Service) Autocomplete(query string, limit int, opts *Options) []AutocompleteHit {
	courses, ok := s.corpus()
	if !ok {
		return []AutocompleteHit{}
	}
	start := time.Now()
	hits := Autocomplete(courses, query, limit, opts)
	s.logQuery("autocomplete", query, len(hits), start)
	return hits
}

func (s *Service) corpus() ([]course.Course, bool) {
	if !s.provider.Ready() {
		return nil, false
	}
	return s.provider.Courses(), true
}

func (s *Service) logQuery(algorithm, query string, hits int, start time.Time) {
	s.logger.Debug("search_query",
		slog.String("algorithm", algorithm),
		slog.Int("query_len", len(query)),
		slog.Int("hits", hits),
		slog.Duration("elapsed", time.Since(start)))
}
