package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/antoinebou12/horaire-ets/internal/course"
	"github.com/antoinebou12/horaire-ets/internal/search"
)

// SearchInput defines the input schema for the search_courses tool.
type SearchInput struct {
	Query       string   `json:"query" jsonschema:"the search query: a course code, a French word, or a phrase"`
	Algorithm   string   `json:"algorithm,omitempty" jsonschema:"ranking algorithm: bm25, fuzzy, or hybrid (default)"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	MaxDistance *int     `json:"maxDistance,omitempty" jsonschema:"maximum edit distance for fuzzy matching, default adaptive"`
	Programmes  []string `json:"programmes,omitempty" jsonschema:"restrict to programme prefixes, e.g. LOG, MAT"`
	MinCredits  *int     `json:"minCredits,omitempty" jsonschema:"minimum credits, inclusive"`
	MaxCredits  *int     `json:"maxCredits,omitempty" jsonschema:"maximum credits, inclusive"`
}

// SearchOutput defines the output schema for the search_courses tool.
type SearchOutput struct {
	Results []search.Hit `json:"results" jsonschema:"ranked course hits"`
}

// AutocompleteInput defines the input schema for autocomplete_courses.
type AutocompleteInput struct {
	Query      string   `json:"query" jsonschema:"the prefix to complete, typically a partial course code"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
	Programmes []string `json:"programmes,omitempty" jsonschema:"restrict to programme prefixes"`
}

// AutocompleteOutput defines the output schema for autocomplete_courses.
type AutocompleteOutput struct {
	Results []search.AutocompleteHit `json:"results" jsonschema:"autocomplete hits"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_courses",
		Description: "Search the ETS course catalogue. Handles course codes (MAT380), misspelled French words (algèbr), and natural-language phrases. Returns ranked hits with comparable scores.",
	}, s.searchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "autocomplete_courses",
		Description: "Complete a partial course code or title prefix against the catalogue. Lightweight results for pickers and dropdowns.",
	}, s.autocompleteHandler)

	s.logger.Info("mcp_tools_registered", slog.Int("count", 2))
}

func (s *Server) searchHandler(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	hits := s.svc.SearchWith(
		search.ParseAlgorithm(input.Algorithm),
		input.Query,
		limit,
		input.MaxDistance,
		buildOptions(input.Programmes, input.MinCredits, input.MaxCredits),
	)
	return nil, SearchOutput{Results: hits}, nil
}

func (s *Server) autocompleteHandler(_ context.Context, _ *mcp.CallToolRequest, input AutocompleteInput) (
	*mcp.CallToolResult,
	AutocompleteOutput,
	error,
) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	hits := s.svc.Autocomplete(input.Query, limit, buildOptions(input.Programmes, nil, nil))
	return nil, AutocompleteOutput{Results: hits}, nil
}

func buildOptions(programmes []string, minCredits, maxCredits *int) *search.Options {
	opts := &search.Options{MinCredits: minCredits, MaxCredits: maxCredits}
	for _, tag := range programmes {
		opts.Programmes = append(opts.Programmes, course.ParseProgramme(tag))
	}
	if opts.IsZero() {
		return nil
	}
	return opts
}
