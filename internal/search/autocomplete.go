package search

import (
	"strings"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// Autocomplete score tiers, strongest first. Conditions combine by
// maximum; a course is emitted only when some condition applies.
const (
	acExactCode     = 1.5
	acCodePrefix    = 1.0
	acCodeContains  = 0.7
	acTitlePrefix   = 0.6
	acTitleContains = 0.3
)

// Autocomplete matches the query as a prefix (or substring) of course
// codes and title words. Optimized for dropdowns: lightweight hits,
// deterministic ordering. Options, when non-nil, restrict the candidate
// set first.
func Autocomplete(courses []course.Course, query string, limit int, opts *Options) []AutocompleteHit {
	courses = FilterByOptions(courses, opts)
	trimmed, ok := validateInput(courses, query)
	if !ok {
		return []AutocompleteHit{}
	}

	upperQuery := strings.ToUpper(trimmed)
	results := make([]AutocompleteHit, 0, len(courses))

	for _, c := range courses {
		score := 0.0

		if c.Code != "" {
			code := strings.ToUpper(strings.TrimSpace(c.Code))
			switch {
			case code == upperQuery:
				score = acExactCode
			case strings.HasPrefix(code, upperQuery):
				score = acCodePrefix
			case strings.Contains(code, upperQuery):
				score = acCodeContains
			}
		}

		// Title matches only help when the code produced nothing at
		// prefix strength.
		if score < acCodePrefix && c.Title != "" {
			title := strings.ToUpper(strings.TrimSpace(c.Title))
			if strings.HasPrefix(title, upperQuery) {
				score = maxScore(score, acTitlePrefix)
			} else {
				wordPrefix := false
				for _, word := range strings.Fields(title) {
					if strings.HasPrefix(word, upperQuery) {
						score = maxScore(score, acTitlePrefix)
						wordPrefix = true
						break
					}
				}
				if !wordPrefix && strings.Contains(title, upperQuery) {
					score = maxScore(score, acTitleContains)
				}
			}
		}

		if score > 0 {
			results = append(results, AutocompleteHit{
				Code:  c.Code,
				Title: c.Title,
				Score: score,
			})
		}
	}

	sortAutocompleteHits(results)
	return truncateAutocompleteHits(results, limit)
}

func maxScore(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
