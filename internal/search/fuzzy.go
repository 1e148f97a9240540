package search

import (
	"math"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// Fuzzy field weights and thresholds. Title matches carry 90% of a code
// match; description matches 70%, and are consulted only when the code and
// title produced nothing convincing.
const (
	fuzzyTitleWeight     = 0.9
	fuzzyDescWeight      = 0.7
	fuzzyPrefixWeight    = 0.9
	fuzzyTitleSubstring  = 0.6
	fuzzyTitleMinWordLen = 2
	fuzzyDescMinWordLen  = 3
	fuzzyDescCutoff      = 0.5
	fuzzyTitleSubCutoff  = 0.7
)

// SearchFuzzy ranks courses by edit-distance similarity to the query.
// Useful for typos and partial input on short, single-term queries. A nil
// maxDistance selects an adaptive budget from the query length; options,
// when non-nil, restrict the candidate set before scoring.
func SearchFuzzy(courses []course.Course, query string, limit int, maxDistance *int, opts *Options) []Hit {
	courses = FilterByOptions(courses, opts)
	trimmed, ok := validateInput(courses, query)
	if !ok {
		return []Hit{}
	}

	upperQuery := strings.ToUpper(trimmed)
	budget := editBudget(upperQuery, maxDistance)

	results := make([]Hit, 0, len(courses))
	for _, c := range courses {
		best := fuzzyBestScore(c, upperQuery, budget)
		if best > 0 && !math.IsInf(best, 0) && !math.IsNaN(best) {
			results = append(results, newHit(c, best))
		}
	}

	sortHits(results)
	return truncateHits(results, limit)
}

// editBudget returns the caller's cap when supplied, otherwise adapts to
// the query length: 1 edit for very short queries, up to 3 for long ones.
func editBudget(query string, maxDistance *int) int {
	if maxDistance != nil {
		return *maxDistance
	}
	switch n := len(query); {
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	default:
		return 3
	}
}

// fuzzyBestScore takes the best weighted similarity across the code,
// title, and description fields.
func fuzzyBestScore(c course.Course, query string, budget int) float64 {
	best := 0.0

	// Code field, weight 1.0. When the raw comparison misses, scan code
	// prefixes within the edit budget so "MAAT" still reaches "MAT380"
	// via its "MAT" prefix.
	if c.Code != "" {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		codeScore := fuzzyScore(query, code, budget)
		if codeScore == 0 && code != "" {
			codeScore = bestPrefixScore(query, code, budget)
		}
		if codeScore > best {
			best = codeScore
		}
	}

	// Title words, weight 0.9, plus a substring fallback.
	if c.Title != "" {
		title := strings.ToUpper(strings.TrimSpace(c.Title))
		for _, word := range extractWords(title, fuzzyTitleMinWordLen) {
			wordScore := fuzzyScore(query, word, budget)
			if wordScore > math.Max(0.1, best*0.7) {
				best = math.Max(best, wordScore*fuzzyTitleWeight)
			}
		}
		if best < fuzzyTitleSubCutoff && len(title) >= len(query) && strings.Contains(title, query) {
			best = math.Max(best, fuzzyTitleSubstring)
		}
	}

	// Description words, weight 0.7, only when nothing better surfaced.
	if best < fuzzyDescCutoff && c.Description != "" {
		desc := strings.ToUpper(strings.TrimSpace(c.Description))
		for _, word := range extractWords(desc, fuzzyDescMinWordLen) {
			weighted := fuzzyScore(query, word, budget) * fuzzyDescWeight
			if weighted > best {
				best = weighted
			}
		}
	}

	return best
}

// bestPrefixScore scores the query against code prefixes whose length is
// within the edit budget of the query length and returns the best score,
// discounted to 90%.
func bestPrefixScore(query, code string, budget int) float64 {
	minLen := len(query) - budget
	if minLen < 1 {
		minLen = 1
	}
	maxLen := len(query) + budget
	if maxLen > len(code) {
		maxLen = len(code)
	}
	best := 0.0
	for i := minLen; i <= maxLen; i++ {
		if score := fuzzyScore(query, code[:i], budget); score > best {
			best = score
		}
	}
	return best * fuzzyPrefixWeight
}

// fuzzyScore is the similarity primitive: a cascade of exact, prefix, and
// substring checks, then normalized Levenshtein distance with a
// typo-tolerance boost and an over-length penalty. Returns a value in
// [0, 1]; 0 when the distance exceeds the budget.
func fuzzyScore(query, target string, budget int) float64 {
	if query == "" || target == "" {
		return 0.0
	}

	switch {
	case query == target:
		return 1.0
	case strings.EqualFold(query, target):
		return 0.98
	case strings.HasPrefix(target, query):
		return 0.95
	case len(query) > 2 && strings.HasPrefix(query, target):
		return 0.90
	case strings.Contains(target, query):
		return 0.85
	case len(query) > len(target) && strings.Contains(query, target):
		return 0.80
	}

	distance := edlib.LevenshteinDistance(query, target)
	if distance > budget {
		return 0.0
	}

	maxLen := len(query)
	if len(target) > maxLen {
		maxLen = len(target)
	}
	if maxLen == 0 {
		return 1.0
	}
	similarity := 1.0 - float64(distance)/float64(maxLen)

	// Shorter query matching a longer target at small distance is the
	// typo-correction case.
	if len(query) >= 3 && len(target) > len(query) && distance <= 2 {
		similarity = math.Min(1.0, similarity*1.1)
	}

	// Prefer tighter matches over much longer targets.
	if float64(len(target)) > float64(len(query))*1.5 {
		similarity *= 0.9
	}

	return math.Max(0.0, math.Min(1.0, similarity))
}

// extractWords splits on whitespace and keeps words of at least minLen.
func extractWords(text string, minLen int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Fields(text) {
		if len(w) >= minLen {
			words = append(words, w)
		}
	}
	return words
}
