package search

import (
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Algorithm selects a scorer.
type Algorithm string

const (
	AlgorithmBM25   Algorithm = "bm25"
	AlgorithmFuzzy  Algorithm = "fuzzy"
	AlgorithmHybrid Algorithm = "hybrid"
)

// ParseAlgorithm maps a raw selector to an Algorithm, defaulting to
// hybrid for unknown or empty input.
func ParseAlgorithm(raw string) Algorithm {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bm25":
		return AlgorithmBM25
	case "fuzzy":
		return AlgorithmFuzzy
	default:
		return AlgorithmHybrid
	}
}

// routeCacheSize bounds the routing memo. Routing is a pure function of
// the query string, so caching cannot change results — it only skips
// re-classifying hot queries.
const routeCacheSize = 4096

var routeCache, _ = lru.New[string, Algorithm](routeCacheSize)

// Route picks a scorer for the implicit path, i.e. when the caller did
// not request an algorithm explicitly:
//
//   - fuzzy for code-like fragments (contains a digit, ≤ 6 chars) and
//     short single words (3-10 chars), where typo tolerance matters most;
//   - BM25 for long (> 20 chars) or many-word (≥ 4) queries, which are
//     phrase-like and gain nothing from edit distance;
//   - hybrid for everything in between.
func Route(query string) Algorithm {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return AlgorithmHybrid
	}

	if cached, ok := routeCache.Get(trimmed); ok {
		return cached
	}

	algorithm := classifyQuery(trimmed)
	routeCache.Add(trimmed, algorithm)
	return algorithm
}

func classifyQuery(trimmed string) Algorithm {
	length := len(trimmed)
	words := len(strings.Fields(trimmed))

	codeLike := containsDigit(trimmed) && length <= 6
	shortSingleWord := words == 1 && length >= 3 && length <= 10
	if codeLike || shortSingleWord {
		return AlgorithmFuzzy
	}

	if length > 20 || words >= 4 {
		return AlgorithmBM25
	}
	return AlgorithmHybrid
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
