package search

import "sort"

// sortHits orders results score descending with a code-ascending
// secondary key, so identical inputs always produce identical orderings.
func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Code < hits[j].Code
	})
}

// truncateHits caps the result list at max(0, limit).
func truncateHits(hits []Hit, limit int) []Hit {
	if limit < 0 {
		limit = 0
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// sortAutocompleteHits orders autocomplete results score descending,
// code ascending.
func sortAutocompleteHits(hits []AutocompleteHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Code < hits[j].Code
	})
}

// truncateAutocompleteHits caps the result list at max(0, limit).
func truncateAutocompleteHits(hits []AutocompleteHit, limit int) []AutocompleteHit {
	if limit < 0 {
		limit = 0
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
