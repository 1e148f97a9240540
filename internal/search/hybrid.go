package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// SearchHybrid always runs both BM25F and fuzzy scoring with an enlarged
// candidate limit and fuses the two result sets. It never short-circuits
// to a single scorer on query shape — that routing belongs to the
// implicit path only (see Route). If fusion fails the BM25 results are
// returned alone.
func SearchHybrid(courses []course.Course, query string, limit int, maxDistance *int, opts *Options) []Hit {
	courses = FilterByOptions(courses, opts)
	trimmed, ok := validateInput(courses, query)
	if !ok {
		return []Hit{}
	}

	enlarged := limit * 2
	if enlarged < 1 {
		enlarged = 1
	}

	bm25Results := SearchBM25(courses, trimmed, enlarged, nil)
	fuzzyResults := SearchFuzzy(courses, trimmed, enlarged, maxDistance, nil)

	merged, err := fuseResults(bm25Results, fuzzyResults, limit)
	if err != nil {
		return SearchBM25(courses, trimmed, limit, nil)
	}
	return merged
}

// fuseResults normalizes the BM25 scores to [0,1], combines them with the
// already-normalized fuzzy scores at 60/40, deduplicates by code, and
// applies the rank micro-adjustment. A panic anywhere in fusion is
// converted to an error so the caller can fall back to BM25-only.
func fuseResults(bm25Results, fuzzyResults []Hit, limit int) (merged []Hit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fuse results: %v", r)
		}
	}()

	if limit < 0 {
		limit = 0
	}

	normalized := normalizeBM25Scores(bm25Results)

	byCode := make(map[string]Hit, len(normalized)+len(fuzzyResults))
	order := make([]string, 0, len(normalized)+len(fuzzyResults))

	for _, hit := range normalized {
		if hit.Code == "" {
			continue
		}
		weighted := hit.Score * hybridBM25Weight
		if math.IsInf(weighted, 0) || math.IsNaN(weighted) {
			continue
		}
		hit.Score = weighted
		if _, exists := byCode[hit.Code]; !exists {
			order = append(order, hit.Code)
		}
		byCode[hit.Code] = hit
	}

	for _, hit := range fuzzyResults {
		if hit.Code == "" {
			continue
		}
		weighted := hit.Score * hybridFuzzyWeight
		if math.IsInf(weighted, 0) || math.IsNaN(weighted) {
			continue
		}
		if existing, exists := byCode[hit.Code]; exists {
			combined := existing.Score + weighted
			existing.Score = math.Min(1.0, math.Max(0.0, combined))
			byCode[hit.Code] = existing
		} else {
			hit.Score = weighted
			byCode[hit.Code] = hit
			order = append(order, hit.Code)
		}
	}

	merged = make([]Hit, 0, len(order))
	for _, code := range order {
		merged = append(merged, byCode[code])
	}
	sortHits(merged)

	// Strictly unique scores for consumers that cannot tolerate ties; the
	// adjustment is far below user-visible precision.
	for i := range merged {
		adjusted := merged[i].Score - float64(i)*rankAdjustmentScale
		merged[i].Score = math.Max(0.0, math.Min(1.0, adjusted))
	}

	return truncateHits(merged, limit), nil
}

// normalizeBM25Scores min-max normalizes BM25 scores into [0,1]. When the
// observed range is too small to distinguish results, ranks get synthetic
// scores spread linearly over [0.9, 1.0]; a small-but-nonzero range gets a
// mild logarithmic re-spread to regain differentiation.
func normalizeBM25Scores(results []Hit) []Hit {
	if len(results) == 0 {
		return []Hit{}
	}

	normalized := make([]Hit, len(results))
	copy(normalized, results)

	minScore := math.Inf(1)
	maxScore := math.Inf(-1)
	for _, hit := range normalized {
		minScore = math.Min(minScore, hit.Score)
		maxScore = math.Max(maxScore, hit.Score)
	}

	scoreRange := maxScore - minScore
	similarityThreshold := math.Max(1e-10, maxScore*1e-6)

	if scoreRange < similarityThreshold {
		// Indistinguishable scores: order by score descending, code
		// ascending, and assign synthetic rank scores so fusion still has
		// a gradient.
		sort.SliceStable(normalized, func(i, j int) bool {
			if normalized[i].Score != normalized[j].Score {
				return normalized[i].Score > normalized[j].Score
			}
			return normalized[i].Code < normalized[j].Code
		})
		size := len(normalized)
		for i := range normalized {
			rankBonus := 0.0
			if size > 1 {
				rankBonus = float64(i) / float64(size-1)
			}
			synthetic := 1.0 - rankBonus*0.1
			normalized[i].Score = math.Max(0.9, math.Min(1.0, synthetic))
		}
		return normalized
	}

	if scoreRange < maxScore*0.1 {
		// Small but nonzero range: min-max plus a log re-spread.
		logBase := math.Max(1.01, 1.0+(scoreRange/maxScore)*10.0)
		for i := range normalized {
			score := normalized[i].Score
			if math.IsInf(score, 0) || math.IsNaN(score) {
				continue
			}
			value := (score - minScore) / scoreRange
			value = math.Log(1.0+value*(logBase-1.0)) / math.Log(logBase)
			normalized[i].Score = math.Max(0.0, math.Min(1.0, value))
		}
		return normalized
	}

	for i := range normalized {
		score := normalized[i].Score
		if math.IsInf(score, 0) || math.IsNaN(score) {
			continue
		}
		normalized[i].Score = math.Max(0.0, math.Min(1.0, (score-minScore)/scoreRange))
	}
	return normalized
}
