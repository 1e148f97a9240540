package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

func TestSearchHybrid_ExactCodeFirst(t *testing.T) {
	hits := SearchHybrid(testCorpus(), "MAT380", 10, nil, nil)

	require.NotEmpty(t, hits)
	assert.Equal(t, "MAT380", hits[0].Code)
	assertRankedInvariants(t, hits)
}

func TestSearchHybrid_ScoresInUnitRange(t *testing.T) {
	hits := SearchHybrid(testCorpus(), "programmation", 10, nil, nil)

	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 1.0)
	}
}

func TestSearchHybrid_ScoresStrictlyDecreasing(t *testing.T) {
	// The rank micro-adjustment guarantees strictly unique scores.
	hits := SearchHybrid(testCorpus(), "programmation", 10, nil, nil)

	require.Greater(t, len(hits), 1)
	for i := 1; i < len(hits); i++ {
		assert.Less(t, hits[i].Score, hits[i-1].Score,
			"positions %d and %d must not share a score", i-1, i)
	}
}

func TestSearchHybrid_NoMatch(t *testing.T) {
	assert.Empty(t, SearchHybrid(testCorpus(), "XYZ999ABC", 10, nil, nil))
}

func TestSearchHybrid_EmptyInputs(t *testing.T) {
	assert.Empty(t, SearchHybrid(testCorpus(), "", 10, nil, nil))
	assert.Empty(t, SearchHybrid(nil, "MAT380", 10, nil, nil))
}

func TestSearchHybrid_LimitRespected(t *testing.T) {
	hits := SearchHybrid(testCorpus(), "programmation", 2, nil, nil)
	assert.LessOrEqual(t, len(hits), 2)
}

func TestSearchHybrid_MergesBothScorers(t *testing.T) {
	// "MAAT380" reaches MAT380 through both scorers: BM25 via the "380"
	// token, fuzzy via edit distance. Fusion must keep it on top.
	hits := SearchHybrid(testCorpus(), "MAAT380", 10, intPtr(2), nil)

	require.NotEmpty(t, hits)
	assert.Equal(t, "MAT380", hits[0].Code)
}

func TestSearchHybrid_WithOptions(t *testing.T) {
	opts := &Options{Programmes: []course.Programme{course.ProgrammeLOG}}
	hits := SearchHybrid(testCorpus(), "programmation", 10, nil, opts)

	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Equal(t, "LOG", h.Code[:3])
	}
}

func TestSearchHybrid_Deterministic(t *testing.T) {
	first := SearchHybrid(testCorpus(), "données structures", 10, nil, nil)
	second := SearchHybrid(testCorpus(), "données structures", 10, nil, nil)
	assert.Equal(t, first, second)
}

func TestNormalizeBM25Scores_StandardMinMax(t *testing.T) {
	hits := []Hit{
		{Code: "A", Score: 10.0},
		{Code: "B", Score: 5.0},
		{Code: "C", Score: 1.0},
	}
	normalized := normalizeBM25Scores(hits)

	require.Len(t, normalized, 3)
	assert.InDelta(t, 1.0, normalized[0].Score, 1e-9)
	assert.InDelta(t, 0.0, normalized[2].Score, 1e-9)
	assert.Greater(t, normalized[0].Score, normalized[1].Score)
	assert.Greater(t, normalized[1].Score, normalized[2].Score)

	// Originals untouched.
	assert.Equal(t, 10.0, hits[0].Score)
}

func TestNormalizeBM25Scores_IndistinguishableScores(t *testing.T) {
	hits := []Hit{
		{Code: "C", Score: 2.0},
		{Code: "A", Score: 2.0},
		{Code: "B", Score: 2.0},
	}
	normalized := normalizeBM25Scores(hits)

	// Synthetic rank scores spread linearly over [0.9, 1.0], ordered by
	// code for ties.
	require.Len(t, normalized, 3)
	assert.Equal(t, "A", normalized[0].Code)
	assert.Equal(t, "B", normalized[1].Code)
	assert.Equal(t, "C", normalized[2].Code)
	assert.InDelta(t, 1.0, normalized[0].Score, 1e-9)
	assert.InDelta(t, 0.95, normalized[1].Score, 1e-9)
	assert.InDelta(t, 0.9, normalized[2].Score, 1e-9)
}

func TestNormalizeBM25Scores_SmallRangeLogRespread(t *testing.T) {
	// Range is 2% of max: small but distinguishable, so the log re-spread
	// branch applies. Order must be preserved, values within [0, 1].
	hits := []Hit{
		{Code: "A", Score: 1.00},
		{Code: "B", Score: 0.99},
		{Code: "C", Score: 0.98},
	}
	normalized := normalizeBM25Scores(hits)

	require.Len(t, normalized, 3)
	assert.InDelta(t, 1.0, normalized[0].Score, 1e-9)
	assert.InDelta(t, 0.0, normalized[2].Score, 1e-9)
	assert.Greater(t, normalized[0].Score, normalized[1].Score)
	assert.Greater(t, normalized[1].Score, normalized[2].Score)
}

func TestNormalizeBM25Scores_SingleResult(t *testing.T) {
	normalized := normalizeBM25Scores([]Hit{{Code: "A", Score: 3.7}})
	require.Len(t, normalized, 1)
	assert.InDelta(t, 1.0, normalized[0].Score, 1e-9)
}

func TestNormalizeBM25Scores_Empty(t *testing.T) {
	assert.Empty(t, normalizeBM25Scores(nil))
}

func TestFuseResults_WeightedCombine(t *testing.T) {
	bm25 := []Hit{
		{Code: "A", Score: 2.0},
		{Code: "B", Score: 1.0},
	}
	fuzzy := []Hit{
		{Code: "A", Score: 1.0},
		{Code: "C", Score: 0.5},
	}

	merged, err := fuseResults(bm25, fuzzy, 10)
	require.NoError(t, err)
	require.Len(t, merged, 3)

	byCode := make(map[string]float64, len(merged))
	for _, h := range merged {
		byCode[h.Code] = h.Score
	}

	// A: bm25 normalized 1.0 * 0.6 + fuzzy 1.0 * 0.4 = 1.0 (before the
	// micro-adjustment). B: 0.0 * 0.6. C: fuzzy-only 0.5 * 0.4.
	assert.InDelta(t, 1.0, byCode["A"], 1e-6)
	assert.InDelta(t, 0.0, byCode["B"], 1e-6)
	assert.InDelta(t, 0.2, byCode["C"], 1e-6)

	assert.Equal(t, "A", merged[0].Code)
}

func TestFuseResults_LimitAndOrdering(t *testing.T) {
	bm25 := []Hit{
		{Code: "B", Score: 3.0},
		{Code: "A", Score: 2.0},
		{Code: "C", Score: 1.0},
	}
	merged, err := fuseResults(bm25, nil, 2)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
	assert.Equal(t, "B", merged[0].Code)
	assertRankedInvariants(t, merged)
}
