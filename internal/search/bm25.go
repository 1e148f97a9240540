package search

import (
	"math"
	"strings"

	"github.com/antoinebou12/horaire-ets/internal/analysis"
	"github.com/antoinebou12/horaire-ets/internal/course"
)

// SearchBM25 ranks courses against the query with field-weighted BM25
// (BM25F) plus lexical-similarity boosts. Options, when non-nil, restrict
// the candidate set before scoring. Results are sorted score descending,
// code ascending, and truncated to limit. Empty query or corpus yields an
// empty slice.
func SearchBM25(courses []course.Course, query string, limit int, opts *Options) []Hit {
	courses = FilterByOptions(courses, opts)
	trimmed, ok := validateInput(courses, query)
	if !ok {
		return []Hit{}
	}

	queryTerms := analysis.TokenizeQuery(trimmed)
	if len(queryTerms) == 0 {
		return []Hit{}
	}

	docs, stats := preprocessCorpus(courses)
	idf := computeIDF(queryTerms, docs)
	isCodeQuery := looksLikeCodeQuery(trimmed)

	results := make([]Hit, 0, len(docs))
	for i := range docs {
		score := scoreBM25F(queryTerms, &docs[i], stats, idf, trimmed, isCodeQuery)
		if score > scoreEpsilon && !math.IsInf(score, 0) && !math.IsNaN(score) {
			results = append(results, newHit(docs[i].course, score))
		}
	}

	sortHits(results)
	return truncateHits(results, limit)
}

// computeIDF returns idf(t) = log(1 + (N - n + 0.5) / (n + 0.5)) for each
// query term, where n counts documents containing t in any field. Terms
// absent from the corpus get a small non-zero floor so rare-term queries
// still participate in the substring boosts. Bigram terms are boosted.
func computeIDF(queryTerms []string, docs []documentData) map[string]float64 {
	idf := make(map[string]float64, len(queryTerms))
	total := float64(len(docs))

	for _, term := range queryTerms {
		n := 0
		for i := range docs {
			if docs[i].containsTerm(term) {
				n++
			}
		}

		if n > 0 {
			value := math.Log(1.0 + (total-float64(n)+0.5)/(float64(n)+0.5))
			if strings.Contains(term, "_") {
				value *= bigramIDFBoost
			}
			idf[term] = value
		} else {
			idf[term] = math.Log(1.0+total/0.5) * 0.1
		}
	}
	return idf
}

// scoreBM25F computes the field-weighted BM25 score for one document and
// layers the exact/prefix/substring code boosts on top.
func scoreBM25F(queryTerms []string, doc *documentData, stats corpusStats,
	idf map[string]float64, originalQuery string, isCodeQuery bool) float64 {

	score := 0.0

	effectiveCodeWeight := weightCode
	if isCodeQuery {
		effectiveCodeWeight = weightCode * 2.0
	}

	for _, term := range queryTerms {
		termIDF := idf[term]
		if termIDF == 0 {
			continue
		}

		codeScore := fieldScore(doc.codeTF[term], doc.codeLen, stats.avgCodeLen, bCode)
		titleScore := fieldScore(doc.titleTF[term], doc.titleLen, stats.avgTitleLen, bTitle)
		descScore := fieldScore(doc.descTF[term], doc.descLen, stats.avgDescLen, bDesc)

		score += termIDF * (effectiveCodeWeight*codeScore +
			weightTitle*titleScore +
			weightDesc*descScore)
	}

	// Code similarity boosts, strongest first. Comparisons are on
	// uppercased trimmed strings.
	code := strings.ToUpper(strings.TrimSpace(doc.course.Code))
	upperQuery := strings.ToUpper(strings.TrimSpace(originalQuery))
	switch {
	case code == "" || upperQuery == "":
	case code == upperQuery:
		score += exactCodeBoost
	case strings.HasPrefix(code, upperQuery) && isCodeQuery:
		score += codePrefixBoost
	case strings.Contains(code, upperQuery) && len(upperQuery) >= 3:
		score += codeSubstringBoost
	}

	// Single-word non-code queries also get substring boosts against the
	// raw title and description.
	if !isCodeQuery && len(strings.Fields(originalQuery)) == 1 {
		lowerQuery := strings.ToLower(strings.TrimSpace(originalQuery))
		if len(lowerQuery) >= 3 {
			if strings.Contains(strings.ToLower(doc.course.Title), lowerQuery) {
				score += titleSubstringBoost
			}
			if strings.Contains(strings.ToLower(doc.course.Description), lowerQuery) {
				score += descSubstringBoost
			}
		}
	}

	return score
}

// fieldScore is the per-field BM25 contribution:
//
//	norm = 1 - b + b*(len/avgLen)
//	score = tf*(k1+1) / (tf + k1*norm)
func fieldScore(tf, fieldLen int, avgLen, b float64) float64 {
	if tf == 0 {
		return 0.0
	}
	if avgLen < 1.0 {
		avgLen = 1.0
	}
	norm := 1.0 - b + b*(float64(fieldLen)/avgLen)
	return float64(tf) * (k1 + 1.0) / (float64(tf) + k1*norm)
}

// looksLikeCodeQuery reports whether the query is code-shaped (sigle):
// 2-4 letters optionally followed by up to 4 digits after trim+uppercase.
func looksLikeCodeQuery(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if upper == "" {
		return false
	}
	return codeQueryRegex.MatchString(upper)
}

// validateInput trims the query and rejects empty queries or corpora.
func validateInput(courses []course.Course, query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(courses) == 0 {
		return "", false
	}
	return trimmed, true
}
