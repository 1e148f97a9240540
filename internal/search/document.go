package search

import (
	"github.com/antoinebou12/horaire-ets/internal/analysis"
	"github.com/antoinebou12/horaire-ets/internal/course"
)

// documentData holds the per-field term statistics BM25F scores against.
// Field lengths are clamped to >= 1 so length normalization never divides
// by zero.
type documentData struct {
	course course.Course

	codeLen  int
	titleLen int
	descLen  int

	codeTF  map[string]int
	titleTF map[string]int
	descTF  map[string]int
}

// corpusStats carries the corpus-wide field-length averages, each clamped
// to >= 1.0.
type corpusStats struct {
	avgCodeLen  float64
	avgTitleLen float64
	avgDescLen  float64
}

// preprocessCorpus tokenizes every course field-wise and computes the
// corpus averages. A document whose analysis panics is replaced by an
// empty-fields placeholder and retained: one malformed record must not
// poison the index.
func preprocessCorpus(courses []course.Course) ([]documentData, corpusStats) {
	docs := make([]documentData, 0, len(courses))
	for _, c := range courses {
		docs = append(docs, preprocessDocument(c))
	}

	var stats corpusStats
	stats.avgCodeLen = averageLength(docs, func(d documentData) int { return d.codeLen })
	stats.avgTitleLen = averageLength(docs, func(d documentData) int { return d.titleLen })
	stats.avgDescLen = averageLength(docs, func(d documentData) int { return d.descLen })
	return docs, stats
}

func preprocessDocument(c course.Course) (doc documentData) {
	// Placeholder on analysis failure; the course stays in the corpus so
	// filters and exact-code boosts can still see it.
	defer func() {
		if recover() != nil {
			doc = emptyDocument(c)
		}
	}()

	codeTokens := analysis.TokenizeField(c.Code)
	titleTokens := analysis.TokenizeField(c.Title)
	descTokens := analysis.TokenizeField(c.Description)

	return documentData{
		course:   c,
		codeLen:  clampLen(len(codeTokens)),
		titleLen: clampLen(len(titleTokens)),
		descLen:  clampLen(len(descTokens)),
		codeTF:   termFrequencies(codeTokens),
		titleTF:  termFrequencies(titleTokens),
		descTF:   termFrequencies(descTokens),
	}
}

func emptyDocument(c course.Course) documentData {
	return documentData{
		course:   c,
		codeLen:  1,
		titleLen: 1,
		descLen:  1,
		codeTF:   map[string]int{},
		titleTF:  map[string]int{},
		descTF:   map[string]int{},
	}
}

// containsTerm reports whether the term appears in any field.
func (d *documentData) containsTerm(term string) bool {
	if _, ok := d.codeTF[term]; ok {
		return true
	}
	if _, ok := d.titleTF[term]; ok {
		return true
	}
	_, ok := d.descTF[term]
	return ok
}

func termFrequencies(tokens []string) map[string]int {
	freqs := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freqs[token]++
	}
	return freqs
}

func clampLen(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func averageLength(docs []documentData, length func(documentData) int) float64 {
	if len(docs) == 0 {
		return 1.0
	}
	total := 0
	for _, d := range docs {
		total += length(d)
	}
	avg := float64(total) / float64(len(docs))
	if avg < 1.0 {
		return 1.0
	}
	return avg
}
