// Package search implements the course ranking engine: a BM25F
// field-weighted scorer, an edit-distance fuzzy scorer, an adaptive hybrid
// dispatcher that fuses the two, an autocomplete scorer, and the
// programme/credit pre-filter. All scorers are pure functions over an
// immutable corpus snapshot; queries run to completion with no shared
// mutable state.
package search

import (
	"regexp"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// BM25 tuning constants.
const (
	// k1 is the BM25 term-frequency saturation parameter.
	k1 = 1.2

	// Field weights for BM25F. The code weight doubles when the query is
	// code-shaped (see looksLikeCodeQuery).
	weightCode  = 3.0
	weightTitle = 1.8
	weightDesc  = 0.8

	// Per-field length-normalization parameters. The code field is short,
	// so it gets the least normalization.
	bCode  = 0.3
	bTitle = 0.5
	bDesc  = 0.75

	// bigramIDFBoost multiplies the IDF of bigram terms so phrase
	// proximity outranks bag-of-words co-occurrence.
	bigramIDFBoost = 1.5

	// Lexical boosts layered on top of the BM25F sum.
	exactCodeBoost      = 5.0
	codePrefixBoost     = 2.0
	codeSubstringBoost  = 1.5
	titleSubstringBoost = 0.8
	descSubstringBoost  = 0.5

	// scoreEpsilon is the minimum score a document must clear to be
	// emitted; guards floating-point dust.
	scoreEpsilon = 1e-10
)

// Hybrid fusion constants.
const (
	// Weighted-combine shares for the hybrid fuser.
	hybridBM25Weight  = 0.6
	hybridFuzzyWeight = 0.4

	// rankAdjustmentScale is subtracted per result position after fusion
	// so downstream consumers see strictly unique scores.
	rankAdjustmentScale = 1e-12
)

// codeQueryRegex matches code-shaped (sigle-shaped) queries after
// trim+uppercase: 2-4 letters optionally followed by up to 4 digits.
// Examples: LOG, LOG100, INF1120, GTI.
var codeQueryRegex = regexp.MustCompile(`^[A-Z]{2,4}\d{0,4}$`)

// Hit is a ranked search result.
type Hit struct {
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
	Score       float64 `json:"score"`
	URL         string  `json:"url,omitempty"`
}

// AutocompleteHit is a lightweight result for autocomplete dropdowns.
type AutocompleteHit struct {
	Code  string  `json:"code"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Options restricts the candidate set before scoring. A nil or zero value
// is a no-op. Inconsistent options (e.g. MaxCredits < MinCredits, unknown
// programme tags) are not an error: the filter simply matches nothing.
type Options struct {
	// Programmes keeps courses whose code starts with any named prefix.
	Programmes []course.Programme

	// MinCredits / MaxCredits are inclusive bounds. Courses without a
	// credit count fail the filter when either bound is set.
	MinCredits *int
	MaxCredits *int
}

// IsZero reports whether the options impose no constraint.
func (o *Options) IsZero() bool {
	return o == nil || (len(o.Programmes) == 0 && o.MinCredits == nil && o.MaxCredits == nil)
}

// newHit builds a Hit from a course and score.
func newHit(c course.Course, score float64) Hit {
	return Hit{
		Code:        c.Code,
		Title:       c.Title,
		Description: c.Description,
		Credits:     c.Credits,
		Score:       score,
		URL:         c.URL,
	}
}
