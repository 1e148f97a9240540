package analysis

import "strings"

// suffixRule rewrites a plural suffix to its singular form. Rules are
// applied in order; a rule whose plural form is absent leaves the token
// untouched (the singular form is already canonical).
type suffixRule struct {
	plural   string
	singular string
}

// Ordered light-French suffix rewrites. The sequence matters: earlier
// rules produce forms the later rules must not re-shorten.
var frenchSuffixRules = []suffixRule{
	{"ements", "ement"},
	{"ations", "ation"},
	{"iques", "ique"},
	{"eurs", "eur"},
	{"ités", "ité"},
	{"euses", "euse"},
	{"iers", "ier"},
	{"ables", "able"},
	{"ibles", "ible"},
	{"ifs", "if"},
	{"ives", "ive"},
	{"ances", "ance"},
	{"ences", "ence"},
	{"tions", "tion"},
	{"elles", "elle"},
	{"aux", "al"},
}

// pluralKeepSuffixes are endings whose trailing 's' is structural, not a
// plural marker.
var pluralKeepSuffixes = []string{"ss", "us", "is", "os"}

// StemFrench applies light French stemming: ordered suffix rewrites
// (plurals of -ement, -ation, -ique, ... families) followed by a trailing
// plural 's' strip. Tokens shorter than five runes pass through unchanged.
func StemFrench(token string) string {
	if len([]rune(token)) < 5 {
		return token
	}

	stemmed := token
	for _, rule := range frenchSuffixRules {
		if strings.HasSuffix(stemmed, rule.plural) {
			stemmed = stemmed[:len(stemmed)-len(rule.plural)] + rule.singular
		}
	}

	if len(stemmed) > 3 && strings.HasSuffix(stemmed, "s") && !hasKeepSuffix(stemmed) {
		stemmed = stemmed[:len(stemmed)-1]
	}
	return stemmed
}

func hasKeepSuffix(token string) bool {
	for _, suffix := range pluralKeepSuffixes {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}
