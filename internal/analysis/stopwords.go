package analysis

import "strings"

// stopwords holds common French articles, prepositions, demonstratives and
// quantifiers, plus academic filler that carries no ranking signal in
// course descriptions. Lookup is case-insensitive and applies to both
// surface forms and stems.
var stopwords = buildStopwordSet([]string{
	// Articles and prepositions
	"le", "la", "les", "de", "des", "du", "un", "une", "et", "ou",
	"pour", "par", "dans", "sur", "au", "aux", "avec", "en", "à",
	// Demonstratives and relatives
	"ce", "cette", "ces", "que", "qui", "dont", "où", "comme",
	// Quantifiers
	"tout", "tous", "toute", "toutes", "plus", "moins", "très",
	// Conjugated common verbs
	"être", "avoir", "faire", "peut", "peuvent", "sont", "est", "sera", "seront",
	// Academic filler
	"cours", "étudiant", "étudiante", "permet", "vise", "offre",
	"notions", "présente", "terme", "mesure", "travail", "travaux",
	"introduction", "base", "bases", "principes", "principe",
	"ainsi", "aussi", "entre", "autres", "autre", "même", "mêmes",
})

func buildStopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// IsStopword reports whether the token is on the stopword list.
func IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}
