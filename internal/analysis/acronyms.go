package analysis

import "strings"

// acronymExpansions maps uppercase acronyms common in French engineering
// curricula to the terms students actually mean. Expansion terms are
// appended to query token lists as-is; the document side is never expanded.
var acronymExpansions = map[string][]string{
	"POO":  {"programmation", "orientée", "objet"},
	"UML":  {"uml", "modélisation"},
	"API":  {"api", "interface", "programmation"},
	"CAO":  {"cao", "conception", "assistée"},
	"BDD":  {"base", "données", "bdd"},
	"IOT":  {"internet", "objets", "iot", "connectés"},
	"IA":   {"intelligence", "artificielle", "ia"},
	"ML":   {"machine", "learning", "apprentissage", "automatique"},
	"SQL":  {"sql", "requêtes", "données", "relationnel"},
	"ORM":  {"orm", "mapping", "objet", "relationnel"},
	"REST": {"rest", "api", "web", "service"},
	"TDD":  {"tdd", "test", "driven", "développement"},
	"CI":   {"ci", "intégration", "continue"},
	"CD":   {"cd", "déploiement", "continu"},
	"TCP":  {"tcp", "transmission", "protocole", "réseau"},
	"IP":   {"ip", "internet", "protocole", "réseau"},
	"HTTP": {"http", "web", "protocole"},
	"GUI":  {"gui", "interface", "graphique", "utilisateur"},
	"CLI":  {"cli", "commande", "ligne", "terminal"},
}

// ExpandAcronyms appends the expansion terms of any token whose uppercase
// form is a known acronym, then deduplicates preserving first-occurrence
// order.
func ExpandAcronyms(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}

	expanded := make([]string, 0, len(tokens))
	expanded = append(expanded, tokens...)
	for _, token := range tokens {
		if terms, ok := acronymExpansions[strings.ToUpper(token)]; ok {
			expanded = append(expanded, terms...)
		}
	}

	seen := make(map[string]struct{}, len(expanded))
	deduped := expanded[:0]
	for _, token := range expanded {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		deduped = append(deduped, token)
	}
	return deduped
}
