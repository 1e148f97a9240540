package search

import "github.com/antoinebou12/horaire-ets/internal/course"

func intPtr(v int) *int { return &v }

// testCorpus is the fixed eight-course catalogue the end-to-end scenarios
// run against.
func testCorpus() []course.Course {
	return []course.Course{
		{
			Code:        "MAT380",
			Title:       "MAT380 - Algèbre linéaire",
			Description: "Espaces vectoriels, matrices, transformations linéaires et valeurs propres.",
			Credits:     intPtr(4),
		},
		{
			Code:        "LOG100",
			Title:       "LOG100 - Introduction à la programmation",
			Description: "Concepts fondamentaux de la programmation: variables, boucles, fonctions.",
			Credits:     intPtr(3),
		},
		{
			Code:        "INF123",
			Title:       "INF123 - Structures de données",
			Description: "Listes, piles, files, arbres et tables de hachage. Analyse d'algorithmes.",
			Credits:     intPtr(3),
		},
		{
			Code:        "ELE216",
			Title:       "ELE216 - Circuits électriques",
			Description: "Analyse de circuits en courant continu et alternatif.",
			Credits:     intPtr(4),
		},
		{
			Code:        "MAT165",
			Title:       "MAT165 - Calcul différentiel",
			Description: "Limites, dérivées et applications du calcul différentiel.",
			Credits:     intPtr(4),
		},
		{
			Code:        "LOG200",
			Title:       "LOG200 - Programmation avancée",
			Description: "Programmation orientée objet, patrons de conception et tests unitaires.",
			Credits:     intPtr(4),
		},
		{
			Code:        "MEC636",
			Title:       "MEC636 - Mécanique des fluides",
			Description: "Statique et dynamique des fluides, équations de Navier-Stokes.",
			Credits:     intPtr(3),
		},
		{
			Code:        "GPA123",
			Title:       "GPA123 - Automatisation industrielle",
			Description: "Automates programmables et systèmes de production automatisés.",
			Credits:     intPtr(3),
		},
	}
}

// assertRankedInvariants checks the ordering and uniqueness invariants
// every search response must satisfy.
func assertRankedInvariants(t interface {
	Helper()
	Errorf(format string, args ...interface{})
}, hits []Hit) {
	t.Helper()
	seen := make(map[string]bool, len(hits))
	for i, hit := range hits {
		if hit.Score < 0 {
			t.Errorf("hit %d (%s) has negative score %v", i, hit.Code, hit.Score)
		}
		if seen[hit.Code] {
			t.Errorf("code %s appears more than once", hit.Code)
		}
		seen[hit.Code] = true
		if i > 0 {
			prev := hits[i-1]
			if hit.Score > prev.Score {
				t.Errorf("scores increase at position %d: %v -> %v", i, prev.Score, hit.Score)
			}
			if hit.Score == prev.Score && hit.Code < prev.Code {
				t.Errorf("tie at position %d not broken by code ascending: %s before %s",
					i, prev.Code, hit.Code)
			}
		}
	}
}
