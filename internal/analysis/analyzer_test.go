package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Algèbre Linéaire", "algèbre linéaire"},
		{"strips html tags", "intro <b>aux</b> circuits", "intro aux circuits"},
		{"strips html entities", "data &amp; algorithms &#233;", "data algorithms"},
		{"collapses whitespace", "  a \t b \n c  ", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestTokenize_CodeBoundarySplit(t *testing.T) {
	// Course-code-shaped text must split so "GTI320" matches titles
	// containing the code.
	tokens := Tokenize("GTI320")
	assert.Equal(t, []string{"gti", "320"}, tokens)
}

func TestTokenize_PreservesAccents(t *testing.T) {
	tokens := Tokenize("algèbre linéaire")
	assert.Contains(t, tokens, "algèbre")
	assert.Contains(t, tokens, "linéaire")
}

func TestTokenize_DropsStopwords(t *testing.T) {
	tokens := Tokenize("introduction à la programmation")
	assert.NotContains(t, tokens, "introduction")
	assert.NotContains(t, tokens, "à")
	assert.NotContains(t, tokens, "la")
	assert.Contains(t, tokens, "programmation")
}

func TestTokenize_MasksPunctuation(t *testing.T) {
	tokens := Tokenize("données: structures, algorithmes!")
	assert.Equal(t, []string{"donnée", "structure", "algorithme"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   "))
	assert.Empty(t, Tokenize("?!,;"))
}

func TestBigrams(t *testing.T) {
	assert.Equal(t, []string{"a_b", "b_c"}, Bigrams([]string{"a", "b", "c"}))
	assert.Empty(t, Bigrams([]string{"solo"}))
	assert.Empty(t, Bigrams(nil))
}

func TestTokenizeField_IncludesBigrams(t *testing.T) {
	tokens := TokenizeField("structures de données")
	assert.Contains(t, tokens, "structure")
	assert.Contains(t, tokens, "donnée")
	assert.Contains(t, tokens, "structure_donnée")
}

func TestTokenizeQuery_ExpandsAcronyms(t *testing.T) {
	tokens := TokenizeQuery("POO")

	// The acronym itself survives plus the expansion terms.
	assert.Contains(t, tokens, "poo")
	assert.Contains(t, tokens, "programmation")
	assert.Contains(t, tokens, "orientée")
	assert.Contains(t, tokens, "objet")
}

func TestTokenizeField_DoesNotExpandAcronyms(t *testing.T) {
	tokens := TokenizeField("POO")
	assert.NotContains(t, tokens, "programmation")
}

func TestTokenizeQuery_Deterministic(t *testing.T) {
	first := TokenizeQuery("structures de données et algorithmes BDD")
	second := TokenizeQuery("structures de données et algorithmes BDD")
	require.Equal(t, first, second)
}

func TestExpandAcronyms_DedupPreservesOrder(t *testing.T) {
	expanded := ExpandAcronyms([]string{"api", "rest"})

	// "api" appears in both expansions; it must appear exactly once, at
	// its first position.
	count := 0
	for _, tok := range expanded {
		if tok == "api" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "api", expanded[0])
}
