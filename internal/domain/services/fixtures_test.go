package services

import (
	"testing"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/stretchr/testify/require"
)

// voicingSpec is the intervocalic voicing grammar used across tests.
func voicingSpec(rules ...entities.RuleSpec) *entities.GrammarSpec {
	if len(rules) == 0 {
		rules = []entities.RuleSpec{{Group: "Voicing", Rule: "t > [+voice] / a_a"}}
	}
	return &entities.GrammarSpec{
		Metadata: entities.GrammarMetadata{Name: "voicing", Version: "1.0.0"},
		Features: []string{"syll", "voice", "son", "back", "strid"},
		Phonemes: []entities.PhonemeSpec{
			{Symbol: "a", Features: "+syll -voice +son -back -strid"},
			{Symbol: "t", Features: "-syll -voice -son -back -strid"},
			{Symbol: "d", Features: "-syll +voice -son -back -strid"},
			{Symbol: "k", Features: "-syll -voice -son +back -strid"},
			{Symbol: "g", Features: "-syll +voice -son +back -strid"},
			{Symbol: "r", Features: "-syll +voice +son -back -strid"},
			{Symbol: "ts", Name: "c", Features: "-syll -voice -son -back +strid"},
		},
		Abbreviations: []entities.AbbreviationSpec{
			{Symbol: "C", Features: "-syll"},
			{Symbol: "V", Features: "+syll"},
			{Symbol: "T", Members: []string{"t", "k"}},
		},
		Syllables: []string{"CV", "CVC", "CCV", "V"},
		Rules:     rules,
	}
}

func mustCompile(t *testing.T, spec *entities.GrammarSpec) *entities.Grammar {
	t.Helper()
	g, err := NewGrammarCompiler().Compile(spec)
	require.NoError(t, err)
	return g
}

func mustWord(t *testing.T, g *entities.Grammar, input string) *entities.Word {
	t.Helper()
	w, err := g.Underlying(input)
	require.NoError(t, err)
	return w
}

// scenarioSpec is the minimal three-phoneme voicing grammar.
func scenarioSpec() *entities.GrammarSpec {
	return &entities.GrammarSpec{
		Metadata: entities.GrammarMetadata{Name: "scenario"},
		Features: []string{"syll", "voice"},
		Phonemes: []entities.PhonemeSpec{
			{Symbol: "a", Features: "+syll -voice"},
			{Symbol: "t", Features: "-syll -voice"},
			{Symbol: "d", Features: "-syll +voice"},
		},
		Rules: []entities.RuleSpec{{Group: "Voicing", Rule: "t > [+voice] / a_a"}},
	}
}

func firstRule(g *entities.Grammar) *entities.Rule {
	return &g.Groups()[0].Rules[0]
}
