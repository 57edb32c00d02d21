package services

import (
	"testing"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarCompiler_Compile(t *testing.T) {
	g := mustCompile(t, voicingSpec())

	assert.Equal(t, "voicing", g.Name())
	assert.Equal(t, "syll", g.Metadata.SyllabicFeature)
	assert.Equal(t, 5, g.Width())
	assert.Len(t, g.Phonemes(), 7)
	assert.Len(t, g.Abbreviations(), 3)
	assert.Equal(t, 1, g.RuleCount())

	members, ok := g.Abbreviation("T")
	require.True(t, ok)
	assert.Len(t, members.Alternatives, 2)
}

func TestGrammarCompiler_Compile_GroupsConsecutiveRules(t *testing.T) {
	g := mustCompile(t, voicingSpec(
		entities.RuleSpec{Group: "A", Rule: "t > d"},
		entities.RuleSpec{Group: "A", Rule: "k > g"},
		entities.RuleSpec{Group: "B", Rule: "d > t"},
		entities.RuleSpec{Group: "A", Rule: "g > k"},
	))

	groups := g.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "A", groups[0].Name)
	assert.Len(t, groups[0].Rules, 2)
	assert.Equal(t, "B", groups[1].Name)
	assert.Equal(t, "A", groups[2].Name)
	assert.Equal(t, "g > k", groups[2].Rules[0].Text)
	assert.Equal(t, 4, g.RuleCount())
}

func TestGrammarCompiler_Compile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *entities.GrammarSpec)
		section string
		message string
	}{
		{
			name:    "invalid version",
			mutate:  func(s *entities.GrammarSpec) { s.Metadata.Version = "one" },
			section: "grammar",
			message: "semver",
		},
		{
			name:    "unknown feature in phoneme",
			mutate:  func(s *entities.GrammarSpec) { s.Phonemes[0].Features = "+syll +nasal" },
			section: "phonemes",
			message: "unknown feature",
		},
		{
			name:    "duplicate phoneme",
			mutate:  func(s *entities.GrammarSpec) { s.Phonemes[1].Symbol = "a" },
			section: "phonemes",
			message: "duplicate",
		},
		{
			name: "unknown abbreviation member",
			mutate: func(s *entities.GrammarSpec) {
				s.Abbreviations[2].Members = []string{"t", "q"}
			},
			section: "abbreviations",
			message: "unknown member",
		},
		{
			name:    "unknown feature in abbreviation",
			mutate:  func(s *entities.GrammarSpec) { s.Abbreviations[0].Features = "-nasal" },
			section: "abbreviations",
			message: "unknown feature",
		},
		{
			name:    "template without nucleus",
			mutate:  func(s *entities.GrammarSpec) { s.Syllables = []string{"CC"} },
			section: "syllables",
			message: "no nucleus",
		},
		{
			name:    "template with two nuclei",
			mutate:  func(s *entities.GrammarSpec) { s.Syllables = []string{"CVV"} },
			section: "syllables",
			message: "more than one nucleus",
		},
		{
			name:    "template with unknown symbol",
			mutate:  func(s *entities.GrammarSpec) { s.Syllables = []string{"CVX"} },
			section: "syllables",
			message: "unknown symbol",
		},
		{
			name:    "template with syllable marker",
			mutate:  func(s *entities.GrammarSpec) { s.Syllables = []string{"CσV"} },
			section: "syllables",
			message: "not allowed",
		},
		{
			name:    "undeclared syllabic feature",
			mutate:  func(s *entities.GrammarSpec) { s.Metadata.SyllabicFeature = "vocalic" },
			section: "grammar",
			message: "syllabic feature",
		},
		{
			name:    "missing name",
			mutate:  func(s *entities.GrammarSpec) { s.Metadata.Name = "" },
			section: "grammar",
			message: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := voicingSpec()
			tt.mutate(spec)

			_, err := NewGrammarCompiler().Compile(spec)

			var gerr *entities.GrammarError
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.section, gerr.Section)
			assert.Contains(t, gerr.Message, tt.message)
		})
	}
}

func TestGrammarCompiler_Compile_RuleError(t *testing.T) {
	spec := voicingSpec(
		entities.RuleSpec{Group: "Good", Rule: "t > d"},
		entities.RuleSpec{Group: "Bad", Rule: "t > > d"},
	)

	_, err := NewGrammarCompiler().Compile(spec)

	var rerr *entities.RuleCompileError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Bad", rerr.Group)
	assert.Equal(t, "t > > d", rerr.Rule)
}

func TestGrammarCompiler_Compile_Nil(t *testing.T) {
	_, err := NewGrammarCompiler().Compile(nil)
	assert.Error(t, err)
}

func TestGrammarCompiler_Compile_DoesNotMutateSpec(t *testing.T) {
	spec := voicingSpec()
	spec.Phonemes[0].Symbol = " a "

	_, err := NewGrammarCompiler().Compile(spec)
	require.NoError(t, err)
	assert.Equal(t, " a ", spec.Phonemes[0].Symbol)
}
