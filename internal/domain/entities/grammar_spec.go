package entities

import "fmt"

// GrammarSpec is the raw grammar document as produced by a loader.
// It carries text only; GrammarCompiler resolves it into a Grammar.
type GrammarSpec struct {
	Metadata      GrammarMetadata    `yaml:"grammar" json:"grammar"`
	Features      []string           `yaml:"features" json:"features"`
	Phonemes      []PhonemeSpec      `yaml:"phonemes" json:"phonemes"`
	Abbreviations []AbbreviationSpec `yaml:"abbreviations,omitempty" json:"abbreviations,omitempty"`
	Syllables     []string           `yaml:"syllables,omitempty" json:"syllables,omitempty"`
	Rules         []RuleSpec         `yaml:"rules" json:"rules"`
}

// GrammarMetadata describes a grammar.
type GrammarMetadata struct {
	Name            string `yaml:"name" json:"name"`
	Version         string `yaml:"version,omitempty" json:"version,omitempty"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	SyllabicFeature string `yaml:"syllabic_feature,omitempty" json:"syllabic_feature,omitempty"`
}

// PhonemeSpec declares one phoneme: its display symbol, an optional name
// usable in rules, and a "+f -g" feature specification.
type PhonemeSpec struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Features string `yaml:"features" json:"features"`
}

// AbbreviationSpec declares a rule macro. Exactly one of Features and
// Members is set.
type AbbreviationSpec struct {
	Symbol   string   `yaml:"symbol" json:"symbol"`
	Features string   `yaml:"features,omitempty" json:"features,omitempty"`
	Members  []string `yaml:"members,omitempty" json:"members,omitempty"`
}

// RuleSpec is one rule line belonging to a named group.
type RuleSpec struct {
	Group string `yaml:"group" json:"group"`
	Rule  string `yaml:"rule" json:"rule"`
}

// DefaultSyllabicFeature is the feature whose True value marks a nucleus.
const DefaultSyllabicFeature = "syll"

// SyllabicFeatureOrDefault returns the configured syllabic feature or the default.
func (m GrammarMetadata) SyllabicFeatureOrDefault() string {
	if m.SyllabicFeature == "" {
		return DefaultSyllabicFeature
	}
	return m.SyllabicFeature
}

// Validate checks the structural invariants that do not need symbol
// resolution. Cross references are checked during compilation.
func (s *GrammarSpec) Validate() error {
	if s.Metadata.Name == "" {
		return &GrammarError{Section: "grammar", Message: "name cannot be empty"}
	}
	if len(s.Features) == 0 {
		return &GrammarError{Section: "features", Message: "at least one feature is required"}
	}
	if len(s.Phonemes) == 0 {
		return &GrammarError{Section: "phonemes", Message: "at least one phoneme is required"}
	}

	for i, p := range s.Phonemes {
		if p.Symbol == "" {
			return &GrammarError{Section: "phonemes", Item: fmt.Sprintf("#%d", i+1), Message: "symbol cannot be empty"}
		}
	}

	for i, a := range s.Abbreviations {
		if a.Symbol == "" {
			return &GrammarError{Section: "abbreviations", Item: fmt.Sprintf("#%d", i+1), Message: "symbol cannot be empty"}
		}
		if (a.Features == "") == (len(a.Members) == 0) {
			return &GrammarError{Section: "abbreviations", Item: a.Symbol, Message: "exactly one of features or members must be set"}
		}
	}

	for i, r := range s.Rules {
		if r.Group == "" {
			return &GrammarError{Section: "rules", Item: fmt.Sprintf("#%d", i+1), Message: "group cannot be empty"}
		}
		if r.Rule == "" {
			return &GrammarError{Section: "rules", Item: r.Group, Message: "rule text cannot be empty"}
		}
	}

	return nil
}
