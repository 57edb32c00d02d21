package entities

import "github.com/sandhi-dev/sandhi/internal/domain/values"

// Rule notation symbols.
const (
	NullSymbol     = "∅"
	SyllableSymbol = "σ"
)

// Pattern is a disjunction of feature-vector alternatives.
// A candidate matches when any alternative matches it.
type Pattern []values.FeatureVector

// Matches reports whether v satisfies some alternative.
func (p Pattern) Matches(v values.FeatureVector) bool {
	for _, alt := range p {
		if v.Matches(alt) {
			return true
		}
	}
	return false
}

// Element is one position of an environment or syllable template.
// A Boundary element matches only word-edge segments and ignores
// Alternatives. Offset is the syllable distance from the rule's target
// and is only consulted for syllable-anchored environments.
type Element struct {
	Alternatives Pattern
	Boundary     bool
	Offset       int
}

// Environment is the left or right context of a rule.
type Environment struct {
	Elements []Element
	// SyllableAware is set when the side contained a σ marker.
	SyllableAware bool
}

// IsAbsent returns true when the rule declared nothing on this side.
func (e Environment) IsAbsent() bool {
	return len(e.Elements) == 0
}

// MatchKind distinguishes ordinary targets from insertion points.
type MatchKind int

const (
	// MatchSegment targets existing segments matching Rule.Target.
	MatchSegment MatchKind = iota
	// MatchInsert targets the gap between segments (∅ in match position).
	MatchInsert
)

// ChangeKind is the rewrite a rule performs on a matched position.
type ChangeKind int

const (
	// ChangeModify overwrites the bound features of Change.Delta.
	ChangeModify ChangeKind = iota
	// ChangeDelete removes the matched segment (∅ in change position).
	ChangeDelete
	// ChangeInsert inserts a copy of Change.Insert at the matched gap.
	ChangeInsert
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeDelete:
		return "delete"
	case ChangeInsert:
		return "insert"
	default:
		return "modify"
	}
}

// Change is the right-hand side of a rule.
type Change struct {
	Kind   ChangeKind
	Delta  values.FeatureVector // ChangeModify
	Insert Phoneme              // ChangeInsert
}

// Rule is a compiled rewrite rule. Rules are never mutated after
// compilation and may be shared across goroutines.
type Rule struct {
	Group  string
	Text   string
	Match  MatchKind
	Target Pattern // empty for MatchInsert
	Change Change
	Pre    Environment
	Post   Environment
}

// HasEnvironment returns true if either side declares context.
func (r *Rule) HasEnvironment() bool {
	return !r.Pre.IsAbsent() || !r.Post.IsAbsent()
}

// IsInsertion returns true for rules whose match is ∅.
func (r *Rule) IsInsertion() bool {
	return r.Match == MatchInsert
}

// RuleGroup is a named run of consecutive rules. The trace reports one
// step per group.
type RuleGroup struct {
	Name  string
	Rules []Rule
}
