package entities

import "fmt"

// GrammarError indicates a malformed or inconsistent grammar.
// It is always raised before any derivation runs.
type GrammarError struct {
	Section string // features, phonemes, abbreviations, syllables, rules, grammar
	Item    string // offending symbol, feature or template; may be empty
	Message string
}

func (e *GrammarError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("grammar error in %s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("grammar error in %s (%s): %s", e.Section, e.Item, e.Message)
}

// RuleCompileError indicates a rule line that cannot be compiled into
// match, change and environment patterns.
type RuleCompileError struct {
	Group   string
	Rule    string
	Message string
}

func (e *RuleCompileError) Error() string {
	return fmt.Sprintf("invalid rule %s: %q: %s", e.Group, e.Rule, e.Message)
}

// UnknownSymbolError indicates an input word containing text with no
// phoneme mapping. Position is a rune offset into Input.
type UnknownSymbolError struct {
	Input    string
	Position int
	Symbol   string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q at position %d in %q", e.Symbol, e.Position, e.Input)
}
