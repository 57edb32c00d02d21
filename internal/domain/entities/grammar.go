// Package entities contains the domain entities of the derivation engine:
// the compiled Grammar, its Rules, and the Words rules operate on.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sandhi-dev/sandhi/internal/domain/values"
	"golang.org/x/text/unicode/norm"
)

// Phoneme is one entry of the phoneme inventory.
type Phoneme struct {
	Symbol   string
	Name     string
	Features values.FeatureVector
}

// Abbreviation is a named set of alternatives usable inside rules.
type Abbreviation struct {
	Symbol       string
	Alternatives Pattern
}

// Inventory holds the resolved features, phonemes and abbreviations of a
// grammar. It is immutable once built.
//
// Invariants Enforced:
// - feature names are unique
// - phoneme symbols, phoneme names and abbreviation symbols do not collide
// - every vector has exactly one value per feature
type Inventory struct {
	features      []string
	featureIndex  map[string]int
	phonemes      []Phoneme
	phonemeIndex  map[string]int // symbol and name
	abbreviations []Abbreviation
	abbrevIndex   map[string]int
	inputSymbols  []string // longest first
	ruleSymbols   []string // longest first
}

// NewFeatureSet validates feature names and returns an Inventory that holds
// only features. Phonemes and abbreviations are added with WithPhonemes
// and WithAbbreviations because resolving them needs the feature index.
func NewFeatureSet(features []string) (*Inventory, error) {
	inv := &Inventory{
		featureIndex: make(map[string]int, len(features)),
		phonemeIndex: make(map[string]int),
		abbrevIndex:  make(map[string]int),
	}
	for i, f := range features {
		f = norm.NFC.String(strings.TrimSpace(f))
		if f == "" {
			return nil, &GrammarError{Section: "features", Item: fmt.Sprintf("#%d", i+1), Message: "feature name cannot be empty"}
		}
		if strings.ContainsAny(f, "+-[]{} \t") {
			return nil, &GrammarError{Section: "features", Item: f, Message: "feature name contains reserved characters"}
		}
		if _, dup := inv.featureIndex[f]; dup {
			return nil, &GrammarError{Section: "features", Item: f, Message: "duplicate feature"}
		}
		inv.featureIndex[f] = len(inv.features)
		inv.features = append(inv.features, f)
	}
	if len(inv.features) == 0 {
		return nil, &GrammarError{Section: "features", Message: "at least one feature is required"}
	}
	return inv, nil
}

// WithPhonemes returns a copy of the inventory with the phoneme table set.
func (inv *Inventory) WithPhonemes(phonemes []Phoneme) (*Inventory, error) {
	out := inv.copyIndexes()
	out.phonemes = make([]Phoneme, 0, len(phonemes))
	out.phonemeIndex = make(map[string]int, 2*len(phonemes))
	for _, p := range phonemes {
		if len(p.Features) != len(inv.features) {
			return nil, &GrammarError{Section: "phonemes", Item: p.Symbol, Message: "feature vector width does not match feature list"}
		}
		if p.Name == "" {
			p.Name = p.Symbol
		}
		if err := out.claim("phonemes", p.Symbol, out.phonemeIndex, len(out.phonemes)); err != nil {
			return nil, err
		}
		if p.Name != p.Symbol {
			if err := out.claim("phonemes", p.Name, out.phonemeIndex, len(out.phonemes)); err != nil {
				return nil, err
			}
		}
		p.Features = p.Features.Clone()
		out.phonemes = append(out.phonemes, p)
	}
	out.rebuildSymbols()
	return out, nil
}

// WithAbbreviations returns a copy of the inventory with the abbreviation
// table set. Abbreviation symbols must not shadow phonemes.
func (inv *Inventory) WithAbbreviations(abbrevs []Abbreviation) (*Inventory, error) {
	out := inv.copyIndexes()
	out.abbreviations = make([]Abbreviation, 0, len(abbrevs))
	out.abbrevIndex = make(map[string]int, len(abbrevs))
	for _, a := range abbrevs {
		if _, ok := out.phonemeIndex[a.Symbol]; ok {
			return nil, &GrammarError{Section: "abbreviations", Item: a.Symbol, Message: "symbol already declared as a phoneme"}
		}
		if err := out.claim("abbreviations", a.Symbol, out.abbrevIndex, len(out.abbreviations)); err != nil {
			return nil, err
		}
		if len(a.Alternatives) == 0 {
			return nil, &GrammarError{Section: "abbreviations", Item: a.Symbol, Message: "abbreviation has no alternatives"}
		}
		out.abbreviations = append(out.abbreviations, a)
	}
	out.rebuildSymbols()
	return out, nil
}

func (inv *Inventory) copyIndexes() *Inventory {
	out := *inv
	return &out
}

func (inv *Inventory) claim(section, symbol string, index map[string]int, pos int) error {
	switch {
	case symbol == "":
		return &GrammarError{Section: section, Message: "symbol cannot be empty"}
	case isReserved(symbol):
		return &GrammarError{Section: section, Item: symbol, Message: "symbol is reserved rule notation"}
	}
	if _, dup := index[symbol]; dup {
		return &GrammarError{Section: section, Item: symbol, Message: "duplicate symbol"}
	}
	index[symbol] = pos
	return nil
}

func isReserved(symbol string) bool {
	switch symbol {
	case BoundarySymbol, NullSymbol, SyllableSymbol:
		return true
	}
	return strings.ContainsAny(symbol, "[]{},>/_ \t")
}

func (inv *Inventory) rebuildSymbols() {
	inv.inputSymbols = inv.inputSymbols[:0:0]
	for _, p := range inv.phonemes {
		inv.inputSymbols = append(inv.inputSymbols, p.Symbol)
	}
	inv.ruleSymbols = inv.ruleSymbols[:0:0]
	for _, p := range inv.phonemes {
		inv.ruleSymbols = append(inv.ruleSymbols, p.Symbol)
		if p.Name != p.Symbol {
			inv.ruleSymbols = append(inv.ruleSymbols, p.Name)
		}
	}
	for _, a := range inv.abbreviations {
		inv.ruleSymbols = append(inv.ruleSymbols, a.Symbol)
	}
	byLength := func(s []string) func(i, j int) bool {
		return func(i, j int) bool {
			return utf8.RuneCountInString(s[i]) > utf8.RuneCountInString(s[j])
		}
	}
	sort.SliceStable(inv.inputSymbols, byLength(inv.inputSymbols))
	sort.SliceStable(inv.ruleSymbols, byLength(inv.ruleSymbols))
}

// Width returns the number of features.
func (inv *Inventory) Width() int {
	return len(inv.features)
}

// Features returns the ordered feature names.
func (inv *Inventory) Features() []string {
	return append([]string(nil), inv.features...)
}

// FeatureIndex returns the position of a feature.
func (inv *Inventory) FeatureIndex(name string) (int, bool) {
	i, ok := inv.featureIndex[name]
	return i, ok
}

// Phonemes returns the phoneme table in declaration order.
// Callers must not modify the returned feature vectors.
func (inv *Inventory) Phonemes() []Phoneme {
	return inv.phonemes
}

// Phoneme looks a phoneme up by symbol or name.
func (inv *Inventory) Phoneme(symbol string) (Phoneme, bool) {
	i, ok := inv.phonemeIndex[symbol]
	if !ok {
		return Phoneme{}, false
	}
	return inv.phonemes[i], true
}

// Abbreviations returns the abbreviation table in declaration order.
func (inv *Inventory) Abbreviations() []Abbreviation {
	return inv.abbreviations
}

// Abbreviation looks an abbreviation up by symbol.
func (inv *Inventory) Abbreviation(symbol string) (Abbreviation, bool) {
	i, ok := inv.abbrevIndex[symbol]
	if !ok {
		return Abbreviation{}, false
	}
	return inv.abbreviations[i], true
}

// Resolve returns the alternatives a rule or template symbol stands for.
func (inv *Inventory) Resolve(symbol string) (Pattern, bool) {
	if p, ok := inv.Phoneme(symbol); ok {
		return Pattern{p.Features}, true
	}
	if a, ok := inv.Abbreviation(symbol); ok {
		return a.Alternatives, true
	}
	return nil, false
}

// InputSymbols returns the phoneme symbols, longest first.
func (inv *Inventory) InputSymbols() []string {
	return inv.inputSymbols
}

// RuleSymbols returns every symbol usable in rules and templates,
// longest first. Symbols of equal length keep declaration order.
func (inv *Inventory) RuleSymbols() []string {
	return inv.ruleSymbols
}

// Grammar is a compiled grammar. It is built once, never mutated, and
// safe to share across goroutines.
type Grammar struct {
	*Inventory

	Metadata GrammarMetadata

	syllabicIndex int
	syllables     SyllableTemplates
	groups        []RuleGroup
}

// SyllableTemplates holds the declared syllable shapes split around their
// nucleus. Onsets and Codas are deduplicated in declaration order.
type SyllableTemplates struct {
	Shapes []string
	Onsets [][]Element
	Codas  [][]Element
}

// NewGrammar assembles a compiled grammar.
func NewGrammar(meta GrammarMetadata, inv *Inventory, syllables SyllableTemplates, groups []RuleGroup) (*Grammar, error) {
	feature := meta.SyllabicFeatureOrDefault()
	idx, ok := inv.FeatureIndex(feature)
	if !ok {
		return nil, &GrammarError{Section: "grammar", Item: feature, Message: "syllabic feature is not declared"}
	}
	meta.SyllabicFeature = feature
	return &Grammar{
		Inventory:     inv,
		Metadata:      meta,
		syllabicIndex: idx,
		syllables:     syllables,
		groups:        groups,
	}, nil
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return g.Metadata.Name
}

// SyllabicIndex returns the feature index that marks nuclei.
func (g *Grammar) SyllabicIndex() int {
	return g.syllabicIndex
}

// Syllables returns the syllable templates.
func (g *Grammar) Syllables() SyllableTemplates {
	return g.syllables
}

// Groups returns the rule groups in derivation order.
func (g *Grammar) Groups() []RuleGroup {
	return g.groups
}

// RuleCount returns the total number of rules.
func (g *Grammar) RuleCount() int {
	n := 0
	for _, grp := range g.groups {
		n += len(grp.Rules)
	}
	return n
}

// Tokenize splits input into phoneme symbols by longest match. Input is
// NFC-normalised first; whitespace is not permitted.
func (g *Grammar) Tokenize(input string) ([]Phoneme, error) {
	normalized := norm.NFC.String(input)
	var out []Phoneme
	pos := 0
	for rest := normalized; rest != ""; {
		sym := LongestPrefix(rest, g.inputSymbols)
		if sym == "" {
			r, _ := utf8.DecodeRuneInString(rest)
			return nil, &UnknownSymbolError{Input: input, Position: pos, Symbol: string(r)}
		}
		p, _ := g.Phoneme(sym)
		out = append(out, p)
		rest = rest[len(sym):]
		pos += utf8.RuneCountInString(sym)
	}
	return out, nil
}

// Underlying builds the padded, unsyllabified Word for input. Unknown
// symbols are rejected before any Word is built.
func (g *Grammar) Underlying(input string) (*Word, error) {
	phonemes, err := g.Tokenize(input)
	if err != nil {
		return nil, err
	}
	content := make([]Segment, len(phonemes))
	for i, p := range phonemes {
		content[i] = NewSegment(p.Symbol, p.Features)
	}
	return NewWord(content, g.Width()), nil
}

// LongestPrefix returns the first of candidates that prefixes s.
// Candidates must be sorted longest first.
func LongestPrefix(s string, candidates []string) string {
	for _, c := range candidates {
		if strings.HasPrefix(s, c) {
			return c
		}
	}
	return ""
}
