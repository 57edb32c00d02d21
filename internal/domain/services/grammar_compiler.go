package services

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
	"golang.org/x/text/unicode/norm"
)

// GrammarCompiler transforms a raw grammar document into an immutable,
// compiled Grammar.
//
// Compilation steps:
// 1. Validate document structure and version
// 2. Resolve features, phonemes and abbreviations into an Inventory
// 3. Split syllable shapes into onset and coda templates
// 4. Compile rules and group consecutive rules sharing a name
type GrammarCompiler struct{}

// NewGrammarCompiler creates a new grammar compiler service.
func NewGrammarCompiler() *GrammarCompiler {
	return &GrammarCompiler{}
}

// Compile resolves spec into a Grammar. The spec is NOT modified.
//
// Returns *entities.GrammarError or *entities.RuleCompileError.
func (c *GrammarCompiler) Compile(spec *entities.GrammarSpec) (*entities.Grammar, error) {
	if spec == nil {
		return nil, fmt.Errorf("cannot compile nil grammar")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if v := spec.Metadata.Version; v != "" {
		if _, err := semver.NewVersion(v); err != nil {
			return nil, &entities.GrammarError{Section: "grammar", Item: v, Message: "version is not valid semver"}
		}
	}

	inv, err := c.inventory(spec)
	if err != nil {
		return nil, err
	}

	syllables, err := c.syllables(spec, inv)
	if err != nil {
		return nil, err
	}

	groups, err := c.rules(spec, inv)
	if err != nil {
		return nil, err
	}

	return entities.NewGrammar(spec.Metadata, inv, syllables, groups)
}

func (c *GrammarCompiler) inventory(spec *entities.GrammarSpec) (*entities.Inventory, error) {
	inv, err := entities.NewFeatureSet(spec.Features)
	if err != nil {
		return nil, err
	}

	phonemes := make([]entities.Phoneme, 0, len(spec.Phonemes))
	for _, ps := range spec.Phonemes {
		symbol := norm.NFC.String(strings.TrimSpace(ps.Symbol))
		fv, err := ParseFeatureSpec(inv, ps.Features)
		if err != nil {
			return nil, &entities.GrammarError{Section: "phonemes", Item: symbol, Message: err.Error()}
		}
		phonemes = append(phonemes, entities.Phoneme{
			Symbol:   symbol,
			Name:     norm.NFC.String(strings.TrimSpace(ps.Name)),
			Features: fv,
		})
	}
	if inv, err = inv.WithPhonemes(phonemes); err != nil {
		return nil, err
	}

	abbrevs := make([]entities.Abbreviation, 0, len(spec.Abbreviations))
	for _, as := range spec.Abbreviations {
		symbol := norm.NFC.String(strings.TrimSpace(as.Symbol))
		a := entities.Abbreviation{Symbol: symbol}
		if as.Features != "" {
			fv, err := ParseFeatureSpec(inv, as.Features)
			if err != nil {
				return nil, &entities.GrammarError{Section: "abbreviations", Item: symbol, Message: err.Error()}
			}
			a.Alternatives = entities.Pattern{fv}
		}
		for _, m := range as.Members {
			p, ok := inv.Phoneme(norm.NFC.String(strings.TrimSpace(m)))
			if !ok {
				return nil, &entities.GrammarError{Section: "abbreviations", Item: symbol, Message: fmt.Sprintf("unknown member %q", m)}
			}
			a.Alternatives = append(a.Alternatives, p.Features.Clone())
		}
		abbrevs = append(abbrevs, a)
	}
	return inv.WithAbbreviations(abbrevs)
}

// syllables splits each declared shape around its single nucleus. An
// element is a nucleus when every alternative it stands for is
// positively syllabic.
func (c *GrammarCompiler) syllables(spec *entities.GrammarSpec, inv *entities.Inventory) (entities.SyllableTemplates, error) {
	feature := spec.Metadata.SyllabicFeatureOrDefault()
	syllabic, ok := inv.FeatureIndex(feature)
	if !ok {
		return entities.SyllableTemplates{}, &entities.GrammarError{Section: "grammar", Item: feature, Message: "syllabic feature is not declared"}
	}

	tokenizer := NewSymbolTokenizer(inv)
	var out entities.SyllableTemplates
	seenOnsets := make(map[string]bool)
	seenCodas := make(map[string]bool)

	for _, shape := range spec.Syllables {
		shape = norm.NFC.String(strings.TrimSpace(shape))
		fail := func(msg string) error {
			return &entities.GrammarError{Section: "syllables", Item: shape, Message: msg}
		}

		toks, err := tokenizer.tokenize(shape)
		if err != nil {
			return entities.SyllableTemplates{}, fail(err.Error())
		}

		elems := make([]entities.Element, len(toks))
		keys := make([]string, len(toks))
		nucleus := -1
		for i, tok := range toks {
			switch tok.kind {
			case tokBoundary:
				elems[i] = entities.Element{Boundary: true}
			case tokSymbol, tokBundle, tokBrace:
				alts, err := tokenizer.resolve(tok)
				if err != nil {
					return entities.SyllableTemplates{}, fail(err.Error())
				}
				elems[i] = entities.Element{Alternatives: alts}
				if isNucleus(alts, syllabic) {
					if nucleus >= 0 {
						return entities.SyllableTemplates{}, fail("template has more than one nucleus")
					}
					nucleus = i
				}
			default:
				return entities.SyllableTemplates{}, fail(fmt.Sprintf("%q is not allowed in a syllable template", tok.text))
			}
			keys[i] = tok.text
		}
		if nucleus < 0 {
			return entities.SyllableTemplates{}, fail("template has no nucleus")
		}

		out.Shapes = append(out.Shapes, shape)
		if onset := elems[:nucleus]; contentLen(onset) > 0 {
			key := strings.Join(keys[:nucleus], "\x00")
			if !seenOnsets[key] {
				seenOnsets[key] = true
				out.Onsets = append(out.Onsets, onset)
			}
		}
		if coda := elems[nucleus+1:]; contentLen(coda) > 0 {
			key := strings.Join(keys[nucleus+1:], "\x00")
			if !seenCodas[key] {
				seenCodas[key] = true
				out.Codas = append(out.Codas, coda)
			}
		}
	}
	return out, nil
}

func isNucleus(alts entities.Pattern, syllabic int) bool {
	if len(alts) == 0 {
		return false
	}
	for _, alt := range alts {
		if alt[syllabic] != values.True {
			return false
		}
	}
	return true
}

// rules compiles every rule line. Consecutive lines with the same group
// name form one group; a name that reappears later starts a new group.
func (c *GrammarCompiler) rules(spec *entities.GrammarSpec, inv *entities.Inventory) ([]entities.RuleGroup, error) {
	compiler := NewRuleCompiler(inv)
	var groups []entities.RuleGroup
	for _, rs := range spec.Rules {
		name := strings.TrimSpace(rs.Group)
		rule, err := compiler.Compile(name, rs.Rule)
		if err != nil {
			return nil, err
		}
		if n := len(groups); n > 0 && groups[n-1].Name == name {
			groups[n-1].Rules = append(groups[n-1].Rules, rule)
			continue
		}
		groups = append(groups, entities.RuleGroup{Name: name, Rules: []entities.Rule{rule}})
	}
	return groups, nil
}
