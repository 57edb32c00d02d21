package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

type textSection int

const (
	sectionNone textSection = iota
	sectionFeatures
	sectionPhonemes
	sectionAbbreviations
	sectionSyllables
	sectionRules
)

// sectionFor maps a "!HEADER" line to its section. Headers match by
// prefix, so !FEATURE and !FEATURES are the same section.
func sectionFor(header string) (textSection, bool) {
	h := strings.ToUpper(strings.TrimSpace(header))
	switch {
	case strings.HasPrefix(h, "FEATURE"):
		return sectionFeatures, true
	case strings.HasPrefix(h, "PHONEME"), strings.HasPrefix(h, "PHONE"):
		return sectionPhonemes, true
	case strings.HasPrefix(h, "ABBREV"):
		return sectionAbbreviations, true
	case strings.HasPrefix(h, "SYLL"):
		return sectionSyllables, true
	case strings.HasPrefix(h, "RULE"):
		return sectionRules, true
	default:
		return sectionNone, false
	}
}

// ParseTextGrammar parses the sectioned text grammar format:
//
//	!FEATURES
//	x: syll
//	!PHONEMES
//	a: +syll -voice
//	ts c: -syll +strid
//	!ABBREVIATIONS
//	V: +syll
//	T: {t,k}
//	!SYLLABLES
//	CV
//	!RULES
//	Voicing: t > [+voice] / a_a
//
// A phoneme line names its display symbol first and, optionally, a rule
// name last. A "#" phoneme or abbreviation line is accepted and ignored;
// the word boundary is built in. Blank lines and lines starting with "//"
// are skipped.
func ParseTextGrammar(data []byte, name string) (*entities.GrammarSpec, error) {
	spec := &entities.GrammarSpec{
		Metadata: entities.GrammarMetadata{Name: name},
	}

	seen := make(map[textSection]bool)
	section := sectionNone

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if header, ok := strings.CutPrefix(line, "!"); ok {
			s, known := sectionFor(header)
			if !known {
				return nil, fmt.Errorf("line %d: unknown section %q", lineNo, line)
			}
			if seen[s] {
				return nil, fmt.Errorf("line %d: duplicate section %q", lineNo, line)
			}
			seen[s] = true
			section = s
			continue
		}

		if err := parseTextLine(spec, section, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}

	for _, required := range []struct {
		section textSection
		header  string
	}{
		{sectionFeatures, "!FEATURES"},
		{sectionPhonemes, "!PHONEMES"},
	} {
		if !seen[required.section] {
			return nil, fmt.Errorf("missing %s section", required.header)
		}
	}

	return spec, nil
}

func parseTextLine(spec *entities.GrammarSpec, section textSection, line string) error {
	switch section {
	case sectionFeatures:
		// "x: name", the part before the colon is a label
		if _, after, ok := strings.Cut(line, ":"); ok {
			line = strings.TrimSpace(after)
		}
		if line == "" {
			return fmt.Errorf("empty feature name")
		}
		spec.Features = append(spec.Features, line)

	case sectionPhonemes:
		head, features, err := splitDefinition(line)
		if err != nil {
			return err
		}
		symbols := strings.Fields(head)
		if symbols[0] == entities.BoundarySymbol {
			return nil
		}
		p := entities.PhonemeSpec{Symbol: symbols[0], Features: features}
		if len(symbols) > 1 {
			p.Name = symbols[len(symbols)-1]
		}
		spec.Phonemes = append(spec.Phonemes, p)

	case sectionAbbreviations:
		head, body, err := splitDefinition(line)
		if err != nil {
			return err
		}
		symbols := strings.Fields(head)
		symbol := symbols[len(symbols)-1]
		if symbol == entities.BoundarySymbol {
			return nil
		}
		a := entities.AbbreviationSpec{Symbol: symbol}
		if inner, ok := strings.CutPrefix(body, "{"); ok {
			inner, ok = strings.CutSuffix(inner, "}")
			if !ok {
				return fmt.Errorf("abbreviation %q: unterminated member list", symbol)
			}
			for _, m := range strings.Split(inner, ",") {
				if m = strings.TrimSpace(m); m != "" {
					a.Members = append(a.Members, m)
				}
			}
		} else {
			a.Features = body
		}
		spec.Abbreviations = append(spec.Abbreviations, a)

	case sectionSyllables:
		spec.Syllables = append(spec.Syllables, line)

	case sectionRules:
		group, rule, ok := strings.Cut(line, ":")
		group, rule = strings.TrimSpace(group), strings.TrimSpace(rule)
		if !ok || group == "" {
			return fmt.Errorf("rule %q must have the form 'Name: A > B / C_D'", line)
		}
		spec.Rules = append(spec.Rules, entities.RuleSpec{Group: group, Rule: rule})

	default:
		return fmt.Errorf("%q appears before any section header", line)
	}
	return nil
}

// splitDefinition splits "symbol [name]: body" at the first colon.
func splitDefinition(line string) (string, string, error) {
	head, body, ok := strings.Cut(line, ":")
	head = strings.TrimSpace(head)
	if !ok || head == "" {
		return "", "", fmt.Errorf("definition %q must have the form 'symbol: features'", line)
	}
	return head, strings.TrimSpace(body), nil
}
