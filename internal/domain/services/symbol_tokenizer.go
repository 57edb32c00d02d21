package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

type tokenKind int

const (
	tokSymbol tokenKind = iota
	tokBundle
	tokBrace
	tokNull
	tokSyllable
	tokBoundary
)

// token is one element of rule or template notation.
type token struct {
	kind    tokenKind
	text    string  // symbol, or bundle contents without brackets
	members []token // tokBrace
}

// SymbolTokenizer splits rule and template notation into elements,
// resolving multi-character symbols by longest match.
type SymbolTokenizer struct {
	inv *entities.Inventory
}

// NewSymbolTokenizer creates a tokenizer over the inventory's rule symbols.
func NewSymbolTokenizer(inv *entities.Inventory) *SymbolTokenizer {
	return &SymbolTokenizer{inv: inv}
}

func (t *SymbolTokenizer) tokenize(s string) ([]token, error) {
	var out []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated feature bundle at %q", s[i:])
			}
			out = append(out, token{kind: tokBundle, text: s[i+1 : i+end]})
			i += end + 1
		case r == ']':
			return nil, fmt.Errorf("unexpected ']'")
		case r == '{':
			end := closingBrace(s[i:])
			if end < 0 {
				return nil, fmt.Errorf("unterminated disjunction at %q", s[i:])
			}
			tok, err := t.brace(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i += end + 1
		case r == '}' || r == ',':
			return nil, fmt.Errorf("unexpected %q", r)
		case s[i:i+size] == entities.NullSymbol:
			out = append(out, token{kind: tokNull, text: entities.NullSymbol})
			i += size
		case s[i:i+size] == entities.SyllableSymbol:
			out = append(out, token{kind: tokSyllable, text: entities.SyllableSymbol})
			i += size
		case s[i:i+size] == entities.BoundarySymbol:
			out = append(out, token{kind: tokBoundary, text: entities.BoundarySymbol})
			i += size
		default:
			sym := entities.LongestPrefix(s[i:], t.inv.RuleSymbols())
			if sym == "" {
				return nil, fmt.Errorf("unknown symbol %q", string(r))
			}
			out = append(out, token{kind: tokSymbol, text: sym})
			i += len(sym)
		}
	}
	return out, nil
}

// brace splits a disjunction body on top-level commas. Each member must
// be exactly one symbol or feature bundle.
func (t *SymbolTokenizer) brace(body string) (token, error) {
	tok := token{kind: tokBrace, text: body}
	for _, part := range splitTopLevel(body, ',') {
		members, err := t.tokenize(part)
		if err != nil {
			return token{}, err
		}
		if len(members) != 1 || (members[0].kind != tokSymbol && members[0].kind != tokBundle) {
			return token{}, fmt.Errorf("disjunction member %q must be one symbol or feature bundle", strings.TrimSpace(part))
		}
		tok.members = append(tok.members, members[0])
	}
	return tok, nil
}

// resolve returns the alternatives a symbol, bundle or disjunction
// stands for.
func (t *SymbolTokenizer) resolve(tok token) (entities.Pattern, error) {
	switch tok.kind {
	case tokSymbol:
		alts, ok := t.inv.Resolve(tok.text)
		if !ok {
			return nil, fmt.Errorf("unknown symbol %q", tok.text)
		}
		return alts, nil
	case tokBundle:
		fv, err := ParseFeatureSpec(t.inv, tok.text)
		if err != nil {
			return nil, err
		}
		return entities.Pattern{fv}, nil
	case tokBrace:
		var alts entities.Pattern
		for _, m := range tok.members {
			p, err := t.resolve(m)
			if err != nil {
				return nil, err
			}
			alts = append(alts, p...)
		}
		return alts, nil
	default:
		return nil, fmt.Errorf("%q does not denote segments", tok.text)
	}
}

func closingBrace(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep outside brackets and braces.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch {
		case r == '[' || r == '{':
			depth++
		case r == ']' || r == '}':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(parts, s[start:])
}
