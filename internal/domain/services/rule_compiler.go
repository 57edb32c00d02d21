package services

import (
	"fmt"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"golang.org/x/text/unicode/norm"
)

// RuleCompiler compiles rule notation into entities.Rule.
//
// Accepted forms:
//
//	A > B
//	A > B / C_
//	A > B / _D
//	A > B / C_D
//
// A is one element (symbol, bundle, disjunction or ∅). B is one element
// (symbol, bundle, single-alternative abbreviation or ∅). C and D are
// element sequences that may also contain σ and #.
type RuleCompiler struct {
	inv       *entities.Inventory
	tokenizer *SymbolTokenizer
}

// NewRuleCompiler creates a compiler resolving symbols against inv.
func NewRuleCompiler(inv *entities.Inventory) *RuleCompiler {
	return &RuleCompiler{inv: inv, tokenizer: NewSymbolTokenizer(inv)}
}

// Compile compiles one rule of the named group.
func (c *RuleCompiler) Compile(group, text string) (entities.Rule, error) {
	text = strings.TrimSpace(norm.NFC.String(text))
	fail := func(format string, args ...any) (entities.Rule, error) {
		return entities.Rule{}, &entities.RuleCompileError{Group: group, Rule: text, Message: fmt.Sprintf(format, args...)}
	}

	sides := splitTopLevel(text, '>')
	if len(sides) != 2 {
		return fail("expected exactly one '>'")
	}
	lhs := sides[0]
	rhs := splitTopLevel(sides[1], '/')
	if len(rhs) > 2 {
		return fail("expected at most one '/'")
	}

	rule := entities.Rule{Group: group, Text: text}

	match, err := c.single(lhs, "match")
	if err != nil {
		return fail("%v", err)
	}
	switch match.kind {
	case tokNull:
		rule.Match = entities.MatchInsert
	case tokSyllable, tokBoundary:
		return fail("match cannot be %q", match.text)
	default:
		rule.Match = entities.MatchSegment
		if rule.Target, err = c.tokenizer.resolve(match); err != nil {
			return fail("match: %v", err)
		}
	}

	change, err := c.single(rhs[0], "change")
	if err != nil {
		return fail("%v", err)
	}
	if rule.Change, err = c.change(rule.Match, change); err != nil {
		return fail("change: %v", err)
	}

	if len(rhs) == 2 {
		env := splitTopLevel(rhs[1], '_')
		if len(env) != 2 {
			return fail("environment must contain exactly one '_'")
		}
		if rule.Pre, err = c.environment(env[0], true); err != nil {
			return fail("left environment: %v", err)
		}
		if rule.Post, err = c.environment(env[1], false); err != nil {
			return fail("right environment: %v", err)
		}
		if !rule.HasEnvironment() {
			return fail("environment is empty")
		}
	}

	return rule, nil
}

func (c *RuleCompiler) single(s, what string) (token, error) {
	toks, err := c.tokenizer.tokenize(s)
	if err != nil {
		return token{}, fmt.Errorf("%s: %w", what, err)
	}
	if len(toks) != 1 {
		return token{}, fmt.Errorf("%s must be exactly one element, got %d", what, len(toks))
	}
	return toks[0], nil
}

func (c *RuleCompiler) change(match entities.MatchKind, tok token) (entities.Change, error) {
	if tok.kind == tokNull {
		if match == entities.MatchInsert {
			return entities.Change{}, fmt.Errorf("∅ cannot be both match and change")
		}
		return entities.Change{Kind: entities.ChangeDelete}, nil
	}

	if match == entities.MatchInsert {
		if tok.kind != tokSymbol {
			return entities.Change{}, fmt.Errorf("insertion must name a phoneme")
		}
		p, ok := c.inv.Phoneme(tok.text)
		if !ok {
			return entities.Change{}, fmt.Errorf("insertion must name a phoneme, %q is not one", tok.text)
		}
		return entities.Change{Kind: entities.ChangeInsert, Insert: p}, nil
	}

	switch tok.kind {
	case tokSymbol, tokBundle:
		alts, err := c.tokenizer.resolve(tok)
		if err != nil {
			return entities.Change{}, err
		}
		if len(alts) != 1 {
			return entities.Change{}, fmt.Errorf("%q has %d alternatives, a change needs exactly one", tok.text, len(alts))
		}
		return entities.Change{Kind: entities.ChangeModify, Delta: alts[0].Clone()}, nil
	default:
		return entities.Change{}, fmt.Errorf("%q cannot be a change", tok.text)
	}
}

// environment compiles one side of the context. Syllable offsets count σ
// markers outward from the target: the right side counts up scanning
// left to right, the left side counts down scanning right to left.
func (c *RuleCompiler) environment(s string, left bool) (entities.Environment, error) {
	toks, err := c.tokenizer.tokenize(s)
	if err != nil {
		return entities.Environment{}, err
	}

	var env entities.Environment
	elems := make([]entities.Element, 0, len(toks))
	offset, step := 0, 1
	if left {
		step = -1
	}
	for k := range toks {
		i := k
		if left {
			i = len(toks) - 1 - k
		}
		tok := toks[i]
		switch tok.kind {
		case tokSyllable:
			env.SyllableAware = true
			offset += step
		case tokNull:
			return entities.Environment{}, fmt.Errorf("∅ is not allowed in an environment")
		case tokBoundary:
			elems = append(elems, entities.Element{Boundary: true, Offset: offset})
		default:
			alts, err := c.tokenizer.resolve(tok)
			if err != nil {
				return entities.Environment{}, err
			}
			elems = append(elems, entities.Element{Alternatives: alts, Offset: offset})
		}
	}
	if left {
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
	}
	if len(elems) > 0 {
		env.Elements = elems
	}
	return env, nil
}
