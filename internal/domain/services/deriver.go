package services

import (
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// Deriver runs words through a grammar's ordered rule groups.
// A Deriver holds no per-word state and may be shared across goroutines.
type Deriver struct {
	grammar     *entities.Grammar
	syllabifier *Syllabifier
	renderer    *Renderer
	filter      *GroupFilter
	ruleSteps   bool
}

// DeriverOption configures a Deriver.
type DeriverOption func(*Deriver)

// WithGroupFilter skips groups the filter rejects.
func WithGroupFilter(f *GroupFilter) DeriverOption {
	return func(d *Deriver) {
		d.filter = f
	}
}

// WithRuleSteps records one RuleStep per rule in every GroupStep.
func WithRuleSteps(enabled bool) DeriverOption {
	return func(d *Deriver) {
		d.ruleSteps = enabled
	}
}

// NewDeriver creates a deriver for the grammar.
func NewDeriver(g *entities.Grammar, opts ...DeriverOption) *Deriver {
	d := &Deriver{
		grammar:     g,
		syllabifier: NewSyllabifier(g),
		renderer:    NewRenderer(g.Inventory),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeriveInput tokenizes input and derives it. Unknown symbols are
// reported as *entities.UnknownSymbolError before any rule runs.
func (d *Deriver) DeriveInput(input string) (*execution.DerivationTrace, error) {
	word, err := d.grammar.Underlying(input)
	if err != nil {
		return nil, err
	}
	trace := d.Derive(word)
	trace.Input = input
	return trace, nil
}

// Derive runs every rule group over a copy of word. The caller's word is
// not modified. The word is syllabified before the first group and again
// after each group.
func (d *Deriver) Derive(word *entities.Word) *execution.DerivationTrace {
	w := d.syllabifier.Syllabified(word)
	trace := &execution.DerivationTrace{
		Underlying:            d.renderer.Render(w),
		SyllabifiedUnderlying: d.renderer.RenderSyllables(w),
	}

	for gi, group := range d.grammar.Groups() {
		step := execution.GroupStep{Group: group.Name, Index: gi}
		if ok, _ := d.filter.ShouldRun(group, gi); !ok {
			step.Skipped = true
			step.Surface = d.renderer.Render(w)
			step.Syllabified = d.renderer.RenderSyllables(w)
			trace.Steps = append(trace.Steps, step)
			continue
		}

		for ri := range group.Rules {
			changed := ApplyRule(&group.Rules[ri], w)
			step.Changed = step.Changed || changed
			if d.ruleSteps {
				step.Rules = append(step.Rules, execution.RuleStep{
					Rule:    group.Rules[ri].Text,
					Changed: changed,
					Surface: d.renderer.Render(w),
				})
			}
		}
		step.Surface = d.renderer.Render(w)

		d.syllabifier.Syllabify(w)
		step.Syllabified = d.renderer.RenderSyllables(w)
		trace.Steps = append(trace.Steps, step)
	}

	trace.Surface = d.renderer.Render(w)
	trace.SyllabifiedSurface = d.renderer.RenderSyllables(w)
	return trace
}
