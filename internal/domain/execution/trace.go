package execution

// DerivationTrace records one word's path from underlying to surface form.
type DerivationTrace struct {
	Input                 string      `json:"input" yaml:"input"`
	Underlying            string      `json:"underlying" yaml:"underlying"`
	SyllabifiedUnderlying string      `json:"syllabified_underlying" yaml:"syllabified_underlying"`
	Steps                 []GroupStep `json:"steps" yaml:"steps"`
	Surface               string      `json:"surface" yaml:"surface"`
	SyllabifiedSurface    string      `json:"syllabified_surface" yaml:"syllabified_surface"`
}

// GroupStep is the outcome of one rule group. Surface is the form after
// the group's last rule, before re-syllabification.
type GroupStep struct {
	Group       string     `json:"group" yaml:"group"`
	Index       int        `json:"index" yaml:"index"`
	Skipped     bool       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Changed     bool       `json:"changed" yaml:"changed"`
	Surface     string     `json:"surface" yaml:"surface"`
	Syllabified string     `json:"syllabified" yaml:"syllabified"`
	Rules       []RuleStep `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// RuleStep is the outcome of one rule.
type RuleStep struct {
	Rule    string `json:"rule" yaml:"rule"`
	Changed bool   `json:"changed" yaml:"changed"`
	Surface string `json:"surface" yaml:"surface"`
}

// Changed returns true if any group changed the word.
func (t *DerivationTrace) Changed() bool {
	for _, s := range t.Steps {
		if s.Changed {
			return true
		}
	}
	return false
}

// StepResult returns the group's surface form, or "-" when the group
// left the word unchanged or was skipped.
func (s GroupStep) StepResult() string {
	if !s.Changed {
		return "-"
	}
	return s.Surface
}
