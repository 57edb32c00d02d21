package execution

// WordInput is one entry of a batch: an input form and, optionally, the
// surface form it is expected to derive to.
type WordInput struct {
	Input    string `json:"input" yaml:"input"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}
