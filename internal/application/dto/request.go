// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// DeriveWordsRequest encapsulates all inputs needed to derive a batch of words.
type DeriveWordsRequest struct {
	GrammarPath string

	// Words are derived in order, followed by the entries of WordListPath.
	Words        []execution.WordInput
	WordListPath string

	// StrictInput rejects the whole request when any word uses an unknown
	// symbol. Otherwise such words are reported with status error.
	StrictInput bool

	Metadata  RequestMetadata
	Filters   FilterOptions
	Execution ExecutionOptions
}

// FilterOptions defines filters for rule group selection.
type FilterOptions struct {
	FilterExpression string
	IncludeGroups    []string
	ExcludeGroups    []string
}

// IsEmpty reports whether no filter was requested.
func (f FilterOptions) IsEmpty() bool {
	return f.FilterExpression == "" && len(f.IncludeGroups) == 0 && len(f.ExcludeGroups) == 0
}

// ExecutionOptions controls how the batch is executed.
type ExecutionOptions struct {
	// Parallel enables parallel derivation of words
	Parallel bool

	// MaxConcurrentWords limits parallel word derivation (0 = default)
	MaxConcurrentWords int

	// RuleSteps records the form after every rule, not only every group
	RuleSteps bool
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}

// InspectGrammarRequest encapsulates inputs for loading and summarising a grammar.
type InspectGrammarRequest struct {
	GrammarPath string
}
