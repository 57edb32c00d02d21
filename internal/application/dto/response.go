package dto

import (
	"time"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// DeriveWordsResponse contains the result of deriving a batch.
type DeriveWordsResponse struct {
	// BatchResult contains the per-word derivations
	BatchResult *execution.BatchResult

	// Grammar is the compiled grammar the batch ran against
	Grammar *entities.Grammar

	// Metadata contains response metadata
	Metadata ResponseMetadata

	// Diagnostics contains additional diagnostic information
	Diagnostics Diagnostics
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}

// Diagnostics contains diagnostic information about execution.
type Diagnostics struct {
	// Warnings are non-fatal issues encountered
	Warnings []string

	// SkippedGroups lists groups the filters excluded, with the reason
	SkippedGroups map[string]string
}

// InspectGrammarResponse contains a compiled grammar and its summary.
type InspectGrammarResponse struct {
	Grammar *entities.Grammar
	Summary GrammarSummary
}

// GrammarSummary describes a compiled grammar.
type GrammarSummary struct {
	Name            string
	Version         string
	Description     string
	SyllabicFeature string
	Features        int
	Phonemes        int
	Abbreviations   int
	Syllables       int
	Groups          []GroupSummary
}

// GroupSummary lists the rules of one group in application order.
type GroupSummary struct {
	Name  string
	Rules []string
}

// RuleCount returns the number of rules across all groups.
func (s GrammarSummary) RuleCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Rules)
	}
	return n
}
