// Package execution provides domain models for derivation results.
package execution

import (
	"sync"
	"time"

	"github.com/sandhi-dev/sandhi/internal/domain/values"
)

// BatchResult represents the complete result of deriving a word list.
type BatchResult struct {
	StartTime      time.Time          `json:"start_time" yaml:"start_time"`
	EndTime        time.Time          `json:"end_time" yaml:"end_time"`
	SandhiVersion  string             `json:"sandhi_version,omitempty" yaml:"sandhi_version,omitempty"`
	GrammarName    string             `json:"grammar_name" yaml:"grammar_name"`
	GrammarVersion string             `json:"grammar_version,omitempty" yaml:"grammar_version,omitempty"`
	Words          []WordResult       `json:"words" yaml:"words"`
	Summary        ResultSummary      `json:"summary" yaml:"summary"`
	Duration       time.Duration      `json:"duration_ns" yaml:"duration_ns"`
	ExecutionID    values.ExecutionID `json:"execution_id" yaml:"execution_id"`

	mu sync.Mutex
}

// WordResult represents the result of deriving a single word.
type WordResult struct {
	Index    int              `json:"index" yaml:"index"`
	Input    string           `json:"input" yaml:"input"`
	Expected string           `json:"expected,omitempty" yaml:"expected,omitempty"`
	Status   values.Status    `json:"status" yaml:"status"`
	Message  string           `json:"message,omitempty" yaml:"message,omitempty"`
	Trace    *DerivationTrace `json:"trace,omitempty" yaml:"trace,omitempty"`
	Duration time.Duration    `json:"duration_ns" yaml:"duration_ns"`
}

// ResultSummary provides aggregate statistics about the batch.
type ResultSummary struct {
	TotalWords   int `json:"total_words" yaml:"total_words"`
	DerivedWords int `json:"derived_words" yaml:"derived_words"`
	PassedWords  int `json:"passed_words" yaml:"passed_words"`
	FailedWords  int `json:"failed_words" yaml:"failed_words"`
	ErrorWords   int `json:"error_words" yaml:"error_words"`
}

// NewBatchResult creates a batch result sized for wordCount inputs.
func NewBatchResult(grammarName, grammarVersion string, wordCount int) *BatchResult {
	return NewBatchResultWithID(values.NewExecutionID(), grammarName, grammarVersion, wordCount)
}

// NewBatchResultWithID creates a batch result with a specific ID.
func NewBatchResultWithID(id values.ExecutionID, grammarName, grammarVersion string, wordCount int) *BatchResult {
	return &BatchResult{
		ExecutionID:    id,
		GrammarName:    grammarName,
		GrammarVersion: grammarVersion,
		StartTime:      time.Now(),
		Words:          make([]WordResult, wordCount),
	}
}

// SetWordResult stores the result for the word at its input index.
// Thread-safe for concurrent calls during parallel execution.
func (r *BatchResult) SetWordResult(wr WordResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wr.Index >= len(r.Words) {
		grown := make([]WordResult, wr.Index+1)
		copy(grown, r.Words)
		r.Words = grown
	}
	r.Words[wr.Index] = wr
}

// Word returns the result at index. Thread-safe.
func (r *BatchResult) Word(index int) (WordResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.Words) {
		return WordResult{}, false
	}
	return r.Words[index], true
}

// Finalize completes the batch result and calculates the summary.
func (r *BatchResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.calculateSummary()
}

// HasFailures returns true if any word failed or errored.
func (r *BatchResult) HasFailures() bool {
	return r.Summary.FailedWords > 0 || r.Summary.ErrorWords > 0
}

// calculateSummary computes summary statistics from word results.
func (r *BatchResult) calculateSummary() {
	r.Summary = ResultSummary{
		TotalWords: len(r.Words),
	}

	for _, w := range r.Words {
		switch w.Status {
		case values.StatusDerived:
			r.Summary.DerivedWords++
		case values.StatusPass:
			r.Summary.PassedWords++
		case values.StatusFail:
			r.Summary.FailedWords++
		case values.StatusError:
			r.Summary.ErrorWords++
		}
	}
}

// NewWordResult classifies a successful derivation against the expected
// surface form. An empty expectation yields StatusDerived.
func NewWordResult(index int, input, expected string, trace *DerivationTrace) WordResult {
	wr := WordResult{
		Index:    index,
		Input:    input,
		Expected: expected,
		Trace:    trace,
		Status:   values.StatusDerived,
	}
	if expected == "" {
		return wr
	}
	if trace.Surface == expected {
		wr.Status = values.StatusPass
		return wr
	}
	wr.Status = values.StatusFail
	wr.Message = "expected [" + expected + "], got [" + trace.Surface + "]"
	return wr
}

// NewErrorWordResult records an input rejected before derivation.
func NewErrorWordResult(index int, input, expected string, err error) WordResult {
	return WordResult{
		Index:    index,
		Input:    input,
		Expected: expected,
		Status:   values.StatusError,
		Message:  err.Error(),
	}
}
