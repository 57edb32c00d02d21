// Package engine coordinates batch derivation of word lists.
package engine

import (
	"runtime"

	"github.com/sandhi-dev/sandhi/internal/domain/services"
)

// MinConcurrentWords is the minimum number of concurrent word derivations,
// ensuring reasonable parallelism even on single-core systems.
const MinConcurrentWords = 4

// ExecutionConfig controls execution behavior.
type ExecutionConfig struct {
	// Filter selects the rule groups that run. Nil runs every group.
	Filter             *services.GroupFilter
	MaxConcurrentWords int
	Parallel           bool
	RuleSteps          bool
}

// DefaultExecutionConfig returns sensible defaults for parallel execution.
func DefaultExecutionConfig() ExecutionConfig {
	maxWords := runtime.NumCPU()
	if maxWords < MinConcurrentWords {
		maxWords = MinConcurrentWords
	}

	return ExecutionConfig{
		MaxConcurrentWords: maxWords,
		Parallel:           true,
	}
}

// workers returns the worker count for a batch of n words.
func (c ExecutionConfig) workers(n int) int {
	w := c.MaxConcurrentWords
	if w <= 0 {
		w = runtime.NumCPU()
		if w < MinConcurrentWords {
			w = MinConcurrentWords
		}
	}
	if w > n {
		w = n
	}
	return w
}
