// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/repositories"
)

var _ repositories.BatchResultRepository = (*BatchResultRepository)(nil)

// BatchResultRepository keeps batch results in memory. Watch mode uses it
// to compare a run against the previous one.
type BatchResultRepository struct {
	results  map[uuid.UUID]*execution.BatchResult
	order    []uuid.UUID
	capacity int
	mu       sync.RWMutex
}

// NewBatchResultRepository creates a repository holding at most capacity
// results. The oldest saved result is evicted first. Zero means unbounded.
func NewBatchResultRepository(capacity int) *BatchResultRepository {
	return &BatchResultRepository{
		results:  make(map[uuid.UUID]*execution.BatchResult),
		capacity: capacity,
	}
}

// Save persists a batch result. Callers should not modify the result afterwards.
func (r *BatchResultRepository) Save(_ context.Context, result *execution.BatchResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil batch result")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := result.ExecutionID.UUID()
	if _, exists := r.results[id]; !exists {
		r.order = append(r.order, id)
	}
	r.results[id] = result

	for r.capacity > 0 && len(r.order) > r.capacity {
		delete(r.results, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

// FindByID retrieves a batch result by its unique ID.
func (r *BatchResultRepository) FindByID(_ context.Context, id uuid.UUID) (*execution.BatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[id]
	if !ok {
		return nil, fmt.Errorf("batch result not found: %s", id)
	}
	return result, nil
}

// FindByGrammar retrieves recent batch results for a grammar, newest first.
func (r *BatchResultRepository) FindByGrammar(_ context.Context, grammarName string, limit int) ([]*execution.BatchResult, error) {
	matches := r.filter(func(res *execution.BatchResult) bool {
		return res.GrammarName == grammarName
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// FindBetween retrieves batch results for a grammar started within [start, end].
func (r *BatchResultRepository) FindBetween(_ context.Context, grammarName string, start, end time.Time) ([]*execution.BatchResult, error) {
	return r.filter(func(res *execution.BatchResult) bool {
		return res.GrammarName == grammarName &&
			!res.StartTime.Before(start) &&
			!res.StartTime.After(end)
	}), nil
}

func (r *BatchResultRepository) filter(keep func(*execution.BatchResult) bool) []*execution.BatchResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*execution.BatchResult
	for _, res := range r.results {
		if keep(res) {
			matches = append(matches, res)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartTime.After(matches[j].StartTime)
	})
	return matches
}
