// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// BatchResultRepository defines the interface for persisting batch results.
type BatchResultRepository interface {
	// Save persists a batch result.
	Save(ctx context.Context, result *execution.BatchResult) error

	// FindByID retrieves a batch result by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*execution.BatchResult, error)

	// FindByGrammar retrieves recent batch results for a grammar, newest first.
	FindByGrammar(ctx context.Context, grammarName string, limit int) ([]*execution.BatchResult, error)

	// FindBetween retrieves batch results for a grammar started within a time range.
	FindBetween(ctx context.Context, grammarName string, start, end time.Time) ([]*execution.BatchResult, error)
}
