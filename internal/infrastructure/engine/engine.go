package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/repositories"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
	"github.com/sandhi-dev/sandhi/internal/version"
)

// WordDeriver derives a single input form.
type WordDeriver interface {
	DeriveInput(input string) (*execution.DerivationTrace, error)
}

// Engine derives batches of words against one compiled grammar.
// The grammar is shared read-only by every worker.
type Engine struct {
	repository repositories.BatchResultRepository
	deriver    WordDeriver
	grammar    *entities.Grammar
	version    version.Info
	config     ExecutionConfig
}

// NewEngine creates a new engine with default configuration.
func NewEngine(grammar *entities.Grammar, info version.Info) *Engine {
	return NewEngineWithConfig(grammar, info, DefaultExecutionConfig())
}

// NewEngineWithConfig creates a new engine with custom configuration.
func NewEngineWithConfig(grammar *entities.Grammar, info version.Info, cfg ExecutionConfig) *Engine {
	deriver := services.NewDeriver(grammar,
		services.WithGroupFilter(cfg.Filter),
		services.WithRuleSteps(cfg.RuleSteps))

	return &Engine{
		deriver: deriver,
		grammar: grammar,
		version: info,
		config:  cfg,
	}
}

// NewEngineWithRepository creates an engine that saves every finished batch.
func NewEngineWithRepository(
	grammar *entities.Grammar,
	info version.Info,
	cfg ExecutionConfig,
	repo repositories.BatchResultRepository,
) *Engine {
	e := NewEngineWithConfig(grammar, info, cfg)
	e.repository = repo
	return e
}

// Execute derives every word and returns the results in input order.
// Cancellation is observed between words; a derivation in progress runs
// to completion.
func (e *Engine) Execute(ctx context.Context, words []execution.WordInput) (*execution.BatchResult, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	result := execution.NewBatchResult(e.grammar.Name(), e.grammar.Metadata.Version, len(words))
	result.SandhiVersion = e.version.String()

	if e.config.Parallel && len(words) > 1 {
		if err := e.executeWordsWithWorkerPool(ctx, words, result); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("execution timed out: %w", err)
			}
			return nil, err
		}
	} else {
		for i, w := range words {
			if err := contextError(ctx); err != nil {
				return nil, err
			}
			result.SetWordResult(e.deriveWord(i, w))
		}
	}

	if err := contextError(ctx); err != nil {
		return nil, err
	}

	result.Finalize()

	if e.repository != nil {
		if err := e.repository.Save(ctx, result); err != nil {
			slog.Warn("failed to persist batch result", "error", err, "execution_id", result.ExecutionID)
		}
	}

	return result, nil
}

// deriveWord derives one word. Unknown symbols produce an error result
// rather than an error, so the rest of the batch continues.
func (e *Engine) deriveWord(index int, w execution.WordInput) execution.WordResult {
	start := time.Now()

	trace, err := e.deriver.DeriveInput(w.Input)
	if err != nil {
		wr := execution.NewErrorWordResult(index, w.Input, w.Expected, err)
		wr.Duration = time.Since(start)
		return wr
	}

	wr := execution.NewWordResult(index, w.Input, w.Expected, trace)
	wr.Duration = time.Since(start)
	return wr
}

// Grammar returns the grammar the engine derives against.
func (e *Engine) Grammar() *entities.Grammar {
	return e.grammar
}

func contextError(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("execution timed out: %w", ctx.Err())
	}
	return ctx.Err()
}
