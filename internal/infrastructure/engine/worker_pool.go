package engine

import (
	"context"
	"fmt"

	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"golang.org/x/sync/errgroup"
)

// workerPoolState manages parallel derivation of a batch. Words are
// independent, so the coordinator only feeds indices to the workers;
// results land in the batch by index and keep input order.
type workerPoolState struct {
	// Immutable after initialization (safe for concurrent reads)
	words []execution.WordInput

	// Buffered channel for word indices ready to derive
	workChan chan int

	// Context and error handling
	ctx      context.Context
	cancel   context.CancelFunc
	errGroup *errgroup.Group

	// Execution dependencies
	engine *Engine
	result *execution.BatchResult
}

func (e *Engine) initializeWorkerPoolState(
	ctx context.Context,
	words []execution.WordInput,
	result *execution.BatchResult,
	workers int,
) *workerPoolState {
	groupCtx, cancel := context.WithCancel(ctx)
	g, gCtx := errgroup.WithContext(groupCtx)

	return &workerPoolState{
		words:    words,
		workChan: make(chan int, workers),
		ctx:      gCtx,
		cancel:   cancel,
		errGroup: g,
		engine:   e,
		result:   result,
	}
}

// coordinateExecution feeds every word index to the workers and closes
// workChan when done or when the context ends.
func (state *workerPoolState) coordinateExecution() error {
	defer close(state.workChan)

	for i := range state.words {
		select {
		case state.workChan <- i:
		case <-state.ctx.Done():
			return state.ctx.Err()
		}
	}
	return nil
}

// executeWorker pulls word indices from workChan until it is closed.
func (state *workerPoolState) executeWorker() error {
	for i := range state.workChan {
		if err := state.ctx.Err(); err != nil {
			return err
		}
		state.result.SetWordResult(state.engine.deriveWord(i, state.words[i]))
	}
	return nil
}

// executeWordsWithWorkerPool derives words in parallel with a fixed set of workers.
func (e *Engine) executeWordsWithWorkerPool(
	ctx context.Context,
	words []execution.WordInput,
	result *execution.BatchResult,
) error {
	numWorkers := e.config.workers(len(words))
	state := e.initializeWorkerPoolState(ctx, words, result, numWorkers)
	defer state.cancel()

	for i := 0; i < numWorkers; i++ {
		state.errGroup.Go(state.executeWorker)
	}

	state.errGroup.Go(state.coordinateExecution)

	if err := state.errGroup.Wait(); err != nil {
		return fmt.Errorf("worker pool execution failed: %w", err)
	}

	return nil
}
