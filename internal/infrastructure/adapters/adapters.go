// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"context"
	"fmt"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/repositories"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
	infraconfig "github.com/sandhi-dev/sandhi/internal/infrastructure/config"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/engine"
	"github.com/sandhi-dev/sandhi/internal/version"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.GrammarLoader    = (*GrammarLoaderAdapter)(nil)
	_ ports.WordListLoader   = (*WordListLoaderAdapter)(nil)
	_ ports.DerivationEngine = (*EngineAdapter)(nil)
	_ ports.EngineFactory    = (*EngineFactoryAdapter)(nil)
)

// GrammarLoaderAdapter adapts the infrastructure grammar loader to the port interface.
type GrammarLoaderAdapter struct {
	loader *infraconfig.GrammarLoader
}

// NewGrammarLoaderAdapter creates a new grammar loader adapter.
func NewGrammarLoaderAdapter() *GrammarLoaderAdapter {
	return &GrammarLoaderAdapter{
		loader: infraconfig.NewGrammarLoader(),
	}
}

// LoadGrammar loads a grammar document in the format its extension names.
func (a *GrammarLoaderAdapter) LoadGrammar(path string) (*entities.GrammarSpec, error) {
	return a.loader.LoadGrammar(path)
}

// WordListLoaderAdapter adapts the infrastructure word list loader to the port interface.
type WordListLoaderAdapter struct {
	loader *infraconfig.WordListLoader
}

// NewWordListLoaderAdapter creates a new word list loader adapter.
func NewWordListLoaderAdapter() *WordListLoaderAdapter {
	return &WordListLoaderAdapter{
		loader: infraconfig.NewWordListLoader(),
	}
}

// LoadWords loads a word list.
func (a *WordListLoaderAdapter) LoadWords(path string) ([]execution.WordInput, error) {
	return a.loader.LoadWords(path)
}

// EngineAdapter wraps the infrastructure engine to implement the port interface.
type EngineAdapter struct {
	engine *engine.Engine
}

// Execute derives the words using the wrapped engine.
func (a *EngineAdapter) Execute(ctx context.Context, words []execution.WordInput) (*execution.BatchResult, error) {
	return a.engine.Execute(ctx, words)
}

// EngineFactoryAdapter creates derivation engines.
type EngineFactoryAdapter struct {
	repository repositories.BatchResultRepository
	version    version.Info
}

// NewEngineFactoryAdapter creates a new engine factory adapter. repo may be
// nil, in which case results are not persisted.
func NewEngineFactoryAdapter(repo repositories.BatchResultRepository) *EngineFactoryAdapter {
	return &EngineFactoryAdapter{
		repository: repo,
		version:    version.Get(),
	}
}

// CreateEngine creates a derivation engine for the grammar.
func (a *EngineFactoryAdapter) CreateEngine(
	_ context.Context,
	grammar *entities.Grammar,
	filters dto.FilterOptions,
	exec dto.ExecutionOptions,
) (ports.DerivationEngine, error) {
	cfg, err := a.buildExecutionConfig(filters, exec)
	if err != nil {
		return nil, err
	}

	var eng *engine.Engine
	if a.repository != nil {
		eng = engine.NewEngineWithRepository(grammar, a.version, cfg, a.repository)
	} else {
		eng = engine.NewEngineWithConfig(grammar, a.version, cfg)
	}

	return &EngineAdapter{engine: eng}, nil
}

// buildExecutionConfig constructs an ExecutionConfig from filter and execution options.
func (a *EngineFactoryAdapter) buildExecutionConfig(filters dto.FilterOptions, exec dto.ExecutionOptions) (engine.ExecutionConfig, error) {
	cfg := engine.DefaultExecutionConfig()

	cfg.Parallel = exec.Parallel
	cfg.RuleSteps = exec.RuleSteps
	if exec.MaxConcurrentWords > 0 {
		cfg.MaxConcurrentWords = exec.MaxConcurrentWords
	}

	if filters.IsEmpty() {
		return cfg, nil
	}

	filter := services.NewGroupFilter().
		WithExclusiveGroups(filters.IncludeGroups).
		WithExcludedGroups(filters.ExcludeGroups)

	if filters.FilterExpression != "" {
		program, err := services.CompileGroupFilter(filters.FilterExpression)
		if err != nil {
			return cfg, fmt.Errorf("failed to build group filter: %w", err)
		}
		filter.WithFilterExpression(program)
	}
	cfg.Filter = filter

	return cfg, nil
}
