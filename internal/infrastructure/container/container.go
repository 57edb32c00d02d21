// Package container provides dependency injection for the application.
package container

import (
	"log/slog"

	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/application/services"
	"github.com/sandhi-dev/sandhi/internal/domain/repositories"
	domainservices "github.com/sandhi-dev/sandhi/internal/domain/services"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/adapters"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/output"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/persistence/memory"
)

// DefaultHistorySize is the number of batch results kept in memory.
const DefaultHistorySize = 16

// Container holds all application dependencies.
type Container struct {
	grammarLoader         ports.GrammarLoader
	wordListLoader        ports.WordListLoader
	engineFactory         ports.EngineFactory
	formatterFactory      ports.OutputFormatterFactory
	history               repositories.BatchResultRepository
	deriveWordsUseCase    *services.DeriveWordsUseCase
	inspectGrammarUseCase *services.InspectGrammarUseCase
	logger                *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger      *slog.Logger
	HistorySize int
}

// New creates a new dependency injection container.
func New(opts Options) *Container {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}

	// Initialize adapters
	grammarLoader := adapters.NewGrammarLoaderAdapter()
	wordListLoader := adapters.NewWordListLoaderAdapter()

	// Finished batches are kept so watch mode can compare successive runs
	history := memory.NewBatchResultRepository(opts.HistorySize)
	engineFactory := adapters.NewEngineFactoryAdapter(history)

	compiler := domainservices.NewGrammarCompiler()

	deriveWordsUseCase := services.NewDeriveWordsUseCase(
		grammarLoader,
		compiler,
		wordListLoader,
		engineFactory,
		opts.Logger,
	)
	inspectGrammarUseCase := services.NewInspectGrammarUseCase(grammarLoader, compiler, opts.Logger)

	return &Container{
		grammarLoader:         grammarLoader,
		wordListLoader:        wordListLoader,
		engineFactory:         engineFactory,
		formatterFactory:      output.NewFormatterFactory(),
		history:               history,
		deriveWordsUseCase:    deriveWordsUseCase,
		inspectGrammarUseCase: inspectGrammarUseCase,
		logger:                opts.Logger,
	}
}

// DeriveWordsUseCase returns the derive words use case.
func (c *Container) DeriveWordsUseCase() *services.DeriveWordsUseCase {
	return c.deriveWordsUseCase
}

// InspectGrammarUseCase returns the inspect grammar use case.
func (c *Container) InspectGrammarUseCase() *services.InspectGrammarUseCase {
	return c.inspectGrammarUseCase
}

// GrammarLoader returns the grammar loader port.
func (c *Container) GrammarLoader() ports.GrammarLoader {
	return c.grammarLoader
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// History returns the repository of finished batch results.
func (c *Container) History() repositories.BatchResultRepository {
	return c.history
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
