// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// GrammarLoader loads grammar documents from storage.
type GrammarLoader interface {
	LoadGrammar(path string) (*entities.GrammarSpec, error)
}

// WordListLoader loads word lists from storage.
type WordListLoader interface {
	LoadWords(path string) ([]execution.WordInput, error)
}

// DerivationEngine derives batches of words against one grammar.
type DerivationEngine interface {
	Execute(ctx context.Context, words []execution.WordInput) (*execution.BatchResult, error)
}

// EngineFactory creates derivation engines for a compiled grammar.
type EngineFactory interface {
	CreateEngine(ctx context.Context, grammar *entities.Grammar, filters dto.FilterOptions, execution dto.ExecutionOptions) (DerivationEngine, error)
}

// OutputFormatter formats batch results.
type OutputFormatter interface {
	Format(result *execution.BatchResult) error
}

// FormatterOptions configure an output formatter.
type FormatterOptions struct {
	// Groups lists the grammar's rules for formats that print them as a header
	Groups []dto.GroupSummary

	// Indent pretty-prints structured formats
	Indent bool

	// Color enables ANSI colors in terminal formats
	Color bool

	// Syllables shows syllabified forms instead of flat ones
	Syllables bool

	// RuleSteps shows the form after every rule
	RuleSteps bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
