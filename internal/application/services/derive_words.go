// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	apperrors "github.com/sandhi-dev/sandhi/internal/application/errors"
	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
)

// DeriveWordsUseCase orchestrates loading a grammar and deriving a batch of words.
// This is a pure application layer component that depends only on ports.
type DeriveWordsUseCase struct {
	grammarLoader   ports.GrammarLoader
	grammarCompiler *services.GrammarCompiler
	wordLoader      ports.WordListLoader
	engineFactory   ports.EngineFactory
	logger          *slog.Logger
}

// NewDeriveWordsUseCase creates a new derive words use case.
func NewDeriveWordsUseCase(
	grammarLoader ports.GrammarLoader,
	grammarCompiler *services.GrammarCompiler,
	wordLoader ports.WordListLoader,
	engineFactory ports.EngineFactory,
	logger *slog.Logger,
) *DeriveWordsUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &DeriveWordsUseCase{
		grammarLoader:   grammarLoader,
		grammarCompiler: grammarCompiler,
		wordLoader:      wordLoader,
		engineFactory:   engineFactory,
		logger:          logger,
	}
}

// Execute runs the complete derivation workflow.
func (uc *DeriveWordsUseCase) Execute(ctx context.Context, req dto.DeriveWordsRequest) (*dto.DeriveWordsResponse, error) {
	startTime := time.Now()

	uc.logger.Info("loading grammar", "path", req.GrammarPath)

	grammar, err := loadAndCompileGrammar(uc.grammarLoader, uc.grammarCompiler, uc.logger, req.GrammarPath)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("grammar compiled",
		"groups", len(grammar.Groups()),
		"rules", grammar.RuleCount(),
		"phonemes", len(grammar.Phonemes()))

	filter, err := buildGroupFilter(grammar, req.Filters)
	if err != nil {
		return nil, err
	}

	words, err := uc.collectWords(req)
	if err != nil {
		return nil, err
	}

	if req.StrictInput {
		if err := checkInput(grammar, words); err != nil {
			return nil, err
		}
	}

	eng, err := uc.engineFactory.CreateEngine(ctx, grammar, req.Filters, req.Execution)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	result, err := eng.Execute(ctx, words)
	if err != nil {
		return nil, apperrors.NewExecutionError(grammar.Name(), "batch did not complete", err)
	}

	uc.logger.Info("derivation complete",
		"words", result.Summary.TotalWords,
		"failed", result.Summary.FailedWords,
		"errors", result.Summary.ErrorWords,
		"duration", result.Duration)

	return &dto.DeriveWordsResponse{
		BatchResult: result,
		Grammar:     grammar,
		Metadata: dto.ResponseMetadata{
			RequestID:   req.Metadata.RequestID,
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
		Diagnostics: diagnose(grammar, filter, result),
	}, nil
}

func (uc *DeriveWordsUseCase) collectWords(req dto.DeriveWordsRequest) ([]execution.WordInput, error) {
	words := append([]execution.WordInput(nil), req.Words...)

	if req.WordListPath != "" {
		if uc.wordLoader == nil {
			return nil, apperrors.NewConfigurationError("words", "no word list loader configured", nil)
		}
		listed, err := uc.wordLoader.LoadWords(req.WordListPath)
		if err != nil {
			return nil, apperrors.NewValidationError("words", "failed to load word list", err.Error())
		}
		uc.logger.Debug("word list loaded", "path", req.WordListPath, "words", len(listed))
		words = append(words, listed...)
	}

	if len(words) == 0 {
		return nil, apperrors.NewValidationError("words", "no words to derive")
	}
	return words, nil
}

// loadAndCompileGrammar loads the grammar document at path and compiles it.
func loadAndCompileGrammar(
	loader ports.GrammarLoader,
	compiler *services.GrammarCompiler,
	logger *slog.Logger,
	path string,
) (*entities.Grammar, error) {
	spec, err := loader.LoadGrammar(path)
	if err != nil {
		return nil, apperrors.NewValidationError("grammar", "failed to load grammar", err.Error())
	}

	logger.Info("grammar loaded", "name", spec.Metadata.Name, "version", spec.Metadata.Version)

	grammar, err := compiler.Compile(spec)
	if err != nil {
		return nil, apperrors.NewValidationError("grammar", "compilation failed", err.Error())
	}
	return grammar, nil
}

// buildGroupFilter validates filter options against the grammar and
// compiles them into a GroupFilter.
func buildGroupFilter(grammar *entities.Grammar, filters dto.FilterOptions) (*services.GroupFilter, error) {
	if len(filters.IncludeGroups) > 0 || len(filters.ExcludeGroups) > 0 {
		groupMap := make(map[string]bool, len(grammar.Groups()))
		for _, g := range grammar.Groups() {
			groupMap[g.Name] = true
		}

		for _, name := range filters.IncludeGroups {
			if !groupMap[name] {
				return nil, apperrors.NewValidationError(
					"filters",
					fmt.Sprintf("--group references non-existent rule group: %s", name),
				)
			}
		}

		for _, name := range filters.ExcludeGroups {
			if !groupMap[name] {
				return nil, apperrors.NewValidationError(
					"filters",
					fmt.Sprintf("--exclude-group references non-existent rule group: %s", name),
				)
			}
		}
	}

	filter := services.NewGroupFilter().
		WithExclusiveGroups(filters.IncludeGroups).
		WithExcludedGroups(filters.ExcludeGroups)

	if filters.FilterExpression != "" {
		program, err := services.CompileGroupFilter(filters.FilterExpression)
		if err != nil {
			return nil, apperrors.NewValidationError(
				"filters",
				fmt.Sprintf("%v\nExample: name != 'Stress' && rules > 1", err),
			)
		}
		filter.WithFilterExpression(program)
	}

	return filter, nil
}

// checkInput rejects the first word containing a symbol the grammar does not declare.
func checkInput(grammar *entities.Grammar, words []execution.WordInput) error {
	for _, w := range words {
		if _, err := grammar.Tokenize(w.Input); err != nil {
			return apperrors.NewInputError(w.Input, err)
		}
	}
	return nil
}

func diagnose(grammar *entities.Grammar, filter *services.GroupFilter, result *execution.BatchResult) dto.Diagnostics {
	var diag dto.Diagnostics

	if !filter.IsEmpty() {
		diag.SkippedGroups = make(map[string]string)
		for i, g := range grammar.Groups() {
			if ok, reason := filter.ShouldRun(g, i); !ok {
				diag.SkippedGroups[g.Name] = reason
			}
		}
	}

	if result.Summary.ErrorWords > 0 {
		diag.Warnings = append(diag.Warnings,
			fmt.Sprintf("%d of %d words were not derived because of unknown symbols",
				result.Summary.ErrorWords, result.Summary.TotalWords))
	}
	return diag
}
