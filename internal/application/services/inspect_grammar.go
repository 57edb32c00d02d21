package services

import (
	"context"
	"log/slog"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
)

// InspectGrammarUseCase loads and compiles a grammar without deriving anything.
// It backs the validate and rules commands.
type InspectGrammarUseCase struct {
	grammarLoader   ports.GrammarLoader
	grammarCompiler *services.GrammarCompiler
	logger          *slog.Logger
}

// NewInspectGrammarUseCase creates a new inspect grammar use case.
func NewInspectGrammarUseCase(
	grammarLoader ports.GrammarLoader,
	grammarCompiler *services.GrammarCompiler,
	logger *slog.Logger,
) *InspectGrammarUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &InspectGrammarUseCase{
		grammarLoader:   grammarLoader,
		grammarCompiler: grammarCompiler,
		logger:          logger,
	}
}

// Execute loads, compiles and summarises the grammar.
func (uc *InspectGrammarUseCase) Execute(_ context.Context, req dto.InspectGrammarRequest) (*dto.InspectGrammarResponse, error) {
	uc.logger.Info("loading grammar", "path", req.GrammarPath)

	grammar, err := loadAndCompileGrammar(uc.grammarLoader, uc.grammarCompiler, uc.logger, req.GrammarPath)
	if err != nil {
		return nil, err
	}

	summary := Summarize(grammar)
	uc.logger.Info("grammar compiled",
		"groups", len(summary.Groups),
		"rules", summary.RuleCount(),
		"phonemes", summary.Phonemes)

	return &dto.InspectGrammarResponse{Grammar: grammar, Summary: summary}, nil
}

// Summarize describes a compiled grammar.
func Summarize(g *entities.Grammar) dto.GrammarSummary {
	summary := dto.GrammarSummary{
		Name:            g.Metadata.Name,
		Version:         g.Metadata.Version,
		Description:     g.Metadata.Description,
		SyllabicFeature: g.Metadata.SyllabicFeature,
		Features:        len(g.Features()),
		Phonemes:        len(g.Phonemes()),
		Abbreviations:   len(g.Abbreviations()),
		Syllables:       len(g.Syllables().Shapes),
	}

	for _, group := range g.Groups() {
		gs := dto.GroupSummary{Name: group.Name}
		for _, r := range group.Rules {
			gs.Rules = append(gs.Rules, r.Text)
		}
		summary.Groups = append(summary.Groups, gs)
	}
	return summary
}
