package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	apperrors "github.com/sandhi-dev/sandhi/internal/application/errors"
	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGrammarLoader struct {
	spec *entities.GrammarSpec
	err  error
}

func (l *stubGrammarLoader) LoadGrammar(string) (*entities.GrammarSpec, error) {
	return l.spec, l.err
}

type stubWordLoader struct {
	words []execution.WordInput
	err   error
}

func (l *stubWordLoader) LoadWords(string) ([]execution.WordInput, error) {
	return l.words, l.err
}

// sequentialEngine derives words one by one with a domain Deriver.
type sequentialEngine struct {
	deriver *services.Deriver
	grammar *entities.Grammar
}

func (e *sequentialEngine) Execute(_ context.Context, words []execution.WordInput) (*execution.BatchResult, error) {
	result := execution.NewBatchResult(e.grammar.Name(), e.grammar.Metadata.Version, len(words))
	for i, w := range words {
		trace, err := e.deriver.DeriveInput(w.Input)
		if err != nil {
			result.SetWordResult(execution.NewErrorWordResult(i, w.Input, w.Expected, err))
			continue
		}
		result.SetWordResult(execution.NewWordResult(i, w.Input, w.Expected, trace))
	}
	result.Finalize()
	return result, nil
}

type stubEngineFactory struct {
	created bool
}

func (f *stubEngineFactory) CreateEngine(_ context.Context, g *entities.Grammar, _ dto.FilterOptions, _ dto.ExecutionOptions) (ports.DerivationEngine, error) {
	f.created = true
	return &sequentialEngine{deriver: services.NewDeriver(g), grammar: g}, nil
}

func scenarioGrammarSpec() *entities.GrammarSpec {
	return &entities.GrammarSpec{
		Metadata: entities.GrammarMetadata{Name: "scenario", Version: "0.1.0"},
		Features: []string{"syll", "voice"},
		Phonemes: []entities.PhonemeSpec{
			{Symbol: "a", Features: "+syll -voice"},
			{Symbol: "t", Features: "-syll -voice"},
			{Symbol: "d", Features: "-syll +voice"},
		},
		Rules: []entities.RuleSpec{
			{Group: "Voicing", Rule: "t > [+voice] / a_a"},
			{Group: "Devoicing", Rule: "d > [-voice] / _#"},
		},
	}
}

func newDeriveUseCase(spec *entities.GrammarSpec, words *stubWordLoader) (*DeriveWordsUseCase, *stubEngineFactory) {
	factory := &stubEngineFactory{}
	uc := NewDeriveWordsUseCase(&stubGrammarLoader{spec: spec}, services.NewGrammarCompiler(), words, factory, nil)
	return uc, factory
}

func TestDeriveWordsUseCase_Execute(t *testing.T) {
	uc, _ := newDeriveUseCase(scenarioGrammarSpec(), &stubWordLoader{
		words: []execution.WordInput{{Input: "atta", Expected: "atta"}},
	})

	resp, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{
		GrammarPath:  "scenario.yaml",
		Words:        []execution.WordInput{{Input: "ata"}, {Input: "ata", Expected: "ata"}},
		WordListPath: "words.txt",
		Metadata:     dto.RequestMetadata{RequestID: "req-1"},
	})
	require.NoError(t, err)

	result := resp.BatchResult
	require.Len(t, result.Words, 3)
	assert.Equal(t, values.StatusDerived, result.Words[0].Status)
	assert.Equal(t, "ada", result.Words[0].Trace.Surface)
	assert.Equal(t, values.StatusFail, result.Words[1].Status)
	assert.Equal(t, values.StatusPass, result.Words[2].Status)
	assert.Equal(t, "req-1", resp.Metadata.RequestID)
	assert.Equal(t, "scenario", resp.Grammar.Name())
	assert.Empty(t, resp.Diagnostics.SkippedGroups)
	assert.Empty(t, resp.Diagnostics.Warnings)
}

func TestDeriveWordsUseCase_GrammarErrors(t *testing.T) {
	broken := scenarioGrammarSpec()
	broken.Rules = []entities.RuleSpec{{Group: "Voicing", Rule: "t > [+nasal]"}}

	tests := []struct {
		name   string
		loader *stubGrammarLoader
		want   string
	}{
		{
			name:   "load failure",
			loader: &stubGrammarLoader{err: errors.New("no such file")},
			want:   "failed to load grammar",
		},
		{
			name:   "compile failure",
			loader: &stubGrammarLoader{spec: broken},
			want:   "compilation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := &stubEngineFactory{}
			uc := NewDeriveWordsUseCase(tt.loader, services.NewGrammarCompiler(), nil, factory, nil)

			_, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{
				Words: []execution.WordInput{{Input: "ata"}},
			})

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "grammar", vErr.Field)
			assert.Equal(t, tt.want, vErr.Message)
			assert.False(t, factory.created)
		})
	}
}

func TestDeriveWordsUseCase_Filters(t *testing.T) {
	tests := []struct {
		name    string
		filters dto.FilterOptions
		wantErr string
		skipped map[string]string
	}{
		{
			name:    "unknown include group",
			filters: dto.FilterOptions{IncludeGroups: []string{"Stress"}},
			wantErr: "--group references non-existent rule group: Stress",
		},
		{
			name:    "unknown exclude group",
			filters: dto.FilterOptions{ExcludeGroups: []string{"Stress"}},
			wantErr: "--exclude-group references non-existent rule group: Stress",
		},
		{
			name:    "bad expression",
			filters: dto.FilterOptions{FilterExpression: "name +"},
			wantErr: "invalid filter expression",
		},
		{
			name:    "excluded group reported",
			filters: dto.FilterOptions{ExcludeGroups: []string{"Devoicing"}},
			skipped: map[string]string{"Devoicing": "excluded by --exclude-group"},
		},
		{
			name:    "expression reported",
			filters: dto.FilterOptions{FilterExpression: "index == 1"},
			skipped: map[string]string{"Voicing": "excluded by --filter expression"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newDeriveUseCase(scenarioGrammarSpec(), nil)

			resp, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{
				Words:   []execution.WordInput{{Input: "ata"}},
				Filters: tt.filters,
			})

			if tt.wantErr != "" {
				var vErr *apperrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "filters", vErr.Field)
				assert.Contains(t, vErr.Message, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.skipped, resp.Diagnostics.SkippedGroups)
		})
	}
}

func TestDeriveWordsUseCase_UnknownSymbols(t *testing.T) {
	req := dto.DeriveWordsRequest{
		Words: []execution.WordInput{{Input: "ata"}, {Input: "axa"}},
	}

	t.Run("lenient marks the word as error", func(t *testing.T) {
		uc, _ := newDeriveUseCase(scenarioGrammarSpec(), nil)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, values.StatusError, resp.BatchResult.Words[1].Status)
		assert.Contains(t, resp.BatchResult.Words[1].Message, `unknown symbol "x"`)
		require.Len(t, resp.Diagnostics.Warnings, 1)
		assert.Contains(t, resp.Diagnostics.Warnings[0], "1 of 2 words")
	})

	t.Run("strict rejects the request", func(t *testing.T) {
		uc, factory := newDeriveUseCase(scenarioGrammarSpec(), nil)
		strict := req
		strict.StrictInput = true

		_, err := uc.Execute(context.Background(), strict)

		var inErr *apperrors.InputError
		require.ErrorAs(t, err, &inErr)
		assert.Equal(t, "axa", inErr.Input)

		var symErr *entities.UnknownSymbolError
		require.ErrorAs(t, err, &symErr)
		assert.Equal(t, "x", symErr.Symbol)
		assert.False(t, factory.created)
	})
}

func TestDeriveWordsUseCase_Words(t *testing.T) {
	t.Run("no words", func(t *testing.T) {
		uc, _ := newDeriveUseCase(scenarioGrammarSpec(), nil)
		_, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{})

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "words", vErr.Field)
	})

	t.Run("word list failure", func(t *testing.T) {
		uc, _ := newDeriveUseCase(scenarioGrammarSpec(), &stubWordLoader{err: errors.New("unreadable")})
		_, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{WordListPath: "words.txt"})

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "failed to load word list", vErr.Message)
	})

	t.Run("word list without loader", func(t *testing.T) {
		uc, _ := newDeriveUseCase(scenarioGrammarSpec(), nil)
		uc.wordLoader = nil
		_, err := uc.Execute(context.Background(), dto.DeriveWordsRequest{WordListPath: "words.txt"})

		var cErr *apperrors.ConfigurationError
		require.ErrorAs(t, err, &cErr)
	})
}
