package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	apperrors "github.com/sandhi-dev/sandhi/internal/application/errors"
	"github.com/sandhi-dev/sandhi/internal/application/ports"
	"github.com/sandhi-dev/sandhi/internal/application/services"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// deriveOptions holds the flags of the derive command.
type deriveOptions struct {
	CommonOptions

	WordsFile     string
	Expect        string
	Filter        string
	Groups        []string
	ExcludeGroups []string
	RuleSteps     bool
	Strict        bool
	Watch         bool
}

var deriveOpts = deriveOptions{CommonOptions: DefaultCommonOptions()}

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive <grammar> [word...]",
	Short: "Derive surface forms from underlying forms",
	Long: `Load a grammar and derive every word given as an argument or listed in
a word list. Each word list line holds an underlying form and, optionally,
the expected surface form; words whose surface form differs are reported
as failures.

Filtering:
  --group Voicing               Run only the named groups
  --exclude-group Apocope       Skip the named groups
  --filter "index < 3"          Advanced filter over group name and index`,
	Example: `  sandhi derive grammar.yaml ata atta
  sandhi derive grammar.yaml pata --expect pada
  sandhi derive grammar.txt --words words.txt --format json
  sandhi derive grammar.yaml --words words.txt --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
		deriveOpts.ApplyConfig(viper.GetViper())
		return runDerive(cc, cmd.OutOrStdout(), deriveOpts, args[0], args[1:])
	}),
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveOpts.RegisterFlags(deriveCmd)

	deriveCmd.Flags().StringVarP(&deriveOpts.WordsFile, "words", "w", "", "Word list file")
	deriveCmd.Flags().StringVar(&deriveOpts.Expect, "expect", "", "Expected surface form of a single word argument")
	deriveCmd.Flags().BoolVar(&deriveOpts.Strict, "strict", false, "Reject the batch when any word uses an unknown symbol")
	deriveCmd.Flags().BoolVar(&deriveOpts.RuleSteps, "rules", false, "Show the form after every rule")
	deriveCmd.Flags().BoolVar(&deriveOpts.Watch, "watch", false, "Re-derive when the grammar or word list changes")

	// Filtering flags
	deriveCmd.Flags().StringSliceVar(&deriveOpts.Groups, "group", nil, "Run only these rule groups (exclusive, comma-separated)")
	deriveCmd.Flags().StringSliceVar(&deriveOpts.ExcludeGroups, "exclude-group", nil, "Skip these rule groups (comma-separated)")
	deriveCmd.Flags().StringVar(&deriveOpts.Filter, "filter", "", "Advanced filter expression (e.g. \"name startsWith 'Stress'\")")
}

// runDerive implements the core logic for the derive command.
func runDerive(cc *CommandContext, out io.Writer, opts deriveOptions, grammarPath string, words []string) error {
	if err := opts.ValidateFlags(cc.Container.FormatterFactory().SupportedFormats()); err != nil {
		return err
	}
	if opts.Expect != "" && len(words) != 1 {
		return fmt.Errorf("--expect requires exactly one word argument")
	}

	req := buildDeriveRequest(opts, grammarPath, words)

	if opts.Watch {
		return watchAndDerive(cc, out, opts, req)
	}

	resp, err := deriveOnce(cc.Context, cc, out, opts, req)
	if err != nil {
		return err
	}

	// Return non-zero exit code if there were failures or errors
	summary := resp.BatchResult.Summary
	if resp.BatchResult.HasFailures() {
		return fmt.Errorf("derivation failed: %d passed, %d failed, %d errors",
			summary.PassedWords, summary.FailedWords, summary.ErrorWords)
	}
	return nil
}

func buildDeriveRequest(opts deriveOptions, grammarPath string, words []string) dto.DeriveWordsRequest {
	inputs := make([]execution.WordInput, 0, len(words))
	for _, w := range words {
		inputs = append(inputs, execution.WordInput{Input: w, Expected: opts.Expect})
	}

	return dto.DeriveWordsRequest{
		GrammarPath:  grammarPath,
		Words:        inputs,
		WordListPath: opts.WordsFile,
		StrictInput:  opts.Strict,
		Filters: dto.FilterOptions{
			FilterExpression: opts.Filter,
			IncludeGroups:    opts.Groups,
			ExcludeGroups:    opts.ExcludeGroups,
		},
		Execution: dto.ExecutionOptions{
			Parallel:           opts.Parallel,
			MaxConcurrentWords: opts.MaxConcurrency,
			RuleSteps:          opts.RuleSteps,
		},
	}
}

// deriveOnce runs one batch and writes the formatted result.
func deriveOnce(
	ctx context.Context,
	cc *CommandContext,
	out io.Writer,
	opts deriveOptions,
	req dto.DeriveWordsRequest,
) (*dto.DeriveWordsResponse, error) {
	ctx, cancel := opts.ApplyToContext(ctx)
	defer cancel()

	resp, err := cc.Container.DeriveWordsUseCase().Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, warning := range resp.Diagnostics.Warnings {
		cc.Logger.Warn(warning)
	}
	for group, reason := range resp.Diagnostics.SkippedGroups {
		cc.Logger.Debug("rule group skipped", "group", group, "reason", reason)
	}

	writer := out
	color := opts.Color
	if opts.Output != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(opts.Output)
		if err != nil {
			return nil, apperrors.NewConfigurationError("output", "failed to create output file", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
		color = false
		cc.Logger.Info("writing output", "file", opts.Output, "format", opts.Format)
	}

	formatter, err := cc.Container.FormatterFactory().Create(opts.Format, writer, ports.FormatterOptions{
		Groups:    services.Summarize(resp.Grammar).Groups,
		Indent:    true,
		Color:     color,
		Syllables: opts.Syllables,
		RuleSteps: opts.RuleSteps,
	})
	if err != nil {
		return nil, err
	}

	if err := formatter.Format(resp.BatchResult); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}

	return resp, nil
}

// watchAndDerive derives once, then again whenever the grammar or word
// list changes, until interrupted. Failed batches do not stop watching.
func watchAndDerive(cc *CommandContext, out io.Writer, opts deriveOptions, req dto.DeriveWordsRequest) error {
	w, err := watcher.New([]string{req.GrammarPath, req.WordListPath}, watcher.WithLogger(cc.Logger))
	if err != nil {
		return apperrors.NewConfigurationError("watcher", "failed to watch input files", err)
	}

	ctx, stop := signal.NotifyContext(cc.Context, os.Interrupt)
	defer stop()

	rerun := func(ctx context.Context) error {
		resp, err := deriveOnce(ctx, cc, out, opts, req)
		if err != nil {
			return err
		}
		reportChanges(ctx, cc, resp.BatchResult)
		return nil
	}

	if err := rerun(ctx); err != nil {
		cc.Logger.Error("derivation failed", "error", err)
	}

	cc.Logger.Info("watching for changes", "grammar", req.GrammarPath, "words", req.WordListPath)
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		cc.Logger.Info("change detected", "files", changed)
		return rerun(ctx)
	})
}

// reportChanges logs how many surface forms differ from the previous batch
// of the same grammar.
func reportChanges(ctx context.Context, cc *CommandContext, current *execution.BatchResult) {
	recent, err := cc.Container.History().FindByGrammar(ctx, current.GrammarName, 2)
	if err != nil || len(recent) < 2 {
		return
	}

	changed := changedSurfaces(recent[1], current)
	if changed < 0 {
		cc.Logger.Info("word list changed", "previous_words", len(recent[1].Words), "words", len(current.Words))
		return
	}
	cc.Logger.Info("surface forms changed since last run", "changed", changed, "words", len(current.Words))
}

// changedSurfaces counts words whose surface form differs between two
// batches over the same inputs. It returns -1 when the inputs differ.
func changedSurfaces(previous, current *execution.BatchResult) int {
	if len(previous.Words) != len(current.Words) {
		return -1
	}

	changed := 0
	for i := range current.Words {
		prev, cur := previous.Words[i], current.Words[i]
		if prev.Input != cur.Input {
			return -1
		}
		if surfaceOf(prev) != surfaceOf(cur) {
			changed++
		}
	}
	return changed
}

func surfaceOf(wr execution.WordResult) string {
	if wr.Trace == nil {
		return ""
	}
	return wr.Trace.Surface
}
