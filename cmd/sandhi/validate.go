package main

import (
	"fmt"
	"io"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/spf13/cobra"
)

// validateCmd loads and compiles a grammar without deriving anything.
var validateCmd = &cobra.Command{
	Use:   "validate <grammar>",
	Short: "Check that a grammar loads and compiles",
	Long: `Load a grammar, validate its structure and compile every abbreviation,
syllable template and rule. Errors name the section and the offending text.`,
	Args: cobra.ExactArgs(1),
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
		resp, err := cc.Container.InspectGrammarUseCase().Execute(cc.Context, dto.InspectGrammarRequest{GrammarPath: args[0]})
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), args[0], resp.Summary)
	}),
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func printSummary(w io.Writer, path string, s dto.GrammarSummary) error {
	name := s.Name
	if s.Version != "" {
		name += " " + s.Version
	}

	_, err := fmt.Fprintf(w, `✓ %s is valid (%s)
  features:      %d
  phonemes:      %d
  abbreviations: %d
  syllables:     %d
  rule groups:   %d
  rules:         %d
`, path, name, s.Features, s.Phonemes, s.Abbreviations, s.Syllables, len(s.Groups), s.RuleCount())
	return err
}
