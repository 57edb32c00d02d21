package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
	"github.com/sandhi-dev/sandhi/internal/domain/services"
	"github.com/sandhi-dev/sandhi/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// Starter grammar templates.
const (
	templateVoicing = "voicing"
	templateMinimal = "minimal"
)

// InitOptions holds the answers used to scaffold a grammar.
type InitOptions struct {
	Name          string
	Description   string
	Template      string
	OutputPath    string
	Force         bool
	NoInteractive bool
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter grammar",
	Long: `Write a starter YAML grammar. Without --no-interactive the missing
answers are prompted for.

Templates:
  voicing   small consonant inventory with intervocalic voicing and final devoicing
  minimal   one vowel and one consonant, no rules`,
	Example: `  sandhi init
  sandhi init latin.yaml --name latin --template minimal --no-interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "Grammar name")
	initCmd.Flags().String("description", "", "Grammar description")
	initCmd.Flags().String("template", "", "Starter template: voicing, minimal")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	initCmd.Flags().Bool("no-interactive", false, "Disable interactive prompts")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	opts := InitOptions{OutputPath: "grammar.yaml"}
	if len(args) == 1 {
		opts.OutputPath = args[0]
	}

	opts.Name, _ = cmd.Flags().GetString("name")
	opts.Description, _ = cmd.Flags().GetString("description")
	opts.Template, _ = cmd.Flags().GetString("template")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.NoInteractive, _ = cmd.Flags().GetBool("no-interactive")

	if !opts.NoInteractive {
		if err := promptInitOptions(&opts); err != nil {
			return err
		}
	}

	return writeStarterGrammar(cmd.OutOrStdout(), opts)
}

func promptInitOptions(opts *InitOptions) error {
	if opts.Name == "" {
		err := huh.NewInput().
			Title("Grammar name").
			Value(&opts.Name).
			Run()
		if err != nil {
			return err
		}
	}

	if opts.Description == "" {
		err := huh.NewInput().
			Title("Description (optional)").
			Value(&opts.Description).
			Run()
		if err != nil {
			return err
		}
	}

	if opts.Template == "" {
		err := huh.NewSelect[string]().
			Title("Starter template").
			Options(
				huh.NewOption("Voicing (stops, vowels, two rule groups)", templateVoicing),
				huh.NewOption("Minimal (one vowel, one consonant)", templateMinimal),
			).
			Value(&opts.Template).
			Run()
		if err != nil {
			return err
		}
	}

	return nil
}

// writeStarterGrammar renders the template, checks that it compiles and
// writes it to opts.OutputPath.
func writeStarterGrammar(out io.Writer, opts InitOptions) error {
	spec, err := starterGrammar(opts)
	if err != nil {
		return err
	}

	if _, err := services.NewGrammarCompiler().Compile(spec); err != nil {
		return fmt.Errorf("starter grammar does not compile: %w", err)
	}

	data, err := config.MarshalGrammarYAML(spec)
	if err != nil {
		return err
	}

	if !opts.Force {
		if _, err := os.Stat(opts.OutputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.OutputPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", opts.OutputPath, err)
		}
	}

	//nolint:gosec // G306: grammar files are meant to be shared
	if err := os.WriteFile(opts.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write grammar: %w", err)
	}

	_, err = fmt.Fprintf(out, "Wrote %s\nTry: sandhi derive %s ata\n", opts.OutputPath, opts.OutputPath)
	return err
}

func starterGrammar(opts InitOptions) (*entities.GrammarSpec, error) {
	name := opts.Name
	if name == "" {
		name = "my-grammar"
	}
	meta := entities.GrammarMetadata{
		Name:        name,
		Version:     "0.1.0",
		Description: opts.Description,
	}

	switch opts.Template {
	case templateVoicing, "":
		return &entities.GrammarSpec{
			Metadata: meta,
			Features: []string{"syll", "son", "voice", "lab", "back"},
			Phonemes: []entities.PhonemeSpec{
				{Symbol: "a", Features: "+syll +son +voice -lab +back"},
				{Symbol: "i", Features: "+syll +son +voice -lab -back"},
				{Symbol: "u", Features: "+syll +son +voice +lab +back"},
				{Symbol: "p", Features: "-syll -son -voice +lab -back"},
				{Symbol: "t", Features: "-syll -son -voice -lab -back"},
				{Symbol: "k", Features: "-syll -son -voice -lab +back"},
				{Symbol: "b", Features: "-syll -son +voice +lab -back"},
				{Symbol: "d", Features: "-syll -son +voice -lab -back"},
				{Symbol: "g", Features: "-syll -son +voice -lab +back"},
				{Symbol: "m", Features: "-syll +son +voice +lab -back"},
				{Symbol: "n", Features: "-syll +son +voice -lab -back"},
			},
			Abbreviations: []entities.AbbreviationSpec{
				{Symbol: "C", Features: "-syll"},
				{Symbol: "V", Features: "+syll"},
			},
			Syllables: []string{"CV", "CVC", "V", "VC"},
			Rules: []entities.RuleSpec{
				{Group: "Intervocalic voicing", Rule: "[-son] > [+voice] / V_V"},
				{Group: "Final devoicing", Rule: "[-son] > [-voice] / _#"},
			},
		}, nil
	case templateMinimal:
		return &entities.GrammarSpec{
			Metadata: meta,
			Features: []string{"syll"},
			Phonemes: []entities.PhonemeSpec{
				{Symbol: "a", Features: "+syll"},
				{Symbol: "t", Features: "-syll"},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown template: %s (valid: %s, %s)", opts.Template, templateVoicing, templateMinimal)
	}
}
