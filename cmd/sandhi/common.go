package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommonOptions contains the output and execution flags of derive.
type CommonOptions struct {
	// Output
	Format string
	Output string

	// Execution
	Timeout        time.Duration
	MaxConcurrency int

	// Flags (bools grouped for alignment)
	Parallel  bool
	Color     bool
	Syllables bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout:  2 * time.Minute,
		Format:   "table",
		Parallel: true,
		Color:    true,
	}
}

// RegisterFlags adds common flags to a cobra command and binds the
// configurable ones to viper keys.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for one batch (0 to disable)")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", opts.Parallel,
		"Derive words in parallel")
	cmd.Flags().IntVar(&opts.MaxConcurrency, "max-concurrency", opts.MaxConcurrency,
		"Maximum words derived at once (0 = number of CPUs)")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml, junit")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.Color, "color", opts.Color,
		"Colorize table output")
	cmd.Flags().BoolVar(&opts.Syllables, "syllables", false,
		"Show syllabified forms")

	bindings := map[string]string{
		"format":          "format",
		"parallel":        "parallel",
		"max_concurrency": "max-concurrency",
		"color":           "color",
		"syllables":       "syllables",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// ApplyConfig overlays values resolved by viper, so a config file or
// SANDHI_* variable applies when the flag was not given.
func (opts *CommonOptions) ApplyConfig(v *viper.Viper) {
	opts.Format = v.GetString("format")
	opts.Parallel = v.GetBool("parallel")
	opts.MaxConcurrency = v.GetInt("max_concurrency")
	opts.Color = v.GetBool("color")
	opts.Syllables = v.GetBool("syllables")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options against the supported formats.
func (opts *CommonOptions) ValidateFlags(formats []string) error {
	if !slices.Contains(formats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %v)", opts.Format, formats)
	}
	if opts.MaxConcurrency < 0 {
		return fmt.Errorf("--max-concurrency must not be negative")
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}
