package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const separator = "---"

// TableFormatter prints one derivation table per word:
//
//	UR       |  /ata/
//	Voicing  |  ada
//	SR       |  [ada]
//
// A group that left the word unchanged prints "-".
type TableFormatter struct {
	writer      io.Writer
	Groups      []dto.GroupSummary
	EnableColor bool
	Syllables   bool
	RuleSteps   bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the batch result as derivation tables.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(result *execution.BatchResult) error {
	if len(f.Groups) > 0 {
		f.formatRules()
		fmt.Fprintln(f.writer, separator)
		fmt.Fprintln(f.writer, separator)
		fmt.Fprintln(f.writer)
	}

	if len(result.Words) == 0 {
		fmt.Fprintln(f.writer, "No words derived.")
		return nil
	}

	width := f.labelWidth(result)
	for _, w := range result.Words {
		f.formatWord(w, width)
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, separator)
		fmt.Fprintln(f.writer)
	}

	f.formatSummary(result)
	return nil
}

// formatRules lists every group and its rules in application order.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatRules() {
	for _, g := range f.Groups {
		fmt.Fprintln(f.writer, f.colorize(g.Name+":", colorBold))
		for _, r := range g.Rules {
			fmt.Fprintf(f.writer, "\t%s\n", r)
		}
	}
}

// labelWidth is the width of the label column: the longest group name,
// and at least "UR".
func (f *TableFormatter) labelWidth(result *execution.BatchResult) int {
	width := len("UR")
	for _, g := range f.Groups {
		width = max(width, len(g.Name))
	}
	for _, w := range result.Words {
		if w.Trace == nil {
			continue
		}
		for _, s := range w.Trace.Steps {
			width = max(width, len(s.Group))
		}
	}
	return width
}

// formatWord prints one word's derivation.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatWord(w execution.WordResult, width int) {
	row := func(label, form string) {
		fmt.Fprintf(f.writer, "%-*s  |  %s\n", width, label, form)
	}

	if w.Trace == nil {
		row("UR", "/"+w.Input+"/")
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("⚠", colorYellow), w.Message)
		return
	}

	trace := w.Trace
	row("UR", "/"+f.pick(trace.Underlying, trace.SyllabifiedUnderlying)+"/")

	for _, step := range trace.Steps {
		switch {
		case step.Skipped:
			row(step.Group, f.colorize("(skipped)", colorGray))
		case step.Changed:
			row(step.Group, f.pick(step.Surface, step.Syllabified))
		default:
			row(step.Group, "-")
		}

		if f.RuleSteps {
			for _, rs := range step.Rules {
				form := "-"
				if rs.Changed {
					form = rs.Surface
				}
				fmt.Fprintf(f.writer, "%-*s  |    %s  %s\n", width, "", f.colorize(rs.Rule, colorCyan), form)
			}
		}
	}

	row("SR", "["+f.pick(trace.Surface, trace.SyllabifiedSurface)+"]")

	switch w.Status {
	case values.StatusPass:
		fmt.Fprintf(f.writer, "%s expected [%s]\n", f.colorize("✓", colorGreen), w.Expected)
	case values.StatusFail:
		fmt.Fprintf(f.writer, "%s %s\n", f.colorize("✗", colorRed), w.Message)
	}
}

func (f *TableFormatter) pick(flat, syllabified string) string {
	if f.Syllables {
		return syllabified
	}
	return flat
}

// formatSummary formats the summary statistics.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(result *execution.BatchResult) {
	s := result.Summary
	fmt.Fprintf(f.writer, "%s %d words in %s\n",
		f.colorize("Summary:", colorBold), s.TotalWords, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  %s Derived: %d\n", f.colorize("•", colorGray), s.DerivedWords)
	fmt.Fprintf(f.writer, "  %s Passed:  %d\n", f.colorize("✓", colorGreen), s.PassedWords)
	fmt.Fprintf(f.writer, "  %s Failed:  %d\n", f.colorize("✗", colorRed), s.FailedWords)
	fmt.Fprintf(f.writer, "  %s Errors:  %d\n", f.colorize("⚠", colorYellow), s.ErrorWords)
}
