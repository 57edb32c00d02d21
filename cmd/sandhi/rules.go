package main

import (
	"fmt"
	"io"

	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/spf13/cobra"
)

// rulesCmd lists a grammar's rule groups in application order.
var rulesCmd = &cobra.Command{
	Use:   "rules <grammar>",
	Short: "List the rule groups of a grammar in application order",
	Args:  cobra.ExactArgs(1),
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
		resp, err := cc.Container.InspectGrammarUseCase().Execute(cc.Context, dto.InspectGrammarRequest{GrammarPath: args[0]})
		if err != nil {
			return err
		}
		return printRules(cmd.OutOrStdout(), resp.Summary)
	}),
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer, summary dto.GrammarSummary) error {
	if _, err := fmt.Fprintf(w, "%s: %d groups, %d rules\n", summary.Name, len(summary.Groups), summary.RuleCount()); err != nil {
		return err
	}
	for i, group := range summary.Groups {
		if _, err := fmt.Fprintf(w, "\n%d. %s\n", i+1, group.Name); err != nil {
			return err
		}
		for _, rule := range group.Rules {
			if _, err := fmt.Fprintf(w, "   %s\n", rule); err != nil {
				return err
			}
		}
	}
	return nil
}
