package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocelotsec/ocelot"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule-id>",
	Short: "Show detailed information about a detection rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	var opts []ocelot.Option
	if flagRules != "" {
		opts = append(opts, ocelot.WithCustomRules(flagRules))
	}

	detail, err := ocelot.ExplainRule(args[0], opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}

	fmt.Fprintf(w, "\nRule:       %s\n", detail.ID)
	fmt.Fprintf(w, "Name:       %s\n", detail.Name)
	fmt.Fprintf(w, "Severity:   %s\n", detail.Severity)
	fmt.Fprintf(w, "Confidence: %s\n", detail.Confidence)
	fmt.Fprintf(w, "CWE:        %s\n", detail.CWE)
	fmt.Fprintf(w, "OWASP:      %s\n", detail.OWASP)
	fmt.Fprintf(w, "Category:   %s\n", detail.Category)

	if detail.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", detail.Description)
	}
	if len(detail.Patterns) > 0 {
		fmt.Fprintf(w, "\nPatterns:\n")
		for i, p := range detail.Patterns {
			fmt.Fprintf(w, "  %d. %s\n", i+1, p)
		}
	}
	if len(detail.TruePositives) > 0 {
		fmt.Fprintf(w, "\nTrue positives:\n")
		for _, ex := range detail.TruePositives {
			fmt.Fprintf(w, "  ✖ %s\n", ex)
		}
	}
	if len(detail.FalsePositives) > 0 {
		fmt.Fprintf(w, "\nFalse positives:\n")
		for _, ex := range detail.FalsePositives {
			fmt.Fprintf(w, "  ✔ %s\n", ex)
		}
	}
	fmt.Fprintln(w)
	return nil
}
