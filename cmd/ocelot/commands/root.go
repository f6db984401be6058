// Package commands implements the ocelot CLI. The commands are thin glue:
// they fetch content, hand it to the scanning core, and render the result.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagSeverity     string
	flagFormat       string
	flagOutput       string
	flagWorkers      int
	flagRules        string
	flagNoColor      bool
	flagDisableRules []string
)

var rootCmd = &cobra.Command{
	Use:   "ocelot",
	Short: "Pattern-based security scanner for code review triage",
	Long:  `Ocelot classifies source files and diff hunks against a catalog of vulnerability signatures (hardcoded secrets, injection flaws, weak cryptography, path traversal, unescaped output) and reports severity- and confidence-scored findings.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSeverity, "severity", "info", "Minimum severity to report (critical, high, medium, low, info)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, yaml, markdown)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Additional rules directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringSliceVar(&flagDisableRules, "disable-rule", nil, "Rule IDs to disable (comma-separated, repeatable)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
