// Package output renders scan results for human and machine consumers:
// terminal, JSON, YAML, and GitHub-flavored markdown. Presentation lives
// entirely outside the scanning core.
package output

import (
	"fmt"
	"io"

	"github.com/ocelotsec/ocelot/internal/scanner"
)

// Formatter renders a scan result to a writer.
type Formatter interface {
	Format(w io.Writer, result *scanner.ScanResult) error
}

// ForName returns the formatter for a --format value.
func ForName(name string, noColor bool) (Formatter, error) {
	switch name {
	case "", "terminal", "text":
		return &TerminalFormatter{NoColor: noColor}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (terminal, json, yaml, markdown)", name)
	}
}

// severityOrder is the rendering order shared by all formatters.
var severityOrder = []scanner.Severity{
	scanner.SeverityCritical,
	scanner.SeverityHigh,
	scanner.SeverityMedium,
	scanner.SeverityLow,
	scanner.SeverityInfo,
}

func filterBySeverity(findings []scanner.Finding, sev scanner.Severity) []scanner.Finding {
	var out []scanner.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func severityCount(s scanner.Summary, sev scanner.Severity) int {
	switch sev {
	case scanner.SeverityCritical:
		return s.Critical
	case scanner.SeverityHigh:
		return s.High
	case scanner.SeverityMedium:
		return s.Medium
	case scanner.SeverityLow:
		return s.Low
	default:
		return s.Info
	}
}
