package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ocelotsec/ocelot/internal/scanner"
)

// MarkdownFormatter outputs findings as GitHub-flavored markdown, designed
// for PR comments and job summaries.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *scanner.ScanResult) error {
	if len(result.Findings) == 0 {
		fmt.Fprintf(w, "### :white_check_mark: Security scan: no issues found\n\n")
		fmt.Fprintf(w, "> %d files scanned · %d skipped · %d rules\n",
			result.FilesScanned, result.FilesSkipped, result.RulesLoaded)
		return nil
	}

	fmt.Fprintf(w, "### :rotating_light: Security scan: %d findings\n\n", len(result.Findings))
	fmt.Fprintf(w, "> %d files scanned · %d skipped · %d rules\n\n",
		result.FilesScanned, result.FilesSkipped, result.RulesLoaded)

	var badges []string
	for _, sev := range severityOrder {
		if c := severityCount(result.Summary, sev); c > 0 {
			badges = append(badges, fmt.Sprintf("**%d %s**", c, sev))
		}
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))

	fmt.Fprintf(w, "| Severity | Rule | CWE | File | Lines | Confidence |\n")
	fmt.Fprintf(w, "|----------|------|-----|------|-------|------------|\n")
	for _, fd := range result.Findings {
		lines := fmt.Sprintf("L%d", fd.StartLine)
		if fd.EndLine > fd.StartLine {
			lines = fmt.Sprintf("L%d-%d", fd.StartLine, fd.EndLine)
		}
		fmt.Fprintf(w, "| %s | `%s` | %s | `%s` | %s | %s |\n",
			fd.Severity, fd.RuleID, fd.CWE, fd.FilePath, lines, fd.Confidence)
	}
	fmt.Fprintf(w, "\n")

	for _, fd := range result.Findings {
		if fd.Excerpt == "" {
			continue
		}
		fmt.Fprintf(w, "<details>\n<summary><code>%s</code> at <code>%s</code></summary>\n\n",
			fd.RuleID, fd.FilePath)
		fmt.Fprintf(w, "```\n%s\n```\n\n%s\n\n</details>\n\n", escapeFence(fd.Excerpt), fd.Message)
	}
	return nil
}

func escapeFence(s string) string {
	return strings.ReplaceAll(s, "```", "`​``")
}
