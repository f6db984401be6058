package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ocelotsec/ocelot/internal/scanner"
)

const lineWidth = 72

// TerminalFormatter outputs findings in a triage-optimized format.
type TerminalFormatter struct {
	NoColor bool
}

var (
	styleBold      = lipgloss.NewStyle().Bold(true)
	styleDim       = lipgloss.NewStyle().Faint(true)
	styleOK        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	severityStyles = map[scanner.Severity]lipgloss.Style{
		scanner.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		scanner.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		scanner.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		scanner.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		scanner.SeverityInfo:     lipgloss.NewStyle().Faint(true),
	}
)

// colorEnabled respects --no-color, NO_COLOR, and non-TTY stdout.
func (f *TerminalFormatter) colorEnabled() bool {
	if f.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func (f *TerminalFormatter) render(style lipgloss.Style, text string) string {
	if !f.colorEnabled() {
		return text
	}
	return style.Render(text)
}

func (f *TerminalFormatter) Format(w io.Writer, result *scanner.ScanResult) error {
	sep := strings.Repeat("─", lineWidth)
	fmt.Fprintf(w, "\n%s\n", f.render(styleDim, sep))
	fmt.Fprintf(w, "  %s\n", f.render(styleBold, "OCELOT SCAN RESULTS"))
	fmt.Fprintf(w, "  %d files scanned  ·  %d skipped  ·  %d rules\n",
		result.FilesScanned, result.FilesSkipped, result.RulesLoaded)
	fmt.Fprintf(w, "%s\n", f.render(styleDim, sep))

	if len(result.Findings) == 0 {
		fmt.Fprintf(w, "\n  %s No security issues found.\n\n", f.render(styleOK, "✔"))
		return nil
	}

	f.printSummary(w, result.Summary)

	for _, sev := range severityOrder {
		filtered := filterBySeverity(result.Findings, sev)
		if len(filtered) > 0 {
			f.printSection(w, sev, filtered)
		}
	}

	fmt.Fprintf(w, "%s\n", f.render(styleDim, sep))
	return nil
}

func (f *TerminalFormatter) printSummary(w io.Writer, summary scanner.Summary) {
	var parts []string
	for _, sev := range severityOrder {
		c := severityCount(summary, sev)
		if c == 0 {
			continue
		}
		parts = append(parts, f.render(severityStyles[sev], fmt.Sprintf("%d %s", c, sev)))
	}
	fmt.Fprintf(w, "\n  %s\n", strings.Join(parts, "  ·  "))
}

func (f *TerminalFormatter) printSection(w io.Writer, sev scanner.Severity, findings []scanner.Finding) {
	fmt.Fprintf(w, "\n%s\n", f.render(severityStyles[sev], "── "+sev.String()+" "+strings.Repeat("─", lineWidth-len(sev.String())-4)))
	for _, fd := range findings {
		lines := fmt.Sprintf("L%d", fd.StartLine)
		if fd.EndLine > fd.StartLine {
			lines = fmt.Sprintf("L%d-%d", fd.StartLine, fd.EndLine)
		}
		fmt.Fprintf(w, "\n  %s  %s\n", f.render(styleBold, fd.RuleID), f.render(styleDim, fd.CWE+" · "+fd.OWASP+" · confidence "+fd.Confidence.String()))
		fmt.Fprintf(w, "  %s:%s\n", fd.FilePath, lines)
		if fd.Excerpt != "" {
			fmt.Fprintf(w, "    %s\n", f.render(styleDim, fd.Excerpt))
		}
		if fd.Message != "" {
			fmt.Fprintf(w, "    %s\n", fd.Message)
		}
	}
}
