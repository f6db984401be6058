package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ocelotsec/ocelot/internal/scanner"
)

// YAMLFormatter outputs the full scan result as YAML. Enum fields render as
// their string forms so downstream tooling never depends on internal
// ordinals.
type YAMLFormatter struct{}

type yamlFinding struct {
	RuleID     string `yaml:"rule_id"`
	RuleName   string `yaml:"rule_name"`
	Severity   string `yaml:"severity"`
	Confidence string `yaml:"confidence"`
	CWE        string `yaml:"cwe"`
	OWASP      string `yaml:"owasp"`
	Category   string `yaml:"category"`
	FilePath   string `yaml:"file_path"`
	StartLine  int    `yaml:"start_line"`
	EndLine    int    `yaml:"end_line"`
	Excerpt    string `yaml:"excerpt"`
	Message    string `yaml:"message"`
}

type yamlResult struct {
	Findings     []yamlFinding   `yaml:"findings"`
	Summary      scanner.Summary `yaml:"summary"`
	FilesScanned int             `yaml:"files_scanned"`
	FilesSkipped int             `yaml:"files_skipped"`
	RulesLoaded  int             `yaml:"rules_loaded"`
}

func (f *YAMLFormatter) Format(w io.Writer, result *scanner.ScanResult) error {
	out := yamlResult{
		Findings:     make([]yamlFinding, 0, len(result.Findings)),
		Summary:      result.Summary,
		FilesScanned: result.FilesScanned,
		FilesSkipped: result.FilesSkipped,
		RulesLoaded:  result.RulesLoaded,
	}
	for _, fd := range result.Findings {
		out.Findings = append(out.Findings, yamlFinding{
			RuleID:     fd.RuleID,
			RuleName:   fd.RuleName,
			Severity:   fd.Severity.String(),
			Confidence: fd.Confidence.String(),
			CWE:        fd.CWE,
			OWASP:      fd.OWASP,
			Category:   fd.Category,
			FilePath:   fd.FilePath,
			StartLine:  fd.StartLine,
			EndLine:    fd.EndLine,
			Excerpt:    fd.Excerpt,
			Message:    fd.Message,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}
