// Package types defines shared data structures (Finding, Severity,
// Confidence, ScanResult) used across scanner, rules, and engine packages
// to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the impact rating of a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes severity as its string form for stable output.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses the string form written by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sev, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// ParseSeverity converts a string to a Severity level.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical, nil
	case "HIGH":
		return SeverityHigh, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "LOW":
		return SeverityLow, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity: %q", s)
	}
}

// Confidence represents the estimated likelihood that a finding is a true
// positive.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	case ConfidenceLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes confidence as its string form for stable output.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON parses the string form written by MarshalJSON.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	conf, err := ParseConfidence(str)
	if err != nil {
		return err
	}
	*c = conf
	return nil
}

// ParseConfidence converts a string to a Confidence tier.
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return ConfidenceHigh, nil
	case "MEDIUM":
		return ConfidenceMedium, nil
	case "LOW":
		return ConfidenceLow, nil
	default:
		return ConfidenceLow, fmt.Errorf("unknown confidence: %q", s)
	}
}

// Demote drops confidence by one tier, flooring at LOW.
func (c Confidence) Demote() Confidence {
	if c > ConfidenceLow {
		return c - 1
	}
	return c
}

// Promote raises confidence by one tier, capped at ceiling.
func (c Confidence) Promote(ceiling Confidence) Confidence {
	if c >= ceiling {
		return c
	}
	return c + 1
}

// Min returns the lower of two confidence tiers.
func (c Confidence) Min(other Confidence) Confidence {
	if other < c {
		return other
	}
	return c
}

// Finding represents a single reported potential vulnerability.
type Finding struct {
	RuleID     string     `json:"rule_id"`
	RuleName   string     `json:"rule_name"`
	Severity   Severity   `json:"severity"`
	Confidence Confidence `json:"confidence"`
	CWE        string     `json:"cwe"`
	OWASP      string     `json:"owasp"`
	Category   string     `json:"category"`
	FilePath   string     `json:"file_path"`
	StartLine  int        `json:"start_line"`
	EndLine    int        `json:"end_line"`
	Excerpt    string     `json:"excerpt"`
	Message    string     `json:"message"`
}

// Overlaps reports whether two findings of the same rule and file cover
// overlapping or adjacent line ranges. Adjacent ranges merge so repeated
// aggregation can never find new work.
func (f Finding) Overlaps(other Finding) bool {
	if f.RuleID != other.RuleID || f.FilePath != other.FilePath {
		return false
	}
	return f.StartLine <= other.EndLine+1 && other.StartLine <= f.EndLine+1
}

// Summary holds per-severity finding counts. A struct rather than a map so
// encoding is deterministic.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Add increments the counter for the given severity.
func (s *Summary) Add(sev Severity) {
	switch sev {
	case SeverityCritical:
		s.Critical++
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	case SeverityInfo:
		s.Info++
	}
}

// Total returns the sum of all severity counters.
func (s Summary) Total() int {
	return s.Critical + s.High + s.Medium + s.Low + s.Info
}

// ScanResult holds the complete results of a scan. It is a transient value:
// created by one scan call, discarded by the caller after rendering.
type ScanResult struct {
	Findings     []Finding `json:"findings"`
	Summary      Summary   `json:"summary"`
	FilesScanned int       `json:"files_scanned"`
	FilesSkipped int       `json:"files_skipped"`
	RulesLoaded  int       `json:"rules_loaded"`
}
