// Package ocelot provides a public API for pattern-based security scanning
// of source code text: files or diff hunks are classified against a catalog
// of vulnerability signatures and reported as severity/confidence-scored
// findings.
//
// This is the library entry point. For the CLI tool, see cmd/ocelot/.
package ocelot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ocelotsec/ocelot/internal/engine/pattern"
	"github.com/ocelotsec/ocelot/internal/prefilter"
	"github.com/ocelotsec/ocelot/internal/rules"
	"github.com/ocelotsec/ocelot/internal/rules/builtin"
	"github.com/ocelotsec/ocelot/internal/scanner"
	"github.com/ocelotsec/ocelot/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Severity    = types.Severity
	Confidence  = types.Confidence
	Finding     = types.Finding
	Summary     = types.Summary
	ScanResult  = types.ScanResult
	ScanInput   = scanner.Input
	SourceFile  = scanner.File
	ChangedFile = prefilter.ChangedFile
)

const (
	SeverityInfo     = types.SeverityInfo
	SeverityLow      = types.SeverityLow
	SeverityMedium   = types.SeverityMedium
	SeverityHigh     = types.SeverityHigh
	SeverityCritical = types.SeverityCritical

	ConfidenceLow    = types.ConfidenceLow
	ConfidenceMedium = types.ConfidenceMedium
	ConfidenceHigh   = types.ConfidenceHigh
)

// ParseSeverity and ParseConfidence convert user-facing strings to tiers.
var (
	ParseSeverity   = types.ParseSeverity
	ParseConfidence = types.ParseConfidence
)

// RuleOverride allows changing the severity of a rule or disabling it.
type RuleOverride struct {
	Severity string
	Disabled bool
}

// RuleInfo provides summary metadata about a detection rule.
type RuleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	CWE      string `json:"cwe"`
	OWASP    string `json:"owasp"`
	Category string `json:"category"`
}

// RuleDetail provides full information about a rule, including patterns and
// examples.
type RuleDetail struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Severity       string   `json:"severity"`
	Confidence     string   `json:"confidence"`
	CWE            string   `json:"cwe"`
	OWASP          string   `json:"owasp"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Patterns       []string `json:"patterns"`
	TruePositives  []string `json:"true_positives"`
	FalsePositives []string `json:"false_positives"`
}

// Catalog is the compiled, immutable signature set. Construct it once at
// startup (a malformed definition fails here, never mid-scan) and share it
// by reference across every scan call.
type Catalog struct {
	compiled []*rules.CompiledRule
	workers  int
	minSev   Severity
}

// NewCatalog loads and compiles the built-in rules plus any configured
// custom rules, applying overrides and disable lists.
func NewCatalog(opts ...Option) (*Catalog, error) {
	cfg := applyOpts(opts)
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		return nil, err
	}
	return &Catalog{compiled: compiled, workers: cfg.workers, minSev: cfg.minSeverity}, nil
}

// Len returns the number of active rules.
func (c *Catalog) Len() int { return len(c.compiled) }

// Scan classifies every file in the input against the catalog. It is a pure
// function of (catalog, input): identical inputs yield identical results.
// Undecodable files are skipped and counted; the rest of the batch proceeds.
func (c *Catalog) Scan(ctx context.Context, input ScanInput) (*ScanResult, error) {
	s := scanner.New(c.workers)
	s.SetMinSeverity(c.minSev)
	s.RegisterAnalyzer(pattern.NewMatcher(c.compiled))

	result, err := s.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	result.RulesLoaded = len(c.compiled)
	return result, nil
}

// Scan is a convenience wrapper that builds a catalog and scans once.
// Long-lived callers should construct a Catalog and reuse it.
func Scan(ctx context.Context, input ScanInput, opts ...Option) (*ScanResult, error) {
	catalog, err := NewCatalog(opts...)
	if err != nil {
		return nil, err
	}
	return catalog.Scan(ctx, input)
}

// NeedsSecurityScan is the cheap pre-filter gate: it reports whether a
// change set warrants a full scan. Conservative: unknown extensions and
// ambiguous content always scan.
func NeedsSecurityScan(files []ChangedFile) bool {
	return prefilter.NeedsSecurityScan(files)
}

// ListRules returns all available detection rules sorted by ID.
// Use WithCategory to filter by category.
func ListRules(opts ...Option) ([]RuleInfo, error) {
	cfg := applyOpts(opts)
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		return nil, err
	}

	sort.Slice(compiled, func(i, j int) bool {
		return compiled[i].ID < compiled[j].ID
	})

	if cfg.category != "" {
		var filtered []*rules.CompiledRule
		for _, r := range compiled {
			if strings.EqualFold(r.Category, cfg.category) {
				filtered = append(filtered, r)
			}
		}
		compiled = filtered
	}

	infos := make([]RuleInfo, len(compiled))
	for i, r := range compiled {
		infos[i] = RuleInfo{
			ID:       r.ID,
			Name:     r.Name,
			Severity: r.Severity.String(),
			CWE:      r.CWE,
			OWASP:    r.OWASP,
			Category: r.Category,
		}
	}
	return infos, nil
}

// ExplainRule returns detailed information about a specific rule.
func ExplainRule(id string, opts ...Option) (*RuleDetail, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	cfg := applyOpts(opts)
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		return nil, err
	}

	var found *rules.CompiledRule
	for _, r := range compiled {
		if r.ID == id {
			found = r
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("rule %q not found", id)
	}

	patterns := make([]string, len(found.Patterns))
	for i, p := range found.Patterns {
		switch p.Type {
		case rules.PatternRegex:
			patterns[i] = fmt.Sprintf("[regex] %s", p.Regex.String())
		case rules.PatternContains:
			patterns[i] = fmt.Sprintf("[contains] %s", p.Value)
		}
	}

	return &RuleDetail{
		ID:             found.ID,
		Name:           found.Name,
		Severity:       found.Severity.String(),
		Confidence:     found.Confidence.String(),
		CWE:            found.CWE,
		OWASP:          found.OWASP,
		Category:       found.Category,
		Description:    found.Description,
		Patterns:       patterns,
		TruePositives:  found.Examples.TruePositive,
		FalsePositives: found.Examples.FalsePositive,
	}, nil
}

// --- internal helpers ---

func applyOpts(opts []Option) *scanConfig {
	cfg := &scanConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// loadAndCompile loads built-in (and optionally custom) rules, compiles
// them, and applies overrides/filters. Used by all public functions.
func loadAndCompile(cfg *scanConfig) ([]*rules.CompiledRule, error) {
	rawRules, err := rules.LoadFromFS(builtin.FS())
	if err != nil {
		return nil, fmt.Errorf("loading built-in rules: %w", err)
	}

	if cfg.customRulesDir != "" {
		custom, err := rules.LoadFromDir(cfg.customRulesDir)
		if err != nil {
			return nil, fmt.Errorf("loading custom rules from %s: %w", cfg.customRulesDir, err)
		}
		rawRules = append(rawRules, custom...)
	}

	compiled, err := rules.CompileAll(rawRules)
	if err != nil {
		return nil, err
	}

	if len(cfg.ruleOverrides) > 0 {
		overrides := make(map[string]rules.RuleOverride, len(cfg.ruleOverrides))
		for id, ovr := range cfg.ruleOverrides {
			overrides[id] = rules.RuleOverride{Severity: ovr.Severity, Disabled: ovr.Disabled}
		}
		compiled, err = rules.ApplyOverrides(compiled, overrides)
		if err != nil {
			return nil, err
		}
	}

	if len(cfg.disabledRules) > 0 {
		disabled := make(map[string]bool, len(cfg.disabledRules))
		for _, id := range cfg.disabledRules {
			disabled[strings.TrimSpace(id)] = true
		}
		compiled = rules.FilterByIDs(compiled, disabled)
	}

	return compiled, nil
}
