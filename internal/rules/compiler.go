package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ocelotsec/ocelot/internal/types"
)

// Compile converts a RawRule into a CompiledRule ready for execution.
// A malformed definition fails here, at load time, never mid-scan.
func Compile(raw RawRule) (*CompiledRule, error) {
	if raw.ID == "" {
		return nil, &types.DefinitionError{Err: fmt.Errorf("missing rule ID")}
	}
	if len(raw.Patterns) == 0 {
		return nil, &types.DefinitionError{RuleID: raw.ID, Err: fmt.Errorf("no patterns defined")}
	}

	sev, err := types.ParseSeverity(raw.Severity)
	if err != nil {
		return nil, &types.DefinitionError{RuleID: raw.ID, Err: err}
	}

	conf := types.ConfidenceMedium
	if raw.Confidence != "" {
		conf, err = types.ParseConfidence(raw.Confidence)
		if err != nil {
			return nil, &types.DefinitionError{RuleID: raw.ID, Err: err}
		}
	}

	// The ceiling defaults to the declared confidence: promotion can only
	// restore tiers a rule deliberately declared below its ceiling.
	ceiling := conf
	if raw.ConfidenceCeiling != "" {
		ceiling, err = types.ParseConfidence(raw.ConfidenceCeiling)
		if err != nil {
			return nil, &types.DefinitionError{RuleID: raw.ID, Err: err}
		}
		if ceiling < conf {
			return nil, &types.DefinitionError{RuleID: raw.ID, Err: fmt.Errorf("confidence_ceiling %s below confidence %s", ceiling, conf)}
		}
	}

	compiled := &CompiledRule{
		ID:                raw.ID,
		Name:              raw.Name,
		Description:       raw.Description,
		Message:           raw.Message,
		Severity:          sev,
		Confidence:        conf,
		ConfidenceCeiling: ceiling,
		CWE:               raw.CWE,
		OWASP:             raw.OWASP,
		Category:          raw.Category,
		Targets:           raw.Targets,
		Examples:          raw.Examples,
	}

	for _, lang := range raw.Languages {
		compiled.Languages = append(compiled.Languages, strings.ToLower(strings.TrimSpace(lang)))
	}
	for _, kw := range raw.ExcludeKeywords {
		compiled.ExcludeKeywords = append(compiled.ExcludeKeywords, strings.ToLower(kw))
	}

	for i, p := range raw.Patterns {
		cp, err := compilePattern(p)
		if err != nil {
			return nil, &types.DefinitionError{RuleID: raw.ID, Err: fmt.Errorf("pattern %d: %w", i, err)}
		}
		compiled.Patterns = append(compiled.Patterns, cp)
	}

	return compiled, nil
}

func compilePattern(p RawPattern) (CompiledPattern, error) {
	cp := CompiledPattern{Type: p.Type, Value: p.Value}
	switch p.Type {
	case PatternRegex:
		// regexp is RE2: linear-time matching, so no catalog entry can stall
		// a scan worker via backtracking.
		re, err := regexp.Compile(p.Value)
		if err != nil {
			return cp, fmt.Errorf("invalid regex: %w", err)
		}
		cp.Regex = re
	case PatternContains:
		if p.Value == "" {
			return cp, fmt.Errorf("empty contains value")
		}
		// Compiled to a case-insensitive literal so matching reports offsets
		// in the original content. Lowercasing a copy instead would shift
		// byte offsets on Unicode input (case folding can change rune width).
		cp.Regex = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.Value))
	default:
		return cp, fmt.Errorf("unknown type %q", p.Type)
	}
	return cp, nil
}

// CompileAll compiles a slice of raw rules. Any malformed definition makes
// the whole catalog fail: partial catalogs would silently change scan
// semantics.
func CompileAll(raws []RawRule) ([]*CompiledRule, error) {
	rules := make([]*CompiledRule, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		cr, err := Compile(raw)
		if err != nil {
			return nil, err
		}
		if seen[cr.ID] {
			return nil, &types.DefinitionError{RuleID: cr.ID, Err: fmt.Errorf("duplicate rule ID")}
		}
		seen[cr.ID] = true
		rules = append(rules, cr)
	}
	return rules, nil
}

// RuleOverride allows per-rule severity change or disable from config.
type RuleOverride struct {
	Severity string
	Disabled bool
}

// ApplyOverrides applies config-based rule overrides to compiled rules.
// Disabled rules are removed. Severity overrides update the rule's severity.
// An invalid severity value is a definition error, consistent with Compile.
func ApplyOverrides(compiled []*CompiledRule, overrides map[string]RuleOverride) ([]*CompiledRule, error) {
	var result []*CompiledRule
	for _, rule := range compiled {
		ovr, ok := overrides[rule.ID]
		if !ok {
			result = append(result, rule)
			continue
		}
		if ovr.Disabled {
			continue
		}
		if ovr.Severity != "" {
			sev, err := types.ParseSeverity(ovr.Severity)
			if err != nil {
				return nil, &types.DefinitionError{RuleID: rule.ID, Err: fmt.Errorf("override: %w", err)}
			}
			clone := *rule
			clone.Severity = sev
			result = append(result, &clone)
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

// FilterByIDs removes rules whose IDs are in the disabled set.
func FilterByIDs(compiled []*CompiledRule, disabled map[string]bool) []*CompiledRule {
	var result []*CompiledRule
	for _, rule := range compiled {
		if !disabled[rule.ID] {
			result = append(result, rule)
		}
	}
	return result
}
