// Package meta post-processes raw findings: merging overlapping matches of
// the same rule and file into single findings and producing the canonical
// result ordering.
package meta

import (
	"sort"

	"github.com/ocelotsec/ocelot/internal/types"
)

// Aggregate merges overlapping or adjacent findings of the same (rule, file)
// group, keeping the maximum severity and confidence seen in the merged
// group, and returns the result in canonical order: severity descending,
// then file path, then start line, then rule ID.
//
// Aggregate is idempotent: re-aggregating an aggregated result returns an
// identical slice, since merged ranges leave no further merge opportunities.
func Aggregate(findings []types.Finding) []types.Finding {
	if len(findings) == 0 {
		return nil
	}

	// Sort by group then start line so merging is a single forward pass and
	// independent of input order.
	sorted := make([]types.Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.EndLine < b.EndLine
	})

	merged := []types.Finding{sorted[0]}
	for _, f := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Overlaps(f) {
			if f.EndLine > last.EndLine {
				last.EndLine = f.EndLine
			}
			if f.Severity > last.Severity {
				last.Severity = f.Severity
			}
			if f.Confidence > last.Confidence {
				last.Confidence = f.Confidence
			}
			continue
		}
		merged = append(merged, f)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.RuleID < b.RuleID
	})
	return merged
}
