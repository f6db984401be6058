// Package severity maps a rule's default severity and a finding's scored
// confidence tier to the reported severity through a fixed table.
package severity

import "github.com/ocelotsec/ocelot/internal/types"

// resolveTable is the exhaustive (default severity x confidence) table.
// High confidence keeps the rule's default; Medium confidence steps
// High-and-above defaults down one tier; Low confidence caps the result at
// Medium and steps a Medium default down to Low. Low-confidence noise can
// therefore never surface as High or Critical.
var resolveTable = map[types.Severity]map[types.Confidence]types.Severity{
	types.SeverityCritical: {
		types.ConfidenceHigh:   types.SeverityCritical,
		types.ConfidenceMedium: types.SeverityHigh,
		types.ConfidenceLow:    types.SeverityMedium,
	},
	types.SeverityHigh: {
		types.ConfidenceHigh:   types.SeverityHigh,
		types.ConfidenceMedium: types.SeverityMedium,
		types.ConfidenceLow:    types.SeverityMedium,
	},
	types.SeverityMedium: {
		types.ConfidenceHigh:   types.SeverityMedium,
		types.ConfidenceMedium: types.SeverityMedium,
		types.ConfidenceLow:    types.SeverityLow,
	},
	types.SeverityLow: {
		types.ConfidenceHigh:   types.SeverityLow,
		types.ConfidenceMedium: types.SeverityLow,
		types.ConfidenceLow:    types.SeverityLow,
	},
	types.SeverityInfo: {
		types.ConfidenceHigh:   types.SeverityInfo,
		types.ConfidenceMedium: types.SeverityInfo,
		types.ConfidenceLow:    types.SeverityInfo,
	},
}

// Resolve returns the reported severity for a rule default and a scored
// confidence tier.
func Resolve(def types.Severity, conf types.Confidence) types.Severity {
	if row, ok := resolveTable[def]; ok {
		if sev, ok := row[conf]; ok {
			return sev
		}
	}
	return def
}
