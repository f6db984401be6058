package scanner

// This package re-exports types from internal/types for convenience.
// The canonical types live in internal/types to avoid import cycles.

import "github.com/ocelotsec/ocelot/internal/types"

type (
	Severity   = types.Severity
	Confidence = types.Confidence
	Finding    = types.Finding
	Summary    = types.Summary
	ScanResult = types.ScanResult
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

var (
	ParseSeverity   = types.ParseSeverity
	ParseConfidence = types.ParseConfidence
)
