package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocelotsec/ocelot/internal/types"
)

func TestParseSeverity(t *testing.T) {
	sev, err := types.ParseSeverity("  critical ")
	require.NoError(t, err)
	require.Equal(t, types.SeverityCritical, sev)

	_, err = types.ParseSeverity("bogus")
	require.Error(t, err)
}

func TestParseConfidence(t *testing.T) {
	conf, err := types.ParseConfidence("Medium")
	require.NoError(t, err)
	require.Equal(t, types.ConfidenceMedium, conf)

	_, err = types.ParseConfidence("maybe")
	require.Error(t, err)
}

func TestSeverityOrdering(t *testing.T) {
	require.True(t, types.SeverityCritical > types.SeverityHigh)
	require.True(t, types.SeverityHigh > types.SeverityMedium)
	require.True(t, types.SeverityMedium > types.SeverityLow)
	require.True(t, types.SeverityLow > types.SeverityInfo)
}

func TestConfidenceDemotePromote(t *testing.T) {
	require.Equal(t, types.ConfidenceMedium, types.ConfidenceHigh.Demote())
	require.Equal(t, types.ConfidenceLow, types.ConfidenceMedium.Demote())
	require.Equal(t, types.ConfidenceLow, types.ConfidenceLow.Demote())

	require.Equal(t, types.ConfidenceHigh, types.ConfidenceMedium.Promote(types.ConfidenceHigh))
	require.Equal(t, types.ConfidenceMedium, types.ConfidenceMedium.Promote(types.ConfidenceMedium))
}

func TestFindingOverlaps(t *testing.T) {
	a := types.Finding{RuleID: "r", FilePath: "f", StartLine: 1, EndLine: 3}

	require.True(t, a.Overlaps(types.Finding{RuleID: "r", FilePath: "f", StartLine: 2, EndLine: 5}))
	// adjacent ranges count as overlapping so merges are exhaustive
	require.True(t, a.Overlaps(types.Finding{RuleID: "r", FilePath: "f", StartLine: 4, EndLine: 6}))
	require.False(t, a.Overlaps(types.Finding{RuleID: "r", FilePath: "f", StartLine: 5, EndLine: 6}))
	require.False(t, a.Overlaps(types.Finding{RuleID: "other", FilePath: "f", StartLine: 1, EndLine: 3}))
	require.False(t, a.Overlaps(types.Finding{RuleID: "r", FilePath: "g", StartLine: 1, EndLine: 3}))
}

func TestSummaryAdd(t *testing.T) {
	var s types.Summary
	s.Add(types.SeverityCritical)
	s.Add(types.SeverityHigh)
	s.Add(types.SeverityHigh)
	s.Add(types.SeverityInfo)

	require.Equal(t, 1, s.Critical)
	require.Equal(t, 2, s.High)
	require.Equal(t, 1, s.Info)
	require.Equal(t, 4, s.Total())
}

func TestEnumJSONMarshal(t *testing.T) {
	data, err := json.Marshal(types.Finding{
		RuleID:     "hardcoded-secret",
		Severity:   types.SeverityHigh,
		Confidence: types.ConfidenceHigh,
	})
	require.NoError(t, err)
	require.Contains(t, string(data), `"severity":"HIGH"`)
	require.Contains(t, string(data), `"confidence":"HIGH"`)
}
