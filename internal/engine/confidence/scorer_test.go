package confidence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocelotsec/ocelot/internal/engine/confidence"
	"github.com/ocelotsec/ocelot/internal/rules"
	"github.com/ocelotsec/ocelot/internal/types"
)

func secretRule(t *testing.T, conf, ceiling string) *rules.CompiledRule {
	t.Helper()
	cr, err := rules.Compile(rules.RawRule{
		ID:                "hardcoded-secret",
		Severity:          "HIGH",
		Confidence:        conf,
		ConfidenceCeiling: ceiling,
		Category:          "hardcoded-secret",
		Patterns:          []rules.RawPattern{{Type: rules.PatternContains, Value: "x"}},
	})
	require.NoError(t, err)
	return cr
}

// a realistic credential-shaped value: mixed classes, over 20 chars
const liveSecret = `api_key = "sk-Abc123Xyz987LmnOpq456"`

// mixed-class but too short to be credential-shaped
const shortSecret = `key = "Abcd1234Efgh5678"`

func TestScoreNoHeuristicFires(t *testing.T) {
	rule := secretRule(t, "HIGH", "HIGH")
	res := confidence.Score(rule, shortSecret, confidence.Context{Path: "src/config.py"})
	require.Equal(t, types.ConfidenceHigh, res.Confidence)
	require.False(t, res.Demoted)
	require.False(t, res.Promoted)
}

func TestScoreTestPathFlagDemotes(t *testing.T) {
	rule := secretRule(t, "HIGH", "HIGH")
	res := confidence.Score(rule, shortSecret, confidence.Context{Path: "src/config.py", IsTestPath: true})
	require.Equal(t, types.ConfidenceMedium, res.Confidence)
	require.True(t, res.Demoted)
}

func TestScoreTestPathMarkersDemote(t *testing.T) {
	rule := secretRule(t, "HIGH", "HIGH")
	for _, path := range []string{
		"tests/fixtures/config.py",
		"src/app_test.go",
		"src/app.spec.ts",
		"pkg/testdata/sample.yml",
		`src\tests\config.py`, // windows separators are normalized
	} {
		res := confidence.Score(rule, shortSecret, confidence.Context{Path: path})
		require.True(t, res.Demoted, "path %s should demote", path)
		require.Equal(t, types.ConfidenceMedium, res.Confidence)
	}
}

func TestScorePlaceholderDemotes(t *testing.T) {
	rule := secretRule(t, "HIGH", "HIGH")
	for _, matched := range []string{
		`api_key = "your-api-key-here1"`,
		`password = "changeme-changeme"`,
		`token = "xxxxxxxxxxxxxxxxxxxx"`,
		`secret = "EXAMPLE-Secret-12345"`,
	} {
		res := confidence.Score(rule, matched, confidence.Context{Path: "src/config.py"})
		require.True(t, res.Demoted, "matched %s should demote", matched)
	}
}

func TestScoreLowVarietyDemotes(t *testing.T) {
	rule := secretRule(t, "HIGH", "HIGH")
	res := confidence.Score(rule, `token = "aaaaaaaaaaaaaaaaaaaaaa"`, confidence.Context{Path: "src/config.py"})
	require.True(t, res.Demoted)
	require.Equal(t, types.ConfidenceMedium, res.Confidence)
}

func TestScoreAnyDemotionCapsAtMedium(t *testing.T) {
	// two demotions from High land on Low; the cap keeps it there, never
	// above Medium
	rule := secretRule(t, "HIGH", "HIGH")
	res := confidence.Score(rule, `token = "aaaaaaaaaaaaaaaaaaaaaa"`, confidence.Context{
		Path:       "tests/config.py",
		IsTestPath: true,
	})
	require.True(t, res.Demoted)
	require.Equal(t, types.ConfidenceLow, res.Confidence)
	require.LessOrEqual(t, res.Confidence, types.ConfidenceMedium)
}

func TestScoreCredentialShapePromotes(t *testing.T) {
	rule := secretRule(t, "MEDIUM", "HIGH")
	res := confidence.Score(rule, liveSecret, confidence.Context{Path: "src/config.py"})
	require.True(t, res.Promoted)
	require.Equal(t, types.ConfidenceHigh, res.Confidence)
}

func TestScorePromotionRespectsCeiling(t *testing.T) {
	rule := secretRule(t, "MEDIUM", "MEDIUM")
	res := confidence.Score(rule, liveSecret, confidence.Context{Path: "src/config.py"})
	require.False(t, res.Promoted)
	require.Equal(t, types.ConfidenceMedium, res.Confidence)
}

func TestScorePromotionOnlyForSecretFamily(t *testing.T) {
	cr, err := rules.Compile(rules.RawRule{
		ID:         "sql-rule",
		Severity:   "HIGH",
		Confidence: "MEDIUM",
		Category:   "sql-injection",
		Patterns:   []rules.RawPattern{{Type: rules.PatternContains, Value: "x"}},
	})
	require.NoError(t, err)

	res := confidence.Score(cr, liveSecret, confidence.Context{Path: "src/db.py"})
	require.False(t, res.Promoted)
	require.Equal(t, types.ConfidenceMedium, res.Confidence)
}

func TestScoreDemotionSuppressesPromotion(t *testing.T) {
	// credential-shaped value in a test file stays demoted; promotion never
	// runs after a demotion
	rule := secretRule(t, "MEDIUM", "HIGH")
	res := confidence.Score(rule, liveSecret, confidence.Context{Path: "tests/config.py", IsTestPath: true})
	require.True(t, res.Demoted)
	require.False(t, res.Promoted)
	require.Equal(t, types.ConfidenceLow, res.Confidence)
}

func TestScoreShortTokenNotPromoted(t *testing.T) {
	rule := secretRule(t, "MEDIUM", "HIGH")
	res := confidence.Score(rule, shortSecret, confidence.Context{Path: "src/config.py"})
	require.False(t, res.Promoted)
	require.Equal(t, types.ConfidenceMedium, res.Confidence)
}
