package scanner_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocelotsec/ocelot/internal/scanner"
	"github.com/ocelotsec/ocelot/internal/types"
)

// markerAnalyzer flags every line containing its marker string.
type markerAnalyzer struct {
	marker   string
	severity types.Severity
}

func (a *markerAnalyzer) Name() string { return "marker" }

func (a *markerAnalyzer) Analyze(path string, file scanner.File) []scanner.Finding {
	var findings []scanner.Finding
	for i, line := range file.Lines() {
		if strings.Contains(line, a.marker) {
			findings = append(findings, scanner.Finding{
				RuleID:     "marker-rule",
				Severity:   a.severity,
				Confidence: types.ConfidenceHigh,
				FilePath:   path,
				StartLine:  i + 1,
				EndLine:    i + 1,
			})
		}
	}
	return findings
}

func TestScanCollectsFindings(t *testing.T) {
	s := scanner.New(4)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "BAD", severity: types.SeverityHigh})

	input := scanner.Input{Files: map[string]scanner.File{
		"a.go": {Content: "ok\nBAD\n"},
		"b.go": {Content: "ok\n"},
		"c.go": {Content: "BAD\nBAD\n"},
	}}

	result, err := s.Scan(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 3, result.FilesScanned)
	require.Equal(t, 0, result.FilesSkipped)
	require.Len(t, result.Findings, 2) // c.go's adjacent lines merge
	require.Equal(t, 2, result.Summary.High)
	require.Equal(t, 2, result.Summary.Total())
}

func TestScanSkipsUndecodableFiles(t *testing.T) {
	s := scanner.New(2)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "BAD", severity: types.SeverityHigh})

	input := scanner.Input{Files: map[string]scanner.File{
		"bin/blob":   {Content: "BAD\x00BAD"},
		"src/ok.go":  {Content: "BAD\n"},
		"bad-utf8.c": {Content: "BAD\xff\xfe"},
	}}

	result, err := s.Scan(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesScanned)
	require.Equal(t, 2, result.FilesSkipped)
	require.Len(t, result.Findings, 1)
	require.Equal(t, "src/ok.go", result.Findings[0].FilePath)
}

func TestScanDeterministic(t *testing.T) {
	s := scanner.New(8)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "BAD", severity: types.SeverityHigh})

	input := scanner.Input{Files: map[string]scanner.File{}}
	for _, name := range []string{"z.go", "a.go", "m.go", "q.go", "b.go"} {
		input.Files[name] = scanner.File{Content: "BAD\n"}
	}

	first, err := s.Scan(context.Background(), input)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := s.Scan(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestScanMinSeverityFilter(t *testing.T) {
	s := scanner.New(2)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "LOW", severity: types.SeverityLow})
	s.RegisterAnalyzer(&markerAnalyzer{marker: "HIGH", severity: types.SeverityHigh})
	s.SetMinSeverity(types.SeverityHigh)

	input := scanner.Input{Files: map[string]scanner.File{
		"a.go": {Content: "LOW\nHIGH\n"},
	}}

	result, err := s.Scan(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	require.Equal(t, types.SeverityHigh, result.Findings[0].Severity)
	require.Equal(t, 0, result.Summary.Low)
}

func TestScanCancelled(t *testing.T) {
	s := scanner.New(2)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "BAD", severity: types.SeverityHigh})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := scanner.Input{Files: map[string]scanner.File{
		"a.go": {Content: "BAD\n"},
	}}

	_, err := s.Scan(ctx, input)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanEmptyInput(t *testing.T) {
	s := scanner.New(2)
	s.RegisterAnalyzer(&markerAnalyzer{marker: "BAD", severity: types.SeverityHigh})

	result, err := s.Scan(context.Background(), scanner.Input{Files: map[string]scanner.File{}})
	require.NoError(t, err)
	require.Empty(t, result.Findings)
	require.Equal(t, 0, result.FilesScanned)
}

func TestInputPathsSorted(t *testing.T) {
	input := scanner.Input{Files: map[string]scanner.File{
		"z.go": {}, "a.go": {}, "m.go": {},
	}}
	require.Equal(t, []string{"a.go", "m.go", "z.go"}, input.Paths())
}

func TestFileDecodable(t *testing.T) {
	require.True(t, scanner.File{Content: "plain text"}.Decodable())
	require.True(t, scanner.File{Content: ""}.Decodable())
	require.True(t, scanner.File{Content: "ünïcode ✓"}.Decodable())
	require.False(t, scanner.File{Content: "has\x00nul"}.Decodable())
	require.False(t, scanner.File{Content: "bad\xff\xfeutf8"}.Decodable())
}
