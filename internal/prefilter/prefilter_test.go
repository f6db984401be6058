package prefilter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocelotsec/ocelot/internal/prefilter"
)

func TestEmptyChangeSetScans(t *testing.T) {
	require.True(t, prefilter.NeedsSecurityScan(nil))
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{}))
}

func TestCodeFilesAlwaysScan(t *testing.T) {
	for _, path := range []string{
		"src/main.rs",
		"app.py",
		"cmd/server/main.go",
		"web/index.js",
		"config.yaml",
	} {
		require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{{Path: path}}),
			"%s should trigger a scan", path)
	}
}

func TestUnknownExtensionScans(t *testing.T) {
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{{Path: "data.bin"}}))
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{{Path: "Makefile"}}))
}

func TestDocOnlyChangeSetSkips(t *testing.T) {
	files := []prefilter.ChangedFile{
		{Path: "README.md", Content: "# Title\n\nPlain prose, nothing else.\n"},
		{Path: "docs/guide.markdown", Content: "More prose here.\n"},
	}
	require.False(t, prefilter.NeedsSecurityScan(files))
}

func TestMixedChangeSetScans(t *testing.T) {
	files := []prefilter.ChangedFile{
		{Path: "README.md", Content: "# Title\n\nPlain prose.\n"},
		{Path: "src/main.rs", Content: "fn main() {}"},
	}
	require.True(t, prefilter.NeedsSecurityScan(files))
}

func TestMarkdownWithFencedCodeScans(t *testing.T) {
	md := "# Usage\n\n```python\nos.system(\"ping \" + host)\n```\n"
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "docs/usage.md", Content: md},
	}))
}

func TestMarkdownInlineCodeDoesNotScan(t *testing.T) {
	// inline spans are not code blocks; prose mentioning `os.system` is
	// still documentation
	md := "Call `os.system` carefully.\n"
	require.False(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "docs/notes.md", Content: md},
	}))
}

func TestMarkdownWithoutContentSkips(t *testing.T) {
	// metadata-only invocation: a .md path with no content provided
	require.False(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "CHANGELOG.md"},
	}))
}

func TestRestWithCodeDirectiveScans(t *testing.T) {
	rst := "Usage\n=====\n\n.. code-block:: python\n\n   os.system(cmd)\n"
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "docs/usage.rst", Content: rst},
	}))
}

func TestRestProseSkips(t *testing.T) {
	require.False(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "docs/intro.rst", Content: "Introduction\n============\n\nProse only.\n"},
	}))
}

func TestAsciidocWithSourceBlockScans(t *testing.T) {
	adoc := "= Guide\n\n[source,go]\n----\nexec.Command(name)\n----\n"
	require.True(t, prefilter.NeedsSecurityScan([]prefilter.ChangedFile{
		{Path: "docs/guide.adoc", Content: adoc},
	}))
}
