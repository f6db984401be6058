// Package prefilter implements the cheap gate consulted before a full scan:
// it decides whether a change set could plausibly contain flagged
// constructs. The filter is conservative by contract: a false "skip" is
// strictly worse than a wasted scan, so anything ambiguous scans.
package prefilter

import (
	"path/filepath"
	"strings"
)

// ChangedFile is the minimal metadata the pre-filter consults. Content is
// optional; when present it is only inspected for documentation files to
// detect embedded code.
type ChangedFile struct {
	Path    string
	Content string
}

// docExts are extensions whose files are documentation-only and safe to
// skip when they carry no embedded code.
var docExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".rst":      true,
	".adoc":     true,
}

// markdownExts are the subset of docExts parsed for fenced code blocks.
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// NeedsSecurityScan reports whether the change set warrants a full scan.
// It returns false only when every changed file is documentation with no
// embedded code; unknown extensions and empty metadata default to true.
func NeedsSecurityScan(files []ChangedFile) bool {
	if len(files) == 0 {
		return true
	}
	for _, f := range files {
		if needsScan(f) {
			return true
		}
	}
	return false
}

func needsScan(f ChangedFile) bool {
	ext := strings.ToLower(filepath.Ext(f.Path))
	if !docExts[ext] {
		return true
	}
	// Markdown with fenced code blocks can embed exactly the constructs the
	// catalog flags, so it scans.
	if markdownExts[ext] && f.Content != "" && hasFencedCode([]byte(f.Content)) {
		return true
	}
	// reST / AsciiDoc code directives, same reasoning.
	if !markdownExts[ext] && hasCodeDirective(f.Content) {
		return true
	}
	return false
}

func hasCodeDirective(content string) bool {
	return strings.Contains(content, ".. code-block::") ||
		strings.Contains(content, "[source,")
}
