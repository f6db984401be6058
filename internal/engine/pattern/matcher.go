// Package pattern executes the compiled signature catalog against in-memory
// file content, producing scored findings with line ranges and redacted
// excerpts. Matching is pure: no I/O, and the scanned text is never
// evaluated or executed.
package pattern

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ocelotsec/ocelot/internal/engine/confidence"
	"github.com/ocelotsec/ocelot/internal/engine/severity"
	"github.com/ocelotsec/ocelot/internal/rules"
	"github.com/ocelotsec/ocelot/internal/scanner"
)

const maxExcerptLen = 160

// Matcher implements the Analyzer interface using compiled pattern rules.
// The rule slice is read-only and shared freely across scan workers.
type Matcher struct {
	rules []*rules.CompiledRule
}

// NewMatcher creates a new pattern matcher with the given compiled rules.
func NewMatcher(compiled []*rules.CompiledRule) *Matcher {
	return &Matcher{rules: compiled}
}

func (m *Matcher) Name() string { return "pattern" }

// Analyze runs every applicable rule over the file content and returns
// scored findings. Per rule, matches starting on the same line are
// non-overlapping: the first match wins, bounding output volume. Distinct
// rules may independently match overlapping spans; the aggregator resolves
// those later.
func (m *Matcher) Analyze(path string, file scanner.File) []scanner.Finding {
	content := file.Content
	lines := file.Lines()
	index := newLineIndex(content)
	lang := language(path, file)

	scoreCtx := confidence.Context{Path: path, IsTestPath: file.IsTestPath}

	var findings []scanner.Finding
	for _, rule := range m.rules {
		if !applicable(rule, path, lang) {
			continue
		}
		for _, span := range matchRule(rule, content, index) {
			if excludedLine(rule, lines, span.startLine) {
				continue
			}
			scored := confidence.Score(rule, span.text, scoreCtx)
			findings = append(findings, scanner.Finding{
				RuleID:     rule.ID,
				RuleName:   rule.Name,
				Severity:   severity.Resolve(rule.Severity, scored.Confidence),
				Confidence: scored.Confidence,
				CWE:        rule.CWE,
				OWASP:      rule.OWASP,
				Category:   rule.Category,
				FilePath:   path,
				StartLine:  span.startLine,
				EndLine:    span.endLine,
				Excerpt:    excerpt(rule, span.text),
				Message:    rule.Message,
			})
		}
	}
	return findings
}

// span is one raw match: byte offsets, line range, and matched substring.
type span struct {
	start, end         int
	startLine, endLine int
	text               string
}

// matchRule collects all pattern hits for one rule, then drops later hits
// that start on a line already claimed by an earlier hit of the same rule.
func matchRule(rule *rules.CompiledRule, content string, index lineIndex) []span {
	var spans []span
	for _, pat := range rule.Patterns {
		spans = append(spans, matchPattern(pat, content, index)...)
	}
	if len(spans) <= 1 {
		return spans
	}

	// Patterns are matched in catalog order, so "first wins" is stable.
	claimed := make(map[int]bool, len(spans))
	kept := spans[:0]
	for _, s := range spans {
		if claimed[s.startLine] {
			continue
		}
		claimed[s.startLine] = true
		kept = append(kept, s)
	}
	return kept
}

// matchPattern runs one compiled pattern; contains patterns were compiled
// into case-insensitive literal regexps, so every offset is a byte offset
// into the original content.
func matchPattern(pat rules.CompiledPattern, content string, index lineIndex) []span {
	var spans []span
	for _, loc := range pat.Regex.FindAllStringIndex(content, -1) {
		spans = append(spans, newSpan(content, index, loc[0], loc[1]))
	}
	return spans
}

func newSpan(content string, index lineIndex, start, end int) span {
	return span{
		start:     start,
		end:       end,
		startLine: index.lineAt(start),
		endLine:   index.lineAt(max(start, end-1)),
		text:      content[start:end],
	}
}

// excludedLine suppresses a match whose line carries one of the rule's
// exclusion keywords (e.g. an env lookup next to a secret-shaped literal).
func excludedLine(rule *rules.CompiledRule, lines []string, lineNum int) bool {
	if len(rule.ExcludeKeywords) == 0 || lineNum < 1 || lineNum > len(lines) {
		return false
	}
	line := strings.ToLower(lines[lineNum-1])
	for _, kw := range rule.ExcludeKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// excerpt truncates the matched text and, for secret-family rules, masks the
// middle of the credential token so reports never re-leak the value.
func excerpt(rule *rules.CompiledRule, text string) string {
	if rule.Category == "hardcoded-secret" {
		text = redactSecret(text)
	}
	text = strings.ReplaceAll(text, "\n", "\\n")
	if len(text) > maxExcerptLen {
		cut := maxExcerptLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}

// redactSecret masks everything past the first four characters of the
// longest token in the match, keeping enough prefix to identify the
// credential family.
func redactSecret(text string) string {
	token := longestToken(text)
	if len(token) < 8 {
		return text
	}
	masked := token[:4] + strings.Repeat("*", 8)
	return strings.Replace(text, token, masked, 1)
}

func longestToken(text string) string {
	best := ""
	start := -1
	for i := 0; i <= len(text); i++ {
		if i < len(text) && isTokenByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start > len(best) {
			best = text[start:i]
		}
		start = -1
	}
	return best
}

func isTokenByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '+' || b == '/' || b == '=':
		return true
	}
	return false
}

// applicable checks the rule's language and target-glob predicates against
// the file. Empty predicates match everything.
func applicable(rule *rules.CompiledRule, path, lang string) bool {
	if len(rule.Languages) > 0 {
		found := false
		for _, l := range rule.Languages {
			if l == lang {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(rule.Targets) > 0 {
		base := filepath.Base(path)
		matched := false
		for _, glob := range rule.Targets {
			if ok, _ := filepath.Match(glob, base); ok {
				matched = true
				break
			}
			if ok, _ := filepath.Match(glob, path); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// language resolves the file's language: caller hint first, then extension.
func language(path string, file scanner.File) string {
	if file.Language != "" {
		return strings.ToLower(file.Language)
	}
	return extLanguage[strings.ToLower(filepath.Ext(path))]
}

var extLanguage = map[string]string{
	".go":    "go",
	".rs":    "rust",
	".py":    "python",
	".rb":    "ruby",
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".vue":   "vue",
	".java":  "java",
	".kt":    "kotlin",
	".php":   "php",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".scala": "scala",
	".sh":    "shell",
	".bash":  "shell",
	".html":  "html",
	".sql":   "sql",
}

// lineIndex maps byte offsets to 1-based line numbers without rescanning
// the content for every match.
type lineIndex []int

func newLineIndex(content string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (ix lineIndex) lineAt(offset int) int {
	lo, hi := 0, len(ix)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
