package scanner

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// File is one unit of scannable content: a full file or a concatenated set
// of diff hunks. Content is supplied by the caller; the core never reads
// from disk or the network.
type File struct {
	Content    string
	Language   string // optional hint, e.g. "rust"; derived from the extension when empty
	IsTestPath bool   // caller-known test/fixture path
}

// Input maps repository-relative file paths to scannable content. It is
// constructed per invocation by the caller and never retained by the core.
type Input struct {
	Files map[string]File
}

// Paths returns the input's file paths in sorted order so scans are
// reproducible regardless of map iteration order.
func (in Input) Paths() []string {
	paths := make([]string, 0, len(in.Files))
	for p := range in.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Lines splits the file content into lines.
func (f File) Lines() []string {
	return strings.Split(f.Content, "\n")
}

// Decodable reports whether the content is scannable text. NUL bytes or
// invalid UTF-8 mark the file as binary; such files contribute zero
// findings and increment the skipped-file counter.
func (f File) Decodable() bool {
	if strings.IndexByte(f.Content, 0) >= 0 {
		return false
	}
	return utf8.ValidString(f.Content)
}
