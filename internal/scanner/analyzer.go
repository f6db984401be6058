// Package scanner orchestrates the scan of a batch of in-memory files:
// worker-pool dispatch, decode-failure isolation, and canonical result
// assembly. It is a pure function of its inputs and never executes or
// evaluates any part of the scanned content.
package scanner

// Analyzer is the interface all analysis engines implement. Analyzers must
// be safe for concurrent use: one Analyze call runs per file across the
// worker pool with no shared mutable state.
type Analyzer interface {
	Name() string
	Analyze(path string, file File) []Finding
}
