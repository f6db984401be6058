package scanner

import (
	"context"
	"runtime"
	"sync"

	"github.com/ocelotsec/ocelot/internal/meta"
)

// Scanner runs the analysis pipeline over a batch of in-memory files.
type Scanner struct {
	analyzers   []Analyzer
	workers     int
	minSeverity Severity
}

// New creates a new Scanner with the given number of workers.
// If workers <= 0, it defaults to runtime.NumCPU().
func New(workers int) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{workers: workers}
}

// RegisterAnalyzer adds an analyzer to the scanner pipeline.
func (s *Scanner) RegisterAnalyzer(a Analyzer) {
	s.analyzers = append(s.analyzers, a)
}

// SetMinSeverity sets the minimum severity for reported findings.
func (s *Scanner) SetMinSeverity(sev Severity) {
	s.minSeverity = sev
}

// fileOutcome carries one worker's result back for collection.
type fileOutcome struct {
	findings []Finding
	skipped  bool
}

// Scan runs every registered analyzer over every file in the input.
// Scanning is embarrassingly parallel across files: the compiled catalog is
// read-only, so the only synchronization is result collection. Identical
// inputs always yield an identical ScanResult; a cancelled scan has no side
// effects and is safely restartable.
func (s *Scanner) Scan(ctx context.Context, input Input) (*ScanResult, error) {
	paths := input.Paths()

	fileCh := make(chan string, len(paths))
	for _, p := range paths {
		fileCh <- p
	}
	close(fileCh)

	var (
		mu       sync.Mutex
		findings []Finding
		skipped  int
		wg       sync.WaitGroup
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range fileCh {
				if ctx.Err() != nil {
					return
				}
				out := s.scanFile(path, input.Files[path])
				mu.Lock()
				if out.skipped {
					skipped++
				} else {
					findings = append(findings, out.findings...)
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	findings = s.filter(meta.Aggregate(findings))

	result := &ScanResult{
		Findings:     findings,
		FilesScanned: len(paths) - skipped,
		FilesSkipped: skipped,
	}
	for _, f := range findings {
		result.Summary.Add(f.Severity)
	}
	return result, nil
}

// scanFile isolates one file: an undecodable file contributes zero findings
// and a skip signal rather than aborting the batch.
func (s *Scanner) scanFile(path string, file File) fileOutcome {
	if !file.Decodable() {
		return fileOutcome{skipped: true}
	}
	var findings []Finding
	for _, analyzer := range s.analyzers {
		findings = append(findings, analyzer.Analyze(path, file)...)
	}
	return fileOutcome{findings: findings}
}

func (s *Scanner) filter(findings []Finding) []Finding {
	if s.minSeverity <= SeverityInfo {
		return findings
	}
	filtered := findings[:0]
	for _, f := range findings {
		if f.Severity >= s.minSeverity {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
