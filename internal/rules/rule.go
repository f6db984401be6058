// Package rules defines the vulnerability signature catalog: the YAML rule
// schema, compilation into executable matchers, and config-driven overrides.
// The compiled catalog is immutable for the process lifetime.
package rules

import (
	"regexp"

	"github.com/ocelotsec/ocelot/internal/types"
)

// PatternType represents the type of a pattern.
type PatternType string

const (
	PatternRegex    PatternType = "regex"
	PatternContains PatternType = "contains"
)

// RawPattern is a single pattern as defined in YAML.
type RawPattern struct {
	Type  PatternType `yaml:"type"`
	Value string      `yaml:"value"`
}

// RawExamples contains test examples for rule self-testing.
type RawExamples struct {
	TruePositive  []string `yaml:"true_positive"`
	FalsePositive []string `yaml:"false_positive"`
}

// RawRule is the YAML representation of a vulnerability signature.
type RawRule struct {
	ID                string       `yaml:"id"`
	Name              string       `yaml:"name"`
	Description       string       `yaml:"description"`
	Message           string       `yaml:"message"`
	Severity          string       `yaml:"severity"`
	Confidence        string       `yaml:"confidence"`
	ConfidenceCeiling string       `yaml:"confidence_ceiling"`
	CWE               string       `yaml:"cwe"`
	OWASP             string       `yaml:"owasp"`
	Category          string       `yaml:"category"`
	Languages         []string     `yaml:"languages"`
	Targets           []string     `yaml:"targets"`
	Patterns          []RawPattern `yaml:"patterns"`
	ExcludeKeywords   []string     `yaml:"exclude_keywords"`
	Examples          RawExamples  `yaml:"examples"`
}

// CompiledPattern is a pattern ready for matching. Both pattern types
// compile to a regexp: contains values become case-insensitive quoted
// literals.
type CompiledPattern struct {
	Type  PatternType
	Regex *regexp.Regexp
	Value string // original literal when Type == PatternContains
}

// CompiledRule is a rule compiled and ready for execution. Never mutated
// after compilation; shared freely across scan workers.
type CompiledRule struct {
	ID                string
	Name              string
	Description       string
	Message           string
	Severity          types.Severity
	Confidence        types.Confidence
	ConfidenceCeiling types.Confidence
	CWE               string
	OWASP             string
	Category          string
	Languages         []string
	Targets           []string
	Patterns          []CompiledPattern
	ExcludeKeywords   []string // lowercased; a line containing one is suppressed
	Examples          RawExamples
}
