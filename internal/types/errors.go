package types

import "fmt"

// DefinitionError reports a malformed catalog entry. It is the only fatal
// error class: it surfaces at load time, never mid-scan.
type DefinitionError struct {
	RuleID string
	Err    error
}

func (e *DefinitionError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("rule definition: %v", e.Err)
	}
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }
