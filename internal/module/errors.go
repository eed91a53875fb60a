package module

import (
	"fmt"
)

// EvaluationError reports a module that could not be evaluated against the synthetic context.
type EvaluationError struct {
	Module string
	// Field is the placeholder the module dereferenced, when that caused the failure.
	Field string
	// Requires lists the context fields the options expression references.
	Requires []string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("evaluate module %s: reads unset context field %q: %v", e.Module, e.Field, e.Err)
	}
	return fmt.Sprintf("evaluate module %s: %v", e.Module, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
