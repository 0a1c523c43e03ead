// Error types for the resolution pipeline.
package resolver

import (
	"fmt"
	"strings"
)

// MalformedOutputError reports model text that could not be parsed into a
// provisional plan: bad JSON, or missing required fields. It carries the
// underlying cause and is never retried internally.
type MalformedOutputError struct {
	Reason string
	Cause  error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return e.Cause }

// InvalidPlanError reports a structurally unsound plan: duplicate ids,
// dangling dependencies, unknown tools, or cycles. It carries every
// validation error, never just the first.
type InvalidPlanError struct {
	Errors []string
}

func (e *InvalidPlanError) Error() string {
	return "invalid plan: " + strings.Join(e.Errors, "; ")
}
