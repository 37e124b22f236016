package egraph

import (
	"errors"
	"fmt"
)

// GraphError represents an error detected while mutating or repairing the
// graph.
//
// Graph errors include:
//   - Invariant violation: Union returned a root that is neither argument
//   - Repair quota exceeded: Rebuild exceeded the step limit
//   - Unknown class: an id that was never allocated reached Find
//
// GraphError includes structured fields for diagnostics.
type GraphError struct {
	// Code identifies the error category.
	Code GraphErrorCode

	// Message is a human-readable description.
	Message string

	// Class identifies the affected class, NoClass if not applicable.
	Class ClassID

	// Details contains additional context.
	Details map[string]string
}

// GraphErrorCode categorizes graph errors.
type GraphErrorCode string

const (
	// ErrCodeInvariantViolation indicates internal state the graph can
	// never legally reach. Always a bug, never recoverable.
	ErrCodeInvariantViolation GraphErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeRepairQuota indicates Rebuild exceeded its repair-step limit,
	// usually because an analysis lattice has infinite ascending chains.
	ErrCodeRepairQuota GraphErrorCode = "REPAIR_QUOTA_EXCEEDED"

	// ErrCodeUnknownClass indicates an id never returned by the graph was
	// passed to Find or a traversal.
	ErrCodeUnknownClass GraphErrorCode = "UNKNOWN_CLASS"
)

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Class != NoClass {
		return fmt.Sprintf("%s: %s (class=%d)", e.Code, e.Message, e.Class)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRepairQuotaError returns true if the error is a repair quota error.
// Uses errors.As to handle wrapped errors.
func IsRepairQuotaError(err error) bool {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeRepairQuota
	}
	return false
}

// IsInvariantError returns true if the error is an invariant violation.
// Uses errors.As to handle wrapped errors.
func IsInvariantError(err error) bool {
	var ge *GraphError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeInvariantViolation
	}
	return false
}

// NewRepairQuotaError creates a GraphError for an exhausted repair quota.
func NewRepairQuotaError(steps, limit int) *GraphError {
	return &GraphError{
		Code:    ErrCodeRepairQuota,
		Message: fmt.Sprintf("rebuild exceeded max repair steps (%d > %d)", steps, limit),
		Class:   NoClass,
		Details: map[string]string{
			"steps": fmt.Sprintf("%d", steps),
			"limit": fmt.Sprintf("%d", limit),
		},
	}
}

func newInvariantError(format string, args ...any) *GraphError {
	return &GraphError{
		Code:    ErrCodeInvariantViolation,
		Message: fmt.Sprintf(format, args...),
		Class:   NoClass,
	}
}
