/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  The boundary layers map these onto transport-level responses.

ERROR CATEGORIES:
  1. ValidationError    - malformed/configuration-inconsistent input,
     always field-tagged, recoverable by the caller correcting input
  2. BusinessRuleError  - workflow guard rejections, message names the
     entry's current status, recoverable only by a different action
  3. InfrastructureError - store unavailable or timed out, retryable

PROPAGATION:
  Validator and Workflow never return errors for expected business
  conditions; they return structured values. The Service converts the
  first failure into one of the kinds above and aborts before any write.

USAGE:
  if engine.IsValidation(err) { ... show field errors ... }
  if engine.IsRetryable(err)  { ... back off and retry ... }

SEE ALSO:
  - service.go: where failures are converted into these kinds
*/
package engine

import (
	"errors"
	"fmt"
)

// Field identifiers used in ValidationError, matching what clients
// display next to their inputs.
const (
	FieldID             = "id"
	FieldProjectCode    = "projectCode"
	FieldTask           = "task"
	FieldTags           = "tags"
	FieldStandardHours  = "standardHours"
	FieldOvertimeHours  = "overtimeHours"
	FieldCompletionDate = "completionDate"
	FieldComment        = "comment"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// FieldError is a single itemized validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// ValidationError carries one or more field-tagged failures. Field and
// Message expose the first failure; All holds the complete list.
type ValidationError struct {
	Field   string
	Message string
	All     []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		All:     []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors wraps a non-empty failure list.
func NewValidationErrors(failures []FieldError) *ValidationError {
	return &ValidationError{
		Field:   failures[0].Field,
		Message: failures[0].Message,
		All:     failures,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NotFoundError builds the distinct "entry not found" validation error
// every operation returns when the identifier does not resolve.
func NotFoundError(id EntryID) *ValidationError {
	return NewValidationError(FieldID, fmt.Sprintf("entry not found: %s", id))
}

// =============================================================================
// BUSINESS RULE ERROR
// =============================================================================

// BusinessRuleError is a workflow rejection. Message always names the
// entry's current status so clients can match on it.
type BusinessRuleError struct {
	Status  EntryStatus
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// =============================================================================
// INFRASTRUCTURE ERROR
// =============================================================================

// InfrastructureError wraps a store failure. Safe to retry with backoff.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func infraErr(op string, err error) error {
	return &InfrastructureError{Op: op, Err: err}
}

// =============================================================================
// PREDICATES - Use at the transport boundary
// =============================================================================

// IsValidation returns true for input the caller can correct.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound returns true for the unknown-entry-id case specifically.
func IsNotFound(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Field == FieldID
}

// IsBusinessRule returns true for workflow guard rejections.
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsRetryable returns true if the operation might succeed on retry.
func IsRetryable(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
