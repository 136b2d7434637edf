package booking

import "fmt"

// ValidationError reports a bad request field (unknown size band, frequency,
// or service id). Caller's fault; never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError signals that a slot was no longer free at claim time. The
// caller may retry allocation or accept an unassigned booking; it is distinct
// from the Unassigned outcome, which is not an error at all.
type ConflictError struct {
	CleanerID string
	Message   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict for cleaner %s: %s", e.CleanerID, e.Message)
}

// NotFoundError reports an unknown booking or cleaner id on a mutation.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PersistenceError wraps a storage failure. Propagated unchanged; retry
// policy belongs to the calling layer.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
