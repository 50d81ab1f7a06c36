package booking

import (
	"errors"
	"fmt"
)

// Error kinds the agent loop treats as recoverable observations: the error
// text goes back into the conversation and the model adapts its next call.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidQuery = errors.New("invalid query")
)

// ValidationError reports a malformed domain record at construction time.
type ValidationError struct {
	Record string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Record, e.Field, e.Reason)
}

func validationErr(record, field, reason string) error {
	return &ValidationError{Record: record, Field: field, Reason: reason}
}
