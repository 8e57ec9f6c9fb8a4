package engine

import (
	"errors"
	"fmt"

	"keypad/internal/key"
)

// EventError wraps a failure to process a single input event.
//
// These are infrastructure failures (step hashing, store writes,
// unrecognized event kinds), never calculation outcomes - division by
// zero is part of the display contract, not an EventError.
type EventError struct {
	// Kind identifies the event that failed.
	Kind key.Kind

	// Seq is the logical clock value at failure, 0 if the event failed
	// before being stamped.
	Seq int64

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EventError) Error() string {
	if e.Seq != 0 {
		return fmt.Sprintf("process %s event (seq=%d): %v", e.Kind, e.Seq, e.Err)
	}
	return fmt.Sprintf("process %s event: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *EventError) Unwrap() error {
	return e.Err
}

// IsEventError reports whether err is an EventError.
// Uses errors.As to handle wrapped errors.
func IsEventError(err error) bool {
	var ee *EventError
	return errors.As(err, &ee)
}
