package engine

import (
	"fmt"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// ValidationError marks malformed input: a past exam on assignment, a
// window with its dates reversed, a non-positive duration. It is always
// surfaced synchronously and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError marks a lifecycle event attempted from a state
// that does not permit it. It is a user-facing rejection, not a fault.
type InvalidTransitionError struct {
	From  model.BookingStatus
	Event string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s not permitted from %s", e.Event, e.From)
}
