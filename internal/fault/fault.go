// Package fault defines the error kinds the gateway components reject with.
// Handlers map these onto HTTP responses; no component handles another
// component's faults beyond surfacing the message.
package fault

import (
	"errors"
	"fmt"
)

// AuthError covers invalid credentials and rejected sessions. Recovered by
// returning to the unauthenticated state, never fatal.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func Auth(format string, args ...any) error {
	return &AuthError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError is a precondition failure detected before any network call
// is issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StateError means transient state a later step depends on is missing. The
// user is routed back to the step that produces that state.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func State(format string, args ...any) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

// RemoteError is any failed backend call not covered above. Never retried
// automatically; the triggering action stays available for a manual retry.
// Message carries the server's own message when one was present.
type RemoteError struct {
	Op      string // logical operation, e.g. "create order"
	Status  int    // HTTP status from the backend, 0 for transport failures
	Message string
	Err     error // underlying transport error, if any
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed (status %d)", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func Remote(op string, status int, message string, err error) error {
	return &RemoteError{Op: op, Status: status, Message: message, Err: err}
}

func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsState(err error) bool {
	var e *StateError
	return errors.As(err, &e)
}

// UserMessage returns the message to show the user: the error's own message
// for known kinds, otherwise the per-action fallback.
func UserMessage(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case IsAuth(err), IsValidation(err), IsState(err):
		return err.Error()
	}
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
