package startup

import (
	"errors"
	"fmt"
)

// RedirectError signals an in-flight navigation away from the application.
// It is not a reportable fault: the sequencer stops scheduling phases and
// neither invokes the error handler nor publishes the error topic.
type RedirectError struct {
	Location string
	Err      error
}

// NewRedirectError constructs a RedirectError for the given target location.
func NewRedirectError(location string, err error) error {
	return &RedirectError{Location: location, Err: err}
}

func (e *RedirectError) Error() string {
	if e == nil {
		return ""
	}
	if e.Location != "" {
		return fmt.Sprintf("redirect in progress: %s", e.Location)
	}
	return "redirect in progress"
}

// Unwrap exposes the underlying error.
func (e *RedirectError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsRedirecting marks the error as a redirect-in-progress signal.
func (e *RedirectError) IsRedirecting() bool { return true }

// IsRedirecting reports whether err carries the redirect marker. Any error in
// the chain exposing IsRedirecting() bool counts, so collaborators outside
// this module can mark their own error types. All other failures, regardless
// of origin, are treated uniformly as phase failures.
func IsRedirecting(err error) bool {
	for err != nil {
		if marked, ok := err.(interface{ IsRedirecting() bool }); ok && marked.IsRedirecting() {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// SequenceError records which phase terminated the run and why.
type SequenceError struct {
	Phase Phase
	Err   error
}

// NewSequenceError constructs a SequenceError.
func NewSequenceError(phase Phase, err error) error {
	return &SequenceError{Phase: phase, Err: err}
}

func (e *SequenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("startup phase %s failed: %v", e.Phase, e.Err)
}

// Unwrap exposes the phase failure.
func (e *SequenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OptionsError reports invalid initialization options.
type OptionsError struct {
	Field   string
	Message string
}

// NewOptionsError constructs an OptionsError.
func NewOptionsError(field, message string) error {
	return &OptionsError{Field: field, Message: message}
}

func (e *OptionsError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid options: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid options: %s", e.Message)
}
