package common

import (
	"errors"
	"fmt"
	"strings"
)

// WorkflowError is the structured failure returned across the workflow core.
// Kind is one of ErrUnauthorized, ErrValidationFailed, ErrInvalidTransition,
// ErrNotFound or ErrPersistence.
type WorkflowError struct {
	Kind             error    `json:"-"`
	Message          string   `json:"message"`
	Violations       []string `json:"violations,omitempty"`
	CurrentStatus    string   `json:"current_status,omitempty"`
	RequiredStatuses []string `json:"required_statuses,omitempty"`
	cause            error
}

func (e *WorkflowError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the kind so callers can use errors.Is
func (e *WorkflowError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// Code returns a stable machine-readable name for the kind
func (e *WorkflowError) Code() string {
	switch e.Kind {
	case ErrUnauthorized:
		return "UNAUTHORIZED"
	case ErrValidationFailed:
		return "VALIDATION_FAILED"
	case ErrInvalidTransition:
		return "INVALID_TRANSITION"
	case ErrNotFound:
		return "NOT_FOUND"
	default:
		return "PERSISTENCE_FAILURE"
	}
}

// Unauthorized reports a missing actor or missing role
func Unauthorized(message string) *WorkflowError {
	if message == "" {
		message = "not authorized"
	}
	return &WorkflowError{Kind: ErrUnauthorized, Message: message}
}

// ValidationFailed carries the full list of violations
func ValidationFailed(violations []string) *WorkflowError {
	return &WorkflowError{
		Kind:       ErrValidationFailed,
		Message:    strings.Join(violations, ", "),
		Violations: violations,
	}
}

// InvalidTransition names the current status and the statuses the intent needs
func InvalidTransition(intent, current string, required []string) *WorkflowError {
	return &WorkflowError{
		Kind:             ErrInvalidTransition,
		Message:          fmt.Sprintf("Must be %s to %s", strings.Join(required, " or "), intent),
		CurrentStatus:    current,
		RequiredStatuses: required,
	}
}

// NotFound reports a missing resource
func NotFound(what string) *WorkflowError {
	return &WorkflowError{Kind: ErrNotFound, Message: what + " not found"}
}

// Persistence wraps a store failure as an opaque error
func Persistence(cause error) *WorkflowError {
	return &WorkflowError{Kind: ErrPersistence, Message: "persistence failure", cause: cause}
}

// AsWorkflowError converts any error into a WorkflowError. Unknown errors
// become persistence failures.
func AsWorkflowError(err error) *WorkflowError {
	if err == nil {
		return nil
	}
	var we *WorkflowError
	if errors.As(err, &we) {
		return we
	}
	if errors.Is(err, ErrNotFound) {
		return &WorkflowError{Kind: ErrNotFound, Message: err.Error()}
	}
	return Persistence(err)
}
