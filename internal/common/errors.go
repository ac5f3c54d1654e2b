package common

import "errors"

// Business logic errors
var (
	// Workflow error kinds. WorkflowError unwraps to one of these.
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidationFailed  = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("resource not found")
	ErrPersistence       = errors.New("persistence failure")

	// Request errors
	ErrInvalidInput = errors.New("invalid input")

	// Optional collaborators
	ErrSearchUnavailable = errors.New("search is not configured")
)
