package api

import "errors"

// Common asset API errors.
var (
	// ErrNotFound is returned when an asset does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the CSRF token is missing or expired.
	ErrUnauthorized = errors.New("unauthorized — check your CSRF token")
	// ErrForbidden is returned when the operator lacks the required role.
	ErrForbidden = errors.New("forbidden — account may lack media permissions")
)

// ValidationError is returned when the server rejects a payload and
// supplies a human-readable message for it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation failed"
	}
	return "validation failed: " + e.Message
}
