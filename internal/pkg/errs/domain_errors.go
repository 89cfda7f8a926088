package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Allocation errors
	ErrConcurrentModification = errors.New("concurrent modification")

	// Voice channel errors
	ErrServiceUnavailable = errors.New("service unavailable")

	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")
)
