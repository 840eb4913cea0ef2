package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound  = errors.New("not_found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
	// ErrInvalidDate marks a Jalali day/month/year that does not exist.
	ErrInvalidDate = errors.New("invalid_date")
	// ErrInvalidAmount marks an amount that is not a positive decimal.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrUnauthorized means the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)
