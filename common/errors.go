package common

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateIdentity is returned when a registration collides with
	// an existing username or email.
	ErrDuplicateIdentity = errors.New("username or email already exists")

	// ErrInvalidCredentials covers every login failure. Unknown username
	// and wrong password produce the same error so callers cannot
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned for missing users and issues.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is returned for malformed input: unknown category,
	// missing required field, bad email or phone.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the acting user's role does not
	// permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrPartialResolution means a resolution signature was recorded but
	// the status update failed. The state is recoverable: retrying the
	// resolve is safe, the extra signature is permitted.
	ErrPartialResolution = errors.New("signature recorded but status update failed")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrDuplicateIdentity):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
