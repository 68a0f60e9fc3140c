package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoResults indicates a result set produced zero slides.
	// Callers render the empty state instead of a carousel.
	ErrNoResults = errors.New("no results")

	// ErrStaleResponse indicates a response arrived for a request that
	// has since been superseded by a newer one. The response is discarded.
	ErrStaleResponse = errors.New("stale response")

	// Backend Errors.

	// ErrBackendUnavailable indicates the resource-matching service could
	// not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendStatus indicates the service answered with a non-2xx status.
	ErrBackendStatus = errors.New("backend returned an error status")

	// ErrRateLimited indicates the service asked the client to slow down.
	ErrRateLimited = errors.New("rate limited")

	// Admin Errors.

	// ErrAdminTokenRequired indicates a mutating admin call was attempted
	// without an admin token.
	ErrAdminTokenRequired = errors.New("admin token required")

	// ErrAdminForbidden indicates the service rejected the admin token.
	ErrAdminForbidden = errors.New("admin token rejected")
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// StatusCodeOf returns the HTTP status code carried by err, or 0 when err
// did not come from an HTTP answer.
func StatusCodeOf(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}
