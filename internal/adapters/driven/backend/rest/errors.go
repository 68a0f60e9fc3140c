package rest

import (
	"fmt"
	"net/http"

	"github.com/custodia-labs/compass/internal/core/domain"
)

// StatusError is returned when the service answers with a non-2xx status.
// It unwraps to the domain error matching the status.
type StatusError struct {
	Code   int
	Path   string
	Detail string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Path, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", e.Path, e.Code)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Unwrap maps the status onto a domain sentinel.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAdminForbidden
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrBackendUnavailable
	default:
		return domain.ErrBackendStatus
	}
}
