package feed

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// APIError represents a non-success HTTP response from a commit feed.
// It unwraps to domain.ErrTransport.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap classifies API errors as transport failures.
func (e *APIError) Unwrap() error {
	return domain.ErrTransport
}

// Hint suggests a fix for common client errors, or returns "".
func (e *APIError) Hint() string {
	switch {
	case IsNotFound(e):
		return "check the owner, repository and branch names"
	case IsUnauthorized(e):
		return "check the API token or username and password"
	case IsForbidden(e):
		return "the credentials lack access to this repository"
	}
	return ""
}

// IsNotFound checks if the error indicates a repository or branch was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// TransportError wraps a failed round trip as domain.ErrTransport.
func TransportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrTransport, err)
}
