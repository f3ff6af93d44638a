package trakt

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingClientID is returned by New when no API client id is configured.
var ErrMissingClientID = errors.New("trakt client id is required")

// Error codes reported in APIError.Code.
const (
	CodeAuthFailed  = "AUTH_FAILED"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMITED"
	CodeUnavailable = "UNAVAILABLE"
	CodeUnknown     = "UNKNOWN"
)

// APIError represents a failed trakt API call.
type APIError struct {
	Code       string
	Status     int
	Path       string
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trakt %s: %s", e.Path, e.Message)
}

// IsNotFound reports whether err is an APIError for a missing record.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNotFound
}

// newAPIError maps an HTTP status to an APIError.
func newAPIError(path string, resp *http.Response) *APIError {
	e := &APIError{
		Status: resp.StatusCode,
		Path:   path,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		e.Code = CodeAuthFailed
		e.Message = fmt.Sprintf("authentication failed (%d), check client_id", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		e.Code = CodeNotFound
		e.Message = "not found"
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Code = CodeRateLimited
		e.RetryAfter = resp.Header.Get("Retry-After")
		e.Message = "rate limit exceeded"
		if e.RetryAfter != "" {
			e.Message += ", retry after " + e.RetryAfter + "s"
		}
	case resp.StatusCode >= 500:
		e.Code = CodeUnavailable
		e.Message = fmt.Sprintf("service unavailable (%d)", resp.StatusCode)
	default:
		e.Code = CodeUnknown
		e.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return e
}
