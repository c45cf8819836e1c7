package apperrors

import (
	"errors"
	"fmt"
)

// NetworkError is returned when a TVmaze request cannot complete or answers
// with a non-success status.
type NetworkError struct {
	Op         string // "search_shows" or "list_episodes"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: request to %s failed", e.Op, e.URL)
}

// Unwrap returns the underlying transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a NetworkError for a request that never got a response.
func NewNetworkError(op, url string, err error) *NetworkError {
	return &NetworkError{Op: op, URL: url, Err: err}
}

// NewStatusError creates a NetworkError for a non-success HTTP status.
func NewStatusError(op, url string, status int) *NetworkError {
	return &NetworkError{Op: op, URL: url, StatusCode: status}
}

// MalformedDataError is returned when a response body does not have the
// shape the normalizer expects.
type MalformedDataError struct {
	Resource string
	Err      error
}

// Error implements the error interface.
func (e *MalformedDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s payload: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("malformed %s payload", e.Resource)
}

// Unwrap returns the decode error, if any.
func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *MalformedDataError) Is(target error) bool {
	_, ok := target.(*MalformedDataError)
	return ok
}

// NewMalformedDataError creates a new MalformedDataError.
func NewMalformedDataError(resource string, err error) *MalformedDataError {
	return &MalformedDataError{Resource: resource, Err: err}
}

// UserMessage maps an error to the short message shown inline in the page.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.StatusCode == 404 {
			return "Nothing was found for that request."
		}
		return "TVmaze could not be reached. Please try again."
	}
	if errors.Is(err, &MalformedDataError{}) {
		return "TVmaze returned data we could not read."
	}
	return "Something went wrong. Please try again."
}
