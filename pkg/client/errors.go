package client

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response decoded from the API's error envelope
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

// IsNotFound reports whether the server answered 404
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the server answered 401
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsValidationError reports whether the server rejected the input
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError reports whether the failure was on the server side
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
