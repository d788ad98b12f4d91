// Package errors defines the error type returned across service and
// HTTP boundaries. An AppError pairs a stable machine-readable code
// with the HTTP status the API layer should answer with, while the
// wrapped internal error stays out of responses.
package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried in API responses.
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeControllerAuth     = "CONTROLLER_AUTH_ERROR"
	ErrCodeControllerAPI      = "CONTROLLER_API_ERROR"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is an error with an API-facing code and status. Internal is
// never serialized; it exists for logs and errors.Is chains.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Internal   error       `json:"-"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// WithDetails attaches structured detail (field errors and the like)
// that the API layer will serialize alongside the message.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// New builds an AppError with no underlying cause.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// Wrap builds an AppError around an underlying cause.
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode, Internal: err}
}

func Internal(message string, err error) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

// NotFound takes the resource name, not a full message.
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

func ValidationError(message string, details interface{}) *AppError {
	return New(ErrCodeValidation, message, http.StatusBadRequest).WithDetails(details)
}

func DatabaseError(message string, err error) *AppError {
	return Wrap(err, ErrCodeDatabase, message, http.StatusInternalServerError)
}

// ControllerAuthError reports a failed login against the UniFi
// controller itself, as opposed to a failed login against our API.
func ControllerAuthError(err error) *AppError {
	return Wrap(err, ErrCodeControllerAuth,
		"Failed to authenticate with the UniFi controller",
		http.StatusUnauthorized)
}

func ControllerAPIError(err error) *AppError {
	return Wrap(err, ErrCodeControllerAPI,
		"Failed to communicate with the UniFi controller API",
		http.StatusBadGateway)
}

func RateLimited(message string) *AppError {
	return New(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

func ServiceUnavailable(message string) *AppError {
	return New(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}
