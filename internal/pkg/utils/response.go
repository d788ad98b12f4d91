// Package utils contains the JSON response envelope and pagination
// helpers shared by all HTTP handlers.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/netpulse/netpulse/internal/pkg/errors"
)

// SuccessResponse wraps successful handler output
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail carries the machine-readable error code alongside the
// human-readable message
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps failed handler output
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// WriteJSON writes any payload with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes data inside the success envelope
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) error {
	return WriteJSON(w, status, SuccessResponse{Success: true, Data: data})
}

// WriteSuccessWithMessage writes data plus an informational message
func WriteSuccessWithMessage(w http.ResponseWriter, status int, message string, data interface{}) error {
	return WriteJSON(w, status, SuccessResponse{Success: true, Message: message, Data: data})
}

// WriteError writes an AppError using its own status code
func WriteError(w http.ResponseWriter, err *errors.AppError) error {
	return WriteJSON(w, err.StatusCode, ErrorResponse{
		Error: ErrorDetail{Code: err.Code, Message: err.Message, Details: err.Details},
	})
}

// WriteErrorMessage writes an ad hoc error without an AppError
func WriteErrorMessage(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}
