package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
)

// decodeAndValidate decodes the request body into dst and runs
// struct-tag validation. It writes the error response itself and
// returns false when the request is bad.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if errs := val.Validate(dst); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return false
	}
	return true
}

// decodeBody decodes an optional JSON body, tolerating an empty one
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// idParam parses the {id} URL parameter as an int64
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.WriteError(w, errors.BadRequest("Invalid id"))
		return 0, false
	}
	return id, true
}

// writeServiceError maps a service error to an HTTP response,
// preserving AppError status codes.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}
