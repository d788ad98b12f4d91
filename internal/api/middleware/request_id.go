package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the context key under which the ID is stored
const RequestIDKey ContextKey = "requestID"

// RequestID tags every request with an ID and echoes it back in the
// response header. A caller-supplied X-Request-ID is kept so IDs stay
// stable across proxies.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), RequestIDKey, id)))
		})
	}
}

// GetRequestID returns the request's ID, or empty when the middleware
// did not run
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}
