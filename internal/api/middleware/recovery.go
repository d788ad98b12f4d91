package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// Recovery converts a handler panic into a 500 response and logs the
// stack, so one bad request cannot take the server down.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				log.WithFields(map[string]interface{}{
					"error":      rec,
					"stack":      string(debug.Stack()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": GetRequestID(r),
				}).Error("Panic recovered")

				utils.WriteError(w, errors.Internal(
					"Internal server error", fmt.Errorf("panic: %v", rec)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
