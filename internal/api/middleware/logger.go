package middleware

import (
	"net/http"
	"time"

	"github.com/netpulse/netpulse/internal/pkg/logger"
)

// responseWriter captures the status code and byte count for logging
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logger emits one structured log line per completed request
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			log.WithFields(map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rw.statusCode,
				"duration":   time.Since(start).Milliseconds(),
				"bytes":      rw.written,
				"ip":         r.RemoteAddr,
				"request_id": GetRequestID(r),
			}).Info("HTTP request")
		})
	}
}
