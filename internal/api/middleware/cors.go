package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows cross-origin requests from the given origins. Credentials
// are allowed because the dashboard sends the Authorization header.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// DefaultCORS builds the origin list from the configured frontend URL.
// Local frontends also get the common dev-server ports, so a vite or
// CRA instance works without extra configuration.
func DefaultCORS(frontendURL string) func(http.Handler) http.Handler {
	origins := []string{frontendURL}
	if strings.Contains(frontendURL, "localhost") || strings.Contains(frontendURL, "127.0.0.1") {
		origins = append(origins,
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		)
	}
	return CORS(origins)
}
