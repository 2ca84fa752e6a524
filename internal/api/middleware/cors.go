package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps the whole router so preflight requests are answered before gin
// routing. An empty origin list allows any origin.
func CORS(h http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:         12 * 60 * 60,
	}).Handler(h)
}
