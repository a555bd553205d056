// ABOUTME: JSON error responses and panic recovery for middleware
// ABOUTME: Ensures middleware error responses match the API's JSON format

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markalston/cod-profit-simulator/models"
)

// writeJSONError writes an error response as JSON with the given status code.
// Matches the format used by handlers.writeError for consistency.
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// Recover turns a panicking handler into a 500 JSON response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panicked",
					"request_id", RequestID(r),
					"path", sanitizePath(r.URL.Path),
					"panic", rec,
				)
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
