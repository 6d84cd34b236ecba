package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message}); err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}

// ErrorHandlingMiddleware turns panics into 500 responses
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Printf("PANIC: %v\n%s", err, debug.Stack())
				writeJSONError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
