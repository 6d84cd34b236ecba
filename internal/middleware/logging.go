package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LoggingMiddleware logs HTTP requests with the caller's session
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		sessionInfo := "anonymous"
		if session := GetSessionFromContext(r.Context()); session != nil {
			sessionInfo = session.ID
		}

		log.Printf(
			"[%s] %s %d %d bytes %v - Session: %s - Request: %s - IP: %s",
			r.Method,
			r.URL.Path,
			wrapped.statusCode,
			wrapped.size,
			time.Since(start),
			sessionInfo,
			GetRequestID(r.Context()),
			getClientIP(r),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// getClientIP returns the host part of the peer address. Forwarding headers
// are not read here; behind a trusted proxy chi's RealIP rewrites RemoteAddr.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored in the context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return "-"
}
