package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"coffee-shop-api/internal/logger"
	"coffee-shop-api/internal/service"
)

// requireAuth enforces the single shared credential on every guarded route.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(h.auth.Username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(h.auth.Password)) == 1
		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="coffee-shop-api"`)
			h.writeError(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}
		next(w, r)
	}
}

// withLogging tags each request with an id, logs start and completion and
// captures the status code.
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := logger.GenerateRequestID()
		r = r.WithContext(service.WithRequestID(r.Context(), reqID))

		h.logger.Debug("request_started",
			reqID, fmt.Sprintf("%s %s", r.Method, r.URL.Path))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed", reqID,
			fmt.Sprintf("%s %s - %d (%dms)", r.Method, r.URL.Path, rw.statusCode, duration.Milliseconds()))
	}
}

func requestID(r *http.Request) string {
	return service.RequestIDFrom(r.Context())
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
