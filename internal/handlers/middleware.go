package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"grouplink/internal/security"

	"github.com/google/uuid"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	verifier *security.TokenVerifier
	limiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(verifier *security.TokenVerifier, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		verifier: verifier,
		limiter:  limiter,
	}
}

// RequireToken is middleware that requires a valid bearer token on
// mutating API endpoints. Requests are rejected before any store access.
func (m *Middleware) RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.verifier.Configured() {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized,
				"Rejected API request: no API token configured", nil)
			return
		}

		bearer := bearerToken(r)
		if bearer == "" || !m.verifier.Verify(bearer) {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		next(w, r)
	}
}

// RateLimit is middleware that applies the per-IP rate limiter
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// Logging middleware logs HTTP requests with a per-request ID
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s %s", requestID[:8], r.Method, r.URL.Path, time.Since(start))
	})
}
