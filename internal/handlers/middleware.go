package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"shikshanam/internal/security"
	"shikshanam/internal/view"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const VisitorContextKey ContextKey = "visitor"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.VisitorTokens
	csrf    *security.CSRFGenerator
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.VisitorTokens, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		csrf:    csrf,
		limiter: limiter,
	}
}

// Visitor identifies the visitor from the signed cookie, issuing a new
// identity when the cookie is missing or invalid
func (m *Middleware) Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitorID string
		if cookie, err := r.Cookie(VisitorCookieName); err == nil {
			if id, err := m.tokens.Verify(cookie.Value); err == nil {
				visitorID = id
			}
		}

		if visitorID == "" {
			visitorID = security.NewVisitorID()
			token, err := m.tokens.Issue(visitorID)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing visitor token", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, VisitorCookieName, token, time.Now().Add(m.tokens.TTL())))
		}

		ctx := context.WithValue(r.Context(), VisitorContextKey, visitorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFProtect rejects form posts without a valid CSRF token
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
			return
		}

		token := r.PostFormValue(view.CSRFFieldName)
		if token == "" {
			token = r.Header.Get("X-CSRF-Token")
		}
		if !m.csrf.ValidateToken(GetVisitorID(r.Context()), token) {
			respondWithError(w, http.StatusForbidden, ErrInvalidCSRFToken, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetVisitorID retrieves the visitor ID from the request context
func GetVisitorID(ctx context.Context) string {
	id, _ := ctx.Value(VisitorContextKey).(string)
	return id
}
