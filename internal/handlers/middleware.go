package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"studyaid/internal/logger"
	"studyaid/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	VisitorContextKey      ContextKey = "visitor"
	PrefersLightContextKey ContextKey = "prefersLight"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	visitors *security.VisitorSigner
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
	logger   *logger.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(visitors *security.VisitorSigner, csrf *security.CSRFGenerator, limiter *security.RateLimiter, log *logger.Logger) *Middleware {
	if log == nil {
		log = logger.NewNop()
	}
	return &Middleware{
		visitors: visitors,
		csrf:     csrf,
		limiter:  limiter,
		logger:   log,
	}
}

// Visitor identifies the browser from its signed cookie, issuing a new
// visitor ID when the cookie is missing or invalid. It also records the
// color-scheme client hint.
func (m *Middleware) Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID := ""
		if cookie, err := r.Cookie(VisitorCookieName); err == nil {
			if id, err := m.visitors.Verify(cookie.Value); err == nil {
				visitorID = id
			} else {
				m.logger.Debug("Discarding visitor cookie", "error", err)
			}
		}

		if visitorID == "" {
			visitorID = security.NewVisitorID()
			token, expires, err := m.visitors.Issue(visitorID)
			if err != nil {
				respondWithError(w, m.logger, http.StatusInternalServerError, ErrInternalServerError, "Error issuing visitor cookie", err)
				return
			}
			http.SetCookie(w, security.CreateCookie(r, VisitorCookieName, token, expires))
		}

		w.Header().Set("Accept-CH", ColorSchemeHint)
		w.Header().Add("Vary", ColorSchemeHint)

		ctx := context.WithValue(r.Context(), VisitorContextKey, visitorID)
		ctx = context.WithValue(ctx, PrefersLightContextKey, prefersLight(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// prefersLight reads the client hint; the value is a quoted sf-string
func prefersLight(r *http.Request) bool {
	hint := strings.Trim(strings.TrimSpace(r.Header.Get(ColorSchemeHint)), `"`)
	return strings.EqualFold(hint, "light")
}

// CSRFProtect rejects POSTs whose token does not match the page in the path
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CSRFHeader)
		if token == "" {
			token = r.FormValue(CSRFFormField)
		}
		if err := m.csrf.Check(r.PathValue("pageID"), token); err != nil {
			m.logger.Warn("CSRF token rejected", "path", r.URL.Path, "ip", security.GetClientIP(r), "error", err)
			http.Error(w, ErrInvalidCSRFToken, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			m.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// Logging middleware logs HTTP requests
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// GetVisitorID retrieves the visitor ID from the request context
func GetVisitorID(ctx context.Context) string {
	id, _ := ctx.Value(VisitorContextKey).(string)
	return id
}

// GetPrefersLight retrieves the color-scheme signal from the request context
func GetPrefersLight(ctx context.Context) bool {
	light, _ := ctx.Value(PrefersLightContextKey).(bool)
	return light
}
