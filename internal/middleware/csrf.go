package middleware

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/handler"
)

// CSRFMiddleware issues CSRF tokens on safe requests and checks them on
// unsafe ones.
type CSRFMiddleware struct {
	logger   *slog.Logger
	isSecure bool
}

// NewCSRFMiddleware creates a new CSRF middleware.
func NewCSRFMiddleware(logger *slog.Logger, isSecure bool) *CSRFMiddleware {
	return &CSRFMiddleware{
		logger:   logger,
		isSecure: isSecure,
	}
}

// Protect ensures every request carries a token in its context, and rejects
// unsafe requests whose submitted token does not match the cookie.
func (m *CSRFMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			token, err := csrf.EnsureToken(w, r, m.isSecure)
			if err != nil {
				handler.InternalErrorResponse(w, r, m.logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(csrf.WithToken(r.Context(), token)))
			return
		}

		if !csrf.ValidateRequest(r) {
			m.logger.Warn("csrf token mismatch",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", getClientIP(r),
			)
			handler.ErrorResponse(w, r, m.logger, domain.Forbidden("middleware.csrf", "Your session has expired. Reload the page and try again."))
			return
		}

		cookie, _ := r.Cookie(csrf.CookieName)
		next.ServeHTTP(w, r.WithContext(csrf.WithToken(r.Context(), cookie.Value)))
	})
}
