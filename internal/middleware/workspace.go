// Package middleware contains HTTP middleware for the carer workspace.
//
// Middleware functions follow the standard Go pattern of wrapping
// http.Handler and are composed with Stack.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/workspace"
	"github.com/google/uuid"
)

const (
	// WorkspaceCookieName is the cookie holding the opaque workspace ID.
	WorkspaceCookieName = "carecrm_workspace"

	// WorkspaceCookiePath ensures the cookie is sent with all requests.
	WorkspaceCookiePath = "/"
)

// WorkspaceMiddleware attaches a selection Context to every request.
//
// The workspace ID lives in a browser-session cookie. The selection itself
// stays on the server in the Store and is dropped when the workspace goes
// idle, so closing the browser ends the workflow.
type WorkspaceMiddleware struct {
	store    *selection.Store
	logger   *slog.Logger
	isSecure bool // Whether to set Secure flag on cookies (true in production)
}

// NewWorkspaceMiddleware creates a new WorkspaceMiddleware instance.
func NewWorkspaceMiddleware(store *selection.Store, logger *slog.Logger, isSecure bool) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{
		store:    store,
		logger:   logger,
		isSecure: isSecure,
	}
}

// WithWorkspace loads the request's workspace if it is live.
//
// Requests without one get a workspace only when a handler calls
// workspace.Open; the cookie is issued at that point. Read-only requests
// and stray paths never create server-side state.
func (m *WorkspaceMiddleware) WithWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(WorkspaceCookieName); err == nil {
			if parsed, err := uuid.Parse(cookie.Value); err == nil {
				id = parsed.String()
			}
		}

		if id != "" {
			if sel, ok := m.store.Lookup(id); ok {
				next.ServeHTTP(w, r.WithContext(workspace.With(r.Context(), id, sel)))
				return
			}
		}

		open := func() (string, *selection.Context, error) {
			openID := id
			if openID == "" {
				openID = uuid.NewString()
			}
			sel, err := m.store.Get(openID)
			if err != nil {
				return "", nil, domain.Unavailable(err, "middleware.open_workspace", "too many open workspaces")
			}
			if openID != id {
				setWorkspaceCookie(w, openID, m.isSecure)
			}
			metrics.ActiveWorkspaces.Set(float64(m.store.Len()))
			m.logger.Debug("workspace created", "workspace_id", openID)
			return openID, sel, nil
		}
		next.ServeHTTP(w, r.WithContext(workspace.WithOpener(r.Context(), open)))
	})
}

// EndWorkspace drops the workspace's selection and expires its cookie.
// The next change starts a fresh workspace.
func (m *WorkspaceMiddleware) EndWorkspace(w http.ResponseWriter, r *http.Request) {
	if id := workspace.ID(r.Context()); id != "" {
		m.store.Drop(id)
		m.logger.Debug("workspace ended", "workspace_id", id)
	}
	clearWorkspaceCookie(w, m.isSecure)
	metrics.ActiveWorkspaces.Set(float64(m.store.Len()))
}

// setWorkspaceCookie issues a session cookie (no MaxAge), so the browser
// forgets the workspace when it closes.
func setWorkspaceCookie(w http.ResponseWriter, id string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     WorkspaceCookieName,
		Value:    id,
		Path:     WorkspaceCookiePath,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearWorkspaceCookie(w http.ResponseWriter, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     WorkspaceCookieName,
		Value:    "",
		Path:     WorkspaceCookiePath,
		MaxAge:   -1, // Delete immediately
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Stack composes multiple middleware functions into a single middleware.
//
// The first middleware is the outermost (runs first on request, last on
// response):
//
//	stack := Stack(loggingMw.Handler, workspaceMw.WithWorkspace)
//	mux.Handle("GET /reports/medication", stack(reportHandler))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

var _ func(http.Handler) http.Handler = (&WorkspaceMiddleware{}).WithWorkspace
