package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/workspace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorkspaceMiddleware(t *testing.T) (*WorkspaceMiddleware, *selection.Store) {
	t.Helper()
	store, err := selection.NewStore(selection.DefaultStoreConfig(), newTestLogger())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return NewWorkspaceMiddleware(store, newTestLogger(), false), store
}

func workspaceCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == WorkspaceCookieName {
			return c
		}
	}
	return nil
}

func TestWithWorkspace_NoCookie_ReadsDoNotCreateWorkspace(t *testing.T) {
	mw, store := newTestWorkspaceMiddleware(t)

	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, workspace.Selection(r.Context()))
		assert.False(t, workspace.Snapshot(r.Context()).Selected())
		http.NotFound(w, r)
	}))

	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
		require.Nil(t, workspaceCookie(t, rec))
	}
	assert.Equal(t, 0, store.Len())
}

func TestWithWorkspace_NoCookie_OpenIssuesWorkspace(t *testing.T) {
	mw, store := newTestWorkspaceMiddleware(t)

	var gotID string
	var gotSel *selection.Context
	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sel, err := workspace.Open(r.Context())
		require.NoError(t, err)
		gotSel = sel
		gotID = workspace.ID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/selection", nil))

	cookie := workspaceCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, gotID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 0, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	_, err := uuid.Parse(gotID)
	assert.NoError(t, err)
	require.NotNil(t, gotSel)
	found, ok := store.Lookup(gotID)
	require.True(t, ok)
	assert.Same(t, found, gotSel)
	assert.Equal(t, 1, store.Len())
}

func TestWithWorkspace_EvictedCookie_ReopensSameID(t *testing.T) {
	mw, store := newTestWorkspaceMiddleware(t)
	id := uuid.NewString()

	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, workspace.Selection(r.Context()))
		_, err := workspace.Open(r.Context())
		require.NoError(t, err)
	}))

	req := httptest.NewRequest(http.MethodPost, "/selection/next", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookieName, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Nil(t, workspaceCookie(t, rec), "the existing cookie is kept")
	_, ok := store.Lookup(id)
	assert.True(t, ok)
}

func TestWithWorkspace_StoreFull(t *testing.T) {
	cfg := selection.DefaultStoreConfig()
	cfg.MaxWorkspaces = 1
	store, err := selection.NewStore(cfg, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(store.Close)
	mw := NewWorkspaceMiddleware(store, newTestLogger(), false)

	_, err = store.Get(uuid.NewString())
	require.NoError(t, err)

	var openErr error
	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, openErr = workspace.Open(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/selection", nil))

	assert.Equal(t, domain.EUNAVAIL, domain.ErrorCode(openErr))
	assert.ErrorIs(t, openErr, selection.ErrStoreFull)
	assert.Nil(t, workspaceCookie(t, rec))
	assert.Equal(t, 1, store.Len())
}

func TestWithWorkspace_ExistingCookie_ReusesSelection(t *testing.T) {
	mw, store := newTestWorkspaceMiddleware(t)
	id := uuid.NewString()
	sel, err := store.Get(id)
	require.NoError(t, err)
	sel.Establish("B", []selection.CustomerRef{{CustomerID: "A"}, {CustomerID: "B"}})

	var got selection.State
	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = workspace.Selection(r.Context()).Snapshot()
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookieName, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Nil(t, workspaceCookie(t, rec))
	assert.Equal(t, "B", got.CustomerID)
}

func TestWithWorkspace_MalformedCookie_Replaced(t *testing.T) {
	mw, _ := newTestWorkspaceMiddleware(t)

	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := workspace.Open(r.Context())
		require.NoError(t, err)
	}))

	req := httptest.NewRequest(http.MethodPost, "/selection", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookie := workspaceCookie(t, rec)
	require.NotNil(t, cookie)
	assert.NotEqual(t, "../../etc", cookie.Value)
}

func TestWithWorkspace_SeparateWorkspacesAreIsolated(t *testing.T) {
	mw, _ := newTestWorkspaceMiddleware(t)
	roster := []selection.CustomerRef{{CustomerID: "A"}, {CustomerID: "B"}}

	h := mw.WithWorkspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pick := r.URL.Query().Get("pick"); pick != "" {
			sel, err := workspace.Open(r.Context())
			require.NoError(t, err)
			sel.Establish(pick, roster)
		}
		_, _ = io.WriteString(w, workspace.Snapshot(r.Context()).CustomerID)
	}))

	one, two := uuid.NewString(), uuid.NewString()
	send := func(id, target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(&http.Cookie{Name: WorkspaceCookieName, Value: id})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Body.String()
	}

	assert.Equal(t, "A", send(one, "/?pick=A"))
	assert.Equal(t, "", send(two, "/"))
	assert.Equal(t, "A", send(one, "/"))
}

func TestEndWorkspace_DropsSelectionAndCookie(t *testing.T) {
	mw, store := newTestWorkspaceMiddleware(t)
	id := uuid.NewString()
	sel, err := store.Get(id)
	require.NoError(t, err)
	sel.Establish("A", []selection.CustomerRef{{CustomerID: "A"}})

	h := mw.WithWorkspace(http.HandlerFunc(mw.EndWorkspace))

	req := httptest.NewRequest(http.MethodPost, "/selection/end", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookieName, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookie := workspaceCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.False(t, sel.Snapshot().Selected())
	_, ok := store.Lookup(id)
	assert.False(t, ok)
}

func TestStack_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Stack(mark("outer"), mark("inner"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
