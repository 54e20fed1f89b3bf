package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
)

type recordingWarmer struct {
	ids []string
}

func (w *recordingWarmer) EnqueueWarmThumbnails(ids []string) (int, error) {
	w.ids = append(w.ids, ids...)
	return len(ids), nil
}

func newRosterHandler(rs *mockRosterService) (*RosterHandler, *http.ServeMux) {
	h := NewRosterHandler(rs, nil, discardLogger(), false)
	h.now = func() time.Time { return testNow }
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, func(next http.Handler) http.Handler { return next })
	return h, mux
}

func rosterFor(carerID string) *mockRosterService {
	return &mockRosterService{
		ForCarerFunc: func(_ context.Context, id string, day time.Time) (*service.Roster, error) {
			if id != carerID {
				return nil, domain.NotFound("op", "carer", id)
			}
			return &service.Roster{
				Carer:     domain.Carer{ID: carerID, Name: "Sam Ortiz"},
				Day:       domain.DayPeriod(day).From,
				Customers: testRoster,
			}, nil
		},
	}
}

func TestRosterHandler_Show(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))
	sel := selection.New()
	sel.Establish("a", testRoster)
	before := sel.Snapshot()

	req := inWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster?day=2026-03-12", nil), sel)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sam Ortiz")
	assert.Contains(t, body, "Thursday 12 March 2026")
	assert.Contains(t, body, `href="/carers/c1/roster/m?day=2026-03-12"`)
	assert.Contains(t, body, `aria-current="true"`)
	assert.Equal(t, before, sel.Snapshot(), "viewing a roster does not change the selection")
}

func TestRosterHandler_Show_Errors(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carers/c2/roster", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carers/c1/roster?day=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRosterHandler_Open(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))
	sel := selection.New()

	req := inWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster/e", nil), sel)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/reports/medication?day=2026-03-14", rec.Header().Get("Location"))

	state := sel.Snapshot()
	assert.Equal(t, "e", state.CustomerID)
	assert.Equal(t, "Edith", state.FirstName)
	assert.Equal(t, testRoster, state.CustomerList)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CarerCookieName, cookies[0].Name)
	assert.Equal(t, "c1", cookies[0].Value)
}

func TestRosterHandler_Open_NotOnRoster(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))
	sel := selection.New()

	req := inWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster/stranger", nil), sel)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "stranger", sel.Snapshot().CustomerID)
	assert.Equal(t, -1, sel.Snapshot().Index())
}

func TestRosterHandler_Show_WarmsThumbnails(t *testing.T) {
	h, mux := newRosterHandler(rosterFor("c1"))
	warmer := &recordingWarmer{}
	h.warmer = warmer

	req := httptest.NewRequest(http.MethodGet, "/carers/c1/roster", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"m", "a", "e"}, warmer.ids)
}

func TestRosterHandler_Open_CreatesWorkspaceOnlyOnOpen(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))
	sel := selection.New()
	opened := 0

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, lazyWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster", nil), sel, &opened))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, 0, opened, "viewing a roster does not create a workspace")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, lazyWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster/a", nil), sel, &opened))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, opened)
	assert.Equal(t, "a", sel.Snapshot().CustomerID)
}

func TestRosterHandler_Open_RejectsCrossSite(t *testing.T) {
	_, mux := newRosterHandler(rosterFor("c1"))
	sel := selection.New()
	sel.Establish("m", testRoster)
	before := sel.Snapshot()

	for _, site := range []string{"cross-site", "same-site"} {
		req := inWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster/e", nil), sel)
		req.Header.Set("Sec-Fetch-Site", site)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, site)
	}
	assert.Equal(t, before, sel.Snapshot())

	req := inWorkspace(httptest.NewRequest(http.MethodGet, "/carers/c1/roster/e", nil), sel)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "e", sel.Snapshot().CustomerID)
}
