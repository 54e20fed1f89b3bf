package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFMiddleware_GetIssuesToken(t *testing.T) {
	mw := NewCSRFMiddleware(newTestLogger(), false)

	var token string
	h := mw.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = csrf.Token(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/medication", nil))

	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, token, cookies[0].Value)
}

func TestCSRFMiddleware_PostRequiresMatchingToken(t *testing.T) {
	mw := NewCSRFMiddleware(newTestLogger(), false)

	called := false
	h := mw.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "tok", csrf.Token(r.Context()))
	}))

	post := func(formToken, headerToken string) *httptest.ResponseRecorder {
		form := url.Values{}
		if formToken != "" {
			form.Set(csrf.FormFieldName, formToken)
		}
		req := httptest.NewRequest(http.MethodPost, "/selection/next", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if headerToken != "" {
			req.Header.Set(csrf.HeaderName, headerToken)
		}
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "tok"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post("", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = post("forged", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = post("tok", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	called = false
	rec = post("", "tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
