package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("BST", 3600)
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, loc)

	day, err := parseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), day)

	day, err = parseDate(" 2026-02-01 ", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, loc), day)

	_, err = parseDate("2026-13-01", now)
	assert.Error(t, err)
}

func TestBackURL(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/fallback"},
		{"same host", "http://example.com/carers/c1/roster?day=2026-03-14", "/carers/c1/roster?day=2026-03-14"},
		{"relative", "/reports/medication", "/reports/medication"},
		{"other host", "https://evil.test/phish", "/fallback"},
		{"scheme relative", "//evil.test/phish", "/fallback"},
		{"backslash", "/\\evil.test", "/fallback"},
		{"not a path", "mailto:someone", "/fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/selection/next", nil)
			r.Host = "example.com"
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backURL(r, "/fallback"))
		})
	}
}
