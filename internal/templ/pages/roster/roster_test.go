package roster

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/selection"
)

func TestPage(t *testing.T) {
	data := PageData{
		CSRFToken: "tok",
		Carer:     domain.Carer{ID: "c1", Name: "Sam Ortiz", Role: "senior_carer"},
		Day:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Customers: []selection.CustomerRef{
			{CustomerID: "m", FirstName: "Margaret", LastName: "Hale"},
			{CustomerID: "a", FirstName: "Arthur", LastName: "Penn"},
		},
		SelectedID: "a",
	}

	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "Sam Ortiz")
	assert.Contains(t, html, "Senior Carer")
	assert.Contains(t, html, "Saturday 14 March 2026")
	assert.Contains(t, html, `href="/carers/c1/roster/m?day=2026-03-14"`)
	assert.Contains(t, html, `aria-current="true"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("aria-current")))
}

func TestPage_EmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Carer: domain.Carer{Name: "Sam"}}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `data-testid="empty-roster"`)
}
