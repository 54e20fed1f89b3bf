package partials

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/carecrm/internal/selection"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var roster = []selection.CustomerRef{
	{CustomerID: "a", FirstName: "Margaret", LastName: "Hale"},
	{CustomerID: "b", FirstName: "Arthur", LastName: "Penn"},
	{CustomerID: "c", FirstName: "Edith", LastName: "Crane"},
}

func stateAt(id string) selection.State {
	ctx := selection.New()
	return ctx.Establish(id, roster)
}

func TestCustomerNavData(t *testing.T) {
	d := CustomerNavData{State: stateAt("b")}
	assert.Equal(t, "Arthur Penn", d.Name())
	assert.Equal(t, "2 of 3", d.Position())
	assert.Equal(t, "Margaret Hale", d.PreviousName())
	assert.Equal(t, "Edith Crane", d.NextName())

	first := CustomerNavData{State: stateAt("a")}
	assert.Equal(t, "", first.PreviousName())

	empty := CustomerNavData{}
	assert.Equal(t, "", empty.Name())
	assert.Equal(t, "", empty.Position())
	assert.Equal(t, "", empty.NextName())
}

func TestCustomerNav_Selected(t *testing.T) {
	html := render(t, CustomerNav(CustomerNavData{State: stateAt("a"), CSRFToken: "tok"}))

	assert.Contains(t, html, `id="customer-nav"`)
	assert.Contains(t, html, "Margaret Hale")
	assert.Contains(t, html, "1 of 3")
	assert.Contains(t, html, `hx-post="/selection/next"`)
	assert.Contains(t, html, `hx-post="/selection/clear"`)
	assert.Contains(t, html, `name="csrf_token" value="tok"`)
	assert.Equal(t, 1, bytes.Count([]byte(html), []byte(" disabled>")), "only previous is disabled at the start")
}

func TestCustomerNav_Unselected(t *testing.T) {
	html := render(t, CustomerNav(CustomerNavData{}))
	assert.Contains(t, html, "No customer selected")
	assert.NotContains(t, html, "/selection/next")
}

func TestSearchResults(t *testing.T) {
	assert.Equal(t, `<div id="search-results"></div>`, render(t, SearchResults(SearchResultsData{})))

	html := render(t, SearchResults(SearchResultsData{Query: "zz"}))
	assert.Contains(t, html, "No customers match")

	html = render(t, SearchResults(SearchResultsData{
		Query:      "ar",
		Results:    roster[:2],
		SelectedID: "b",
		CSRFToken:  "tok",
	}))
	assert.Contains(t, html, `name="customer_id" value="a"`)
	assert.Contains(t, html, "Arthur Penn")
	assert.Contains(t, html, "bg-indigo-50")
}
