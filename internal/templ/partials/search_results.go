package partials

import (
	"context"

	"github.com/a-h/templ"

	"github.com/DukeRupert/carecrm/internal/templ/components"
)

// SearchResults renders roster matches as buttons that select the customer
// within the current roster.
func SearchResults(data SearchResultsData) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<div id="search-results">`)
		if data.Query == "" {
			h.Raw(`</div>`)
			return
		}
		if len(data.Results) == 0 {
			h.Raw(`<p class="px-3 py-2 text-sm text-gray-500">No customers match “`)
			h.Text(data.Query)
			h.Raw(`”</p></div>`)
			return
		}

		h.Raw(`<ul class="divide-y divide-gray-100 rounded-md border border-gray-200 bg-white">`)
		for _, ref := range data.Results {
			h.Raw(`<li><form method="post" action="/selection">`)
			h.Render(ctx, components.CSRFField(data.CSRFToken))
			h.Raw(`<input type="hidden" name="customer_id"`)
			h.Attr("value", ref.CustomerID)
			h.Raw(`><button type="submit"`)
			active := ref.CustomerID == data.SelectedID
			h.Class("w-full px-3 py-2 text-left text-sm hover:bg-gray-50", activeClass(active))
			h.Raw(`>`)
			h.Text(fullName(ref.FirstName, ref.LastName))
			h.Raw(`</button></form></li>`)
		}
		h.Raw(`</ul></div>`)
	})
}

func activeClass(active bool) string {
	if active {
		return "bg-indigo-50 font-semibold text-indigo-700 hover:bg-indigo-50"
	}
	return ""
}
