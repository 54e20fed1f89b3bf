// Package roster renders a carer's customer roster for a shift.
package roster

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/DukeRupert/carecrm/internal/templ/components"
)

// Page renders the roster list. Following a link opens that customer's
// report with the roster as navigation order.
func Page(data PageData) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<header class="mb-4"><h1 class="text-xl font-semibold">`)
		h.Text(data.Carer.Name)
		h.Raw(`</h1><p class="flex items-center gap-1 text-sm text-gray-500">`)
		h.Render(ctx, components.Icon(components.IconCalendar, "h-4 w-4"))
		h.Text(data.Day.Format("Monday 2 January 2006"))
		if data.Carer.Role != "" {
			h.Raw(` · `)
			h.Text(components.Title(data.Carer.Role))
		}
		h.Raw(`</p></header>`)

		if len(data.Customers) == 0 {
			h.Raw(`<p class="rounded-lg bg-white p-6 text-center text-sm text-gray-500" data-testid="empty-roster">No customers on this roster.</p>`)
			return
		}

		h.Raw(`<ol class="divide-y divide-gray-100 rounded-lg bg-white shadow-sm">`)
		for i, c := range data.Customers {
			selected := c.CustomerID == data.SelectedID
			h.Raw(`<li><a`)
			h.Class("flex items-center gap-3 px-4 py-3 hover:bg-gray-50", rowClass(selected))
			h.Attr("href", data.OpenURL(c.CustomerID))
			if selected {
				h.Raw(` aria-current="true"`)
			}
			h.Raw(`><span class="w-6 text-right text-xs tabular-nums text-gray-400">`)
			h.Text(strconv.Itoa(i + 1))
			h.Raw(`</span><span>`)
			h.Text(c.FirstName + " " + c.LastName)
			h.Raw(`</span></a></li>`)
		}
		h.Raw(`</ol>`)
	})
	return components.Layout(components.LayoutData{
		Title:     data.Carer.Name + " roster",
		CSRFToken: data.CSRFToken,
	}, body)
}

func rowClass(selected bool) string {
	if selected {
		return "bg-indigo-50 font-semibold text-indigo-700 hover:bg-indigo-100"
	}
	return ""
}
