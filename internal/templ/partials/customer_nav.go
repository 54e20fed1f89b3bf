// Package partials holds the htmx fragments that are swapped into pages
// without a full reload.
package partials

import (
	"context"

	"github.com/a-h/templ"

	"github.com/DukeRupert/carecrm/internal/templ/components"
)

// CustomerNavID is the element id the navigation partial replaces.
const CustomerNavID = "customer-nav"

// SelectionChangedEvent is sent in HX-Trigger when the selection moves so the
// report body can reload itself.
const SelectionChangedEvent = "selection-changed"

// CustomerNav renders previous/next/clear controls for the selection. Each
// control is a plain form so it works without JavaScript; htmx swaps the
// whole nav in place.
func CustomerNav(data CustomerNavData) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<nav class="flex flex-wrap items-center gap-3" hx-target="this" hx-swap="outerHTML"`)
		h.Attr("id", CustomerNavID)
		h.Raw(`>`)

		if !data.State.Selected() {
			h.Raw(`<p class="text-sm text-gray-500">No customer selected</p></nav>`)
			return
		}

		navButton(ctx, h, data, "/selection/previous", components.IconPrev, "Previous", data.PreviousName(), !data.State.HasPrevious())

		h.Raw(`<div class="min-w-0 flex-1 text-center"><p class="truncate font-semibold" data-testid="selected-name">`)
		h.Text(data.Name())
		h.Raw(`</p>`)
		if pos := data.Position(); pos != "" {
			h.Raw(`<p class="text-xs text-gray-500">`)
			h.Text(pos)
			h.Raw(`</p>`)
		}
		h.Raw(`</div>`)

		navButton(ctx, h, data, "/selection/next", components.IconNext, "Next", data.NextName(), !data.State.HasNext())
		navButton(ctx, h, data, "/selection/clear", components.IconClose, "Close", "", false)

		h.Raw(`</nav>`)
	})
}

func navButton(ctx context.Context, h *components.HTML, data CustomerNavData, action, icon, label, hint string, disabled bool) {
	h.Raw(`<form method="post"`)
	h.Attr("action", action)
	h.Attr("hx-post", action)
	h.Raw(`>`)
	h.Render(ctx, components.CSRFField(data.CSRFToken))
	h.Raw(`<button type="submit"`)
	h.Attr("class", components.ButtonClasses())
	if hint != "" {
		h.Attr("title", hint)
	}
	if disabled {
		h.Raw(` disabled`)
	}
	h.Raw(`>`)
	h.Render(ctx, components.Icon(icon, "h-4 w-4"))
	h.Raw(`<span>`)
	h.Text(label)
	h.Raw(`</span></button></form>`)
}
