package reports

import (
	"context"

	"github.com/a-h/templ"

	"github.com/DukeRupert/carecrm/internal/templ/components"
)

// EmptyState renders the report page when no customer is selected.
func EmptyState(data EmptyStateData) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<div class="grid gap-6 lg:grid-cols-[1fr_18rem]">`)
		h.Raw(`<section class="flex flex-col items-center rounded-lg bg-white p-10 text-center shadow-sm" data-testid="empty-state">`)
		h.Render(ctx, components.Icon(components.IconUser, "h-10 w-10 text-gray-300"))
		h.Raw(`<h1 class="mt-3 text-lg font-semibold">No customer selected</h1>`)
		h.Raw(`<p class="mt-1 text-sm text-gray-500">Choose a customer from your roster to see their medication report.</p>`)
		if data.RosterURL != "" {
			h.Raw(`<a class="` + components.ButtonClasses("mt-4") + `"`)
			h.URLAttr("href", data.RosterURL)
			h.Raw(`>Open roster</a>`)
		}
		h.Raw(`</section>`)
		h.Render(ctx, components.SidebarWidget(data.Sidebar))
		h.Raw(`</div>`)
	})
	return components.Layout(components.LayoutData{
		Title:     "Medication report",
		CSRFToken: data.CSRFToken,
	}, body)
}
