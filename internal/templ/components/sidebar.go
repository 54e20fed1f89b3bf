package components

import (
	"context"

	"github.com/a-h/templ"
)

// SidebarData contains data for the marketing sidebar widget.
type SidebarData struct {
	Headline     string // Campaign headline
	Body         string // Campaign copy
	LinkURL      string // Call to action, omitted when empty
	LinkLabel    string
	CustomerName string // Selected customer, empty when none
}

// SidebarWidget renders the marketing sidebar. It reads the selected
// customer's name but never changes the selection.
func SidebarWidget(data SidebarData) templ.Component {
	return Component(func(_ context.Context, h *HTML) {
		if data.Headline == "" && data.Body == "" {
			return
		}
		h.Raw(`<aside id="sidebar-widget" class="rounded-lg border border-indigo-100 bg-indigo-50 p-4 text-sm">`)
		if data.CustomerName != "" {
			h.Raw(`<p class="mb-2 text-xs uppercase tracking-wide text-indigo-500">For `)
			h.Text(data.CustomerName)
			h.Raw(`</p>`)
		}
		if data.Headline != "" {
			h.Raw(`<h3 class="font-semibold text-indigo-900">`)
			h.Text(data.Headline)
			h.Raw(`</h3>`)
		}
		if data.Body != "" {
			h.Raw(`<p class="mt-1 text-indigo-800">`)
			h.Text(data.Body)
			h.Raw(`</p>`)
		}
		if data.LinkURL != "" {
			label := data.LinkLabel
			if label == "" {
				label = "Learn more"
			}
			h.Raw(`<a class="mt-3 inline-block font-medium text-indigo-700 underline" rel="noopener" target="_blank"`)
			h.URLAttr("href", data.LinkURL)
			h.Raw(`>`)
			h.Text(label)
			h.Raw(`</a>`)
		}
		h.Raw(`</aside>`)
	})
}
