package components

import (
	"context"
	"encoding/json"

	"github.com/a-h/templ"
)

// LayoutData contains data for the page shell.
type LayoutData struct {
	Title     string
	CSRFToken string
}

// Layout wraps a page body in the document shell. htmx requests from the page
// send the CSRF token in the X-CSRF-Token header.
func Layout(data LayoutData, body templ.Component) templ.Component {
	return Component(func(ctx context.Context, h *HTML) {
		title := "carecrm"
		if data.Title != "" {
			title = data.Title + " · carecrm"
		}
		headers, _ := json.Marshal(map[string]string{"X-CSRF-Token": data.CSRFToken})

		h.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<meta name="csrf-token"`)
		h.Attr("content", data.CSRFToken)
		h.Raw(`><title>`)
		h.Text(title)
		h.Raw(`</title><link rel="stylesheet" href="/static/css/app.css">`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script></head>`)
		h.Raw(`<body class="min-h-screen bg-gray-50 text-gray-900"`)
		h.Attr("hx-headers", string(headers))
		h.Raw(`><main class="mx-auto max-w-6xl px-4 py-6">`)
		h.Render(ctx, body)
		h.Raw(`</main></body></html>`)
	})
}

// CSRFField renders the hidden form field for plain form posts.
func CSRFField(token string) templ.Component {
	return Component(func(_ context.Context, h *HTML) {
		h.Raw(`<input type="hidden" name="csrf_token"`)
		h.Attr("value", token)
		h.Raw(`>`)
	})
}
