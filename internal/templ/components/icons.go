package components

import (
	"context"

	"github.com/a-h/templ"
)

// Icon names accepted by Icon.
const (
	IconUser     = "user"
	IconCalendar = "calendar"
	IconAlert    = "alert"
	IconRoom     = "room"
	IconCare     = "care"
	IconPrev     = "chevron-left"
	IconNext     = "chevron-right"
	IconClose    = "x-mark"
	IconDownload = "download"
	IconSearch   = "search"
)

// Outline icon paths on a 24x24 grid.
var iconPaths = map[string]string{
	IconUser:     "M15.75 6a3.75 3.75 0 1 1-7.5 0 3.75 3.75 0 0 1 7.5 0ZM4.501 20.118a7.5 7.5 0 0 1 14.998 0A17.933 17.933 0 0 1 12 21.75c-2.676 0-5.216-.584-7.499-1.632Z",
	IconCalendar: "M6.75 3v2.25M17.25 3v2.25M3 18.75V7.5a2.25 2.25 0 0 1 2.25-2.25h13.5A2.25 2.25 0 0 1 21 7.5v11.25m-18 0A2.25 2.25 0 0 0 5.25 21h13.5A2.25 2.25 0 0 0 21 18.75m-18 0v-7.5A2.25 2.25 0 0 1 5.25 9h13.5A2.25 2.25 0 0 1 21 11.25v7.5",
	IconAlert:    "M12 9v3.75m-9.303 3.376c-.866 1.5.217 3.374 1.948 3.374h14.71c1.73 0 2.813-1.874 1.948-3.374L13.949 3.378c-.866-1.5-3.032-1.5-3.898 0L2.697 16.126ZM12 15.75h.007v.008H12v-.008Z",
	IconRoom:     "m2.25 12 8.954-8.955c.44-.439 1.152-.439 1.591 0L21.75 12M4.5 9.75v10.125c0 .621.504 1.125 1.125 1.125H9.75v-4.875c0-.621.504-1.125 1.125-1.125h2.25c.621 0 1.125.504 1.125 1.125V21h4.125c.621 0 1.125-.504 1.125-1.125V9.75M8.25 21h8.25",
	IconCare:     "M21 8.25c0-2.485-2.099-4.5-4.688-4.5-1.935 0-3.597 1.126-4.312 2.733-.715-1.607-2.377-2.733-4.313-2.733C5.1 3.75 3 5.765 3 8.25c0 7.22 9 12 9 12s9-4.78 9-12Z",
	IconPrev:     "M15.75 19.5 8.25 12l7.5-7.5",
	IconNext:     "m8.25 4.5 7.5 7.5-7.5 7.5",
	IconClose:    "M6 18 18 6M6 6l12 12",
	IconDownload: "M3 16.5v2.25A2.25 2.25 0 0 0 5.25 21h13.5A2.25 2.25 0 0 0 21 18.75V16.5M16.5 12 12 16.5m0 0L7.5 12m4.5 4.5V3",
	IconSearch:   "m21 21-5.197-5.197m0 0A7.5 7.5 0 1 0 5.196 5.196a7.5 7.5 0 0 0 10.607 10.607Z",
}

// Icon renders an inline SVG icon. Unknown names render nothing.
func Icon(name string, class ...string) templ.Component {
	return Component(func(_ context.Context, h *HTML) {
		d, ok := iconPaths[name]
		if !ok {
			return
		}
		h.Raw(`<svg xmlns="http://www.w3.org/2000/svg" fill="none" viewBox="0 0 24 24" stroke-width="1.5" stroke="currentColor" aria-hidden="true"`)
		h.Attr("data-icon", name)
		h.Class(append([]string{"h-5 w-5 shrink-0"}, class...)...)
		h.Raw(`><path stroke-linecap="round" stroke-linejoin="round"`)
		h.Attr("d", d)
		h.Raw(`/></svg>`)
	})
}
