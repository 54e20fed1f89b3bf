package components

import (
	"context"

	"github.com/a-h/templ"
)

// AvatarData describes a customer avatar.
type AvatarData struct {
	Name     string // Alt text
	Initials string // Shown when there is no photo
	PhotoURL string // Thumbnail URL, empty if none on file
}

// Avatar renders the customer photo or an initials placeholder.
func Avatar(data AvatarData, class ...string) templ.Component {
	return Component(func(_ context.Context, h *HTML) {
		base := "h-16 w-16 rounded-full"
		if data.PhotoURL != "" {
			h.Raw("<img")
			h.URLAttr("src", data.PhotoURL)
			h.Attr("alt", data.Name)
			h.Class(append([]string{base, "object-cover"}, class...)...)
			h.Raw(">")
			return
		}
		h.Raw("<div")
		h.Class(append([]string{base, "flex items-center justify-center bg-indigo-100 text-lg font-semibold text-indigo-700"}, class...)...)
		h.Attr("aria-label", data.Name)
		h.Raw(">")
		h.Text(data.Initials)
		h.Raw("</div>")
	})
}
