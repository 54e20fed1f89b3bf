// Package components holds the shared view building blocks: the page layout,
// icons, badges, the customer avatar and the marketing sidebar widget.
//
// Components are plain templ.Component values so handlers render them the
// same way regardless of which package defines them.
package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HTML writes markup for a component and keeps the first write error.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes s without escaping.
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s with HTML escaping.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Int writes an integer.
func (h *HTML) Int(n int) {
	h.Raw(strconv.Itoa(n))
}

// Attr writes ` name="value"` with the value escaped.
func (h *HTML) Attr(name, value string) {
	h.Raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// URLAttr writes a URL attribute, replacing unsafe schemes.
func (h *HTML) URLAttr(name, url string) {
	h.Attr(name, string(templ.URL(url)))
}

// Class writes a class attribute unless the class list is empty.
func (h *HTML) Class(classes ...string) {
	if c := Classes(classes...); c != "" {
		h.Attr("class", c)
	}
}

// Render renders a child component into the same writer.
func (h *HTML) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error encountered.
func (h *HTML) Err() error {
	return h.err
}

// Component adapts a markup function to templ.Component.
func Component(fn func(ctx context.Context, h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		fn(ctx, h)
		return h.Err()
	})
}
