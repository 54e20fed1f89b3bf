package components

import (
	"context"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classes merges Tailwind class lists so later utilities win over earlier
// conflicting ones ("px-2" then "px-4" yields "px-4").
func Classes(classes ...string) string {
	var parts []string
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return twmerge.Merge(parts...)
}

// Title converts a machine label such as "memory_care" or "given" to title
// case for display.
func Title(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// Tone selects a badge colour scheme.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneInfo    Tone = "info"
)

const badgeBase = "inline-flex items-center gap-1 rounded-full px-2 py-0.5 text-xs font-medium"

func toneClasses(t Tone) string {
	switch t {
	case ToneSuccess:
		return "bg-green-100 text-green-800"
	case ToneWarning:
		return "bg-amber-100 text-amber-800"
	case ToneDanger:
		return "bg-red-100 text-red-800"
	case ToneInfo:
		return "bg-blue-100 text-blue-800"
	default:
		return "bg-gray-100 text-gray-700"
	}
}

// Badge renders a small pill label.
func Badge(label string, tone Tone, extra ...string) templ.Component {
	return Component(func(_ context.Context, h *HTML) {
		h.Raw("<span")
		h.Class(append([]string{badgeBase, toneClasses(tone)}, extra...)...)
		h.Raw(">")
		h.Text(label)
		h.Raw("</span>")
	})
}

const buttonBase = "inline-flex items-center gap-1 rounded-md border border-gray-300 bg-white px-3 py-1.5 text-sm font-medium text-gray-700 hover:bg-gray-50 disabled:cursor-not-allowed disabled:opacity-50"

// ButtonClasses returns the classes for a secondary button, with overrides.
func ButtonClasses(extra ...string) string {
	return Classes(append([]string{buttonBase}, extra...)...)
}
