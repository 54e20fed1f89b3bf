// Package reports renders the medication report page.
package reports

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/templ/components"
	"github.com/DukeRupert/carecrm/internal/templ/partials"
)

// ReportBodyID is the element refreshed after the selection changes.
const ReportBodyID = "report-body"

// MedicationReport renders the full report page for the selected customer.
func MedicationReport(data MedicationReportData) templ.Component {
	body := components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<div class="mb-6 flex flex-col gap-4 md:flex-row md:items-center">`)
		h.Raw(`<div class="flex-1">`)
		h.Render(ctx, partials.CustomerNav(data.Nav))
		h.Raw(`</div>`)
		h.Render(ctx, searchBox())
		h.Raw(`</div><div class="grid gap-6 lg:grid-cols-[1fr_18rem]">`)
		h.Render(ctx, ReportBody(data))
		h.Render(ctx, components.SidebarWidget(data.Sidebar))
		h.Raw(`</div>`)
	})
	return components.Layout(components.LayoutData{
		Title:     "Medication report",
		CSRFToken: data.CSRFToken,
	}, body)
}

// ReportBody renders the header and administrations table. It reloads itself
// from the server whenever the selection changes.
func ReportBody(data MedicationReportData) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		src := "/reports/medication?day=" + data.Day()
		h.Raw(`<section hx-trigger="` + partials.SelectionChangedEvent + ` from:body" hx-target="this" hx-swap="outerHTML"`)
		h.Attr("id", ReportBodyID)
		h.Attr("hx-get", src)
		h.Attr("hx-select", "#"+ReportBodyID)
		h.Raw(`>`)
		h.Render(ctx, ReportHeader(data))
		h.Render(ctx, summary(data.Report.Summary()))
		h.Render(ctx, AdministrationTable(data.Report.Administrations))
		h.Raw(`</section>`)
	})
}

// ReportHeader renders the customer's identity and care details.
func ReportHeader(data MedicationReportData) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		c := data.Report.Customer
		h.Raw(`<header class="flex items-start gap-4 rounded-lg bg-white p-4 shadow-sm">`)
		h.Render(ctx, components.Avatar(components.AvatarData{
			Name:     c.DisplayName(),
			Initials: c.Initials(),
			PhotoURL: data.PhotoURL,
		}))
		h.Raw(`<div class="min-w-0 flex-1"><h1 class="text-xl font-semibold">`)
		h.Text(c.DisplayName())
		h.Raw(`</h1><dl class="mt-2 flex flex-wrap gap-x-6 gap-y-1 text-sm text-gray-600">`)

		if c.Room != "" {
			detail(ctx, h, components.IconRoom, "Room", c.Room)
		}
		detail(ctx, h, components.IconCare, "Care level", c.CareLevel.Label())
		if age := c.AgeOn(data.Today); age >= 0 {
			detail(ctx, h, components.IconUser, "Age", strconv.Itoa(age)+" years")
		}
		detail(ctx, h, components.IconCalendar, "Period", periodLabel(data.Report.Period))
		h.Raw(`</dl>`)

		if len(c.Allergies) > 0 {
			h.Raw(`<div class="mt-3 flex flex-wrap items-center gap-2" data-testid="allergies">`)
			h.Render(ctx, components.Icon(components.IconAlert, "text-red-600"))
			for _, a := range c.Allergies {
				h.Render(ctx, components.Badge(a, components.ToneDanger))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div><a class="` + components.ButtonClasses("shrink-0") + `"`)
		h.Attr("href", "/reports/medication.pdf?day="+data.Day())
		h.Raw(`>`)
		h.Render(ctx, components.Icon(components.IconDownload, "h-4 w-4"))
		h.Raw(`<span>PDF</span></a></header>`)
	})
}

func detail(ctx context.Context, h *components.HTML, icon, term, text string) {
	h.Raw(`<div class="flex items-center gap-1"><dt class="sr-only">`)
	h.Text(term)
	h.Raw(`</dt>`)
	h.Render(ctx, components.Icon(icon, "h-4 w-4 text-gray-400"))
	h.Raw(`<dd>`)
	h.Text(text)
	h.Raw(`</dd></div>`)
}

func periodLabel(p domain.ReportPeriod) string {
	if p.Days() <= 1 {
		return p.From.Format("Mon 2 Jan 2006")
	}
	return p.From.Format("2 Jan") + " – " + p.To.AddDate(0, 0, -1).Format("2 Jan 2006")
}

func summary(s domain.ReportSummary) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<div class="my-4 flex flex-wrap gap-2 text-sm" data-testid="summary">`)
		counts := []struct {
			status domain.AdministrationStatus
			n      int
		}{
			{domain.AdministrationGiven, s.Given},
			{domain.AdministrationRefused, s.Refused},
			{domain.AdministrationOmitted, s.Omitted},
			{domain.AdministrationWithheld, s.Withheld},
			{domain.AdministrationPending, s.Pending},
		}
		for _, c := range counts {
			if c.n == 0 {
				continue
			}
			h.Render(ctx, components.Badge(components.Title(c.status.String())+": "+strconv.Itoa(c.n), StatusTone(c.status)))
		}
		h.Raw(`</div>`)
	})
}

// AdministrationTable renders one row per scheduled dose.
func AdministrationTable(rows []domain.Administration) templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		if len(rows) == 0 {
			h.Raw(`<p class="rounded-lg bg-white p-6 text-center text-sm text-gray-500">No medication rounds scheduled for this period.</p>`)
			return
		}
		h.Raw(`<div class="overflow-x-auto rounded-lg bg-white shadow-sm"><table class="min-w-full divide-y divide-gray-200 text-sm">`)
		h.Raw(`<thead class="bg-gray-50 text-left text-xs font-medium uppercase text-gray-500"><tr>`)
		for _, col := range []string{"Time", "Medication", "Dose", "Route", "Status", "Given by", "Notes"} {
			h.Raw(`<th scope="col" class="px-3 py-2">`)
			h.Text(col)
			h.Raw(`</th>`)
		}
		h.Raw(`</tr></thead><tbody class="divide-y divide-gray-100">`)
		for _, a := range rows {
			h.Raw(`<tr>`)
			cell(h, a.ScheduledAt.Format("15:04"), "whitespace-nowrap tabular-nums")
			cell(h, a.MedicationName, "font-medium")
			cell(h, a.DoseLabel(), "whitespace-nowrap")
			cell(h, components.Title(a.Route), "")
			h.Raw(`<td class="px-3 py-2">`)
			h.Render(ctx, components.Badge(components.Title(a.Status.String()), StatusTone(a.Status)))
			h.Raw(`</td>`)
			cell(h, a.AdministeredBy, "")
			cell(h, strings.TrimSpace(a.Notes), "text-gray-500")
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table></div>`)
	})
}

func cell(h *components.HTML, text, class string) {
	h.Raw(`<td`)
	h.Class("px-3 py-2", class)
	h.Raw(`>`)
	h.Text(text)
	h.Raw(`</td>`)
}

// StatusTone maps an administration status to a badge tone.
func StatusTone(s domain.AdministrationStatus) components.Tone {
	switch s {
	case domain.AdministrationGiven:
		return components.ToneSuccess
	case domain.AdministrationRefused:
		return components.ToneDanger
	case domain.AdministrationOmitted:
		return components.ToneWarning
	case domain.AdministrationWithheld:
		return components.ToneInfo
	default:
		return components.ToneNeutral
	}
}

func searchBox() templ.Component {
	return components.Component(func(ctx context.Context, h *components.HTML) {
		h.Raw(`<div class="relative w-full md:w-72"><label class="sr-only" for="roster-search">Find a customer</label>`)
		h.Raw(`<div class="flex items-center gap-2 rounded-md border border-gray-300 bg-white px-2">`)
		h.Render(ctx, components.Icon(components.IconSearch, "h-4 w-4 text-gray-400"))
		h.Raw(`<input id="roster-search" type="search" name="q" autocomplete="off" placeholder="Find on roster" class="w-full border-0 py-1.5 text-sm focus:ring-0"`)
		h.Raw(` hx-get="/selection/search" hx-trigger="input changed delay:250ms, search" hx-target="#search-results" hx-swap="outerHTML">`)
		h.Raw(`</div><div class="absolute z-10 mt-1 w-full">`)
		h.Render(ctx, partials.SearchResults(partials.SearchResultsData{}))
		h.Raw(`</div></div>`)
	})
}
