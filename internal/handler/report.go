package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/report"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/templ/components"
	"github.com/DukeRupert/carecrm/internal/templ/pages/reports"
	"github.com/DukeRupert/carecrm/internal/templ/partials"
	"github.com/DukeRupert/carecrm/internal/workspace"
)

// SidebarConfig holds the marketing widget copy shown beside reports.
type SidebarConfig struct {
	Headline string
	Body     string
	LinkURL  string
}

// =============================================================================
// Handler Configuration
// =============================================================================

// ReportHandler serves the medication report for the selected customer.
type ReportHandler struct {
	reportService service.MedicationReportService
	photoService  service.PhotoService
	generator     report.Generator
	sidebar       SidebarConfig
	logger        *slog.Logger
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(
	reportService service.MedicationReportService,
	photoService service.PhotoService,
	generator report.Generator,
	sidebar SidebarConfig,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		photoService:  photoService,
		generator:     generator,
		sidebar:       sidebar,
		logger:        logger,
		now:           time.Now,
	}
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+ReportPath, h.Show)
	mux.HandleFunc("GET "+ReportPath+".pdf", h.PDF)
}

// =============================================================================
// GET /reports/medication - Report Page
// =============================================================================

// Show renders the report for the selected customer, or the empty state
// when nothing is selected.
func (h *ReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	state := h.snapshot(r)

	if !state.Selected() {
		// The report body reloads itself after a selection change; once the
		// selection is cleared the whole page has to switch to the empty
		// state.
		if IsHTMX(r) {
			w.Header().Set("HX-Refresh", "true")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		data := reports.EmptyStateData{
			CSRFToken: csrf.Token(r.Context()),
			RosterURL: rosterURL(r),
			Sidebar:   h.sidebarData(""),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := reports.EmptyState(data).Render(r.Context(), w); err != nil {
			h.logger.Error("failed to render empty state", "error", err)
			InternalErrorResponse(w, r, h.logger, err)
		}
		return
	}

	period, err := parsePeriod(r, h.now())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	rep, err := h.reportService.Build(r.Context(), state.CustomerID, period)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	var photoURL string
	if rep.Customer.HasPhoto() {
		photoURL = "/customers/" + url.PathEscape(rep.Customer.ID) + "/photo"
	}

	token := csrf.Token(r.Context())
	data := reports.MedicationReportData{
		CSRFToken: token,
		Nav:       partials.CustomerNavData{State: state, CSRFToken: token},
		Report:    rep,
		PhotoURL:  photoURL,
		Sidebar:   h.sidebarData(rep.Customer.DisplayName()),
		Today:     h.now(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reports.MedicationReport(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render medication report", "error", err)
		InternalErrorResponse(w, r, h.logger, err)
		return
	}
	metrics.ReportRendered("html")
}

// =============================================================================
// GET /reports/medication.pdf - Printable Export
// =============================================================================

// PDF renders the printable report for the selected customer.
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	const op = "ReportHandler.PDF"

	state := h.snapshot(r)
	if !state.Selected() {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "No customer is selected"))
		return
	}

	period, err := parsePeriod(r, h.now())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	rep, err := h.reportService.Build(r.Context(), state.CustomerID, period)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	doc := &report.Document{Report: rep}
	if rep.Customer.HasPhoto() {
		thumb, err := h.photoService.Thumbnail(r.Context(), rep.Customer.ID)
		if err != nil {
			h.logger.Warn("report photo unavailable", "error", err, "customer_id", rep.Customer.ID)
		} else {
			doc.Photo = &report.ImageData{Data: thumb.Data, ContentType: thumb.ContentType}
		}
	}

	var buf bytes.Buffer
	if _, err := h.generator.Generate(r.Context(), doc, &buf); err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to generate report"))
		return
	}

	format := h.generator.Format()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(rep, format)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write report", "error", err)
		return
	}
	metrics.ReportRendered(string(format))
}

// =============================================================================
// Helper Methods
// =============================================================================

func (h *ReportHandler) snapshot(r *http.Request) selection.State {
	return workspace.Snapshot(r.Context())
}

func (h *ReportHandler) sidebarData(customerName string) components.SidebarData {
	return components.SidebarData{
		Headline:     h.sidebar.Headline,
		Body:         h.sidebar.Body,
		LinkURL:      h.sidebar.LinkURL,
		CustomerName: customerName,
	}
}

// rosterURL links back to the last roster opened in this browser.
func rosterURL(r *http.Request) string {
	c, err := r.Cookie(CarerCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	return "/carers/" + url.PathEscape(c.Value) + "/roster"
}

// reportFilename builds e.g. "medication-hale-2026-03-14.pdf".
func reportFilename(rep *domain.MedicationReport, format domain.ReportFormat) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '-':
			return '-'
		default:
			return -1
		}
	}, rep.Customer.LastName)
	if name == "" {
		name = "customer"
	}
	return "medication-" + name + "-" + rep.Period.From.Format(time.DateOnly) + "." + string(format)
}
