package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/templ/pages/roster"
	"github.com/DukeRupert/carecrm/internal/workspace"
)

// CarerCookieName remembers the last roster opened so pages can link back
// to it.
const CarerCookieName = "carecrm_carer"

// ThumbnailWarmer queues background generation of customer photo
// thumbnails.
type ThumbnailWarmer interface {
	EnqueueWarmThumbnails(customerIDs []string) (int, error)
}

// RosterHandler serves carer rosters.
type RosterHandler struct {
	rosterService service.RosterService
	warmer        ThumbnailWarmer
	logger        *slog.Logger
	isSecure      bool
	now           func() time.Time
}

// NewRosterHandler creates a new RosterHandler. warmer may be nil.
func NewRosterHandler(
	rosterService service.RosterService,
	warmer ThumbnailWarmer,
	logger *slog.Logger,
	isSecure bool,
) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		warmer:        warmer,
		logger:        logger,
		isSecure:      isSecure,
		now:           time.Now,
	}
}

// RegisterRoutes registers roster routes.
func (h *RosterHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /carers/{carerID}/roster", h.Show)
	mux.Handle("GET /carers/{carerID}/roster/{customerID}", limit(http.HandlerFunc(h.Open)))
}

// =============================================================================
// GET /carers/{carerID}/roster - Roster List
// =============================================================================

// Show renders the carer's roster. It reads the selection to highlight the
// current customer but never changes it.
func (h *RosterHandler) Show(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r, h.now())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	rs, err := h.rosterService.ForCarer(r.Context(), r.PathValue("carerID"), day)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.warmThumbnails(rs.Customers)

	if AcceptsJSON(r) {
		writeJSON(w, http.StatusOK, rs.Customers)
		return
	}

	var selectedID string
	if sel := workspace.SelectionFromRequest(r); sel != nil {
		selectedID = sel.Snapshot().CustomerID
	}

	data := roster.PageData{
		CSRFToken:  csrf.Token(r.Context()),
		Carer:      rs.Carer,
		Day:        rs.Day,
		Customers:  rs.Customers,
		SelectedID: selectedID,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := roster.Page(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render roster page", "error", err)
		InternalErrorResponse(w, r, h.logger, err)
	}
}

// =============================================================================
// GET /carers/{carerID}/roster/{customerID} - Open Customer
// =============================================================================

// Open selects a customer with the carer's roster as navigation order and
// redirects to the medication report.
func (h *RosterHandler) Open(w http.ResponseWriter, r *http.Request) {
	// A GET carries no CSRF token, so links from other sites are refused.
	if csrf.IsCrossSite(r) {
		h.logger.Warn("cross-site roster open rejected", "path", r.URL.Path)
		ForbiddenResponse(w, r, h.logger, "Open customers from the roster page.")
		return
	}

	day, err := parseDay(r, h.now())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	carerID := r.PathValue("carerID")
	rs, err := h.rosterService.ForCarer(r.Context(), carerID, day)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	customerID := r.PathValue("customerID")
	if !slices.ContainsFunc(rs.Customers, func(c selection.CustomerRef) bool { return c.CustomerID == customerID }) {
		h.logger.Info("opened customer is not on roster",
			"carer_id", carerID,
			"customer_id", customerID,
			"day", rs.Day.Format(time.DateOnly),
		)
	}

	sel, err := workspace.Open(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	before := sel.Snapshot().Revision
	state := sel.Establish(customerID, rs.Customers)
	metrics.SelectionApplied(selection.OpEstablish, state.Revision != before)

	http.SetCookie(w, &http.Cookie{
		Name:     CarerCookieName,
		Value:    url.PathEscape(rs.Carer.ID),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isSecure,
		SameSite: http.SameSiteLaxMode,
	})

	target := ReportPath + "?day=" + rs.Day.Format(time.DateOnly)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// warmThumbnails queues thumbnail generation for every customer on the
// roster so stepping through it does not wait on image resizing.
func (h *RosterHandler) warmThumbnails(customers []selection.CustomerRef) {
	if h.warmer == nil || len(customers) == 0 {
		return
	}
	ids := make([]string, len(customers))
	for i, c := range customers {
		ids[i] = c.CustomerID
	}
	queued, err := h.warmer.EnqueueWarmThumbnails(ids)
	if err != nil {
		h.logger.Warn("failed to queue thumbnail warm-up", "error", err, "queued", queued, "total", len(ids))
	}
}
