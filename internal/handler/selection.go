// Package handler contains HTTP handlers for the carer workspace.
//
// This file implements the selection endpoints that establish, move and
// clear the customer a carer is working with.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/templ/partials"
	"github.com/DukeRupert/carecrm/internal/workspace"
)

// maxSelectionBody bounds JSON establish requests. A roster of a few
// hundred customers fits comfortably.
const maxSelectionBody = 256 << 10

// ReportPath is where plain form posts land when there is no usable Referer.
const ReportPath = "/reports/medication"

// =============================================================================
// Handler Configuration
// =============================================================================

// SelectionHandler handles selection HTTP requests.
type SelectionHandler struct {
	rosterService service.RosterService
	logger        *slog.Logger
	now           func() time.Time
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(
	rosterService service.RosterService,
	logger *slog.Logger,
) *SelectionHandler {
	return &SelectionHandler{
		rosterService: rosterService,
		logger:        logger,
		now:           time.Now,
	}
}

// RegisterRoutes registers selection routes. limit wraps the mutating
// routes, typically with per-IP rate limiting.
func (h *SelectionHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /selection", h.Show)
	mux.HandleFunc("GET /selection/search", h.Search)
	mux.Handle("POST /selection", limit(http.HandlerFunc(h.Establish)))
	mux.Handle("POST /selection/next", limit(http.HandlerFunc(h.Next)))
	mux.Handle("POST /selection/previous", limit(http.HandlerFunc(h.Previous)))
	mux.Handle("POST /selection/clear", limit(http.HandlerFunc(h.Clear)))
}

// =============================================================================
// GET /selection - Snapshot
// =============================================================================

// Show returns the current selection. htmx requests get the navigation
// partial, everyone else the JSON snapshot.
func (h *SelectionHandler) Show(w http.ResponseWriter, r *http.Request) {
	state := workspace.Snapshot(r.Context())
	if IsHTMX(r) {
		h.renderNav(w, r, state)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// =============================================================================
// POST /selection - Establish
// =============================================================================

// establishRequest is the body of POST /selection.
//
// With CarerID the roster is that carer's list for Day. Otherwise
// CustomerList is used, resolving any entries sent without names. With
// neither, the current roster is kept and only the selection moves.
type establishRequest struct {
	CustomerID   string                  `json:"customer_id"`
	CarerID      string                  `json:"carer_id"`
	Day          string                  `json:"day"`
	CustomerList []selection.CustomerRef `json:"customer_list"`
}

// Establish sets the selected customer and the roster used for navigation.
func (h *SelectionHandler) Establish(w http.ResponseWriter, r *http.Request) {
	const op = "SelectionHandler.Establish"

	req, err := decodeEstablish(w, r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	roster, err := h.rosterFor(r, req, workspace.Snapshot(r.Context()))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	sel := h.open(w, r)
	if sel == nil {
		return
	}

	before := sel.Snapshot().Revision
	state := sel.Establish(req.CustomerID, roster)
	h.applied(w, r, selection.OpEstablish, before, state)
	h.logger.Debug("selection established",
		"op", op,
		"workspace_id", workspace.ID(r.Context()),
		"customer_id", state.CustomerID,
		"roster_size", len(state.CustomerList),
	)
	h.respond(w, r, state)
}

func decodeEstablish(w http.ResponseWriter, r *http.Request) (establishRequest, error) {
	const op = "handler.decode_establish"

	var req establishRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body := http.MaxBytesReader(w, r.Body, maxSelectionBody)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return req, domain.Invalid(op, "Request body is too large")
			}
			if errors.Is(err, io.EOF) {
				return req, domain.Invalid(op, "Request body is empty")
			}
			return req, domain.Invalid(op, "Request body is not valid JSON")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, domain.Invalid(op, "Invalid form submission")
		}
		req.CustomerID = r.PostFormValue("customer_id")
		req.CarerID = r.PostFormValue("carer_id")
		req.Day = r.PostFormValue("day")
	}

	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.CarerID = strings.TrimSpace(req.CarerID)
	return req, nil
}

// rosterFor picks the roster an establish request navigates.
func (h *SelectionHandler) rosterFor(r *http.Request, req establishRequest, current selection.State) ([]selection.CustomerRef, error) {
	switch {
	case req.CarerID != "":
		shift, err := parseDate(req.Day, h.now())
		if err != nil {
			return nil, err
		}
		roster, err := h.rosterService.ForCarer(r.Context(), req.CarerID, shift)
		if err != nil {
			return nil, err
		}
		return roster.Customers, nil

	case req.CustomerList != nil:
		var unnamed []string
		for _, ref := range req.CustomerList {
			if ref.FirstName == "" && ref.LastName == "" {
				unnamed = append(unnamed, ref.CustomerID)
			}
		}
		if len(unnamed) == 0 {
			return req.CustomerList, nil
		}
		resolved, err := h.rosterService.Resolve(r.Context(), unnamed)
		if err != nil {
			return nil, err
		}
		names := make(map[string]selection.CustomerRef, len(resolved))
		for _, ref := range resolved {
			names[ref.CustomerID] = ref
		}
		roster := make([]selection.CustomerRef, len(req.CustomerList))
		for i, ref := range req.CustomerList {
			if named, ok := names[ref.CustomerID]; ok && ref.FirstName == "" && ref.LastName == "" {
				ref = named
			}
			roster[i] = ref
		}
		return roster, nil

	default:
		return current.CustomerList, nil
	}
}

// =============================================================================
// POST /selection/next, /previous, /clear
// =============================================================================

// Next moves the selection one customer forward on the roster.
func (h *SelectionHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, selection.OpNext, (*selection.Context).Next)
}

// Previous moves the selection one customer back on the roster.
func (h *SelectionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, selection.OpPrevious, (*selection.Context).Previous)
}

// Clear deselects the customer and forgets the roster.
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, selection.OpClear, (*selection.Context).Clear)
}

func (h *SelectionHandler) step(w http.ResponseWriter, r *http.Request, op string, apply func(*selection.Context) selection.State) {
	sel := h.open(w, r)
	if sel == nil {
		return
	}
	before := sel.Snapshot().Revision
	state := apply(sel)
	h.applied(w, r, op, before, state)
	h.respond(w, r, state)
}

// =============================================================================
// GET /selection/search - Roster Quick Jump
// =============================================================================

// Search matches the query against the current roster.
func (h *SelectionHandler) Search(w http.ResponseWriter, r *http.Request) {
	state := workspace.Snapshot(r.Context())
	query := r.URL.Query().Get("q")
	results := h.rosterService.Search(state.CustomerList, query, service.DefaultSearchLimit)

	if AcceptsJSON(r) {
		if results == nil {
			results = []selection.CustomerRef{}
		}
		writeJSON(w, http.StatusOK, results)
		return
	}

	data := partials.SearchResultsData{
		Query:      strings.TrimSpace(query),
		Results:    results,
		SelectedID: state.CustomerID,
		CSRFToken:  csrf.Token(r.Context()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := partials.SearchResults(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render search results", "error", err)
		InternalErrorResponse(w, r, h.logger, err)
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// open returns the workspace's Context, creating the workspace if needed,
// or writes an error.
func (h *SelectionHandler) open(w http.ResponseWriter, r *http.Request) *selection.Context {
	sel, err := workspace.Open(r.Context())
	switch {
	case errors.Is(err, workspace.ErrNoWorkspace):
		h.logger.Error("selection handler called without workspace", "path", r.URL.Path)
		InternalErrorResponse(w, r, h.logger, err)
		return nil
	case err != nil:
		ErrorResponse(w, r, h.logger, err)
		return nil
	}
	return sel
}

// applied records the operation and tells htmx when the selection moved.
func (h *SelectionHandler) applied(w http.ResponseWriter, r *http.Request, op string, before uint64, state selection.State) {
	changed := state.Revision != before
	metrics.SelectionApplied(op, changed)
	if changed && IsHTMX(r) {
		w.Header().Set("HX-Trigger", partials.SelectionChangedEvent)
	}
}

// respond writes the result of a selection change in the form the client
// asked for.
func (h *SelectionHandler) respond(w http.ResponseWriter, r *http.Request, state selection.State) {
	switch {
	case IsHTMX(r):
		h.renderNav(w, r, state)
	case AcceptsJSON(r):
		writeJSON(w, http.StatusOK, state)
	default:
		http.Redirect(w, r, backURL(r, ReportPath), http.StatusSeeOther)
	}
}

func (h *SelectionHandler) renderNav(w http.ResponseWriter, r *http.Request, state selection.State) {
	data := partials.CustomerNavData{
		State:     state,
		CSRFToken: csrf.Token(r.Context()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := partials.CustomerNav(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render customer nav", "error", err)
		InternalErrorResponse(w, r, h.logger, err)
	}
}
