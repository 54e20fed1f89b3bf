package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/DukeRupert/carecrm/internal/csrf"
	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/report"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/workspace"
)

// =============================================================================
// Mock Service Implementations
// =============================================================================

// mockRosterService implements service.RosterService for testing.
type mockRosterService struct {
	ForCarerFunc func(ctx context.Context, carerID string, day time.Time) (*service.Roster, error)
	ResolveFunc  func(ctx context.Context, ids []string) ([]selection.CustomerRef, error)
	SearchFunc   func(roster []selection.CustomerRef, query string, limit int) []selection.CustomerRef
}

func (m *mockRosterService) ForCarer(ctx context.Context, carerID string, day time.Time) (*service.Roster, error) {
	if m.ForCarerFunc != nil {
		return m.ForCarerFunc(ctx, carerID, day)
	}
	return nil, errors.New("ForCarerFunc not implemented")
}

func (m *mockRosterService) Resolve(ctx context.Context, ids []string) ([]selection.CustomerRef, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ids)
	}
	return nil, errors.New("ResolveFunc not implemented")
}

func (m *mockRosterService) Search(roster []selection.CustomerRef, query string, limit int) []selection.CustomerRef {
	if m.SearchFunc != nil {
		return m.SearchFunc(roster, query, limit)
	}
	return nil
}

// mockReportService implements service.MedicationReportService for testing.
type mockReportService struct {
	BuildFunc func(ctx context.Context, customerID string, period domain.ReportPeriod) (*domain.MedicationReport, error)
}

func (m *mockReportService) Build(ctx context.Context, customerID string, period domain.ReportPeriod) (*domain.MedicationReport, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(ctx, customerID, period)
	}
	return nil, errors.New("BuildFunc not implemented")
}

// mockPhotoService implements service.PhotoService for testing.
type mockPhotoService struct {
	ThumbnailFunc func(ctx context.Context, customerID string) (*service.Thumbnail, error)
}

func (m *mockPhotoService) Thumbnail(ctx context.Context, customerID string) (*service.Thumbnail, error) {
	if m.ThumbnailFunc != nil {
		return m.ThumbnailFunc(ctx, customerID)
	}
	return nil, errors.New("ThumbnailFunc not implemented")
}

// mockGenerator implements report.Generator for testing.
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, doc *report.Document, w io.Writer) (int64, error)
}

func (m *mockGenerator) Generate(ctx context.Context, doc *report.Document, w io.Writer) (int64, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, doc, w)
	}
	n, err := io.WriteString(w, "%PDF-1.3 fake")
	return int64(n), err
}

func (m *mockGenerator) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// =============================================================================
// Test Fixtures
// =============================================================================

var testRoster = []selection.CustomerRef{
	{CustomerID: "m", FirstName: "Margaret", LastName: "Hale"},
	{CustomerID: "a", FirstName: "Arthur", LastName: "Penn"},
	{CustomerID: "e", FirstName: "Edith", LastName: "Crane"},
}

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

// inWorkspace attaches a workspace selection and CSRF token to the request,
// as the middleware stack does.
func inWorkspace(r *http.Request, sel *selection.Context) *http.Request {
	ctx := workspace.With(r.Context(), "ws-test", sel)
	ctx = csrf.WithToken(ctx, "test-token")
	return r.WithContext(ctx)
}

// lazyWorkspace attaches a workspace that does not exist yet, as the
// middleware does for a first-time visitor. opened counts how often the
// handler asked for it to be created.
func lazyWorkspace(r *http.Request, sel *selection.Context, opened *int) *http.Request {
	ctx := workspace.WithOpener(r.Context(), func() (string, *selection.Context, error) {
		*opened++
		return "ws-new", sel, nil
	})
	ctx = csrf.WithToken(ctx, "test-token")
	return r.WithContext(ctx)
}

func htmx(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}
