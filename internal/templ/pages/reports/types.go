package reports

import (
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/templ/components"
	"github.com/DukeRupert/carecrm/internal/templ/partials"
)

// MedicationReportData contains data for the medication report page.
type MedicationReportData struct {
	CSRFToken string                   // CSRF token for forms
	Nav       partials.CustomerNavData // Selection navigation
	Report    *domain.MedicationReport // Report for the selected customer
	PhotoURL  string                   // Thumbnail URL, empty if no photo
	Sidebar   components.SidebarData   // Marketing widget
	Today     time.Time                // Used for the customer's age
}

// Day returns the report day as YYYY-MM-DD.
func (d MedicationReportData) Day() string {
	return d.Report.Period.From.Format(time.DateOnly)
}

// EmptyStateData contains data for the page shown when nothing is selected.
type EmptyStateData struct {
	CSRFToken string
	RosterURL string // Link back to the carer's roster, empty if unknown
	Sidebar   components.SidebarData
}
