package roster

import (
	"net/url"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/selection"
)

// PageData contains data for a carer's roster page.
type PageData struct {
	CSRFToken  string
	Carer      domain.Carer
	Day        time.Time               // Shift day the roster is for
	Customers  []selection.CustomerRef // In roster order
	SelectedID string                  // Highlighted when on this roster
}

// OpenURL returns the link that selects a customer from this roster.
func (d PageData) OpenURL(customerID string) string {
	return "/carers/" + url.PathEscape(d.Carer.ID) + "/roster/" + url.PathEscape(customerID) +
		"?day=" + d.Day.Format(time.DateOnly)
}
