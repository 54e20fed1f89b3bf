package partials

import (
	"strconv"

	"github.com/DukeRupert/carecrm/internal/selection"
)

// CustomerNavData contains data for the customer navigation partial.
type CustomerNavData struct {
	State     selection.State // Current selection snapshot
	CSRFToken string          // Token for the hidden form field
}

// Name returns the selected customer's display name, or "" when none.
func (d CustomerNavData) Name() string {
	return fullName(d.State.FirstName, d.State.LastName)
}

// Position returns "n of m" for the selected customer, or "" when the
// selection is not on the roster.
func (d CustomerNavData) Position() string {
	i := d.State.Index()
	if i < 0 {
		return ""
	}
	return strconv.Itoa(i+1) + " of " + strconv.Itoa(len(d.State.CustomerList))
}

// PreviousName returns the name of the customer before the selection.
func (d CustomerNavData) PreviousName() string {
	if !d.State.HasPrevious() {
		return ""
	}
	ref := d.State.CustomerList[d.State.Index()-1]
	return fullName(ref.FirstName, ref.LastName)
}

// NextName returns the name of the customer after the selection.
func (d CustomerNavData) NextName() string {
	if !d.State.HasNext() {
		return ""
	}
	ref := d.State.CustomerList[d.State.Index()+1]
	return fullName(ref.FirstName, ref.LastName)
}

// SearchResultsData contains data for the roster search results partial.
type SearchResultsData struct {
	Query      string                  // Search text as typed
	Results    []selection.CustomerRef // Matches, best first
	SelectedID string                  // Currently selected customer
	CSRFToken  string
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
