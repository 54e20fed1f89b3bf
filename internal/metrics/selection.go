package metrics

import (
	"strconv"

	"github.com/DukeRupert/carecrm/internal/selection"
)

// SelectionApplied records one selection operation. changed is false for
// no-ops such as Next at the end of the roster.
func SelectionApplied(op string, changed bool) {
	SelectionTransitions.WithLabelValues(op, strconv.FormatBool(changed)).Inc()
}

// SelectionMismatch records a selection that did not match its roster. Its
// signature fits selection.StoreConfig.OnMismatch.
func SelectionMismatch(_ string, m selection.Mismatch) {
	SelectionMismatches.WithLabelValues(m.Op).Inc()
}

// ReportRendered records a rendered medication report.
func ReportRendered(format string) {
	ReportsRendered.WithLabelValues(format).Inc()
}

// ThumbnailServed records whether a thumbnail came from cache.
func ThumbnailServed(cached bool) {
	label := "miss"
	if cached {
		label = "hit"
	}
	ThumbnailsGenerated.WithLabelValues(label).Inc()
}
