// Package report renders the printable medication administration report.
//
// The Generator interface is implemented by PDFGenerator. The helpers in this
// file cover colours and text formatting shared by report layouts.
package report

import (
	"context"
	"io"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
)

// =============================================================================
// Generator Interface
// =============================================================================

// Document is everything a generator needs to render one report.
type Document struct {
	Report *domain.MedicationReport
	Photo  *ImageData // Customer thumbnail, nil when none on file
}

// ImageData holds image bytes for embedding in reports.
type ImageData struct {
	Data        []byte
	ContentType string
}

// Generator defines the interface for report generators.
type Generator interface {
	// Generate renders the document to w and returns the bytes written.
	Generate(ctx context.Context, doc *Document, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() domain.ReportFormat
}

// =============================================================================
// Brand Colors
// =============================================================================

// BrandColors defines the color palette for reports.
var BrandColors = struct {
	Primary    string
	TextDark   string
	TextMuted  string
	Border     string
	Background string
	White      string
}{
	Primary:    "#4338CA",
	TextDark:   "#1F2937",
	TextMuted:  "#6B7280",
	Border:     "#E5E7EB",
	Background: "#F9FAFB",
	White:      "#FFFFFF",
}

// StatusColors maps administration statuses to display colors.
var StatusColors = map[domain.AdministrationStatus]string{
	domain.AdministrationGiven:    "#16A34A", // Green-600
	domain.AdministrationRefused:  "#DC2626", // Red-600
	domain.AdministrationOmitted:  "#D97706", // Amber-600
	domain.AdministrationWithheld: "#2563EB", // Blue-600
	domain.AdministrationPending:  "#6B7280", // Gray-500
}

// StatusColor returns the color for an administration status.
func StatusColor(status domain.AdministrationStatus) string {
	if color, ok := StatusColors[status]; ok {
		return color
	}
	return BrandColors.TextMuted
}

// StatusLabel returns a human-readable label for a status.
func StatusLabel(status domain.AdministrationStatus) string {
	switch status {
	case domain.AdministrationGiven:
		return "Given"
	case domain.AdministrationRefused:
		return "Refused"
	case domain.AdministrationOmitted:
		return "Omitted"
	case domain.AdministrationWithheld:
		return "Withheld"
	case domain.AdministrationPending:
		return "Pending"
	default:
		return string(status)
	}
}

// =============================================================================
// Color Conversion Helpers
// =============================================================================

// HexToRGB converts a hex color string to RGB values.
// Input format: "#RRGGBB" or "RRGGBB"
func HexToRGB(hex string) (r, g, b int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}

	r = hexToDec(hex[0:2])
	g = hexToDec(hex[2:4])
	b = hexToDec(hex[4:6])
	return
}

func hexToDec(hex string) int {
	val := 0
	for _, c := range hex {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

// =============================================================================
// Text Formatting Helpers
// =============================================================================

// TruncateText shortens text to at most maxLen runes, adding an ellipsis.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatDate formats a date for display in reports.
func FormatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// FormatDateTime formats a datetime for display in reports.
func FormatDateTime(t time.Time) string {
	return t.Format("2 January 2006 at 15:04")
}

// FormatPeriod formats a report period, e.g. "14 March 2026" or
// "1 March 2026 to 7 March 2026".
func FormatPeriod(p domain.ReportPeriod) string {
	if p.Days() <= 1 {
		return FormatDate(p.From)
	}
	return FormatDate(p.From) + " to " + FormatDate(p.To.AddDate(0, 0, -1))
}
