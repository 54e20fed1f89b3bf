package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Medication Administration
// =============================================================================

// AdministrationStatus records what happened at a scheduled medication round.
type AdministrationStatus string

const (
	AdministrationPending  AdministrationStatus = "pending"
	AdministrationGiven    AdministrationStatus = "given"
	AdministrationRefused  AdministrationStatus = "refused"
	AdministrationOmitted  AdministrationStatus = "omitted"
	AdministrationWithheld AdministrationStatus = "withheld"
)

// String returns the string representation of the status.
func (s AdministrationStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one the directory may return.
func (s AdministrationStatus) IsValid() bool {
	switch s {
	case AdministrationPending, AdministrationGiven, AdministrationRefused,
		AdministrationOmitted, AdministrationWithheld:
		return true
	}
	return false
}

// Administration is one scheduled dose of a medication for a customer, as
// recorded by the care backend.
type Administration struct {
	ID             string
	CustomerID     string
	MedicationName string
	Dose           decimal.Decimal
	DoseUnit       string // e.g. "mg", "ml", "tablet"
	Route          string // e.g. "oral", "topical"
	ScheduledAt    time.Time
	AdministeredAt *time.Time
	Status         AdministrationStatus
	AdministeredBy string          // Carer display name, empty if not given
	Notes          string          // Free-text note from the round
	Details        json.RawMessage // Backend-specific extra fields, may be nil
}

// DoseLabel formats the dose with its unit, e.g. "2.5 mg".
func (a *Administration) DoseLabel() string {
	if a.DoseUnit == "" {
		return a.Dose.String()
	}
	return a.Dose.String() + " " + a.DoseUnit
}

// =============================================================================
// Medication Report
// =============================================================================

// ReportPeriod is the half-open interval [From, To) covered by a report.
type ReportPeriod struct {
	From time.Time
	To   time.Time
}

// MaxReportPeriod bounds how much history a single report may cover.
const MaxReportPeriod = 31 * 24 * time.Hour

// DayPeriod returns the period covering the calendar day containing t.
func DayPeriod(t time.Time) ReportPeriod {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return ReportPeriod{From: from, To: from.AddDate(0, 0, 1)}
}

// Validate checks that the period is non-empty and not too long.
func (p ReportPeriod) Validate() error {
	const op = "report_period.validate"
	if !p.To.After(p.From) {
		return Invalid(op, "report period must end after it starts")
	}
	if p.To.Sub(p.From) > MaxReportPeriod {
		return Invalid(op, "report period must not exceed 31 days")
	}
	return nil
}

// Days returns the number of calendar days the period spans, rounded up.
func (p ReportPeriod) Days() int {
	d := p.To.Sub(p.From)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// MedicationReport is the read-only view rendered on the medication report
// page and in its printable export.
type MedicationReport struct {
	Customer        Customer
	Period          ReportPeriod
	Administrations []Administration
	GeneratedAt     time.Time
}

// ReportSummary counts administrations by status.
type ReportSummary struct {
	Total    int
	Given    int
	Refused  int
	Omitted  int
	Withheld int
	Pending  int
}

// Summary tallies the report's administrations by status.
func (r *MedicationReport) Summary() ReportSummary {
	var s ReportSummary
	for _, a := range r.Administrations {
		s.Total++
		switch a.Status {
		case AdministrationGiven:
			s.Given++
		case AdministrationRefused:
			s.Refused++
		case AdministrationOmitted:
			s.Omitted++
		case AdministrationWithheld:
			s.Withheld++
		default:
			s.Pending++
		}
	}
	return s
}

// Medications returns the distinct medication names in first-seen order.
func (r *MedicationReport) Medications() []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range r.Administrations {
		if !seen[a.MedicationName] {
			seen[a.MedicationName] = true
			names = append(names, a.MedicationName)
		}
	}
	return names
}

// ReportFormat represents the output format for a printable report.
type ReportFormat string

const (
	ReportFormatPDF ReportFormat = "pdf"
)

// IsValid returns true if the format is supported.
func (f ReportFormat) IsValid() bool {
	return f == ReportFormatPDF
}

// ContentType returns the MIME type for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
