// Package domain contains core business types and interfaces.
//
// This file defines the Customer (care recipient) and Carer types as the
// carer workspace reads them from the customer directory.
package domain

import (
	"strings"
	"time"
)

// =============================================================================
// Customer Domain Type
// =============================================================================

// CareLevel is the level of support a customer receives.
type CareLevel string

const (
	CareLevelIndependent CareLevel = "independent"
	CareLevelAssisted    CareLevel = "assisted"
	CareLevelNursing     CareLevel = "nursing"
	CareLevelMemory      CareLevel = "memory_care"
)

// Label returns a human-readable label for the care level.
func (l CareLevel) Label() string {
	switch l {
	case CareLevelIndependent:
		return "Independent living"
	case CareLevelAssisted:
		return "Assisted living"
	case CareLevelNursing:
		return "Nursing care"
	case CareLevelMemory:
		return "Memory care"
	default:
		return "Unspecified"
	}
}

// Customer is a care recipient (resident) record.
//
// The workspace never writes customer records; they come from the
// directory and are displayed as-is.
type Customer struct {
	ID            string     // Opaque identifier, stable for the session
	FirstName     string     // Display only, not unique
	LastName      string     // Display only, not unique
	PreferredName string     // Optional name the customer likes to be called
	DateOfBirth   *time.Time // Optional
	Room          string     // Room or apartment label
	CareLevel     CareLevel
	PhotoKey      string // Storage key of the customer photo, empty if none
	Allergies     []string
}

// DisplayName returns "First Last", preferring the preferred name when set.
func (c *Customer) DisplayName() string {
	first := c.FirstName
	if c.PreferredName != "" {
		first = c.PreferredName
	}
	return strings.TrimSpace(first + " " + c.LastName)
}

// Initials returns up to two initials for avatar placeholders.
func (c *Customer) Initials() string {
	var b strings.Builder
	for _, part := range []string{c.FirstName, c.LastName} {
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]))
		}
	}
	return b.String()
}

// HasPhoto reports whether a photo is on file.
func (c *Customer) HasPhoto() bool {
	return c.PhotoKey != ""
}

// AgeOn returns the customer's age in whole years on the given day, or -1
// when the date of birth is unknown.
func (c *Customer) AgeOn(day time.Time) int {
	if c.DateOfBirth == nil {
		return -1
	}
	dob := *c.DateOfBirth
	age := day.Year() - dob.Year()
	if day.Month() < dob.Month() || (day.Month() == dob.Month() && day.Day() < dob.Day()) {
		age--
	}
	return age
}

// =============================================================================
// Carer Domain Type
// =============================================================================

// Carer is a staff member whose roster the workspace navigates.
type Carer struct {
	ID   string
	Name string
	Role string
}
