package service

import (
	"database/sql"
	"encoding/json"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/google/uuid"
)

// parseID parses a customer or carer identifier. Identifiers that are not
// UUIDs cannot exist in the directory, so they are reported as not found.
func parseID(op, resource, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NotFound(op, resource, id)
	}
	return parsed, nil
}

func repoCustomerToDomain(c repository.Customer) domain.Customer {
	customer := domain.Customer{
		ID:            c.ID.String(),
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		PreferredName: fromNullString(c.PreferredName),
		Room:          fromNullString(c.Room),
		CareLevel:     domain.CareLevel(c.CareLevel),
		PhotoKey:      fromNullString(c.PhotoKey),
		Allergies:     c.Allergies,
	}
	if c.DateOfBirth.Valid {
		dob := c.DateOfBirth.Time
		customer.DateOfBirth = &dob
	}
	return customer
}

func repoCarerToDomain(c repository.Carer) domain.Carer {
	return domain.Carer{
		ID:   c.ID.String(),
		Name: c.Name,
		Role: fromNullString(c.Role),
	}
}

func repoAdministrationToDomain(a repository.MedicationAdministration) domain.Administration {
	admin := domain.Administration{
		ID:             a.ID.String(),
		CustomerID:     a.CustomerID.String(),
		MedicationName: a.MedicationName,
		Dose:           a.Dose,
		DoseUnit:       a.DoseUnit,
		Route:          a.Route,
		ScheduledAt:    a.ScheduledAt,
		Status:         domain.AdministrationStatus(a.Status),
		AdministeredBy: fromNullString(a.AdministeredBy),
		Notes:          fromNullString(a.Notes),
	}
	if a.AdministeredAt.Valid {
		at := a.AdministeredAt.Time
		admin.AdministeredAt = &at
	}
	if a.Details.Valid {
		admin.Details = json.RawMessage(a.Details.RawMessage)
	}
	return admin
}

func rosterRowToRef(r repository.ListRosterByCarerRow) selection.CustomerRef {
	return selection.CustomerRef{
		CustomerID: r.ID.String(),
		FirstName:  r.FirstName,
		LastName:   r.LastName,
	}
}

// fromNullString converts sql.NullString to a string, empty when NULL.
func fromNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
