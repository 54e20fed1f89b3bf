package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/google/uuid"
)

var (
	carerID    = uuid.MustParse("6f1c2a8e-4b1d-4a47-9d55-0f8e3c6a1b2c")
	margaretID = uuid.MustParse("8a1d4f0e-1c2b-4e3a-9f8d-7c6b5a4e3d21")
	arthurID   = uuid.MustParse("8a1d4f0e-1c2b-4e3a-9f8d-7c6b5a4e3d22")
	edithID    = uuid.MustParse("8a1d4f0e-1c2b-4e3a-9f8d-7c6b5a4e3d23")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeQuerier is an in-memory repository.Querier.
type fakeQuerier struct {
	carers          map[uuid.UUID]repository.Carer
	customers       map[uuid.UUID]repository.Customer
	roster          []repository.ListRosterByCarerRow
	administrations []repository.MedicationAdministration
	err             error

	rosterParams repository.ListRosterByCarerParams
	adminParams  repository.ListAdministrationsByCustomerParams
	resolvedIDs  []string
}

func newFakeQuerier() *fakeQuerier {
	q := &fakeQuerier{
		carers: map[uuid.UUID]repository.Carer{
			carerID: {ID: carerID, Name: "Priya Shah", Role: sql.NullString{String: "Senior carer", Valid: true}},
		},
		customers: map[uuid.UUID]repository.Customer{},
	}
	for i, c := range []struct {
		id          uuid.UUID
		first, last string
	}{
		{margaretID, "Margaret", "Hale"},
		{arthurID, "Arthur", "Okafor"},
		{edithID, "Edith", "Lindqvist"},
	} {
		q.customers[c.id] = repository.Customer{
			ID:        c.id,
			FirstName: c.first,
			LastName:  c.last,
			CareLevel: "assisted",
			Active:    true,
		}
		q.roster = append(q.roster, repository.ListRosterByCarerRow{
			ID:        c.id,
			FirstName: c.first,
			LastName:  c.last,
			Position:  int32(i),
		})
	}
	return q
}

func (q *fakeQuerier) GetCarer(ctx context.Context, id uuid.UUID) (repository.Carer, error) {
	if q.err != nil {
		return repository.Carer{}, q.err
	}
	c, ok := q.carers[id]
	if !ok {
		return repository.Carer{}, sql.ErrNoRows
	}
	return c, nil
}

func (q *fakeQuerier) GetCustomer(ctx context.Context, id uuid.UUID) (repository.Customer, error) {
	if q.err != nil {
		return repository.Customer{}, q.err
	}
	c, ok := q.customers[id]
	if !ok {
		return repository.Customer{}, sql.ErrNoRows
	}
	return c, nil
}

func (q *fakeQuerier) ListAdministrationsByCustomer(ctx context.Context, arg repository.ListAdministrationsByCustomerParams) ([]repository.MedicationAdministration, error) {
	q.adminParams = arg
	if q.err != nil {
		return nil, q.err
	}
	var out []repository.MedicationAdministration
	for _, a := range q.administrations {
		if a.CustomerID == arg.CustomerID && !a.ScheduledAt.Before(arg.FromTime) && a.ScheduledAt.Before(arg.ToTime) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (q *fakeQuerier) ListCustomersByIDs(ctx context.Context, ids []string) ([]repository.ListCustomersByIDsRow, error) {
	q.resolvedIDs = ids
	if q.err != nil {
		return nil, q.err
	}
	var out []repository.ListCustomersByIDsRow
	for _, id := range ids {
		if c, ok := q.customers[uuid.MustParse(id)]; ok {
			out = append(out, repository.ListCustomersByIDsRow{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName})
		}
	}
	return out, nil
}

func (q *fakeQuerier) ListRosterByCarer(ctx context.Context, arg repository.ListRosterByCarerParams) ([]repository.ListRosterByCarerRow, error) {
	q.rosterParams = arg
	if q.err != nil {
		return nil, q.err
	}
	if arg.CarerID != carerID {
		return nil, nil
	}
	return q.roster, nil
}

var _ repository.Querier = (*fakeQuerier)(nil)

func at(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
}
