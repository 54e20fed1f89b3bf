package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_ForCarer(t *testing.T) {
	q := newFakeQuerier()
	svc := NewRosterService(q, discardLogger())

	roster, err := svc.ForCarer(context.Background(), carerID.String(), at(15))
	require.NoError(t, err)

	assert.Equal(t, "Priya Shah", roster.Carer.Name)
	assert.Equal(t, "Senior carer", roster.Carer.Role)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), roster.Day)
	assert.Equal(t, roster.Day, q.rosterParams.ShiftDate)
	require.Len(t, roster.Customers, 3)
	assert.Equal(t, selection.CustomerRef{CustomerID: margaretID.String(), FirstName: "Margaret", LastName: "Hale"}, roster.Customers[0])
	assert.Equal(t, edithID.String(), roster.Customers[2].CustomerID)
}

func TestRosterService_ForCarerErrors(t *testing.T) {
	tests := []struct {
		name    string
		carerID string
		dbErr   error
		code    string
	}{
		{"malformed id", "not-a-uuid", nil, domain.ENOTFOUND},
		{"unknown carer", "00000000-0000-0000-0000-000000000001", nil, domain.ENOTFOUND},
		{"directory down", carerID.String(), errors.New("connection refused"), domain.EUNAVAIL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newFakeQuerier()
			q.err = tt.dbErr
			svc := NewRosterService(q, discardLogger())

			_, err := svc.ForCarer(context.Background(), tt.carerID, at(9))
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.ErrorCode(err))
		})
	}
}

func TestRosterService_ResolveKeepsOrderAndUnknowns(t *testing.T) {
	q := newFakeQuerier()
	svc := NewRosterService(q, discardLogger())

	refs, err := svc.Resolve(context.Background(), []string{edithID.String(), "legacy-7", margaretID.String()})
	require.NoError(t, err)

	assert.Equal(t, []selection.CustomerRef{
		{CustomerID: edithID.String(), FirstName: "Edith", LastName: "Lindqvist"},
		{CustomerID: "legacy-7"},
		{CustomerID: margaretID.String(), FirstName: "Margaret", LastName: "Hale"},
	}, refs)
	assert.Equal(t, []string{edithID.String(), margaretID.String()}, q.resolvedIDs)
}

func TestRosterService_ResolveSkipsLookupWithoutUUIDs(t *testing.T) {
	q := newFakeQuerier()
	svc := NewRosterService(q, discardLogger())

	refs, err := svc.Resolve(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []selection.CustomerRef{{CustomerID: "A"}, {CustomerID: "B"}}, refs)
	assert.Nil(t, q.resolvedIDs)
}

func TestRosterService_Search(t *testing.T) {
	svc := NewRosterService(newFakeQuerier(), discardLogger())
	roster := []selection.CustomerRef{
		{CustomerID: "1", FirstName: "Margaret", LastName: "Hale"},
		{CustomerID: "2", FirstName: "Arthur", LastName: "Okafor"},
		{CustomerID: "3", FirstName: "Edith", LastName: "Lindqvist"},
		{CustomerID: "4", FirstName: "Martin", LastName: "Hallam"},
	}

	ids := func(refs []selection.CustomerRef) []string {
		out := make([]string, len(refs))
		for i, r := range refs {
			out[i] = r.CustomerID
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"first name prefix", "mar", 0, []string{"1", "4"}},
		{"last name prefix", "hal", 0, []string{"1", "4"}},
		{"last then first", "okafor a", 0, []string{"2"}},
		{"substring", "ith", 0, []string{"3"}},
		{"typo", "lindqvst", 0, []string{"3"}},
		{"case and spacing", "  EDITH   lind ", 0, []string{"3"}},
		{"limit", "ma", 1, []string{"1"}},
		{"no match", "zebedee", 0, []string{}},
		{"empty query", "   ", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(roster, tt.query, tt.limit)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
