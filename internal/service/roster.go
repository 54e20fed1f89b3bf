// Package service contains the read-side logic of the carer workspace.
//
// Services read from the customer directory through repository.Querier and
// return domain types or *domain.Error values. They never write to the
// directory.
package service

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/agnivade/levenshtein"
)

// DefaultSearchLimit caps quick-jump results when the caller passes 0.
const DefaultSearchLimit = 8

// Roster is a carer's ordered customer list for one shift day.
type Roster struct {
	Carer     domain.Carer
	Day       time.Time
	Customers []selection.CustomerRef
}

// RosterService defines the interface for roster lookups.
type RosterService interface {
	// ForCarer returns the carer's roster for the calendar day containing
	// day, in round order.
	ForCarer(ctx context.Context, carerID string, day time.Time) (*Roster, error)

	// Resolve returns references for the given customer IDs in the order
	// given. Unknown IDs keep their position with empty names.
	Resolve(ctx context.Context, ids []string) ([]selection.CustomerRef, error)

	// Search returns up to limit roster entries whose names match query,
	// best match first. Typos within a small edit distance still match.
	Search(roster []selection.CustomerRef, query string, limit int) []selection.CustomerRef
}

// rosterService implements RosterService.
type rosterService struct {
	queries repository.Querier
	logger  *slog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(queries repository.Querier, logger *slog.Logger) RosterService {
	return &rosterService{
		queries: queries,
		logger:  logger,
	}
}

func (s *rosterService) ForCarer(ctx context.Context, carerID string, day time.Time) (*Roster, error) {
	const op = "RosterService.ForCarer"

	id, err := parseID(op, "carer", carerID)
	if err != nil {
		return nil, err
	}

	carer, err := s.queries.GetCarer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "carer", carerID)
		}
		s.logger.Error("failed to get carer", "error", err, "op", op, "carer_id", carerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve carer")
	}

	shift := domain.DayPeriod(day).From
	rows, err := s.queries.ListRosterByCarer(ctx, repository.ListRosterByCarerParams{
		CarerID:   id,
		ShiftDate: shift,
	})
	if err != nil {
		s.logger.Error("failed to list roster", "error", err, "op", op, "carer_id", carerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve roster")
	}

	customers := make([]selection.CustomerRef, len(rows))
	for i, row := range rows {
		customers[i] = rosterRowToRef(row)
	}

	s.logger.Debug("roster loaded", "carer_id", carerID, "day", shift.Format(time.DateOnly), "count", len(customers))

	return &Roster{
		Carer:     repoCarerToDomain(carer),
		Day:       shift,
		Customers: customers,
	}, nil
}

func (s *rosterService) Resolve(ctx context.Context, ids []string) ([]selection.CustomerRef, error) {
	const op = "RosterService.Resolve"

	refs := make([]selection.CustomerRef, len(ids))
	var lookup []string
	for i, id := range ids {
		refs[i].CustomerID = id
		if _, err := parseID(op, "customer", id); err == nil {
			lookup = append(lookup, id)
		}
	}
	if len(lookup) == 0 {
		return refs, nil
	}

	rows, err := s.queries.ListCustomersByIDs(ctx, lookup)
	if err != nil {
		s.logger.Error("failed to resolve customers", "error", err, "op", op, "count", len(lookup))
		return nil, domain.Unavailable(err, op, "Failed to retrieve customers")
	}

	names := make(map[string]repository.ListCustomersByIDsRow, len(rows))
	for _, row := range rows {
		names[row.ID.String()] = row
	}
	for i := range refs {
		if row, ok := names[strings.ToLower(refs[i].CustomerID)]; ok {
			refs[i].FirstName = row.FirstName
			refs[i].LastName = row.LastName
		}
	}
	return refs, nil
}

type searchHit struct {
	ref   selection.CustomerRef
	score int
	pos   int
}

func (s *rosterService) Search(roster []selection.CustomerRef, query string, limit int) []selection.CustomerRef {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	// Allow roughly one typo per four characters typed.
	maxDistance := len([]rune(q)) / 4

	var hits []searchHit
	for pos, ref := range roster {
		if score, ok := matchScore(ref, q, maxDistance); ok {
			hits = append(hits, searchHit{ref: ref, score: score, pos: pos})
		}
	}

	slices.SortStableFunc(hits, func(a, b searchHit) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]selection.CustomerRef, len(hits))
	for i, h := range hits {
		out[i] = h.ref
	}
	return out
}

// matchScore ranks a roster entry against a normalized query. Lower is
// better: prefix matches score 0, substring matches 1, and fuzzy matches
// 2 plus their edit distance.
func matchScore(ref selection.CustomerRef, q string, maxDistance int) (int, bool) {
	first := strings.ToLower(ref.FirstName)
	last := strings.ToLower(ref.LastName)
	full := strings.TrimSpace(first + " " + last)
	reversed := strings.TrimSpace(last + " " + first)

	for _, name := range []string{full, reversed, last} {
		if strings.HasPrefix(name, q) {
			return 0, true
		}
	}
	if strings.Contains(full, q) {
		return 1, true
	}
	if maxDistance == 0 {
		return 0, false
	}

	best := -1
	for _, name := range []string{first, last, full, reversed} {
		if name == "" {
			continue
		}
		// Compare against a same-length prefix so partially typed names
		// are not penalized for the letters not yet typed.
		candidate := name
		if r := []rune(name); len(r) > len([]rune(q)) {
			candidate = string(r[:len([]rune(q))])
		}
		d := levenshtein.ComputeDistance(q, candidate)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 || best > maxDistance {
		return 0, false
	}
	return 2 + best, true
}
