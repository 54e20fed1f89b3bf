package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
)

// parseDay reads the ?day=YYYY-MM-DD parameter in now's location,
// defaulting to the calendar day of now.
func parseDay(r *http.Request, now time.Time) (time.Time, error) {
	return parseDate(r.URL.Query().Get("day"), now)
}

// parseDate parses a YYYY-MM-DD date in now's location. An empty string
// means the day of now.
func parseDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DayPeriod(now).From, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, now.Location())
	if err != nil {
		return time.Time{}, domain.Invalid("handler.parse_day", "day must be a date in YYYY-MM-DD format")
	}
	return day, nil
}

// parsePeriod reads ?day= and ?days= into a report period. days defaults
// to 1.
func parsePeriod(r *http.Request, now time.Time) (domain.ReportPeriod, error) {
	day, err := parseDay(r, now)
	if err != nil {
		return domain.ReportPeriod{}, err
	}
	period := domain.DayPeriod(day)

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return domain.ReportPeriod{}, domain.Invalid("handler.parse_period", "days must be a positive whole number")
		}
		period.To = period.From.AddDate(0, 0, days)
	}
	return period, period.Validate()
}

// backURL returns the same-origin page the request came from, or fallback.
func backURL(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	// Browsers read "//" and "/\" as scheme-relative URLs.
	if strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
