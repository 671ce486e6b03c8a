// Package period resolves the month/year pair every aggregation and
// approval call is scoped to.
package period

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"marketing-fee-backend/internal/apperror"
)

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// LookupMonth accepts a numeric string ("6", "06") or a month name in any
// letter case.
func LookupMonth(raw string) (time.Month, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for i, name := range monthNames {
		if strings.EqualFold(name, raw) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func New(year int, month int) (Period, error) {
	p := Period{Year: year, Month: time.Month(month)}
	return p, p.Validate()
}

func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return apperror.Validation("Bulan harus di antara 1 dan 12")
	}
	if p.Year < 1 || p.Year > 9999 {
		return apperror.Validation("Tahun tidak valid")
	}
	return nil
}

// Start is the first instant of the month in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following month; the window is [Start, End).
func (p Period) End(loc *time.Location) time.Time {
	return p.Start(loc).AddDate(0, 1, 0)
}

func (p Period) DaysIn() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p Period) Label() string {
	return MonthName(p.Month) + " " + strconv.Itoa(p.Year)
}

// Key is the cache/suffix form, e.g. "2024-06".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

type Fallback string

const (
	// FallbackCurrent substitutes the current month/year for unrecognized input.
	FallbackCurrent Fallback = "current"
	// FallbackReject turns unrecognized input into a validation error.
	FallbackReject Fallback = "reject"
)

func ParseFallback(s string) Fallback {
	if Fallback(strings.ToLower(strings.TrimSpace(s))) == FallbackReject {
		return FallbackReject
	}
	return FallbackCurrent
}

// Resolver turns raw query values into a Period.
type Resolver struct {
	Fallback Fallback
	Location *time.Location
	Now      func() time.Time
}

func NewResolver(fallback Fallback, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{Fallback: fallback, Location: loc, Now: time.Now}
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now().In(r.Location)
	}
	return r.Now().In(r.Location)
}

func (r *Resolver) Month(raw string) (time.Month, error) {
	if m, ok := LookupMonth(raw); ok {
		return m, nil
	}
	if r.Fallback == FallbackReject {
		return 0, apperror.Validation("Bulan %q tidak dikenali", raw)
	}
	current := r.now().Month()
	if raw != "" {
		log.Printf("[WARN] bulan %q tidak dikenali, memakai bulan berjalan %s", raw, MonthName(current))
	}
	return current, nil
}

func (r *Resolver) Year(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if y, err := strconv.Atoi(raw); err == nil && y >= 1 && y <= 9999 {
		return y, nil
	}
	if r.Fallback == FallbackReject {
		return 0, apperror.Validation("Tahun %q tidak valid", raw)
	}
	current := r.now().Year()
	if raw != "" {
		log.Printf("[WARN] tahun %q tidak valid, memakai tahun berjalan %d", raw, current)
	}
	return current, nil
}

func (r *Resolver) Resolve(month, year string) (Period, error) {
	m, err := r.Month(month)
	if err != nil {
		return Period{}, err
	}
	y, err := r.Year(year)
	if err != nil {
		return Period{}, err
	}
	return Period{Year: y, Month: m}, nil
}

// Current is the period containing now.
func (r *Resolver) Current() Period {
	n := r.now()
	return Period{Year: n.Year(), Month: n.Month()}
}
