package leave

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// DATE - Calendar date (day granularity, UTC, no time component)
// =============================================================================

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date at midnight UTC. Employees join on a Date,
// leave spans run from one Date to another inclusively. There is
// deliberately no hour/minute granularity anywhere in the system.
type Date struct {
	t time.Time
}

// Constructors

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// Comparison

func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic and properties

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

// JSON: dates travel as "YYYY-MM-DD" strings, matching the persisted layout.

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE SPAN HELPERS
// =============================================================================

// InclusiveDays returns the number of calendar days covered by [start, end],
// counting both endpoints: a single-day span is 1 day. The rounding is purely
// defensive; dates are normalized to midnight so the fraction is always zero.
func InclusiveDays(start, end Date) int {
	delta := end.t.Sub(start.t).Hours() / 24
	return int(math.Round(math.Abs(delta))) + 1
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return !(aEnd.Before(bStart) || bEnd.Before(aStart))
}
