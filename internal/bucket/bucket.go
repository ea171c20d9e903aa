// Package bucket enumerates the calendar spans allocations are computed over.
package bucket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
)

// HoursPerDay is the standard working day used for bucket capacity.
const HoursPerDay = 8

// ErrInvalidResolution is returned for an unknown resolution name.
var ErrInvalidResolution = errors.New("resolution must be 'day', 'week' or 'month'")

// Resolution is the size of the calendar unit a query is split into.
type Resolution string

const (
	Day   Resolution = "day"
	Week  Resolution = "week"
	Month Resolution = "month"
)

// ParseResolution converts a string to a Resolution.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(strings.ToLower(strings.TrimSpace(s))) {
	case Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	default:
		return "", ErrInvalidResolution
	}
}

// Next returns the next coarser resolution, wrapping month back to day.
func (r Resolution) Next() Resolution {
	switch r {
	case Day:
		return Week
	case Week:
		return Month
	default:
		return Day
	}
}

// Bucket is one calendar day, Monday-start week, or calendar month.
// Start and End are inclusive dates at midnight UTC.
type Bucket struct {
	Resolution Resolution
	Start      time.Time
	End        time.Time
}

// Of returns the bucket of resolution r containing t.
func Of(r Resolution, t time.Time) Bucket {
	switch r {
	case Week:
		mon, sun := dateutil.WeekRange(t)
		return Bucket{Resolution: Week, Start: mon, End: sun}
	case Month:
		first, last := dateutil.MonthRange(t)
		return Bucket{Resolution: Month, Start: first, End: last}
	default:
		d := dateutil.Date(t)
		return Bucket{Resolution: Day, Start: d, End: d}
	}
}

// Enumerate returns every bucket of resolution r intersecting [start, end],
// in chronological order. Buckets are whole calendar units and may extend
// past either end of the range. Returns nil when end is before start.
func Enumerate(r Resolution, start, end time.Time) []Bucket {
	start = dateutil.Date(start)
	end = dateutil.Date(end)
	if end.Before(start) {
		return nil
	}

	var out []Bucket
	for b := Of(r, start); !b.Start.After(end); b = b.Next() {
		out = append(out, b)
	}
	return out
}

// Next returns the bucket immediately following b.
func (b Bucket) Next() Bucket {
	return Of(b.Resolution, b.End.AddDate(0, 0, 1))
}

// Prev returns the bucket immediately preceding b.
func (b Bucket) Prev() Bucket {
	return Of(b.Resolution, b.Start.AddDate(0, 0, -1))
}

// Contains reports whether t falls inside the bucket.
func (b Bucket) Contains(t time.Time) bool {
	d := dateutil.Date(t)
	return !d.Before(b.Start) && !d.After(b.End)
}

// Days returns the calendar days in the bucket.
func (b Bucket) Days() int {
	return dateutil.DaysBetween(b.Start, b.End) + 1
}

// WorkingDayCount returns the weekdays in the bucket.
func (b Bucket) WorkingDayCount() int {
	return dateutil.WorkingDays(b.Start, b.End)
}

// CapacityHours returns the standard capacity of the bucket.
func (b Bucket) CapacityHours() float64 {
	return float64(b.WorkingDayCount() * HoursPerDay)
}

// Key returns a stable identifier for the bucket.
func (b Bucket) Key() string {
	return string(b.Resolution) + ":" + dateutil.FormatDate(b.Start)
}

// Label returns a short English header for the bucket.
func (b Bucket) Label() string {
	switch b.Resolution {
	case Week:
		if b.Start.Month() == b.End.Month() {
			return fmt.Sprintf("%s %d-%d", b.Start.Format("Jan"), b.Start.Day(), b.End.Day())
		}
		return fmt.Sprintf("%s %d-%s %d", b.Start.Format("Jan"), b.Start.Day(), b.End.Format("Jan"), b.End.Day())
	case Month:
		return b.Start.Format("Jan 2006")
	default:
		return b.Start.Format("Mon 02")
	}
}

func (b Bucket) String() string {
	return fmt.Sprintf("%s %s..%s", b.Resolution, dateutil.FormatDate(b.Start), dateutil.FormatDate(b.End))
}
