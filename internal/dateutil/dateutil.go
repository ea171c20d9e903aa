// Package dateutil provides date parsing and calendar arithmetic utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical date-only layout.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether t falls within the range (date granularity).
func (r DateRange) Contains(t time.Time) bool {
	d := Date(t)
	return !d.Before(Date(r.Start)) && !d.After(Date(r.End))
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date(time.Now()), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date returns midnight UTC of t's calendar date. Date-only values are kept
// in UTC so comparisons between them never depend on the local zone.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = StartOfWeek(t)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// StartOfWeek returns the Monday (UTC) of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = Date(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// MonthRange returns the first and last day (UTC) of the calendar month containing t.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay reports whether t falls on a weekday.
func IsWorkingDay(t time.Time) bool {
	return !IsWeekend(t)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b is before a. Daylight saving transitions do not skew the count.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// WorkingDays counts the weekdays in the inclusive range [start, end].
// Returns 0 when end is before start.
func WorkingDays(start, end time.Time) int {
	days := DaysBetween(start, end) + 1
	if days <= 0 {
		return 0
	}

	full := days / 7
	count := full * 5

	// Remaining days after whole weeks start on the same weekday as start.
	wd := int(start.Weekday())
	for i := 0; i < days%7; i++ {
		d := (wd + i) % 7
		if d != int(time.Saturday) && d != int(time.Sunday) {
			count++
		}
	}
	return count
}

// Intersect returns the overlap of two inclusive date ranges as UTC dates.
// ok is false when the ranges do not overlap.
func Intersect(aStart, aEnd, bStart, bEnd time.Time) (start, end time.Time, ok bool) {
	start = Latest(Date(aStart), Date(bStart))
	end = Earliest(Date(aEnd), Date(bEnd))
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	_, _, ok := Intersect(aStart, aEnd, bStart, bEnd)
	return ok
}

// Earliest returns the earlier of two times.
func Earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// Latest returns the later of two times.
func Latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// ParseRelativeDate parses a date string into a UTC date. It accepts:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - "this-week" / "next-week" / "last-week": Monday of that week
//   - "this-month" / "next-month": first day of that month
//
// All inputs are case-insensitive. Past dates are allowed since allocation
// queries look backwards as often as forwards.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := Date(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "this-week":
		return StartOfWeek(today), nil
	case "next-week":
		return StartOfWeek(today).AddDate(0, 0, 7), nil
	case "last-week":
		return StartOfWeek(today).AddDate(0, 0, -7), nil
	case "this-month":
		first, _ := MonthRange(today)
		return first, nil
	case "next-month":
		first, _ := MonthRange(today)
		return first.AddDate(0, 1, 0), nil
	}

	result, err := time.Parse(DateLayout, input)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}
