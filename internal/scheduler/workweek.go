package scheduler

import (
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

// Workweek holds the configured working days and hours.
type Workweek struct {
	workdays map[string]bool
	dayStart string // "HH:MM"
	dayEnd   string // "HH:MM"
	snap     int
}

// NewWorkweek creates a Workweek. snapMinutes of zero or less uses
// DefaultSnapMinutes.
func NewWorkweek(workdays []string, dayStart, dayEnd string, snapMinutes int) *Workweek {
	wd := make(map[string]bool)
	for _, d := range workdays {
		wd[strings.ToLower(d)] = true
	}
	if snapMinutes <= 0 {
		snapMinutes = DefaultSnapMinutes
	}
	return &Workweek{
		workdays: wd,
		dayStart: dayStart,
		dayEnd:   dayEnd,
		snap:     snapMinutes,
	}
}

// Slot is a free window on a single day.
type Slot struct {
	Date  time.Time
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// StartTime returns the slot start as a TimeOfDay.
func (s Slot) StartTime() TimeOfDay {
	m := task.TimeToMinutes(s.Start)
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// NextAvailableStart returns the next start time for placing an event.
// If now is before dayStart, returns dayStart of today (if workday) or next workday.
// If now is during work hours, returns now rounded up to the snap interval.
// If now is after dayEnd, returns dayStart of next workday.
func (w *Workweek) NextAvailableStart(now time.Time) Slot {
	nowTime := now.Format("15:04")

	if w.IsWorkday(now) {
		if nowTime < w.dayStart {
			return Slot{Date: now, Start: w.dayStart, End: w.dayEnd}
		}
		if nowTime < w.dayEnd {
			start := roundUp(now, w.snap)
			// Rounding past midnight or the day end moves to the next workday.
			if start.Day() == now.Day() {
				if s := start.Format("15:04"); s < w.dayEnd {
					return Slot{Date: now, Start: s, End: w.dayEnd}
				}
			}
			return w.nextWorkday(now)
		}
	}

	return w.nextWorkday(now)
}

// nextWorkday finds the next workday starting from the day after the given time.
func (w *Workweek) nextWorkday(from time.Time) Slot {
	next := from.AddDate(0, 0, 1)
	for range 7 {
		if w.IsWorkday(next) {
			return Slot{Date: next, Start: w.dayStart, End: w.dayEnd}
		}
		next = next.AddDate(0, 0, 1)
	}
	// No workdays configured.
	return Slot{Date: from.AddDate(0, 0, 1), Start: w.dayStart, End: w.dayEnd}
}

// IsWorkday returns true if the given time falls on a configured workday.
func (w *Workweek) IsWorkday(t time.Time) bool {
	return w.workdays[strings.ToLower(t.Weekday().String())]
}

// IsWithinWorkHours returns true if the given time is within configured work hours.
func (w *Workweek) IsWithinWorkHours(t time.Time) bool {
	if !w.IsWorkday(t) {
		return false
	}
	nowTime := t.Format("15:04")
	return nowTime >= w.dayStart && nowTime < w.dayEnd
}

// CheckEvent reports why ev falls outside working time, or "" if it fits.
func (w *Workweek) CheckEvent(ev task.ScheduledEvent) string {
	if !w.IsWorkday(ev.Start) {
		return "not a workday"
	}
	if ev.StartClock() < w.dayStart {
		return "starts before workday start"
	}
	if dateutil.DaysBetween(ev.Start, ev.End) > 0 || ev.EndClock() > w.dayEnd {
		return "ends after workday end"
	}
	return ""
}

// DayStart returns the configured day start time.
func (w *Workweek) DayStart() string {
	return w.dayStart
}

// DayEnd returns the configured day end time.
func (w *Workweek) DayEnd() string {
	return w.dayEnd
}

// roundUp rounds a time up to the next multiple of step minutes.
func roundUp(t time.Time, step int) time.Time {
	remainder := t.Minute() % step
	if remainder == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Add(time.Duration(step-remainder) * time.Minute).Truncate(time.Minute)
}
