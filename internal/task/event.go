package task

import (
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
)

// ScheduledEvent is a concrete time interval placed on the calendar grid,
// optionally backed by a work item.
type ScheduledEvent struct {
	ID           string
	Title        string
	Start        time.Time
	End          time.Time
	SourceItemID string
}

// Duration returns the event length.
func (e ScheduledEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Day returns the calendar day the event starts on.
func (e ScheduledEvent) Day() time.Time {
	return dateutil.TruncateToDay(e.Start)
}

// OverlapsWith reports whether two events share any instant.
// Intervals are half-open, so back-to-back events do not overlap.
func (e ScheduledEvent) OverlapsWith(other ScheduledEvent) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// StartClock returns the start time as "HH:MM".
func (e ScheduledEvent) StartClock() string {
	return MinutesToTime(e.Start.Hour()*60 + e.Start.Minute())
}

// EndClock returns the end time as "HH:MM".
// An event ending exactly at midnight of the next day renders as 24:00.
func (e ScheduledEvent) EndClock() string {
	if dateutil.DaysBetween(e.Start, e.End) == 1 && e.End.Hour() == 0 && e.End.Minute() == 0 {
		return "24:00"
	}
	return MinutesToTime(e.End.Hour()*60 + e.End.Minute())
}
