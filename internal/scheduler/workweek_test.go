package scheduler

import (
	"testing"
	"time"

	"github.com/javiermolinar/workload/internal/task"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

func TestNextAvailableStart_BeforeWorkHours(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)

	// Monday at 7:30 AM
	now := time.Date(2025, 1, 6, 7, 30, 0, 0, time.Local)
	slot := w.NextAvailableStart(now)

	if slot.Start != "09:00" {
		t.Errorf("expected start 09:00, got %s", slot.Start)
	}
	if slot.End != "17:00" {
		t.Errorf("expected end 17:00, got %s", slot.End)
	}
	if slot.Date.Day() != 6 {
		t.Errorf("expected same day (6), got %d", slot.Date.Day())
	}
}

func TestNextAvailableStart_DuringWorkHours(t *testing.T) {
	tests := []struct {
		name string
		snap int
		now  time.Time
		want string
	}{
		{"rounds up to quarter", 15, time.Date(2025, 1, 6, 10, 23, 0, 0, time.Local), "10:30"},
		{"exactly on boundary", 15, time.Date(2025, 1, 6, 10, 30, 0, 0, time.Local), "10:30"},
		{"seconds push to next boundary", 15, time.Date(2025, 1, 6, 10, 30, 5, 0, time.Local), "10:45"},
		{"half hour grid", 30, time.Date(2025, 1, 6, 10, 5, 0, 0, time.Local), "10:30"},
		{"five minute grid", 5, time.Date(2025, 1, 6, 10, 1, 0, 0, time.Local), "10:05"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorkweek(weekdays, "09:00", "17:00", tc.snap)
			slot := w.NextAvailableStart(tc.now)
			if slot.Start != tc.want {
				t.Errorf("expected start %s, got %s", tc.want, slot.Start)
			}
			if slot.Date.Day() != 6 {
				t.Errorf("expected same day (6), got %d", slot.Date.Day())
			}
		})
	}
}

func TestNextAvailableStart_RoundsPastDayEnd(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)

	// Monday 16:50 rounds to 17:00, which is the end of the day.
	slot := w.NextAvailableStart(time.Date(2025, 1, 6, 16, 50, 0, 0, time.Local))
	if slot.Date.Day() != 7 || slot.Start != "09:00" {
		t.Errorf("expected Tuesday 09:00, got day %d %s", slot.Date.Day(), slot.Start)
	}
}

func TestNextAvailableStart_AfterWorkHours(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)

	// Monday at 6:00 PM - should go to Tuesday
	slot := w.NextAvailableStart(time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local))

	if slot.Start != "09:00" {
		t.Errorf("expected start 09:00, got %s", slot.Start)
	}
	if slot.Date.Day() != 7 {
		t.Errorf("expected next day (7), got %d", slot.Date.Day())
	}
}

func TestNextAvailableStart_Weekend(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)

	// Friday at 6:00 PM - should go to Monday
	slot := w.NextAvailableStart(time.Date(2025, 1, 10, 18, 0, 0, 0, time.Local))

	if slot.Date.Weekday() != time.Monday {
		t.Errorf("expected Monday, got %s", slot.Date.Weekday())
	}
	if slot.Date.Day() != 13 {
		t.Errorf("expected day 13, got %d", slot.Date.Day())
	}
	if got := slot.StartTime(); got != (TimeOfDay{Hour: 9}) {
		t.Errorf("expected 09:00, got %s", got)
	}
}

func TestIsWithinWorkHours(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Monday 10am", time.Date(2025, 1, 6, 10, 0, 0, 0, time.Local), true},
		{"Monday 8am", time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local), false},
		{"Monday 5pm", time.Date(2025, 1, 6, 17, 0, 0, 0, time.Local), false}, // exactly at end
		{"Monday 4:59pm", time.Date(2025, 1, 6, 16, 59, 0, 0, time.Local), true},
		{"Saturday 10am", time.Date(2025, 1, 4, 10, 0, 0, 0, time.Local), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := w.IsWithinWorkHours(tc.date)
			if got != tc.want {
				t.Errorf("IsWithinWorkHours = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckEvent(t *testing.T) {
	w := NewWorkweek(weekdays, "09:00", "17:00", 15)
	at := func(d, h, m int) time.Time { return time.Date(2025, 1, d, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		ev   task.ScheduledEvent
		want string
	}{
		{"fits", task.ScheduledEvent{Start: at(6, 9, 0), End: at(6, 10, 0)}, ""},
		{"ends at day end", task.ScheduledEvent{Start: at(6, 16, 0), End: at(6, 17, 0)}, ""},
		{"weekend", task.ScheduledEvent{Start: at(4, 10, 0), End: at(4, 11, 0)}, "not a workday"},
		{"too early", task.ScheduledEvent{Start: at(6, 8, 0), End: at(6, 9, 0)}, "starts before workday start"},
		{"too late", task.ScheduledEvent{Start: at(6, 16, 30), End: at(6, 17, 30)}, "ends after workday end"},
		{"past midnight", task.ScheduledEvent{Start: at(6, 16, 0), End: at(7, 1, 0)}, "ends after workday end"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.CheckEvent(tc.ev); got != tc.want {
				t.Errorf("CheckEvent = %q, want %q", got, tc.want)
			}
		})
	}
}
