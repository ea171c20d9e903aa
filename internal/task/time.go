package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a clock value is not HH:MM.
var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock validates an "HH:MM" string and returns hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 {
		return 0, 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a date with a clock time in the date's location.
func At(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
