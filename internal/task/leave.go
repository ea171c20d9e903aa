package task

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
)

var (
	ErrInvalidLeaveType   = errors.New("leave type must be one of vacation, sick, personal, holiday, training, wfh")
	ErrInvalidLeaveStatus = errors.New("leave status must be one of approved, pending, denied")
)

// LeaveType is the reason for an absence.
type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveHoliday  LeaveType = "holiday"
	LeaveTraining LeaveType = "training"
	LeaveWFH      LeaveType = "wfh"
)

// Valid returns true if the leave type is a known value.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveVacation, LeaveSick, LeavePersonal, LeaveHoliday, LeaveTraining, LeaveWFH:
		return true
	default:
		return false
	}
}

// LeaveStatus is the approval state of a leave request.
type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "approved"
	LeavePending  LeaveStatus = "pending"
	LeaveDenied   LeaveStatus = "denied"
)

// Valid returns true if the leave status is a known value.
func (s LeaveStatus) Valid() bool {
	return s == LeaveApproved || s == LeavePending || s == LeaveDenied
}

// Leave is an absence of one person over an inclusive date span.
type Leave struct {
	ID          string
	UserID      string
	Type        LeaveType
	StartDate   time.Time
	EndDate     time.Time
	Status      LeaveStatus
	IsHalfDay   bool
	Description string
}

// ParseLeaveType converts a string to a LeaveType.
func ParseLeaveType(s string) (LeaveType, error) {
	t := LeaveType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidLeaveType
	}
	return t, nil
}

// ParseLeaveStatus converts a string to a LeaveStatus. Empty means pending.
func ParseLeaveStatus(s string) (LeaveStatus, error) {
	st := LeaveStatus(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return LeavePending, nil
	}
	if !st.Valid() {
		return "", ErrInvalidLeaveStatus
	}
	return st, nil
}

// ReducesCapacity reports whether the leave counts against available hours.
func (l *Leave) ReducesCapacity() bool {
	return l.Status == LeaveApproved
}

// Overlaps reports whether the leave shares at least one day with [start, end].
func (l *Leave) Overlaps(start, end time.Time) bool {
	return dateutil.Overlaps(l.StartDate, l.EndDate, start, end)
}

// DayFraction is the share of a working day each leave day consumes.
func (l *Leave) DayFraction(halfDay float64) float64 {
	if l.IsHalfDay {
		return halfDay
	}
	return 1
}
