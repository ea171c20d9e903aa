// Package task defines the records the workload engine computes over.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
)

// Domain errors.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidStatus     = errors.New("status must be one of todo, in_progress, completed, blocked")
	ErrInvalidAllocation = errors.New("allocation type must be 'soft' or 'hard'")
)

// Status represents the state of a work item.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	default:
		return false
	}
}

// AllocationType distinguishes committed work from tentative bookings.
type AllocationType string

const (
	AllocationSoft AllocationType = "soft"
	AllocationHard AllocationType = "hard"
)

// Valid returns true if the allocation type is a known value.
func (a AllocationType) Valid() bool {
	return a == AllocationSoft || a == AllocationHard
}

// WorkItem is a unit of planned work assigned to one person over an
// inclusive date span. PlannedHours covers the whole span, not a single day.
type WorkItem struct {
	ID             string
	Name           string
	AssigneeID     string
	ProjectID      string
	StartDate      time.Time
	EndDate        time.Time
	PlannedHours   float64
	LoggedHours    float64
	IsBillable     bool
	Status         Status
	AllocationType AllocationType
}

// NewWorkItem creates a validated WorkItem from user-supplied strings.
// Dates use YYYY-MM-DD; an empty end date defaults to the start date.
func NewWorkItem(id, name, assigneeID, projectID, start, end string, planned float64) (*WorkItem, error) {
	dr, err := dateutil.NewDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("item %s dates: %w", id, err)
	}

	item := &WorkItem{
		ID:             id,
		Name:           strings.TrimSpace(name),
		AssigneeID:     assigneeID,
		ProjectID:      projectID,
		StartDate:      dr.Start,
		EndDate:        dr.End,
		PlannedHours:   planned,
		Status:         StatusTodo,
		AllocationType: AllocationHard,
	}
	if err := ValidateWorkItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusTodo, nil
	}
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ParseAllocationType converts a string to an AllocationType.
func ParseAllocationType(s string) (AllocationType, error) {
	a := AllocationType(strings.ToLower(strings.TrimSpace(s)))
	if a == "" {
		return AllocationHard, nil
	}
	if !a.Valid() {
		return "", ErrInvalidAllocation
	}
	return a, nil
}

// RemainingHours returns planned minus logged hours, never negative.
func (w *WorkItem) RemainingHours() float64 {
	return max(0, w.PlannedHours-w.LoggedHours)
}

// Overlaps reports whether the item's span shares at least one day with [start, end].
func (w *WorkItem) Overlaps(start, end time.Time) bool {
	return dateutil.Overlaps(w.StartDate, w.EndDate, start, end)
}

// SpanWorkingDays returns the weekdays in the item's full span.
func (w *WorkItem) SpanWorkingDays() int {
	return dateutil.WorkingDays(w.StartDate, w.EndDate)
}

// IsDone returns true if the item is completed.
func (w *WorkItem) IsDone() bool {
	return w.Status == StatusCompleted
}
