package task

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidRecord is matched by every *InvalidRecordError.
var ErrInvalidRecord = errors.New("invalid record")

// InvalidRecordError describes a record rejected at ingestion.
type InvalidRecordError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

// Is reports whether target is ErrInvalidRecord.
func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func invalid(kind, id, format string, args ...any) error {
	return &InvalidRecordError{Kind: kind, ID: id, Reason: fmt.Sprintf(format, args...)}
}

func badHours(h float64) bool {
	return h < 0 || math.IsNaN(h) || math.IsInf(h, 0)
}

func checkSpan(kind, id string, start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return invalid(kind, id, "start and end dates are required")
	}
	if end.Before(start) {
		return invalid(kind, id, "end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}

// ValidateWorkItem checks the invariants the aggregator relies on.
func ValidateWorkItem(w *WorkItem) error {
	if w == nil {
		return invalid("work item", "", "nil record")
	}
	if w.ID == "" {
		return invalid("work item", "", "id is required")
	}
	if w.AssigneeID == "" {
		return invalid("work item", w.ID, "assignee is required")
	}
	if err := checkSpan("work item", w.ID, w.StartDate, w.EndDate); err != nil {
		return err
	}
	if badHours(w.PlannedHours) {
		return invalid("work item", w.ID, "planned hours must be a non-negative number, got %v", w.PlannedHours)
	}
	if badHours(w.LoggedHours) {
		return invalid("work item", w.ID, "logged hours must be a non-negative number, got %v", w.LoggedHours)
	}
	if w.Status != "" && !w.Status.Valid() {
		return invalid("work item", w.ID, "%v", ErrInvalidStatus)
	}
	if w.AllocationType != "" && !w.AllocationType.Valid() {
		return invalid("work item", w.ID, "%v", ErrInvalidAllocation)
	}
	return nil
}

// ValidateLeave checks a leave record.
func ValidateLeave(l *Leave) error {
	if l == nil {
		return invalid("leave", "", "nil record")
	}
	if l.UserID == "" {
		return invalid("leave", l.ID, "user is required")
	}
	if err := checkSpan("leave", l.ID, l.StartDate, l.EndDate); err != nil {
		return err
	}
	if !l.Type.Valid() {
		return invalid("leave", l.ID, "%v", ErrInvalidLeaveType)
	}
	if !l.Status.Valid() {
		return invalid("leave", l.ID, "%v", ErrInvalidLeaveStatus)
	}
	return nil
}

// ValidatePerson checks a person record.
func ValidatePerson(p *Person) error {
	if p == nil {
		return invalid("person", "", "nil record")
	}
	if p.ID == "" {
		return invalid("person", "", "id is required")
	}
	if badHours(p.WeeklyCapacityHours) || p.WeeklyCapacityHours > 7*24 {
		return invalid("person", p.ID, "weekly capacity must be between 0 and 168 hours, got %v", p.WeeklyCapacityHours)
	}
	return nil
}

// ValidateProject checks a project record.
func ValidateProject(p *Project) error {
	if p == nil {
		return invalid("project", "", "nil record")
	}
	if p.ID == "" {
		return invalid("project", "", "id is required")
	}
	return nil
}

// ValidateEvent checks that a scheduled event has a positive duration.
func ValidateEvent(e *ScheduledEvent) error {
	if e == nil {
		return invalid("event", "", "nil record")
	}
	if e.ID == "" {
		return invalid("event", "", "id is required")
	}
	if !e.End.After(e.Start) {
		return invalid("event", e.ID, "end %s must be after start %s",
			e.End.Format(time.DateTime), e.Start.Format(time.DateTime))
	}
	return nil
}
