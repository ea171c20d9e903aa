// Package scheduler turns pointer gestures on a time grid into scheduled
// events: pixel/time conversion, snapping, drop/move/resize, same-day
// layout and the drag state machine.
package scheduler

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/workload/internal/task"
)

// DefaultEventDuration is the length of an event created by a drop.
const DefaultEventDuration = time.Hour

// Scheduler creates events. It holds configuration only; every operation
// returns new values and never mutates its inputs.
type Scheduler struct {
	defaultDuration time.Duration
	newID           func() string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithIDFunc sets the event ID generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithDefaultDuration sets the length of dropped events.
func WithDefaultDuration(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.defaultDuration = d
		}
	}
}

// New creates a Scheduler. IDs default to random UUIDs.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		defaultDuration: DefaultEventDuration,
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceDroppedItem creates an event for item starting at hour:minute on date.
// The event lasts the default duration, or the item's remaining hours when
// those are positive and at most one hour. A nil item creates an untitled
// event of the default duration.
func (s *Scheduler) PlaceDroppedItem(item *task.WorkItem, date time.Time, hour, minute int) task.ScheduledEvent {
	start := task.At(date, hour, minute)
	ev := task.ScheduledEvent{
		ID:    s.newID(),
		Start: start,
		End:   start.Add(s.dropDuration(item)),
	}
	if item != nil {
		ev.Title = item.Name
		ev.SourceItemID = item.ID
	}
	return ev
}

func (s *Scheduler) dropDuration(item *task.WorkItem) time.Duration {
	if item == nil {
		return s.defaultDuration
	}
	rem := item.RemainingHours()
	if rem <= 0 || rem > 1 {
		return s.defaultDuration
	}
	minutes := max(1, int(math.Round(rem*60)))
	return time.Duration(minutes) * time.Minute
}
