package scheduler

import (
	"slices"

	"github.com/javiermolinar/workload/internal/task"
)

// IntentKind is the mutation a caller should apply.
type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentMove   IntentKind = "move"
	IntentResize IntentKind = "resize"
	IntentDelete IntentKind = "delete"
	IntentOpen   IntentKind = "open"
)

// Intent is an event mutation produced by a gesture. Previous holds the
// event before the change for move and resize.
type Intent struct {
	Kind     IntentKind
	Event    task.ScheduledEvent
	Previous task.ScheduledEvent
}

// CreateIntent wraps a newly placed event.
func CreateIntent(ev task.ScheduledEvent) Intent {
	return Intent{Kind: IntentCreate, Event: ev}
}

// DeleteIntent requests removal of ev.
func DeleteIntent(ev task.ScheduledEvent) Intent {
	return Intent{Kind: IntentDelete, Event: ev, Previous: ev}
}

// Apply returns a new list with the intent folded in. The input list is not
// modified. Open intents and unknown IDs leave the list unchanged.
func Apply(events []task.ScheduledEvent, in Intent) []task.ScheduledEvent {
	out := slices.Clone(events)
	idx := slices.IndexFunc(out, func(e task.ScheduledEvent) bool {
		return e.ID == in.Event.ID
	})

	switch in.Kind {
	case IntentCreate:
		if idx < 0 {
			out = append(out, in.Event)
		}
	case IntentMove, IntentResize:
		if idx >= 0 {
			out[idx] = in.Event
		}
	case IntentDelete:
		if idx >= 0 {
			out = slices.Delete(out, idx, idx+1)
		}
	}
	return out
}
