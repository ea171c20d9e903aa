package scheduler

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/workload/internal/task"
)

// ErrInvalidEdge is returned for an unknown resize edge.
var ErrInvalidEdge = errors.New("edge must be 'top' or 'bottom'")

// Edge is the side of an event being resized.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
)

func (e Edge) String() string {
	if e == EdgeTop {
		return "top"
	}
	return "bottom"
}

// ParseEdge converts "top" or "bottom" to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "start":
		return EdgeTop, nil
	case "bottom", "end":
		return EdgeBottom, nil
	default:
		return 0, ErrInvalidEdge
	}
}

// MoveEvent shifts both ends of ev by the snapped minute delta, keeping the
// duration exact.
func MoveEvent(ev task.ScheduledEvent, pixelDelta float64, g Geometry) task.ScheduledEvent {
	d := time.Duration(SnapDelta(g, pixelDelta)) * time.Minute
	ev.Start = ev.Start.Add(d)
	ev.End = ev.End.Add(d)
	return ev
}

// MoveEventTo places ev at tod on day, keeping its duration.
func MoveEventTo(ev task.ScheduledEvent, day time.Time, tod TimeOfDay) task.ScheduledEvent {
	dur := ev.Duration()
	ev.Start = task.At(day, tod.Hour, tod.Minute)
	ev.End = ev.Start.Add(dur)
	return ev
}

// ShiftDays moves ev by whole calendar days.
func ShiftDays(ev task.ScheduledEvent, days int) task.ScheduledEvent {
	if days == 0 {
		return ev
	}
	ev.Start = ev.Start.AddDate(0, 0, days)
	ev.End = ev.End.AddDate(0, 0, days)
	return ev
}

// ResizeEvent moves one edge of ev by the snapped minute delta. It returns
// ev unchanged and false when the delta snaps to zero or the result would
// end at or before its start.
func ResizeEvent(ev task.ScheduledEvent, edge Edge, pixelDelta float64, g Geometry) (task.ScheduledEvent, bool) {
	minutes := SnapDelta(g, pixelDelta)
	if minutes == 0 {
		return ev, false
	}
	d := time.Duration(minutes) * time.Minute

	out := ev
	if edge == EdgeTop {
		out.Start = out.Start.Add(d)
	} else {
		out.End = out.End.Add(d)
	}
	if !out.End.After(out.Start) {
		return ev, false
	}
	return out, true
}

// Overlapping returns the events in list that share time with ev, excluding
// ev itself.
func Overlapping(list []task.ScheduledEvent, ev task.ScheduledEvent) []task.ScheduledEvent {
	var out []task.ScheduledEvent
	for _, other := range list {
		if other.ID != ev.ID && other.OverlapsWith(ev) {
			out = append(out, other)
		}
	}
	return out
}
