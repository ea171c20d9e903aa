package scheduler

import (
	"errors"
	"math"

	"github.com/javiermolinar/workload/internal/task"
)

// DefaultDragThreshold is the pointer travel, in pixels, separating a click
// from a drag.
const DefaultDragThreshold = 5

// ErrDragActive is returned when a drag starts while another is in progress.
var ErrDragActive = errors.New("a drag is already in progress")

// DragState is the phase of a drag interaction.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
	StateMoved
	StateCommitted
	StateCancelled
)

func (s DragState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateMoved:
		return "moved"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// DragKind is what a drag does to its event.
type DragKind int

const (
	DragMove DragKind = iota
	DragResizeTop
	DragResizeBottom
)

// DragSession tracks one pointer interaction on an event:
//
//	Idle -> Dragging (pointer down)
//	Dragging -> Moved (travel >= threshold)
//	Dragging -> Idle (pointer up: open intent)
//	Moved -> Committed (pointer up: move or resize intent)
//	Dragging|Moved -> Cancelled (no intent, origin restored)
//
// A session can be reused once it is Idle, Committed or Cancelled.
type DragSession struct {
	geo       Geometry
	threshold float64

	state   DragState
	kind    DragKind
	origin  task.ScheduledEvent
	current task.ScheduledEvent
	startX  float64
	startY  float64
}

// NewDragSession creates an idle session. A threshold of zero or less uses
// DefaultDragThreshold.
func NewDragSession(g Geometry, threshold float64) *DragSession {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragSession{geo: g, threshold: threshold}
}

// State returns the current phase.
func (d *DragSession) State() DragState {
	return d.state
}

// Origin returns the event as it was at pointer down.
func (d *DragSession) Origin() task.ScheduledEvent {
	return d.origin
}

// Preview returns the event as it would be committed now.
func (d *DragSession) Preview() task.ScheduledEvent {
	return d.current
}

func (d *DragSession) active() bool {
	return d.state == StateDragging || d.state == StateMoved
}

// PointerDown starts a drag on ev at pointer position (x, y).
func (d *DragSession) PointerDown(ev task.ScheduledEvent, kind DragKind, x, y float64) error {
	if d.active() {
		return ErrDragActive
	}
	d.state = StateDragging
	d.kind = kind
	d.origin = ev
	d.current = ev
	d.startX = x
	d.startY = y
	return nil
}

// PointerMove updates the pointer position and returns the preview event.
// The preview stays at the origin until the pointer has travelled at least
// the threshold.
func (d *DragSession) PointerMove(x, y float64) task.ScheduledEvent {
	if !d.active() {
		return d.current
	}
	dx, dy := x-d.startX, y-d.startY
	if d.state == StateDragging && math.Hypot(dx, dy) >= d.threshold {
		d.state = StateMoved
	}
	if d.state == StateMoved {
		d.current = d.project(dx, dy)
	}
	return d.current
}

func (d *DragSession) project(dx, dy float64) task.ScheduledEvent {
	switch d.kind {
	case DragResizeTop, DragResizeBottom:
		edge := EdgeBottom
		if d.kind == DragResizeTop {
			edge = EdgeTop
		}
		if ev, ok := ResizeEvent(d.origin, edge, dy, d.geo); ok {
			return ev
		}
		// An invalid resize keeps the last valid preview.
		return d.current
	default:
		return ShiftDays(MoveEvent(d.origin, dy, d.geo), DayDelta(d.geo, dx))
	}
}

// PointerUp ends the interaction at (x, y). Below the threshold it is a
// click and yields an open intent. Past the threshold it yields a move or
// resize intent; ok is false when the snapped result equals the origin.
func (d *DragSession) PointerUp(x, y float64) (Intent, bool) {
	if !d.active() {
		return Intent{}, false
	}
	d.PointerMove(x, y)

	if d.state == StateDragging {
		d.state = StateIdle
		return Intent{Kind: IntentOpen, Event: d.origin}, true
	}

	d.state = StateCommitted
	if d.current.Start.Equal(d.origin.Start) && d.current.End.Equal(d.origin.End) {
		return Intent{}, false
	}
	kind := IntentMove
	if d.kind != DragMove {
		kind = IntentResize
	}
	return Intent{Kind: kind, Event: d.current, Previous: d.origin}, true
}

// Cancel aborts the interaction and returns the original event.
func (d *DragSession) Cancel() task.ScheduledEvent {
	if d.active() {
		d.state = StateCancelled
		d.current = d.origin
	}
	return d.origin
}
