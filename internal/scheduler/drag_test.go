package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/workload/internal/task"
)

func TestDragSession_Click(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60, SnapMinutes: 15}, 0)
	ev := event("a", 9, 0, 10, 0)

	if err := d.PointerDown(ev, DragMove, 100, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State() != StateDragging {
		t.Fatalf("got state %s, want dragging", d.State())
	}

	preview := d.PointerMove(103, 103) // ~4.2px, below threshold
	if !preview.Start.Equal(ev.Start) {
		t.Errorf("preview moved before threshold")
	}
	if d.State() != StateDragging {
		t.Errorf("got state %s, want dragging", d.State())
	}

	in, ok := d.PointerUp(103, 103)
	if !ok || in.Kind != IntentOpen || in.Event.ID != "a" {
		t.Errorf("got %+v, %v; want open intent", in, ok)
	}
	if d.State() != StateIdle {
		t.Errorf("got state %s, want idle", d.State())
	}
}

func TestDragSession_Move(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60, SnapMinutes: 15}, 5)
	ev := event("a", 9, 0, 10, 0)

	_ = d.PointerDown(ev, DragMove, 0, 0)
	d.PointerMove(0, 5) // exactly the threshold
	if d.State() != StateMoved {
		t.Fatalf("got state %s, want moved", d.State())
	}

	preview := d.PointerMove(0, 32)
	if !preview.Start.Equal(at(9, 30)) {
		t.Errorf("preview: got %s, want 09:30", preview.StartClock())
	}

	in, ok := d.PointerUp(0, 44)
	if !ok || in.Kind != IntentMove {
		t.Fatalf("got %+v, %v; want move intent", in, ok)
	}
	if !in.Event.Start.Equal(at(9, 45)) || !in.Event.End.Equal(at(10, 45)) {
		t.Errorf("got %s-%s, want 09:45-10:45", in.Event.StartClock(), in.Event.EndClock())
	}
	if !in.Previous.Start.Equal(ev.Start) {
		t.Errorf("previous: got %s", in.Previous.StartClock())
	}
	if d.State() != StateCommitted {
		t.Errorf("got state %s, want committed", d.State())
	}
}

func TestDragSession_MoveAcrossDays(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60, SnapMinutes: 15, DayWidth: 120}, 5)
	ev := event("a", 9, 0, 10, 0)

	_ = d.PointerDown(ev, DragMove, 0, 0)
	in, ok := d.PointerUp(130, 0)
	if !ok {
		t.Fatal("expected intent")
	}
	want := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)
	if !in.Event.Start.Equal(want) {
		t.Errorf("got %v, want %v", in.Event.Start, want)
	}
}

func TestDragSession_Resize(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, SnapMinutes: 15}
	ev := event("a", 9, 0, 10, 0)

	t.Run("bottom edge", func(t *testing.T) {
		d := NewDragSession(geo, 5)
		_ = d.PointerDown(ev, DragResizeBottom, 0, 0)
		in, ok := d.PointerUp(0, 30)
		if !ok || in.Kind != IntentResize {
			t.Fatalf("got %+v, %v", in, ok)
		}
		if !in.Event.End.Equal(at(10, 30)) || !in.Event.Start.Equal(ev.Start) {
			t.Errorf("got %s-%s", in.Event.StartClock(), in.Event.EndClock())
		}
	})

	t.Run("invalid resize keeps last valid preview", func(t *testing.T) {
		d := NewDragSession(geo, 5)
		_ = d.PointerDown(ev, DragResizeBottom, 0, 0)
		d.PointerMove(0, -30) // 09:00-09:30
		preview := d.PointerMove(0, -90)
		if !preview.End.Equal(at(9, 30)) {
			t.Errorf("got end %s, want 09:30", preview.EndClock())
		}
		in, ok := d.PointerUp(0, -120)
		if !ok || !in.Event.End.After(in.Event.Start) {
			t.Errorf("got %+v, %v", in, ok)
		}
	})

	t.Run("top edge", func(t *testing.T) {
		d := NewDragSession(geo, 5)
		_ = d.PointerDown(ev, DragResizeTop, 0, 0)
		in, _ := d.PointerUp(0, 15)
		if !in.Event.Start.Equal(at(9, 15)) || !in.Event.End.Equal(ev.End) {
			t.Errorf("got %s-%s", in.Event.StartClock(), in.Event.EndClock())
		}
	})
}

func TestDragSession_MovedButSnappedBack(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60, SnapMinutes: 15}, 5)
	_ = d.PointerDown(event("a", 9, 0, 10, 0), DragMove, 0, 0)
	if in, ok := d.PointerUp(0, 6); ok {
		t.Errorf("expected no intent, got %+v", in)
	}
}

func TestDragSession_Cancel(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60, SnapMinutes: 15}, 5)
	ev := event("a", 9, 0, 10, 0)

	_ = d.PointerDown(ev, DragMove, 0, 0)
	d.PointerMove(0, 120)
	restored := d.Cancel()
	if !restored.Start.Equal(ev.Start) || !d.Preview().Start.Equal(ev.Start) {
		t.Errorf("cancel did not restore origin")
	}
	if d.State() != StateCancelled {
		t.Errorf("got state %s, want cancelled", d.State())
	}
	if _, ok := d.PointerUp(0, 120); ok {
		t.Error("cancelled drag must not emit an intent")
	}
}

func TestDragSession_Reentry(t *testing.T) {
	d := NewDragSession(Geometry{PixelsPerHour: 60}, 5)
	ev := event("a", 9, 0, 10, 0)

	_ = d.PointerDown(ev, DragMove, 0, 0)
	if err := d.PointerDown(ev, DragMove, 0, 0); !errors.Is(err, ErrDragActive) {
		t.Errorf("got error %v, want %v", err, ErrDragActive)
	}
	d.Cancel()
	if err := d.PointerDown(ev, DragMove, 0, 0); err != nil {
		t.Errorf("session should be reusable after cancel: %v", err)
	}
}

func TestApply(t *testing.T) {
	list := []task.ScheduledEvent{event("a", 9, 0, 10, 0), event("b", 11, 0, 12, 0)}

	created := Apply(list, CreateIntent(event("c", 13, 0, 14, 0)))
	if len(created) != 3 || len(list) != 2 {
		t.Fatalf("create: got %d events, input now %d", len(created), len(list))
	}

	moved := MoveEvent(list[0], 60, Geometry{PixelsPerHour: 60})
	after := Apply(list, Intent{Kind: IntentMove, Event: moved, Previous: list[0]})
	if !after[0].Start.Equal(at(10, 0)) || !list[0].Start.Equal(at(9, 0)) {
		t.Errorf("move: got %s, input %s", after[0].StartClock(), list[0].StartClock())
	}

	deleted := Apply(list, DeleteIntent(list[1]))
	if len(deleted) != 1 || deleted[0].ID != "a" {
		t.Errorf("delete: got %v", deleted)
	}

	opened := Apply(list, Intent{Kind: IntentOpen, Event: list[0]})
	if len(opened) != 2 {
		t.Errorf("open: got %v", opened)
	}

	if again := Apply(created, CreateIntent(event("c", 13, 0, 14, 0))); len(again) != 3 {
		t.Errorf("duplicate create: got %d events, want 3", len(again))
	}
}
