package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/workload/internal/task"
)

func at(h, m int) time.Time {
	return time.Date(2025, 1, 6, h, m, 0, 0, time.UTC)
}

func event(id string, sh, sm, eh, em int) task.ScheduledEvent {
	return task.ScheduledEvent{ID: id, Title: id, Start: at(sh, sm), End: at(eh, em)}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ev-%d", n)
	}
}

func TestPlaceDroppedItem(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		planned float64
		logged  float64
		want    time.Duration
	}{
		{name: "plenty remaining", planned: 10, logged: 2, want: time.Hour},
		{name: "exactly one hour remaining", planned: 5, logged: 4, want: time.Hour},
		{name: "half hour remaining", planned: 4, logged: 3.5, want: 30 * time.Minute},
		{name: "nothing remaining", planned: 4, logged: 4, want: time.Hour},
		{name: "over logged", planned: 4, logged: 6, want: time.Hour},
		{name: "tiny remainder", planned: 1, logged: 0.999, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithIDFunc(sequentialIDs()))
			item := &task.WorkItem{ID: "t1", Name: "Write docs", PlannedHours: tt.planned, LoggedHours: tt.logged}

			ev := s.PlaceDroppedItem(item, day, 9, 45)
			if ev.ID != "ev-1" {
				t.Errorf("got id %q, want ev-1", ev.ID)
			}
			if !ev.Start.Equal(at(9, 45)) {
				t.Errorf("got start %v, want 09:45", ev.Start)
			}
			if ev.Duration() != tt.want {
				t.Errorf("got duration %v, want %v", ev.Duration(), tt.want)
			}
			if ev.SourceItemID != "t1" || ev.Title != "Write docs" {
				t.Errorf("got source %q title %q", ev.SourceItemID, ev.Title)
			}
		})
	}

	t.Run("nil item", func(t *testing.T) {
		s := New(WithIDFunc(sequentialIDs()), WithDefaultDuration(30*time.Minute))
		ev := s.PlaceDroppedItem(nil, day, 14, 0)
		if ev.Duration() != 30*time.Minute || ev.SourceItemID != "" {
			t.Errorf("got %+v", ev)
		}
	})

	t.Run("default ids are unique", func(t *testing.T) {
		s := New()
		a := s.PlaceDroppedItem(nil, day, 9, 0)
		b := s.PlaceDroppedItem(nil, day, 9, 0)
		if a.ID == "" || a.ID == b.ID {
			t.Errorf("got ids %q and %q", a.ID, b.ID)
		}
	})
}

func TestMoveEvent(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15}
	ev := event("a", 9, 0, 10, 30)

	moved := MoveEvent(ev, 47, geo)
	if !moved.Start.Equal(at(9, 45)) || !moved.End.Equal(at(11, 15)) {
		t.Errorf("got %s-%s, want 09:45-11:15", moved.StartClock(), moved.EndClock())
	}
	if moved.Duration() != ev.Duration() {
		t.Errorf("duration changed: %v -> %v", ev.Duration(), moved.Duration())
	}
	if !ev.Start.Equal(at(9, 0)) {
		t.Error("input event was mutated")
	}
}

func TestMoveEvent_Idempotence(t *testing.T) {
	geos := []Geometry{
		{PixelsPerHour: 60, SnapMinutes: 15},
		{PixelsPerHour: 48, OriginHour: 7, SnapMinutes: 15},
		{PixelsPerHour: 100, SnapMinutes: 5},
	}
	ev := event("a", 9, 0, 10, 0)

	for _, geo := range geos {
		for d := -200.0; d <= 200; d += 0.5 {
			back := MoveEvent(MoveEvent(ev, d, geo), -d, geo)
			if !back.Start.Equal(ev.Start) || !back.End.Equal(ev.End) {
				t.Fatalf("geo %+v delta %v: got %s-%s", geo, d, back.StartClock(), back.EndClock())
			}
		}
	}
}

func TestMoveEventTo(t *testing.T) {
	ev := event("a", 9, 0, 10, 30)
	tue := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	got := MoveEventTo(ev, tue, TimeOfDay{Hour: 14, Minute: 15})
	if !got.Start.Equal(time.Date(2025, 1, 7, 14, 15, 0, 0, time.UTC)) || got.Duration() != 90*time.Minute {
		t.Errorf("got %v-%v", got.Start, got.End)
	}
}

func TestResizeEvent(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15}
	ev := event("a", 9, 0, 10, 0)

	tests := []struct {
		name      string
		edge      Edge
		px        float64
		wantOK    bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "extend bottom", edge: EdgeBottom, px: 30, wantOK: true, wantStart: at(9, 0), wantEnd: at(10, 30)},
		{name: "shrink bottom", edge: EdgeBottom, px: -45, wantOK: true, wantStart: at(9, 0), wantEnd: at(9, 15)},
		{name: "pull top earlier", edge: EdgeTop, px: -60, wantOK: true, wantStart: at(8, 0), wantEnd: at(10, 0)},
		{name: "bottom past start rejected", edge: EdgeBottom, px: -90, wantOK: false, wantStart: at(9, 0), wantEnd: at(10, 0)},
		{name: "collapse to zero rejected", edge: EdgeBottom, px: -60, wantOK: false, wantStart: at(9, 0), wantEnd: at(10, 0)},
		{name: "top onto end rejected", edge: EdgeTop, px: 60, wantOK: false, wantStart: at(9, 0), wantEnd: at(10, 0)},
		{name: "sub-snap delta is a no-op", edge: EdgeTop, px: 3, wantOK: false, wantStart: at(9, 0), wantEnd: at(10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResizeEvent(ev, tt.edge, tt.px, geo)
			if ok != tt.wantOK {
				t.Errorf("got ok %v, want %v", ok, tt.wantOK)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("got %s-%s", got.StartClock(), got.EndClock())
			}
		})
	}
}

func TestResizeEvent_NeverNegative(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, SnapMinutes: 15}
	ev := event("a", 9, 0, 9, 30)
	for _, edge := range []Edge{EdgeTop, EdgeBottom} {
		for d := -300.0; d <= 300; d += 1 {
			got, _ := ResizeEvent(ev, edge, d, geo)
			if !got.End.After(got.Start) {
				t.Fatalf("edge %s delta %v: got %s-%s", edge, d, got.StartClock(), got.EndClock())
			}
		}
	}
}

func TestParseEdge(t *testing.T) {
	if e, err := ParseEdge("TOP"); err != nil || e != EdgeTop {
		t.Errorf("got %v, %v", e, err)
	}
	if e, err := ParseEdge("end"); err != nil || e != EdgeBottom {
		t.Errorf("got %v, %v", e, err)
	}
	if _, err := ParseEdge("left"); !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("got error %v, want %v", err, ErrInvalidEdge)
	}
}

func TestOverlapping(t *testing.T) {
	list := []task.ScheduledEvent{
		event("a", 9, 0, 10, 0),
		event("b", 10, 0, 11, 0),
		event("c", 9, 30, 9, 45),
	}
	got := Overlapping(list, event("x", 9, 15, 10, 0))
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("got %v", got)
	}
	if got := Overlapping(list, list[0]); len(got) != 1 || got[0].ID != "c" {
		t.Errorf("self should be excluded, got %v", got)
	}
}
