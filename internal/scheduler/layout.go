package scheduler

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

// PositionedEvent is an event with its column on a day grid.
// Columns is the number of tracks used by the group of events transitively
// overlapping this one, so a renderer can size it as 1/Columns of the day.
type PositionedEvent struct {
	Event   task.ScheduledEvent
	Track   int
	Columns int
}

// LayoutDayEvents assigns tracks to the events of one day so that events
// overlapping in time never share a track. Events are processed in start
// order (ties by end, then ID) and take the lowest free track.
func LayoutDayEvents(events []task.ScheduledEvent) []PositionedEvent {
	sorted := slices.Clone(events)
	slices.SortFunc(sorted, func(a, b task.ScheduledEvent) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if c := a.End.Compare(b.End); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]PositionedEvent, 0, len(sorted))
	var (
		trackEnds    []time.Time
		clusterStart int
		clusterEnd   time.Time
		clusterWidth int
	)

	closeCluster := func() {
		for i := clusterStart; i < len(out); i++ {
			out[i].Columns = clusterWidth
		}
		clusterStart = len(out)
		clusterWidth = 0
		trackEnds = trackEnds[:0]
	}

	for _, ev := range sorted {
		if len(out) > clusterStart && !ev.Start.Before(clusterEnd) {
			closeCluster()
		}

		track := -1
		for i, end := range trackEnds {
			if !end.After(ev.Start) {
				track = i
				break
			}
		}
		if track < 0 {
			track = len(trackEnds)
			trackEnds = append(trackEnds, ev.End)
		} else {
			trackEnds[track] = ev.End
		}

		if len(out) == clusterStart || ev.End.After(clusterEnd) {
			clusterEnd = ev.End
		}
		clusterWidth = max(clusterWidth, track+1)
		out = append(out, PositionedEvent{Event: ev, Track: track})
	}
	closeCluster()
	return out
}

// DayGroup is the events starting on one calendar day.
type DayGroup struct {
	Day    time.Time
	Events []task.ScheduledEvent
}

// GroupByDay splits events by start day, in chronological order.
func GroupByDay(events []task.ScheduledEvent) []DayGroup {
	idx := make(map[string]int)
	var groups []DayGroup
	for _, ev := range events {
		key := dateutil.FormatDate(ev.Start)
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, DayGroup{Day: ev.Day()})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}
	slices.SortFunc(groups, func(a, b DayGroup) int {
		return a.Day.Compare(b.Day)
	})
	return groups
}
