package allocation

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/task"
)

// Totals aggregates a row of allocations.
type Totals struct {
	Buckets            int
	PlannedHours       float64
	CapacityHours      float64
	LeaveHours         float64
	UtilizationPercent float64
}

// Summarize sums a row of allocations.
func Summarize(allocs []Allocation) Totals {
	var t Totals
	for _, a := range allocs {
		t.Buckets++
		t.PlannedHours += a.PlannedHours
		t.CapacityHours += a.CapacityHours
		t.LeaveHours += a.LeaveHours
	}
	t.UtilizationPercent = Utilization(t.PlannedHours, t.CapacityHours)
	return t
}

// ProjectHours is the hours one project contributes to a bucket.
type ProjectHours struct {
	ProjectID string
	Hours     float64
	Items     int
}

// ProjectBreakdown groups a bucket's contributions by project, ordered by
// hours descending and then project ID.
func ProjectBreakdown(a Allocation) []ProjectHours {
	idx := make(map[string]int)
	var out []ProjectHours
	for _, c := range a.Contributions {
		i, ok := idx[c.ProjectID]
		if !ok {
			i = len(out)
			idx[c.ProjectID] = i
			out = append(out, ProjectHours{ProjectID: c.ProjectID})
		}
		out[i].Hours += c.Hours
		out[i].Items++
	}
	slices.SortFunc(out, func(x, y ProjectHours) int {
		if c := cmp.Compare(y.Hours, x.Hours); c != 0 {
			return c
		}
		return cmp.Compare(x.ProjectID, y.ProjectID)
	})
	return out
}

// BillableUtilization returns billable planned hours as a percentage of all
// planned hours. Returns 0 when nothing is planned.
func BillableUtilization(items []*task.WorkItem) float64 {
	var billable, total float64
	for _, it := range items {
		if it == nil {
			continue
		}
		total += it.PlannedHours
		if it.IsBillable {
			billable += it.PlannedHours
		}
	}
	return Utilization(billable, total)
}

// Row is one person's allocations across a query window.
type Row struct {
	Person      *task.Person
	Allocations []Allocation
	Totals      Totals
}

// ComputeRows runs Compute for every person in the roster.
func ComputeRows(r *task.Roster, res bucket.Resolution, start, end time.Time, opts ...Option) []Row {
	rows := make([]Row, 0, len(r.People))
	for _, p := range r.People {
		allocs := Compute(r.Items, r.Leaves, p, res, start, end, opts...)
		rows = append(rows, Row{Person: p, Allocations: allocs, Totals: Summarize(allocs)})
	}
	return rows
}

// TeamStats summarizes utilization across people.
type TeamStats struct {
	People             int
	TotalPlanned       float64
	TotalCapacity      float64
	AverageUtilization float64
	Over               int
	Optimal            int
	Under              int
}

// Team aggregates rows. Each person is classified on their own totals with
// the weekly thresholds.
func Team(rows []Row, th Thresholds) TeamStats {
	var s TeamStats
	for _, r := range rows {
		s.People++
		s.TotalPlanned += r.Totals.PlannedHours
		s.TotalCapacity += r.Totals.CapacityHours
		switch th.ClassifyWeekly(r.Totals.UtilizationPercent) {
		case WeeklyOver:
			s.Over++
		case WeeklyOptimal:
			s.Optimal++
		default:
			s.Under++
		}
	}
	s.AverageUtilization = Utilization(s.TotalPlanned, s.TotalCapacity)
	return s
}
