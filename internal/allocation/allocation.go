// Package allocation distributes planned work hours over calendar buckets
// and compares them against each person's capacity.
package allocation

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/dateutil"
	"github.com/javiermolinar/workload/internal/task"
)

// DefaultDayCapHours is the most a single item contributes to one day.
const DefaultDayCapHours = 8

// DefaultHalfDayFraction is the share of a day a half-day leave consumes.
const DefaultHalfDayFraction = 0.5

// Contribution is one work item's prorated share of a bucket.
type Contribution struct {
	ItemID     string
	Name       string
	ProjectID  string
	IsBillable bool
	Hours      float64
}

// Allocation is the planned load of one person in one bucket.
type Allocation struct {
	EntityID           string
	Bucket             bucket.Bucket
	PlannedHours       float64
	CapacityHours      float64
	LeaveHours         float64
	UtilizationPercent float64
	Contributions      []Contribution
}

// IsEmpty reports whether nothing is planned in the bucket.
func (a Allocation) IsEmpty() bool {
	return a.PlannedHours == 0
}

// AvailableHours returns capacity not yet planned, never negative.
func (a Allocation) AvailableHours() float64 {
	return max(0, a.CapacityHours-a.PlannedHours)
}

type options struct {
	dayCap  float64
	halfDay float64
}

// Option configures Compute.
type Option func(*options)

// WithDayCap sets the per-item ceiling applied at day resolution.
// A value of zero or less disables the cap.
func WithDayCap(hours float64) Option {
	return func(o *options) {
		o.dayCap = hours
	}
}

// WithHalfDayFraction sets the share of a day a half-day leave consumes.
func WithHalfDayFraction(f float64) Option {
	return func(o *options) {
		if f >= 0 && f <= 1 {
			o.halfDay = f
		}
	}
}

// Compute returns one Allocation per bucket of resolution res that
// intersects [rangeStart, rangeEnd], in chronological order.
//
// Items and leaves not belonging to person are ignored, so callers may pass
// roster-wide slices. Records are assumed valid; see task.ValidateWorkItem.
func Compute(items []*task.WorkItem, leaves []*task.Leave, person *task.Person, res bucket.Resolution, rangeStart, rangeEnd time.Time, opts ...Option) []Allocation {
	o := options{dayCap: DefaultDayCapHours, halfDay: DefaultHalfDayFraction}
	for _, opt := range opts {
		opt(&o)
	}

	entityID := ""
	if person != nil {
		entityID = person.ID
	}
	daily := person.DailyHours()

	mine := make([]*task.WorkItem, 0, len(items))
	for _, it := range items {
		if it != nil && belongs(entityID, it.AssigneeID) {
			mine = append(mine, it)
		}
	}
	var absences []*task.Leave
	for _, l := range leaves {
		if l != nil && l.ReducesCapacity() && belongs(entityID, l.UserID) {
			absences = append(absences, l)
		}
	}

	buckets := bucket.Enumerate(res, rangeStart, rangeEnd)
	out := make([]Allocation, 0, len(buckets))
	for _, b := range buckets {
		a := Allocation{EntityID: entityID, Bucket: b}

		for _, it := range mine {
			h := ItemHoursInBucket(it, b)
			if res == bucket.Day && o.dayCap > 0 {
				h = min(h, o.dayCap)
			}
			if h <= 0 {
				continue
			}
			a.PlannedHours += h
			a.Contributions = append(a.Contributions, Contribution{
				ItemID:     it.ID,
				Name:       it.Name,
				ProjectID:  it.ProjectID,
				IsBillable: it.IsBillable,
				Hours:      h,
			})
		}
		sortContributions(a.Contributions)

		base := float64(b.WorkingDayCount()) * daily
		a.LeaveHours = min(base, leaveHours(absences, b, daily, o.halfDay))
		a.CapacityHours = max(0, base-a.LeaveHours)
		a.UtilizationPercent = Utilization(a.PlannedHours, a.CapacityHours)

		out = append(out, a)
	}
	return out
}

func belongs(entityID, ownerID string) bool {
	return entityID == "" || ownerID == "" || ownerID == entityID
}

// ItemHoursInBucket returns the share of item's planned hours falling in b.
// Hours are spread evenly over the item's weekdays. An item spanning only
// weekend days counts as one working day on its start date.
func ItemHoursInBucket(item *task.WorkItem, b bucket.Bucket) float64 {
	if item.PlannedHours <= 0 {
		return 0
	}

	span := item.SpanWorkingDays()
	var overlap int
	if span == 0 {
		span = 1
		if b.Contains(item.StartDate) {
			overlap = 1
		}
	} else if start, end, ok := dateutil.Intersect(item.StartDate, item.EndDate, b.Start, b.End); ok {
		overlap = dateutil.WorkingDays(start, end)
	}
	if overlap == 0 {
		return 0
	}
	return item.PlannedHours * float64(overlap) / float64(span)
}

func leaveHours(leaves []*task.Leave, b bucket.Bucket, daily, halfDay float64) float64 {
	var total float64
	for _, l := range leaves {
		start, end, ok := dateutil.Intersect(l.StartDate, l.EndDate, b.Start, b.End)
		if !ok {
			continue
		}
		total += float64(dateutil.WorkingDays(start, end)) * daily * l.DayFraction(halfDay)
	}
	return total
}

// Utilization returns planned as a percentage of capacity, 0 when capacity is 0.
func Utilization(planned, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return planned / capacity * 100
}

// sortContributions orders by hours descending, then item ID ascending.
func sortContributions(cs []Contribution) {
	slices.SortStableFunc(cs, func(a, b Contribution) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID, b.ItemID)
	})
}
