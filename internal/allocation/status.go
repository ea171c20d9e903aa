package allocation

// Status classifies a bucket's utilization.
type Status string

const (
	StatusNone          Status = "none"
	StatusAvailable     Status = "available"
	StatusOptimal       Status = "optimal"
	StatusOverallocated Status = "overallocated"
)

// WeeklyStatus classifies utilization in weekly and team summaries.
type WeeklyStatus string

const (
	WeeklyUnder   WeeklyStatus = "under"
	WeeklyOptimal WeeklyStatus = "optimal"
	WeeklyOver    WeeklyStatus = "over"
)

// Thresholds are utilization percentages separating the status bands.
type Thresholds struct {
	AvailableBelow   float64 // below: available
	OverallocatedAt  float64 // at or above: overallocated
	WeeklyUnderBelow float64 // below: under
	WeeklyOverAbove  float64 // above: over
}

// DefaultThresholds returns the standard bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AvailableBelow:   50,
		OverallocatedAt:  100,
		WeeklyUnderBelow: 70,
		WeeklyOverAbove:  100,
	}
}

// Classify maps a utilization percentage to a Status.
func (t Thresholds) Classify(pct float64) Status {
	switch {
	case pct >= t.OverallocatedAt:
		return StatusOverallocated
	case pct >= t.AvailableBelow:
		return StatusOptimal
	default:
		return StatusAvailable
	}
}

// ClassifyWeekly maps a utilization percentage to a WeeklyStatus.
func (t Thresholds) ClassifyWeekly(pct float64) WeeklyStatus {
	switch {
	case pct > t.WeeklyOverAbove:
		return WeeklyOver
	case pct >= t.WeeklyUnderBelow:
		return WeeklyOptimal
	default:
		return WeeklyUnder
	}
}

// CellStatus classifies an allocation, returning StatusNone when nothing is
// planned. Planned hours against zero capacity are overallocated.
func (t Thresholds) CellStatus(a Allocation) Status {
	if a.PlannedHours == 0 {
		return StatusNone
	}
	if a.CapacityHours <= 0 {
		return StatusOverallocated
	}
	return t.Classify(a.UtilizationPercent)
}

// Classify maps a utilization percentage using the default thresholds.
func Classify(pct float64) Status {
	return DefaultThresholds().Classify(pct)
}

// ClassifyWeekly maps a utilization percentage using the default weekly thresholds.
func ClassifyWeekly(pct float64) WeeklyStatus {
	return DefaultThresholds().ClassifyWeekly(pct)
}
