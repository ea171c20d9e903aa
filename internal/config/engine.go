package config

import (
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/scheduler"
)

// AllocationThresholds returns the configured status bands.
func (c *Config) AllocationThresholds() allocation.Thresholds {
	th := c.Thresholds
	return allocation.Thresholds{
		AvailableBelow:   th.AvailableBelow,
		OverallocatedAt:  th.OverallocatedAt,
		WeeklyUnderBelow: th.WeeklyUnderBelow,
		WeeklyOverAbove:  th.WeeklyOverAbove,
	}
}

// AllocationOptions returns the aggregator options for the capacity section.
func (c *Config) AllocationOptions() []allocation.Option {
	return []allocation.Option{
		allocation.WithDayCap(c.Capacity.DayCapHours),
		allocation.WithHalfDayFraction(c.Capacity.HalfDayFraction),
	}
}

// Geometry returns the calendar grid geometry.
func (c *Config) Geometry() scheduler.Geometry {
	return scheduler.Geometry{
		PixelsPerHour: c.Grid.PixelsPerHour,
		OriginHour:    c.Grid.OriginHour,
		SnapMinutes:   c.Grid.SnapMinutes,
		DayWidth:      c.Grid.DayWidthPx,
	}
}

// Workweek returns the configured working days and hours.
func (c *Config) Workweek() *scheduler.Workweek {
	s := c.Schedule
	return scheduler.NewWorkweek(s.Workdays, s.DayStart, s.DayEnd, c.Grid.SnapMinutes)
}

// Scheduler returns an event scheduler using the configured drop duration.
func (c *Config) Scheduler() *scheduler.Scheduler {
	d := time.Duration(c.Grid.DefaultEventMinutes) * time.Minute
	return scheduler.New(scheduler.WithDefaultDuration(d))
}
