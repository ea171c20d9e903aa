package scheduler

import (
	"fmt"
	"math"
)

// DefaultSnapMinutes is the grid granularity when none is configured.
const DefaultSnapMinutes = 15

// Geometry maps pixels on a vertical time grid to times of day.
// PixelsPerHour must be positive.
type Geometry struct {
	PixelsPerHour float64
	OriginHour    int // hour shown at pixel 0
	SnapMinutes   int
	DayWidth      float64 // pixels per day column, 0 disables horizontal moves
}

// DefaultGeometry returns a one-pixel-per-minute grid starting at midnight.
func DefaultGeometry() Geometry {
	return Geometry{PixelsPerHour: 60, SnapMinutes: DefaultSnapMinutes}
}

func (g Geometry) snap() int {
	if g.SnapMinutes <= 0 {
		return DefaultSnapMinutes
	}
	return g.SnapMinutes
}

// TimeOfDay is an hour and minute on the grid. Hour may exceed 23 when a
// pixel lies below the last hour row.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// PixelToTime converts a vertical pixel offset to a snapped time of day.
// A minute that rounds up to 60 carries into the next hour.
func PixelToTime(g Geometry, px float64) TimeOfDay {
	snap := float64(g.snap())
	hours := math.Floor(px / g.PixelsPerHour)
	frac := (px - hours*g.PixelsPerHour) / g.PixelsPerHour

	t := TimeOfDay{
		Hour:   g.OriginHour + int(hours),
		Minute: int(math.Round(frac*60/snap) * snap),
	}
	if t.Minute >= 60 {
		t.Hour++
		t.Minute -= 60
	}
	return t
}

// TimeToPixel returns the pixel offset of a time of day.
func TimeToPixel(g Geometry, t TimeOfDay) float64 {
	return float64(t.Minutes()-g.OriginHour*60) / 60 * g.PixelsPerHour
}

// SnapDelta converts a pixel delta to a minute delta rounded to the snap
// interval. Rounding is half away from zero, so SnapDelta(-d) == -SnapDelta(d).
func SnapDelta(g Geometry, pixelDelta float64) int {
	snap := float64(g.snap())
	return int(math.Round(pixelDelta/g.PixelsPerHour*60/snap) * snap)
}

// DayDelta converts a horizontal pixel delta to whole day columns.
func DayDelta(g Geometry, pixelDelta float64) int {
	if g.DayWidth <= 0 {
		return 0
	}
	return int(math.Round(pixelDelta / g.DayWidth))
}
