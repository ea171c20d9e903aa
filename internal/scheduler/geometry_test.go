package scheduler

import "testing"

func TestPixelToTime(t *testing.T) {
	tests := []struct {
		name string
		geo  Geometry
		px   float64
		want TimeOfDay
	}{
		{
			name: "97px on an 8am grid",
			geo:  Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15},
			px:   97,
			want: TimeOfDay{Hour: 9, Minute: 30},
		},
		{
			name: "top of grid",
			geo:  Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15},
			px:   0,
			want: TimeOfDay{Hour: 8},
		},
		{
			name: "rounds up to next quarter",
			geo:  Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15},
			px:   38,
			want: TimeOfDay{Hour: 8, Minute: 45},
		},
		{
			name: "half snap rounds away from zero",
			geo:  Geometry{PixelsPerHour: 60, SnapMinutes: 15},
			px:   7.5,
			want: TimeOfDay{Hour: 0, Minute: 15},
		},
		{
			name: "minute 60 wraps into next hour",
			geo:  Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15},
			px:   118,
			want: TimeOfDay{Hour: 10},
		},
		{
			name: "dense grid",
			geo:  Geometry{PixelsPerHour: 120, OriginHour: 6, SnapMinutes: 30},
			px:   250,
			want: TimeOfDay{Hour: 8},
		},
		{
			name: "unset snap defaults to 15",
			geo:  Geometry{PixelsPerHour: 60},
			px:   22,
			want: TimeOfDay{Hour: 0, Minute: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PixelToTime(tt.geo, tt.px)
			if got != tt.want {
				t.Errorf("PixelToTime(%v) = %s, want %s", tt.px, got, tt.want)
			}
		})
	}
}

func TestPixelToTime_Deterministic(t *testing.T) {
	geo := Geometry{PixelsPerHour: 48, OriginHour: 7, SnapMinutes: 15}
	for px := 0.0; px < 48*12; px += 0.25 {
		a := PixelToTime(geo, px)
		b := PixelToTime(geo, px)
		if a != b {
			t.Fatalf("px %v: got %s then %s", px, a, b)
		}
		if a.Minute%15 != 0 || a.Minute < 0 || a.Minute >= 60 {
			t.Fatalf("px %v: minute %d not on the grid", px, a.Minute)
		}
	}
}

func TestSnapDelta(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, SnapMinutes: 15}

	tests := []struct {
		px   float64
		want int
	}{
		{px: 0, want: 0},
		{px: 7, want: 0},
		{px: 8, want: 15},
		{px: 30, want: 30},
		{px: -30, want: -30},
		{px: -8, want: -15},
		{px: 7.5, want: 15},
		{px: -7.5, want: -15},
		{px: -90, want: -90},
	}
	for _, tt := range tests {
		if got := SnapDelta(geo, tt.px); got != tt.want {
			t.Errorf("SnapDelta(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}

	for px := -300.0; px <= 300; px += 0.5 {
		if SnapDelta(geo, px) != -SnapDelta(geo, -px) {
			t.Fatalf("asymmetric snap at %v", px)
		}
	}
}

func TestTimeToPixel(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, OriginHour: 8, SnapMinutes: 15}
	for _, tod := range []TimeOfDay{{8, 0}, {9, 30}, {17, 45}} {
		px := TimeToPixel(geo, tod)
		if got := PixelToTime(geo, px); got != tod {
			t.Errorf("round trip of %s: got %s via %vpx", tod, got, px)
		}
	}
}

func TestDayDelta(t *testing.T) {
	geo := Geometry{PixelsPerHour: 60, DayWidth: 100}
	if got := DayDelta(geo, 160); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := DayDelta(geo, -140); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
	if got := DayDelta(Geometry{PixelsPerHour: 60}, 500); got != 0 {
		t.Errorf("got %d, want 0 without day columns", got)
	}
}
