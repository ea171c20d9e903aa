package bucket

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseResolution(t *testing.T) {
	for _, s := range []string{"day", "Week", " month "} {
		if _, err := ParseResolution(s); err != nil {
			t.Errorf("ParseResolution(%q): unexpected error %v", s, err)
		}
	}
	if _, err := ParseResolution("quarter"); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("got error %v, want %v", err, ErrInvalidResolution)
	}
}

func TestEnumerate(t *testing.T) {
	t.Run("days of a week", func(t *testing.T) {
		got := Enumerate(Day, date(2025, 1, 6), date(2025, 1, 12))
		if len(got) != 7 {
			t.Fatalf("got %d buckets, want 7", len(got))
		}
		for i, b := range got {
			want := date(2025, 1, 6+i)
			if !b.Start.Equal(want) || !b.End.Equal(want) {
				t.Errorf("bucket %d: got %s, want %v", i, b, want)
			}
		}
	})

	t.Run("weeks are whole monday-start weeks", func(t *testing.T) {
		// Wednesday to the following Tuesday touches two weeks.
		got := Enumerate(Week, date(2025, 1, 8), date(2025, 1, 14))
		if len(got) != 2 {
			t.Fatalf("got %d buckets, want 2", len(got))
		}
		if !got[0].Start.Equal(date(2025, 1, 6)) || !got[0].End.Equal(date(2025, 1, 12)) {
			t.Errorf("first week: got %s", got[0])
		}
		if !got[1].Start.Equal(date(2025, 1, 13)) || !got[1].End.Equal(date(2025, 1, 19)) {
			t.Errorf("second week: got %s", got[1])
		}
	})

	t.Run("months cross year boundary", func(t *testing.T) {
		got := Enumerate(Month, date(2024, 12, 15), date(2025, 2, 3))
		if len(got) != 3 {
			t.Fatalf("got %d buckets, want 3", len(got))
		}
		wantStarts := []time.Time{date(2024, 12, 1), date(2025, 1, 1), date(2025, 2, 1)}
		for i, b := range got {
			if !b.Start.Equal(wantStarts[i]) {
				t.Errorf("bucket %d: got start %v, want %v", i, b.Start, wantStarts[i])
			}
		}
		if !got[2].End.Equal(date(2025, 2, 28)) {
			t.Errorf("february end: got %v", got[2].End)
		}
	})

	t.Run("single day range", func(t *testing.T) {
		got := Enumerate(Month, date(2025, 3, 3), date(2025, 3, 3))
		if len(got) != 1 || got[0].Key() != "month:2025-03-01" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if got := Enumerate(Day, date(2025, 1, 10), date(2025, 1, 6)); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestWorkingDayCount(t *testing.T) {
	tests := []struct {
		name   string
		bucket Bucket
		want   int
	}{
		{name: "weekday", bucket: Of(Day, date(2025, 1, 8)), want: 1},
		{name: "saturday", bucket: Of(Day, date(2025, 1, 11)), want: 0},
		{name: "week", bucket: Of(Week, date(2025, 1, 8)), want: 5},
		{name: "january 2025", bucket: Of(Month, date(2025, 1, 20)), want: 23},
		{name: "february 2025", bucket: Of(Month, date(2025, 2, 20)), want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bucket.WorkingDayCount(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if got := tt.bucket.CapacityHours(); got != float64(tt.want*HoursPerDay) {
				t.Errorf("capacity: got %v, want %v", got, tt.want*HoursPerDay)
			}
		})
	}
}

func TestCapacityMonotonic(t *testing.T) {
	// A week's capacity equals the sum of its day capacities.
	for start := date(2025, 1, 1); start.Before(date(2025, 4, 1)); start = start.AddDate(0, 0, 7) {
		week := Of(Week, start)
		var sum float64
		for _, d := range Enumerate(Day, week.Start, week.End) {
			sum += d.CapacityHours()
		}
		if sum != week.CapacityHours() {
			t.Fatalf("week %s: day sum %v, week %v", week, sum, week.CapacityHours())
		}
	}

	// Likewise for a month.
	month := Of(Month, date(2025, 5, 1))
	var sum float64
	for _, d := range Enumerate(Day, month.Start, month.End) {
		sum += d.CapacityHours()
	}
	if sum != month.CapacityHours() {
		t.Errorf("month: day sum %v, month %v", sum, month.CapacityHours())
	}
}

func TestNextPrev(t *testing.T) {
	w := Of(Week, date(2025, 1, 8))
	if got := w.Next(); !got.Start.Equal(date(2025, 1, 13)) {
		t.Errorf("next week: got %s", got)
	}
	if got := w.Prev(); !got.Start.Equal(date(2024, 12, 30)) {
		t.Errorf("prev week: got %s", got)
	}
	m := Of(Month, date(2025, 1, 31))
	if got := m.Next(); !got.Start.Equal(date(2025, 2, 1)) || !got.End.Equal(date(2025, 2, 28)) {
		t.Errorf("next month: got %s", got)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		bucket Bucket
		want   string
	}{
		{bucket: Of(Day, date(2025, 1, 6)), want: "Mon 06"},
		{bucket: Of(Week, date(2025, 1, 8)), want: "Jan 6-12"},
		{bucket: Of(Week, date(2025, 1, 29)), want: "Jan 27-Feb 2"},
		{bucket: Of(Month, date(2025, 3, 9)), want: "Mar 2025"},
	}
	for _, tt := range tests {
		if got := tt.bucket.Label(); got != tt.want {
			t.Errorf("Label(%s) = %q, want %q", tt.bucket, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	w := Of(Week, date(2025, 1, 8))
	if !w.Contains(time.Date(2025, 1, 12, 23, 0, 0, 0, time.UTC)) {
		t.Error("sunday evening should be inside the week")
	}
	if w.Contains(date(2025, 1, 13)) {
		t.Error("next monday should be outside the week")
	}
}
