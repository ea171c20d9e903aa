package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/task"
)

func d(day int) time.Time {
	return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
}

// sampleRows builds two weekly buckets (Jan 6-12 and Jan 13-19) for two people.
func sampleRows() []allocation.Row {
	r := &task.Roster{
		People: []*task.Person{
			{ID: "u1", Name: "Ana", WeeklyCapacityHours: 40},
			{ID: "u2", Name: "Project \"Special\", Inc", WeeklyCapacityHours: 40},
		},
		Items: []*task.WorkItem{
			{ID: "t1", Name: "Build API", AssigneeID: "u1", ProjectID: "p1", StartDate: d(6), EndDate: d(10), PlannedHours: 20, IsBillable: true},
			{ID: "t2", Name: "Crunch", AssigneeID: "u2", ProjectID: "p2", StartDate: d(6), EndDate: d(10), PlannedHours: 48},
		},
	}
	return allocation.ComputeRows(r, bucket.Week, d(6), d(19))
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alloc.csv")

	if err := ToCSV(sampleRows(), allocation.DefaultThresholds(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 people x 2 weeks
	if len(records) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(records))
	}
	for i, h := range csvHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	first := records[1]
	want := []string{"u1", "Ana", "week", "2025-01-06", "2025-01-12", "20.00", "40.00", "0.00", "50.0", "optimal"}
	for i, v := range want {
		if first[i] != v {
			t.Errorf("row 1 col %d = %q, want %q", i, first[i], v)
		}
	}

	if records[2][9] != "none" {
		t.Errorf("empty second week should be none, got %q", records[2][9])
	}
	if records[3][1] != `Project "Special", Inc` {
		t.Errorf("name mangled: %q", records[3][1])
	}
	if records[3][9] != "overallocated" {
		t.Errorf("48h in a 40h week should be overallocated, got %q", records[3][9])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, allocation.DefaultThresholds()); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, allocation.DefaultThresholds(), filepath.Join(t.TempDir(), "missing", "x.csv"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alloc.json")

	if err := ToJSON(sampleRows(), allocation.DefaultThresholds(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}
	if result.Count != 2 || len(result.People) != 2 {
		t.Fatalf("count = %d, people = %d, want 2", result.Count, len(result.People))
	}

	ana := result.People[0]
	if ana.PlannedHours != 20 || ana.CapacityHours != 80 {
		t.Errorf("totals = %v/%v, want 20/80", ana.PlannedHours, ana.CapacityHours)
	}
	if ana.WeeklyStatus != "under" {
		t.Errorf("25%% over two weeks should be under, got %q", ana.WeeklyStatus)
	}
	if len(ana.Buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(ana.Buckets))
	}

	week := ana.Buckets[0]
	if week.Label != "Jan 6-12" || week.Status != "optimal" {
		t.Errorf("unexpected bucket: %+v", week)
	}
	if len(week.Contributions) != 1 || week.Contributions[0].ItemID != "t1" || !week.Contributions[0].Billable {
		t.Errorf("unexpected contributions: %+v", week.Contributions)
	}
	if len(ana.Buckets[1].Contributions) != 0 {
		t.Errorf("empty week should have no contributions")
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil, allocation.DefaultThresholds()); err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Count != 0 || result.People == nil {
		t.Errorf("expected empty people array, got %+v", result)
	}
}
