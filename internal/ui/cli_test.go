package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/db"
	"github.com/javiermolinar/workload/internal/export"
	"github.com/javiermolinar/workload/internal/roster"
	"github.com/javiermolinar/workload/internal/task"
)

const testRoster = `
[[people]]
id = "u1"
name = "Ana"
weekly_capacity_hours = 40

[[people]]
id = "u2"
name = "Bruno"
weekly_capacity_hours = 40

[[projects]]
id = "p1"
name = "Website"
billable = true

[[items]]
id = "t1"
name = "Build API"
assignee_id = "u1"
project_id = "p1"
start_date = "2025-01-06"
end_date = "2025-01-10"
planned_hours = 48

[[items]]
id = "t2"
name = "Docs"
assignee_id = "u2"
start_date = "2025-01-06"
end_date = "2025-01-10"
planned_hours = 8

[[leaves]]
id = "l1"
user_id = "u2"
type = "vacation"
start_date = "2025-01-08"
status = "approved"
`

func newTestRepo(t *testing.T) task.Repository {
	t.Helper()

	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// run executes one command line against repo with a fresh App and returns
// what it printed to stdout.
func run(t *testing.T, repo task.Repository, args ...string) (string, error) {
	t.Helper()

	a := NewApp(repo, config.Default())
	var out, errOut bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&errOut)
	a.root.SetArgs(append([]string{"--no-color"}, args...))

	err := a.root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, repo task.Repository, args ...string) string {
	t.Helper()
	out, err := run(t, repo, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func importTestRoster(t *testing.T, repo task.Repository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.toml")
	if err := os.WriteFile(path, []byte(testRoster), 0o644); err != nil {
		t.Fatal(err)
	}
	out := mustRun(t, repo, "import", path)
	if !strings.Contains(out, "Imported 2 people, 1 projects, 2 work items, 1 leaves") {
		t.Fatalf("unexpected import output: %q", out)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, nil, "version")
	if !strings.HasPrefix(out, "workload dev") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestPersonAddAndList(t *testing.T) {
	repo := newTestRepo(t)

	mustRun(t, repo, "person", "add", "u1", "Ana", "--weekly", "32", "--department", "Engineering")
	out := mustRun(t, repo, "person", "add", "u2", "Bruno")
	if !strings.Contains(out, "40h/week") {
		t.Errorf("person without --weekly should get the configured default: %q", out)
	}

	out = mustRun(t, repo, "person", "list")
	for _, want := range []string{"Ana", "32h/week", "Engineering", "Bruno"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestImport_DryRun(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(t.TempDir(), "roster.toml")
	if err := os.WriteFile(path, []byte(testRoster), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, repo, "import", path, "--dry-run")
	if !strings.Contains(out, "Roster is valid") {
		t.Errorf("unexpected output: %q", out)
	}

	people, err := repo.ListPeople(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 0 {
		t.Errorf("dry run stored %d people", len(people))
	}
}

func TestImport_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(t.TempDir(), "roster.toml")
	bad := "[[items]]\nid = \"t1\"\nassignee_id = \"u1\"\nstart_date = \"2025-01-10\"\nend_date = \"2025-01-06\"\nplanned_hours = 4\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, repo, "import", path); err == nil {
		t.Fatal("expected error for an inverted span")
	}
}

func TestAlloc(t *testing.T) {
	repo := newTestRepo(t)
	importTestRoster(t, repo)

	t.Run("grid", func(t *testing.T) {
		out := mustRun(t, repo, "alloc", "--from", "2025-01-06", "--to", "2025-01-12")
		for _, want := range []string{"Jan 6-12", "Ana", " 120% 48h", "  25% 8h*", "Team: 56h of 72h (78%)", "Billable: 86%"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("weekly", func(t *testing.T) {
		out := mustRun(t, repo, "alloc", "--from", "2025-01-06", "--to", "2025-01-12", "--weekly")
		if !strings.Contains(out, "120%  over") {
			t.Errorf("Ana should be over:\n%s", out)
		}
		if !strings.Contains(out, "25%   under") {
			t.Errorf("Bruno should be under:\n%s", out)
		}
	})

	t.Run("person detail", func(t *testing.T) {
		out := mustRun(t, repo, "alloc", "--from", "2025-01-06", "--to", "2025-01-12", "--person", "u2", "--detail")
		if strings.Contains(out, "Ana") {
			t.Errorf("person filter leaked Ana:\n%s", out)
		}
		for _, want := range []string{"8h of 32h, 24h free, 8h leave", "(no project)", "Docs"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("bad resolution", func(t *testing.T) {
		if _, err := run(t, repo, "alloc", "--resolution", "year"); err == nil {
			t.Error("expected error for unknown resolution")
		}
	})
}

func TestTeam(t *testing.T) {
	repo := newTestRepo(t)
	importTestRoster(t, repo)

	out := mustRun(t, repo, "team", "--from", "2025-01-06", "--to", "2025-01-12")
	for _, want := range []string{"TEAM: week", "1 over", "0 optimal", "1 under"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExport_CSVToStdout(t *testing.T) {
	repo := newTestRepo(t)
	importTestRoster(t, repo)

	out := mustRun(t, repo, "export", "csv", "--from", "2025-01-06", "--to", "2025-01-12")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d:\n%s", len(lines), out)
	}
	if want := "u1,Ana,week,2025-01-06,2025-01-12,48.00,40.00,0.00,120.0,overallocated"; lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}

	if _, err := run(t, repo, "export", "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExport_MonthFromMidMonth(t *testing.T) {
	repo := newTestRepo(t)
	importTestRoster(t, repo)

	got := mustRun(t, repo, "export", "csv", "--resolution", "month", "--from", "2025-01-20", "--to", "2025-02-10")

	r, err := roster.Parse(strings.NewReader(testRoster), roster.FormatTOML)
	if err != nil {
		t.Fatalf("parsing roster: %v", err)
	}
	cfg := config.Default()
	rows := allocation.ComputeRows(r, bucket.Month,
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		cfg.AllocationOptions()...)
	var want bytes.Buffer
	if err := export.WriteCSV(&want, rows, cfg.AllocationThresholds()); err != nil {
		t.Fatal(err)
	}

	if got != want.String() {
		t.Errorf("export differs from the full roster:\ngot:\n%s\nwant:\n%s", got, want.String())
	}
	for _, row := range []string{
		"u1,Ana,month,2025-01-01,2025-01-31,48.00,184.00,0.00,",
		"u2,Bruno,month,2025-01-01,2025-01-31,8.00,176.00,8.00,",
	} {
		if !strings.Contains(got, row) {
			t.Errorf("output missing %q:\n%s", row, got)
		}
	}
}

func TestItemAdd_InheritsBillable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustRun(t, repo, "project", "add", "p1", "Website", "--billable")
	mustRun(t, repo, "item", "add", "Landing page", "--id", "t1", "--assignee", "u1", "--project", "p1", "--start", "2025-01-06", "--end", "2025-01-08", "--hours", "12")
	mustRun(t, repo, "item", "add", "Internal", "--id", "t2", "--assignee", "u1", "--project", "p1", "--start", "2025-01-06", "--hours", "2", "--billable=false")

	items, err := repo.ListWorkItems(ctx, "u1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].IsBillable {
		t.Error("item should inherit the project's billable flag")
	}
	if items[1].IsBillable {
		t.Error("explicit --billable=false should win")
	}

	out := mustRun(t, repo, "item", "list", "--person", "u1", "--from", "2025-01-06", "--to", "2025-01-06")
	if !strings.Contains(out, "Landing page") || !strings.Contains(out, "Internal") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	if _, err := run(t, repo, "item", "add", "Bad", "--assignee", "u1", "--start", "2025-01-06", "--hours", "2", "--status", "done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestLeaveAddAndList(t *testing.T) {
	repo := newTestRepo(t)

	out := mustRun(t, repo, "leave", "add", "u1", "--type", "sick", "--start", "2025-01-06", "--end", "2025-01-07")
	if !strings.Contains(out, "not approved") {
		t.Errorf("pending leave should warn that capacity is unchanged: %q", out)
	}
	mustRun(t, repo, "leave", "add", "u2", "--type", "personal", "--start", "2025-01-06", "--half-day", "--status", "approved")

	out = mustRun(t, repo, "leave", "list", "--from", "2025-01-06", "--to", "2025-01-06")
	for _, want := range []string{"u1", "sick", "pending", "u2", "personal", "½", "approved"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, repo, "leave", "add", "u1", "--type", "party", "--start", "2025-01-06"); err == nil {
		t.Error("expected error for unknown leave type")
	}
}

func TestEventLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustRun(t, repo, "item", "add", "Pair review", "--id", "t3", "--assignee", "u1", "--start", "2025-01-06", "--hours", "2", "--logged", "1.5")

	out := mustRun(t, repo, "event", "place", "t3", "--date", "2025-01-06", "--at", "09:30")
	if !strings.Contains(out, "Pair review 2025-01-06 09:30-10:00") {
		t.Fatalf("remaining half hour should set the duration: %q", out)
	}

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	events, err := repo.ListEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil || len(events) != 1 {
		t.Fatalf("expected 1 stored event, got %d (%v)", len(events), err)
	}
	id := events[0].ID
	if events[0].SourceItemID != "t3" {
		t.Errorf("source item = %q, want t3", events[0].SourceItemID)
	}

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"event", "move", id, "--pixels", "45"}, "10:15-10:45"},
		{[]string{"event", "resize", id, "--edge", "bottom", "--pixels", "-30"}, "Event unchanged"},
		{[]string{"event", "resize", id, "--edge", "bottom", "--pixels", "30"}, "10:15-11:15"},
		{[]string{"event", "drag", id, "--dy", "2"}, "Opened event"},
		{[]string{"event", "drag", id, "--dy", "60"}, "Moved event"},
		{[]string{"event", "drag", id, "--kind", "top", "--dy", "-30"}, "10:45-12:15"},
		{[]string{"event", "move", id, "--days", "1"}, "2025-01-07 10:45-12:15"},
		{[]string{"event", "list", "--from", "2025-01-06", "--to", "2025-01-10"}, "Tue Jan 7"},
		{[]string{"event", "layout", "--date", "2025-01-07"}, "track 1/1"},
	}
	for _, s := range steps {
		out := mustRun(t, repo, s.args...)
		if !strings.Contains(out, s.want) {
			t.Errorf("%s: output %q does not contain %q", strings.Join(s.args, " "), out, s.want)
		}
	}

	mustRun(t, repo, "event", "delete", id)
	out = mustRun(t, repo, "event", "list", "--from", "2025-01-06", "--to", "2025-01-10")
	if !strings.Contains(out, "No events found") {
		t.Errorf("event should be gone: %q", out)
	}

	if _, err := run(t, repo, "event", "delete", id); err == nil {
		t.Error("deleting a missing event should fail")
	}
}

func TestEventLayout_Overlaps(t *testing.T) {
	repo := newTestRepo(t)

	mustRun(t, repo, "event", "place", "--title", "A", "--date", "2025-01-06", "--at", "09:00")
	mustRun(t, repo, "event", "place", "--title", "B", "--date", "2025-01-06", "--at", "09:30")
	mustRun(t, repo, "event", "place", "--title", "C", "--date", "2025-01-06", "--at", "11:00")

	out := mustRun(t, repo, "event", "layout", "--date", "2025-01-06")
	for _, want := range []string{"09:00-10:00  track 1/2", "09:30-10:30  track 2/2", "11:00-12:00  track 1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPixel(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"pixel", "570"}, "570px → 09:30 (drawn at 570px)"},
		{[]string{"pixel", "37"}, "37px → 00:30"},
		{[]string{"pixel", "--delta", "--", "-37"}, "-37px → -30 min"},
		{[]string{"pixel", "--delta", "37"}, "37px → +30 min"},
	}
	for _, tt := range tests {
		out := mustRun(t, nil, tt.args...)
		if !strings.Contains(out, tt.want) {
			t.Errorf("%v: got %q, want %q", tt.args, out, tt.want)
		}
	}

	if _, err := run(t, nil, "pixel", "abc"); err == nil {
		t.Error("expected error for a non-numeric offset")
	}
}
