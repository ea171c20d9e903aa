package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/workload/internal/config"
)

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	t.Run("creates defaults", func(t *testing.T) {
		var out bytes.Buffer
		if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if !strings.Contains(out.String(), "default_weekly_hours = 40") {
			t.Errorf("defaults not printed:\n%s", out.String())
		}
	})

	t.Run("edits values", func(t *testing.T) {
		// weekly hours, then keep every other value; the day cap retries once
		answers := "y\n32\nabc\n6\n" + strings.Repeat("\n", 12)
		var out bytes.Buffer
		if err := runConfigInteractive(strings.NewReader(answers), &out, path); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), `Invalid number "abc"`) {
			t.Errorf("bad number not reported:\n%s", out.String())
		}

		cfg, err := config.LoadFrom(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Capacity.DefaultWeeklyHours != 32 || cfg.Capacity.DayCapHours != 6 {
			t.Errorf("got weekly %v cap %v, want 32 and 6", cfg.Capacity.DefaultWeeklyHours, cfg.Capacity.DayCapHours)
		}
		if cfg.Schedule.DayStart != config.Default().Schedule.DayStart {
			t.Errorf("blank answer should keep day start, got %q", cfg.Schedule.DayStart)
		}
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		answers := "y\n-5\n" + strings.Repeat("\n", 13)
		if err := runConfigInteractive(strings.NewReader(answers), &bytes.Buffer{}, path); err == nil {
			t.Error("negative weekly hours should fail validation")
		}
	})
}
