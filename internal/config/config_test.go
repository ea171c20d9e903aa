package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected day_start 09:00, got %s", cfg.Schedule.DayStart)
	}
	if len(cfg.Schedule.Workdays) != 5 {
		t.Errorf("expected 5 workdays, got %d", len(cfg.Schedule.Workdays))
	}
	if cfg.Capacity.DayCapHours != 8 {
		t.Errorf("expected day_cap_hours 8, got %v", cfg.Capacity.DayCapHours)
	}
	if cfg.Capacity.HalfDayFraction != 0.5 {
		t.Errorf("expected half_day_fraction 0.5, got %v", cfg.Capacity.HalfDayFraction)
	}
	if cfg.Thresholds.AvailableBelow != 50 || cfg.Thresholds.OverallocatedAt != 100 {
		t.Errorf("unexpected cell thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.WeeklyUnderBelow != 70 || cfg.Thresholds.WeeklyOverAbove != 100 {
		t.Errorf("unexpected weekly thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Grid.SnapMinutes != 15 || cfg.Grid.DragThresholdPx != 5 {
		t.Errorf("unexpected grid: %+v", cfg.Grid)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected default day_start, got %s", cfg.Schedule.DayStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[capacity]
day_cap_hours = 6
half_day_fraction = 0.4

[thresholds]
available_below = 40
overallocated_at = 110

[grid]
pixels_per_hour = 48
origin_hour = 7
snap_minutes = 30

[schedule]
workdays = ["monday", "tuesday", "wednesday"]
day_start = "08:00"
day_end = "16:00"

[llm]
provider = "ollama"
model = "llama3"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Capacity.DayCapHours != 6 || cfg.Capacity.HalfDayFraction != 0.4 {
		t.Errorf("unexpected capacity: %+v", cfg.Capacity)
	}
	// Unset keys keep their defaults.
	if cfg.Capacity.DefaultWeeklyHours != 40 {
		t.Errorf("expected default_weekly_hours 40, got %v", cfg.Capacity.DefaultWeeklyHours)
	}
	if cfg.Thresholds.AvailableBelow != 40 || cfg.Thresholds.OverallocatedAt != 110 {
		t.Errorf("unexpected thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.WeeklyUnderBelow != 70 {
		t.Errorf("expected weekly_under_below 70, got %v", cfg.Thresholds.WeeklyUnderBelow)
	}
	if cfg.Grid.PixelsPerHour != 48 || cfg.Grid.OriginHour != 7 || cfg.Grid.SnapMinutes != 30 {
		t.Errorf("unexpected grid: %+v", cfg.Grid)
	}
	if cfg.Schedule.DayStart != "08:00" {
		t.Errorf("expected day_start 08:00, got %s", cfg.Schedule.DayStart)
	}
	if len(cfg.Schedule.Workdays) != 3 {
		t.Errorf("expected 3 workdays, got %d", len(cfg.Schedule.Workdays))
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3" {
		t.Errorf("unexpected llm: %+v", cfg.LLM)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\nsnap = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
day_start = "08:00"
day_end = "16:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("WORKLOAD_DAY_START", "10:00")
	t.Setenv("WORKLOAD_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("WORKLOAD_SNAP_MINUTES", "10")
	t.Setenv("WORKLOAD_DAY_CAP_HOURS", "7.5")
	t.Setenv("WORKLOAD_WORKDAYS", "monday,tuesday")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Schedule.DayStart != "10:00" {
		t.Errorf("expected day_start 10:00 from env, got %s", cfg.Schedule.DayStart)
	}
	// File value should be kept when no env override
	if cfg.Schedule.DayEnd != "16:00" {
		t.Errorf("expected day_end 16:00 from file, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini from env, got %s", cfg.LLM.Model)
	}
	if cfg.Grid.SnapMinutes != 10 {
		t.Errorf("expected snap_minutes 10 from env, got %d", cfg.Grid.SnapMinutes)
	}
	if cfg.Capacity.DayCapHours != 7.5 {
		t.Errorf("expected day_cap_hours 7.5 from env, got %v", cfg.Capacity.DayCapHours)
	}
	if len(cfg.Schedule.Workdays) != 2 {
		t.Errorf("expected 2 workdays from env, got %d", len(cfg.Schedule.Workdays))
	}
}

func TestLoadFrom_BadNumericEnv(t *testing.T) {
	t.Setenv("WORKLOAD_PIXELS_PER_HOUR", "lots")
	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-numeric override")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"invalid day_start", func(c *Config) { c.Schedule.DayStart = "9:00" }},
		{"day_start after day_end", func(c *Config) { c.Schedule.DayStart, c.Schedule.DayEnd = "18:00", "09:00" }},
		{"invalid workday", func(c *Config) { c.Schedule.Workdays = []string{"monday", "funday"} }},
		{"empty workdays", func(c *Config) { c.Schedule.Workdays = nil }},
		{"zero weekly hours", func(c *Config) { c.Capacity.DefaultWeeklyHours = 0 }},
		{"negative day cap", func(c *Config) { c.Capacity.DayCapHours = -1 }},
		{"half day above one", func(c *Config) { c.Capacity.HalfDayFraction = 1.5 }},
		{"inverted cell thresholds", func(c *Config) { c.Thresholds.AvailableBelow = 120 }},
		{"inverted weekly thresholds", func(c *Config) { c.Thresholds.WeeklyUnderBelow = 120 }},
		{"zero pixels per hour", func(c *Config) { c.Grid.PixelsPerHour = 0 }},
		{"origin hour out of range", func(c *Config) { c.Grid.OriginHour = 24 }},
		{"snap not dividing hour", func(c *Config) { c.Grid.SnapMinutes = 7 }},
		{"zero event minutes", func(c *Config) { c.Grid.DefaultEventMinutes = 0 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("day cap zero disables", func(t *testing.T) {
		cfg := Default()
		cfg.Capacity.DayCapHours = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Schedule.DayStart = "07:30"
	cfg.Schedule.Workdays = []string{"monday", "tuesday", "wednesday", "thursday"}
	cfg.Grid.SnapMinutes = 5
	cfg.Thresholds.WeeklyUnderBelow = 65

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Schedule.DayStart != "07:30" {
		t.Errorf("expected day_start 07:30, got %s", loaded.Schedule.DayStart)
	}
	if len(loaded.Schedule.Workdays) != 4 {
		t.Errorf("expected 4 workdays, got %d", len(loaded.Schedule.Workdays))
	}
	if loaded.Grid.SnapMinutes != 5 {
		t.Errorf("expected snap_minutes 5, got %d", loaded.Grid.SnapMinutes)
	}
	if loaded.Thresholds.WeeklyUnderBelow != 65 {
		t.Errorf("expected weekly_under_below 65, got %v", loaded.Thresholds.WeeklyUnderBelow)
	}
}
