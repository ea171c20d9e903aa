// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORKLOAD_"

// Config holds the application configuration.
type Config struct {
	Capacity   CapacityConfig   `toml:"capacity"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Grid       GridConfig       `toml:"grid"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	LLM        LLMConfig        `toml:"llm"`
	Storage    StorageConfig    `toml:"storage"`
	UI         UIConfig         `toml:"ui"`
}

// CapacityConfig holds allocation settings.
type CapacityConfig struct {
	DefaultWeeklyHours float64 `toml:"default_weekly_hours"` // used for people without a contract
	DayCapHours        float64 `toml:"day_cap_hours"`        // per-item ceiling at day resolution, 0 disables
	HalfDayFraction    float64 `toml:"half_day_fraction"`    // share of a day a half-day leave takes
}

// ThresholdsConfig holds utilization band boundaries in percent.
type ThresholdsConfig struct {
	AvailableBelow   float64 `toml:"available_below"`
	OverallocatedAt  float64 `toml:"overallocated_at"`
	WeeklyUnderBelow float64 `toml:"weekly_under_below"`
	WeeklyOverAbove  float64 `toml:"weekly_over_above"`
}

// GridConfig holds calendar grid geometry.
type GridConfig struct {
	PixelsPerHour       float64 `toml:"pixels_per_hour"`
	OriginHour          int     `toml:"origin_hour"`
	SnapMinutes         int     `toml:"snap_minutes"`
	DayWidthPx          float64 `toml:"day_width_px"` // 0 disables moves across days
	DragThresholdPx     float64 `toml:"drag_threshold_px"`
	DefaultEventMinutes int     `toml:"default_event_minutes"`
}

// ScheduleConfig holds workday scheduling settings.
type ScheduleConfig struct {
	Workdays []string `toml:"workdays"`  // e.g., ["monday", "tuesday", ...]
	DayStart string   `toml:"day_start"` // e.g., "09:00"
	DayEnd   string   `toml:"day_end"`   // e.g., "17:00"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // empty uses the provider default
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Capacity: CapacityConfig{
			DefaultWeeklyHours: 40,
			DayCapHours:        8,
			HalfDayFraction:    0.5,
		},
		Thresholds: ThresholdsConfig{
			AvailableBelow:   50,
			OverallocatedAt:  100,
			WeeklyUnderBelow: 70,
			WeeklyOverAbove:  100,
		},
		Grid: GridConfig{
			PixelsPerHour:       60,
			OriginHour:          0,
			SnapMinutes:         15,
			DayWidthPx:          120,
			DragThresholdPx:     5,
			DefaultEventMinutes: 60,
		},
		Schedule: ScheduleConfig{
			Workdays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart: "09:00",
			DayEnd:   "17:00",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "workload.db"
	}
	return filepath.Join(home, ".local", "share", "workload", "workload.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "workload", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	str := map[string]*string{
		"DAY_START":    &cfg.Schedule.DayStart,
		"DAY_END":      &cfg.Schedule.DayEnd,
		"LLM_PROVIDER": &cfg.LLM.Provider,
		"LLM_MODEL":    &cfg.LLM.Model,
		"LLM_BASE_URL": &cfg.LLM.BaseURL,
		"DB_PATH":      &cfg.Storage.DBPath,
		"UI_THEME":     &cfg.UI.Theme,
	}
	for key, dst := range str {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv(EnvPrefix + "WORKDAYS"); v != "" {
		cfg.Schedule.Workdays = strings.Split(v, ",")
	}

	floats := map[string]*float64{
		"DEFAULT_WEEKLY_HOURS": &cfg.Capacity.DefaultWeeklyHours,
		"DAY_CAP_HOURS":        &cfg.Capacity.DayCapHours,
		"HALF_DAY_FRACTION":    &cfg.Capacity.HalfDayFraction,
		"PIXELS_PER_HOUR":      &cfg.Grid.PixelsPerHour,
		"DRAG_THRESHOLD_PX":    &cfg.Grid.DragThresholdPx,
	}
	for key, dst := range floats {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
		}
		*dst = f
	}

	ints := map[string]*int{
		"ORIGIN_HOUR":           &cfg.Grid.OriginHour,
		"SNAP_MINUTES":          &cfg.Grid.SnapMinutes,
		"DEFAULT_EVENT_MINUTES": &cfg.Grid.DefaultEventMinutes,
	}
	for key, dst := range ints {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if len(c.Schedule.Workdays) == 0 {
		return errors.New("at least one workday must be configured")
	}
	for _, day := range c.Schedule.Workdays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid workday: %s", day)
		}
	}

	if c.Capacity.DefaultWeeklyHours <= 0 || c.Capacity.DefaultWeeklyHours > 168 {
		return fmt.Errorf("default_weekly_hours must be between 0 and 168, got %v", c.Capacity.DefaultWeeklyHours)
	}
	if c.Capacity.DayCapHours < 0 {
		return fmt.Errorf("day_cap_hours must not be negative, got %v", c.Capacity.DayCapHours)
	}
	if c.Capacity.HalfDayFraction < 0 || c.Capacity.HalfDayFraction > 1 {
		return fmt.Errorf("half_day_fraction must be between 0 and 1, got %v", c.Capacity.HalfDayFraction)
	}

	t := c.Thresholds
	if t.AvailableBelow < 0 || t.AvailableBelow >= t.OverallocatedAt {
		return errors.New("available_below must be non-negative and below overallocated_at")
	}
	if t.WeeklyUnderBelow < 0 || t.WeeklyUnderBelow > t.WeeklyOverAbove {
		return errors.New("weekly_under_below must be non-negative and not above weekly_over_above")
	}

	if c.Grid.PixelsPerHour <= 0 {
		return fmt.Errorf("pixels_per_hour must be positive, got %v", c.Grid.PixelsPerHour)
	}
	if c.Grid.OriginHour < 0 || c.Grid.OriginHour > 23 {
		return fmt.Errorf("origin_hour must be between 0 and 23, got %d", c.Grid.OriginHour)
	}
	if c.Grid.SnapMinutes <= 0 || 60%c.Grid.SnapMinutes != 0 {
		return fmt.Errorf("snap_minutes must divide 60, got %d", c.Grid.SnapMinutes)
	}
	if c.Grid.DayWidthPx < 0 {
		return fmt.Errorf("day_width_px must not be negative, got %v", c.Grid.DayWidthPx)
	}
	if c.Grid.DragThresholdPx < 0 {
		return fmt.Errorf("drag_threshold_px must not be negative, got %v", c.Grid.DragThresholdPx)
	}
	if c.Grid.DefaultEventMinutes <= 0 {
		return fmt.Errorf("default_event_minutes must be positive, got %d", c.Grid.DefaultEventMinutes)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(day)]
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
