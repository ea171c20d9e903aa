package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  workload config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	p := prompter{reader: reader, out: out}
	cfg.Capacity.DefaultWeeklyHours = p.float("Default weekly hours", cfg.Capacity.DefaultWeeklyHours)
	cfg.Capacity.DayCapHours = p.float("Day cap hours (0 disables)", cfg.Capacity.DayCapHours)
	cfg.Capacity.HalfDayFraction = p.float("Half-day leave fraction", cfg.Capacity.HalfDayFraction)
	cfg.Thresholds.AvailableBelow = p.float("Available below %", cfg.Thresholds.AvailableBelow)
	cfg.Thresholds.OverallocatedAt = p.float("Overallocated at %", cfg.Thresholds.OverallocatedAt)
	cfg.Schedule.DayStart = p.value("Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = p.value("Day end", cfg.Schedule.DayEnd)
	cfg.Schedule.Workdays = p.slice("Workdays (comma-separated)", cfg.Schedule.Workdays)
	cfg.LLM.Provider = p.provider(cfg.LLM.Provider)
	cfg.LLM.Model = p.value("LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = p.value("LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[capacity]")
	fmt.Fprintf(out, "  default_weekly_hours = %v\n", cfg.Capacity.DefaultWeeklyHours)
	fmt.Fprintf(out, "  day_cap_hours        = %v\n", cfg.Capacity.DayCapHours)
	fmt.Fprintf(out, "  half_day_fraction    = %v\n", cfg.Capacity.HalfDayFraction)
	fmt.Fprintln(out, "\n[thresholds]")
	fmt.Fprintf(out, "  available_below      = %v\n", cfg.Thresholds.AvailableBelow)
	fmt.Fprintf(out, "  overallocated_at     = %v\n", cfg.Thresholds.OverallocatedAt)
	fmt.Fprintf(out, "  weekly_under_below   = %v\n", cfg.Thresholds.WeeklyUnderBelow)
	fmt.Fprintf(out, "  weekly_over_above    = %v\n", cfg.Thresholds.WeeklyOverAbove)
	fmt.Fprintln(out, "\n[grid]")
	fmt.Fprintf(out, "  pixels_per_hour      = %v\n", cfg.Grid.PixelsPerHour)
	fmt.Fprintf(out, "  origin_hour          = %d\n", cfg.Grid.OriginHour)
	fmt.Fprintf(out, "  snap_minutes         = %d\n", cfg.Grid.SnapMinutes)
	fmt.Fprintln(out, "\n[schedule]")
	fmt.Fprintf(out, "  day_start            = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(out, "  day_end              = %s\n", cfg.Schedule.DayEnd)
	fmt.Fprintf(out, "  workdays             = %s\n", strings.Join(cfg.Schedule.Workdays, ", "))
	fmt.Fprintln(out, "\n[llm]")
	fmt.Fprintf(out, "  provider             = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  model                = %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  base_url             = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path              = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func (p prompter) float(label string, current float64) float64 {
	for {
		v := p.value(label, strconv.FormatFloat(current, 'f', -1, 64))
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
		fmt.Fprintf(p.out, "  Invalid number %q\n", v)
	}
}

func (p prompter) slice(label string, current []string) []string {
	input := p.value(label, strings.Join(current, ", "))
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func (p prompter) provider(current string) string {
	for {
		value := p.value("LLM provider (copilot, ollama, lmstudio)", current)
		normalized, err := llm.NormalizeProvider(value)
		if err == nil {
			return normalized
		}
		fmt.Fprintf(p.out, "  %v\n", err)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
