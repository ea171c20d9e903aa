package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/workload/internal/allocation"
)

// Color definitions for consistent styling across the UI.
var (
	// Overallocated / over: red
	colorOver = color.New(color.FgRed, color.Bold)

	// Optimal: green
	colorOptimal = color.New(color.FgGreen)

	// Available / under: cyan, there is room left
	colorAvailable = color.New(color.FgCyan)

	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information and empty cells
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func statusColor(s allocation.Status) *color.Color {
	switch s {
	case allocation.StatusOverallocated:
		return colorOver
	case allocation.StatusOptimal:
		return colorOptimal
	case allocation.StatusAvailable:
		return colorAvailable
	default:
		return colorMuted
	}
}

func weeklyColor(s allocation.WeeklyStatus) *color.Color {
	switch s {
	case allocation.WeeklyOver:
		return colorOver
	case allocation.WeeklyOptimal:
		return colorOptimal
	default:
		return colorAvailable
	}
}

// formatStatus colors text by cell status.
func formatStatus(s allocation.Status, text string) string {
	return statusColor(s).Sprint(text)
}

// formatWeekly colors text by weekly status.
func formatWeekly(s allocation.WeeklyStatus, text string) string {
	return weeklyColor(s).Sprint(text)
}

// formatInsight formats text for insight output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
