package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterViewState holds the lines rendered below the grid.
type FooterViewState struct {
	Width      int
	StatsLine  string
	LegendLine string
	PromptLine string
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders the non-empty footer lines, one per row.
func RenderFooter(state FooterViewState) string {
	var lines []string
	for _, l := range []string{state.StatsLine, state.LegendLine, state.PromptLine, state.StatusLine, state.HelpLine} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return PadLinesWithBackground(strings.Join(lines, "\n"), state.Width, len(lines), state.Bg)
}
