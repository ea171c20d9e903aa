package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/tui/theme"
	"github.com/javiermolinar/workload/internal/tui/view"
)

const (
	nameColWidth = 16
	cellWidth    = 11
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle       lipgloss.Style
	HeaderStyle      lipgloss.Style
	HeaderTodayStyle lipgloss.Style
	NameStyle        lipgloss.Style
	NameCursorStyle  lipgloss.Style
	BorderStyle      lipgloss.Style

	// Heatmap cells by status; the cursor inverts them.
	CellStyles       map[allocation.Status]lipgloss.Style
	CellCursorStyles map[allocation.Status]lipgloss.Style

	StatsStyle   lipgloss.Style
	LegendStyle  lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	PromptStyle  lipgloss.Style
	HelpStyle    lipgloss.Style
	MutedStyle   lipgloss.Style
	InsightStyle lipgloss.Style

	Modal view.ModalStyles
}

// NewStyles creates a Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s := &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		HeaderStyle:      base.Bold(true).Foreground(p.Accent).Width(cellWidth).Align(lipgloss.Center),
		HeaderTodayStyle: base.Bold(true).Underline(true).Foreground(p.Fg).Width(cellWidth).Align(lipgloss.Center),
		NameStyle:        base.Width(nameColWidth).PaddingLeft(1),
		NameCursorStyle:  base.Bold(true).Foreground(p.Accent).Width(nameColWidth).PaddingLeft(1),
		BorderStyle:      lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg),

		CellStyles:       make(map[allocation.Status]lipgloss.Style),
		CellCursorStyles: make(map[allocation.Status]lipgloss.Style),

		StatsStyle:   base.Bold(true),
		LegendStyle:  base.Foreground(p.FgMuted),
		StatusStyle:  base.Foreground(p.Status[allocation.StatusOptimal]),
		ErrorStyle:   base.Foreground(p.Status[allocation.StatusOverallocated]),
		PromptStyle:  base.Foreground(p.Accent),
		HelpStyle:    base.Foreground(p.FgMuted),
		MutedStyle:   base.Foreground(p.FgMuted),
		InsightStyle: lipgloss.NewStyle().Foreground(p.Modal.Text).Background(p.Modal.Bg),
	}

	for status, bg := range p.StatusBg {
		cell := lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Background(bg).
			Foreground(p.TextOn[status])
		if status == allocation.StatusNone {
			cell = cell.Foreground(p.FgMuted)
		}
		s.CellStyles[status] = cell
		s.CellCursorStyles[status] = cell.
			Bold(true).
			Background(p.Status[status]).
			Foreground(p.Bg)
	}
	s.CellCursorStyles[allocation.StatusNone] = s.CellStyles[allocation.StatusNone].Background(p.BgSelection).Foreground(p.Fg)

	s.Modal = view.ModalStyles{
		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Modal.Border).
			BorderBackground(p.Modal.Bg).
			Background(p.Modal.Bg).
			Foreground(p.Modal.Text).
			Padding(1, 2),
		ModalHeaderStyle: lipgloss.NewStyle().Background(p.Modal.Bg),
		ModalTitleStyle:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Modal.Bg),
		ModalBodyStyle:   lipgloss.NewStyle().Foreground(p.Modal.Text).Background(p.Modal.Bg),
		ModalFooterStyle: lipgloss.NewStyle().Foreground(p.Modal.Muted).Background(p.Modal.Bg),
	}

	return s
}

// cellStyle returns the style of a heatmap cell.
func (s *Styles) cellStyle(status allocation.Status, cursor bool) lipgloss.Style {
	if cursor {
		return s.CellCursorStyles[status]
	}
	return s.CellStyles[status]
}

// statusStyle colors text by allocation status, without a background.
func (s *Styles) statusStyle(status allocation.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.palette.Status[status]).Background(s.palette.Bg)
}
