package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/workload/internal/allocation"
	"github.com/javiermolinar/workload/internal/tui/view"
)

const modalWidth = 64

// View renders the grid with the footer and any open modal.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	state := view.ViewState{
		Width:     m.width,
		Height:    m.height,
		Title:     m.renderTitle(),
		Body:      m.renderBody(),
		Footer:    m.renderFooter(),
		ShowModal: showModal,
		Overlay:   m.overlay,
		Bg:        m.styles.palette.Bg,
	}
	if showModal {
		state.ModalContent = m.renderModal()
	}
	return state
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("workload") + " " +
		m.styles.StatsStyle.Render(view.WindowTitle(m.window.Resolution, m.window.Start, m.window.End))
	if m.window.PersonID != "" {
		title += m.styles.MutedStyle.Render(" · person " + m.window.PersonID)
	}
	return view.PadLinesWithBackground(title, m.width, 1, m.styles.palette.Bg)
}

func (m Model) renderBody() string {
	switch {
	case m.initState.NeedsInit:
		return ""
	case m.summary == nil:
		return m.styles.MutedStyle.Render(" Loading...")
	case len(m.summary.Rows) == 0:
		if m.window.PersonID != "" {
			return m.styles.MutedStyle.Render(fmt.Sprintf(" No person with id %q. Press / to change the filter.", m.window.PersonID))
		}
		return m.styles.MutedStyle.Render(" No people found. Add one with `workload person add` or `workload import`.")
	}
	return view.RenderHeatmap(m.heatmapViewState())
}

func (m Model) renderFooter() string {
	state := view.FooterViewState{
		Width:    m.width,
		HelpLine: m.help.View(m.keys),
		Bg:       m.styles.palette.Bg,
	}
	if m.summary != nil {
		st := m.summary.Stats
		state.StatsLine = m.styles.StatsStyle.Render(fmt.Sprintf(" Team %s/%s (%.0f%%) · billable %.0f%% · ",
			view.Hours(st.TotalPlanned), view.Hours(st.TotalCapacity), st.AverageUtilization, m.summary.BillablePercent)) +
			m.styles.statusStyle(allocation.StatusOverallocated).Render(fmt.Sprintf("%d over", st.Over)) + " " +
			m.styles.statusStyle(allocation.StatusOptimal).Render(fmt.Sprintf("%d optimal", st.Optimal)) + " " +
			m.styles.statusStyle(allocation.StatusAvailable).Render(fmt.Sprintf("%d under", st.Under))
		state.LegendLine = m.legend(m.summary.Thresholds)
	}
	if m.mode == ModePrompt {
		state.PromptLine = " " + m.prompt.View()
	}
	switch {
	case m.err != nil:
		state.StatusLine = m.styles.ErrorStyle.Render(" " + m.statusMsg)
	case m.loading:
		state.StatusLine = m.styles.MutedStyle.Render(" Loading...")
	case m.statusMsg != "":
		state.StatusLine = m.styles.StatusStyle.Render(" " + m.statusMsg)
	}
	return view.RenderFooter(state)
}

func (m Model) legend(th allocation.Thresholds) string {
	swatch := func(status allocation.Status, label string) string {
		return m.styles.statusStyle(status).Render("■") + m.styles.LegendStyle.Render(" "+label+"  ")
	}
	return m.styles.LegendStyle.Render(" ") +
		swatch(allocation.StatusAvailable, fmt.Sprintf("<%.0f%%", th.AvailableBelow)) +
		swatch(allocation.StatusOptimal, "optimal") +
		swatch(allocation.StatusOverallocated, fmt.Sprintf("≥%.0f%%", th.OverallocatedAt)) +
		m.styles.LegendStyle.Render("* leave")
}

func (m Model) renderModal() string {
	var title, body, footer string
	switch m.modalType {
	case ModalDetail:
		title, body, footer = m.detailModal()
	case ModalInsight:
		title = "Insight"
		body = lipgloss.NewStyle().Width(modalWidth).Render(strings.TrimSpace(m.insight))
		footer = "y copy · esc close"
	case ModalRebalance:
		title, body, footer = m.rebalanceModal()
	case ModalInit:
		title, body, footer = m.initModal()
	default:
		return ""
	}
	return view.RenderModalFrame(title, body, footer, m.styles.Modal)
}

func (m Model) detailModal() (string, string, string) {
	row, a, ok := m.selected()
	if !ok {
		return "Detail", "Nothing selected.", "esc close"
	}
	title := row.Person.DisplayName() + " · " + a.Bucket.Label()
	lines := view.DetailLines(a, m.summary.Thresholds.CellStatus(a), modalWidth)
	return title, strings.Join(lines, "\n"), "y copy items · esc close"
}

func (m Model) rebalanceModal() (string, string, string) {
	title := "Suggested reassignments"
	if m.rebalance == nil {
		return title, "", "esc close"
	}

	names := make(map[string]string)
	before := make(map[string]allocation.Totals)
	if m.summary != nil {
		for _, r := range m.summary.Rows {
			names[r.Person.ID] = r.Person.DisplayName()
			before[r.Person.ID] = r.Totals
		}
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	var lines []string
	if len(m.rebalance.Moves) == 0 {
		lines = append(lines, "No reassignments suggested.")
	}
	touched := make(map[string]bool)
	for _, mv := range m.rebalance.Moves {
		lines = append(lines, fmt.Sprintf("%s %s: %s → %s",
			mv.Item.ID, view.Fit(mv.Item.Name, 24), name(mv.From), name(mv.To)))
		if mv.Reason != "" {
			lines = append(lines, "  "+view.Fit(mv.Reason, modalWidth-2))
		}
		touched[mv.From] = true
		touched[mv.To] = true
	}

	if m.rebalance.After != nil && len(touched) > 0 {
		lines = append(lines, "", "Utilization:")
		for _, r := range m.rebalance.After.Rows {
			if !touched[r.Person.ID] {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-16s %4.0f%% → %4.0f%%",
				view.Fit(r.Person.DisplayName(), 16), before[r.Person.ID].UtilizationPercent, r.Totals.UtilizationPercent))
		}
	}
	if len(m.rebalance.Warnings) > 0 {
		lines = append(lines, "", "Warnings:")
		for _, w := range m.rebalance.Warnings {
			lines = append(lines, "  ! "+view.Fit(w, modalWidth-4))
		}
	}

	footer := "esc close"
	if len(m.rebalance.Moves) > 0 {
		footer = "a apply · esc dismiss"
	}
	return title, strings.Join(lines, "\n"), footer
}

func (m Model) initModal() (string, string, string) {
	var lines []string
	if m.initState.ConfigMissing {
		lines = append(lines, "Create config:   "+m.initState.ConfigPath)
	}
	if m.initState.DBMissing {
		lines = append(lines, "Create database: "+m.initState.DBPath)
	}
	if m.initError != "" {
		lines = append(lines, "", m.styles.ErrorStyle.Render("Error: "+m.initError))
	}
	return "Set up workload", strings.Join(lines, "\n"), "y create · n quit"
}
