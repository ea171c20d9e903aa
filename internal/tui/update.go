package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/workload/internal/tui/commands"
)

const statusTTL = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-lenPrompt(m)-2, 10)
		m.clampCursor()
		return m, nil

	case commands.SummaryLoadedMsg:
		m.summary = msg.Summary
		m.loading = false
		m.err = nil
		m.focusColumn(m.focus)
		LogCursorMove(m.cursor, "loaded")
		return m, nil

	case commands.InsightMsg:
		m.insight = msg.Text
		m.statusMsg = ""
		return m.openModal(ModalInsight, "insight")

	case commands.RebalanceMsg:
		m.rebalance = &msg
		m.statusMsg = ""
		return m.openModal(ModalRebalance, "rebalance")

	case commands.MovesAppliedMsg:
		m.rebalance = nil
		cmd := tea.Batch(m.flash(fmt.Sprintf("Reassigned %d items", msg.Count)), m.load("moves applied"))
		return m, cmd

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		cmd := m.flash(msg.Msg)
		return m, cmd

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func lenPrompt(m Model) int {
	return len([]rune(m.prompt.Prompt))
}

func (m Model) openModal(t ModalType, reason string) (tea.Model, tea.Cmd) {
	LogModeChange(m.mode, ModeModal, reason)
	m.mode = ModeModal
	m.modalType = t
	return m, nil
}

func (m Model) closeModal(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	return m
}

// flash shows a status message and schedules its removal.
func (m *Model) flash(s string) tea.Cmd {
	m.statusMsg = s
	m.statusTime = time.Now().Add(statusTTL)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
