package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/export"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/summary"
	"github.com/javiermolinar/workload/internal/tui/commands"
	"github.com/javiermolinar/workload/internal/tui/view"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys on the grid.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor.Row--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row++
		m.clampCursor()

	case key.Matches(msg, m.keys.Left):
		cmd = m.stepColumn(-1)
	case key.Matches(msg, m.keys.Right):
		cmd = m.stepColumn(1)
	case key.Matches(msg, m.keys.PrevPage):
		cmd = m.shiftWindow(-m.windowLen(), "prev window")
	case key.Matches(msg, m.keys.NextPage):
		cmd = m.shiftWindow(m.windowLen(), "next window")

	case key.Matches(msg, m.keys.Today):
		now := m.now()
		m.window.Start, m.window.End = summary.DefaultWindow(m.window.Resolution, now)
		m.focus = now
		cmd = m.load("today")

	case key.Matches(msg, m.keys.Resolution):
		anchor := m.focus
		res := m.window.Resolution.Next()
		m.window.Resolution = res
		m.window.Start, m.window.End = summary.DefaultWindow(res, anchor)
		cmd = m.load("resolution " + string(res))

	case key.Matches(msg, m.keys.Detail):
		if _, _, ok := m.selected(); ok {
			return m.openModal(ModalDetail, "detail")
		}

	case key.Matches(msg, m.keys.Filter):
		LogModeChange(m.mode, ModePrompt, "filter")
		m.mode = ModePrompt
		m.prompt.SetValue(m.window.PersonID)
		m.prompt.CursorEnd()
		m.prompt.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Insight):
		cmd = m.askLLM(func(c llm.Client) tea.Cmd { return commands.Insight(c, m.summary) }, "Asking for insight...")
	case key.Matches(msg, m.keys.Suggest):
		cmd = m.askLLM(func(c llm.Client) tea.Cmd { return commands.Rebalance(c, m.config, m.summary) }, "Asking for reassignments...")

	case key.Matches(msg, m.keys.Copy):
		cmd = m.copyCSV()

	case key.Matches(msg, m.keys.Reload):
		cmd = m.load("reload")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, cmd
}

// stepColumn moves the cursor one bucket; past either edge the window
// slides by one bucket.
func (m *Model) stepColumn(delta int) tea.Cmd {
	buckets := m.buckets()
	if len(buckets) == 0 {
		return nil
	}
	next := m.cursor.Col + delta
	if next < 0 || next >= len(buckets) {
		return m.shiftWindow(delta, "slide")
	}
	m.cursor.Col = next
	m.focus = buckets[next].Start
	m.clampCursor()
	LogCursorMove(m.cursor, "column")
	return nil
}

// shiftWindow moves the window by n buckets, keeping the cursor on the
// same relative column.
func (m *Model) shiftWindow(n int, reason string) tea.Cmd {
	buckets := bucket.Enumerate(m.window.Resolution, m.window.Start, m.window.End)
	if len(buckets) == 0 || n == 0 {
		return nil
	}
	first, last := buckets[0], buckets[len(buckets)-1]
	m.window.Start = shiftBucket(first, n).Start
	m.window.End = shiftBucket(last, n).End

	col := clamp(m.cursor.Col, 0, len(buckets)-1)
	m.focus = shiftBucket(buckets[col], n).Start
	return m.load(reason)
}

// windowLen is the number of buckets in the requested window, which may
// differ from the loaded one while a reload is pending.
func (m Model) windowLen() int {
	return len(bucket.Enumerate(m.window.Resolution, m.window.Start, m.window.End))
}

func shiftBucket(b bucket.Bucket, n int) bucket.Bucket {
	for ; n > 0; n-- {
		b = b.Next()
	}
	for ; n < 0; n++ {
		b = b.Prev()
	}
	return b
}

// askLLM builds the client and runs the request built by run.
func (m *Model) askLLM(run func(llm.Client) tea.Cmd, status string) tea.Cmd {
	if m.summary == nil || len(m.summary.Rows) == 0 {
		return m.flash("Nothing to analyze")
	}
	client, err := m.llmClient()
	if err != nil {
		LogError("llm client", err)
		m.err = err
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return nil
	}
	m.statusMsg = status
	return run(client)
}

// copyCSV copies the loaded table as CSV.
func (m *Model) copyCSV() tea.Cmd {
	if m.summary == nil {
		return nil
	}
	var b strings.Builder
	if err := export.WriteCSV(&b, m.summary.Rows, m.summary.Thresholds); err != nil {
		return m.flash(fmt.Sprintf("Error: %v", err))
	}
	return m.copy(b.String(), fmt.Sprintf("Copied %d people as CSV", len(m.summary.Rows)))
}

func (m *Model) copy(text, done string) tea.Cmd {
	if err := m.clipboard(text); err != nil {
		LogError("clipboard", err)
		return m.flash("Copy failed")
	}
	return m.flash(done)
}

// handlePromptKeys edits the person filter.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		LogModeChange(m.mode, ModeNormal, "filter cancelled")
		m.mode = ModeNormal
		m.prompt.Blur()
		return m, nil

	case "enter":
		LogModeChange(m.mode, ModeNormal, "filter applied")
		m.mode = ModeNormal
		m.prompt.Blur()
		m.window.PersonID = strings.TrimSpace(m.prompt.Value())
		m.cursor.Row = 0
		cmd := m.load("filter")
		return m, cmd
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalInit:
		return m.handleInitKeys(msg)
	case ModalRebalance:
		return m.handleRebalanceKeys(msg)
	}

	switch msg.String() {
	case "esc", "enter", "q":
		return m.closeModal("modal closed"), nil
	case "y":
		var cmd tea.Cmd
		switch m.modalType {
		case ModalDetail:
			if row, a, ok := m.selected(); ok {
				cmd = m.copy(view.CopyText(row.Person.DisplayName(), a), fmt.Sprintf("Copied %d items", len(a.Contributions)))
			}
		case ModalInsight:
			cmd = m.copy(m.insight, "Copied insight")
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) handleRebalanceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "n":
		m.rebalance = nil
		return m.closeModal("rebalance dismissed"), nil
	case "a", "enter":
		if m.rebalance == nil || len(m.rebalance.Moves) == 0 {
			m.rebalance = nil
			return m.closeModal("nothing to apply"), nil
		}
		moves := m.rebalance.Moves
		m = m.closeModal("rebalance applied")
		m.statusMsg = fmt.Sprintf("Reassigning %d items...", len(moves))
		return m, commands.ApplyMoves(m.repo, moves)
	}
	return m, nil
}

func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		updated, err := m.initializeStorage()
		if err != nil {
			LogError("init", err)
			m.initError = err.Error()
			return m, nil
		}
		m = updated.closeModal("initialized")
		m.initError = ""
		cmd := m.load("initialized")
		return m, cmd
	case "n", "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}
