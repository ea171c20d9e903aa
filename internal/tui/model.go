// Package tui provides the interactive allocation heatmap.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/workload/internal/bucket"
	"github.com/javiermolinar/workload/internal/config"
	"github.com/javiermolinar/workload/internal/llm"
	"github.com/javiermolinar/workload/internal/summary"
	"github.com/javiermolinar/workload/internal/task"
	"github.com/javiermolinar/workload/internal/tui/commands"
	"github.com/javiermolinar/workload/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // typing a person filter
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDetail
	ModalInsight
	ModalRebalance
	ModalInit
)

// Position is the cursor cell: a person row and a bucket column.
type Position struct {
	Row int
	Col int
}

// Model is the main TUI model.
type Model struct {
	repo   task.Repository
	config *config.Config

	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model
	prompt textinput.Model

	window  commands.Window
	summary *summary.TeamSummary
	focus   time.Time // date the cursor jumps to after the next load
	cursor  Position
	offset  int // first visible bucket column

	mode      Mode
	modalType ModalType
	insight   string
	rebalance *commands.RebalanceMsg
	initState InitState
	initError string

	overlay OverlayModel
	loading bool

	width  int
	height int

	statusMsg  string
	statusTime time.Time
	err        error

	now       func() time.Time
	client    llm.Client
	clipboard func(string) error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLLMClient sets the client used for insight and rebalancing instead
// of the configured provider.
func WithLLMClient(c llm.Client) ModelOption {
	return func(m *Model) {
		m.client = c
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.clipboard = write
	}
}

// New creates a new TUI model showing the default week window.
func New(repo task.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Prompt = "person> "
	prompt.Placeholder = "person id, empty for everyone"
	prompt.CharLimit = 64
	prompt.PromptStyle = styles.PromptStyle
	prompt.TextStyle = styles.PromptStyle

	m := &Model{
		repo:    repo,
		config:  cfg,
		theme:   t,
		styles:  styles,
		keys:    newKeyMap(),
		help:    help.New(),
		prompt:  prompt,
		mode:    ModeNormal,
		overlay: NewOverlayModel(styles.palette.Modal.Backdrop),
		now:       time.Now,
		clipboard: clipboard.WriteAll,
	}
	m.help.Styles.ShortKey = styles.PromptStyle
	m.help.Styles.ShortDesc = styles.HelpStyle
	m.help.Styles.FullKey = styles.PromptStyle
	m.help.Styles.FullDesc = styles.HelpStyle

	for _, opt := range opts {
		opt(m)
	}

	now := m.now()
	start, end := summary.DefaultWindow(bucket.Week, now)
	m.window = commands.Window{Resolution: bucket.Week, Start: start, End: end}
	m.focus = now
	return m
}

// Init loads the first window unless setup is pending.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.repo == nil {
		return nil
	}
	return commands.LoadSummary(m.repo, m.config, m.window)
}

// load reloads the current window.
func (m *Model) load(reason string) tea.Cmd {
	LogWindow(m.window, reason)
	m.loading = true
	return commands.LoadSummary(m.repo, m.config, m.window)
}

// llmClient returns the injected client or builds one from config.
func (m Model) llmClient() (llm.Client, error) {
	if m.client != nil {
		return m.client, nil
	}
	return llm.NewClient(m.config.LLM.Provider, m.config.LLM.Model, m.config.LLM.BaseURL)
}

// Run starts the TUI.
func Run(repo task.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo is
// opened from the configured path, after first-run setup if needed.
func RunWithDebug(repo task.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg, config.DefaultConfigPath())
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			if repo, err = openRepo(state.DBPath); err != nil {
				return err
			}
		}
	}

	model := New(repo, cfg, WithInitState(initState))
	p := tea.NewProgram(*model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}
