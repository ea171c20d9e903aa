package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings of normal mode. It implements help.KeyMap.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Today      key.Binding
	Resolution key.Binding
	Detail     key.Binding
	Filter     key.Binding
	Insight    key.Binding
	Suggest    key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "earlier")),
		Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "later")),
		PrevPage:   key.NewBinding(key.WithKeys("H", "shift+left", "pgup"), key.WithHelp("H", "prev window")),
		NextPage:   key.NewBinding(key.WithKeys("L", "shift+right", "pgdown"), key.WithHelp("L", "next window")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Resolution: key.NewBinding(key.WithKeys("r", "tab"), key.WithHelp("r", "day/week/month")),
		Detail:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "detail")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "person")),
		Insight:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insight")),
		Suggest:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "rebalance")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy csv")),
		Reload:     key.NewBinding(key.WithKeys("R", "ctrl+r"), key.WithHelp("R", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Resolution, k.Detail, k.Insight, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped in columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PrevPage, k.NextPage, k.Today, k.Resolution},
		{k.Detail, k.Filter, k.Copy, k.Reload},
		{k.Insight, k.Suggest, k.Help, k.Quit},
	}
}
