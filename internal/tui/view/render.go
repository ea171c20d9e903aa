// Package view provides rendering helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// OverlayRenderer renders modal overlays on top of base content.
type OverlayRenderer interface {
	Render(base string, width, height int, content string) string
}

// ViewState contains the rendered sections and overlay metadata.
type ViewState struct {
	Width        int
	Height       int
	Title        string
	Body         string
	Footer       string
	ModalContent string
	ShowModal    bool
	Overlay      OverlayRenderer
	Bg           lipgloss.Color
	Placeholder  string
}

// Render stacks title, body and footer and draws the modal on top.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.Placeholder != "" {
			return state.Placeholder
		}
		return "Loading..."
	}

	footerH := lipgloss.Height(state.Footer)
	titleH := lipgloss.Height(state.Title)
	bodyH := max(state.Height-titleH-footerH, 0)

	base := lipgloss.JoinVertical(lipgloss.Left,
		state.Title,
		PlaceBox(state.Width, bodyH, lipgloss.Top, state.Body, state.Bg),
		state.Footer,
	)
	base = PadLinesWithBackground(base, state.Width, state.Height, state.Bg)

	if state.ShowModal && state.Overlay != nil {
		return state.Overlay.Render(base, state.Width, state.Height, state.ModalContent)
	}
	return base
}
