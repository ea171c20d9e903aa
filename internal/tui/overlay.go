package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel draws modal content centered on top of the grid. Rows the
// modal covers keep the grid on either side; the modal itself is padded
// with the backdrop color so it stays opaque.
type OverlayModel struct {
	backdrop lipgloss.Color
}

// NewOverlayModel creates an overlay painting gaps with backdrop.
func NewOverlayModel(backdrop lipgloss.Color) OverlayModel {
	return OverlayModel{backdrop: backdrop}
}

// Render implements view.OverlayRenderer.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return base
	}
	box := trimTrailingEmpty(strings.Split(content, "\n"))
	if len(box) == 0 {
		return base
	}

	boxW := 0
	for _, l := range box {
		boxW = max(boxW, lipgloss.Width(l))
	}
	boxW = min(boxW, width)
	if len(box) > height {
		box = box[:height]
	}

	top := (height - len(box)) / 2
	left := (width - boxW) / 2

	lines := fitLines(base, width, height)
	for i, l := range box {
		if w := lipgloss.Width(l); w > boxW {
			l = ansi.Truncate(l, boxW, "")
		} else if w < boxW {
			l += o.fill(boxW - w)
		}
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + l + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// fill returns n blank cells painted with the backdrop.
func (o OverlayModel) fill(n int) string {
	pad := strings.Repeat(" ", n)
	if o.backdrop == "" {
		return pad
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.backdrop))).String() + pad + ansi.ResetStyle
}

// fitLines cuts or pads base to exactly height lines of width cells.
func fitLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, l := range lines {
		w := lipgloss.Width(l)
		switch {
		case w > width:
			lines[i] = ansi.Cut(l, 0, width)
		case w < width:
			lines[i] = l + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
