package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/workload/internal/allocation"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Leave       lipgloss.Color

	// Foreground and cell background per allocation status.
	Status   map[allocation.Status]lipgloss.Color
	StatusBg map[allocation.Status]lipgloss.Color
	TextOn   map[allocation.Status]lipgloss.Color

	TextOnAccent lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg       lipgloss.Color
	Border   lipgloss.AdaptiveColor
	Text     lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Backdrop lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := isLightTheme(t.Bg)
	status := map[allocation.Status]string{
		allocation.StatusNone:          t.FgMuted,
		allocation.StatusAvailable:     t.Available,
		allocation.StatusOptimal:       t.Optimal,
		allocation.StatusOverallocated: t.Over,
	}

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Leave:       lipgloss.Color(t.Leave),

		Status:   make(map[allocation.Status]lipgloss.Color, len(status)),
		StatusBg: make(map[allocation.Status]lipgloss.Color, len(status)),
		TextOn:   make(map[allocation.Status]lipgloss.Color, len(status)),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:       lipgloss.Color(coalesce(t.BaseBg, t.BgHighlight, t.Bg)),
			Border:   adaptiveColor(coalesce(t.ModalBorder, t.Accent)),
			Text:     adaptiveColor(coalesce(t.TextPrimary, t.Fg)),
			Muted:    adaptiveColor(coalesce(t.TextMuted, t.FgMuted)),
			Backdrop: lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		},
	}

	for s, hex := range status {
		bg := cellBg(hex, t.Bg, isLight)
		if s == allocation.StatusNone {
			bg = t.Bg
		}
		p.Status[s] = lipgloss.Color(hex)
		p.StatusBg[s] = lipgloss.Color(bg)
		p.TextOn[s] = lipgloss.Color(chooseTextColor(bg, t.Bg, t.Fg))
	}
	return p
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// cellBg tints the theme background with a status color.
func cellBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.70)
	}
	return darkenColor(accent)
}

// darkenColor halves the brightness of a hex color, keeping a floor so
// cells stay visible on dark themes.
func darkenColor(hex string) string {
	r, g, b, ok := rgb(hex)
	if !ok {
		return hex
	}

	const minBrightness = 40
	darken := func(c int) int { return max(int(float64(c)*0.5), minBrightness) }
	return formatHexColor(darken(r), darken(g), darken(b))
}

func rgb(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return r, g, b, true
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	return string([]byte{'#', hex[r>>4], hex[r&0xf], hex[g>>4], hex[g&0xf], hex[b>>4], hex[b&0xf]})
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := rgb(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a toward b; ratio 0 is a, 1 is b.
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := rgb(a)
	br, bg, bb, okB := rgb(b)
	if !okA || !okB {
		return a
	}
	ratio = min(max(ratio, 0), 1)

	mix := func(x, y int) int { return int(float64(x)*(1-ratio) + float64(y)*ratio) }
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
