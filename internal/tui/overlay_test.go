package tui

import "testing"

func TestOverlayRender(t *testing.T) {
	o := NewOverlayModel("")

	tests := []struct {
		name    string
		base    string
		width   int
		height  int
		content string
		want    string
	}{
		{
			name:    "centered",
			base:    "aaaa\nbbbb\ncccc",
			width:   4,
			height:  3,
			content: "XY",
			want:    "aaaa\nbXYb\ncccc",
		},
		{
			name:    "short base is padded",
			base:    "ab",
			width:   4,
			height:  3,
			content: "X",
			want:    "ab  \n X  \n    ",
		},
		{
			name:    "wide content is clipped",
			base:    "....",
			width:   2,
			height:  1,
			content: "ABCD",
			want:    "AB",
		},
		{
			name:    "ragged content is padded to a box",
			base:    "....\n....",
			width:   4,
			height:  2,
			content: "AB\nC\n",
			want:    ".AB.\n.C .",
		},
		{
			name:    "empty content",
			base:    "base",
			width:   4,
			height:  1,
			content: "",
			want:    "base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.Render(tt.base, tt.width, tt.height, tt.content); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlayRender_ZeroSize(t *testing.T) {
	o := NewOverlayModel("#000000")
	if got := o.Render("base", 0, 0, "modal"); got != "base" {
		t.Errorf("Render() = %q, want base unchanged", got)
	}
}
