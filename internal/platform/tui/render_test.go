package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roommaze/internal/core"
)

func TestScreenRendererPlainOutput(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextColor(0, 0, "ab", core.ColorOrange)
	scr.SetColor(2, 0, '█', core.ColorGray)
	scr.SetColor(5, 1, '★', core.Color(250)) // unknown colors fall back to plain

	// A renderer on a non-terminal writer has no color profile.
	sr := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	if got, want := sr.Render(scr), scr.String(); got != want {
		t.Errorf("Render() = %q, expected %q", got, want)
	}
}

func TestScreenRendererCoversPalette(t *testing.T) {
	sr := NewScreenRenderer(nil)
	for c := range ansiCodes {
		if _, ok := sr.styles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
	if len(sr.styles) != len(ansiCodes) {
		t.Errorf("styles = %d, expected %d", len(sr.styles), len(ansiCodes))
	}
}
