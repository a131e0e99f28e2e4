package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/logging"
)

func menuStep(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	require.True(t, ok)
	return menu
}

func TestMenuPreviewsSeededLayout(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	seed := m.Config().Seed
	require.NotZero(t, seed, "a zero seed is replaced from the clock")
	require.NotEmpty(t, m.preview)
	require.Contains(t, m.View(), "★")

	// Moving the cursor keeps the seed
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.cursor)
	require.Equal(t, seed, m.Config().Seed)

	m = menuStep(t, m, runeKey('r'))
	require.NotEqual(t, seed, m.Config().Seed)
}

func TestMenuFixedSeedIgnoresReroll(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	m = menuStep(t, m, runeKey('r'))
	require.Equal(t, int64(42), m.Config().Seed)
	require.Contains(t, m.View(), "seed 42")
}

func TestMenuHidesPreviewOnShortTerminal(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 12})
	require.Empty(t, m.preview)
	require.NotContains(t, m.View(), "seed ")

	m = menuStep(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.NotEmpty(t, m.preview)
}

func TestSessionReturnsToMenu(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "tester", logging.Discard(), nil)
	seed := s.menu.Config().Seed

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	require.True(t, s.inGame)
	require.NotNil(t, cmd, "the maze starts ticking")
	require.Equal(t, seed, s.config.Seed, "the game plays the previewed layout")

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	require.False(t, s.inGame)
	require.False(t, s.quitting)
	require.Contains(t, s.View(), "R O O M")

	next, cmd = s.Update(runeKey('q'))
	s = next.(SessionModel)
	require.True(t, s.quitting)
	require.NotNil(t, cmd)
}
