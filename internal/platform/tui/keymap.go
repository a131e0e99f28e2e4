package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roommaze/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "esc":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "W":
		return core.ActionForward, false
	case "s", "S":
		return core.ActionBackward, false
	case "a", "A":
		return core.ActionStrafeLeft, false
	case "d", "D":
		return core.ActionStrafeRight, false
	case "left", "j":
		return core.ActionTurnLeft, false
	case "right", "l":
		return core.ActionTurnRight, false
	case "up", "i":
		return core.ActionLookUp, false
	case "down", "k":
		return core.ActionLookDown, false
	case "e", "f", " ":
		return core.ActionInteract, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionReroll // draw a new layout seed
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "r":
		return MenuActionReroll
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

// Holdable reports whether an action continues while its key is held.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionForward, core.ActionBackward,
		core.ActionStrafeLeft, core.ActionStrafeRight,
		core.ActionTurnLeft, core.ActionTurnRight,
		core.ActionLookUp, core.ActionLookDown:
		return true
	}
	return false
}

// HeldKeys approximates key holds. Terminals report presses and auto-repeats
// but never releases, so each press keeps its action active for a fixed
// number of ticks and every repeat extends it.
type HeldKeys struct {
	hold  int
	until map[core.Action]int
}

// NewHeldKeys creates a tracker that keeps actions alive for hold ticks.
func NewHeldKeys(hold int) *HeldKeys {
	return &HeldKeys{
		hold:  max(hold, 1),
		until: make(map[core.Action]int),
	}
}

// Press marks a as held from tick on.
func (h *HeldKeys) Press(a core.Action, tick int) {
	h.until[a] = tick + h.hold
}

// Apply sets every action still held at tick and forgets expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, tick int) {
	for a, until := range h.until {
		if tick >= until {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Release drops every held action.
func (h *HeldKeys) Release() {
	clear(h.until)
}

// Terminal cells are reported in whole columns and rows. Mouse motion is
// scaled to approximate pixels so look sensitivity keeps its meaning.
const (
	cellPixelsX = 10.0
	cellPixelsY = 20.0
)

// MouseLook turns absolute mouse cell positions into look deltas.
// The first motion after a reset only records the position.
type MouseLook struct {
	lastX, lastY int
	primed       bool
}

// Motion returns the look delta for a pointer now at (x, y).
// Moving down yields a positive dy.
func (m *MouseLook) Motion(x, y int) (dx, dy float64) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
		return 0, 0
	}
	dx = float64(x-m.lastX) * cellPixelsX
	dy = float64(y-m.lastY) * cellPixelsY
	m.lastX, m.lastY = x, y
	return dx, dy
}

// Reset forgets the last position.
func (m *MouseLook) Reset() {
	m.primed = false
}
