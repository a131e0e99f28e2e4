package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with intents like "walk forward" rather than raw keys.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W
	ActionBackward           // S
	ActionStrafeLeft         // A
	ActionStrafeRight        // D
	ActionTurnLeft           // Left arrow, J
	ActionTurnRight          // Right arrow, L
	ActionLookUp             // Up arrow, I
	ActionLookDown           // Down arrow, K
	ActionInteract           // E, F - toggle a nearby door
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B - go back to menu
	ActionRestart            // R - new maze after a win
	ActionQuit               // Q, Esc, Ctrl+C
	ActionPause              // P
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionForward:     "Forward",
	ActionBackward:    "Backward",
	ActionStrafeLeft:  "StrafeLeft",
	ActionStrafeRight: "StrafeRight",
	ActionTurnLeft:    "TurnLeft",
	ActionTurnRight:   "TurnRight",
	ActionLookUp:      "LookUp",
	ActionLookDown:    "LookDown",
	ActionInteract:    "Interact",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
	ActionPause:       "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the input state for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool

	// LookDX and LookDY carry pointer motion accumulated since the last tick,
	// in look units. Positive DY looks down.
	LookDX, LookDY float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddLook accumulates a look delta.
func (f *InputFrame) AddLook(dx, dy float64) {
	f.LookDX += dx
	f.LookDY += dy
}

// Clear resets all actions and look deltas for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.LookDX, f.LookDY = 0, 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.LookDX, clone.LookDY = f.LookDX, f.LookDY
	return clone
}
