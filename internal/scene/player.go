package scene

import "github.com/go-gl/mathgl/mgl64"

// PlayerSettings configures player movement and interaction.
type PlayerSettings struct {
	Speed             float64    // meters per second
	LookSensitivity   float64    // degrees per look unit
	InteractionRadius float64    // max distance to a door's reference point
	GoalRadius        float64    // max distance to the goal center
	EyeOffset         float64    // camera height above the player position
	ColliderSize      mgl64.Vec3 // player collision box
}

// DefaultPlayerSettings returns the stock walking values.
func DefaultPlayerSettings() PlayerSettings {
	return PlayerSettings{
		Speed:             3.0,
		LookSensitivity:   0.1,
		InteractionRadius: 1.0,
		GoalRadius:        0.5,
		EyeOffset:         0.65,
		ColliderSize:      mgl64.Vec3{0.2, 1.5, 0.2},
	}
}

// Intent is the player's input for one simulation step.
type Intent struct {
	Forward, Back  bool
	Left, Right    bool
	Interact       bool // edge-triggered: true only on the press frame
	LookDX, LookDY float64
}

// Player is the first-person walker. Position is the collider center.
type Player struct {
	Position mgl64.Vec3
	Body     *BoundingVolume
	Camera   *Camera

	settings PlayerSettings
	hasWon   bool
}

// NewPlayer places a player at start with its camera at eye height.
func NewPlayer(start mgl64.Vec3, aspect float64, s PlayerSettings, cs CameraSettings) *Player {
	return &Player{
		Position: start,
		Body:     NewBoundingVolume(start, s.ColliderSize),
		Camera:   NewCamera(start.Add(mgl64.Vec3{0, s.EyeOffset, 0}), aspect, cs),
		settings: s,
	}
}

// HasWon reports whether the goal has been reached. Once true it stays true.
func (p *Player) HasWon() bool { return p.hasWon }

// Settings returns the player's settings.
func (p *Player) Settings() PlayerSettings { return p.settings }

// Update runs one step: look, interact, move with collision, goal check,
// then moves the camera to follow. Nothing happens after the player has won.
// Door toggles and the win are emitted on events, which may be nil.
func (p *Player) Update(in Intent, dt float64, w *World, events *EventBus) {
	if p.hasWon {
		return
	}

	if in.LookDX != 0 || in.LookDY != 0 {
		p.Camera.UpdateLook(in.LookDX, in.LookDY, p.settings.LookSensitivity)
	}

	if in.Interact {
		if door := TryInteract(p.Position, w.Entities(), p.settings.InteractionRadius); door != nil {
			events.Emit(DoorToggledEvent{Door: door, Open: door.Door.IsOpen(), Player: p.Position})
		}
	}

	raw := p.direction(in)
	if raw.LenSqr() > 0 {
		delta := MoveDelta(raw, p.settings.Speed, dt)
		p.Position = Resolve(p.Body, p.Position, delta, w.Entities())
	}

	if goal := GoalReached(p.Position, w.Entities(), p.settings.GoalRadius); goal != nil {
		p.hasWon = true
		events.Emit(GoalReachedEvent{Goal: goal, Player: p.Position})
	}

	p.Camera.Position = p.Position.Add(mgl64.Vec3{0, p.settings.EyeOffset, 0})
}

// direction sums the camera axes for every held movement key.
func (p *Player) direction(in Intent) mgl64.Vec3 {
	var dir mgl64.Vec3
	if in.Forward {
		dir = dir.Add(p.Camera.Front())
	}
	if in.Back {
		dir = dir.Sub(p.Camera.Front())
	}
	if in.Left {
		dir = dir.Sub(p.Camera.Right())
	}
	if in.Right {
		dir = dir.Add(p.Camera.Right())
	}
	return dir
}
