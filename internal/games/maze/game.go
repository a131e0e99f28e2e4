// Package maze implements the first-person room maze.
// The player walks a grid of rooms joined by doors and wins by reaching the
// goal marker hidden in one of the outer rooms.
package maze

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/scene"
)

// Game implements the room maze game logic.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset // fixed by the variant; empty follows the CLI flag

	override  *config.MazeConfig // set by NewWithConfig, skips loading
	cfg       config.MazeConfig
	configErr error
	palette   Palette

	runtime     core.RuntimeConfig
	world       *scene.World
	player      *scene.Player
	events      *scene.EventBus
	fingerprint uint64

	tickCount    int
	winTick      int
	doorsToggled int
	won          bool
	paused       bool
}

// configPath and difficultyPreset are set from the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset used by the "maze" variant.
// Unknown names fall back to the config file's own preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

func init() {
	registerVariant("maze", "Room Maze", "")
	registerVariant("maze_easy", "Room Maze (Easy)", config.DifficultyEasy)
	registerVariant("maze_hard", "Room Maze (Hard)", config.DifficultyHard)
}

func registerVariant(id, title string, preset config.DifficultyPreset) {
	registry.Register(registry.Variant{
		ID:      id,
		Title:   title,
		Summary: variantSummary(preset),
	}, func() registry.Game {
		return newVariant(id, title, preset)
	})
}

// variantSummary describes the obstacle density a preset pins.
func variantSummary(preset config.DifficultyPreset) string {
	if preset == "" {
		return "obstacles follow --difficulty"
	}
	d := config.DensityFor(preset)
	cubes := "cubes"
	if d.MaxCubes-1 == 1 {
		cubes = "cube"
	}
	return fmt.Sprintf("pillars %.0f%%, up to %d %s per room", d.PillarChance*100, d.MaxCubes-1, cubes)
}

// New creates the default maze variant.
func New() *Game {
	return newVariant("maze", "Room Maze", "")
}

// NewWithConfig creates a maze that always uses cfg instead of loading one.
func NewWithConfig(cfg config.MazeConfig) *Game {
	g := New()
	g.override = &cfg
	return g
}

func newVariant(id, title string, preset config.DifficultyPreset) *Game {
	g := &Game{
		id:     id,
		title:  title,
		preset: preset,
		events: scene.NewEventBus(),
	}
	g.events.Subscribe(scene.EventDoorToggled, func(scene.Event) {
		g.doorsToggled++
	})
	g.events.Subscribe(scene.EventGoalReached, func(scene.Event) {
		g.won = true
		g.winTick = g.tickCount
	})
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the config and generates a fresh maze from runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.cfg, g.configErr = g.loadConfig()
	g.palette, _ = PaletteFor(g.cfg.Colors) // colors were checked by Validate

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.world = scene.Generate(layoutSettings(g.cfg.Layout), rng)
	g.fingerprint = scene.Fingerprint(g.world)

	start := mgl64.Vec3{0, g.cfg.Player.StartHeight, 0}
	view := viewRect(runtime.ScreenW, runtime.ScreenH)
	g.player = scene.NewPlayer(start, viewAspect(view),
		playerSettings(g.cfg.Player), cameraSettings(g.cfg.Camera))

	g.tickCount = 0
	g.winTick = 0
	g.doorsToggled = 0
	g.won = false
	g.paused = false
}

// loadConfig resolves the config for this variant. A config that fails to
// load or validate is replaced by the defaults and the error is kept.
func (g *Game) loadConfig() (config.MazeConfig, error) {
	var cfg config.MazeConfig
	var err error
	if g.override != nil {
		cfg = *g.override
	} else {
		cfg, err = config.LoadMaze(configPath)
	}

	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	if err == nil {
		config.ResolvePreset(&cfg, preset)
		err = cfg.Validate()
	}
	if err != nil {
		cfg = config.DefaultMazeConfig()
		config.ResolvePreset(&cfg, preset)
	}
	return cfg, err
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.won {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.player.Update(g.intent(in), g.dt(), g.world, g.events)
	g.events.Flush()

	return core.StepResult{State: g.State()}
}

// intent translates platform actions into player input.
// Turn keys are converted into look units so they share the mouse path.
func (g *Game) intent(in core.InputFrame) scene.Intent {
	intent := scene.Intent{
		Forward:  in.Has(core.ActionForward),
		Back:     in.Has(core.ActionBackward),
		Left:     in.Has(core.ActionStrafeLeft),
		Right:    in.Has(core.ActionStrafeRight),
		Interact: in.Has(core.ActionInteract),
		LookDX:   in.LookDX,
		LookDY:   in.LookDY,
	}

	step := g.keyTurnUnits()
	if in.Has(core.ActionTurnLeft) {
		intent.LookDX -= step
	}
	if in.Has(core.ActionTurnRight) {
		intent.LookDX += step
	}
	if in.Has(core.ActionLookUp) {
		intent.LookDY -= step
	}
	if in.Has(core.ActionLookDown) {
		intent.LookDY += step
	}
	return intent
}

func (g *Game) keyTurnUnits() float64 {
	sens := g.cfg.Player.MouseSensitivity
	if sens <= 0 {
		return 0
	}
	return g.cfg.Player.KeyTurnDegrees / sens
}

func (g *Game) dt() float64 {
	return 1.0 / float64(g.runtime.TickRate)
}

// State returns the current game state. The score is only set once won.
func (g *Game) State() core.GameState {
	score := 0
	if g.won {
		score = ScoreFor(g.Elapsed())
	}
	return core.GameState{
		Score:        score,
		GameOver:     g.won,
		Paused:       g.paused,
		Elapsed:      g.Elapsed(),
		DoorsToggled: g.doorsToggled,
		Layout:       scene.FingerprintString(g.fingerprint),
	}
}

// Elapsed returns simulated play time, frozen at the moment of winning.
func (g *Game) Elapsed() time.Duration {
	ticks := g.tickCount
	if g.won {
		ticks = g.winTick
	}
	return time.Duration(ticks) * time.Second / time.Duration(g.runtime.TickRate)
}

// Events returns the game's event bus so the platform can subscribe loggers.
// Subscriptions survive Reset.
func (g *Game) Events() *scene.EventBus { return g.events }

// World returns the current maze.
func (g *Game) World() *scene.World { return g.world }

// Player returns the walker.
func (g *Game) Player() *scene.Player { return g.player }

// Seed returns the seed the current maze was generated from.
func (g *Game) Seed() int64 { return g.runtime.Seed }

// Fingerprint returns the layout hash of the freshly generated maze.
func (g *Game) Fingerprint() uint64 { return g.fingerprint }

// DoorsToggled returns how many times a door was opened or closed this run.
func (g *Game) DoorsToggled() int { return g.doorsToggled }

// Difficulty returns the preset in effect.
func (g *Game) Difficulty() config.DifficultyPreset { return g.cfg.Difficulty }

// ConfigError returns the error that forced a fallback to the default
// config on the last Reset, if any.
func (g *Game) ConfigError() error { return g.configErr }
