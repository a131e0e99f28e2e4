package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/logging"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/scene"
	"github.com/vovakirdan/roommaze/internal/storage"
)

// eventSource is implemented by games that publish scene events.
type eventSource interface {
	Events() *scene.EventBus
}

// Options configure a game session beyond the runtime config.
type Options struct {
	Player string      // recorded with saved runs
	Logger *log.Logger // nil discards
	// Renderer styles output for the client terminal; nil uses stdout.
	Renderer *lipgloss.Renderer
	// FixedSeed keeps the same maze on restart instead of drawing a new seed.
	FixedSeed bool
}

// Model is the Bubble Tea model for running a maze.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	held       *HeldKeys
	mouse      *MouseLook
	inputFrame core.InputFrame
	gameState  core.GameState
	tick       int
	tickChain  int64
	quitting   bool
	runSaved   bool // Whether the current win has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	subscribeLogger(game, logger)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewScreenRenderer(opts.Renderer),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(holdTicks(cfg.TickRate)),
		mouse:      &MouseLook{},
		inputFrame: core.NewInputFrame(),
		tickChain:  newTickChain(),
	}
}

// holdTicks covers the gap before a terminal starts auto-repeating a key.
func holdTicks(tickRate int) int {
	return max(tickRate/4, 1)
}

// subscribeLogger writes the game's scene events to the session log.
func subscribeLogger(game registry.Game, logger *log.Logger) {
	src, ok := game.(eventSource)
	if !ok {
		return
	}
	src.Events().Subscribe(scene.EventDoorToggled, func(e scene.Event) {
		ev := e.(scene.DoorToggledEvent)
		logger.Debug("door toggled", "open", ev.Open, "x", ev.Door.Position[0], "z", ev.Door.Position[2])
	})
	src.Events().Subscribe(scene.EventGoalReached, func(e scene.Event) {
		ev := e.(scene.GoalReachedEvent)
		logger.Info("goal reached", "game", game.ID(), "x", ev.Player[0], "z", ev.Player[2])
	})
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("maze started", "game", m.game.ID(), "seed", m.config.Seed)
	if cr, ok := m.game.(interface{ ConfigError() error }); ok && cr.ConfigError() != nil {
		m.logger.Warn("config rejected, using defaults", "err", cr.ConfigError())
	}

	// Start the tick loop
	return tickCmd(m.tickChain, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Chain != m.tickChain {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case Holdable(action):
		m.held.Press(action, m.tick)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse turns pointer motion into look input.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionMotion {
		return m, nil
	}
	dx, dy := m.mouse.Motion(msg.X, msg.Y)
	m.inputFrame.AddLook(dx, dy)
	return m, nil
}

// handleResize processes window resize events.
// The maze keeps its state; only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.mouse.Reset()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.opts.FixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.logger.Info("maze restarted", "game", m.game.ID(), "seed", m.config.Seed)
		m.gameState = m.game.State()
		m.runSaved = false
		m.tick = 0
		m.held.Release()
		m.inputFrame.Clear()
		return m, tickCmd(m.tickChain, m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame, m.tick)
	m.tick++

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.tickChain, m.config.TickRate)
}

// saveRun records the finished run. Failures are logged and play continues.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}

	st := m.gameState
	run := storage.Run{
		GameID:       m.game.ID(),
		Player:       m.opts.Player,
		Seed:         m.config.Seed,
		Fingerprint:  st.Layout,
		Duration:     st.Elapsed,
		DoorsToggled: st.DoorsToggled,
		Score:        st.Score,
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("cannot save run", "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "duration", run.Duration, "score", run.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".roommaze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// ProgramOptions are the Bubble Tea options every maze session uses.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // look follows the pointer without a button held
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(model, ProgramOptions()...)

	_, err := p.Run()
	return err
}

// IsQuitting returns true if the player asked to leave the maze.
func (m Model) IsQuitting() bool {
	return m.quitting
}
