package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/storage"
)

// MenuItem represents a selectable maze variant in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Best    string // fastest recorded time, empty when none
}

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a variant
	openScoreboard bool      // True if user pressed Tab for scoreboard
	fixedSeed      bool      // the seed came from the caller and cannot be rerolled
	renderer       *ScreenRenderer
	preview        []string // styled minimap rows of the highlighted variant
	previewWidth   int
}

// mapPreviewer is implemented by games that can draw their layout top-down.
type mapPreviewer interface {
	DrawMapPreview(dst *core.Screen, area core.Rect)
}

// NewMenuModel creates a new menu model. A zero cfg.Seed draws one from the
// clock; the menu previews and hands out that seed.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return newMenuModel(store, cfg, nil)
}

func newMenuModel(store *storage.Store, cfg core.RuntimeConfig, r *ScreenRenderer) MenuModel {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if r == nil {
		r = NewScreenRenderer(nil)
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary}
		if store != nil {
			if best, err := store.BestRun(g.ID); err == nil && best != nil {
				item.Best = formatDuration(best.Duration)
			}
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		fixedSeed: fixed,
		renderer:  r,
	}
	m.refreshPreview()
	return m
}

// previewSize fits the minimap under the variant list.
func (m MenuModel) previewSize() (w, h int) {
	h = min(m.height-len(m.items)-10, 11)
	if h < 3 {
		return 0, 0
	}
	return min(m.width-4, 4*h), h
}

// refreshPreview regenerates the highlighted variant with the menu's seed.
func (m *MenuModel) refreshPreview() {
	m.preview, m.previewWidth = nil, 0
	w, h := m.previewSize()
	if w <= 0 || len(m.items) == 0 {
		return
	}

	game, err := registry.Create(m.items[m.cursor].GameID)
	if err != nil {
		return
	}
	p, ok := game.(mapPreviewer)
	if !ok {
		return
	}
	game.Reset(m.config)

	scr := core.NewScreen(w, h)
	p.DrawMapPreview(scr, core.NewRect(0, 0, w, h))
	m.preview = strings.Split(m.renderer.Render(scr), "\n")
	m.previewWidth = w
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.refreshPreview()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.refreshPreview()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.refreshPreview()
		}

	case MenuActionReroll:
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
			m.refreshPreview()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the maze
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  R O O M   M A Z E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Find the marker hidden behind the doors", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := ""
		if item.Best != "" {
			best = "  best " + item.Best
		}

		line := fmt.Sprintf("%s%-18s  %-36s%s", cursor, item.Title, item.Summary, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.preview) > 0 {
		b.WriteString("\n")
		pad := strings.Repeat(" ", max((m.width-m.previewWidth)/2, 0))
		for _, row := range m.preview {
			b.WriteString(pad)
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString(centerText(fmt.Sprintf("seed %d", m.config.Seed), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Move  |  Enter: Play  |  R: New layout  |  Tab: Fastest  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the current size and previewed seed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result. The returned
// Config carries the seed the menu previewed.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
	} else {
		result.Quit = true
	}

	return result, nil
}
