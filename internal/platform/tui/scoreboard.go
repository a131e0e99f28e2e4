package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/storage"
)

const maxRuns = 100 // rows loaded per table

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	SameSeed    key.Binding
	Replay      key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextVariant, k.SameSeed, k.Replay, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextVariant, k.PrevVariant},
		{k.SameSeed, k.Replay, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		SameSeed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "same layout"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "race this layout"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists recorded runs, fastest first. By default it shows
// one variant at a time; pressing s switches to every run on the highlighted
// run's seed, which is the same layout whatever the variant.
type ScoreboardModel struct {
	variants []registry.Variant
	cursor   int
	store    *storage.Store
	runs     []storage.Run
	stats    *storage.RunStats
	seed     int64 // non-zero while showing one seed across variants
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int

	quitting  bool
	goingBack bool
	replay    *storage.Run
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.load()
	return m
}

// load fills the table for the current variant or seed.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		var err error
		switch {
		case m.seed != 0:
			m.runs, err = m.store.RunsForSeed(m.seed, maxRuns)
		case len(m.variants) > 0:
			id := m.variants[m.cursor].ID
			m.runs, err = m.store.FastestRuns(id, maxRuns)
			if err == nil {
				m.stats, err = m.store.Stats(id)
			}
		}
		if err != nil {
			m.runs, m.stats = nil, nil
		}
	}

	m.table = m.createTable()
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// createTable sizes the columns to the terminal. The fourth column is the
// seed, or the variant when every row shares one seed.
func (m *ScoreboardModel) createTable() table.Model {
	fourth := table.Column{Title: "Seed", Width: 20}
	if m.seed != 0 {
		fourth = table.Column{Title: "Variant", Width: 18}
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Time", Width: 8},
		{Title: "Doors", Width: 5},
		fourth,
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[4].Width += min(spare, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fourth := fmt.Sprintf("%d", r.Seed)
		if m.seed != 0 {
			fourth = m.variantTitle(r.GameID)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			formatDuration(r.Duration),
			fmt.Sprintf("%d", r.DoorsToggled),
			fourth,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) variantTitle(id string) string {
	for _, v := range m.variants {
		if v.ID == id {
			return v.Title
		}
	}
	return id
}

// highlighted returns the run under the table cursor.
func (m *ScoreboardModel) highlighted() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	r := m.runs[i]
	return &r
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.seed != 0 {
				m.seed = 0
				m.load()
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if r := m.highlighted(); r != nil {
				m.replay = r
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.SameSeed):
			if m.seed != 0 {
				m.seed = 0
			} else if r := m.highlighted(); r != nil {
				m.seed = r.Seed
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.NextVariant):
			if len(m.variants) > 0 {
				m.seed = 0
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			if len(m.variants) > 0 {
				m.seed = 0
				m.cursor = (m.cursor + len(m.variants) - 1) % len(m.variants)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.load()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack || m.replay != nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.title()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.subtitle()), m.width))
	b.WriteString("\n\n")

	var body string
	if len(m.runs) == 0 {
		body = dimStyle.Italic(true).Padding(1, 4).
			Render("No runs recorded yet.\nReach the goal to set a time!")
	} else {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(body)))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) title() string {
	switch {
	case m.seed != 0:
		return fmt.Sprintf("SEED %d", m.seed)
	case len(m.variants) > 0:
		return "FASTEST RUNS - " + m.variants[m.cursor].Title
	default:
		return "FASTEST RUNS"
	}
}

// subtitle summarizes the variant, or names the shared layout.
func (m ScoreboardModel) subtitle() string {
	if m.seed != 0 {
		fp := "-"
		if len(m.runs) > 0 {
			fp = m.runs[0].Fingerprint
		}
		return fmt.Sprintf("every variant on this seed  |  layout %s", fp)
	}
	if m.stats == nil || m.stats.RunsCount == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  |  best %s  |  average %s  |  last played %s",
		m.stats.RunsCount,
		formatDuration(m.stats.BestTime),
		formatDuration(m.stats.AverageTime),
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Replay returns the run picked for a rematch, or nil.
func (m ScoreboardModel) Replay() *storage.Run {
	return m.replay
}

// ScoreboardResult is how the scoreboard screen was left.
type ScoreboardResult struct {
	Back   bool         // return to the menu
	Replay *storage.Run // play this run's variant and seed
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, width, height int) (ScoreboardResult, error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return ScoreboardResult{}, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return ScoreboardResult{}, nil
	}
	return ScoreboardResult{Back: m.IsGoingBack(), Replay: m.Replay()}, nil
}

// formatDuration shows a run time as seconds with tenths, or m:ss.t past a minute.
func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d / time.Minute)
	s := (d - time.Duration(m)*time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, s)
}
