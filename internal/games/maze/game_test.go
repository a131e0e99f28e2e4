package maze

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/registry"
	"github.com/vovakirdan/roommaze/internal/scene"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultMazeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	require.NoError(t, g.ConfigError())
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"maze", "maze_easy", "maze_hard"} {
		require.True(t, registry.Exists(id), id)

		g, err := registry.Create(id)
		require.NoError(t, err)
		require.Equal(t, id, g.ID())
	}

	easy, _ := registry.Lookup("maze_easy")
	require.Equal(t, "pillars 25%, up to 1 cube per room", easy.Summary)
	hard, _ := registry.Lookup("maze_hard")
	require.Equal(t, "pillars 75%, up to 3 cubes per room", hard.Summary)
	normal, _ := registry.Lookup("maze")
	require.Equal(t, "Room Maze", normal.Title)
	require.Contains(t, normal.Summary, "--difficulty")
}

func TestVariantPresets(t *testing.T) {
	easy := NewWithConfig(config.DefaultMazeConfig())
	easy.preset = config.DifficultyEasy
	easy.Reset(core.DefaultConfig())

	hard := NewWithConfig(config.DefaultMazeConfig())
	hard.preset = config.DifficultyHard
	hard.Reset(core.DefaultConfig())

	require.Equal(t, config.DifficultyEasy, easy.Difficulty())
	require.Equal(t, config.DifficultyHard, hard.Difficulty())
	require.Less(t, easy.cfg.Layout.PillarChance, hard.cfg.Layout.PillarChance)
	require.Less(t, easy.cfg.Layout.MaxCubes, hard.cfg.Layout.MaxCubes)
}

func TestConfigDifficultyApplies(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Difficulty = config.DifficultyHard

	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	require.NoError(t, g.ConfigError())
	require.Equal(t, config.DifficultyHard, g.Difficulty())
	require.Equal(t, 0.75, g.cfg.Layout.PillarChance)
	require.Equal(t, 4, g.cfg.Layout.MaxCubes)
}

func TestDifficultyFlagAppliesToDefaultVariant(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, 1)
	require.Equal(t, config.DifficultyHard, g.Difficulty())

	SetDifficultyPreset("impossible")
	g.Reset(core.DefaultConfig())
	require.Equal(t, config.DifficultyNormal, g.Difficulty(), "unknown flag keeps the config's preset")
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	cfg.Layout.GridSize = 4

	g := NewWithConfig(cfg)
	g.Reset(core.DefaultConfig())

	require.Error(t, g.ConfigError())
	require.Equal(t, 3, g.cfg.Layout.GridSize)
	require.Equal(t, 9, g.World().CountByTag()[scene.TagFloor])
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 42)
	g2 := newTestGame(t, 42)
	require.Equal(t, g1.Fingerprint(), g2.Fingerprint())

	want := scene.Fingerprint(scene.Generate(
		LayoutFor(config.DefaultMazeConfig(), ""),
		rand.New(rand.NewSource(42)),
	))
	require.Equal(t, want, g1.Fingerprint(), "game layout matches a direct generate")

	for i, n := 0, 30; i < n; i++ {
		in := press(core.ActionForward)
		if i%3 == 0 {
			in.Set(core.ActionTurnLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}
	require.Equal(t, g1.Player().Position, g2.Player().Position)
	require.Equal(t, g1.Player().Camera.Yaw, g2.Player().Camera.Yaw)

	g3 := newTestGame(t, 43)
	require.NotEqual(t, g1.Fingerprint(), g3.Fingerprint())
}

func TestStepWalksForward(t *testing.T) {
	g := newTestGame(t, 7)

	for i, n := 0, 10; i < n; i++ {
		g.Step(press(core.ActionForward))
	}

	pos := g.Player().Position
	require.InDelta(t, 0, pos[0], 1e-9)
	require.InDelta(t, -0.5, pos[2], 1e-6, "3 m/s for 10 ticks at 60 Hz")
	require.Equal(t, 10*time.Second/60, g.Elapsed())
}

func TestTurnKeys(t *testing.T) {
	g := newTestGame(t, 7)
	yaw := g.Player().Camera.Yaw
	pitch := g.Player().Camera.Pitch

	g.Step(press(core.ActionTurnRight))
	require.InDelta(t, yaw+6, g.Player().Camera.Yaw, 1e-9)

	g.Step(press(core.ActionTurnLeft))
	g.Step(press(core.ActionTurnLeft))
	require.InDelta(t, yaw-6, g.Player().Camera.Yaw, 1e-9)

	g.Step(press(core.ActionLookUp))
	require.InDelta(t, pitch+6, g.Player().Camera.Pitch, 1e-9)

	g.Step(press(core.ActionLookDown))
	require.InDelta(t, pitch, g.Player().Camera.Pitch, 1e-9)
}

func TestMouseLook(t *testing.T) {
	g := newTestGame(t, 7)
	yaw := g.Player().Camera.Yaw

	in := core.NewInputFrame()
	in.AddLook(10, 0)
	in.AddLook(20, 0)
	g.Step(in)

	require.InDelta(t, yaw+3, g.Player().Camera.Yaw, 1e-9, "30 units at 0.1 degrees each")
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, 7)

	g.Step(press(core.ActionPause))
	require.True(t, g.State().Paused)

	before := g.Player().Position
	for i, n := 0, 5; i < n; i++ {
		g.Step(press(core.ActionForward))
	}
	require.Equal(t, before, g.Player().Position)
	require.Zero(t, g.Elapsed())

	g.Step(press(core.ActionPause))
	require.False(t, g.State().Paused)
}

func TestInteractCountsDoors(t *testing.T) {
	g := newTestGame(t, 7)

	door := g.World().ByTag(scene.TagDoor)[0]
	ref := door.Door.ReferencePoint(door.Position)
	g.Player().Position = mgl64.Vec3{ref[0], g.Player().Position[1], ref[2]}

	g.Step(press(core.ActionInteract))
	require.Equal(t, 1, g.DoorsToggled())
	require.True(t, door.Door.IsOpen())

	res := g.Step(press(core.ActionInteract))
	require.Equal(t, 2, g.DoorsToggled())
	require.Equal(t, 2, res.State.DoorsToggled)
	require.False(t, door.Door.IsOpen())
}

func TestReachingGoalWins(t *testing.T) {
	g := newTestGame(t, 7)
	g.World().Goal().SetPosition(g.Player().Position)

	res := g.Step(core.NewInputFrame())
	require.True(t, res.State.GameOver)
	require.Equal(t, 1000, res.State.Score)
	require.Equal(t, g.Elapsed(), res.State.Elapsed)
	require.Equal(t, scene.FingerprintString(g.Fingerprint()), res.State.Layout)
	require.True(t, g.Player().HasWon())

	elapsed := g.Elapsed()
	before := g.Player().Position
	for i, n := 0, 10; i < n; i++ {
		g.Step(press(core.ActionForward))
	}
	require.Equal(t, elapsed, g.Elapsed(), "clock stops at the win")
	require.Equal(t, before, g.Player().Position)
}

func TestResetClearsRun(t *testing.T) {
	g := newTestGame(t, 7)
	g.World().Goal().SetPosition(g.Player().Position)
	g.Step(press(core.ActionForward))
	require.True(t, g.State().GameOver)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 8})
	require.False(t, g.State().GameOver)
	require.Zero(t, g.State().Score)
	require.Zero(t, g.DoorsToggled())
	require.Zero(t, g.Elapsed())
	require.Equal(t, int64(8), g.Seed())
	require.Equal(t, mgl64.Vec3{0, 0.75, 0}, g.Player().Position)
}

func TestResetGuardsTickRate(t *testing.T) {
	g := NewWithConfig(config.DefaultMazeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	g.Step(press(core.ActionForward))
	require.Equal(t, time.Second/60, g.Elapsed())
}

func TestScoreFor(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1000},
		{999 * time.Millisecond, 1000},
		{10 * time.Second, 950},
		{199 * time.Second, 5},
		{200 * time.Second, 1},
		{time.Hour, 1},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			require.Equal(t, tt.want, ScoreFor(tt.elapsed))
		})
	}
}

func TestRender(t *testing.T) {
	sizes := []struct {
		name string
		w, h int
	}{
		{"tiny", 10, 4},
		{"narrow", 40, 12},
		{"standard", 80, 24},
		{"wide", 160, 50},
	}

	for _, sz := range sizes {
		t.Run(sz.name, func(t *testing.T) {
			g := NewWithConfig(config.DefaultMazeConfig())
			g.Reset(core.RuntimeConfig{ScreenW: sz.w, ScreenH: sz.h, TickRate: 60, Seed: 3})

			scr := core.NewScreen(sz.w, sz.h)
			require.NotPanics(t, func() { g.Render(scr) })

			out := scr.String()
			if sz.w >= minMapWidth {
				require.Contains(t, out, "MAP")
				require.Contains(t, out, "Room Maze")
			} else {
				require.NotContains(t, out, "MAP")
			}
		})
	}
}

func TestRenderShowsWallAhead(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	view := viewRect(80, 24)
	mid := view.Y + view.H/2
	cell := scr.GetCell(view.X+view.W/2, mid)
	require.NotEqual(t, ' ', cell.Rune, "the room's far wall fills the middle of the view")
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(80, 24)

	g.Step(press(core.ActionPause))
	g.Render(scr)
	require.Contains(t, scr.String(), "PAUSED")

	g.Step(press(core.ActionPause))
	g.World().Goal().SetPosition(g.Player().Position)
	g.Step(core.NewInputFrame())
	g.Render(scr)
	require.Contains(t, scr.String(), "YOU WIN!")
	require.NotContains(t, scr.String(), "PAUSED")
}

func TestDrawMapMarksPlayer(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(30, 15)
	DrawMap(scr, core.NewRect(0, 0, 30, 15), g.World(), g.Player(), nil)

	require.Contains(t, scr.String(), "↑", "default camera faces -Z which is up on the map")
	require.Contains(t, scr.String(), "★")
}

func TestHeadingArrow(t *testing.T) {
	tests := []struct {
		yaw  float64
		want rune
	}{
		{0, '→'},
		{90, '↓'},
		{180, '←'},
		{-90, '↑'},
		{-45, '↗'},
		{360 + 45, '↘'},
	}

	for _, tt := range tests {
		require.Equal(t, string(tt.want), string(headingArrow(tt.yaw)), "yaw %v", tt.yaw)
	}
}

func TestSlabXZ(t *testing.T) {
	lo := mgl64.Vec3{-0.5, 0, -3}
	hi := mgl64.Vec3{0.5, 1, -2}

	tHit, ok := slabXZ(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, lo, hi)
	require.True(t, ok)
	require.InDelta(t, 2, tHit, 1e-9)

	_, ok = slabXZ(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, lo, hi)
	require.False(t, ok, "box behind the ray")

	_, ok = slabXZ(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 0, -1}, lo, hi)
	require.False(t, ok, "parallel ray outside the slab")

	_, ok = slabXZ(mgl64.Vec3{0, 0, -2.5}, mgl64.Vec3{0, 0, -1}, lo, hi)
	require.False(t, ok, "origin inside the box")
}

func TestViewLayout(t *testing.T) {
	require.Equal(t, core.NewRect(0, 0, 40, 10), viewRect(40, 12))

	v := viewRect(90, 24)
	require.Equal(t, 60, v.W)
	require.Equal(t, 22, v.H)
	require.InDelta(t, 60.0/44.0, viewAspect(v), 1e-9)
}

func TestPaletteFromConfig(t *testing.T) {
	pal, err := PaletteFor(config.ColorsConfig{Door: "cyan", Goal: "bright-red"})
	require.NoError(t, err)
	require.Equal(t, core.ColorCyan, pal.Color(scene.TagDoor))
	require.Equal(t, core.ColorBrightRed, pal.Color(scene.TagGoal))
	require.Equal(t, core.ColorWhite, pal.Color(scene.TagWall), "empty names keep defaults")
	require.Equal(t, core.ColorRed, pal.Color(scene.TagUntagged))

	_, err = PaletteFor(config.ColorsConfig{Wall: "plaid"})
	require.Error(t, err)
}

func TestDrawMapUsesPalette(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(30, 15)
	DrawMap(scr, core.NewRect(0, 0, 30, 15), g.World(), nil, Palette{scene.TagWall: core.ColorBlue})

	walls := 0
	for y, n := 0, scr.Height(); y < n; y++ {
		for x, n := 0, scr.Width(); x < n; x++ {
			if c := scr.GetCell(x, y); c.Rune == '█' {
				require.Equal(t, core.ColorBlue, c.Color)
				walls++
			}
		}
	}
	require.Positive(t, walls)
}
