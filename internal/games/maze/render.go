package maze

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/scene"
)

// Screen layout.
const (
	hudRows     = 2
	minMapWidth = 60 // below this screen width the minimap is hidden
	maxMapPane  = 34
)

// Palette maps entity tags to display colors. Tags without an entry
// draw in red so they stand out.
type Palette map[scene.Tag]core.Color

// DefaultPalette returns the colors of the built-in config.
func DefaultPalette() Palette {
	return Palette{
		scene.TagFloor:    core.ColorGray,
		scene.TagWall:     core.ColorWhite,
		scene.TagDoor:     core.ColorOrange,
		scene.TagPillar:   core.ColorYellow,
		scene.TagObstacle: core.ColorMagenta,
		scene.TagGoal:     core.ColorBrightYellow,
	}
}

// PaletteFor applies the configured color names over the defaults.
func PaletteFor(c config.ColorsConfig) (Palette, error) {
	pal := DefaultPalette()
	for tag, name := range map[scene.Tag]string{
		scene.TagFloor:    c.Floor,
		scene.TagWall:     c.Wall,
		scene.TagDoor:     c.Door,
		scene.TagPillar:   c.Pillar,
		scene.TagObstacle: c.Obstacle,
		scene.TagGoal:     c.Goal,
	} {
		if name == "" {
			continue
		}
		color, err := core.ParseColor(name)
		if err != nil {
			return DefaultPalette(), fmt.Errorf("maze: %s color: %w", tag, err)
		}
		pal[tag] = color
	}
	return pal, nil
}

// Color returns the display color for t.
func (p Palette) Color(t scene.Tag) core.Color {
	if c, ok := p[t]; ok {
		return c
	}
	return core.ColorRed
}

// mapGlyph is the top-down symbol for an entity.
func mapGlyph(e *scene.Entity) rune {
	switch e.Tag {
	case scene.TagFloor:
		return '·'
	case scene.TagWall:
		return '█'
	case scene.TagDoor:
		if e.Door != nil && e.Door.IsOpen() {
			return '░'
		}
		return '▒'
	case scene.TagPillar:
		return 'O'
	case scene.TagObstacle:
		return '▪'
	case scene.TagGoal:
		return '★'
	default:
		return '?'
	}
}

func mapPaneWidth(screenW int) int {
	if screenW < minMapWidth {
		return 0
	}
	return min(screenW/3, maxMapPane)
}

// viewRect is the area of the first-person view.
func viewRect(screenW, screenH int) core.Rect {
	return core.NewRect(0, 0, max(screenW-mapPaneWidth(screenW), 1), max(screenH-hudRows, 1))
}

// viewAspect converts a cell rectangle to a pixel aspect ratio.
// Terminal cells are about twice as tall as they are wide.
func viewAspect(view core.Rect) float64 {
	if view.H <= 0 {
		return 1
	}
	return float64(view.W) / (2 * float64(view.H))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || g.player == nil {
		return
	}

	g.renderView(dst, viewRect(dst.Width(), dst.Height()))

	if paneW := mapPaneWidth(dst.Width()); paneW > 0 {
		pane := core.NewRect(dst.Width()-paneW, 0, paneW, dst.Height()-hudRows)
		dst.DrawBox(pane, core.ColorGray)
		dst.DrawTextColor(pane.X+2, pane.Y, " MAP ", core.ColorGray)
		DrawMap(dst, pane.Inset(1), g.world, g.player, g.palette)
	}

	g.renderHUD(dst)

	if g.paused {
		drawMessageBox(dst, core.ColorCyan, "PAUSED", "P: resume  Esc: quit")
	}
	if g.won {
		drawMessageBox(dst, core.ColorBrightYellow,
			"YOU WIN!",
			fmt.Sprintf("Time %s  Score %d", formatElapsed(g.Elapsed()), g.State().Score),
			fmt.Sprintf("Doors toggled: %d", g.doorsToggled),
			"R: new maze  Esc: quit",
		)
	}
}

type rayHit struct {
	t float64
	e *scene.Entity
}

// renderView casts one ray per column across the horizontal field of view and
// paints every box the ray crosses, farthest first, so low obstacles stay in
// front of the walls behind them. Heights come from the camera's
// view-projection matrix, so pitch moves the horizon.
func (g *Game) renderView(dst *core.Screen, view core.Rect) {
	cam := *g.player.Camera
	cam.AspectRatio = viewAspect(view)
	vp := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())

	yaw := mgl64.DegToRad(cam.Yaw)
	fwd := mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
	right := mgl64.Vec3{-math.Sin(yaw), 0, math.Cos(yaw)}
	tanH := math.Tan(mgl64.DegToRad(cam.FOV)/2) * cam.AspectRatio
	origin := cam.Position

	horizon, ok := projectRow(vp, origin.Add(fwd.Mul(cam.Far/2)), view)
	if !ok {
		horizon = float64(view.Y + view.H/2)
	}
	for y := view.Y; y < view.Bottom(); y++ {
		if float64(y) > horizon {
			for x := view.X; x < view.Right(); x++ {
				dst.SetColor(x, y, '.', core.ColorGray)
			}
		}
	}

	var hits []rayHit
	for c, n := 0, view.W; c < n; c++ {
		ndcX := 2*(float64(c)+0.5)/float64(view.W) - 1
		dir := fwd.Add(right.Mul(ndcX * tanH))

		hits = castRay(hits[:0], origin, dir, g.world.Entities(), cam.Near)
		for _, h := range hits {
			p := origin.Add(dir.Mul(h.t))
			top, bottom := p, p
			top[1] = h.e.Position[1] + h.e.Scale[1]/2
			bottom[1] = h.e.Position[1] - h.e.Scale[1]/2

			r0, ok0 := projectRow(vp, top, view)
			r1, ok1 := projectRow(vp, bottom, view)
			if !ok0 || !ok1 {
				continue
			}
			y0 := int(math.Floor(r0))
			y1 := int(math.Floor(r1))
			if y1 < view.Y || y0 >= view.Bottom() {
				continue
			}
			y0 = core.Clamp(y0, view.Y, view.Bottom()-1)
			y1 = core.Clamp(y1, view.Y, view.Bottom()-1)
			dst.DrawVLine(view.X+c, y0, y1, shadeGlyph(h), g.palette.Color(h.e.Tag))
		}
	}
}

// castRay appends every non-floor box hit by the horizontal ray and sorts the
// hits farthest first. dir has a unit forward component, so t is the
// perpendicular distance to the view plane.
func castRay(hits []rayHit, origin, dir mgl64.Vec3, entities []*scene.Entity, near float64) []rayHit {
	for _, e := range entities {
		if e.Tag == scene.TagFloor {
			continue
		}
		half := e.Scale.Mul(0.5)
		lo, hi := e.Position.Sub(half), e.Position.Add(half)
		if t, ok := slabXZ(origin, dir, lo, hi); ok && t >= near {
			hits = append(hits, rayHit{t: t, e: e})
		}
	}
	slices.SortFunc(hits, func(a, b rayHit) int {
		return cmp.Compare(b.t, a.t)
	})
	return hits
}

// slabXZ intersects a ray with a box footprint and returns the entry distance.
// Rays starting inside the box do not hit it.
func slabXZ(origin, dir, lo, hi mgl64.Vec3) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for _, axis := range [2]int{0, 2} {
		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}
	if tmax < tmin || tmin <= 0 {
		return 0, false
	}
	return tmin, true
}

// projectRow maps a world point to a fractional screen row inside view.
func projectRow(vp mgl64.Mat4, p mgl64.Vec3, view core.Rect) (float64, bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-9 {
		return 0, false
	}
	ndcY := clip[1] / clip[3]
	return float64(view.Y) + (1-ndcY)/2*float64(view.H), true
}

func shadeGlyph(h rayHit) rune {
	if h.e.Tag == scene.TagGoal {
		return '◆'
	}
	switch {
	case h.t < 1.5:
		return '█'
	case h.t < 3:
		return '▓'
	case h.t < 5:
		return '▒'
	default:
		return '░'
	}
}

// DrawMap draws a top-down view of w scaled to fit area. p may be nil,
// and a nil pal uses DefaultPalette.
func DrawMap(dst *core.Screen, area core.Rect, w *scene.World, p *scene.Player, pal Palette) {
	if area.W <= 0 || area.H <= 0 || w.Len() == 0 {
		return
	}

	if pal == nil {
		pal = DefaultPalette()
	}

	minX, minZ, maxX, maxZ := w.Bounds()
	spanX, spanZ := maxX-minX, maxZ-minZ
	// meters per column; a row covers twice as much
	m := max(spanX/float64(area.W), spanZ/(2*float64(area.H)))
	if m <= 0 {
		return
	}
	mapW := core.Clamp(int(math.Ceil(spanX/m)), 1, area.W)
	mapH := core.Clamp(int(math.Ceil(spanZ/(2*m))), 1, area.H)
	ox := area.X + (area.W-mapW)/2
	oy := area.Y + (area.H-mapH)/2

	col := func(x float64) int {
		return ox + core.Clamp(int(math.Floor((x-minX)/m)), 0, mapW-1)
	}
	row := func(z float64) int {
		return oy + core.Clamp(int(math.Floor((z-minZ)/(2*m))), 0, mapH-1)
	}

	paint := func(e *scene.Entity) {
		half := e.Scale.Mul(0.5)
		lo, hi := e.Position.Sub(half), e.Position.Add(half)
		glyph, color := mapGlyph(e), pal.Color(e.Tag)
		for y := row(lo[2]); y <= row(hi[2]-1e-9); y++ {
			for x := col(lo[0]); x <= col(hi[0]-1e-9); x++ {
				dst.SetColor(x, y, glyph, color)
			}
		}
	}

	for _, e := range w.ByTag(scene.TagFloor) {
		paint(e)
	}
	for _, e := range w.Entities() {
		if e.Tag != scene.TagFloor && e.Tag != scene.TagGoal {
			paint(e)
		}
	}
	if goal := w.Goal(); goal != nil {
		dst.SetColor(col(goal.Position[0]), row(goal.Position[2]), mapGlyph(goal), pal.Color(goal.Tag))
	}

	if p != nil {
		dst.SetColor(col(p.Position[0]), row(p.Position[2]), headingArrow(p.Camera.Yaw), core.ColorBrightGreen)
	}
}

// DrawMapPreview draws the current layout and start position into area.
func (g *Game) DrawMapPreview(dst *core.Screen, area core.Rect) {
	if g.world == nil {
		return
	}
	DrawMap(dst, area, g.world, g.player, g.palette)
}

// headingArrow picks one of eight arrows for a yaw in degrees.
// Screen right is +X and screen down is +Z.
func headingArrow(yaw float64) rune {
	arrows := [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	octant := int(math.Round(yaw/45)) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

func (g *Game) renderHUD(dst *core.Screen) {
	y := dst.Height() - hudRows
	cfg := layoutSettings(g.cfg.Layout)
	rx, rz := cfg.RoomAt(g.player.Position)

	status := fmt.Sprintf(" %s  %s  Doors %d  Room (%d,%d)  Seed %d  [%s]",
		g.title, formatElapsed(g.Elapsed()), g.doorsToggled, rx, rz, g.runtime.Seed, g.cfg.Difficulty)
	dst.DrawTextColor(0, y, status, core.ColorCyan)

	if !g.won {
		if door := scene.DoorInReach(g.player.Position, g.world.Entities(), g.player.Settings().InteractionRadius); door != nil {
			verb := "open"
			if door.Door.IsOpen() {
				verb = "close"
			}
			dst.DrawTextColor(len([]rune(status))+2, y, "E: "+verb+" door", core.ColorOrange)
		}
	}

	dst.DrawTextColor(0, y+1, " WASD move  ←→↑↓ look  E: door  P pause  Esc: quit", core.ColorGray)
}

// drawMessageBox draws a bordered box of lines centered on the screen.
// The first line is the title.
func drawMessageBox(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+6, len(lines)+4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+2+i, l, c)
	}
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
