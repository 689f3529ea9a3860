package karel

import (
	"fmt"
	"math"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
)

// Visual characters for rendering
const (
	KarelChar    = '█'
	KarelLabel   = 'K'
	PlatformChar = '▬'
	WallChar     = '█'
	GroundChar   = '▓'
	BeeperChar   = '◆'
	GoalChar     = '▒'
	GoalFlag     = '⚑'
	SparkChar    = '*'
	FadedSpark   = '·'
)

// hudRows is the number of screen rows reserved above and below the play field.
const hudRows = 2

// viewport maps screen-space pixels from the simulation to terminal cells.
// Row 0 holds the HUD and the last row the controls hint.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, size core.Vec2) viewport {
	if size.X <= 0 || size.Y <= 0 {
		size = core.Vec2{X: 640, Y: 480}
	}
	rows := core.Max(dst.Height()-hudRows, 1)
	return viewport{
		sx:  float64(dst.Width()) / size.X,
		sy:  float64(rows) / size.Y,
		top: 1,
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * v.sx)), v.top + int(math.Floor(p.Y*v.sy))
}

// cells returns the cell box covering r, at least one cell in each direction.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x, y = v.cell(core.Vec2{X: r.X, Y: r.Y})
	x1 := int(math.Ceil(r.Right() * v.sx))
	y1 := v.top + int(math.Ceil(r.Bottom()*v.sy))
	return x, y, core.Max(x1-x, 1), core.Max(y1-y, 1)
}

// Render draws the last frame into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	rs := g.last
	if rs.Tick == 0 {
		// Nothing simulated yet; show the level as it starts.
		rs = g.session.Preview()
	}
	vp := newViewport(dst, rs.Viewport)

	// Clip the play field so world geometry never overwrites the HUD rows.
	field := core.NewScreen(dst.Width(), core.Max(dst.Height()-hudRows, 1))
	off := viewport{sx: vp.sx, sy: vp.sy}

	for _, ob := range rs.Obstacles {
		x, y, w, h := off.cells(ob.Rect)
		switch ob.Kind {
		case sim.KindWall:
			field.FillRect(x, y, w, h, WallChar, core.ColorGray)
		case sim.KindGround:
			field.FillRect(x, y, w, h, GroundChar, core.ColorGreen)
		default:
			field.FillRect(x, y, w, 1, PlatformChar, core.ColorBrightGreen)
		}
	}

	if gv := rs.Goal; gv != nil {
		x, y, w, h := off.cells(gv.Rect)
		color := gv.Color.Nearest()
		field.FillRect(x, y, w, h, GoalChar, color)
		field.SetColored(x+w/2, y, GoalFlag, color)
	}

	for _, b := range rs.Beepers {
		x, y := off.cell(b.Pos)
		field.SetColored(x, y, BeeperChar, core.ColorBrightYellow)
	}

	for _, p := range rs.Particles {
		x, y := off.cell(p.Pos)
		if p.Fade > 0.5 {
			field.SetColored(x, y, SparkChar, core.ColorBrightYellow)
		} else {
			field.SetColored(x, y, FadedSpark, core.ColorYellow)
		}
	}

	drawKarel(field, off, rs.Character)

	for y := range field.Height() {
		for x := range field.Width() {
			c := field.GetCell(x, y)
			dst.SetColored(x, y+vp.top, c.Rune, c.Color)
		}
	}

	g.drawHUD(dst, rs)

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case rs.Won && rs.ShowRestartPrompt:
		drawCenteredMessage(dst, "GOAL REACHED!", fmt.Sprintf("Score: %d  |  Press R to play again", rs.Score))
	case rs.Won:
		drawCenteredMessage(dst, "GOAL REACHED!", fmt.Sprintf("Score: %d", rs.Score))
	}
}

func drawKarel(dst *core.Screen, vp viewport, cv sim.CharacterView) {
	x, y, w, h := vp.cells(cv.Rect)
	dst.FillRect(x, y, w, h, KarelChar, core.ColorBrightBlue)
	dst.SetColored(x+w/2, y+h/2, KarelLabel, core.ColorBrightWhite)

	if w >= 3 {
		if cv.FacingLeft {
			dst.SetColored(x, y+h/2, '◀', core.ColorBrightWhite)
		} else {
			dst.SetColored(x+w-1, y+h/2, '▶', core.ColorBrightWhite)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, rs sim.RenderState) {
	hud := fmt.Sprintf(" %s | Score: %d", g.title, rs.Score)
	if rs.Total > 0 {
		hud += fmt.Sprintf(" | Beepers: %d/%d", rs.Collected, rs.Total)
	}
	dst.DrawTextColored(0, 0, hud+" ", core.ColorBrightWhite)

	hint := "Arrows/AD: Move  Space: Jump  P: Pause  Q: Quit"
	dst.DrawTextColored(1, dst.Height()-1, hint, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
