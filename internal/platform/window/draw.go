package window

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
)

// Karel world palette
var (
	colorBackground = color.RGBA{240, 240, 240, 255}
	colorGrid       = color.RGBA{0, 0, 0, 255}
	colorKarel      = color.RGBA{0, 100, 255, 255}
	colorPlatform   = color.RGBA{0, 200, 0, 255}
	colorWall       = color.RGBA{90, 90, 90, 255}
	colorGround     = color.RGBA{0, 150, 0, 255}
	colorBeeper     = color.RGBA{255, 200, 0, 255}
	colorSpark      = color.RGBA{255, 230, 80, 255}
	colorHUD        = color.RGBA{0, 0, 0, 170}
	colorOverlay    = color.RGBA{0, 0, 0, 140}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorHint       = color.RGBA{200, 200, 200, 255}
	colorBanner     = color.RGBA{255, 220, 0, 255}
)

var textFace = text.NewGoXFace(basicfont.Face7x13)

const (
	gridSpacing = 25
	plusArm     = 3
	lineH       = 16 // strip height per text line; the face is 13 px tall
)

func toColor(c core.RGB) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

// withAlpha scales a color's opacity. Colors are premultiplied, so every
// channel is scaled.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = core.ClampF(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func fillRect(dst *ebiten.Image, r core.Rect, clr color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// gridOffsets returns the positions of grid lines along one axis of the
// given length, shifted by scroll so the grid moves with the world.
func gridOffsets(length, scroll float64) []float64 {
	start := -math.Mod(scroll, gridSpacing)
	if start > 0 {
		start -= gridSpacing
	}
	var out []float64
	for p := start; p <= length; p += gridSpacing {
		if p >= -plusArm {
			out = append(out, p)
		}
	}
	return out
}

// drawGrid draws the plus-sign grid of Karel's world.
func drawGrid(dst *ebiten.Image, w, h float64, cameraX float64) {
	for _, x := range gridOffsets(w, cameraX) {
		for _, y := range gridOffsets(h, 0) {
			fx, fy := float32(x), float32(y)
			vector.StrokeLine(dst, fx-plusArm, fy, fx+plusArm, fy, 1, colorGrid, false)
			vector.StrokeLine(dst, fx, fy-plusArm, fx, fy+plusArm, 1, colorGrid, false)
		}
	}
}

func obstacleColor(k sim.ObstacleKind) color.RGBA {
	switch k {
	case sim.KindWall:
		return colorWall
	case sim.KindGround:
		return colorGround
	default:
		return colorPlatform
	}
}

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, textFace, op)
}

// drawCentered draws s horizontally centered with its top at y.
func drawCentered(dst *ebiten.Image, s string, y float64, clr color.Color) {
	w := float64(dst.Bounds().Dx())
	drawText(dst, s, (w-text.Advance(s, textFace))/2, y, clr)
}

// drawFrame renders a full frame: background, world, HUD and overlays.
func drawFrame(dst *ebiten.Image, rs sim.RenderState, title string, paused bool) {
	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())

	dst.Fill(colorBackground)
	drawGrid(dst, w, h, rs.CameraX)

	for _, ob := range rs.Obstacles {
		fillRect(dst, ob.Rect, obstacleColor(ob.Kind))
	}

	if g := rs.Goal; g != nil {
		fillRect(dst, g.Rect, toColor(g.Color))
	}

	for _, b := range rs.Beepers {
		vector.DrawFilledCircle(dst, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), colorBeeper, true)
	}

	for _, p := range rs.Particles {
		vector.DrawFilledCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), 2, withAlpha(colorSpark, p.Fade), true)
	}

	// Karel: blue square with a white K
	kr := rs.Character.Rect
	fillRect(dst, kr, colorKarel)
	c := kr.Center()
	drawText(dst, "K", c.X-text.Advance("K", textFace)/2, c.Y-6, colorText)

	// HUD
	vector.FillRect(dst, 0, 0, float32(w), lineH+4, colorHUD, false)
	hud := fmt.Sprintf("%s  |  Score: %d", title, rs.Score)
	if rs.Total > 0 {
		hud += fmt.Sprintf("  |  Beepers: %d/%d", rs.Collected, rs.Total)
	}
	drawText(dst, hud, 4, 3, colorText)

	vector.FillRect(dst, 0, float32(h)-lineH-4, float32(w), lineH+4, colorHUD, false)
	drawCentered(dst, "Arrow Keys: Move, Spacebar: Jump, P: Pause, Esc: Quit", h-lineH-1, colorHint)

	switch {
	case paused:
		drawBanner(dst, "PAUSED", "")
	case rs.Won:
		sub := fmt.Sprintf("Score: %d", rs.Score)
		if rs.ShowRestartPrompt {
			sub += "  |  Press R to play again"
		}
		drawBanner(dst, "GOAL REACHED!", sub)
	}
}

// drawBanner draws a dimmed band across the middle of the screen with up to
// two lines of text.
func drawBanner(dst *ebiten.Image, title, sub string) {
	w := float32(dst.Bounds().Dx())
	mid := float64(dst.Bounds().Dy() / 2)
	vector.FillRect(dst, 0, float32(mid-lineH*2), w, lineH*4, colorOverlay, false)
	drawCentered(dst, title, mid-lineH, colorBanner)
	if sub != "" {
		drawCentered(dst, sub, mid+2, colorText)
	}
}
