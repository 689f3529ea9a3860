package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB is a 24-bit color used for render hints produced by the simulation.
// Shells convert it to whatever their backend understands.
type RGB struct {
	R, G, B uint8
}

// LerpRGB interpolates each channel between a and b by t in [0, 1].
func LerpRGB(a, b RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(Lerp(float64(x), float64(y), t) + 0.5)
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Nearest maps an RGB hint onto the closest terminal palette color.
// Only the saturated hues the game uses are considered.
func (c RGB) Nearest() Color {
	palette := []struct {
		rgb   RGB
		color Color
	}{
		{RGB{255, 0, 0}, ColorBrightRed},
		{RGB{255, 165, 0}, ColorOrange},
		{RGB{255, 255, 0}, ColorBrightYellow},
		{RGB{0, 255, 0}, ColorBrightGreen},
		{RGB{0, 255, 255}, ColorBrightCyan},
		{RGB{0, 0, 255}, ColorBrightBlue},
		{RGB{0, 100, 255}, ColorBlue},
		{RGB{0, 200, 0}, ColorGreen},
		{RGB{128, 128, 128}, ColorGray},
		{RGB{255, 255, 255}, ColorBrightWhite},
	}

	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr := int(c.R) - int(p.rgb.R)
		dg := int(c.G) - int(p.rgb.G)
		db := int(c.B) - int(p.rgb.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.color
			bestDist = d
		}
	}
	return best
}
