package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/karel-quest/internal/core"
)

// ansiIndex is the 256-color palette index for each core.Color.
// ColorDefault has no entry and renders unstyled.
var ansiIndex = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = buildCellStyles()

func buildCellStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiIndex)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, idx := range ansiIndex {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(idx))
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := cellStyles[c]; ok {
		return s
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns a cell buffer into terminal output. Each row is split
// into runs of one color so a level of mostly blank air costs a handful of
// escape sequences per row.
func RenderScreen(s *core.Screen) string {
	var out strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				c := s.GetCell(x, y)
				if c.Color != color {
					break
				}
				run.WriteRune(c.Rune)
			}
			out.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return out.String()
}
