package view

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	styleBase   = tcell.StyleDefault.Background(tcell.NewRGBColor(12, 12, 20)).Foreground(tcell.ColorSilver)
	styleTitle  = styleBase.Foreground(tcell.ColorWhite).Bold(true)
	styleDim    = styleBase.Foreground(tcell.ColorGray)
	styleOK     = styleBase.Foreground(tcell.ColorLightGreen)
	styleWarn   = styleBase.Foreground(tcell.ColorYellow)
	styleBad    = styleBase.Foreground(tcell.ColorRed)
	styleMuted  = styleBase.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	styleActive = styleBase.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
)

// drawText writes s at (x, y), clipped to maxX. Returns the column after
// the last cell written
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// grayColor maps an intensity in [0,1] to a gray terminal color
func grayColor(v float64) tcell.Color {
	c := int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
	return tcell.NewRGBColor(c, c, c)
}

// rgbColor maps a [0,1] triple to a terminal color
func rgbColor(c [3]float64) tcell.Color {
	ch := func(v float64) int32 { return int32(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return tcell.NewRGBColor(ch(c[0]), ch(c[1]), ch(c[2]))
}
