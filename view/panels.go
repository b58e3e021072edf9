package view

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/resolve"
)

// Layout rows
const (
	rowMeter    = 0
	rowLightmap = 3
	rowTables   = 3
	lightmapCol = 0
	tablesCol   = 36
)

// Background fills the screen with the base style
type Background struct{}

func (Background) Draw(s tcell.Screen, snap *Snapshot) {
	s.Fill(' ', styleBase)
}

// Meter draws the interpolated darkening factor as a bar whose filled part
// is tinted with the current clear color
type Meter struct{}

func (m *Meter) Draw(s tcell.Screen, snap *Snapshot) {
	x := drawText(s, 0, rowMeter, snap.Width, styleTitle, "darkness ")
	label := fmt.Sprintf(" %.3f  prev %.3f  cur %.3f  partial %.2f",
		snap.Sampled, snap.Previous, snap.Current, snap.Partial)

	barWidth := snap.Width - x - len(label)
	if barWidth < 4 {
		barWidth = max(0, snap.Width-x)
		label = ""
	}
	filled := int(snap.Sampled*float64(barWidth) + 0.5)
	fill := styleBase.Foreground(rgbColor(snap.Clear))
	for i := 0; i < barWidth; i++ {
		if i < filled {
			s.SetContent(x+i, rowMeter, '█', nil, fill)
		} else {
			s.SetContent(x+i, rowMeter, '░', nil, styleDim)
		}
	}
	drawText(s, x+barWidth, rowMeter, snap.Width, styleBase, label)

	info := fmt.Sprintf("skylight -%d  gamma %.1f  ao %d  far %.0f",
		snap.Skylight, snap.Gamma, snap.AO, snap.FarPlane)
	drawText(s, 0, rowMeter+1, snap.Width, styleDim, info)
}

// LightmapPanel shows the 16x16 lightmap, two columns per texel. Rows are
// sky light, columns block light
type LightmapPanel struct{}

func (p *LightmapPanel) Draw(s tcell.Screen, snap *Snapshot) {
	drawText(s, lightmapCol, rowLightmap, snap.Width, styleTitle, "lightmap")
	const side = host.LightWidth
	if len(snap.Lightmap) < side*side {
		drawText(s, lightmapCol, rowLightmap+1, snap.Width, styleDim, "(none)")
		return
	}
	for sky := 0; sky < side; sky++ {
		y := rowLightmap + 1 + (side - 1 - sky)
		if y >= snap.Height {
			continue
		}
		for block := 0; block < side; block++ {
			x := lightmapCol + block*2
			if x+1 >= snap.Width {
				break
			}
			px := snap.Lightmap[sky*side+block]
			st := styleBase.Background(grayColor(float64(px&0xFF) / 255))
			s.SetContent(x, y, ' ', nil, st)
			s.SetContent(x+1, y, ' ', nil, st)
		}
	}
}

// ResolverPanel lists every resolved handle with its strategy
type ResolverPanel struct{}

func (p *ResolverPanel) Draw(s tcell.Screen, snap *Snapshot) {
	y := rowTables
	drawText(s, tablesCol, y, snap.Width, styleTitle, "resolver")
	y++
	for _, h := range snap.Handles {
		if y >= snap.Height-2 {
			return
		}
		st := styleOK
		switch h.Strategy() {
		case resolve.StrategyStructural:
			st = styleWarn
		case resolve.StrategyNone:
			st = styleBad
		}
		typ := "?"
		if t := h.Type(); t != nil {
			for t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			typ = t.Name()
		}
		member := h.Member().Name
		if !h.Found() {
			member = "-"
		}
		line := fmt.Sprintf("%-22s %-14s %-11s %s", h.Role(), typ, h.Strategy(), member)
		drawText(s, tablesCol, y, snap.Width, st, line)
		y++
	}
}

// MetricsPanel lists the status registry below the resolver table
type MetricsPanel struct {
	// Prefixes limits the listed keys; empty lists everything
	Prefixes []string
}

func (p *MetricsPanel) Draw(s tcell.Screen, snap *Snapshot) {
	y := rowTables + len(snap.Handles) + 2
	if y >= snap.Height-2 {
		return
	}
	drawText(s, tablesCol, y, snap.Width, styleTitle, fmt.Sprintf("metrics  queue %d", snap.Pending))
	y++

	colWidth := 34
	cols := max(1, (snap.Width-tablesCol)/colWidth)
	i := 0
	for _, e := range snap.Metrics {
		if !p.match(e.Key) {
			continue
		}
		row := y + i/cols
		if row >= snap.Height-2 {
			return
		}
		x := tablesCol + (i%cols)*colWidth
		drawText(s, x, row, min(snap.Width, x+colWidth-1), styleBase, fmt.Sprintf("%-24s %s", e.Key, e.Value))
		i++
	}
}

func (p *MetricsPanel) match(key string) bool {
	if len(p.Prefixes) == 0 {
		return true
	}
	for _, pre := range p.Prefixes {
		if strings.HasPrefix(key, pre) {
			return true
		}
	}
	return false
}

// StatusLine shows world, clock and audio state on the second-to-last row
type StatusLine struct{}

func (l *StatusLine) Draw(s tcell.Screen, snap *Snapshot) {
	y := snap.Height - 2
	if y < 0 {
		return
	}

	x := 0
	if snap.Audio {
		if snap.Muted {
			x = drawText(s, x, y, snap.Width, styleMuted, " MUTED ")
		} else {
			x = drawText(s, x, y, snap.Width, styleActive, fmt.Sprintf(" AUDIO %.2f ", snap.Gain))
		}
		x++
	}
	if snap.Paused {
		x = drawText(s, x, y, snap.Width, styleMuted, " PAUSED ")
		x++
	}

	world := "no world"
	if snap.HasWorld {
		world = fmt.Sprintf("dim %d  time %d  player %s", snap.Dimension, snap.Time, snap.Player)
	}
	x = drawText(s, x, y, snap.Width, styleBase, fmt.Sprintf("%s  %s", snap.Build, world))

	if len(snap.Messages) > 0 {
		drawText(s, x+2, y, snap.Width, styleWarn, snap.Messages[len(snap.Messages)-1])
	}
}

// HelpLine lists key bindings on the last row
type HelpLine struct {
	Hidden bool
}

func (l *HelpLine) Visible() bool { return !l.Hidden }

func (l *HelpLine) Draw(s tcell.Screen, snap *Snapshot) {
	help := "t torch  b break  ↑↓ move  n skip time  p pause  r reload  d dimension  m mute  q quit"
	drawText(s, 0, snap.Height-1, snap.Width, styleDim, help)
}
