// Package view draws the status HUD: darkness meter, lightmap, resolver
// table, queue and metrics
package view

import (
	"github.com/gdamore/tcell/v2"
)

// Panel draws one region of the HUD
type Panel interface {
	Draw(s tcell.Screen, snap *Snapshot)
}

// Toggle is implemented by panels that can be hidden
type Toggle interface {
	Visible() bool
}

type panelEntry struct {
	panel    Panel
	priority Priority
	index    int // registration order for stable sort
}

// HUD draws registered panels in priority order
type HUD struct {
	screen   tcell.Screen
	panels   []panelEntry
	regCount int
}

// New creates a HUD on an initialized screen
func New(screen tcell.Screen) *HUD {
	return &HUD{
		screen: screen,
		panels: make([]panelEntry, 0, 8),
	}
}

// NewDefault creates a HUD with the standard panel set
func NewDefault(screen tcell.Screen) *HUD {
	h := New(screen)
	h.Register(Background{}, PriorityBackground)
	h.Register(&Meter{}, PriorityMeter)
	h.Register(&LightmapPanel{}, PriorityMeter)
	h.Register(&ResolverPanel{}, PriorityTable)
	h.Register(&MetricsPanel{}, PriorityTable)
	h.Register(&StatusLine{}, PriorityStatus)
	h.Register(&HelpLine{}, PriorityHelp)
	return h
}

// Register adds a panel at the given priority. Maintains sorted order via
// insertion sort
func (h *HUD) Register(p Panel, priority Priority) {
	entry := panelEntry{
		panel:    p,
		priority: priority,
		index:    h.regCount,
	}
	h.regCount++

	pos := len(h.panels)
	for i, e := range h.panels {
		if priority < e.priority {
			pos = i
			break
		}
	}

	h.panels = append(h.panels, panelEntry{})
	copy(h.panels[pos+1:], h.panels[pos:])
	h.panels[pos] = entry
}

// Len returns the number of registered panels
func (h *HUD) Len() int { return len(h.panels) }

// Resize resyncs the screen after a terminal resize
func (h *HUD) Resize() {
	h.screen.Sync()
}

// Render clears the screen, draws every visible panel and shows the result
func (h *HUD) Render(snap Snapshot) {
	snap.Width, snap.Height = h.screen.Size()
	h.screen.Clear()
	for _, e := range h.panels {
		if t, ok := e.panel.(Toggle); ok && !t.Visible() {
			continue
		}
		e.panel.Draw(h.screen, &snap)
	}
	h.screen.Show()
}
