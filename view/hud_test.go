package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/patch"
	"github.com/lixenwraith/hostpatch/status"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// row returns the runes of line y as a string
func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Draw(tcell.Screen, *Snapshot) { *r.log = append(*r.log, r.name) }

func TestRegisterOrdersByPriority(t *testing.T) {
	var log []string
	h := New(newScreen(t, 40, 10))
	h.Register(recorder{"help", &log}, PriorityHelp)
	h.Register(recorder{"bg", &log}, PriorityBackground)
	h.Register(recorder{"table1", &log}, PriorityTable)
	h.Register(recorder{"table2", &log}, PriorityTable)

	h.Render(Snapshot{})
	want := "bg table1 table2 help"
	if got := strings.Join(log, " "); got != want {
		t.Errorf("draw order = %q, want %q", got, want)
	}
}

func TestHiddenPanelSkipped(t *testing.T) {
	s := newScreen(t, 100, 10)
	h := New(s)
	help := &HelpLine{Hidden: true}
	h.Register(help, PriorityHelp)

	h.Render(Snapshot{})
	if strings.Contains(row(s, 9), "quit") {
		t.Error("hidden help line drawn")
	}

	help.Hidden = false
	h.Render(Snapshot{})
	if !strings.Contains(row(s, 9), "quit") {
		t.Errorf("help line missing: %q", row(s, 9))
	}
}

func TestMeterFill(t *testing.T) {
	s := newScreen(t, 80, 24)
	h := New(s)
	h.Register(&Meter{}, PriorityMeter)

	h.Render(Snapshot{Sampled: 0.5, Previous: 0.4, Current: 0.6, Partial: 0.5, Clear: [3]float64{1, 1, 1}})
	line := row(s, rowMeter)
	full := strings.Count(line, "█")
	empty := strings.Count(line, "░")
	if full == 0 || empty == 0 || abs(full-empty) > 1 {
		t.Errorf("bar = %d full, %d empty; want about half: %q", full, empty, line)
	}
	if !strings.Contains(line, "0.500") {
		t.Errorf("label missing sample: %q", line)
	}
}

func TestDefaultHUDWithSuite(t *testing.T) {
	reg := status.NewRegistry()
	suite, err := patch.New(patch.Options{Registry: reg})
	if err != nil {
		t.Fatalf("patch.New: %v", err)
	}
	client := host.NewClient(host.ClientConfig{Build: host.BuildObfuscated}, suite)
	client.LoadWorld(0)
	client.Step()
	client.Frame(0.5)

	s := newScreen(t, 120, 40)
	h := NewDefault(s)
	if h.Len() != 7 {
		t.Fatalf("Len = %d, want 7", h.Len())
	}

	snap := Capture(client, suite, reg, 0.5)
	if !snap.HasWorld || snap.Build != host.BuildObfuscated {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Handles) == 0 || len(snap.Lightmap) != host.LightWidth*host.LightWidth {
		t.Fatalf("handles=%d lightmap=%d", len(snap.Handles), len(snap.Lightmap))
	}
	prev, cur := suite.Darken().Pair()
	if snap.Previous != prev || snap.Current != cur {
		t.Errorf("pair = (%v, %v), want (%v, %v)", snap.Previous, snap.Current, prev, cur)
	}
	if want := suite.Darken().At(snap.Previous, snap.Current, 0.5); snap.Sampled != want {
		t.Errorf("Sampled = %v, want %v from the captured pair", snap.Sampled, want)
	}
	snap.Audio, snap.Muted = true, true
	h.Render(snap)

	var all strings.Builder
	for y := 0; y < 40; y++ {
		all.WriteString(row(s, y))
		all.WriteByte('\n')
	}
	text := all.String()
	for _, want := range []string{"darkness", "lightmap", "resolver", "brightness_table", "metrics", "MUTED", "obfuscated", "dim 0"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestCaptureWithoutWorld(t *testing.T) {
	suite, err := patch.New(patch.Options{Registry: status.NewRegistry()})
	if err != nil {
		t.Fatalf("patch.New: %v", err)
	}
	client := host.NewClient(host.ClientConfig{}, suite)
	snap := Capture(client, suite, nil, 0)
	if snap.HasWorld || snap.Metrics != nil {
		t.Errorf("snapshot = %+v", snap)
	}

	s := newScreen(t, 80, 24)
	NewDefault(s).Render(snap)
	if !strings.Contains(row(s, 22), "no world") {
		t.Errorf("status line = %q", row(s, 22))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
