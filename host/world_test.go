package host

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestBrightnessCurve(t *testing.T) {
	tests := []struct {
		ambient float32
		level   int
		want    float32
	}{
		{0.05, 0, 0.05},
		{0.05, 15, 1.0},
		{0.1, 0, 0.1},
		{0.1, 15, 1.0},
		{0.1, 7, float32((1-(1-7.0/15))/((1-7.0/15)*3+1)*0.9 + 0.1)},
	}
	for _, tt := range tests {
		got := BrightnessCurve(tt.ambient)[tt.level]
		if !near(got, tt.want) {
			t.Errorf("BrightnessCurve(%v)[%d] = %v, want %v", tt.ambient, tt.level, got, tt.want)
		}
	}

	table := BrightnessCurve(0.1)
	for i := 1; i < len(table); i++ {
		if table[i] <= table[i-1] {
			t.Fatalf("curve not increasing at %d: %v <= %v", i, table[i], table[i-1])
		}
	}
}

func TestBuildsShareBehavior(t *testing.T) {
	for _, b := range []Build{BuildNamed, BuildObfuscated} {
		t.Run(string(b), func(t *testing.T) {
			w := newWorld(b, true, 0)
			if w.Provider() == nil {
				t.Fatal("Expected a provider")
			}
			if got := len(w.brightness()); got != MaxLight+1 {
				t.Fatalf("Expected 16-entry table, got %d", got)
			}
			if got := w.skylight(); got != 0 {
				t.Errorf("Expected no skylight subtracted at noon, got %d", got)
			}
			w.setTime(12000)
			if got := w.skylight(); got != 11 {
				t.Errorf("Expected 11 at midnight, got %d", got)
			}
			w.advance()
			if w.Time() != 12001 {
				t.Errorf("Expected time 12001, got %d", w.Time())
			}
		})
	}
}

func TestNetherHasNoSky(t *testing.T) {
	w := newWorld(BuildNamed, true, -1)
	w.setTime(12000)
	if got := w.skylight(); got != 0 {
		t.Errorf("Expected no skylight in a skyless dimension, got %d", got)
	}
	sky, _ := UnpackLight(w.CombinedLight(BlockPos{0, 100, 0}))
	if sky != 0 {
		t.Errorf("Expected sky light 0, got %d", sky)
	}
}

func TestParseBuild(t *testing.T) {
	if b, err := ParseBuild("obfuscated"); err != nil || b != BuildObfuscated {
		t.Errorf("ParseBuild(obfuscated) = %v, %v", b, err)
	}
	if _, err := ParseBuild("beta"); err == nil {
		t.Error("Expected error for unknown build")
	}
}

func TestCombinedLight(t *testing.T) {
	w := newWorld(BuildNamed, true, 0)
	torch := BlockPos{0, 10, 0}
	w.SetBlock(torch, 14)

	sky, block := UnpackLight(w.CombinedLight(BlockPos{2, 10, 0}))
	if sky != 0 || block != 12 {
		t.Errorf("Expected (0,12) two blocks from torch underground, got (%d,%d)", sky, block)
	}
	sky, block = UnpackLight(w.CombinedLight(BlockPos{0, SurfaceY, 0}))
	if sky != MaxLight || block != 0 {
		t.Errorf("Expected (15,0) at the surface, got (%d,%d)", sky, block)
	}

	if old := w.SetBlock(torch, 0); old != 14 {
		t.Errorf("Expected old light 14, got %d", old)
	}
	if got := w.BlockLight(torch); got != 0 {
		t.Errorf("Expected torch removed, got %d", got)
	}
}

func TestPackLightRoundTrip(t *testing.T) {
	sky, block := UnpackLight(PackLight(9, 4))
	if sky != 9 || block != 4 {
		t.Errorf("got (%d,%d)", sky, block)
	}
}

func TestMarkRangeKeepsRecent(t *testing.T) {
	w := newWorld(BuildObfuscated, true, 0)
	for i := range 40 {
		w.MarkRange(Around(BlockPos{i, 0, 0}, 1))
	}
	if got := w.MarkCount(); got != 40 {
		t.Errorf("Expected 40 marks, got %d", got)
	}
	recent := w.RecentMarks()
	if len(recent) != recentMarks {
		t.Fatalf("Expected %d recent marks, got %d", recentMarks, len(recent))
	}
	if recent[0].Min.X != 40-recentMarks-1 {
		t.Errorf("Expected oldest kept mark centered at %d, got min %v", 40-recentMarks, recent[0].Min)
	}
	if recent[len(recent)-1] != Around(BlockPos{39, 0, 0}, 1) {
		t.Errorf("Expected newest mark last, got %v", recent[len(recent)-1])
	}
}

func TestBlockPosOffset(t *testing.T) {
	p := BlockPos{1, 2, 3}
	seen := make(map[BlockPos]bool)
	for _, f := range Facings {
		n := p.Offset(f)
		d := abs(n.X-p.X) + abs(n.Y-p.Y) + abs(n.Z-p.Z)
		if d != 1 {
			t.Errorf("facing %d: neighbour %v not adjacent", f, n)
		}
		seen[n] = true
	}
	if len(seen) != 6 {
		t.Errorf("Expected 6 distinct neighbours, got %d", len(seen))
	}
}
