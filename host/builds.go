package host

import "fmt"

// Build identifies a host release. Each build declares the same private
// state under different member names and orders
type Build string

const (
	// BuildNamed uses readable development names
	BuildNamed Build = "named"
	// BuildObfuscated uses obfuscated names, some outside any known mapping
	BuildObfuscated Build = "obfuscated"
)

// ParseBuild validates a build name
func ParseBuild(s string) (Build, error) {
	switch b := Build(s); b {
	case BuildNamed, BuildObfuscated:
		return b, nil
	}
	return "", fmt.Errorf("unknown host build %q", s)
}

// --- named build ---

type providerNamed struct {
	dimensionID          int
	lightBrightnessTable []float32
}

type worldNamed struct {
	worldCore
	provider           *providerNamed
	skylightSubtracted int
}

func (w *worldNamed) Provider() any { return w.provider }

func (w *worldNamed) CalculateSkylightSubtracted(partial float32) int {
	if !w.hasSky {
		return 0
	}
	return skylightAt(w.time, partial)
}

func (w *worldNamed) advance() {
	w.time++
	w.skylightSubtracted = w.CalculateSkylightSubtracted(1)
}

func (w *worldNamed) brightness() []float32 { return w.provider.lightBrightnessTable }
func (w *worldNamed) skylight() int         { return w.skylightSubtracted }
func (w *worldNamed) setTime(t int64) {
	w.time = t
	w.skylightSubtracted = w.CalculateSkylightSubtracted(1)
}

type settingsNamed struct {
	mouseSensitivity     float32
	gammaSetting         float32
	renderDistanceChunks int
	ambientOcclusion     int
}

func (s *settingsNamed) gamma() float32      { return s.gammaSetting }
func (s *settingsNamed) ao() int             { return s.ambientOcclusion }
func (s *settingsNamed) renderDistance() int { return s.renderDistanceChunks }

type rendererNamed struct {
	farPlaneDistance float32
	fovModifierHand  float32
	lightmapTexture  *Texture
	lightmapUpdate   bool
}

func (r *rendererNamed) lightmap() *Texture { return r.lightmapTexture }
func (r *rendererNamed) farPlane() float32  { return r.farPlaneDistance }

type aoFaceNamed struct {
	vertexBrightness      []float32
	vertexColorMultiplier []float32
}

func (f *aoFaceNamed) update(light float32, ao int) {
	fillFace(f.vertexBrightness, f.vertexColorMultiplier, light, ao)
}
func (f *aoFaceNamed) multipliers() []float32 { return f.vertexColorMultiplier }

// --- obfuscated build ---

type providerObf struct {
	field_76574_g int
	field_76573_f []float32
}

type worldObf struct {
	worldCore
	field_72985_G int
	field_73011_w *providerObf
	field_72989_f int // skylight subtracted, renamed past known mappings
}

func (w *worldObf) Provider() any { return w.field_73011_w }

func (w *worldObf) Func_72967_a(partial float32) int {
	if !w.hasSky {
		return 0
	}
	return skylightAt(w.time, partial)
}

func (w *worldObf) advance() {
	w.time++
	w.field_72985_G = w.field_72985_G*3 + 1013904223
	w.field_72989_f = w.Func_72967_a(1)
}

func (w *worldObf) brightness() []float32 { return w.field_73011_w.field_76573_f }
func (w *worldObf) skylight() int         { return w.field_72989_f }
func (w *worldObf) setTime(t int64) {
	w.time = t
	w.field_72989_f = w.Func_72967_a(1)
}

type settingsObf struct {
	field_74341_c  float32
	field_74333_Y  float32
	field_151451_c int
	field_74348_k  int
}

func (s *settingsObf) gamma() float32      { return s.field_74333_Y }
func (s *settingsObf) ao() int             { return s.field_74348_k }
func (s *settingsObf) renderDistance() int { return s.field_151451_c }

type rendererObf struct {
	field_78527_s float32 // far plane, renamed; first float32 in the layout
	field_78507_R float32
	field_78513_d *Texture
	field_78536_J bool
}

func (r *rendererObf) lightmap() *Texture { return r.field_78513_d }
func (r *rendererObf) farPlane() float32  { return r.field_78527_s }

type aoFaceObf struct {
	field_178200_b []float32
	field_178201_c []float32
}

func (f *aoFaceObf) update(light float32, ao int) {
	fillFace(f.field_178200_b, f.field_178201_c, light, ao)
}
func (f *aoFaceObf) multipliers() []float32 { return f.field_178201_c }

// newWorld builds a world of the given build with the vanilla brightness
// table (ambient floor 0.05)
func newWorld(b Build, remote bool, dimension int) World {
	table := vanillaBrightness()
	core := newWorldCore(remote, dimension)
	switch b {
	case BuildObfuscated:
		w := &worldObf{worldCore: core, field_73011_w: &providerObf{field_76574_g: dimension, field_76573_f: table}}
		w.field_72989_f = w.Func_72967_a(1)
		return w
	default:
		w := &worldNamed{worldCore: core, provider: &providerNamed{dimensionID: dimension, lightBrightnessTable: table}}
		w.skylightSubtracted = w.CalculateSkylightSubtracted(1)
		return w
	}
}

func newSettings(b Build, renderDistance int) any {
	if b == BuildObfuscated {
		return &settingsObf{field_74341_c: 0.5, field_74333_Y: 1.0, field_151451_c: renderDistance, field_74348_k: 2}
	}
	return &settingsNamed{mouseSensitivity: 0.5, gammaSetting: 1.0, renderDistanceChunks: renderDistance, ambientOcclusion: 2}
}

func newRenderer(b Build) any {
	lightmap := NewTexture(LightWidth, LightWidth)
	if b == BuildObfuscated {
		return &rendererObf{field_78507_R: 1, field_78513_d: lightmap}
	}
	return &rendererNamed{fovModifierHand: 1, lightmapTexture: lightmap}
}

func newAOFace(b Build) any {
	if b == BuildObfuscated {
		return &aoFaceObf{field_178200_b: make([]float32, 4), field_178201_c: make([]float32, 4)}
	}
	return &aoFaceNamed{vertexBrightness: make([]float32, 4), vertexColorMultiplier: make([]float32, 4)}
}

// Internal views of the build structs. Unexported methods stay out of the
// reflected method set, so member resolution never sees them

type worldState interface {
	brightness() []float32
	skylight() int
	setTime(t int64)
}

type settingsState interface {
	gamma() float32
	ao() int
	renderDistance() int
}

type rendererState interface {
	lightmap() *Texture
	farPlane() float32
}

type faceState interface {
	update(light float32, ao int)
	multipliers() []float32
}

// aoCorners is the corner darkening applied by smooth lighting
var aoCorners = [4]float32{0.8, 0.6, 1.0, 0.8}

func fillFace(brightness, mult []float32, light float32, ao int) {
	for i := range brightness {
		brightness[i] = light
	}
	for i := range mult {
		if ao > 0 {
			mult[i] = aoCorners[i%len(aoCorners)]
		} else {
			mult[i] = 1
		}
	}
}

// vanillaBrightness is the unpatched 16-entry table
func vanillaBrightness() []float32 {
	return BrightnessCurve(0.05)
}

// BrightnessCurve builds the 16-level light-to-brightness table for an
// ambient floor: (1-d)/(3d+1)*(1-ambient)+ambient with d = 1 - level/15
func BrightnessCurve(ambient float32) []float32 {
	table := make([]float32, MaxLight+1)
	FillBrightnessCurve(table, ambient)
	return table
}

// FillBrightnessCurve rewrites table in place
func FillBrightnessCurve(table []float32, ambient float32) {
	for i := range table {
		d := 1 - float32(i)/MaxLight
		table[i] = (1-d)/(d*3+1)*(1-ambient) + ambient
	}
}
