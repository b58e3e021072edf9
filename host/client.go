package host

import (
	"log/slog"
	"math"
	"sync"

	"github.com/lixenwraith/hostpatch/core"
)

// DefaultRenderDistance is the initial render distance in chunks
const DefaultRenderDistance = 8

// faceCount is the number of AO faces refreshed per frame
const faceCount = 4

// ClientConfig configures a Client
type ClientConfig struct {
	Build          Build
	RenderDistance int
	Logger         *slog.Logger
}

// Client is the host's client side: the render world, settings, renderer
// and player. Steps and frames run on one goroutine (the loop); other
// goroutines reach the client only through Post
type Client struct {
	build  Build
	hooks  Hooks
	logger *slog.Logger

	world    World
	settings any
	renderer any
	faces    []any
	player   BlockPos

	skyColor   [3]float64
	clearColor [3]float64

	tasksMu sync.Mutex
	tasks   []func(*Client)

	steps  int64
	frames int64
}

// NewClient creates a client without a world. A nil hooks uses NopHooks
func NewClient(cfg ClientConfig, hooks Hooks) *Client {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if cfg.Build == "" {
		cfg.Build = BuildNamed
	}
	if cfg.RenderDistance <= 0 {
		cfg.RenderDistance = DefaultRenderDistance
	}
	if cfg.Logger == nil {
		cfg.Logger = core.Logger()
	}

	c := &Client{
		build:    cfg.Build,
		hooks:    hooks,
		logger:   cfg.Logger,
		settings: newSettings(cfg.Build, cfg.RenderDistance),
		renderer: newRenderer(cfg.Build),
		player:   BlockPos{0, SurfaceY, 0},
		skyColor: [3]float64{0.6, 0.75, 1.0},
	}
	for range faceCount {
		c.faces = append(c.faces, newAOFace(cfg.Build))
	}
	return c
}

// Post queues fn to run on the client goroutine at the start of the next
// step. Safe from any goroutine; never blocks
func (c *Client) Post(fn func(*Client)) {
	c.tasksMu.Lock()
	c.tasks = append(c.tasks, fn)
	c.tasksMu.Unlock()
}

func (c *Client) runTasks() {
	c.tasksMu.Lock()
	tasks := c.tasks
	c.tasks = nil
	c.tasksMu.Unlock()

	for _, fn := range tasks {
		fn(c)
	}
}

// LoadWorld replaces the render world with a fresh remote world
// Client goroutine only
func (c *Client) LoadWorld(dimension int) World {
	c.world = newWorld(c.build, true, dimension)
	c.logger.Info("client world loaded", "build", c.build, "dimension", dimension)
	c.hooks.WorldLoaded(c.world)
	return c.world
}

// UnloadWorld drops the render world. Client goroutine only
func (c *Client) UnloadWorld() {
	if c.world != nil {
		c.logger.Info("client world unloaded", "dimension", c.world.Dimension())
	}
	c.world = nil
}

// Step runs one client step. Client goroutine only
func (c *Client) Step() {
	c.runTasks()
	if c.world != nil {
		c.world.advance()
	}
	c.steps++
	c.hooks.Step(c)
}

// Frame renders one frame at the given partial-step fraction
// Client goroutine only
func (c *Client) Frame(partial float64) {
	c.frames++
	if c.world == nil {
		return
	}

	c.updateLightmap()
	c.hooks.LightmapUpdated(c)

	c.updateFogColor()
	c.hooks.FogColorUpdated(c, partial)

	c.hooks.SetupFog(c)

	ao := c.settings.(settingsState).ao()
	if ao == 0 {
		return
	}
	light := c.brightnessAt(c.player)
	for _, f := range c.faces {
		f.(faceState).update(light, ao)
		c.hooks.AOFaceUpdated(f)
	}
}

// updateLightmap is the host's own fill: table lookup with a gamma lift
func (c *Client) updateLightmap() {
	tex := c.Lightmap()
	if tex == nil || len(tex.Pixels) < LightWidth*LightWidth {
		return
	}
	table := c.world.brightness()
	sub := c.world.skylight()
	gamma := c.settings.(settingsState).gamma()
	for sky := range LightWidth {
		eff := max(0, sky-sub)
		for block := range LightWidth {
			b := table[max(eff, block)]
			inv := 1 - b
			lifted := 1 - inv*inv*inv*inv
			v := b*(1-gamma) + lifted*gamma
			tex.Pixels[sky*LightWidth+block] = Gray(v)
		}
	}
	tex.Upload()
}

// updateFogColor derives the clear color from the sky color and daylight
func (c *Client) updateFogColor() {
	daylight := 1 - float64(c.world.skylight())/11*0.8
	for i := range c.clearColor {
		c.clearColor[i] = c.skyColor[i] * daylight
	}
}

func (c *Client) brightnessAt(pos BlockPos) float32 {
	sky, block := UnpackLight(c.world.CombinedLight(pos))
	return c.world.brightness()[max(max(0, sky-c.world.skylight()), block)]
}

// Gray packs an opaque gray pixel from a brightness in [0,1]
func Gray(v float32) uint32 {
	v = float32(math.Max(0, math.Min(1, float64(v))))
	b := uint32(v * 255)
	return 0xFF000000 | b<<16 | b<<8 | b
}

func (c *Client) Build() Build     { return c.build }
func (c *Client) World() World     { return c.world }
func (c *Client) Settings() any    { return c.settings }
func (c *Client) Renderer() any    { return c.renderer }
func (c *Client) Faces() []any     { return c.faces }
func (c *Client) Player() BlockPos { return c.player }
func (c *Client) Steps() int64     { return c.steps }
func (c *Client) Frames() int64    { return c.frames }

// SetPlayer moves the player. Client goroutine only
func (c *Client) SetPlayer(pos BlockPos) { c.player = pos }

// SetTime jumps the world clock, e.g. to dusk. Client goroutine only
func (c *Client) SetTime(t int64) {
	if c.world != nil {
		c.world.setTime(t)
	}
}

// ClearColor returns the color the frame is cleared with
func (c *Client) ClearColor() [3]float64 { return c.clearColor }

// SetClearColor overrides the clear color for the current frame
func (c *Client) SetClearColor(rgb [3]float64) { c.clearColor = rgb }

// Inspection of private host state, for the HUD and tests

func (c *Client) Gamma() float32        { return c.settings.(settingsState).gamma() }
func (c *Client) AmbientOcclusion() int { return c.settings.(settingsState).ao() }
func (c *Client) RenderDistance() int   { return c.settings.(settingsState).renderDistance() }
func (c *Client) FarPlane() float32     { return c.renderer.(rendererState).farPlane() }
func (c *Client) Lightmap() *Texture    { return c.renderer.(rendererState).lightmap() }
func (c *Client) SkylightSubtracted() int {
	if c.world == nil {
		return 0
	}
	return c.world.skylight()
}

// BrightnessTable returns the render world's live table, nil without a world
func (c *Client) BrightnessTable() []float32 {
	if c.world == nil {
		return nil
	}
	return c.world.brightness()
}

// FaceMultipliers returns the vertex color multipliers of an AO face
func FaceMultipliers(face any) []float32 {
	if f, ok := face.(faceState); ok {
		return f.multipliers()
	}
	return nil
}
