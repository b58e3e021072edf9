package host

// Hooks are the injection points the host calls into. Goroutine per hook:
//   - WorldLoaded: the goroutine owning the world (client or server)
//   - BlockChanged: the server goroutine
//   - Step, LightmapUpdated, FogColorUpdated, SetupFog, AOFaceUpdated: the
//     client goroutine
type Hooks interface {
	// WorldLoaded fires after a world is created, before its first step
	WorldLoaded(w World)
	// BlockChanged fires after a light-emitting block is placed or broken
	BlockChanged(w World, pos BlockPos, lightValue int)
	// Step fires at the end of every client step, with or without a world
	Step(c *Client)
	// LightmapUpdated fires after the host fills and uploads the lightmap
	LightmapUpdated(c *Client)
	// FogColorUpdated fires after the host computes the clear color
	FogColorUpdated(c *Client, partial float64)
	// SetupFog fires before terrain is drawn
	SetupFog(c *Client)
	// AOFaceUpdated fires after the host fills a face's vertex brightness
	AOFaceUpdated(face any)
}

// NopHooks implements Hooks with no-ops; embed it to override a subset
type NopHooks struct{}

func (NopHooks) WorldLoaded(World)                 {}
func (NopHooks) BlockChanged(World, BlockPos, int) {}
func (NopHooks) Step(*Client)                      {}
func (NopHooks) LightmapUpdated(*Client)           {}
func (NopHooks) FogColorUpdated(*Client, float64)  {}
func (NopHooks) SetupFog(*Client)                  {}
func (NopHooks) AOFaceUpdated(any)                 {}
