package patch

import (
	"reflect"

	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/resolve"
)

// Host members the patches bind to. Candidates list the development name
// first, then known obfuscated names; roles with Match fall back to type and
// declaration position
var (
	RoleBrightnessTable = resolve.Role{
		Name:       "brightness_table",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[[]float32](),
		Candidates: []string{"lightBrightnessTable", "field_76573_f"},
	}
	RoleGamma = resolve.Role{
		Name:       "gamma",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[float32](),
		Candidates: []string{"gammaSetting", "field_74333_Y"},
	}
	RoleAmbientOcclusion = resolve.Role{
		Name:       "ambient_occlusion",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[int](),
		Candidates: []string{"ambientOcclusion", "field_74348_k"},
	}
	RoleRenderDistance = resolve.Role{
		Name:       "render_distance",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[int](),
		Candidates: []string{"renderDistanceChunks", "field_151451_c"},
	}
	RoleFarPlane = resolve.Role{
		Name:       "far_plane",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[float32](),
		Candidates: []string{"farPlaneDistance", "field_78530_q", "field_78526_r"},
		Match:      resolve.Any,
	}
	RoleLightmapTexture = resolve.Role{
		Name:  "lightmap_texture",
		Kind:  resolve.KindSlot,
		Type:  reflect.TypeFor[*host.Texture](),
		Match: resolve.Any,
	}
	RoleSkylightSubtracted = resolve.Role{
		Name:       "skylight_subtracted",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[int](),
		Candidates: []string{"skylightSubtracted", "field_72989_e"},
	}
	RoleCalculateSkylight = resolve.Role{
		Name:       "calculate_skylight",
		Kind:       resolve.KindEntry,
		Type:       reflect.TypeFor[func(float32) int](),
		Candidates: []string{"CalculateSkylightSubtracted", "Func_72967_a"},
	}
	RoleVertexColorMultiplier = resolve.Role{
		Name:       "vertex_color_multiplier",
		Kind:       resolve.KindSlot,
		Type:       reflect.TypeFor[[]float32](),
		Candidates: []string{"field_178201_c"},
		Match:      resolve.Any,
		Nth:        1,
	}
)

// Roles returns every compiled-in role
func Roles() []resolve.Role {
	return []resolve.Role{
		RoleBrightnessTable,
		RoleGamma,
		RoleAmbientOcclusion,
		RoleRenderDistance,
		RoleFarPlane,
		RoleLightmapTexture,
		RoleSkylightSubtracted,
		RoleCalculateSkylight,
		RoleVertexColorMultiplier,
	}
}
