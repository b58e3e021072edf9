package host

import "fmt"

// BlockPos is an integer world coordinate
type BlockPos struct {
	X, Y, Z int
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Facing is one of the six axis directions
type Facing uint8

const (
	Down Facing = iota
	Up
	North
	South
	West
	East
)

// Facings lists all six directions
var Facings = [6]Facing{Down, Up, North, South, West, East}

var facingOffsets = [6]BlockPos{
	Down:  {0, -1, 0},
	Up:    {0, 1, 0},
	North: {0, 0, -1},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
	East:  {1, 0, 0},
}

// Offset returns the neighbour in direction f
func (p BlockPos) Offset(f Facing) BlockPos {
	d := facingOffsets[f]
	return BlockPos{p.X + d.X, p.Y + d.Y, p.Z + d.Z}
}

// Range is an inclusive box of blocks queued for re-render
type Range struct {
	Min, Max BlockPos
}

// Around returns the cube of radius r centered on p
func Around(p BlockPos, r int) Range {
	return Range{
		Min: BlockPos{p.X - r, p.Y - r, p.Z - r},
		Max: BlockPos{p.X + r, p.Y + r, p.Z + r},
	}
}

// Texture is a CPU-side dynamic texture, e.g. the 16x16 lightmap
type Texture struct {
	Pixels  []uint32
	Uploads int
}

// NewTexture allocates a w*h texture
func NewTexture(w, h int) *Texture {
	return &Texture{Pixels: make([]uint32, w*h)}
}

// Upload marks the pixels as sent to the GPU
func (t *Texture) Upload() {
	t.Uploads++
}

// Light levels are packed as sky<<20 | block<<4
const (
	MaxLight   = 15
	SurfaceY   = 64
	LightWidth = 16
)

// PackLight packs sky and block light like the host does
func PackLight(sky, block int) int {
	return sky<<20 | block<<4
}

// UnpackLight splits a packed light value
func UnpackLight(combined int) (sky, block int) {
	return (combined >> 20) & 0xF, (combined >> 4) & 0xF
}
