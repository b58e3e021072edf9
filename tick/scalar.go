package tick

// Scalar is an interpolated float64, e.g. the ambient darkening factor
type Scalar = Buffer[float64]

// NewScalar creates a Scalar resting at init
func NewScalar(init float64) *Scalar {
	return NewBuffer(init, Lerp)
}

// Lerp returns a + (b-a)*t, kept within [min(a,b), max(a,b)] against
// rounding. t == 0 and t == 1 return the endpoints exactly
func Lerp(a, b, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	v := a + (b-a)*t
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Color is a linear RGB triple
type Color [3]float64

// Scale multiplies every channel by f
func (c Color) Scale(f float64) Color {
	return Color{c[0] * f, c[1] * f, c[2] * f}
}

// LerpColor blends per channel
func LerpColor(a, b Color, t float64) Color {
	return Color{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// RGB is an interpolated color, e.g. the fog tint
type RGB = Buffer[Color]

// NewRGB creates an RGB resting at init
func NewRGB(init Color) *RGB {
	return NewBuffer(init, LerpColor)
}
