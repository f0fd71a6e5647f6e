package flat2d

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color is an RGBA tint with components in [0, 1]. Not premultiplied.
// Premultiplication happens inside the device at submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a color.RGBA, clamping out of range components.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: clampByte(c.R * c.A),
		G: clampByte(c.G * c.A),
		B: clampByte(c.B * c.A),
		A: clampByte(c.A),
	}
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Vec3 is a 3D vector. Z is used as depth by the 2D pass.
type Vec3 struct {
	X, Y, Z float64
}

// Flip mirrors the UV sampling of a quad. Geometry is left untouched.
// Values are bit flags: FlipBoth == FlipHorizontal|FlipVertical, and
// xor-ing a flag twice restores the original orientation.
type Flip uint8

const (
	FlipNone       Flip = 0                             // sample as authored
	FlipHorizontal Flip = 1 << 0                        // swap left and right UV edges
	FlipVertical   Flip = 1 << 1                        // swap top and bottom UV edges
	FlipBoth            = FlipHorizontal | FlipVertical // swap both pairs
)

// Horizontal reports whether the left and right UV edges are swapped.
func (f Flip) Horizontal() bool { return f&FlipHorizontal != 0 }

// Vertical reports whether the top and bottom UV edges are swapped.
func (f Flip) Vertical() bool { return f&FlipVertical != 0 }

// String returns a short name for the flip value.
func (f Flip) String() string {
	switch f {
	case FlipNone:
		return "none"
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "both"
	}
	return "invalid"
}

// BlendMode selects the compositing operation used by every draw call of a
// pass. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendNone                      // opaque copy (transparency disabled)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
