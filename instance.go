package flat2d

import "fmt"

// InstanceStride is the number of float32 values uploaded per quad.
const InstanceStride = 15

// Slot offsets within an Instance. The layout is shared with the vertex
// stage and must not change.
const (
	InstDirXX = iota
	InstDirXY
	InstDirYX
	InstDirYY
	InstPosX
	InstPosY
	InstUVLeft
	InstUVRight
	InstUVBottom
	InstUVTop
	InstDepth
	InstColorR
	InstColorG
	InstColorB
	InstColorA
)

// Instance is the per-quad payload of an instance buffer.
type Instance [InstanceStride]float32

// DirX returns the quad's horizontal basis vector.
func (in Instance) DirX() (x, y float32) { return in[InstDirXX], in[InstDirXY] }

// DirY returns the quad's vertical basis vector.
func (in Instance) DirY() (x, y float32) { return in[InstDirYX], in[InstDirYY] }

// Pos returns the quad's anchor position and depth.
func (in Instance) Pos() (x, y, z float32) { return in[InstPosX], in[InstPosY], in[InstDepth] }

// UV returns the UV rectangle the quad samples.
func (in Instance) UV() TexCoords {
	return TexCoords{
		Left:   in[InstUVLeft],
		Right:  in[InstUVRight],
		Bottom: in[InstUVBottom],
		Top:    in[InstUVTop],
	}
}

// Color returns the quad's tint.
func (in Instance) Color() Color {
	return Color{in[InstColorR], in[InstColorG], in[InstColorB], in[InstColorA]}
}

// Encode computes the instance data of q. Sprite quads read their rectangle
// from sheets.
//
// Encode panics if a sprite quad's sheet is gone or its index is out of
// range: collection only checks that the sheet is loaded, so a bad index is a
// broken sheet, not a loading race.
func (q *Quad) Encode(sheets *Storage[SpriteSheet]) Instance {
	var (
		uv            TexCoords
		width, height float64
		anchor        [4]float64
	)

	switch q.Kind {
	case QuadSprite:
		sheet, ok := sheets.Get(q.Sprite.Sheet)
		if !ok {
			panic(fmt.Sprintf("flat2d: sprite sheet %d unloaded after collection", q.Sprite.Sheet.ID()))
		}
		sprite, ok := sheet.Sprite(q.Sprite.Index)
		if !ok {
			panic(fmt.Sprintf("flat2d: sprite index %d out of range for sheet %d (%d sprites)",
				q.Sprite.Index, q.Sprite.Sheet.ID(), len(sheet.Sprites)))
		}
		uv = sprite.TexCoords
		width, height = float64(sprite.Width), float64(sprite.Height)
		// Offsets point into the sprite; shift the quad the other way so the
		// pivot lands on the entity.
		anchor = [4]float64{-float64(sprite.Offsets[0]), -float64(sprite.Offsets[1]), 0, 1}
	case QuadImage:
		uv = UnitTexCoords
		width, height = float64(q.Width), float64(q.Height)
		anchor = [4]float64{1, 1, 0, 1}
	default:
		panic(fmt.Sprintf("flat2d: unknown quad kind %d", q.Kind))
	}

	if q.Flip.Horizontal() {
		uv.Left, uv.Right = uv.Right, uv.Left
	}
	if q.Flip.Vertical() {
		uv.Bottom, uv.Top = uv.Top, uv.Bottom
	}

	m := &q.Matrix
	col0, col1 := m.Column(0), m.Column(1)
	pos := m.MulVec4(anchor)

	tint := ColorWhite
	if q.Tinted {
		tint = q.Tint
	}

	return Instance{
		float32(col0[0] * width), float32(col0[1] * width),
		float32(col1[0] * height), float32(col1[1] * height),
		float32(pos[0]), float32(pos[1]),
		uv.Left, uv.Right, uv.Bottom, uv.Top,
		float32(pos[2]),
		tint.R, tint.G, tint.B, tint.A,
	}
}
