package flat2d

// Transform places an entity in world space.
//
// Composition order of the local matrix:
//
//	Scale -> RotateZ -> Translate
//
// When Parent is set, the global matrix is Parent.GlobalMatrix() * local.
type Transform struct {
	Translation Vec3
	Rotation    float64 // radians, counter-clockwise about Z
	Scale       Vec3
	Parent      *Transform
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() *Transform {
	return &Transform{Scale: Vec3{1, 1, 1}}
}

// SetPosition sets the X and Y translation, keeping Z.
func (t *Transform) SetPosition(x, y float64) *Transform {
	t.Translation.X = x
	t.Translation.Y = y
	return t
}

// SetDepth sets the Z translation, used as depth by the 2D pass.
func (t *Transform) SetDepth(z float64) *Transform {
	t.Translation.Z = z
	return t
}

// SetRotation sets the rotation in radians.
func (t *Transform) SetRotation(r float64) *Transform {
	t.Rotation = r
	return t
}

// SetScale sets the X and Y scale, keeping Z.
func (t *Transform) SetScale(sx, sy float64) *Transform {
	t.Scale.X = sx
	t.Scale.Y = sy
	return t
}

// LocalMatrix returns the transform's matrix relative to its parent.
func (t *Transform) LocalMatrix() Mat4 {
	m := Scale(t.Scale)
	if t.Rotation != 0 {
		m = RotationZ(t.Rotation).Mul(m)
	}
	m[12] += t.Translation.X
	m[13] += t.Translation.Y
	m[14] += t.Translation.Z
	return m
}

// GlobalMatrix returns the transform's world-space matrix.
func (t *Transform) GlobalMatrix() Mat4 {
	local := t.LocalMatrix()
	if t.Parent == nil {
		return local
	}
	return t.Parent.GlobalMatrix().Mul(local)
}
