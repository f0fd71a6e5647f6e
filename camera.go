package flat2d

// Camera holds a projection. Its placement in the world comes from the
// Transform of the entity carrying it.
type Camera struct {
	Proj Mat4
}

// NewOrthographicCamera returns a camera projecting the given view box.
func NewOrthographicCamera(left, right, bottom, top, near, far float64) *Camera {
	return &Camera{Proj: Orthographic(left, right, bottom, top, near, far)}
}

// NewStandard2DCamera returns an orthographic camera showing a w x h world
// area centered on the camera position, with Y up. Depth covers [-2000, 2000]
// around the camera so sprites at any reasonable Z stay visible.
func NewStandard2DCamera(w, h float64) *Camera {
	return NewOrthographicCamera(-w/2, w/2, -h/2, h/2, -2000, 2000)
}

// ViewArgsFor computes the view arguments for a camera placed by t.
// A nil camera yields IdentityViewArgs; a nil transform places the camera at
// the origin.
func ViewArgsFor(cam *Camera, t *Transform) ViewArgs {
	if cam == nil {
		return IdentityViewArgs
	}
	args := ViewArgs{Proj: cam.Proj, View: Identity()}
	if t != nil {
		// A singular camera transform (zero scale) falls back to identity.
		args.View, _ = t.GlobalMatrix().Inverse()
	}
	return args
}

// WorldToClip maps a world position to clip space.
func (v *ViewArgs) WorldToClip(x, y, z float64) (cx, cy, cz float64) {
	p := v.View.MulVec4([4]float64{x, y, z, 1})
	p = v.Proj.MulVec4(p)
	if p[3] != 0 && p[3] != 1 {
		return p[0] / p[3], p[1] / p[3], p[2] / p[3]
	}
	return p[0], p[1], p[2]
}
