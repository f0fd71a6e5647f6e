package flat2d

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultMaxInstances = 1 << 16

// quadCorners are the local corners of the instanced quad, in units of the
// basis vectors around the anchor: TL, TR, BL, BR.
var quadCorners = [4][2]float64{
	{-0.5, 0.5},
	{0.5, 0.5},
	{-0.5, -0.5},
	{0.5, -0.5},
}

// quadIndices draws the corners as two triangles: TL-TR-BL, TR-BR-BL.
var quadIndices = [VerticesPerQuad]uint32{0, 1, 2, 1, 3, 2}

// EbitenDevice is a Device drawing into an ebiten image. Ebitengine has no
// instancing, so each draw call expands its instances into vertices on the
// CPU and submits them with a single DrawTriangles32. Depth is not tested:
// overlap follows submission order.
//
// Instance buffers live for one frame: the next SetViewArgs recycles them,
// after which they hold no instances.
type EbitenDevice struct {
	target       *ebiten.Image
	clip         Mat4 // Proj * View
	maxInstances int

	pool bufferPool
	live []*ebitenBuffer

	verts []ebiten.Vertex
	inds  []uint32
}

// EbitenOption configures an EbitenDevice.
type EbitenOption func(*EbitenDevice)

// WithMaxInstances bounds the number of instances a single buffer may hold.
// Larger uploads fail with ErrBufferAlloc.
func WithMaxInstances(n int) EbitenOption {
	return func(d *EbitenDevice) {
		if n > 0 {
			d.maxInstances = n
		}
	}
}

// NewEbitenDevice returns a device drawing into target.
func NewEbitenDevice(target *ebiten.Image, opts ...EbitenOption) *EbitenDevice {
	d := &EbitenDevice{
		target:       target,
		clip:         Identity(),
		maxInstances: defaultMaxInstances,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SetTarget changes the image draw calls render into, typically the screen
// passed to ebiten.Game.Draw each frame.
func (d *EbitenDevice) SetTarget(target *ebiten.Image) {
	d.target = target
}

// SetViewArgs implements Device. It starts a new frame.
func (d *EbitenDevice) SetViewArgs(v ViewArgs) {
	d.clip = v.Proj.Mul(v.View)
	for _, b := range d.live {
		d.pool.release(b.data)
		b.data = nil
	}
	d.live = d.live[:0]
}

type ebitenBuffer struct {
	data []float32
}

func (b *ebitenBuffer) Instances() int { return len(b.data) / InstanceStride }

// NewInstanceBuffer implements Device. The data is copied.
func (d *EbitenDevice) NewInstanceBuffer(data []float32) (InstanceBuffer, error) {
	if len(data)%InstanceStride != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a whole number of instances", ErrBufferAlloc, len(data))
	}
	if n := len(data) / InstanceStride; n > d.maxInstances {
		return nil, fmt.Errorf("%w: %d instances exceeds limit of %d", ErrBufferAlloc, n, d.maxInstances)
	}
	buf := &ebitenBuffer{data: d.pool.acquire(len(data))}
	copy(buf.data, data)
	d.live = append(d.live, buf)
	return buf, nil
}

// Draw implements Device. It panics if the device has no target or the
// call's texture has no image.
func (d *EbitenDevice) Draw(call DrawCall) {
	buf, ok := call.Buffer.(*ebitenBuffer)
	if !ok {
		panic(fmt.Sprintf("flat2d: buffer %T was not created by EbitenDevice", call.Buffer))
	}
	if d.target == nil {
		panic("flat2d: EbitenDevice has no target; call SetTarget before drawing")
	}
	if call.Texture == nil || call.Texture.Image == nil {
		panic(fmt.Sprintf("flat2d: draw call for texture %d has no image", call.TextureID))
	}

	n := min(call.Slice.Instances, buf.Instances())
	d.verts = d.verts[:0]
	d.inds = d.inds[:0]
	for i := 0; i < n; i++ {
		var in Instance
		copy(in[:], buf.data[i*InstanceStride:(i+1)*InstanceStride])
		d.appendInstance(&in, call.Texture)
	}
	if len(d.verts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = call.Blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	d.target.DrawTriangles32(d.verts, d.inds, call.Texture.Image, &triOp)
}

// appendInstance appends 4 vertices and 6 indices for one instance.
func (d *EbitenDevice) appendInstance(in *Instance, tex *Texture) {
	tb := tex.Image.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())
	tx, ty := float32(tb.Min.X), float32(tb.Min.Y)

	db := d.target.Bounds()
	dw, dh := float64(db.Dx()), float64(db.Dy())
	dx, dy := float64(db.Min.X), float64(db.Min.Y)

	dirXx, dirXy := in.DirX()
	dirYx, dirYy := in.DirY()
	px, py, pz := in.Pos()
	uv := in.UV()
	c := in.Color()

	// Premultiplied RGBA.
	cr, cg, cb, ca := c.R*c.A, c.G*c.A, c.B*c.A, c.A

	base := uint32(len(d.verts))
	for _, corner := range quadCorners {
		u, v := corner[0], corner[1]
		wx := float64(px) + u*float64(dirXx) + v*float64(dirYx)
		wy := float64(py) + u*float64(dirXy) + v*float64(dirYy)
		p := d.clip.MulVec4([4]float64{wx, wy, float64(pz), 1})
		if p[3] != 0 && p[3] != 1 {
			p[0] /= p[3]
			p[1] /= p[3]
		}

		su, sv := uv.Left, uv.Bottom
		if u > 0 {
			su = uv.Right
		}
		if v > 0 {
			sv = uv.Top
		}

		d.verts = append(d.verts, ebiten.Vertex{
			DstX:   float32(dx + (p[0]+1)/2*dw),
			DstY:   float32(dy + (1-p[1])/2*dh),
			SrcX:   tx + su*tw,
			SrcY:   ty + (1-sv)*th,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for _, idx := range quadIndices {
		d.inds = append(d.inds, base+idx)
	}
}
