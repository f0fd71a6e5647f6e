package flat2d

// VerticesPerQuad is the vertex count of the instanced quad topology: two
// triangles, no index buffer.
const VerticesPerQuad = 6

// ViewArgs holds the camera matrices shared by every draw call of a frame.
type ViewArgs struct {
	Proj Mat4
	View Mat4
}

// IdentityViewArgs is used when no camera is active.
var IdentityViewArgs = ViewArgs{Proj: Identity(), View: Identity()}

// InstanceBuffer is an immutable block of instance data owned by a Device.
type InstanceBuffer interface {
	// Instances returns the number of instances the buffer holds.
	Instances() int
}

// Slice selects the vertex range and instance count of a draw call.
type Slice struct {
	Start, End int // vertex range of the quad topology
	Instances  int
}

// DrawCall is one instanced draw: every instance in Buffer samples Texture.
type DrawCall struct {
	Texture   *Texture
	TextureID uint32
	Buffer    InstanceBuffer
	Slice     Slice
	Blend     BlendMode
}

// Device is the graphics backend a Batch submits to. Calls are made from a
// single goroutine and in frame order.
type Device interface {
	// SetViewArgs sets the camera matrices for the following draw calls.
	SetViewArgs(ViewArgs)
	// NewInstanceBuffer uploads data, a whole number of InstanceStride
	// records. The device must not retain data after returning.
	NewInstanceBuffer(data []float32) (InstanceBuffer, error)
	// Draw submits one instanced draw call.
	Draw(DrawCall)
}
