package flat2d

import (
	"errors"
	"fmt"
)

// Stats summarizes one Encode call.
type Stats struct {
	Quads     int
	DrawCalls int
	// Instances holds the instance count of each draw call, in order.
	Instances []int
}

// Encode converts the batch to instance data and submits it to dev, issuing
// one draw call per maximal run of consecutive quads sharing a texture.
// An empty batch submits nothing, not even the view arguments.
//
// If the device fails to allocate a buffer, Encode stops and returns an
// error wrapping ErrBufferAlloc; draw calls already issued stay issued.
// Encode does not reset the batch.
func (b *Batch) Encode(dev Device, a Assets, view ViewArgs) (Stats, error) {
	stats := Stats{Quads: len(b.quads)}
	if len(b.quads) == 0 {
		return stats, nil
	}

	dev.SetViewArgs(view)

	b.instances = b.instances[:0]
	count := 0
	last := len(b.quads) - 1

	for i := range b.quads {
		q := &b.quads[i]
		in := q.Encode(a.Sheets)
		b.instances = append(b.instances, in[:]...)
		count++

		// Flush on texture change or at the end of the batch.
		if i < last && b.quads[i+1].Texture.id == q.Texture.id {
			continue
		}

		tex, ok := a.Textures.Get(q.Texture)
		if !ok {
			panic(fmt.Sprintf("flat2d: texture %d unloaded after collection", q.Texture.ID()))
		}
		buf, err := dev.NewInstanceBuffer(b.instances)
		if err != nil {
			return stats, fmt.Errorf("flat2d: texture %d, %d instances: %w", q.Texture.ID(), count, errBufferAlloc(err))
		}
		dev.Draw(DrawCall{
			Texture:   tex,
			TextureID: q.Texture.ID(),
			Buffer:    buf,
			Slice:     Slice{Start: 0, End: VerticesPerQuad, Instances: count},
			Blend:     b.Blend,
		})
		stats.DrawCalls++
		stats.Instances = append(stats.Instances, count)

		count = 0
		b.instances = b.instances[:0]
	}
	return stats, nil
}

// errBufferAlloc makes err match ErrBufferAlloc under errors.Is.
func errBufferAlloc(err error) error {
	if errors.Is(err, ErrBufferAlloc) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBufferAlloc, err)
}
