package flat2d

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestEncodeEmptyBatch(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	b.Sort()
	dev := newRecordingDevice()

	stats, err := b.Encode(dev, f.assets, IdentityViewArgs)
	if err != nil {
		t.Fatal(err)
	}
	if stats.DrawCalls != 0 || stats.Quads != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
	if len(dev.calls) != 0 || len(dev.buffers) != 0 || len(dev.views) != 0 {
		t.Errorf("device saw %d calls, %d buffers, %d views; want none",
			len(dev.calls), len(dev.buffers), len(dev.views))
	}
}

func TestEncodeSameTextureOneCall(t *testing.T) {
	f := newFixture()
	for _, n := range []int{1, 2, 17, 300} {
		b := NewBatch()
		for i := 0; i < n; i++ {
			b.AddSprite(SpriteRender{Sheet: f.sheet1, Index: i % 2}, NewTransform().SetPosition(float64(i), 0), FlipNone, nil, f.assets)
		}
		b.Sort()
		dev := newRecordingDevice()
		stats, err := b.Encode(dev, f.assets, IdentityViewArgs)
		if err != nil {
			t.Fatal(err)
		}
		if len(dev.calls) != 1 {
			t.Fatalf("n=%d: calls = %d, want 1", n, len(dev.calls))
		}
		c := dev.calls[0]
		if c.Slice != (Slice{Start: 0, End: VerticesPerQuad, Instances: n}) {
			t.Errorf("n=%d: slice = %+v", n, c.Slice)
		}
		if c.Buffer.Instances() != n {
			t.Errorf("n=%d: buffer instances = %d", n, c.Buffer.Instances())
		}
		if len(dev.buffers[0]) != n*InstanceStride {
			t.Errorf("n=%d: buffer floats = %d, want %d", n, len(dev.buffers[0]), n*InstanceStride)
		}
		if stats.Quads != n || stats.DrawCalls != 1 {
			t.Errorf("n=%d: stats = %+v", n, stats)
		}
	}
}

func TestEncodeDistinctTexturesOneCallEach(t *testing.T) {
	a := NewAssets()
	b := NewBatch()
	const n = 9
	for i := 0; i < n; i++ {
		tex := a.Textures.Add(&Texture{Width: i + 1, Height: i + 1})
		b.AddImage(tex, NewTransform(), FlipNone, nil, a)
	}
	b.Sort()
	dev := newRecordingDevice()
	stats, err := b.Encode(dev, a, IdentityViewArgs)
	if err != nil {
		t.Fatal(err)
	}
	if len(dev.calls) != n || stats.DrawCalls != n {
		t.Fatalf("calls = %d, want %d", len(dev.calls), n)
	}
	for i, c := range dev.calls {
		if c.Slice.Instances != 1 {
			t.Errorf("call %d instances = %d, want 1", i, c.Slice.Instances)
		}
		if c.TextureID != uint32(i+1) {
			t.Errorf("call %d texture = %d, want %d", i, c.TextureID, i+1)
		}
		if c.Texture == nil || c.Texture.Width != i+1 {
			t.Errorf("call %d resolved the wrong texture", i)
		}
	}
}

func TestEncodeTwoSpritesSharedTexture(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	b.AddSprite(SpriteRender{Sheet: f.sheet1, Index: 0}, NewTransform(), FlipNone, nil, f.assets)
	b.AddSprite(SpriteRender{Sheet: f.sheet1, Index: 1}, NewTransform(), FlipNone, nil, f.assets)
	b.Sort()
	dev := newRecordingDevice()
	if _, err := b.Encode(dev, f.assets, IdentityViewArgs); err != nil {
		t.Fatal(err)
	}

	if len(dev.calls) != 1 || dev.calls[0].Slice.Instances != 2 {
		t.Fatalf("calls = %+v, want one call with 2 instances", dev.calls)
	}
	uv0 := dev.instance(t, 0, 0).UV()
	uv1 := dev.instance(t, 0, 1).UV()
	if uv0 == uv1 {
		t.Errorf("instances share UV %+v, want different rectangles", uv0)
	}
	if uv0.Right != 0.5 || uv1.Left != 0.5 {
		t.Errorf("UVs = %+v, %+v", uv0, uv1)
	}
}

func TestEncodeMixedKindsAfterSort(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	tf := NewTransform()
	b.AddImage(f.tex1, tf, FlipNone, nil, f.assets)
	b.AddSprite(SpriteRender{Sheet: f.sheet2}, tf, FlipNone, nil, f.assets)
	b.AddImage(f.tex1, tf, FlipNone, nil, f.assets)
	b.Sort()

	dev := newRecordingDevice()
	stats, err := b.Encode(dev, f.assets, IdentityViewArgs)
	if err != nil {
		t.Fatal(err)
	}
	if len(dev.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(dev.calls))
	}
	if dev.calls[0].TextureID != f.tex1.ID() || dev.calls[0].Slice.Instances != 2 {
		t.Errorf("call 0 = texture %d x%d, want texture %d x2",
			dev.calls[0].TextureID, dev.calls[0].Slice.Instances, f.tex1.ID())
	}
	if dev.calls[1].TextureID != f.tex2.ID() || dev.calls[1].Slice.Instances != 1 {
		t.Errorf("call 1 = texture %d x%d, want texture %d x1",
			dev.calls[1].TextureID, dev.calls[1].Slice.Instances, f.tex2.ID())
	}
	if fmt.Sprint(stats.Instances) != "[2 1]" {
		t.Errorf("stats.Instances = %v, want [2 1]", stats.Instances)
	}
}

func TestEncodeUnsortedFlushesOnEveryChange(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	tf := NewTransform()
	b.AddImage(f.tex1, tf, FlipNone, nil, f.assets)
	b.AddImage(f.tex2, tf, FlipNone, nil, f.assets)
	b.AddImage(f.tex1, tf, FlipNone, nil, f.assets)

	if b.Runs() != 3 {
		t.Errorf("Runs = %d, want 3", b.Runs())
	}
	dev := newRecordingDevice()
	if _, err := b.Encode(dev, f.assets, IdentityViewArgs); err != nil {
		t.Fatal(err)
	}
	if len(dev.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(dev.calls))
	}
}

func TestEncodeRoundTripDefaults(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	b.AddSprite(SpriteRender{Sheet: f.sheet1, Index: 1}, NewTransform(), FlipNone, nil, f.assets)
	b.Sort()
	dev := newRecordingDevice()
	if _, err := b.Encode(dev, f.assets, IdentityViewArgs); err != nil {
		t.Fatal(err)
	}

	in := dev.instance(t, 0, 0)
	sheet, _ := f.assets.Sheets.Get(f.sheet1)
	if in.UV() != sheet.Sprites[1].TexCoords {
		t.Errorf("UV = %+v, want %+v", in.UV(), sheet.Sprites[1].TexCoords)
	}
	for i := InstColorR; i <= InstColorA; i++ {
		if in[i] != 1 {
			t.Errorf("color slot %d = %f, want 1", i, in[i])
		}
	}
}

func TestEncodePassesViewAndBlend(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	b.Blend = BlendAdd
	b.AddImage(f.tex1, NewTransform(), FlipNone, nil, f.assets)
	b.Sort()
	view := ViewArgs{Proj: Scale(Vec3{2, 2, 1}), View: Translation(Vec3{-1, 0, 0})}
	dev := newRecordingDevice()
	if _, err := b.Encode(dev, f.assets, view); err != nil {
		t.Fatal(err)
	}
	if len(dev.views) != 1 || dev.views[0] != view {
		t.Errorf("views = %+v, want [%+v]", dev.views, view)
	}
	if dev.calls[0].Blend != BlendAdd {
		t.Errorf("blend = %v, want add", dev.calls[0].Blend)
	}
}

func TestEncodeBufferAllocFailure(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	tf := NewTransform()
	b.AddImage(f.tex1, tf, FlipNone, nil, f.assets)
	b.AddImage(f.tex2, tf, FlipNone, nil, f.assets)
	b.AddImage(f.tex2, tf, FlipNone, nil, f.assets)
	b.Sort()

	dev := newRecordingDevice()
	dev.failAt = 1
	stats, err := b.Encode(dev, f.assets, IdentityViewArgs)
	if !errors.Is(err, ErrBufferAlloc) {
		t.Fatalf("err = %v, want ErrBufferAlloc", err)
	}
	if !errors.Is(err, errOutOfMemory) {
		t.Errorf("err = %v, should keep the device error", err)
	}
	if !strings.Contains(err.Error(), "texture 2, 2 instances") {
		t.Errorf("err = %q, want texture and count", err)
	}
	if len(dev.calls) != 1 || stats.DrawCalls != 1 {
		t.Errorf("calls = %d, want only the call before the failure", len(dev.calls))
	}
}

func TestEncodeDeviceErrorAlreadyWrapped(t *testing.T) {
	f := newFixture()
	b := NewBatch()
	b.AddImage(f.tex1, NewTransform(), FlipNone, nil, f.assets)
	b.Sort()

	dev := NewEbitenDevice(nil, WithMaxInstances(1))
	b.AddImage(f.tex1, NewTransform(), FlipNone, nil, f.assets)
	_, err := b.Encode(dev, f.assets, IdentityViewArgs)
	if !errors.Is(err, ErrBufferAlloc) {
		t.Fatalf("err = %v, want ErrBufferAlloc", err)
	}
	if n := strings.Count(err.Error(), ErrBufferAlloc.Error()); n != 1 {
		t.Errorf("ErrBufferAlloc appears %d times in %q", n, err)
	}
}

func TestErrBufferAllocWrapping(t *testing.T) {
	wrapped := errBufferAlloc(errOutOfMemory)
	if !errors.Is(wrapped, ErrBufferAlloc) || !errors.Is(wrapped, errOutOfMemory) {
		t.Errorf("wrapped = %v", wrapped)
	}
	already := fmt.Errorf("device: %w", ErrBufferAlloc)
	if errBufferAlloc(already) != already {
		t.Error("errors already matching ErrBufferAlloc should pass through")
	}
}
