package flat2d

import "log/slog"

// QuadKind tags the variant held by a Quad.
type QuadKind uint8

const (
	QuadSprite QuadKind = iota // one rectangle of a sprite sheet
	QuadImage                  // a whole texture
)

func (k QuadKind) String() string {
	switch k {
	case QuadSprite:
		return "sprite"
	case QuadImage:
		return "image"
	}
	return "invalid"
}

// Quad is the normalized description of one drawable, captured at collection
// time. Which of the variant fields are meaningful depends on Kind.
type Quad struct {
	Kind    QuadKind
	Texture Handle[Texture] // grouping key; the sheet's texture for sprites
	Flip    Flip
	Tint    Color // valid when Tinted; opaque white otherwise
	Tinted  bool
	Matrix  Mat4 // global matrix of the entity

	// QuadSprite only.
	Sprite SpriteRender

	// QuadImage only: texture size in pixels.
	Width, Height int
}

// DropReason explains why a candidate quad was not added to a batch.
type DropReason uint8

const (
	DropSheetNotLoaded   DropReason = iota + 1 // sprite sheet handle did not resolve
	DropTextureNotLoaded                       // texture handle did not resolve
)

func (r DropReason) String() string {
	switch r {
	case DropSheetNotLoaded:
		return "sprite sheet not loaded"
	case DropTextureNotLoaded:
		return "texture not loaded"
	}
	return "unknown"
}

// Drop describes a quad discarded because one of its assets is not loaded.
// Sheet is zero for image quads.
type Drop struct {
	Reason  DropReason
	Kind    QuadKind
	Texture uint32
	Sheet   uint32
}

// Batch accumulates the quads of one frame.
//
// A frame goes through: AddSprite/AddImage (any number), Sort once, optional
// further adds whose order is kept as given, Encode, Reset. The buffers are
// reused across frames. A Batch must not be used from more than one goroutine.
type Batch struct {
	// Blend is placed on every draw call issued by Encode.
	Blend BlendMode
	// OnDrop, when set, is called for every quad dropped because of a
	// missing asset, after the warning is logged.
	OnDrop func(Drop)
	// Logger receives the drop warnings. Nil uses Logger().
	Logger *slog.Logger

	quads     []Quad
	sortBuf   []Quad
	instances []float32
	sortedEnd int
	sorted    bool
}

const defaultBatchCap = 1024

// NewBatch returns an empty batch with alpha blending.
func NewBatch() *Batch {
	return &Batch{
		Blend:   BlendNormal,
		quads:   make([]Quad, 0, defaultBatchCap),
		sortBuf: make([]Quad, 0, defaultBatchCap),
	}
}

func (b *Batch) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return Logger()
}

// AddSprite appends a sprite quad. It returns false when nothing was added:
// silently if t is nil, with a warning if the sheet or its texture is not
// loaded.
func (b *Batch) AddSprite(r SpriteRender, t *Transform, flip Flip, tint *Color, a Assets) bool {
	if t == nil {
		return false
	}
	sheet, ok := a.Sheets.Get(r.Sheet)
	if !ok {
		b.logger().Warn("flat2d: sprite sheet not loaded",
			slog.Uint64("sheet", uint64(r.Sheet.ID())), slog.Int("index", r.Index))
		b.drop(Drop{Reason: DropSheetNotLoaded, Kind: QuadSprite, Sheet: r.Sheet.ID()})
		return false
	}
	if _, ok := a.Textures.Get(sheet.Texture); !ok {
		b.logger().Warn("flat2d: texture not loaded",
			slog.Uint64("texture", uint64(sheet.Texture.ID())), slog.Uint64("sheet", uint64(r.Sheet.ID())))
		b.drop(Drop{Reason: DropTextureNotLoaded, Kind: QuadSprite, Texture: sheet.Texture.ID(), Sheet: r.Sheet.ID()})
		return false
	}

	q := Quad{
		Kind:    QuadSprite,
		Texture: sheet.Texture,
		Flip:    flip,
		Matrix:  t.GlobalMatrix(),
		Sprite:  r,
	}
	if tint != nil {
		q.Tint, q.Tinted = *tint, true
	}
	b.quads = append(b.quads, q)
	return true
}

// AddImage appends a quad spanning the whole texture. It returns false when
// nothing was added: silently if t is nil, with a warning if the texture is
// not loaded.
func (b *Batch) AddImage(tex Handle[Texture], t *Transform, flip Flip, tint *Color, a Assets) bool {
	if t == nil {
		return false
	}
	texture, ok := a.Textures.Get(tex)
	if !ok {
		b.logger().Warn("flat2d: texture not loaded", slog.Uint64("texture", uint64(tex.ID())))
		b.drop(Drop{Reason: DropTextureNotLoaded, Kind: QuadImage, Texture: tex.ID()})
		return false
	}

	q := Quad{
		Kind:    QuadImage,
		Texture: tex,
		Flip:    flip,
		Matrix:  t.GlobalMatrix(),
		Width:   texture.Width,
		Height:  texture.Height,
	}
	if tint != nil {
		q.Tint, q.Tinted = *tint, true
	}
	b.quads = append(b.quads, q)
	return true
}

func (b *Batch) drop(d Drop) {
	if b.OnDrop != nil {
		b.OnDrop(d)
	}
}

// Len returns the number of quads in the batch.
func (b *Batch) Len() int { return len(b.quads) }

// Quads returns the batch contents in draw order. The slice is only valid
// until the next call that modifies the batch and MUST NOT be mutated.
func (b *Batch) Quads() []Quad { return b.quads }

// Sorted reports whether Sort has been called since the last Reset.
func (b *Batch) Sorted() bool { return b.sorted }

// Ordered returns the quads appended after Sort, in insertion order.
func (b *Batch) Ordered() []Quad {
	if !b.sorted {
		return nil
	}
	return b.quads[b.sortedEnd:]
}

// Reset empties the batch, keeping its buffers for the next frame.
func (b *Batch) Reset() {
	b.quads = b.quads[:0]
	b.instances = b.instances[:0]
	b.sortedEnd = 0
	b.sorted = false
}
