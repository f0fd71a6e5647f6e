package flat2d

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Handle is an opaque reference to an asset of type T held by a Storage.
// The zero Handle refers to nothing.
type Handle[T any] struct {
	id uint32
}

// ID returns the handle's stable identity. The batch groups and sorts quads
// by this value; it is never dereferenced outside the storage.
func (h Handle[T]) ID() uint32 { return h.id }

// IsZero reports whether h is the zero handle.
func (h Handle[T]) IsZero() bool { return h.id == 0 }

// LoadState describes where an asset is in its lifecycle.
type LoadState uint8

const (
	StateMissing LoadState = iota // unknown handle or removed asset
	StatePending                  // reserved, data not available yet
	StateLoaded                   // data available through Get
)

// Storage maps handles to loaded assets of type T.
//
// Loaders may run on other goroutines and Insert when done; a render pass
// only ever reads. A handle whose asset is not loaded yet simply fails Get.
type Storage[T any] struct {
	mu      sync.RWMutex
	next    uint32
	assets  map[uint32]*T
	pending map[uint32]struct{}
}

// NewStorage returns an empty storage.
func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		assets:  make(map[uint32]*T),
		pending: make(map[uint32]struct{}),
	}
}

// Reserve allocates a handle whose asset will be inserted later.
func (s *Storage[T]) Reserve() Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = struct{}{}
	return Handle[T]{id: s.next}
}

// Add stores asset under a new handle.
func (s *Storage[T]) Add(asset *T) Handle[T] {
	h := s.Reserve()
	s.Insert(h, asset)
	return h
}

// Insert stores asset under a previously reserved handle, replacing any
// asset already stored there. Inserting under the zero handle is a no-op.
func (s *Storage[T]) Insert(h Handle[T], asset *T) {
	if h.id == 0 || asset == nil {
		return
	}
	s.mu.Lock()
	delete(s.pending, h.id)
	s.assets[h.id] = asset
	s.mu.Unlock()
}

// Get returns the asset for h, or false if it is not loaded.
func (s *Storage[T]) Get(h Handle[T]) (*T, bool) {
	s.mu.RLock()
	a, ok := s.assets[h.id]
	s.mu.RUnlock()
	return a, ok
}

// State returns the load state of h.
func (s *Storage[T]) State(h Handle[T]) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.assets[h.id]; ok {
		return StateLoaded
	}
	if _, ok := s.pending[h.id]; ok {
		return StatePending
	}
	return StateMissing
}

// Remove discards the asset for h. The handle is not reused.
func (s *Storage[T]) Remove(h Handle[T]) {
	s.mu.Lock()
	delete(s.assets, h.id)
	delete(s.pending, h.id)
	s.mu.Unlock()
}

// Len returns the number of loaded assets.
func (s *Storage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Texture is a loaded image usable as the source of a draw call.
type Texture struct {
	Width, Height int
	Image         *ebiten.Image
}

// NewTexture wraps an ebiten image.
func NewTexture(img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{Width: b.Dx(), Height: b.Dy(), Image: img}
}

// NewTextureFromImage uploads a decoded image.
func NewTextureFromImage(img image.Image) *Texture {
	return NewTexture(ebiten.NewImageFromImage(img))
}

// Size returns the texture's pixel dimensions.
func (t *Texture) Size() (w, h int) { return t.Width, t.Height }

// Assets bundles the stores a pass reads from.
type Assets struct {
	Textures *Storage[Texture]
	Sheets   *Storage[SpriteSheet]
}

// NewAssets returns an Assets with empty stores.
func NewAssets() Assets {
	return Assets{
		Textures: NewStorage[Texture](),
		Sheets:   NewStorage[SpriteSheet](),
	}
}
