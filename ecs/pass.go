package ecs

import (
	"log/slog"
	"time"

	"github.com/phanxgames/flat2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	shownSpriteQuery = donburi.NewQuery(filter.And(filterSprites, filterShown))
	shownImageQuery  = donburi.NewQuery(filter.And(filterImages, filterShown))
	spriteQuery      = donburi.NewQuery(filterSprites)
	imageQuery       = donburi.NewQuery(filterImages)
)

// eachFunc iterates the entries matched by a query.
type eachFunc func(donburi.World, func(*donburi.Entry))

var noEntity donburi.Entity

// DrawFlat2D draws the sprites and images of a donburi world as textured
// quads, batching consecutive quads that share a texture into one draw call.
type DrawFlat2D struct {
	batch  *flat2d.Batch
	logger *slog.Logger

	// Per-Apply state read by the drop hook.
	world   donburi.World
	current donburi.Entity
}

// Option configures a DrawFlat2D.
type Option func(*DrawFlat2D)

// WithTransparency enables (the default) or disables alpha blending.
func WithTransparency(enabled bool) Option {
	return func(p *DrawFlat2D) {
		if enabled {
			p.batch.Blend = flat2d.BlendNormal
		} else {
			p.batch.Blend = flat2d.BlendNone
		}
	}
}

// WithBlend sets a custom blend mode for every draw call.
func WithBlend(mode flat2d.BlendMode) Option {
	return func(p *DrawFlat2D) { p.batch.Blend = mode }
}

// WithLogger sets the logger for drop warnings and frame statistics.
// By default flat2d.Logger() is used.
func WithLogger(l *slog.Logger) Option {
	return func(p *DrawFlat2D) { p.logger = l }
}

// NewDrawFlat2D returns a pass with transparency enabled.
func NewDrawFlat2D(opts ...Option) *DrawFlat2D {
	p := &DrawFlat2D{batch: flat2d.NewBatch()}
	for _, o := range opts {
		o(p)
	}
	p.batch.Logger = p.logger
	p.batch.OnDrop = p.onDrop
	return p
}

// Blend returns the blend mode placed on every draw call.
func (p *DrawFlat2D) Blend() flat2d.BlendMode {
	return p.batch.Blend
}

func (p *DrawFlat2D) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return flat2d.Logger()
}

func (p *DrawFlat2D) onDrop(d flat2d.Drop) {
	if p.world == nil {
		return
	}
	DroppedQuadEventType.Publish(p.world, DroppedQuadEvent{Entity: p.current, Drop: d})
}

// Apply collects, sorts and submits one frame.
//
// With vis nil, every shown entity (no Hidden or HiddenPropagate) with a
// Transform and a SpriteRender or TextureHandle is drawn, in an order chosen
// to minimize draw calls. With vis set, only vis.Unordered entities are drawn
// in that free order, then vis.Ordered entities exactly in the given order.
// Outside vis.Ordered, entities carrying Mesh never draw their TextureHandle.
//
// The pass is reset before returning, also on error. An error wraps
// flat2d.ErrBufferAlloc.
func (p *DrawFlat2D) Apply(w donburi.World, dev flat2d.Device, assets flat2d.Assets, vis *Visibility) (flat2d.FrameStats, error) {
	var stats flat2d.FrameStats
	p.world = w
	defer func() {
		p.batch.Reset()
		p.world = nil
		p.current = noEntity
	}()

	view := flat2d.ViewArgsFor(activeCamera(w))

	t0 := time.Now()
	if vis == nil {
		stats.Candidates += p.collect(w, shownSpriteQuery.Each, shownImageQuery.Each, nil, assets)
		stats.CollectTime = time.Since(t0)
		t0 = time.Now()
		p.batch.Sort()
		stats.SortTime = time.Since(t0)
	} else {
		stats.Candidates += p.collect(w, spriteQuery.Each, imageQuery.Each, vis.Unordered, assets)
		stats.CollectTime = time.Since(t0)
		t0 = time.Now()
		// Only the unordered part may be reordered.
		p.batch.Sort()
		stats.SortTime = time.Since(t0)
		t0 = time.Now()
		stats.Candidates += p.collectOrdered(w, vis.Ordered, assets)
		stats.CollectTime += time.Since(t0)
	}

	t0 = time.Now()
	s, err := p.batch.Encode(dev, assets, view)
	stats.SubmitTime = time.Since(t0)
	stats.Stats = s
	if err != nil {
		return stats, err
	}

	p.log().Debug("flat2d: frame", slog.Any("stats", stats))
	return stats, nil
}

// collect adds every sprite then every image matched by the queries. When
// only is non-nil, entities outside it are ignored. It returns the number of
// candidates considered.
func (p *DrawFlat2D) collect(w donburi.World, sprites, images eachFunc, only map[donburi.Entity]struct{}, assets flat2d.Assets) int {
	n := 0
	sprites(w, func(e *donburi.Entry) {
		if only != nil {
			if _, ok := only[e.Entity()]; !ok {
				return
			}
		}
		n++
		p.current = e.Entity()
		p.batch.AddSprite(*SpriteRender.Get(e), Transform.Get(e), optFlip(e), optTint(e), assets)
	})
	images(w, func(e *donburi.Entry) {
		if only != nil {
			if _, ok := only[e.Entity()]; !ok {
				return
			}
		}
		n++
		p.current = e.Entity()
		p.batch.AddImage(*TextureHandle.Get(e), Transform.Get(e), optFlip(e), optTint(e), assets)
	})
	return n
}

// collectOrdered adds the given entities in order. An entity with a
// SpriteRender is drawn as a sprite even if it also has a TextureHandle.
func (p *DrawFlat2D) collectOrdered(w donburi.World, entities []donburi.Entity, assets flat2d.Assets) int {
	n := 0
	for _, ent := range entities {
		if !w.Valid(ent) {
			continue
		}
		e := w.Entry(ent)
		p.current = ent
		switch {
		case e.HasComponent(SpriteRender):
			n++
			p.batch.AddSprite(*SpriteRender.Get(e), optTransform(e), optFlip(e), optTint(e), assets)
		case e.HasComponent(TextureHandle):
			n++
			p.batch.AddImage(*TextureHandle.Get(e), optTransform(e), optFlip(e), optTint(e), assets)
		}
	}
	return n
}
