package ecs

import (
	"slices"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Visibility is the result of a visibility pass. Unordered entities may be
// drawn in any order; Ordered entities must be drawn exactly in slice order,
// after the unordered ones.
type Visibility struct {
	Unordered map[donburi.Entity]struct{}
	Ordered   []donburi.Entity

	scratch []visibleEntity
}

type visibleEntity struct {
	entity donburi.Entity
	dist   float64
}

// NewVisibility returns an empty Visibility.
func NewVisibility() *Visibility {
	return &Visibility{Unordered: make(map[donburi.Entity]struct{})}
}

// Reset empties v, keeping its storage.
func (v *Visibility) Reset() {
	clear(v.Unordered)
	v.Ordered = v.Ordered[:0]
	v.scratch = v.scratch[:0]
}

var drawableQuery = donburi.NewQuery(filter.And(
	filter.Contains(Transform),
	filter.Or(filter.Contains(SpriteRender), filter.Contains(TextureHandle)),
	filterShown,
))

// SortVisibility refills vis from w.
//
// Shown drawables (Transform plus SpriteRender or TextureHandle, no Hidden or
// HiddenPropagate) are split by the Transparent marker. Opaque ones go to
// Unordered. Transparent ones go to Ordered, back to front: sorted by distance
// from the active camera along Z, farthest first, with ties kept in query
// order. Without an active camera the distance is measured from z = 0.
// Entities behind the camera (larger Z than the camera) are not visible.
func SortVisibility(w donburi.World, vis *Visibility) {
	if vis.Unordered == nil {
		vis.Unordered = make(map[donburi.Entity]struct{})
	}
	vis.Reset()

	cam, camTf := activeCamera(w)
	camZ := 0.0
	if camTf != nil {
		camZ = camTf.GlobalMatrix()[14]
	}

	drawableQuery.Each(w, func(e *donburi.Entry) {
		z := Transform.Get(e).GlobalMatrix()[14]
		dist := camZ - z
		if cam != nil && dist < 0 {
			return
		}
		if e.HasComponent(Transparent) {
			vis.scratch = append(vis.scratch, visibleEntity{entity: e.Entity(), dist: dist})
			return
		}
		vis.Unordered[e.Entity()] = struct{}{}
	})

	slices.SortStableFunc(vis.scratch, func(a, b visibleEntity) int {
		switch {
		case a.dist > b.dist:
			return -1
		case a.dist < b.dist:
			return 1
		}
		return 0
	})
	for _, ve := range vis.scratch {
		vis.Ordered = append(vis.Ordered, ve.entity)
	}
}
