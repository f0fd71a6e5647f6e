package ecs

import (
	"github.com/phanxgames/flat2d"

	"github.com/yohamta/donburi"
)

// Marker component data. They carry no fields.
type (
	MeshMarker            struct{}
	HiddenMarker          struct{}
	HiddenPropagateMarker struct{}
	ActiveCameraMarker    struct{}
	TransparentMarker     struct{}
)

// Components read by the 2D pass.
//
// Transform.Parent must point to memory that outlives the frame; do not point
// it at another entity's Transform component, whose storage moves when the
// entity changes archetype.
var (
	Transform     = donburi.NewComponentType[flat2d.Transform]()
	SpriteRender  = donburi.NewComponentType[flat2d.SpriteRender]()
	TextureHandle = donburi.NewComponentType[flat2d.Handle[flat2d.Texture]]()
	Flipped       = donburi.NewComponentType[flat2d.Flip]()
	Tint          = donburi.NewComponentType[flat2d.Color]()
	Camera        = donburi.NewComponentType[flat2d.Camera]()

	// Mesh marks entities drawn by a 3D mesh pass; their TextureHandle is a
	// material texture, not an image to draw.
	Mesh = donburi.NewComponentType[MeshMarker]()
	// Hidden excludes a single entity from rendering.
	Hidden = donburi.NewComponentType[HiddenMarker]()
	// HiddenPropagate excludes an entity hidden through its parent.
	HiddenPropagate = donburi.NewComponentType[HiddenPropagateMarker]()
	// ActiveCamera selects the camera entity the pass renders from.
	ActiveCamera = donburi.NewComponentType[ActiveCameraMarker]()
	// Transparent sends an entity to the ordered, back-to-front part of the
	// frame when SortVisibility is used.
	Transparent = donburi.NewComponentType[TransparentMarker]()
)

// optTransform returns the entry's Transform or nil.
func optTransform(e *donburi.Entry) *flat2d.Transform {
	if !e.HasComponent(Transform) {
		return nil
	}
	return Transform.Get(e)
}

// optFlip returns the entry's Flipped value or FlipNone.
func optFlip(e *donburi.Entry) flat2d.Flip {
	if !e.HasComponent(Flipped) {
		return flat2d.FlipNone
	}
	return *Flipped.Get(e)
}

// optTint returns the entry's Tint or nil.
func optTint(e *donburi.Entry) *flat2d.Color {
	if !e.HasComponent(Tint) {
		return nil
	}
	return Tint.Get(e)
}

var activeCameraQuery = donburi.NewQuery(filterActiveCamera)

// activeCamera returns the first camera marked ActiveCamera and its
// transform, or nils when there is none.
func activeCamera(w donburi.World) (*flat2d.Camera, *flat2d.Transform) {
	var (
		cam   *flat2d.Camera
		camTf *flat2d.Transform
	)
	activeCameraQuery.Each(w, func(e *donburi.Entry) {
		if cam != nil {
			return
		}
		cam = Camera.Get(e)
		camTf = optTransform(e)
	})
	return cam, camTf
}
