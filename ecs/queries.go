package ecs

import "github.com/yohamta/donburi/filter"

var (
	filterActiveCamera = filter.Contains(ActiveCamera, Camera)

	filterShown = filter.Not(filter.Or(
		filter.Contains(Hidden),
		filter.Contains(HiddenPropagate),
	))

	// Sprites and images candidates, before visibility.
	filterSprites = filter.Contains(SpriteRender, Transform)
	filterImages  = filter.And(
		filter.Contains(TextureHandle, Transform),
		filter.Not(filter.Contains(Mesh)),
	)
)
