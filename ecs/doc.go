// Package ecs draws [Donburi] worlds with flat2d.
//
// Entities carry a [Transform] and either a [SpriteRender] (a sprite in a
// sprite sheet) or a [TextureHandle] (a whole texture). [Flipped] and [Tint]
// are optional. [DrawFlat2D] collects them every frame, batches quads that
// share a texture and submits one instanced draw per run:
//
//	pass := ecs.NewDrawFlat2D()
//	dev := flat2d.NewEbitenDevice(nil)
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		dev.SetTarget(screen)
//		ecs.SortVisibility(g.world, g.vis)
//		if _, err := pass.Apply(g.world, dev, g.assets, g.vis); err != nil {
//			log.Printf("draw: %v", err)
//		}
//	}
//
// Passing a nil [Visibility] draws every shown entity in texture order.
// Entities marked [Transparent] are drawn last, back to front, when a
// Visibility built by [SortVisibility] is used.
//
// Quads dropped because their asset is not loaded are logged and published as
// [DroppedQuadEvent]; call DroppedQuadEventType.ProcessEvents to deliver them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
