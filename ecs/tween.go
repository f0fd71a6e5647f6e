package ecs

import (
	"github.com/phanxgames/flat2d"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// TweenGroup animates up to 4 values of one entity simultaneously. Create one
// via TweenTint, TweenPosition or ScrollCamera and call Update(dt) each frame.
// Values are written back to the entity's component on every Update. If the
// entity is removed or loses the component, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	world  donburi.World
	entity donburi.Entity
	apply  func(e *donburi.Entry, vals *[4]float32) bool
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target component.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.world.Valid(g.entity) {
		g.Done = true
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	if !g.apply(g.world.Entry(g.entity), &vals) {
		g.Done = true
		return
	}
	g.Done = allDone
}

// TweenTint animates the entity's Tint to the given color. It returns nil if
// the entity has no Tint.
func TweenTint(w donburi.World, e donburi.Entity, to flat2d.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	if !w.Valid(e) || !w.Entry(e).HasComponent(Tint) {
		return nil
	}
	from := *Tint.Get(w.Entry(e))
	g := &TweenGroup{count: 4, world: w, entity: e}
	g.tweens[0] = gween.New(from.R, to.R, duration, fn)
	g.tweens[1] = gween.New(from.G, to.G, duration, fn)
	g.tweens[2] = gween.New(from.B, to.B, duration, fn)
	g.tweens[3] = gween.New(from.A, to.A, duration, fn)
	g.apply = func(en *donburi.Entry, v *[4]float32) bool {
		if !en.HasComponent(Tint) {
			return false
		}
		*Tint.Get(en) = flat2d.Color{R: v[0], G: v[1], B: v[2], A: v[3]}
		return true
	}
	return g
}

// TweenPosition animates the X and Y translation of the entity's Transform.
// Depth is left alone. It returns nil if the entity has no Transform.
func TweenPosition(w donburi.World, e donburi.Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if !w.Valid(e) || !w.Entry(e).HasComponent(Transform) {
		return nil
	}
	tf := Transform.Get(w.Entry(e))
	g := &TweenGroup{count: 2, world: w, entity: e, apply: applyPosition}
	g.tweens[0] = gween.New(float32(tf.Translation.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(tf.Translation.Y), float32(toY), duration, fn)
	return g
}

// ScrollCamera animates the active camera's position. It returns nil when
// there is no active camera with a Transform.
func ScrollCamera(w donburi.World, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	var cam donburi.Entity
	found := false
	activeCameraQuery.Each(w, func(en *donburi.Entry) {
		if found || !en.HasComponent(Transform) {
			return
		}
		cam = en.Entity()
		found = true
	})
	if !found {
		return nil
	}
	return TweenPosition(w, cam, toX, toY, duration, fn)
}

func applyPosition(en *donburi.Entry, v *[4]float32) bool {
	if !en.HasComponent(Transform) {
		return false
	}
	tf := Transform.Get(en)
	tf.Translation.X = float64(v[0])
	tf.Translation.Y = float64(v[1])
	return true
}
