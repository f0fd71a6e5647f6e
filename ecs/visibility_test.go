package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
)

func TestSortVisibilitySplitsTransparent(t *testing.T) {
	tw := newTestWorld()
	opaque := tw.image(tw.tex1, 0, 0, 0)
	near := tw.image(tw.tex2, 0, 0, 3)
	near.AddComponent(Transparent)
	far := tw.sprite(tw.sheet, 0, 0, 0, -5)
	far.AddComponent(Transparent)
	mid := tw.image(tw.tex1, 0, 0, 0)
	mid.AddComponent(Transparent)

	vis := NewVisibility()
	SortVisibility(tw.w, vis)

	if len(vis.Unordered) != 1 {
		t.Fatalf("Unordered = %d entities, want 1", len(vis.Unordered))
	}
	if _, ok := vis.Unordered[opaque.Entity()]; !ok {
		t.Error("opaque entity should be unordered")
	}
	want := []donburi.Entity{far.Entity(), mid.Entity(), near.Entity()}
	if !equalEntities(vis.Ordered, want) {
		t.Errorf("Ordered = %v, want back to front %v", vis.Ordered, want)
	}
}

func TestSortVisibilityExcludesHidden(t *testing.T) {
	tw := newTestWorld()
	tw.image(tw.tex1, 0, 0, 0).AddComponent(Hidden)
	hp := tw.sprite(tw.sheet, 0, 0, 0, 0)
	hp.AddComponent(HiddenPropagate)
	hp.AddComponent(Transparent)
	// Not drawable.
	tw.w.Create(Transform)
	tw.w.Create(TextureHandle)

	vis := NewVisibility()
	SortVisibility(tw.w, vis)
	if len(vis.Unordered) != 0 || len(vis.Ordered) != 0 {
		t.Errorf("visibility = %d unordered, %d ordered; want none", len(vis.Unordered), len(vis.Ordered))
	}
}

func TestSortVisibilityFromCamera(t *testing.T) {
	tw := newTestWorld()
	tw.camera(0, 0, 10)
	behind := tw.image(tw.tex1, 0, 0, 20)
	behind.AddComponent(Transparent)
	behindOpaque := tw.image(tw.tex1, 0, 0, 11)
	a := tw.image(tw.tex1, 0, 0, 9)
	a.AddComponent(Transparent)
	b := tw.image(tw.tex1, 0, 0, -1)
	b.AddComponent(Transparent)
	onCamera := tw.image(tw.tex2, 0, 0, 10)

	vis := NewVisibility()
	SortVisibility(tw.w, vis)

	if _, ok := vis.Unordered[behindOpaque.Entity()]; ok {
		t.Error("entities behind the camera should be culled")
	}
	if _, ok := vis.Unordered[onCamera.Entity()]; !ok {
		t.Error("entities at the camera depth should stay visible")
	}
	want := []donburi.Entity{b.Entity(), a.Entity()}
	if !equalEntities(vis.Ordered, want) {
		t.Errorf("Ordered = %v, want %v", vis.Ordered, want)
	}
}

func TestSortVisibilityRefills(t *testing.T) {
	tw := newTestWorld()
	e := tw.image(tw.tex1, 0, 0, 0)
	e.AddComponent(Transparent)
	vis := NewVisibility()
	SortVisibility(tw.w, vis)
	SortVisibility(tw.w, vis)
	if len(vis.Ordered) != 1 {
		t.Errorf("Ordered = %d entities after two passes, want 1", len(vis.Ordered))
	}

	tw.w.Remove(e.Entity())
	SortVisibility(tw.w, vis)
	if len(vis.Ordered) != 0 {
		t.Errorf("Ordered = %v after removal, want empty", vis.Ordered)
	}

	var zero Visibility
	SortVisibility(tw.w, &zero)
	if zero.Unordered == nil {
		t.Error("SortVisibility should allocate the unordered set")
	}
}

func TestSortVisibilityFeedsPass(t *testing.T) {
	tw := newTestWorld()
	tw.image(tw.tex1, 0, 0, 0)
	tw.image(tw.tex2, 0, 0, 0)
	tw.image(tw.tex1, 0, 0, 0)
	glass := tw.image(tw.tex1, 0, 0, 1)
	glass.AddComponent(Transparent)
	smoke := tw.image(tw.tex2, 0, 0, 2)
	smoke.AddComponent(Transparent)

	vis := NewVisibility()
	SortVisibility(tw.w, vis)
	dev := &testDevice{}
	if _, err := quietPass().Apply(tw.w, dev, tw.assets, vis); err != nil {
		t.Fatal(err)
	}
	// Opaque batched by texture, then transparent back to front.
	want := [][2]int{{1, 2}, {2, 1}, {1, 1}, {2, 1}}
	if got := dev.counts(); !equalCounts(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func equalEntities(a, b []donburi.Entity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
