package ecs

import (
	"sort"

	"github.com/phanxgames/meadow"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	spriteQuery   = donburi.NewQuery(filter.Contains(Transform, SpriteRenderer))
	parallaxQuery = donburi.NewQuery(filter.Contains(Transform, Parallax))
	uiQuery       = donburi.NewQuery(filter.Contains(UISprite))
)

type drawItem struct {
	layer  int
	entity donburi.Entity
	draw   func()
}

// Draw renders every visible entity in w. World-space sprites and parallax
// layers are drawn through cam in ascending layer order, then UI sprites in
// ascending layer order. Ties keep entity creation order.
func Draw[T any](w donburi.World, r *meadow.Renderer[T], cam *meadow.Camera) {
	var world, ui []drawItem

	spriteQuery.Each(w, func(entry *donburi.Entry) {
		sr := SpriteRenderer.Get(entry)
		if sr.Hidden {
			return
		}
		tr := *Transform.Get(entry)
		sprite := sr.Sprite
		world = append(world, drawItem{sr.Layer, entry.Entity(), func() {
			r.DrawSprite(cam, sprite, tr.Position, scaleOf(tr), tr.Angle)
		}})
	})

	parallaxQuery.Each(w, func(entry *donburi.Entry) {
		p := *Parallax.Get(entry)
		if p.Hidden {
			return
		}
		tr := *Transform.Get(entry)
		world = append(world, drawItem{p.Layer, entry.Entity(), func() {
			r.DrawParallax(cam, p.Sprite, tr.Position, p.ScrollFactor, p.Repeat, scaleOf(tr))
		}})
	})

	uiQuery.Each(w, func(entry *donburi.Entry) {
		u := *UISprite.Get(entry)
		if u.Hidden {
			return
		}
		ui = append(ui, drawItem{u.Layer, entry.Entity(), func() {
			if u.Size == (meadow.Vec2{}) {
				r.DrawUISprite(u.Sprite, u.Position)
				return
			}
			r.DrawUISpriteSize(u.Sprite, u.Position, u.Size)
		}})
	})

	for _, items := range [][]drawItem{world, ui} {
		sortItems(items)
		for _, it := range items {
			it.draw()
		}
	}
}

func sortItems(items []drawItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].entity.Id() < items[j].entity.Id()
	})
}

func scaleOf(tr TransformData) meadow.Vec2 {
	if tr.Scale == (meadow.Vec2{}) {
		return meadow.Vec2{X: 1, Y: 1}
	}
	return tr.Scale
}
