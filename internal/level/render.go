package level

import (
	"cmp"

	"levelengine/internal/entity"
	"levelengine/internal/lifecycle"
	"levelengine/internal/mathutil"
)

// Render draws the static mesh, then every category far to near as seen
// from camera. Categories are re-sorted in place; entities at the same
// distance keep their insertion order.
func (l *Level) Render(r Renderer, camera mathutil.Vec2) {
	r.DrawMesh(l.geo.Mesh)

	for _, kind := range entity.DoorKinds {
		drawSorted(r, l.doors[kind], camera)
	}
	drawSorted(r, l.decorations, camera)
	drawSorted(r, l.barrels, camera)
	drawSorted(r, l.pickups, camera)
	for _, kind := range entity.EnemyKinds {
		drawSorted(r, l.enemies[kind], camera)
	}
	drawSorted(r, l.rockets, camera)
	drawSorted(r, l.fires, camera)
	drawSorted(r, l.explosions, camera)
	drawSorted(r, l.blood, camera)
}

// sortable is an entity that can live in a container
type sortable interface {
	comparable
	entity.Entity
}

func drawSorted[T sortable](r Renderer, c *lifecycle.Container[T], camera mathutil.Vec2) {
	c.SortStableFunc(func(a, b T) int {
		return cmp.Compare(b.Pos().DistSquared(camera), a.Pos().DistSquared(camera))
	})
	for _, e := range c.Items() {
		r.DrawEntity(c.Name(), e)
	}
}
