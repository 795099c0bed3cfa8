package picking

import (
	"cmp"
	"slices"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

// HitShape defines a custom hit testing region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Pickable makes an entity hit-testable by the built-in picking backend.
type Pickable struct {
	Shape HitShape
	// X, Y, ScaleX, ScaleY, and Rotation place Shape in world space.
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	// Depth orders overlapping pickables; smaller is nearer.
	Depth float64
	// Camera restricts picking to one camera entity. donburi.Null allows
	// every camera.
	Camera donburi.Entity
}

// NewPickable returns an unscaled pickable with shape at (x, y).
func NewPickable(shape HitShape, x, y, depth float64) Pickable {
	return Pickable{Shape: shape, X: x, Y: y, ScaleX: 1, ScaleY: 1, Depth: depth}
}

// WorldToLocal converts a world position to the shape's local coordinates.
func (p *Pickable) WorldToLocal(world Vec2) Vec2 {
	sx, sy := p.ScaleX, p.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	inv := invertAffine(localTransform(p.X, p.Y, sx, sy, p.Rotation))
	x, y := transformPoint(inv, world.X, world.Y)
	return Vec2{x, y}
}

// PickableComponent stores a Pickable on an entity.
var PickableComponent = donburi.NewComponentType[Pickable]()

var (
	pickableQuery    = query.NewQuery(filter.Contains(PickableComponent))
	cameraQuery      = query.NewQuery(filter.Contains(CameraComponent))
	interactionQuery = query.NewQuery(filter.Contains(PointerIDComponent, LocationComponent, InteractionComponent))
)

// SpawnPickable creates a pickable entity.
func SpawnPickable(world donburi.World, p Pickable) *donburi.Entry {
	entry := world.Entry(world.Create(PickableComponent))
	PickableComponent.SetValue(entry, p)
	return entry
}

type pickCamera struct {
	entity donburi.Entity
	cam    *Camera
	vp     Rect
	order  int
}

// UpdatePointerHits is the built-in picking backend. For every positioned
// pointer it tests each active camera whose viewport contains the pointer,
// converts the pointer to that camera's world space, and collects the
// pickables under it. The result is written to PointerInteraction sorted
// nearest first; ties keep the order of the higher camera. Each entity is
// reported once, through the first camera that hits it.
func UpdatePointerHits(e *ecs.ECS) {
	world := e.World

	var cams []pickCamera
	cameraQuery.Each(world, func(entry *donburi.Entry) {
		cam := CameraComponent.Get(entry)
		if !cam.IsActive {
			return
		}
		vp, ok := cam.LogicalViewportRect(world)
		if !ok {
			return
		}
		cams = append(cams, pickCamera{entity: entry.Entity(), cam: cam, vp: vp, order: cam.Order})
	})
	slices.SortStableFunc(cams, func(a, b pickCamera) int {
		return cmp.Compare(b.order, a.order)
	})

	interactionQuery.Each(world, func(entry *donburi.Entry) {
		inter := InteractionComponent.Get(entry)
		hits := inter.sorted[:0]

		loc, ok := LocationComponent.Get(entry).Get()
		if ok {
			hits = collectHits(world, loc, cams, hits)
		}
		inter.sorted = hits
	})
}

// collectHits appends the pickables under loc to hits and sorts them.
func collectHits(world donburi.World, loc Location, cams []pickCamera, hits []Hit) []Hit {
	for _, pc := range cams {
		if !loc.IsInViewport(world, pc.cam) {
			continue
		}
		wp := pc.cam.ViewportToWorld(pc.vp, loc.Position)
		pickableQuery.Each(world, func(pe *donburi.Entry) {
			p := PickableComponent.Get(pe)
			if p.Shape == nil {
				return
			}
			if p.Camera != donburi.Null && p.Camera != pc.entity {
				return
			}
			if containsHit(hits, pe.Entity()) {
				return
			}
			lp := p.WorldToLocal(wp)
			if !p.Shape.Contains(lp.X, lp.Y) {
				return
			}
			pos := wp
			hits = append(hits, Hit{
				Entity: pe.Entity(),
				Data:   HitData{Camera: pc.entity, Depth: p.Depth, Position: &pos},
			})
		})
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Data.Depth, b.Data.Depth)
	})
	return hits
}

func containsHit(hits []Hit, e donburi.Entity) bool {
	for _, h := range hits {
		if h.Entity == e {
			return true
		}
	}
	return false
}
