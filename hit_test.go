package picking

import (
	"math"
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	// Square polygon: (0,0), (100,0), (100,100), (0,100)
	p := HitPolygon{Points: []Vec2{
		{0, 0}, {100, 0}, {100, 100}, {0, 100},
	}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"on edge", 0, 50, true},
		{"corner", 0, 0, true},
		{"outside", -1, 50, false},
		{"outside far", 200, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitPolygon.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Triangle
	tri := HitPolygon{Points: []Vec2{
		{0, 0}, {100, 0}, {50, 100},
	}}
	if !tri.Contains(50, 50) {
		t.Error("triangle should contain its center")
	}
	if tri.Contains(-10, 50) {
		t.Error("triangle should not contain point far left")
	}

	// Degenerate (< 3 points)
	degen := HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}
	if degen.Contains(0, 0) {
		t.Error("degenerate polygon should not contain anything")
	}
}

func TestHitPolygonContains_ReversedWinding(t *testing.T) {
	// Same square but clockwise winding.
	p := HitPolygon{Points: []Vec2{
		{0, 100}, {100, 100}, {100, 0}, {0, 0},
	}}
	if !p.Contains(50, 50) {
		t.Error("reversed winding polygon should still contain center point")
	}
	if p.Contains(-1, 50) {
		t.Error("reversed winding polygon should not contain outside point")
	}
}

// --- Pickable ---

func TestPickableWorldToLocal(t *testing.T) {
	p := Pickable{X: 100, Y: 50, ScaleX: 2, ScaleY: 2, Rotation: math.Pi / 2}
	// Local (10, 0) scaled to (20, 0), rotated to (0, 20), moved to (100, 70).
	got := p.WorldToLocal(Vec2{100, 70})
	assertNear(t, "x", got.X, 10)
	assertNear(t, "y", got.Y, 0)

	// Zero scale is treated as unscaled rather than singular.
	z := Pickable{X: 10, Y: 10}
	got = z.WorldToLocal(Vec2{15, 12})
	assertNear(t, "x", got.X, 5)
	assertNear(t, "y", got.Y, 2)
}

// --- UpdatePointerHits ---

// pickWorld sets up a 200x100 primary window with a camera centered so that
// world and window coordinates coincide.
func pickWorld(t *testing.T) (*ecs.ECS, donburi.Entity, donburi.Entity) {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	win := SpawnWindow(e.World, Window{PhysicalWidth: 200, PhysicalHeight: 100, ScaleFactor: 1}, true).Entity()
	cam := NewCamera(PrimaryWindowTarget())
	cam.X, cam.Y = 100, 50
	camEntity := SpawnCamera(e.World, cam).Entity()
	return e, win, camEntity
}

func locatePointer(t *testing.T, world donburi.World, id PointerID, target RenderTarget, x, y float64) *donburi.Entry {
	t.Helper()
	entry, err := SpawnPointer(world, id)
	if err != nil {
		t.Fatalf("SpawnPointer: %v", err)
	}
	ApplyPointerInput(world, NewPointerInput(id, Location{Target: target, Position: Vec2{x, y}}, Moved(Vec2{})))
	return entry
}

func TestUpdatePointerHitsSortsByDepth(t *testing.T) {
	e, win, camEntity := pickWorld(t)
	far := SpawnPickable(e.World, NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 5)).Entity()
	near := SpawnPickable(e.World, NewPickable(HitCircle{CenterX: 20, CenterY: 20, Radius: 20}, 0, 0, 1)).Entity()
	SpawnPickable(e.World, NewPickable(HitRect{Width: 10, Height: 10}, 150, 50, 0))

	ptr := locatePointer(t, e.World, MousePointer, WindowTarget(win), 20, 20)
	UpdatePointerHits(e)

	inter := InteractionComponent.Get(ptr)
	if inter.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (hits %v)", inter.Len(), inter.Hits())
	}
	hits := inter.Hits()
	if hits[0].Entity != near || hits[1].Entity != far {
		t.Errorf("order = [%v %v], want [%v %v]", hits[0].Entity, hits[1].Entity, near, far)
	}
	if hits[0].Data.Camera != camEntity {
		t.Errorf("Camera = %v, want %v", hits[0].Data.Camera, camEntity)
	}
	if hits[0].Data.Position == nil || *hits[0].Data.Position != (Vec2{20, 20}) {
		t.Errorf("Position = %v, want (20,20)", hits[0].Data.Position)
	}
	if h, ok := inter.Nearest(); !ok || h.Entity != near {
		t.Errorf("Nearest = %v, %v; want %v", h.Entity, ok, near)
	}
}

func TestUpdatePointerHitsStableOnTies(t *testing.T) {
	e, win, _ := pickWorld(t)
	a := SpawnPickable(e.World, NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 1)).Entity()
	b := SpawnPickable(e.World, NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 1)).Entity()

	ptr := locatePointer(t, e.World, MousePointer, WindowTarget(win), 10, 10)
	UpdatePointerHits(e)

	hits := InteractionComponent.Get(ptr).Hits()
	if len(hits) != 2 || hits[0].Entity != a || hits[1].Entity != b {
		t.Errorf("hits = %v, want [%v %v]", hits, a, b)
	}
}

func TestUpdatePointerHitsNoLocation(t *testing.T) {
	e, _, _ := pickWorld(t)
	SpawnPickable(e.World, NewPickable(HitRect{Width: 500, Height: 500}, 0, 0, 0))
	ptr, err := SpawnPointer(e.World, MousePointer)
	if err != nil {
		t.Fatal(err)
	}
	UpdatePointerHits(e)
	if n := InteractionComponent.Get(ptr).Len(); n != 0 {
		t.Errorf("Len = %d, want 0 for a pointer with no location", n)
	}
}

func TestUpdatePointerHitsClearsStaleHits(t *testing.T) {
	e, win, _ := pickWorld(t)
	SpawnPickable(e.World, NewPickable(HitRect{Width: 20, Height: 20}, 0, 0, 0))
	ptr := locatePointer(t, e.World, MousePointer, WindowTarget(win), 10, 10)
	UpdatePointerHits(e)
	if InteractionComponent.Get(ptr).Len() != 1 {
		t.Fatal("expected one hit before moving")
	}

	ApplyPointerInput(e.World, NewPointerInput(MousePointer, Location{Target: WindowTarget(win), Position: Vec2{150, 80}}, Moved(Vec2{140, 70})))
	UpdatePointerHits(e)
	if n := InteractionComponent.Get(ptr).Len(); n != 0 {
		t.Errorf("Len = %d after moving away, want 0", n)
	}
}

func TestUpdatePointerHitsCameraTransform(t *testing.T) {
	e, win, camEntity := pickWorld(t)
	cam := CameraComponent.Get(e.World.Entry(camEntity))
	cam.Zoom = 2
	// With zoom 2 centered on (100, 50), window (100, 50) is world (100, 50)
	// and window (120, 50) is world (110, 50).
	target := SpawnPickable(e.World, NewPickable(HitRect{Width: 4, Height: 4}, 108, 48, 0)).Entity()

	ptr := locatePointer(t, e.World, MousePointer, WindowTarget(win), 120, 50)
	UpdatePointerHits(e)

	h, ok := InteractionComponent.Get(ptr).Nearest()
	if !ok || h.Entity != target {
		t.Fatalf("Nearest = %v, %v; want %v", h.Entity, ok, target)
	}
	assertNear(t, "world x", h.Data.Position.X, 110)
	assertNear(t, "world y", h.Data.Position.Y, 50)
}

func TestUpdatePointerHitsRespectsTargetsAndCameras(t *testing.T) {
	e, win, _ := pickWorld(t)
	other := SpawnWindow(e.World, Window{PhysicalWidth: 200, PhysicalHeight: 100, ScaleFactor: 1}, false).Entity()
	otherCam := NewCamera(WindowCameraTarget(other))
	otherCam.X, otherCam.Y = 100, 50
	otherCamEntity := SpawnCamera(e.World, otherCam).Entity()

	pinned := NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 0)
	pinned.Camera = otherCamEntity
	pinnedEntity := SpawnPickable(e.World, pinned).Entity()
	open := SpawnPickable(e.World, NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 1)).Entity()

	onOther := locatePointer(t, e.World, TouchPointer(1), WindowTarget(other), 10, 10)
	onPrimary := locatePointer(t, e.World, TouchPointer(2), WindowTarget(win), 10, 10)

	inactive := NewCamera(WindowCameraTarget(other))
	inactive.IsActive = false
	inactive.Order = 5
	SpawnCamera(e.World, inactive)

	UpdatePointerHits(e)

	hits := InteractionComponent.Get(onOther).Hits()
	if len(hits) != 2 || hits[0].Entity != pinnedEntity || hits[1].Entity != open {
		t.Errorf("other window hits = %v, want [%v %v]", hits, pinnedEntity, open)
	}
	for _, h := range hits {
		if h.Data.Camera != otherCamEntity {
			t.Errorf("hit %v through camera %v, want %v", h.Entity, h.Data.Camera, otherCamEntity)
		}
	}
	hits = InteractionComponent.Get(onPrimary).Hits()
	if len(hits) != 1 || hits[0].Entity != open {
		t.Errorf("primary window hits = %v, want only %v", hits, open)
	}
}

func TestUpdatePointerHitsPrefersHigherCamera(t *testing.T) {
	e, win, low := pickWorld(t)
	hiCam := NewCamera(PrimaryWindowTarget())
	hiCam.X, hiCam.Y = 100, 50
	hiCam.Order = 1
	high := SpawnCamera(e.World, hiCam).Entity()
	SpawnPickable(e.World, NewPickable(HitRect{Width: 50, Height: 50}, 0, 0, 0))

	ptr := locatePointer(t, e.World, MousePointer, WindowTarget(win), 10, 10)
	UpdatePointerHits(e)

	hits := InteractionComponent.Get(ptr).Hits()
	if len(hits) != 1 {
		t.Fatalf("hits = %v, want one (deduplicated across cameras)", hits)
	}
	if hits[0].Data.Camera != high {
		t.Errorf("Camera = %v, want the higher-order camera %v (not %v)", hits[0].Data.Camera, high, low)
	}
}
