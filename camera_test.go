package picking

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

var testViewport = Rect{X: 0, Y: 0, Width: 800, Height: 600}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if !cam.IsActive {
		t.Error("IsActive = false, want true")
	}
	if cam.Viewport != nil {
		t.Errorf("Viewport = %v, want nil (whole target)", cam.Viewport)
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	// At (0,0), zoom 1, no rotation the world origin maps to the viewport center.
	p := cam.WorldToViewport(testViewport, Vec2{0, 0})
	if !approxEqual(p.X, 400, epsilon) || !approxEqual(p.Y, 300, epsilon) {
		t.Errorf("WorldToViewport(0,0) = %v, want (400,300)", p)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.X = 100
	cam.Y = 50
	p := cam.WorldToViewport(testViewport, Vec2{100, 50})
	if !approxEqual(p.X, 400, epsilon) || !approxEqual(p.Y, 300, epsilon) {
		t.Errorf("WorldToViewport(100,50) with cam at (100,50) = %v, want (400,300)", p)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.Zoom = 2.0

	// At zoom 2, a point 1 unit from camera center should appear 2 pixels away.
	p1 := cam.WorldToViewport(testViewport, Vec2{1, 0})
	p0 := cam.WorldToViewport(testViewport, Vec2{0, 0})
	if !approxEqual(p1.X-p0.X, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f pixels, want 2.0", p1.X-p0.X)
	}

	// Zero zoom behaves as unzoomed.
	cam.Zoom = 0
	p1 = cam.WorldToViewport(testViewport, Vec2{1, 0})
	if !approxEqual(p1.X, 401, epsilon) {
		t.Errorf("zoom 0: WorldToViewport(1,0).X = %f, want 401", p1.X)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.Rotation = math.Pi / 2

	// Rotate(-π/2) maps (1,0)→(0,-1), then translate to viewport center.
	p := cam.WorldToViewport(testViewport, Vec2{1, 0})
	if !approxEqual(p.X, 400, epsilon) || !approxEqual(p.Y, 299, epsilon) {
		t.Errorf("90° rotation: WorldToViewport(1,0) = %v, want (400,299)", p)
	}
}

func TestCameraViewMatrixRotatedZoomed(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.X, cam.Y = 10, 20
	cam.Zoom = 2
	cam.Rotation = math.Pi / 2
	// Rotate(-90) sends (1, 0) to (0, -1), so world (11, 20) lands 2 units
	// above the viewport center.
	assertMatrix(t, "view", cam.viewMatrix(testViewport), [6]float64{0, -2, 2, 0, 360, 320})
	p := cam.WorldToViewport(testViewport, Vec2{11, 20})
	if !approxEqual(p.X, 400, epsilon) || !approxEqual(p.Y, 298, epsilon) {
		t.Errorf("WorldToViewport = %v, want (400, 298)", p)
	}
}

func TestViewportToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.Rotation = 0.3

	vp := Rect{X: 100, Y: 50, Width: 300, Height: 200}
	orig := Vec2{123, -456}
	back := cam.ViewportToWorld(vp, cam.WorldToViewport(vp, orig))
	if !approxEqual(back.X, orig.X, 1e-6) || !approxEqual(back.Y, orig.Y, 1e-6) {
		t.Errorf("roundtrip: got %v, want %v", back, orig)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(PrimaryWindowTarget())
	cam.ScrollTo(100, 200, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	cam.update(0.5)
	if !approxEqual(cam.X, 50, 1.0) || !approxEqual(cam.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = (%f,%f), want ~(50,100)", cam.X, cam.Y)
	}

	cam.update(0.5)
	if !approxEqual(cam.X, 100, 1.0) || !approxEqual(cam.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = (%f,%f), want ~(100,200)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("Scrolling = true after completion")
	}
}

func TestLogicalViewportRect(t *testing.T) {
	world := donburi.NewWorld()
	win := SpawnWindow(world, Window{PhysicalWidth: 800, PhysicalHeight: 600, ScaleFactor: 2}, true).Entity()
	img := SpawnRenderImage(world, RenderImage{PhysicalWidth: 64, PhysicalHeight: 32, ScaleFactor: 1}).Entity()

	tests := []struct {
		name     string
		target   CameraTarget
		viewport *Viewport
		want     Rect
		wantOK   bool
	}{
		{"whole primary window", PrimaryWindowTarget(), nil, Rect{0, 0, 400, 300}, true},
		{"explicit window", WindowCameraTarget(win), nil, Rect{0, 0, 400, 300}, true},
		{"sub viewport", PrimaryWindowTarget(), &Viewport{100, 200, 200, 100}, Rect{50, 100, 100, 50}, true},
		{"letterboxed", PrimaryWindowTarget(), &Viewport{700, 500, 400, 400}, Rect{350, 250, 50, 50}, true},
		{"outside target", PrimaryWindowTarget(), &Viewport{900, 0, 100, 100}, Rect{}, false},
		{"image", ImageCameraTarget(img), nil, Rect{0, 0, 64, 32}, true},
		{"window entity is not an image", ImageCameraTarget(win), nil, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.target)
			cam.Viewport = tt.viewport
			got, ok := cam.LogicalViewportRect(world)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("LogicalViewportRect = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLogicalViewportRectNoPrimary(t *testing.T) {
	world := donburi.NewWorld()
	SpawnWindow(world, Window{PhysicalWidth: 800, PhysicalHeight: 600, ScaleFactor: 1}, false)
	cam := NewCamera(PrimaryWindowTarget())
	if _, ok := cam.LogicalViewportRect(world); ok {
		t.Error("LogicalViewportRect should fail without a primary window")
	}
}

func TestUpdateCamerasAdvancesScroll(t *testing.T) {
	e := newTestECS()
	cam := NewCamera(PrimaryWindowTarget())
	cam.ScrollTo(10, 0, 0.0001, ease.Linear)
	entry := SpawnCamera(e.World, cam)

	UpdateCameras(e)

	got := CameraComponent.Get(entry)
	if got.Scrolling() || !approxEqual(got.X, 10, 1e-3) {
		t.Errorf("after one tick: X = %f, scrolling = %v; want 10, false", got.X, got.Scrolling())
	}
}
