package picking

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is a sub-rectangle of a render target, in physical pixels.
type Viewport struct {
	PhysicalX, PhysicalY          int
	PhysicalWidth, PhysicalHeight int
}

// Camera projects the world onto a render target. Pointer locations are
// tested against its viewport, and picking converts them to world space
// through its position, zoom, and rotation.
type Camera struct {
	// Target is the surface this camera renders into.
	Target CameraTarget
	// Viewport restricts rendering to part of the target. Nil covers the
	// whole target.
	Viewport *Viewport
	// IsActive cameras take part in picking.
	IsActive bool
	// Order sorts cameras that share a target; higher renders on top and is
	// preferred by picking when depths tie.
	Order int

	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64

	scrollTween *scrollAnim
}

// CameraComponent stores a Camera on an entity.
var CameraComponent = donburi.NewComponentType[Camera]()

// NewCamera returns an active camera with no zoom that covers the whole of
// target.
func NewCamera(target CameraTarget) Camera {
	return Camera{
		Target:   target,
		IsActive: true,
		Zoom:     1.0,
	}
}

// SpawnCamera creates a camera entity.
func SpawnCamera(world donburi.World, cam Camera) *donburi.Entry {
	entry := world.Entry(world.Create(CameraComponent))
	CameraComponent.SetValue(entry, cam)
	return entry
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// update advances the scroll animation by dt seconds.
func (c *Camera) update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// UpdateCameras advances camera animations by one tick.
func UpdateCameras(e *ecs.ECS) {
	dt := float32(1.0 / float64(ebiten.TPS()))
	CameraComponent.Each(e.World, func(entry *donburi.Entry) {
		CameraComponent.Get(entry).update(dt)
	})
}

// LogicalViewportRect returns the camera's viewport in the logical
// coordinates of its render target, the space pointer locations use. The
// viewport is clipped to the target. ok is false when the target cannot be
// resolved (no primary window, missing target entity, zero scale factor) or
// when the viewport lies entirely outside the target.
func (c *Camera) LogicalViewportRect(world donburi.World) (Rect, bool) {
	primary, hasPrimary := FindPrimaryWindow(world)
	target, ok := c.Target.Normalize(primary, hasPrimary)
	if !ok {
		return Rect{}, false
	}
	info, ok := resolveTargetInfo(world, target)
	if !ok || info.scaleFactor <= 0 {
		return Rect{}, false
	}

	x0, y0 := 0, 0
	x1, y1 := info.physicalWidth, info.physicalHeight
	if vp := c.Viewport; vp != nil {
		// Letterbox: keep only the part of the viewport inside the target.
		x0 = max(x0, vp.PhysicalX)
		y0 = max(y0, vp.PhysicalY)
		x1 = min(x1, vp.PhysicalX+vp.PhysicalWidth)
		y1 = min(y1, vp.PhysicalY+vp.PhysicalHeight)
	}
	if x1 < x0 || y1 < y0 {
		return Rect{}, false
	}

	s := info.scaleFactor
	return Rect{
		X:      float64(x0) / s,
		Y:      float64(y0) / s,
		Width:  float64(x1-x0) / s,
		Height: float64(y1-y0) / s,
	}, true
}

// viewMatrix maps world coordinates to target coordinates for a camera
// rendering into viewport vp.
//
//	viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy = viewport center.
func (c *Camera) viewMatrix(vp Rect) [6]float64 {
	cx := vp.X + vp.Width/2
	cy := vp.Y + vp.Height/2
	z := c.Zoom
	if z == 0 {
		z = 1
	}
	center := localTransform(cx, cy, z, z, -c.Rotation)
	return multiplyAffine(center, localTransform(-c.X, -c.Y, 1, 1, 0))
}

// WorldToViewport converts a world position to target coordinates.
func (c *Camera) WorldToViewport(vp Rect, world Vec2) Vec2 {
	x, y := transformPoint(c.viewMatrix(vp), world.X, world.Y)
	return Vec2{x, y}
}

// ViewportToWorld converts a position in target coordinates to world space.
func (c *Camera) ViewportToWorld(vp Rect, pos Vec2) Vec2 {
	x, y := transformPoint(invertAffine(c.viewMatrix(vp)), pos.X, pos.Y)
	return Vec2{x, y}
}
