package picking

import (
	"github.com/yohamta/donburi"
)

// Window describes an OS window that cameras can render into and pointers
// can be located on. Sizes are in physical pixels.
type Window struct {
	Title          string
	PhysicalWidth  int
	PhysicalHeight int
	// ScaleFactor converts physical pixels to logical units
	// (logical = physical / ScaleFactor). Zero is treated as unresolved.
	ScaleFactor float64
	// LayoutWidth and LayoutHeight are the screen size the game's Layout
	// returned, the space Ebitengine reports cursor positions in. Zero
	// until SetLayoutSize is called.
	LayoutWidth  int
	LayoutHeight int
}

// LogicalSize returns the window size in logical units.
func (w Window) LogicalSize() Vec2 {
	if w.ScaleFactor <= 0 {
		return Vec2{}
	}
	return Vec2{float64(w.PhysicalWidth) / w.ScaleFactor, float64(w.PhysicalHeight) / w.ScaleFactor}
}

// SetLayoutSize records the size returned by the game's Layout on the
// primary window. Game.Layout calls it; a custom ebiten.Game should too.
func SetLayoutSize(world donburi.World, width, height int) {
	entry, ok := PrimaryWindow.First(world)
	if !ok || !entry.HasComponent(WindowComponent) {
		return
	}
	win := WindowComponent.Get(entry)
	win.LayoutWidth = width
	win.LayoutHeight = height
}

// RenderImage describes an offscreen image that cameras can render into.
// Sizes are in physical pixels.
type RenderImage struct {
	PhysicalWidth  int
	PhysicalHeight int
	ScaleFactor    float64
}

var (
	WindowComponent      = donburi.NewComponentType[Window]()
	RenderImageComponent = donburi.NewComponentType[RenderImage]()

	// PrimaryWindow tags the window that cameras targeting "the primary
	// window" resolve to. At most one window should carry it.
	PrimaryWindow = donburi.NewTag().SetName("PrimaryWindow")
)

// SpawnWindow creates a window entity. When primary is true the window is
// tagged as the primary window.
func SpawnWindow(world donburi.World, w Window, primary bool) *donburi.Entry {
	var entity donburi.Entity
	if primary {
		entity = world.Create(WindowComponent, PrimaryWindow)
	} else {
		entity = world.Create(WindowComponent)
	}
	entry := world.Entry(entity)
	WindowComponent.SetValue(entry, w)
	return entry
}

// SpawnRenderImage creates an offscreen render target entity.
func SpawnRenderImage(world donburi.World, img RenderImage) *donburi.Entry {
	entry := world.Entry(world.Create(RenderImageComponent))
	RenderImageComponent.SetValue(entry, img)
	return entry
}

// FindPrimaryWindow returns the entity tagged PrimaryWindow, if any.
func FindPrimaryWindow(world donburi.World) (donburi.Entity, bool) {
	entry, ok := PrimaryWindow.First(world)
	if !ok {
		return donburi.Null, false
	}
	return entry.Entity(), true
}

// targetInfo is the physical size and scale factor of a render target.
type targetInfo struct {
	physicalWidth  int
	physicalHeight int
	scaleFactor    float64
}

// resolveTargetInfo looks up the size of a normalized render target.
func resolveTargetInfo(world donburi.World, target RenderTarget) (targetInfo, bool) {
	if !world.Valid(target.entity) {
		return targetInfo{}, false
	}
	entry := world.Entry(target.entity)
	switch target.kind {
	case targetWindow:
		if !entry.HasComponent(WindowComponent) {
			return targetInfo{}, false
		}
		w := WindowComponent.Get(entry)
		return targetInfo{w.PhysicalWidth, w.PhysicalHeight, w.ScaleFactor}, true
	case targetImage:
		if !entry.HasComponent(RenderImageComponent) {
			return targetInfo{}, false
		}
		img := RenderImageComponent.Get(entry)
		return targetInfo{img.PhysicalWidth, img.PhysicalHeight, img.ScaleFactor}, true
	}
	return targetInfo{}, false
}
