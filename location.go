package picking

import (
	"fmt"

	"github.com/yohamta/donburi"
)

type targetKind uint8

const (
	targetNone targetKind = iota
	targetWindow
	targetImage
)

// RenderTarget is a normalized drawable surface: a concrete window or
// offscreen image entity. Two targets are equal only when they name the same
// kind of surface backed by the same entity.
type RenderTarget struct {
	kind   targetKind
	entity donburi.Entity
}

// WindowTarget returns the render target for a window entity.
func WindowTarget(window donburi.Entity) RenderTarget {
	return RenderTarget{kind: targetWindow, entity: window}
}

// ImageTarget returns the render target for an offscreen image entity.
func ImageTarget(image donburi.Entity) RenderTarget {
	return RenderTarget{kind: targetImage, entity: image}
}

// IsWindow reports whether the target is a window.
func (t RenderTarget) IsWindow() bool { return t.kind == targetWindow }

// IsImage reports whether the target is an offscreen image.
func (t RenderTarget) IsImage() bool { return t.kind == targetImage }

// Entity returns the entity backing the target.
func (t RenderTarget) Entity() donburi.Entity { return t.entity }

func (t RenderTarget) String() string {
	switch t.kind {
	case targetWindow:
		return fmt.Sprintf("window(%v)", t.entity)
	case targetImage:
		return fmt.Sprintf("image(%v)", t.entity)
	default:
		return "none"
	}
}

// CameraTarget is what a camera renders into before normalization. Besides
// concrete targets it can name "the primary window" abstractly.
type CameraTarget struct {
	primary bool
	target  RenderTarget
}

// PrimaryWindowTarget targets whichever window is tagged PrimaryWindow.
// This is the default for cameras created with NewCamera.
func PrimaryWindowTarget() CameraTarget {
	return CameraTarget{primary: true}
}

// WindowCameraTarget targets a specific window entity.
func WindowCameraTarget(window donburi.Entity) CameraTarget {
	return CameraTarget{target: WindowTarget(window)}
}

// ImageCameraTarget targets an offscreen image entity.
func ImageCameraTarget(image donburi.Entity) CameraTarget {
	return CameraTarget{target: ImageTarget(image)}
}

// Normalize resolves the camera target to a concrete RenderTarget,
// substituting primary for the abstract primary window. ok is false when the
// target is the primary window and hasPrimary is false.
func (c CameraTarget) Normalize(primary donburi.Entity, hasPrimary bool) (RenderTarget, bool) {
	if !c.primary {
		return c.target, c.target.kind != targetNone
	}
	if !hasPrimary {
		return RenderTarget{}, false
	}
	return WindowTarget(primary), true
}

// Location is where a pointer is: a render target and a position on that
// target in logical units. Positions are only meaningful relative to their
// target; a pointer can move freely between targets.
//
// A Location is not tied to a camera, since several cameras can render into
// the same target. Picking backends decide which cameras a location falls in.
type Location struct {
	Target   RenderTarget
	Position Vec2
}

// IsInViewport reports whether the location lies within cam's viewport.
// It returns false when the camera targets the primary window and there is
// none, when the camera and location have different render targets, or when
// the camera's viewport cannot be resolved. Viewport edges count as inside.
func (l Location) IsInViewport(world donburi.World, cam *Camera) bool {
	if cam == nil {
		return false
	}
	primary, hasPrimary := FindPrimaryWindow(world)
	if cam.Target.primary && !hasPrimary {
		return false
	}
	target, ok := cam.Target.Normalize(primary, hasPrimary)
	if !ok || target != l.Target {
		return false
	}
	vp, ok := cam.LogicalViewportRect(world)
	if !ok {
		return false
	}
	return vp.Contains(l.Position.X, l.Position.Y)
}
