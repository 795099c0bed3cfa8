package picking

import "github.com/yohamta/donburi/ecs"

// Vec2 is a 2D vector used for positions, deltas, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// PointerButton identifies one of the logical buttons a pointer can have.
type PointerButton uint8

const (
	ButtonPrimary   PointerButton = iota // primary (left) button, or a touch contact
	ButtonSecondary                      // secondary (right) button
	ButtonMiddle                         // middle button (scroll wheel click)
)

// PointerButtons lists every button a pointer can have, in a fixed order.
var PointerButtons = [...]PointerButton{ButtonPrimary, ButtonSecondary, ButtonMiddle}

func (b PointerButton) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// PressDirection is the stage of a button press.
type PressDirection uint8

const (
	PressDown PressDirection = iota // the button was just pressed
	PressUp                         // the button was just released
)

func (d PressDirection) String() string {
	if d == PressDown {
		return "down"
	}
	return "up"
}

// LayerDefault is the render layer used by the debug overlay.
const LayerDefault ecs.LayerID = iota
