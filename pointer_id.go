package picking

import (
	"strconv"

	"github.com/google/uuid"
)

// pointerKind distinguishes the PointerID variants.
type pointerKind uint8

const (
	kindMouse pointerKind = iota
	kindTouch
	kindCustom
)

// PointerID identifies a pointer device independently of the entity that
// represents it. Pointers can be spawned and despawned, but their id stays
// stable for the lifetime of the device session.
//
// PointerID is comparable: two ids are equal when they are the same variant
// wrapping the same value, so it can be used directly as a map key. The zero
// value is the mouse.
type PointerID struct {
	kind   pointerKind
	touch  uint64
	custom uuid.UUID
}

// MousePointer is the id of the mouse. There is exactly one mouse.
var MousePointer = PointerID{kind: kindMouse}

// TouchPointer returns the id of a touch contact, numbered by the platform's
// touch events. Uniqueness across concurrently active touches is guaranteed
// by the input source, not checked here.
func TouchPointer(id uint64) PointerID {
	return PointerID{kind: kindTouch, touch: id}
}

// CustomPointer wraps an existing UUID as a software-defined pointer id.
func CustomPointer(id uuid.UUID) PointerID {
	return PointerID{kind: kindCustom, custom: id}
}

// NewCustomPointer returns a fresh software-defined pointer id backed by a
// random (version 4) UUID. Useful for mocking inputs or implementing a
// software controlled cursor.
func NewCustomPointer() PointerID {
	return CustomPointer(uuid.New())
}

// IsMouse reports whether the id is the mouse.
func (p PointerID) IsMouse() bool { return p.kind == kindMouse }

// IsTouch reports whether the id is a touch contact.
func (p PointerID) IsTouch() bool { return p.kind == kindTouch }

// IsCustom reports whether the id is a software-defined pointer.
func (p PointerID) IsCustom() bool { return p.kind == kindCustom }

// TouchID returns the wrapped touch id. ok is false for non-touch pointers.
func (p PointerID) TouchID() (id uint64, ok bool) {
	if p.kind != kindTouch {
		return 0, false
	}
	return p.touch, true
}

// CustomID returns the wrapped UUID. ok is false for non-custom pointers.
func (p PointerID) CustomID() (id uuid.UUID, ok bool) {
	if p.kind != kindCustom {
		return uuid.Nil, false
	}
	return p.custom, true
}

func (p PointerID) String() string {
	switch p.kind {
	case kindTouch:
		return "touch(" + strconv.FormatUint(p.touch, 10) + ")"
	case kindCustom:
		return "custom(" + p.custom.String() + ")"
	default:
		return "mouse"
	}
}
