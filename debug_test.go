package picking

import (
	"strings"
	"testing"
)

func TestDebugLines(t *testing.T) {
	e := newTestECS()
	mustSpawn(t, e.World, MousePointer)
	mustSpawn(t, e.World, TouchPointer(2))
	ApplyPointerInput(e.World, NewPointerInput(TouchPointer(2), at(12, 34), Moved(Vec2{})))
	ApplyPointerInput(e.World, NewPointerInput(TouchPointer(2), at(12, 34), Pressed(PressDown, ButtonSecondary)))

	lines := debugLines(e.World)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	// Sorted: "mouse" before "touch(2)".
	if lines[0] != "mouse [---] nowhere" {
		t.Errorf("mouse line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "touch(2) [-s-] window(") || !strings.HasSuffix(lines[1], "(12, 34)") {
		t.Errorf("touch line = %q", lines[1])
	}
}
