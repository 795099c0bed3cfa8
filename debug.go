package picking

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const debugLineHeight = 16

// debugLines formats one line per pointer: id, held buttons, location and
// hit count. Lines are sorted so the overlay does not flicker.
func debugLines(world donburi.World) []string {
	var lines []string
	pointerQuery.Each(world, func(entry *donburi.Entry) {
		var b strings.Builder
		id := *PointerIDComponent.Get(entry)
		press := PressComponent.Get(entry)
		fmt.Fprintf(&b, "%s [", id)
		for _, btn := range PointerButtons {
			if press.IsPressed(btn) {
				b.WriteString(btn.String()[:1])
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteByte(']')
		if loc, ok := LocationComponent.Get(entry).Get(); ok {
			fmt.Fprintf(&b, " %s (%.0f, %.0f)", loc.Target, loc.Position.X, loc.Position.Y)
		} else {
			b.WriteString(" nowhere")
		}
		if entry.HasComponent(InteractionComponent) {
			inter := InteractionComponent.Get(entry)
			if h, ok := inter.Nearest(); ok {
				fmt.Fprintf(&b, " hits=%d nearest=%v", inter.Len(), h.Entity)
			}
		}
		lines = append(lines, b.String())
	})
	slices.Sort(lines)
	return lines
}

// DrawPointerDebug is a renderer printing every pointer's state in the top
// left corner of screen.
func DrawPointerDebug(e *ecs.ECS, screen *ebiten.Image) {
	for i, line := range debugLines(e.World) {
		ebitenutil.DebugPrintAt(screen, line, 4, 4+i*debugLineHeight)
	}
}
