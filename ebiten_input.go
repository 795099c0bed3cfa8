package picking

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// touchSample is one touch contact in an inputSample.
type touchSample struct {
	id  uint64
	pos Vec2
}

// inputSample is one tick of raw device state.
type inputSample struct {
	focused  bool
	cursor   Vec2
	inWindow bool
	buttons  [len(PointerButtons)]bool
	touches  []touchSample
}

// inputTracker turns successive samples into pointer events. It holds the
// previous sample, the touch contacts that own pointers, and the contacts
// refused at the touch cap. A refused contact stays ignored until it lifts.
type inputTracker struct {
	prev       inputSample
	hasPrev    bool
	touches    map[uint64]Vec2
	ignored    map[uint64]struct{}
	order      []uint64
	ending     []uint64
	maxTouches int
}

func newInputTracker(maxTouches int) *inputTracker {
	return &inputTracker{
		touches:    make(map[uint64]Vec2),
		ignored:    make(map[uint64]struct{}),
		maxTouches: maxTouches,
	}
}

// trackerSink receives the tracker's output.
type trackerSink interface {
	emit(PointerInput)
	spawn(PointerID)
	despawn(PointerID)
}

// step diffs s against the previous sample. Pointers for touches that ended
// last step are despawned first, so their final release has been received.
func (t *inputTracker) step(s inputSample, target RenderTarget, out trackerSink) {
	for _, id := range t.ending {
		out.despawn(TouchPointer(id))
	}
	t.ending = t.ending[:0]

	if !s.focused {
		t.cancelAll(target, out)
		t.prev = s
		t.hasPrev = true
		return
	}

	t.stepMouse(s, target, out)
	t.stepTouches(s, target, out)
	t.prev = s
	t.hasPrev = true
}

func (t *inputTracker) stepMouse(s inputSample, target RenderTarget, out trackerSink) {
	loc := Location{Target: target, Position: s.cursor}
	prevIn := t.hasPrev && t.prev.focused && t.prev.inWindow

	if s.inWindow && !prevIn {
		out.emit(NewPointerInput(MousePointer, loc, EnteredWindow()))
	}
	if s.inWindow && (!prevIn || s.cursor != t.prev.cursor) {
		var delta Vec2
		if prevIn {
			delta = s.cursor.Sub(t.prev.cursor)
		}
		out.emit(NewPointerInput(MousePointer, loc, Moved(delta)))
	}
	for i, b := range PointerButtons {
		was := t.hasPrev && t.prev.focused && t.prev.buttons[i]
		switch {
		case s.buttons[i] && !was:
			out.emit(NewPointerInput(MousePointer, loc, Pressed(PressDown, b)))
		case !s.buttons[i] && was:
			out.emit(NewPointerInput(MousePointer, loc, Pressed(PressUp, b)))
		}
	}
	if !s.inWindow && prevIn {
		out.emit(NewPointerInput(MousePointer, loc, LeftWindow()))
	}
}

func (t *inputTracker) stepTouches(s inputSample, target RenderTarget, out trackerSink) {
	seen := make(map[uint64]bool, len(s.touches))
	for _, ts := range s.touches {
		seen[ts.id] = true
	}

	// Ended contacts release first so their slots are free for new ones.
	kept := t.order[:0]
	for _, tid := range t.order {
		if seen[tid] {
			kept = append(kept, tid)
			continue
		}
		loc := Location{Target: target, Position: t.touches[tid]}
		out.emit(NewPointerInput(TouchPointer(tid), loc, Pressed(PressUp, ButtonPrimary)))
		delete(t.touches, tid)
		t.ending = append(t.ending, tid)
	}
	t.order = kept
	for tid := range t.ignored {
		if !seen[tid] {
			delete(t.ignored, tid)
		}
	}

	for _, ts := range s.touches {
		if _, skip := t.ignored[ts.id]; skip {
			continue
		}
		loc := Location{Target: target, Position: ts.pos}
		id := TouchPointer(ts.id)

		last, ok := t.touches[ts.id]
		if !ok {
			if len(t.touches) >= t.maxTouches {
				t.ignored[ts.id] = struct{}{}
				continue
			}
			t.touches[ts.id] = ts.pos
			t.order = append(t.order, ts.id)
			out.spawn(id)
			out.emit(NewPointerInput(id, loc, Moved(Vec2{})))
			out.emit(NewPointerInput(id, loc, Pressed(PressDown, ButtonPrimary)))
			continue
		}
		if ts.pos != last {
			t.touches[ts.id] = ts.pos
			out.emit(NewPointerInput(id, loc, Moved(ts.pos.Sub(last))))
		}
	}
}

// cancelAll cancels the mouse if it had buttons held and every touch, as
// happens when the window loses focus.
func (t *inputTracker) cancelAll(target RenderTarget, out trackerSink) {
	if t.hasPrev && t.prev.focused {
		loc := Location{Target: target, Position: t.prev.cursor}
		for _, held := range t.prev.buttons {
			if held {
				out.emit(NewPointerInput(MousePointer, loc, Canceled()))
				break
			}
		}
	}
	for _, tid := range t.order {
		loc := Location{Target: target, Position: t.touches[tid]}
		out.emit(NewPointerInput(TouchPointer(tid), loc, Canceled()))
		delete(t.touches, tid)
		t.ending = append(t.ending, tid)
	}
	t.order = t.order[:0]
}

// worldSink publishes tracker output into a donburi world.
type worldSink struct {
	world donburi.World
}

func (w worldSink) emit(in PointerInput) { SendPointerInput(w.world, in) }

func (w worldSink) spawn(id PointerID) {
	if _, err := SpawnPointer(w.world, id); err != nil {
		logger.Warn().Err(err).Msg("touch pointer not spawned")
	}
}

func (w worldSink) despawn(id PointerID) { DespawnPointer(w.world, id) }

// ebitenInputState is the singleton holding the Ebitengine poller's state.
type ebitenInputState struct {
	tracker  *inputTracker
	touchIDs []ebiten.TouchID
	sample   inputSample
}

var ebitenInputComponent = donburi.NewComponentType[ebitenInputState]()

// NewEbitenInput returns a system that polls Ebitengine's mouse and touch
// state each tick, keeps the primary window's size in sync, and publishes
// PointerInput events for the mouse and for up to maxTouches touch
// contacts. Touch pointers are spawned when a contact begins and despawned
// the tick after it ends.
func NewEbitenInput(maxTouches int) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		entry, ok := ebitenInputComponent.First(e.World)
		if !ok {
			entry = e.World.Entry(e.World.Create(ebitenInputComponent))
			ebitenInputComponent.SetValue(entry, ebitenInputState{tracker: newInputTracker(maxTouches)})
		}
		st := ebitenInputComponent.Get(entry)

		window, bounds, ok := syncPrimaryWindow(e.World)
		if !ok {
			return
		}
		st.poll(bounds)
		st.tracker.step(st.sample, WindowTarget(window), worldSink{world: e.World})
	}
}

// poll reads the current Ebitengine input state into st.sample. bounds is
// the layout screen size the cursor position is measured in.
func (st *ebitenInputState) poll(bounds Vec2) {
	s := &st.sample
	s.focused = ebiten.IsFocused()

	mx, my := ebiten.CursorPosition()
	s.cursor = Vec2{float64(mx), float64(my)}
	s.inWindow = Rect{Width: bounds.X, Height: bounds.Y}.Contains(s.cursor.X, s.cursor.Y)
	s.buttons[ButtonPrimary] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.buttons[ButtonSecondary] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.buttons[ButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	st.touchIDs = ebiten.AppendTouchIDs(st.touchIDs[:0])
	s.touches = s.touches[:0]
	for _, tid := range st.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		s.touches = append(s.touches, touchSample{id: uint64(tid), pos: Vec2{float64(tx), float64(ty)}})
	}
}

// syncPrimaryWindow copies Ebitengine's window size and device scale factor
// into the primary window entity and returns the window's cursor bounds.
func syncPrimaryWindow(world donburi.World) (donburi.Entity, Vec2, bool) {
	entry, ok := PrimaryWindow.First(world)
	if !ok || !entry.HasComponent(WindowComponent) {
		return donburi.Null, Vec2{}, false
	}
	win := WindowComponent.Get(entry)
	scale := ebiten.Monitor().DeviceScaleFactor()
	w, h := ebiten.WindowSize()
	win.ScaleFactor = scale
	win.PhysicalWidth = int(float64(w) * scale)
	win.PhysicalHeight = int(float64(h) * scale)
	return entry.Entity(), win.cursorBounds(w, h), true
}

// cursorBounds is the layout size cursor positions are reported in,
// falling back to the window size before the first Layout.
func (w Window) cursorBounds(windowWidth, windowHeight int) Vec2 {
	if w.LayoutWidth > 0 && w.LayoutHeight > 0 {
		return Vec2{float64(w.LayoutWidth), float64(w.LayoutHeight)}
	}
	return Vec2{float64(windowWidth), float64(windowHeight)}
}
