package picking

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

type injectKind uint8

const (
	injectPress injectKind = iota
	injectRelease
	injectMove
	injectGlide
	injectCancel
	injectWait
)

// injectStep is a single queued synthetic input.
type injectStep struct {
	kind     injectKind
	button   PointerButton
	to       Vec2
	duration float32
	easeFn   ease.TweenFunc
	frames   int
}

// glideAnim holds the tweens of an in-progress glide.
type glideAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
}

// Injector drives a custom pointer from code: a software cursor, a bot, or
// a test harness. Queued steps are consumed one per tick by StepInjectors;
// a glide or wait occupies as many ticks as it lasts.
type Injector struct {
	id     PointerID
	target RenderTarget
	pos    Vec2
	queue  []injectStep
	glide  *glideAnim
	wait   int
}

// InjectorComponent attaches an Injector to its pointer entity.
var InjectorComponent = donburi.NewComponentType[*Injector]()

var injectorQuery = query.NewQuery(filter.Contains(InjectorComponent))

// NewInjector spawns a custom pointer on target and returns its injector.
// The pointer has no location until the first move.
func NewInjector(world donburi.World, target RenderTarget) (*Injector, error) {
	id := NewCustomPointer()
	entry, err := SpawnPointer(world, id)
	if err != nil {
		return nil, err
	}
	inj := &Injector{id: id, target: target}
	entry.AddComponent(InjectorComponent)
	InjectorComponent.SetValue(entry, inj)
	return inj, nil
}

// ID returns the injector's pointer id.
func (in *Injector) ID() PointerID { return in.id }

// Position returns the position of the last emitted move.
func (in *Injector) Position() Vec2 { return in.pos }

// Pending reports whether queued steps remain.
func (in *Injector) Pending() bool {
	return len(in.queue) > 0 || in.glide != nil || in.wait > 0
}

// Press queues a button press at the current position.
func (in *Injector) Press(b PointerButton) {
	in.queue = append(in.queue, injectStep{kind: injectPress, button: b})
}

// Release queues a button release at the current position.
func (in *Injector) Release(b PointerButton) {
	in.queue = append(in.queue, injectStep{kind: injectRelease, button: b})
}

// MoveTo queues an instant move.
func (in *Injector) MoveTo(x, y float64) {
	in.queue = append(in.queue, injectStep{kind: injectMove, to: Vec2{x, y}})
}

// Glide queues an eased move to (x, y) over duration seconds, emitting one
// move per tick. A nil easeFn moves linearly.
func (in *Injector) Glide(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	in.queue = append(in.queue, injectStep{kind: injectGlide, to: Vec2{x, y}, duration: duration, easeFn: easeFn})
}

// Cancel queues a cancel, releasing every button.
func (in *Injector) Cancel() {
	in.queue = append(in.queue, injectStep{kind: injectCancel})
}

// Wait queues an idle period of frames ticks.
func (in *Injector) Wait(frames int) {
	if frames > 0 {
		in.queue = append(in.queue, injectStep{kind: injectWait, frames: frames})
	}
}

// Click queues a move to (x, y), then a press and a release of b.
func (in *Injector) Click(x, y float64, b PointerButton) {
	in.MoveTo(x, y)
	in.Press(b)
	in.Release(b)
}

// Drag queues a full drag: move to from, press, glide to to over duration
// seconds, release.
func (in *Injector) Drag(from, to Vec2, b PointerButton, duration float32, easeFn ease.TweenFunc) {
	in.MoveTo(from.X, from.Y)
	in.Press(b)
	in.Glide(to.X, to.Y, duration, easeFn)
	in.Release(b)
}

// step advances the injector by one tick of dt seconds.
func (in *Injector) step(world donburi.World, dt float32) {
	if in.glide != nil {
		x, doneX := in.glide.tweenX.Update(dt)
		y, doneY := in.glide.tweenY.Update(dt)
		in.moveTo(world, Vec2{float64(x), float64(y)})
		if doneX && doneY {
			in.glide = nil
		}
		return
	}
	if in.wait > 0 {
		in.wait--
		return
	}
	if len(in.queue) == 0 {
		return
	}
	st := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	loc := Location{Target: in.target, Position: in.pos}
	switch st.kind {
	case injectPress:
		SendPointerInput(world, NewPointerInput(in.id, loc, Pressed(PressDown, st.button)))
	case injectRelease:
		SendPointerInput(world, NewPointerInput(in.id, loc, Pressed(PressUp, st.button)))
	case injectCancel:
		SendPointerInput(world, NewPointerInput(in.id, loc, Canceled()))
	case injectMove:
		in.moveTo(world, st.to)
	case injectGlide:
		in.glide = &glideAnim{
			tweenX: gween.New(float32(in.pos.X), float32(st.to.X), st.duration, st.easeFn),
			tweenY: gween.New(float32(in.pos.Y), float32(st.to.Y), st.duration, st.easeFn),
		}
		// The first tick of the glide moves immediately.
		in.step(world, dt)
	case injectWait:
		in.wait = st.frames - 1 // this tick counts as one
	}
}

func (in *Injector) moveTo(world donburi.World, to Vec2) {
	delta := to.Sub(in.pos)
	in.pos = to
	SendPointerInput(world, NewPointerInput(in.id, Location{Target: in.target, Position: to}, Moved(delta)))
}

// StepInjectors advances every injector by one tick. Must run before
// ReceivePointerInputs.
func StepInjectors(e *ecs.ECS) {
	stepInjectors(e.World, float32(1.0/float64(ebiten.TPS())))
}

func stepInjectors(world donburi.World, dt float32) {
	injectorQuery.Each(world, func(entry *donburi.Entry) {
		(*InjectorComponent.Get(entry)).step(world, dt)
	})
}
