package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// ActionKind identifies what a PointerAction did.
type ActionKind uint8

const (
	ActionEnteredWindow ActionKind = iota // the pointer entered a window
	ActionLeftWindow                      // the pointer left a window
	ActionPressed                         // a button went down or up
	ActionMoved                           // the pointer moved
	ActionCanceled                        // the platform canceled the pointer (touch)
)

func (k ActionKind) String() string {
	switch k {
	case ActionEnteredWindow:
		return "entered_window"
	case ActionLeftWindow:
		return "left_window"
	case ActionPressed:
		return "pressed"
	case ActionMoved:
		return "moved"
	case ActionCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// PointerAction is something a pointer did. Direction and Button are set
// for ActionPressed; Delta is set for ActionMoved.
type PointerAction struct {
	Kind      ActionKind
	Direction PressDirection
	Button    PointerButton
	// Delta is how far the pointer moved since its previous position. It
	// is informational; the event's Location is authoritative.
	Delta Vec2
}

// EnteredWindow returns an ActionEnteredWindow action.
func EnteredWindow() PointerAction { return PointerAction{Kind: ActionEnteredWindow} }

// LeftWindow returns an ActionLeftWindow action.
func LeftWindow() PointerAction { return PointerAction{Kind: ActionLeftWindow} }

// Pressed returns an ActionPressed action.
func Pressed(dir PressDirection, button PointerButton) PointerAction {
	return PointerAction{Kind: ActionPressed, Direction: dir, Button: button}
}

// Moved returns an ActionMoved action.
func Moved(delta Vec2) PointerAction { return PointerAction{Kind: ActionMoved, Delta: delta} }

// Canceled returns an ActionCanceled action.
func Canceled() PointerAction { return PointerAction{Kind: ActionCanceled} }

// PointerInput is an input event affecting one pointer. Location is where
// the pointer is after the event.
type PointerInput struct {
	PointerID PointerID
	Location  Location
	Action    PointerAction
}

// NewPointerInput creates a pointer input event.
func NewPointerInput(id PointerID, loc Location, action PointerAction) PointerInput {
	return PointerInput{PointerID: id, Location: loc, Action: action}
}

// PointerInputs is the per-world queue of pointer input events. Producers
// publish into it at any point of a tick; ReceivePointerInputs drains it in
// publish order.
var PointerInputs = events.NewEventType[PointerInput]()

// SendPointerInput queues in for the next ReceivePointerInputs pass.
func SendPointerInput(world donburi.World, in PointerInput) {
	PointerInputs.Publish(world, in)
}

// ApplyPointerInput updates every pointer entity whose id equals
// in.PointerID and returns how many were updated. Ids are expected to be
// unique, but all matches are updated. An input for an id with no entity is
// dropped: pointers can be despawned a tick before their last events
// arrive.
//
// Transitions:
//   - ActionPressed sets the button to held for PressDown and released for
//     PressUp. Repeated presses in the same direction change nothing.
//   - ActionMoved replaces the location with in.Location.
//   - ActionCanceled releases every button and keeps the location.
//   - ActionEnteredWindow and ActionLeftWindow change nothing.
func ApplyPointerInput(world donburi.World, in PointerInput) int {
	matched := 0
	pointerQuery.Each(world, func(entry *donburi.Entry) {
		if *PointerIDComponent.Get(entry) != in.PointerID {
			return
		}
		matched++
		switch in.Action.Kind {
		case ActionPressed:
			PressComponent.Get(entry).set(in.Action.Button, in.Action.Direction == PressDown)
		case ActionMoved:
			loc := in.Location
			LocationComponent.Get(entry).Location = &loc
		case ActionCanceled:
			*PressComponent.Get(entry) = PointerPress{}
		}
	})
	if matched == 0 {
		logger.Debug().
			Str("pointer", in.PointerID.String()).
			Str("action", in.Action.Kind.String()).
			Msg("dropped input for unknown pointer")
	}
	return matched
}

// inputReceiver tags the entity marking a world whose PointerInputs queue
// is subscribed.
var inputReceiver = donburi.NewTag().SetName("PointerInputReceiver")

func onPointerInput(w donburi.World, in PointerInput) {
	ApplyPointerInput(w, in)
}

// ensureReceiver subscribes the world's PointerInputs queue exactly once.
func ensureReceiver(world donburi.World) {
	if _, ok := inputReceiver.First(world); ok {
		return
	}
	world.Create(inputReceiver)
	PointerInputs.Subscribe(world, onPointerInput)
}

// ReceivePointerInputs drains the PointerInputs queue, applying each event
// in order with ApplyPointerInput.
func ReceivePointerInputs(e *ecs.ECS) {
	ensureReceiver(e.World)
	PointerInputs.ProcessEvents(e.World)
}
