package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"github.com/phanxgames/picking/report"
)

// PointerPress tracks which buttons of a pointer are held. The three
// buttons are independent: any subset may be pressed.
type PointerPress struct {
	primary   bool
	secondary bool
	middle    bool
}

// IsPrimaryPressed reports whether the primary button is held.
func (p PointerPress) IsPrimaryPressed() bool { return p.primary }

// IsSecondaryPressed reports whether the secondary button is held.
func (p PointerPress) IsSecondaryPressed() bool { return p.secondary }

// IsMiddlePressed reports whether the middle button is held.
func (p PointerPress) IsMiddlePressed() bool { return p.middle }

// IsAnyPressed reports whether any button is held.
func (p PointerPress) IsAnyPressed() bool { return p.primary || p.secondary || p.middle }

// IsPressed reports whether button b is held.
func (p PointerPress) IsPressed(b PointerButton) bool {
	switch b {
	case ButtonPrimary:
		return p.primary
	case ButtonSecondary:
		return p.secondary
	case ButtonMiddle:
		return p.middle
	}
	return false
}

func (p *PointerPress) set(b PointerButton, down bool) {
	switch b {
	case ButtonPrimary:
		p.primary = down
	case ButtonSecondary:
		p.secondary = down
	case ButtonMiddle:
		p.middle = down
	}
}

// PointerLocation is where a pointer currently is. A nil Location means the
// pointer is not positioned on any target.
type PointerLocation struct {
	Location *Location
}

// Get returns the location and whether the pointer is positioned.
func (p PointerLocation) Get() (Location, bool) {
	if p.Location == nil {
		return Location{}, false
	}
	return *p.Location, true
}

// HitData is what a picking backend knows about where a pointer intersects
// an entity. Position and Normal are optional.
type HitData struct {
	// Camera is the camera entity the hit was computed through.
	Camera donburi.Entity
	// Depth orders hits; smaller is nearer.
	Depth    float64
	Position *Vec2
	Normal   *Vec2
}

// Hit pairs a hit entity with its hit data.
type Hit struct {
	Entity donburi.Entity
	Data   HitData
}

// PointerInteraction holds the entities a pointer is over, sorted from
// nearest to farthest. It is written by picking backends.
type PointerInteraction struct {
	sorted []Hit
}

// Hits returns the sorted hit list. The slice is owned by the component and
// is only valid until the next picking pass.
func (p PointerInteraction) Hits() []Hit { return p.sorted }

// Len returns the number of hits.
func (p PointerInteraction) Len() int { return len(p.sorted) }

// Nearest returns the nearest hit, if any.
func (p PointerInteraction) Nearest() (Hit, bool) {
	if len(p.sorted) == 0 {
		return Hit{}, false
	}
	return p.sorted[0], true
}

var (
	PointerIDComponent   = donburi.NewComponentType[PointerID]()
	PressComponent       = donburi.NewComponentType[PointerPress]()
	LocationComponent    = donburi.NewComponentType[PointerLocation]()
	InteractionComponent = donburi.NewComponentType[PointerInteraction]()
)

// pointerQuery matches every pointer entity.
var pointerQuery = query.NewQuery(filter.Contains(PointerIDComponent, PressComponent, LocationComponent))

// pointerComponents is the component set of a pointer entity.
var pointerComponents = []donburi.IComponentType{
	PointerIDComponent, PressComponent, LocationComponent, InteractionComponent,
}

// SpawnPointer creates a pointer entity for id with all buttons released and
// no location. Ids must be unique among live pointers: spawning an id that
// already has an entity fails with a KindDuplicatePointer error.
func SpawnPointer(world donburi.World, id PointerID) (*donburi.Entry, error) {
	if _, ok := findPointer(world, id); ok {
		return nil, report.Newf(report.KindDuplicatePointer, "pointer %s already spawned", id)
	}
	entry := world.Entry(world.Create(pointerComponents...))
	PointerIDComponent.SetValue(entry, id)
	logger.Debug().Str("pointer", id.String()).Msg("pointer spawned")
	return entry, nil
}

// DespawnPointer removes every entity carrying id. It reports whether any
// entity was removed.
func DespawnPointer(world donburi.World, id PointerID) bool {
	var doomed []donburi.Entity
	pointerQuery.Each(world, func(entry *donburi.Entry) {
		if *PointerIDComponent.Get(entry) == id {
			doomed = append(doomed, entry.Entity())
		}
	})
	for _, e := range doomed {
		world.Remove(e)
	}
	if len(doomed) > 0 {
		logger.Debug().Str("pointer", id.String()).Msg("pointer despawned")
	}
	return len(doomed) > 0
}

// findPointer scans live pointer entities for id.
func findPointer(world donburi.World, id PointerID) (*donburi.Entry, bool) {
	var found *donburi.Entry
	pointerQuery.Each(world, func(entry *donburi.Entry) {
		if found == nil && *PointerIDComponent.Get(entry) == id {
			found = entry
		}
	})
	return found, found != nil
}
