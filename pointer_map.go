package picking

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/phanxgames/picking/report"
)

// PointerMap maps each PointerID to the entity that represents it. It is a
// derived index: UpdatePointerMap rebuilds it from the pointer entities once
// per tick, and it is only valid for the tick it was built in. Readers that
// run before the rebuild see the previous tick's map.
type PointerMap struct {
	inner map[PointerID]donburi.Entity
}

// PointerMapComponent stores the PointerMap singleton.
var PointerMapComponent = donburi.NewComponentType[PointerMap]()

// Entity returns the entity for id, or donburi.Null and false.
func (m *PointerMap) Entity(id PointerID) (donburi.Entity, bool) {
	e, ok := m.inner[id]
	if !ok {
		return donburi.Null, false
	}
	return e, true
}

// Lookup is Entity with a KindUnknownPointer error for missing ids.
func (m *PointerMap) Lookup(id PointerID) (donburi.Entity, error) {
	e, ok := m.Entity(id)
	if !ok {
		return donburi.Null, report.Newf(report.KindUnknownPointer, "no pointer %s", id)
	}
	return e, nil
}

// Len returns the number of mapped pointers.
func (m *PointerMap) Len() int { return len(m.inner) }

// Each calls fn for every mapped pointer, in no particular order.
func (m *PointerMap) Each(fn func(PointerID, donburi.Entity)) {
	for id, e := range m.inner {
		fn(id, e)
	}
}

// rebuild replaces the contents with the pointers currently in world. When
// two entities share an id, the one scanned last wins.
func (m *PointerMap) rebuild(world donburi.World) {
	if m.inner == nil {
		m.inner = make(map[PointerID]donburi.Entity)
	}
	clear(m.inner)
	pointerQuery.Each(world, func(entry *donburi.Entry) {
		m.inner[*PointerIDComponent.Get(entry)] = entry.Entity()
	})
}

// GetPointerMap returns the PointerMap singleton, creating it if needed.
func GetPointerMap(world donburi.World) *PointerMap {
	entry, ok := PointerMapComponent.First(world)
	if !ok {
		entry = world.Entry(world.Create(PointerMapComponent))
	}
	return PointerMapComponent.Get(entry)
}

// UpdatePointerMap rebuilds the PointerMap from the live pointer entities.
// Must run before any system that reads the map this tick.
func UpdatePointerMap(e *ecs.ECS) {
	GetPointerMap(e.World).rebuild(e.World)
}
