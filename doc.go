// Package picking tracks pointers (the mouse, touch contacts, and
// code-driven custom cursors) for [Ebitengine] games built on the [Donburi]
// ECS.
//
// Every pointer is an entity carrying a [PointerID], a [PointerPress] with
// the state of its three buttons, a [PointerLocation] naming the render
// target and position it is over, and a [PointerInteraction] listing the
// entities under it.
//
// # Quick start
//
// [Build] installs the systems in a fixed order; a [Game] runs them:
//
//	world := donburi.NewWorld()
//	e := ecs.NewECS(world)
//	if err := picking.Build(e, picking.DefaultPlugins()); err != nil {
//		return err
//	}
//	picking.SpawnWindow(world, picking.Window{ScaleFactor: 1}, true)
//	picking.SpawnCamera(world, picking.NewCamera(picking.PrimaryWindowTarget()))
//	return picking.Run(picking.NewGame(e, cfg), cfg)
//
// # Input
//
// Producers publish [PointerInput] events with [SendPointerInput]. Once per
// tick [ReceivePointerInputs] applies them in order: presses set or clear a
// button, moves replace the location, cancels release every button. Events
// for ids with no entity are dropped.
//
// The Ebitengine backend ([NewEbitenInput]) produces events for the mouse
// and touches. An [Injector] produces them for a custom pointer, either from
// code or from a JSON script loaded with [LoadPointerScript].
//
// # Lookup
//
// [PointerMap] maps ids to entities. It is rebuilt once per tick by
// [UpdatePointerMap] and is only valid for the tick it was built in.
//
// # Picking
//
// [UpdatePointerHits] tests every located pointer against the [Pickable]
// entities seen by each active [Camera] whose viewport contains it.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package picking
