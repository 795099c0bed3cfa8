package picking

import (
	"errors"

	"github.com/yohamta/donburi/ecs"

	"github.com/phanxgames/picking/report"
)

// Plugins selects the subsystems Build installs.
type Plugins struct {
	// Pointers spawns the mouse pointer and keeps the PointerMap and
	// pointer state current. Every other plugin needs it.
	Pointers bool
	// EbitenInput polls Ebitengine's mouse and touch devices.
	EbitenInput bool
	// MaxTouchPointers caps the touch pointers EbitenInput spawns.
	MaxTouchPointers int
	// Cameras advances camera scroll animations.
	Cameras bool
	// Picking fills PointerInteraction from Pickable entities.
	Picking bool
	// Injector steps code-driven custom pointers.
	Injector bool
	// Script drives injectors from pointer scripts. Requires Injector.
	Script bool
	// Debug draws a pointer overlay on LayerDefault.
	Debug bool
}

// DefaultPlugins returns every plugin, as a game would use them.
func DefaultPlugins() Plugins {
	return Plugins{
		Pointers:         true,
		EbitenInput:      true,
		MaxTouchPointers: DefaultConfig().MaxTouchPointers,
		Cameras:          true,
		Picking:          true,
		Injector:         true,
		Script:           true,
	}
}

// MinimalPlugins returns the pointer core only. Input must be published
// with SendPointerInput or an Injector.
func MinimalPlugins() Plugins {
	return Plugins{Pointers: true}
}

// WithConfig returns p with the settings from cfg applied.
func (p Plugins) WithConfig(cfg Config) Plugins {
	p.MaxTouchPointers = cfg.MaxTouchPointers
	return p
}

// Validate checks plugin dependencies.
func (p Plugins) Validate() error {
	var errs []error
	need := func(on bool, name string) {
		if on && !p.Pointers {
			errs = append(errs, report.Newf(report.KindPluginSetup, "plugin %s requires Pointers", name))
		}
	}
	need(p.EbitenInput, "EbitenInput")
	need(p.Cameras, "Cameras")
	need(p.Picking, "Picking")
	need(p.Injector, "Injector")
	need(p.Debug, "Debug")
	if p.Script && !p.Injector {
		errs = append(errs, report.New(report.KindPluginSetup, "plugin Script requires Injector"))
	}
	if p.MaxTouchPointers < 0 {
		errs = append(errs, report.New(report.KindPluginSetup, "MaxTouchPointers must not be negative"))
	}
	return errors.Join(errs...)
}

// Build validates p and installs its systems on e in a fixed order:
// device input, injected input, the input receiver, the PointerMap rebuild,
// cameras, picking. Producers therefore publish before the receiver drains,
// and readers of the map and of hits see this tick's state.
func Build(e *ecs.ECS, p Plugins) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.Pointers {
		return nil
	}

	if _, err := SpawnPointer(e.World, MousePointer); err != nil && !errors.Is(err, report.ErrDuplicatePointer) {
		return report.Wrap(err, report.KindPluginSetup, "spawn mouse pointer")
	}
	GetPointerMap(e.World).rebuild(e.World)

	if p.EbitenInput {
		e.AddSystem(NewEbitenInput(p.MaxTouchPointers))
	}
	if p.Script {
		e.AddSystem(StepScripts)
	}
	if p.Injector {
		e.AddSystem(StepInjectors)
	}
	e.AddSystem(ReceivePointerInputs)
	e.AddSystem(UpdatePointerMap)
	if p.Cameras {
		e.AddSystem(UpdateCameras)
	}
	if p.Picking {
		e.AddSystem(UpdatePointerHits)
	}
	if p.Debug {
		e.AddRenderer(LayerDefault, DrawPointerDebug)
	}

	logger.Debug().
		Bool("ebiten_input", p.EbitenInput).
		Bool("picking", p.Picking).
		Bool("injector", p.Injector).
		Bool("script", p.Script).
		Bool("debug", p.Debug).
		Msg("pointer plugins built")
	return nil
}
