// Pointerdemo tracks the mouse, touches, and an optional scripted pointer
// over a row of pickable boxes. Boxes under any pointer are highlighted and
// turn solid while a pointer over them holds the primary button.
//
// Settings come from PICKING_* environment variables; set
// PICKING_SCRIPT_PATH to a JSON pointer script to drive a custom pointer.
package main

import (
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/phanxgames/picking"
	"github.com/phanxgames/picking/report"
)

const boxSize = 80

var (
	clearColor = color.RGBA{R: 35, G: 30, B: 45, A: 255}   // dark purple
	idleColor  = color.RGBA{R: 77, G: 179, B: 230, A: 255} // blue
	hoverColor = color.RGBA{R: 255, G: 179, B: 51, A: 255} // orange
	heldColor  = color.RGBA{R: 230, G: 77, B: 77, A: 255}  // red
)

type demo struct {
	world donburi.World
	boxes []donburi.Entity
}

func (d *demo) draw(screen *ebiten.Image) {
	hovered, held := pointerState(d.world)
	for _, e := range d.boxes {
		p := picking.PickableComponent.Get(d.world.Entry(e))
		c := idleColor
		switch {
		case held[e]:
			c = heldColor
		case hovered[e]:
			c = hoverColor
		}
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), boxSize, boxSize, c, false)
	}
}

// pointerState returns the boxes nearest to some pointer, and those whose
// pointer is holding the primary button.
func pointerState(world donburi.World) (hovered, held map[donburi.Entity]bool) {
	hovered = make(map[donburi.Entity]bool)
	held = make(map[donburi.Entity]bool)
	picking.InteractionComponent.Each(world, func(entry *donburi.Entry) {
		hit, ok := picking.InteractionComponent.Get(entry).Nearest()
		if !ok {
			return
		}
		hovered[hit.Entity] = true
		if picking.PressComponent.Get(entry).IsPrimaryPressed() {
			held[hit.Entity] = true
		}
	})
	return hovered, held
}

func main() {
	cfg, err := picking.LoadConfig()
	logger := picking.NewLogger(cfg)
	reporter := report.NewReporter(logger)
	if err != nil {
		reporter.Emit(report.From(err))
		os.Exit(1)
	}
	picking.SetLogger(logger)

	g, err := newGame(cfg)
	if err != nil {
		reporter.Emit(report.From(err))
		os.Exit(1)
	}
	if err := picking.Run(g, cfg); err != nil {
		reporter.Emit(report.From(err))
		os.Exit(1)
	}
}

func newGame(cfg picking.Config) (*picking.Game, error) {
	world := donburi.NewWorld()
	e := ecs.NewECS(world)

	plugins := picking.DefaultPlugins().WithConfig(cfg)
	plugins.Debug = true
	if err := picking.Build(e, plugins); err != nil {
		return nil, err
	}

	window := picking.SpawnWindow(world, picking.Window{
		Title:          cfg.WindowTitle,
		PhysicalWidth:  cfg.WindowWidth,
		PhysicalHeight: cfg.WindowHeight,
		ScaleFactor:    1,
	}, true)

	cam := picking.NewCamera(picking.PrimaryWindowTarget())
	cam.X = float64(cfg.WindowWidth) / 2
	cam.Y = float64(cfg.WindowHeight) / 2
	picking.SpawnCamera(world, cam)

	d := &demo{world: world}
	for i := range 4 {
		x := float64(80 + i*(boxSize+40))
		p := picking.NewPickable(picking.HitRect{Width: boxSize, Height: boxSize}, x, 200, float64(i))
		d.boxes = append(d.boxes, picking.SpawnPickable(world, p).Entity())
	}

	if cfg.ScriptPath != "" {
		if err := attachScript(world, cfg.ScriptPath, picking.WindowTarget(window.Entity())); err != nil {
			return nil, err
		}
	}

	g := picking.NewGame(e, cfg)
	g.ClearColor = clearColor
	g.OnDraw = d.draw
	return g, nil
}

func attachScript(world donburi.World, path string, target picking.RenderTarget) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return report.Wrapf(err, report.KindExternal, "read script %s", path)
	}
	runner, err := picking.LoadPointerScript(data)
	if err != nil {
		return err
	}
	inj, err := picking.NewInjector(world, target)
	if err != nil {
		return err
	}
	runner.Attach(world, inj)
	picking.Logger().Info().Str("path", path).Str("pointer", inj.ID().String()).Msg("pointer script attached")
	return nil
}
