package picking

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi/ecs"

	"github.com/phanxgames/picking/report"
)

// Game adapts an ECS to ebiten.Game. Update runs the ECS systems, Draw clears
// the screen, calls OnDraw, then runs the ECS renderers.
type Game struct {
	ECS *ecs.ECS
	// ClearColor fills the screen before drawing. Nil leaves it as is.
	ClearColor color.Color
	// OnDraw, when set, draws the game's own content below the renderers.
	OnDraw func(screen *ebiten.Image)
	// ScreenSize, when set, picks the logical screen size from the outside
	// size. Nil uses the outside size.
	ScreenSize func(outsideWidth, outsideHeight int) (int, int)

	showFPS  bool
	fpsImage *ebiten.Image
	fpsAge   int
}

// NewGame returns a Game driving e.
func NewGame(e *ecs.ECS, cfg Config) *Game {
	return &Game{ECS: e, showFPS: cfg.ShowFPS}
}

func (g *Game) Update() error {
	g.ECS.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.ClearColor != nil {
		screen.Fill(g.ClearColor)
	}
	if g.OnDraw != nil {
		g.OnDraw(screen)
	}
	g.ECS.Draw(screen)
	if g.showFPS {
		g.drawFPS(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if g.ScreenSize != nil {
		w, h = g.ScreenSize(outsideWidth, outsideHeight)
	}
	SetLayoutSize(g.ECS.World, w, h)
	return w, h
}

// drawFPS draws an FPS/TPS readout in the top right corner, refreshed about
// twice a second.
func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.fpsImage == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fpsImage = ebiten.NewImage(100, 32)
	}
	if g.fpsAge <= 0 {
		g.fpsAge = ebiten.TPS() / 2
		g.fpsImage.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fpsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	g.fpsAge--

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-g.fpsImage.Bounds().Dx()), 0)
	screen.DrawImage(g.fpsImage, op)
}

// Run opens a window configured by cfg and runs g until the window closes.
func Run(g *Game, cfg Config) error {
	ebiten.SetWindowTitle(cfg.WindowTitle)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.Info().
		Str("title", cfg.WindowTitle).
		Int("width", cfg.WindowWidth).
		Int("height", cfg.WindowHeight).
		Msg("starting game loop")
	if err := ebiten.RunGame(g); err != nil {
		return report.Wrap(err, report.KindExternal, "run game")
	}
	return nil
}
