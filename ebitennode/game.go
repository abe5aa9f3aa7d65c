package ebitennode

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/pixelnode"
)

// RunConfig configures the window Run opens.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS overlays the actual TPS and FPS.
	ShowFPS bool
	// FitItem resizes the item to the screen every frame.
	FitItem bool
	// TicksPerSecond sets Ebitengine's update rate; Update ticks the item
	// once per call. Zero uses the item driver's configured period.
	TicksPerSecond int
}

// Game adapts an item to ebiten.Game: Update ticks the animation and Draw
// paints it. The animation runs on Ebitengine's update loop, so no extra
// goroutine is involved.
type Game struct {
	Item *pixelnode.Item
	// Tweens are advanced by 1/TPS seconds every Update and dropped when
	// done.
	Tweens []*pixelnode.TweenGroup
	// OnUpdate, if set, runs after each tick. Returning ebiten.Termination
	// ends the game.
	OnUpdate func() error

	cfg       RunConfig
	ctx       *Context
	loggedGPU bool
	released  bool
}

// NewGame returns a Game for it.
func NewGame(it *pixelnode.Item, cfg RunConfig) *Game {
	return &Game{Item: it, cfg: cfg, ctx: NewContext(nil)}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.release()
		return ebiten.Termination
	}
	err := g.step(1 / float32(ebiten.TPS()))
	if err != nil {
		g.release()
	}
	return err
}

// step is one Update without the window checks.
func (g *Game) step(dt float32) error {
	g.Item.Tick()

	live := g.Tweens[:0]
	for _, tw := range g.Tweens {
		tw.Update(dt)
		if !tw.Done {
			live = append(live, tw)
		}
	}
	clear(g.Tweens[len(live):])
	g.Tweens = live

	if g.OnUpdate != nil {
		return g.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.loggedGPU {
		var info ebiten.DebugInfo
		ebiten.ReadDebugInfo(&info)
		pixelnode.Logger().Info("ebitennode: graphics library", "library", info.GraphicsLibrary)
		g.loggedGPU = true
	}

	if g.cfg.FitItem {
		b := screen.Bounds()
		g.Item.SetSize(float64(b.Dx()), float64(b.Dy()))
	}

	g.ctx.Screen = screen
	if err := g.Item.Paint(g.ctx, pixelnode.DefaultRenderState(g.ctx)); err != nil {
		pixelnode.Logger().Warn("ebitennode: paint failed", "err", err)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The screen matches the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *Game) release() {
	if g.released {
		return
	}
	g.released = true
	if err := g.Item.Release(g.ctx); err != nil {
		pixelnode.Logger().Warn("ebitennode: release failed", "err", err)
	}
}

// Run opens a window for it and runs until the window is closed.
func Run(it *pixelnode.Item, cfg RunConfig) error {
	return RunGame(NewGame(it, cfg))
}

// RunGame opens a window configured by the game's RunConfig and runs g.
func RunGame(g *Game) error {
	cfg := g.cfg
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = pixelnode.DefaultWidth, pixelnode.DefaultHeight
	}
	tps := cfg.TicksPerSecond
	if tps <= 0 {
		tps = tpsFor(g.Item.Driver().Interval().Milliseconds())
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(tps)

	err := ebiten.RunGame(g)
	g.release()
	if err != nil {
		return fmt.Errorf("ebitennode: run: %w", err)
	}
	return nil
}

// tpsFor converts a tick period to Ebitengine's integer update rate.
func tpsFor(periodMillis int64) int {
	if periodMillis <= 0 {
		return ebiten.DefaultTPS
	}
	return max(1, int(1000/periodMillis))
}
