//go:build ebiten

package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"cellca/internal/core"
	"cellca/internal/render"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	clock   *core.FixedStep
	log     *zap.Logger

	scale    int
	paused   bool
	tickOnce bool
	hud      bool
	seed     int64
}

// New constructs a Game for the provided simulation. Generations advance at
// tps independently of the frame rate.
func New(sim core.Sim, scale, tps int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, render.For(sim.Name())),
		clock:   core.NewFixedStep(tps),
		log:     core.Logger().With(zap.String("sim", sim.Name())),
		scale:   scale,
		hud:     true,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) error {
	g.seed = seed
	g.tickOnce = false
	g.log.Info("reset", zap.Int64("seed", seed))
	return g.sim.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}

	due := g.clock.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			g.log.Error("step failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	if !g.hud {
		return
	}
	status := "running"
	if g.paused {
		status = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  gen %d  %s  seed %d\n[space] pause  [n] step  [r] reset  [s] reseed  [h] hud",
		g.sim.Name(), g.sim.Generation(), status, g.seed))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
