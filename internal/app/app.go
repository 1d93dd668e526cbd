//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"time"

	"predprey/internal/control"
	"predprey/internal/core"
	"predprey/internal/render"
	"predprey/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var backgroundColor = color.RGBA{R: 10, G: 10, B: 12, A: 255}

var keyCommands = []struct {
	keys []ebiten.Key
	cmd  control.Command
}{
	{[]ebiten.Key{ebiten.KeySpace}, control.CommandTogglePause},
	{[]ebiten.Key{ebiten.KeyEnter}, control.CommandStart},
	{[]ebiten.Key{ebiten.KeyN}, control.CommandStep},
	{[]ebiten.Key{ebiten.KeyR}, control.CommandReset},
	{[]ebiten.Key{ebiten.KeyS}, control.CommandReseed},
	{[]ebiten.Key{ebiten.KeyM, ebiten.KeyF1}, control.CommandToggleMenu},
	{[]ebiten.Key{ebiten.KeyQ, ebiten.KeyEscape}, control.CommandQuit},
}

// Game adapts a controlled simulation to the ebiten.Game interface.
type Game struct {
	ctrl    *control.Controller
	sim     core.Sim
	logger  *log.Logger
	layout  ui.Layout
	painter *render.GridPainter
	hud     *ui.HUD
	menu    *ui.Menu
	overlay *ui.Overlay

	palette []color.RGBA
	scale   int
}

// New constructs a Game around ctrl, drawing each cell scale pixels wide.
func New(ctrl *control.Controller, scale int, logger *log.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	sim := ctrl.Sim()
	size := sim.Size()
	layout := ui.NewLayout(size, scale)

	g := &Game{
		ctrl:    ctrl,
		sim:     sim,
		logger:  logger,
		layout:  layout,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(ctrl, layout),
		menu:    ui.NewMenu(sim, layout),
		overlay: ui.NewOverlay(sim, layout, scale),
		scale:   scale,
	}
	if p, ok := sim.(core.PaletteProvider); ok {
		g.palette = p.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// WindowSize returns the size of the window in pixels.
func (g *Game) WindowSize() (int, int) { return g.layout.Screen() }

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if err := g.handleKeys(); err != nil {
		return err
	}

	var (
		cmd control.Command
		ok  bool
	)
	if g.ctrl.MenuOpen() {
		cmd, ok = g.menu.Update()
	} else {
		g.overlay.Update()
		cmd, ok = g.hud.Update()
	}
	if ok {
		if err := g.dispatch(cmd); err != nil {
			return err
		}
	}

	g.ctrl.Advance(time.Now())
	return nil
}

func (g *Game) handleKeys() error {
	for _, binding := range keyCommands {
		for _, key := range binding.keys {
			if !inpututil.IsKeyJustPressed(key) {
				continue
			}
			cmd, ok := keyAction(binding.cmd, key == ebiten.KeyEscape, g.ctrl.MenuOpen(), g.ctrl.Running())
			if !ok {
				continue
			}
			if err := g.dispatch(cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) dispatch(cmd control.Command) error {
	err := g.ctrl.Dispatch(cmd)
	switch {
	case errors.Is(err, control.ErrQuit):
		return ebiten.Termination
	case err != nil:
		g.logger.Error("command failed", "command", cmd, "err", err)
		return nil
	}
	if cmd == control.CommandToggleMenu && g.ctrl.MenuOpen() {
		g.menu.Sync()
	}
	return nil
}

// Draw renders the grid, overlays and panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	origin := g.layout.Grid.Min
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale, float64(origin.X), float64(origin.Y))
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
	if g.ctrl.MenuOpen() {
		g.menu.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Screen()
}
