//go:build ebiten

package ui

import (
	"image/color"

	"predprey/internal/core"
	"predprey/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const energyAlpha = 170.0

var energyTint = color.RGBA{R: 255, G: 196, B: 64, A: 0}

// Overlay draws the wolf energy field on top of the grid. E toggles it.
type Overlay struct {
	sim     core.Sim
	layout  Layout
	scale   int
	painter *render.GridPainter
	visible bool
}

// NewOverlay constructs an overlay for sim. It stays hidden until toggled.
func NewOverlay(sim core.Sim, layout Layout, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:     sim,
		layout:  layout,
		scale:   scale,
		painter: render.NewGridPainter(size.W, size.H),
	}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		o.visible = !o.visible
	}
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool { return o.visible }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	provider, ok := o.sim.(core.EnergyProvider)
	if !ok {
		return
	}
	origin := o.layout.Grid.Min
	o.painter.BlitMask(screen, provider.EnergyMask(), energyTint, energyAlpha, o.scale, float64(origin.X), float64(origin.Y))
}
