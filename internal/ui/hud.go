//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"predprey/internal/control"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor      = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor       = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimTextColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor     = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffColor  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonTextColor = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonDimColor  = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	rabbitColor     = color.RGBA{R: 222, G: 214, B: 190, A: 255}
	wolfColor       = color.RGBA{R: 214, G: 92, B: 72, A: 255}
)

// HUD renders the control panel to the right of the grid: command buttons,
// run statistics and the population graph.
type HUD struct {
	ctrl   *control.Controller
	layout Layout
	graph  *Graph
}

// NewHUD constructs a HUD for the controller using the given layout.
func NewHUD(ctrl *control.Controller, layout Layout) *HUD {
	return &HUD{ctrl: ctrl, layout: layout, graph: NewGraph(layout.Graph)}
}

// Update hit-tests button clicks and returns the command to dispatch.
func (h *HUD) Update() (control.Command, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return control.CommandNone, false
	}
	mx, my := ebiten.CursorPosition()
	cmd, ok := HitTest(h.layout.Buttons, mx, my)
	if !ok || !h.enabled(cmd) {
		return control.CommandNone, false
	}
	return cmd, true
}

// Draw paints the panel.
func (h *HUD) Draw(screen *ebiten.Image) {
	p := h.layout.Panel
	vector.DrawFilledRect(screen, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), panelColor, false)

	for _, b := range h.layout.Buttons {
		drawButton(screen, b.Rect, b.Label, h.enabled(b.Command))
	}
	h.drawStats(screen)
	h.graph.Draw(screen, h.ctrl.Sim())
}

func (h *HUD) enabled(cmd control.Command) bool {
	switch cmd {
	case control.CommandStart:
		return !h.ctrl.Running()
	case control.CommandPause:
		return h.ctrl.Running()
	case control.CommandStep:
		return !h.ctrl.Running()
	default:
		return true
	}
}

func (h *HUD) drawStats(screen *ebiten.Image) {
	face := basicfont.Face7x13
	lines := StatusLines(h.ctrl.Status(), h.ctrl.Sim())
	x, y := h.layout.Stats.X, h.layout.Stats.Y
	for i, line := range lines {
		var col color.Color = textColor
		switch {
		case i == 1:
			col = rabbitColor
		case i == 2:
			col = wolfColor
		case i == len(lines)-1:
			col = dimTextColor
		}
		text.Draw(screen, line, face, x, y+i*lineHeight, col)
	}
}

func drawButton(screen *ebiten.Image, rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, buttonTextColor
	if !enabled {
		bg, fg = buttonOffColor, buttonDimColor
	}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(screen, label, face, x, y, fg)
}
