//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"predprey/internal/control"
	"predprey/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	menuBackdrop  = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	menuColor     = color.RGBA{R: 28, G: 30, B: 36, A: 245}
	tabColor      = color.RGBA{R: 40, G: 42, B: 50, A: 255}
	tabActive     = color.RGBA{R: 70, G: 74, B: 88, A: 255}
	trackColor    = color.RGBA{R: 70, G: 72, B: 82, A: 255}
	knobColor     = color.RGBA{R: 230, G: 200, B: 120, A: 255}
	knobDragColor = color.RGBA{R: 255, G: 230, B: 150, A: 255}
)

type menuTab int

const (
	tabSettings menuTab = iota
	tabHelp
)

var tabLabels = []string{"Settings", "Help"}

var helpLines = []string{
	"Rabbits breed into a free neighbour.",
	"Wolves eat a neighbouring rabbit or",
	"lose energy and starve at zero.",
	"A well fed male next to a female",
	"produces a pup in a free cell.",
	"",
	"Space   pause / resume",
	"Enter   start",
	"N       single step",
	"R       reset with the same seed",
	"S       reset with a new seed",
	"E       wolf energy overlay",
	"M, F1   this menu (Esc closes it)",
	"Q, Esc  quit",
	"",
	"Sliders marked * apply on reset.",
}

// Menu is the modal settings/help overlay.
type Menu struct {
	sim     core.Sim
	layout  Layout
	tab     menuTab
	sliders []*Slider
}

// NewMenu builds one slider per parameter control the simulation exposes.
func NewMenu(sim core.Sim, layout Layout) *Menu {
	m := &Menu{sim: sim, layout: layout}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			m.sliders = append(m.sliders, NewSlider(ctrl, layout.SliderTrack(i), ctrl.Min))
		}
	}
	m.Sync()
	return m
}

// Sync reloads slider values from the simulation's parameter snapshot.
func (m *Menu) Sync() {
	provider, ok := m.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	snapshot := provider.Parameters()
	for _, s := range m.sliders {
		param, ok := snapshot.Lookup(s.Control.Key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		s.Value = s.Control.Clamp(v)
	}
}

// Update handles tab switching and slider drags. Changed values are applied
// to the simulation immediately. A click on the close button reports the
// command that hides the menu.
func (m *Menu) Update() (control.Command, bool) {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if cmd, ok := m.layout.MenuCommand(mx, my); ok {
			return cmd, true
		}
		p := image.Pt(mx, my)
		for i, tab := range m.layout.Tabs {
			if p.In(tab) {
				m.tab = menuTab(i)
				return control.CommandNone, false
			}
		}
		if m.tab == tabSettings {
			for _, s := range m.sliders {
				if s.Press(mx, my) {
					m.apply(s)
				}
			}
		}
		return control.CommandNone, false
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		for _, s := range m.sliders {
			if s.Drag(mx) {
				m.apply(s)
			}
		}
		return control.CommandNone, false
	}
	for _, s := range m.sliders {
		s.Release()
	}
	return control.CommandNone, false
}

func (m *Menu) apply(s *Slider) {
	core.ApplyControl(m.sim, s.Control, s.Value)
}

// Draw renders the menu above everything else.
func (m *Menu) Draw(screen *ebiten.Image) {
	w, h := m.layout.Screen()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), menuBackdrop, false)

	r := m.layout.Menu
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), menuColor, false)

	face := basicfont.Face7x13
	for i, tab := range m.layout.Tabs {
		bg := tabColor
		if menuTab(i) == m.tab {
			bg = tabActive
		}
		vector.DrawFilledRect(screen, float32(tab.Min.X), float32(tab.Min.Y), float32(tab.Dx()), float32(tab.Dy()), bg, false)
		bounds := text.BoundString(face, tabLabels[i])
		text.Draw(screen, tabLabels[i], face, tab.Min.X+(tab.Dx()-bounds.Dx())/2, tab.Min.Y+(tab.Dy()+bounds.Dy())/2, textColor)
	}

	switch m.tab {
	case tabSettings:
		m.drawSettings(screen)
	case tabHelp:
		x := r.Min.X + panelPadding
		y := r.Min.Y + tabHeight + panelPadding + lineHeight
		for i, line := range helpLines {
			text.Draw(screen, line, face, x, y+i*lineHeight, textColor)
		}
	}
	drawButton(screen, m.layout.Close, "Close", true)
}

func (m *Menu) drawSettings(screen *ebiten.Image) {
	face := basicfont.Face7x13
	for _, s := range m.sliders {
		track := s.Track
		label := s.Control.Label
		if s.Control.Deferred {
			label += " *"
		}
		text.Draw(screen, label, face, track.Min.X, track.Min.Y-lineHeight/2, textColor)
		value := s.Text()
		bounds := text.BoundString(face, value)
		text.Draw(screen, value, face, track.Max.X-bounds.Dx(), track.Min.Y-lineHeight/2, dimTextColor)

		vector.DrawFilledRect(screen, float32(track.Min.X), float32(track.Min.Y), float32(track.Dx()), float32(track.Dy()), trackColor, false)
		knob := knobColor
		if s.Dragging() {
			knob = knobDragColor
		}
		cy := float32(track.Min.Y) + float32(track.Dy())/2
		vector.DrawFilledCircle(screen, float32(s.KnobX()), cy, knobRadius, knob, true)
	}
}
