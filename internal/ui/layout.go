package ui

import (
	"image"

	"predprey/internal/control"
	"predprey/internal/core"
)

const (
	// PanelWidth is the width of the control panel right of the grid.
	PanelWidth = 280

	panelPadding   = 12
	buttonHeight   = 24
	buttonGap      = 6
	lineHeight     = 16
	statsLines     = 9
	minPanelHeight = 460
	graphHeight    = 180

	menuWidth     = 360
	menuHeight    = 380
	tabHeight     = 26
	closeWidth    = 100
	sliderSpacing = 48
	sliderTrackH  = 6
	knobRadius    = 7
)

// Layout positions every region of the window.
type Layout struct {
	Grid    image.Rectangle
	Panel   image.Rectangle
	Buttons []Button
	Stats   image.Point
	Graph   image.Rectangle
	Menu    image.Rectangle
	Tabs    []image.Rectangle
	Close   image.Rectangle
}

// NewLayout arranges the window around a grid of the given size drawn at
// scale pixels per cell.
func NewLayout(size core.Size, scale int) Layout {
	if scale <= 0 {
		scale = 1
	}
	gridW := size.W * scale
	gridH := size.H * scale
	height := max(gridH, minPanelHeight)

	l := Layout{
		Grid:  image.Rect(0, (height-gridH)/2, gridW, (height-gridH)/2+gridH),
		Panel: image.Rect(gridW, 0, gridW+PanelWidth, height),
	}

	labels := []struct {
		label string
		cmd   control.Command
	}{
		{"Start", control.CommandStart},
		{"Pause", control.CommandPause},
		{"Step", control.CommandStep},
		{"Reset", control.CommandReset},
		{"Menu", control.CommandToggleMenu},
	}
	inner := PanelWidth - 2*panelPadding
	bw := (inner - (len(labels)-1)*buttonGap) / len(labels)
	top := l.Panel.Min.Y + panelPadding
	for i, b := range labels {
		x := l.Panel.Min.X + panelPadding + i*(bw+buttonGap)
		l.Buttons = append(l.Buttons, Button{
			Label:   b.label,
			Command: b.cmd,
			Rect:    image.Rect(x, top, x+bw, top+buttonHeight),
		})
	}

	l.Stats = image.Pt(l.Panel.Min.X+panelPadding, top+buttonHeight+panelPadding+lineHeight)
	graphTop := l.Stats.Y + statsLines*lineHeight
	l.Graph = image.Rect(l.Panel.Min.X+panelPadding, graphTop, l.Panel.Max.X-panelPadding, min(graphTop+graphHeight, height-panelPadding))

	totalW := l.Panel.Max.X
	mw := min(menuWidth, totalW-2*panelPadding)
	mh := min(menuHeight, height-2*panelPadding)
	mx := (totalW - mw) / 2
	my := (height - mh) / 2
	l.Menu = image.Rect(mx, my, mx+mw, my+mh)
	half := mw / 2
	l.Tabs = []image.Rectangle{
		image.Rect(mx, my, mx+half, my+tabHeight),
		image.Rect(mx+half, my, mx+mw, my+tabHeight),
	}
	cx := mx + (mw-closeWidth)/2
	cy := my + mh - panelPadding - buttonHeight
	l.Close = image.Rect(cx, cy, cx+closeWidth, cy+buttonHeight)
	return l
}

// MenuCommand resolves a click while the menu is open. The close button and
// the panel's Menu button toggle it. Other clicks yield no command.
func (l Layout) MenuCommand(x, y int) (control.Command, bool) {
	p := image.Pt(x, y)
	if p.In(l.Close) {
		return control.CommandToggleMenu, true
	}
	if p.In(l.Menu) {
		return control.CommandNone, false
	}
	if cmd, ok := HitTest(l.Buttons, x, y); ok && cmd == control.CommandToggleMenu {
		return cmd, true
	}
	return control.CommandNone, false
}

// Screen returns the logical window size.
func (l Layout) Screen() (int, int) {
	return l.Panel.Max.X, l.Panel.Max.Y
}

// SliderTrack returns the track rectangle of the i-th slider in the menu.
func (l Layout) SliderTrack(i int) image.Rectangle {
	top := l.Menu.Min.Y + tabHeight + panelPadding + lineHeight + i*sliderSpacing + lineHeight/2
	left := l.Menu.Min.X + panelPadding + knobRadius
	right := l.Menu.Max.X - panelPadding - knobRadius
	return image.Rect(left, top, right, top+sliderTrackH)
}

// Button is a clickable region mapped to a command.
type Button struct {
	Label   string
	Command control.Command
	Rect    image.Rectangle
}

// HitTest returns the command of the button containing (x, y).
func HitTest(buttons []Button, x, y int) (control.Command, bool) {
	p := image.Pt(x, y)
	for _, b := range buttons {
		if p.In(b.Rect) {
			return b.Command, true
		}
	}
	return control.CommandNone, false
}
