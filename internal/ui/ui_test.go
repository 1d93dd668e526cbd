package ui

import (
	"image"
	"strings"
	"testing"

	"predprey/internal/control"
	"predprey/internal/core"
	"predprey/internal/sims/predprey"
)

func TestLayoutDefaultGrid(t *testing.T) {
	l := NewLayout(core.Size{W: 20, H: 20}, 24)

	if w, h := l.Screen(); w != 480+PanelWidth || h != 480 {
		t.Fatalf("unexpected screen %dx%d", w, h)
	}
	if l.Grid != image.Rect(0, 0, 480, 480) {
		t.Fatalf("unexpected grid rect %v", l.Grid)
	}
	if len(l.Buttons) != 5 {
		t.Fatalf("expected 5 buttons, got %d", len(l.Buttons))
	}
	for i, b := range l.Buttons {
		if !b.Rect.In(l.Panel) {
			t.Fatalf("button %q outside the panel", b.Label)
		}
		if i > 0 && b.Rect.Overlaps(l.Buttons[i-1].Rect) {
			t.Fatalf("buttons %d and %d overlap", i-1, i)
		}
	}
	if !l.Graph.In(l.Panel) || l.Graph.Empty() {
		t.Fatalf("graph %v must be a non-empty region of the panel %v", l.Graph, l.Panel)
	}
	if !l.Menu.In(image.Rect(0, 0, 480+PanelWidth, 480)) {
		t.Fatalf("menu %v must fit the screen", l.Menu)
	}
}

func TestLayoutSmallGridIsCentered(t *testing.T) {
	l := NewLayout(core.Size{W: 10, H: 10}, 10)
	_, h := l.Screen()
	if h != minPanelHeight {
		t.Fatalf("expected the panel to set the height, got %d", h)
	}
	if l.Grid.Min.Y != (minPanelHeight-100)/2 || l.Grid.Dy() != 100 {
		t.Fatalf("grid should be vertically centered, got %v", l.Grid)
	}
}

func TestHitTest(t *testing.T) {
	l := NewLayout(core.Size{W: 20, H: 20}, 24)
	for _, b := range l.Buttons {
		c := b.Rect.Min.Add(b.Rect.Size().Div(2))
		cmd, ok := HitTest(l.Buttons, c.X, c.Y)
		if !ok || cmd != b.Command {
			t.Fatalf("center of %q hit %v (%v)", b.Label, cmd, ok)
		}
	}
	if _, ok := HitTest(l.Buttons, 5, 5); ok {
		t.Fatal("grid clicks must not hit a button")
	}
	if l.Buttons[0].Command != control.CommandStart || l.Buttons[4].Command != control.CommandToggleMenu {
		t.Fatal("unexpected button order")
	}
}

func TestMenuCloseButton(t *testing.T) {
	l := NewLayout(core.Size{W: 20, H: 20}, 24)
	if l.Close.Empty() || !l.Close.In(l.Menu) {
		t.Fatalf("close button %v must sit inside the menu %v", l.Close, l.Menu)
	}
	for i := 0; i < 6; i++ {
		if l.Close.Overlaps(l.SliderTrack(i).Inset(-knobRadius)) {
			t.Fatalf("close button overlaps slider %d", i)
		}
	}
	for _, tab := range l.Tabs {
		if l.Close.Overlaps(tab) {
			t.Fatal("close button overlaps a tab")
		}
	}

	c := l.Close.Min.Add(l.Close.Size().Div(2))
	if cmd, ok := l.MenuCommand(c.X, c.Y); !ok || cmd != control.CommandToggleMenu {
		t.Fatalf("close click gave %v (%v)", cmd, ok)
	}
	menuButton := l.Buttons[4].Rect
	c = menuButton.Min.Add(menuButton.Size().Div(2))
	if cmd, ok := l.MenuCommand(c.X, c.Y); !ok || cmd != control.CommandToggleMenu {
		t.Fatalf("panel menu button gave %v (%v)", cmd, ok)
	}

	start := l.Buttons[0].Rect
	c = start.Min.Add(start.Size().Div(2))
	if _, ok := l.MenuCommand(c.X, c.Y); ok {
		t.Fatal("other panel buttons are inactive while the menu is open")
	}
	inside := l.SliderTrack(0).Min
	if _, ok := l.MenuCommand(inside.X, inside.Y); ok {
		t.Fatal("slider clicks belong to the menu")
	}
}

func TestStatusLinesShowLiveParameters(t *testing.T) {
	w := predprey.New(20, 20)
	w.SetFloatParameter(predprey.KeyReproductionRate, 0.3)
	w.SetFloatParameter(predprey.KeyEnergyLoss, 0.5)
	w.SetFloatParameter(predprey.KeyEnergyGain, 2)

	st := control.Status{Generation: 7, Running: true, Seed: 42, TPS: 6}
	lines := StatusLines(st, w)
	if len(lines) != statsLines {
		t.Fatalf("expected %d lines, got %d: %q", statsLines, len(lines), lines)
	}
	want := []string{"Generation    7", "Reproduction  0.3", "Energy loss   0.5", "Energy gain   2", "Speed         6 steps/s", "State         running", "Seed          42"}
	joined := strings.Join(lines, "\n")
	for _, s := range want {
		if !strings.Contains(joined, s) {
			t.Fatalf("missing %q in\n%s", s, joined)
		}
	}
}

func TestSliderFloatMapping(t *testing.T) {
	ctrl := core.ParameterControl{Key: "rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, Max: 0.5, HasMin: true, HasMax: true}
	s := NewSlider(ctrl, image.Rect(100, 10, 200, 16), 0.1)

	cases := map[int]float64{100: 0.01, 200: 0.5, 40: 0.01, 260: 0.5, 140: 0.21}
	for x, want := range cases {
		if got := s.ValueAt(x); got != want {
			t.Fatalf("ValueAt(%d) = %v, want %v", x, got, want)
		}
	}

	s.Value = 0.5
	if got := s.KnobX(); got != 200 {
		t.Fatalf("knob at max should sit at the track end, got %d", got)
	}
	s.Value = 0.01
	if got := s.KnobX(); got != 100 {
		t.Fatalf("knob at min should sit at the track start, got %d", got)
	}
	if s.Text() != "0.01" {
		t.Fatalf("unexpected text %q", s.Text())
	}
}

func TestSliderIntMapping(t *testing.T) {
	ctrl := core.ParameterControl{Key: "speed", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 20, HasMin: true, HasMax: true}
	s := NewSlider(ctrl, image.Rect(0, 0, 190, 6), 5)
	if got := s.ValueAt(100); got != 11 {
		t.Fatalf("ValueAt(100) = %v, want 11", got)
	}
	s.Value = 11
	if s.Text() != "11" {
		t.Fatalf("unexpected text %q", s.Text())
	}
}

func TestSliderDrag(t *testing.T) {
	ctrl := core.ParameterControl{Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 10, HasMin: true, HasMax: true}
	s := NewSlider(ctrl, image.Rect(0, 20, 100, 26), 0)

	if s.Press(50, 100) {
		t.Fatal("press far from the track must be ignored")
	}
	if s.Dragging() {
		t.Fatal("missed press must not start a drag")
	}
	if !s.Press(50, 22) || s.Value != 5 {
		t.Fatalf("press on the track should jump to 5, got %v", s.Value)
	}
	if !s.Drag(90) || s.Value != 9 {
		t.Fatalf("drag should move to 9, got %v", s.Value)
	}
	if s.Drag(91) {
		t.Fatal("drag within the same step must not report a change")
	}
	s.Release()
	if s.Drag(0) || s.Value != 9 {
		t.Fatal("released slider must ignore drags")
	}
}

func TestChartPoints(t *testing.T) {
	rect := image.Rect(0, 0, 100, 50)
	points := ChartPoints([]int{0, 5, 10}, 3, 10, rect)
	want := []ChartPoint{{0, 50}, {50, 25}, {100, 0}}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}

	partial := ChartPoints([]int{4}, 200, 4, rect)
	if len(partial) != 1 || partial[0] != (ChartPoint{0, 0}) {
		t.Fatalf("unexpected single-sample chart %+v", partial)
	}
	if ChartPoints(nil, 10, 10, rect) != nil {
		t.Fatal("empty series yields no points")
	}
	if got := SeriesPeak([]int{3, 9}, []int{4}); got != 9 {
		t.Fatalf("expected peak 9, got %d", got)
	}
	if got := SeriesPeak(); got != 1 {
		t.Fatalf("expected minimum peak 1, got %d", got)
	}
}
