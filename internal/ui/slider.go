package ui

import (
	"image"
	"math"
	"strconv"

	"predprey/internal/core"
)

// Slider maps horizontal positions on a track to parameter values.
type Slider struct {
	Control core.ParameterControl
	Track   image.Rectangle
	Value   float64

	dragging bool
}

// NewSlider builds a slider for ctrl laid out on track.
func NewSlider(ctrl core.ParameterControl, track image.Rectangle, value float64) *Slider {
	return &Slider{Control: ctrl, Track: track, Value: ctrl.Clamp(value)}
}

// ValueAt converts an x coordinate into a snapped, clamped value.
func (s *Slider) ValueAt(x int) float64 {
	lo, hi := s.Control.Min, s.Control.Max
	if s.Track.Dx() <= 0 || hi <= lo {
		return s.Control.Clamp(lo)
	}
	frac := float64(x-s.Track.Min.X) / float64(s.Track.Dx())
	frac = math.Min(math.Max(frac, 0), 1)
	v := lo + frac*(hi-lo)
	if step := s.Control.Step; step > 0 {
		v = lo + math.Round((v-lo)/step)*step
	}
	// Trim float noise from repeated step multiples.
	v = math.Round(v*1e6) / 1e6
	return s.Control.Clamp(v)
}

// KnobX returns the x coordinate of the knob for the current value.
func (s *Slider) KnobX() int {
	lo, hi := s.Control.Min, s.Control.Max
	if hi <= lo {
		return s.Track.Min.X
	}
	frac := (s.Value - lo) / (hi - lo)
	frac = math.Min(math.Max(frac, 0), 1)
	return s.Track.Min.X + int(math.Round(frac*float64(s.Track.Dx())))
}

// Hit reports whether (x, y) grabs the slider: anywhere on the track or
// within knob reach of it.
func (s *Slider) Hit(x, y int) bool {
	grab := s.Track.Inset(-knobRadius)
	return image.Pt(x, y).In(grab)
}

// Press starts a drag when (x, y) hits the slider. It reports whether the
// value changed.
func (s *Slider) Press(x, y int) bool {
	if !s.Hit(x, y) {
		return false
	}
	s.dragging = true
	return s.Drag(x)
}

// Drag moves an active drag to x. It reports whether the value changed.
func (s *Slider) Drag(x int) bool {
	if !s.dragging {
		return false
	}
	v := s.ValueAt(x)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// Release ends a drag.
func (s *Slider) Release() { s.dragging = false }

// Dragging reports whether a drag is in progress.
func (s *Slider) Dragging() bool { return s.dragging }

// Text formats the current value for display.
func (s *Slider) Text() string { return FormatValue(s.Control, s.Value) }

// FormatValue renders v with a precision matching the control step.
func FormatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
