package term

import (
	"fmt"
	"strconv"

	"predprey/internal/core"

	"github.com/logrusorgru/aurora"
)

// Settings is the keyboard-driven parameter list of the console.
type Settings struct {
	sim      core.Sim
	controls []core.ParameterControl
	selected int
}

// NewSettings lists the controls sim exposes.
func NewSettings(sim core.Sim) *Settings {
	s := &Settings{sim: sim}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		s.controls = p.ParameterControls()
	}
	return s
}

// Selected returns the index of the highlighted control.
func (s *Settings) Selected() int { return s.selected }

// Select moves the highlight by delta, wrapping around the list.
func (s *Settings) Select(delta int) {
	n := len(s.controls)
	if n == 0 {
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
}

// Adjust nudges the highlighted control by direction steps.
func (s *Settings) Adjust(direction int) bool {
	if len(s.controls) == 0 {
		return false
	}
	ctrl := s.controls[s.selected]
	value, ok := s.value(ctrl)
	if !ok {
		return false
	}
	return core.ApplyControl(s.sim, ctrl, ctrl.Nudge(value, direction))
}

// Lines renders one row per control with the selection marked.
func (s *Settings) Lines(au aurora.Aurora) []string {
	lines := make([]string, 0, len(s.controls))
	for i, ctrl := range s.controls {
		value, _ := s.value(ctrl)
		label := ctrl.Label
		if ctrl.Deferred {
			label += "*"
		}
		line := fmt.Sprintf(" %-20s %s", label, formatControl(ctrl, value))
		if i == s.selected {
			line = au.Bold(">" + line[1:]).String()
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Settings) value(ctrl core.ParameterControl) (float64, bool) {
	p, ok := s.sim.(core.ParameterProvider)
	if !ok {
		return 0, false
	}
	param, ok := p.Parameters().Lookup(ctrl.Key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(param.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatControl(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
