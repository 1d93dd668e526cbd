package core

import "math"

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, group := range s.Groups {
		for _, param := range group.Params {
			if param.Key == key {
				return param, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider exposes a snapshot of the current tunables.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool

	// Deferred controls only take effect on the next reset.
	Deferred bool
}

// Clamp limits v to the control bounds and snaps integer controls.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	if c.Type == ParamTypeInt {
		v = math.Round(v)
	}
	return v
}

// Nudge moves v by direction steps and clamps the result.
func (c ParameterControl) Nudge(v float64, direction int) float64 {
	step := c.Step
	if step <= 0 {
		if c.Type == ParamTypeInt {
			step = 1
		} else {
			step = 0.05
		}
	}
	return c.Clamp(v + float64(direction)*step)
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter allows HUD interactions to update floating point
// parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// ApplyControl routes a value to the setter matching the control type.
func ApplyControl(sim Sim, ctrl ParameterControl, value float64) bool {
	value = ctrl.Clamp(value)
	switch ctrl.Type {
	case ParamTypeInt:
		if setter, ok := sim.(IntParameterSetter); ok {
			return setter.SetIntParameter(ctrl.Key, int(value))
		}
	case ParamTypeFloat:
		if setter, ok := sim.(FloatParameterSetter); ok {
			return setter.SetFloatParameter(ctrl.Key, value)
		}
	}
	return false
}
