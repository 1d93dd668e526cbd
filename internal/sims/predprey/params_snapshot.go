package predprey

import (
	"strconv"

	"predprey/internal/core"
)

// Parameters reports the current configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam(KeyWidth, "Width", w.cfg.Width),
				intParam(KeyHeight, "Height", w.cfg.Height),
				int64Param(KeySeed, "Seed", w.seed),
				intParam(KeyHistoryLimit, "History length", w.history.Limit()),
			},
		},
		{
			Name:    "Population",
			Summary: "Applied on the next reset.",
			Params: []core.Parameter{
				intParam(KeyInitialRabbits, "Initial rabbits", params.InitialRabbits),
				intParam(KeyInitialWolves, "Initial wolves", params.InitialWolves),
				floatParam(KeyInitialEnergy, "Initial wolf energy", params.InitialEnergy),
			},
		},
		{
			Name: "Dynamics",
			Params: []core.Parameter{
				floatParam(KeyReproductionRate, "Reproduction rate", params.ReproductionRate),
				floatParam(KeyEnergyLoss, "Energy loss", params.EnergyLoss),
				floatParam(KeyEnergyGain, "Energy gain", params.EnergyGain),
				intParam(KeySpeed, "Speed", params.Speed),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the live-adjustable parameters with their ranges.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		floatControl(KeyReproductionRate, "Reproduction rate", 0.01, ReproductionRateRange),
		floatControl(KeyEnergyLoss, "Energy loss", 0.05, EnergyLossRange),
		floatControl(KeyEnergyGain, "Energy gain", 0.1, EnergyGainRange),
		intControl(KeySpeed, "Speed", SpeedRange, false),
		intControl(KeyInitialRabbits, "Initial rabbits", InitialRabbitsRange, true),
		intControl(KeyInitialWolves, "Initial wolves", InitialWolvesRange, true),
	}
}

// SetFloatParameter updates a floating point parameter, clamping it to its
// range. Unknown keys report false.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case KeyReproductionRate:
		w.cfg.Params.ReproductionRate = ReproductionRateRange.Clamp(value)
	case KeyEnergyLoss:
		w.cfg.Params.EnergyLoss = EnergyLossRange.Clamp(value)
	case KeyEnergyGain:
		w.cfg.Params.EnergyGain = EnergyGainRange.Clamp(value)
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer parameter, clamping it to its range.
// Initial population sizes take effect on the next Reset.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case KeySpeed:
		w.cfg.Params.Speed = int(SpeedRange.Clamp(float64(value)))
	case KeyInitialRabbits:
		w.cfg.Params.InitialRabbits = int(InitialRabbitsRange.Clamp(float64(value)))
	case KeyInitialWolves:
		w.cfg.Params.InitialWolves = int(InitialWolvesRange.Clamp(float64(value)))
	default:
		return false
	}
	return true
}

func floatControl(key, label string, step float64, r Range) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   step,
		Min:    r.Min,
		Max:    r.Max,
		HasMin: true,
		HasMax: true,
	}
}

func intControl(key, label string, r Range, deferred bool) core.ParameterControl {
	return core.ParameterControl{
		Key:      key,
		Label:    label,
		Type:     core.ParamTypeInt,
		Step:     1,
		Min:      r.Min,
		Max:      r.Max,
		HasMin:   true,
		HasMax:   true,
		Deferred: deferred,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
