package predprey

import (
	"errors"
	"fmt"
	"strconv"
)

// Params holds the tunable rates and population sizes of the automaton.
type Params struct {
	ReproductionRate float64
	EnergyLoss       float64
	EnergyGain       float64
	Speed            int

	InitialRabbits int
	InitialWolves  int
	InitialEnergy  float64
}

// Config controls the world dimensions, seeding and parameters.
type Config struct {
	Width  int
	Height int

	Seed         int64
	HistoryLimit int

	Params Params
}

// Range is an inclusive interval of accepted values.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 { return min(max(v, r.Min), r.Max) }

// Adjustable ranges for the live parameters.
var (
	ReproductionRateRange = Range{Min: 0.01, Max: 0.5}
	EnergyLossRange       = Range{Min: 0.05, Max: 1.0}
	EnergyGainRange       = Range{Min: 0.5, Max: 2.0}
	SpeedRange            = Range{Min: 1, Max: 20}
	InitialRabbitsRange   = Range{Min: 5, Max: 100}
	InitialWolvesRange    = Range{Min: 2, Max: 50}
)

// DefaultHistoryLimit is the number of population samples kept per series.
const DefaultHistoryLimit = 200

// Parameter keys shared by the snapshot, the setters and Config.Set.
const (
	KeyWidth            = "w"
	KeyHeight           = "h"
	KeySeed             = "seed"
	KeyHistoryLimit     = "history_limit"
	KeyReproductionRate = "reproduction_rate"
	KeyEnergyLoss       = "energy_loss"
	KeyEnergyGain       = "energy_gain"
	KeySpeed            = "speed"
	KeyInitialRabbits   = "initial_rabbits"
	KeyInitialWolves    = "initial_wolves"
	KeyInitialEnergy    = "initial_energy"
)

// ErrUnknownKey is returned by Config.Set for keys it does not recognise.
var ErrUnknownKey = errors.New("unknown parameter")

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        20,
		Height:       20,
		Seed:         1,
		HistoryLimit: DefaultHistoryLimit,
		Params: Params{
			ReproductionRate: 0.1,
			EnergyLoss:       0.25,
			EnergyGain:       1.0,
			Speed:            6,
			InitialRabbits:   30,
			InitialWolves:    12,
			InitialEnergy:    1.0,
		},
	}
}

// Set assigns a single value by key, parsing it from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyWidth, KeyHeight, KeyHistoryLimit, KeySpeed, KeyInitialRabbits, KeyInitialWolves:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case KeyWidth:
			c.Width = parsed
		case KeyHeight:
			c.Height = parsed
		case KeyHistoryLimit:
			c.HistoryLimit = parsed
		case KeySpeed:
			c.Params.Speed = parsed
		case KeyInitialRabbits:
			c.Params.InitialRabbits = parsed
		case KeyInitialWolves:
			c.Params.InitialWolves = parsed
		}
	case KeySeed:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Seed = parsed
	case KeyReproductionRate, KeyEnergyLoss, KeyEnergyGain, KeyInitialEnergy:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case KeyReproductionRate:
			c.Params.ReproductionRate = parsed
		case KeyEnergyLoss:
			c.Params.EnergyLoss = parsed
		case KeyEnergyGain:
			c.Params.EnergyGain = parsed
		case KeyInitialEnergy:
			c.Params.InitialEnergy = parsed
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return nil
}
