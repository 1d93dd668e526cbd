package core

import "image/color"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Counts reports the population of each agent class after the latest step.
type Counts struct {
	Rabbits      int
	FemaleWolves int
	MaleWolves   int
}

// Wolves returns the combined wolf population.
func (c Counts) Wolves() int { return c.FemaleWolves + c.MaleWolves }

// Occupied returns the number of non-empty cells.
func (c Counts) Occupied() int { return c.Rabbits + c.Wolves() }

// Extinct reports whether every population has died out.
func (c Counts) Extinct() bool { return c.Occupied() == 0 }

// PopulationProvider exposes population counts and their recorded history.
type PopulationProvider interface {
	Counts() Counts
	Generation() int
	RabbitHistory() []int
	WolfHistory() []int
	HistoryLimit() int
}

// EnergyProvider exposes the per-cell energy field, normalized to [0, 1].
type EnergyProvider interface {
	EnergyMask() []float32
}

// PaletteProvider exposes the colors used to render cell values.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Paced is implemented by sims that choose their own step rate.
type Paced interface {
	StepsPerSecond() int
}
