package predprey

import (
	"predprey/internal/core"
)

// Cell enumerates the agent occupying a grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Rabbit
	FemaleWolf
	MaleWolf
)

// IsWolf reports whether the cell holds a wolf of either sex.
func (c Cell) IsWolf() bool { return c == FemaleWolf || c == MaleWolf }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Rabbit:
		return "rabbit"
	case FemaleWolf:
		return "female wolf"
	case MaleWolf:
		return "male wolf"
	default:
		return "unknown"
	}
}

// NewbornEnergy is the energy every wolf is born with.
const NewbornEnergy = 1.0

// World holds the grid, the wolf energy field and the population history.
//
// Step reads the current buffers and writes the next ones, then swaps them.
// Moves and births claim their destination in the next buffer as the scan
// proceeds in row-major order; a claimed cell is no longer a candidate for
// agents scanned later in the same tick, so no write ever overwrites another.
type World struct {
	cfg Config

	w, h int

	cur        *core.ByteGrid
	next       *core.ByteGrid
	energyCurr []float64
	energyNext []float64
	claimed    []bool
	energyMask []float32

	history    *History
	counts     core.Counts
	generation int

	rng  *core.RNG
	seed int64

	neighbors  []int
	candidates []int
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// grid starts empty; call Reset to populate it.
func NewWithConfig(cfg Config) *World {
	cur := core.NewByteGrid(cfg.Width, cfg.Height)
	cfg.Width, cfg.Height = cur.W, cur.H
	total := cur.W * cur.H
	return &World{
		cfg:        cfg,
		w:          cur.W,
		h:          cur.H,
		cur:        cur,
		next:       core.NewByteGrid(cur.W, cur.H),
		energyCurr: make([]float64, total),
		energyNext: make([]float64, total),
		claimed:    make([]bool, total),
		energyMask: make([]float32, total),
		history:    NewHistory(cfg.HistoryLimit),
		rng:        core.NewRNG(cfg.Seed),
		seed:       cfg.Seed,
		neighbors:  make([]int, 0, 8),
		candidates: make([]int, 0, 8),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "predprey" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current grid. Values are Cell kinds and double as palette
// indices.
func (w *World) Cells() []uint8 { return w.cur.Cells() }

// Energy exposes the current energy field.
func (w *World) Energy() []float64 { return w.energyCurr }

// At returns the agent at (x, y). Out-of-range coordinates read as Empty.
func (w *World) At(x, y int) Cell {
	if !w.cur.InBounds(x, y) {
		return Empty
	}
	return Cell(w.cur.Cells()[w.cur.Index(x, y)])
}

// EnergyAt returns the energy stored at (x, y).
func (w *World) EnergyAt(x, y int) float64 {
	if !w.cur.InBounds(x, y) {
		return 0
	}
	return w.energyCurr[w.cur.Index(x, y)]
}

// Set places an agent directly on the grid. Energy is ignored for non-wolf
// cells. It reports false for out-of-range coordinates.
func (w *World) Set(x, y int, c Cell, energy float64) bool {
	if !w.cur.InBounds(x, y) {
		return false
	}
	idx := w.cur.Index(x, y)
	w.cur.Cells()[idx] = uint8(c)
	if c.IsWolf() {
		w.energyCurr[idx] = energy
	} else {
		w.energyCurr[idx] = 0
	}
	w.recount()
	return true
}

// Clear empties the grid and the history without touching the RNG.
func (w *World) Clear() {
	w.cur.Clear()
	w.next.Clear()
	clear(w.energyCurr)
	clear(w.energyNext)
	w.history.Clear()
	w.generation = 0
	w.recount()
}

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg }

// Params returns a copy of the active parameters.
func (w *World) Params() Params { return w.cfg.Params }

// SetParams replaces every parameter at once. Values are used as given.
func (w *World) SetParams(p Params) { w.cfg.Params = p }

// Seed returns the seed used by the latest Reset.
func (w *World) Seed() int64 { return w.seed }

// Counts reports the populations of the current grid.
func (w *World) Counts() core.Counts { return w.counts }

// Generation returns the number of steps since the last reset.
func (w *World) Generation() int { return w.generation }

// RabbitHistory returns the recorded rabbit counts, oldest first.
func (w *World) RabbitHistory() []int { return w.history.Rabbits() }

// WolfHistory returns the recorded wolf counts, oldest first.
func (w *World) WolfHistory() []int { return w.history.Wolves() }

// HistoryLimit reports the capacity of the history buffers.
func (w *World) HistoryLimit() int { return w.history.Limit() }

// StepsPerSecond reports the configured simulation speed.
func (w *World) StepsPerSecond() int { return w.cfg.Params.Speed }

// Reset clears the world and places the initial populations at random. A zero
// seed falls back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng = core.NewRNG(effective)
	w.Clear()

	total := w.w * w.h
	order := w.rng.Source().Perm(total)
	cells := w.cur.Cells()

	rabbits := min(max(w.cfg.Params.InitialRabbits, 0), total)
	for _, idx := range order[:rabbits] {
		cells[idx] = uint8(Rabbit)
	}
	order = order[rabbits:]

	wolves := min(max(w.cfg.Params.InitialWolves, 0), len(order))
	for _, idx := range order[:wolves] {
		cells[idx] = uint8(w.randomWolf())
		w.energyCurr[idx] = w.cfg.Params.InitialEnergy
	}
	w.recount()
}

// Step advances the world by one synchronous tick.
func (w *World) Step() {
	total := w.w * w.h
	if total == 0 {
		return
	}
	w.next.CopyFrom(w.cur)
	copy(w.energyNext, w.energyCurr)
	clear(w.claimed)

	for idx, v := range w.cur.Cells() {
		switch c := Cell(v); c {
		case Rabbit:
			w.stepRabbit(idx)
		case FemaleWolf, MaleWolf:
			w.stepWolf(idx, c)
		}
	}

	w.cur, w.next = w.next, w.cur
	w.energyCurr, w.energyNext = w.energyNext, w.energyCurr
	w.generation++
	w.recount()
	w.history.Append(w.counts.Rabbits, w.counts.Wolves())
}

func (w *World) stepRabbit(idx int) {
	if !w.rng.Chance(w.cfg.Params.ReproductionRate) {
		return
	}
	dst, ok := core.Pick(w.rng, w.openNeighbors(idx, Empty))
	if !ok {
		return
	}
	w.claim(dst, Rabbit, 0)
}

func (w *World) stepWolf(idx int, c Cell) {
	p := w.cfg.Params
	before := w.energyCurr[idx]

	if dst, ok := core.Pick(w.rng, w.openNeighbors(idx, Rabbit)); ok {
		w.claim(dst, c, before+p.EnergyGain)
		w.vacate(idx)
	} else if remaining := before - p.EnergyLoss; remaining <= 0 {
		w.vacate(idx)
	} else {
		w.energyNext[idx] = remaining
	}

	if c == MaleWolf && before > 1 && w.hasNeighbor(idx, FemaleWolf) {
		if dst, ok := core.Pick(w.rng, w.openNeighbors(idx, Empty)); ok {
			w.claim(dst, w.randomWolf(), NewbornEnergy)
		}
	}
}

// openNeighbors returns the neighbors of idx that held want in the current
// snapshot and have not been claimed this tick. The returned slice is reused
// by the next call.
func (w *World) openNeighbors(idx int, want Cell) []int {
	cells := w.cur.Cells()
	w.neighbors = w.cur.Neighbors(idx, w.neighbors[:0])
	w.candidates = w.candidates[:0]
	for _, n := range w.neighbors {
		if Cell(cells[n]) == want && !w.claimed[n] {
			w.candidates = append(w.candidates, n)
		}
	}
	return w.candidates
}

func (w *World) hasNeighbor(idx int, want Cell) bool {
	cells := w.cur.Cells()
	w.neighbors = w.cur.Neighbors(idx, w.neighbors[:0])
	for _, n := range w.neighbors {
		if Cell(cells[n]) == want {
			return true
		}
	}
	return false
}

func (w *World) claim(idx int, c Cell, energy float64) {
	w.next.Cells()[idx] = uint8(c)
	w.energyNext[idx] = energy
	w.claimed[idx] = true
}

func (w *World) vacate(idx int) {
	w.next.Cells()[idx] = uint8(Empty)
	w.energyNext[idx] = 0
}

func (w *World) randomWolf() Cell {
	if w.rng.Bool() {
		return MaleWolf
	}
	return FemaleWolf
}

func (w *World) recount() {
	var counts core.Counts
	for _, v := range w.cur.Cells() {
		switch Cell(v) {
		case Rabbit:
			counts.Rabbits++
		case FemaleWolf:
			counts.FemaleWolves++
		case MaleWolf:
			counts.MaleWolves++
		}
	}
	w.counts = counts
}
