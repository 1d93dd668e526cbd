// Package sweep evaluates predator-prey parameter combinations in parallel
// and ranks them by how long both populations coexist.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"predprey/internal/core"
	"predprey/internal/sims/predprey"

	"github.com/charmbracelet/log"
)

// ErrNoCombinations is returned when the grid expands to nothing.
var ErrNoCombinations = errors.New("sweep: no parameter combinations")

// Grid lists the values tried for each swept parameter.
type Grid struct {
	ReproductionRates []float64
	EnergyLosses      []float64
	EnergyGains       []float64
}

// DefaultGrid spans each parameter range in a handful of steps.
func DefaultGrid() Grid {
	return Grid{
		ReproductionRates: []float64{0.05, 0.1, 0.2, 0.3},
		EnergyLosses:      []float64{0.05, 0.1, 0.2, 0.4},
		EnergyGains:       []float64{0.5, 1.0, 1.5, 2.0},
	}
}

// Combinations expands the grid in reproduction, loss, gain order.
func (g Grid) Combinations() []Combination {
	var out []Combination
	for _, rate := range g.ReproductionRates {
		for _, loss := range g.EnergyLosses {
			for _, gain := range g.EnergyGains {
				out = append(out, Combination{ReproductionRate: rate, EnergyLoss: loss, EnergyGain: gain})
			}
		}
	}
	return out
}

// Combination is one point of the grid.
type Combination struct {
	ReproductionRate float64
	EnergyLoss       float64
	EnergyGain       float64
}

func (c Combination) String() string {
	return fmt.Sprintf("rate=%.3f loss=%.3f gain=%.3f", c.ReproductionRate, c.EnergyLoss, c.EnergyGain)
}

// Result summarises one evaluated combination.
type Result struct {
	Combination Combination
	// Coexistence is the number of generations after which both rabbits and
	// wolves were still alive.
	Coexistence int
	// Collapsed reports that one of the populations died out.
	Collapsed   bool
	Final       core.Counts
	PeakRabbits int
	PeakWolves  int
}

// Options controls a sweep.
type Options struct {
	Base    predprey.Config
	Grid    Grid
	Steps   int
	Workers int
}

// Run evaluates every combination of opts.Grid on a worker pool. Results are
// ordered by coexistence, longest first. Cancelling ctx stops the sweep and
// returns the context error.
func Run(ctx context.Context, opts Options, logger *log.Logger) ([]Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	combos := opts.Grid.Combinations()
	if len(combos) == 0 {
		return nil, ErrNoCombinations
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(combos))

	logger.Info("sweep started", "combinations", len(combos), "workers", workers, "steps", opts.Steps)
	start := time.Now()

	jobs := make(chan Combination)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				res := Evaluate(opts.Base, c, opts.Steps)
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range combos {
			select {
			case jobs <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]Result, 0, len(combos))
	for res := range results {
		all = append(all, res)
		logger.Debug("combination evaluated", "params", res.Combination, "coexistence", res.Coexistence)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	Sort(all)
	logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return all, nil
}

// Sort orders results by coexistence, then by the larger final population,
// then by the parameters themselves so equal runs have a stable order.
func Sort(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Coexistence != b.Coexistence {
			return a.Coexistence > b.Coexistence
		}
		if a.Final.Occupied() != b.Final.Occupied() {
			return a.Final.Occupied() > b.Final.Occupied()
		}
		if a.Combination.ReproductionRate != b.Combination.ReproductionRate {
			return a.Combination.ReproductionRate < b.Combination.ReproductionRate
		}
		if a.Combination.EnergyLoss != b.Combination.EnergyLoss {
			return a.Combination.EnergyLoss < b.Combination.EnergyLoss
		}
		return a.Combination.EnergyGain < b.Combination.EnergyGain
	})
}

// Evaluate runs base with c applied for at most steps generations, stopping
// early once either population is gone.
func Evaluate(base predprey.Config, c Combination, steps int) Result {
	cfg := base
	cfg.Params.ReproductionRate = c.ReproductionRate
	cfg.Params.EnergyLoss = c.EnergyLoss
	cfg.Params.EnergyGain = c.EnergyGain

	world := predprey.NewWithConfig(cfg)
	world.Reset(cfg.Seed)

	res := Result{Combination: c}
	observe := func(counts core.Counts) bool {
		res.Final = counts
		res.PeakRabbits = max(res.PeakRabbits, counts.Rabbits)
		res.PeakWolves = max(res.PeakWolves, counts.Wolves())
		if counts.Rabbits == 0 || counts.Wolves() == 0 {
			res.Collapsed = true
			return false
		}
		return true
	}

	if !observe(world.Counts()) {
		return res
	}
	for i := 0; i < steps; i++ {
		world.Step()
		if !observe(world.Counts()) {
			break
		}
		res.Coexistence = world.Generation()
	}
	return res
}
