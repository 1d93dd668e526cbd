package sweep

import (
	"context"
	"errors"
	"io"
	"slices"
	"testing"

	"predprey/internal/core"
	"predprey/internal/sims/predprey"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func smallBase() predprey.Config {
	cfg := predprey.DefaultConfig()
	cfg.Width = 12
	cfg.Height = 12
	cfg.Seed = 7
	return cfg
}

func TestGridCombinations(t *testing.T) {
	combos := DefaultGrid().Combinations()
	if len(combos) != 64 {
		t.Fatalf("expected 64 combinations, got %d", len(combos))
	}
	first := Combination{ReproductionRate: 0.05, EnergyLoss: 0.05, EnergyGain: 0.5}
	last := Combination{ReproductionRate: 0.3, EnergyLoss: 0.4, EnergyGain: 2.0}
	if combos[0] != first || combos[len(combos)-1] != last {
		t.Fatalf("unexpected ordering: first %v last %v", combos[0], combos[len(combos)-1])
	}
	if len((Grid{ReproductionRates: []float64{0.1}}).Combinations()) != 0 {
		t.Fatal("a grid missing a dimension must expand to nothing")
	}
}

func TestRunRejectsEmptyGrid(t *testing.T) {
	_, err := Run(context.Background(), Options{Base: smallBase(), Steps: 5}, quietLogger())
	if !errors.Is(err, ErrNoCombinations) {
		t.Fatalf("expected ErrNoCombinations, got %v", err)
	}
}

func TestEvaluateWithoutWolvesCollapsesImmediately(t *testing.T) {
	base := smallBase()
	base.Params.InitialWolves = 0
	res := Evaluate(base, Combination{ReproductionRate: 0.1, EnergyLoss: 0.1, EnergyGain: 1}, 50)
	if !res.Collapsed || res.Coexistence != 0 {
		t.Fatalf("expected immediate collapse, got %+v", res)
	}
	if res.Final.Wolves() != 0 || res.Final.Rabbits != base.Params.InitialRabbits {
		t.Fatalf("unexpected final counts %+v", res.Final)
	}
}

func TestEvaluateBoundsCoexistence(t *testing.T) {
	base := smallBase()
	res := Evaluate(base, Combination{ReproductionRate: 0.2, EnergyLoss: 0.05, EnergyGain: 1.5}, 30)
	if res.Coexistence > 30 {
		t.Fatalf("coexistence %d exceeds step budget", res.Coexistence)
	}
	if !res.Collapsed && res.Coexistence != 30 {
		t.Fatalf("surviving run must report every step, got %d", res.Coexistence)
	}
	if res.PeakRabbits < base.Params.InitialRabbits || res.PeakWolves < base.Params.InitialWolves {
		t.Fatalf("peaks must include the initial populations, got %+v", res)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	grid := Grid{
		ReproductionRates: []float64{0.05, 0.3},
		EnergyLosses:      []float64{0.1, 0.5},
		EnergyGains:       []float64{1.0},
	}
	run := func(workers int) []Result {
		res, err := Run(context.Background(), Options{Base: smallBase(), Grid: grid, Steps: 25, Workers: workers}, quietLogger())
		if err != nil {
			t.Fatalf("run with %d workers: %v", workers, err)
		}
		return res
	}
	one := run(1)
	many := run(4)
	if len(one) != 4 {
		t.Fatalf("expected 4 results, got %d", len(one))
	}
	if !slices.Equal(one, many) {
		t.Fatalf("results differ between worker counts:\n%v\n%v", one, many)
	}
	for i := 1; i < len(one); i++ {
		if one[i-1].Coexistence < one[i].Coexistence {
			t.Fatalf("results not sorted by coexistence: %v", one)
		}
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Base: smallBase(), Grid: DefaultGrid(), Steps: 10, Workers: 2}, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSortOrdering(t *testing.T) {
	results := []Result{
		{Combination: Combination{ReproductionRate: 0.2}, Coexistence: 5, Final: core.Counts{Rabbits: 3}},
		{Combination: Combination{ReproductionRate: 0.1}, Coexistence: 9},
		{Combination: Combination{ReproductionRate: 0.3}, Coexistence: 5, Final: core.Counts{Rabbits: 8}},
		{Combination: Combination{ReproductionRate: 0.05}, Coexistence: 5, Final: core.Counts{Rabbits: 3}},
	}
	Sort(results)
	var rates []float64
	for _, r := range results {
		rates = append(rates, r.Combination.ReproductionRate)
	}
	if !slices.Equal(rates, []float64{0.1, 0.3, 0.05, 0.2}) {
		t.Fatalf("unexpected order %v", rates)
	}
}
