package predprey

import (
	"math"
	"slices"
	"testing"

	"predprey/internal/core"
)

func newEmptyWorld(w, h int, params Params) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params = params
	world := NewWithConfig(cfg)
	world.Clear()
	return world
}

func reseed(w *World, seed int64) {
	w.rng = core.NewRNG(seed)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRabbitReproducesIntoOneNeighbor(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 1

	seen := map[[2]int]bool{}
	for seed := int64(1); seed <= 200; seed++ {
		world := newEmptyWorld(3, 3, params)
		reseed(world, seed)
		world.Set(1, 1, Rabbit, 0)

		world.Step()

		if world.At(1, 1) != Rabbit {
			t.Fatalf("seed %d: parent rabbit must stay in place", seed)
		}
		if got := world.Counts().Rabbits; got != 2 {
			t.Fatalf("seed %d: expected 2 rabbits after one step, got %d", seed, got)
		}
		if world.Counts().Wolves() != 0 {
			t.Fatalf("seed %d: no wolves should appear", seed)
		}
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if (x != 1 || y != 1) && world.At(x, y) == Rabbit {
					seen[[2]int{x, y}] = true
				}
			}
		}
	}
	if len(seen) != 8 {
		t.Fatalf("expected every neighbor to be chosen at least once, saw %d distinct cells", len(seen))
	}
}

func TestRabbitAtCornerOnlyUsesInBoundsNeighbors(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 1

	allowed := map[[2]int]bool{{1, 0}: true, {0, 1}: true, {1, 1}: true}
	for seed := int64(1); seed <= 50; seed++ {
		world := newEmptyWorld(3, 3, params)
		reseed(world, seed)
		world.Set(0, 0, Rabbit, 0)
		world.Step()

		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if (x != 0 || y != 0) && world.At(x, y) == Rabbit && !allowed[[2]int{x, y}] {
					t.Fatalf("seed %d: rabbit appeared at non-neighbor (%d,%d)", seed, x, y)
				}
			}
		}
		if world.Counts().Rabbits != 2 {
			t.Fatalf("seed %d: expected one offspring, got %d rabbits", seed, world.Counts().Rabbits)
		}
	}
}

func TestRabbitNeverReproducesOntoOccupiedCell(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 1
	world := newEmptyWorld(3, 3, params)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			world.Set(x, y, Rabbit, 0)
		}
	}
	before := slices.Clone(world.Cells())

	world.Step()

	if !slices.Equal(before, world.Cells()) {
		t.Fatalf("full grid must not change, got %v", world.Cells())
	}
}

func TestRabbitBirthsDoNotCollide(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 1
	world := newEmptyWorld(3, 1, params)
	world.Set(0, 0, Rabbit, 0)
	world.Set(2, 0, Rabbit, 0)

	world.Step()

	if got := world.Counts().Rabbits; got != 3 {
		t.Fatalf("expected the middle cell to be filled once, got %d rabbits", got)
	}
}

func TestWolfStarvesAfterFourSteps(t *testing.T) {
	params := DefaultConfig().Params
	params.EnergyLoss = 0.25
	world := newEmptyWorld(3, 3, params)
	world.Set(1, 1, MaleWolf, 1)

	world.Step()
	if world.At(1, 1) != MaleWolf {
		t.Fatalf("wolf should survive the first step, got %v", world.At(1, 1))
	}
	if got := world.EnergyAt(1, 1); got != 0.75 {
		t.Fatalf("expected energy 0.75, got %f", got)
	}

	for i := 0; i < 3; i++ {
		world.Step()
	}
	if world.At(1, 1) != Empty {
		t.Fatalf("wolf should be dead after four steps, got %v", world.At(1, 1))
	}
	if got := world.EnergyAt(1, 1); got != 0 {
		t.Fatalf("dead wolf energy must reset to 0, got %f", got)
	}
	if world.Counts().Occupied() != 0 {
		t.Fatalf("grid should be empty, got %+v", world.Counts())
	}
}

func TestWolfEatsRabbit(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 0
	params.EnergyGain = 1.25
	world := newEmptyWorld(3, 3, params)
	world.Set(0, 0, FemaleWolf, 0.5)
	world.Set(1, 1, Rabbit, 0)

	world.Step()

	if world.At(1, 1) != FemaleWolf {
		t.Fatalf("wolf should occupy the rabbit cell, got %v", world.At(1, 1))
	}
	if got := world.EnergyAt(1, 1); got != 1.75 {
		t.Fatalf("expected energy 0.5+1.25, got %f", got)
	}
	if world.At(0, 0) != Empty || world.EnergyAt(0, 0) != 0 {
		t.Fatalf("origin should be vacated, got %v energy %f", world.At(0, 0), world.EnergyAt(0, 0))
	}
	if world.Counts().Rabbits != 0 {
		t.Fatalf("rabbit should be eaten, got %d", world.Counts().Rabbits)
	}
}

func TestWolvesDoNotShareOneRabbit(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 0
	params.EnergyGain = 1
	params.EnergyLoss = 0.1
	world := newEmptyWorld(3, 1, params)
	world.Set(0, 0, FemaleWolf, 0.5)
	world.Set(1, 0, Rabbit, 0)
	world.Set(2, 0, FemaleWolf, 0.5)

	world.Step()

	if got := world.Counts().Wolves(); got != 2 {
		t.Fatalf("no wolf may be overwritten, got %d wolves", got)
	}
	if world.At(0, 0) != Empty || world.At(1, 0) != FemaleWolf || world.At(2, 0) != FemaleWolf {
		t.Fatalf("unexpected layout %v", world.Cells())
	}
	if got := world.EnergyAt(1, 0); !approx(got, 1.5) {
		t.Fatalf("first wolf in scan order should eat, energy %f", got)
	}
	if got := world.EnergyAt(2, 0); !approx(got, 0.4) {
		t.Fatalf("second wolf should starve in place, energy %f", got)
	}
}

func TestMaleWolfBreedsWithFemaleNeighbor(t *testing.T) {
	params := DefaultConfig().Params
	params.ReproductionRate = 0
	params.EnergyLoss = 0.1
	for seed := int64(1); seed <= 30; seed++ {
		world := newEmptyWorld(3, 3, params)
		reseed(world, seed)
		world.Set(1, 1, MaleWolf, 2)
		world.Set(0, 0, FemaleWolf, 2)

		world.Step()

		if got := world.Counts().Wolves(); got != 3 {
			t.Fatalf("seed %d: expected one newborn, got %d wolves", seed, got)
		}
		if !approx(world.EnergyAt(1, 1), 1.9) || !approx(world.EnergyAt(0, 0), 1.9) {
			t.Fatalf("seed %d: parents should only lose energy", seed)
		}
		newborns := 0
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if (x == 1 && y == 1) || (x == 0 && y == 0) {
					continue
				}
				if world.At(x, y).IsWolf() {
					newborns++
					if world.EnergyAt(x, y) != NewbornEnergy {
						t.Fatalf("seed %d: newborn energy %f", seed, world.EnergyAt(x, y))
					}
				}
			}
		}
		if newborns != 1 {
			t.Fatalf("seed %d: expected 1 newborn, got %d", seed, newborns)
		}
	}
}

func TestBreedingRequiresEnergyAboveOne(t *testing.T) {
	params := DefaultConfig().Params
	params.EnergyLoss = 0.1
	world := newEmptyWorld(3, 3, params)
	world.Set(1, 1, MaleWolf, 1)
	world.Set(0, 0, FemaleWolf, 2)

	world.Step()

	if got := world.Counts().Wolves(); got != 2 {
		t.Fatalf("male at energy 1 must not breed, got %d wolves", got)
	}
}

func TestFemaleWolfDoesNotBreed(t *testing.T) {
	params := DefaultConfig().Params
	params.EnergyLoss = 0.1
	world := newEmptyWorld(3, 3, params)
	world.Set(1, 1, FemaleWolf, 3)
	world.Set(0, 0, FemaleWolf, 3)

	world.Step()

	if got := world.Counts().Wolves(); got != 2 {
		t.Fatalf("two females must not breed, got %d wolves", got)
	}
}

func TestBreedingUsesPreStepEnergy(t *testing.T) {
	params := DefaultConfig().Params
	params.EnergyLoss = 0.5
	world := newEmptyWorld(3, 3, params)
	// 1.2 drops to 0.7 during the step but was above 1 before it.
	world.Set(1, 1, MaleWolf, 1.2)
	world.Set(0, 0, FemaleWolf, 3)

	world.Step()

	if got := world.Counts().Wolves(); got != 3 {
		t.Fatalf("expected a birth based on pre-step energy, got %d wolves", got)
	}
}

func TestInvariantsHoldOverManySteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.ReproductionRate = 0.3
	cfg.Params.InitialRabbits = 80
	cfg.Params.InitialWolves = 30
	world := NewWithConfig(cfg)
	world.Reset(2024)

	total := cfg.Width * cfg.Height
	for step := 1; step <= 300; step++ {
		world.Step()

		counts := world.Counts()
		if counts.Rabbits < 0 || counts.Wolves() < 0 {
			t.Fatalf("step %d: negative population %+v", step, counts)
		}
		if counts.Occupied() > total {
			t.Fatalf("step %d: %d occupied cells exceed %d", step, counts.Occupied(), total)
		}
		for i, v := range world.Cells() {
			e := world.Energy()[i]
			if Cell(v).IsWolf() {
				if e <= 0 {
					t.Fatalf("step %d: living wolf at %d has energy %f", step, i, e)
				}
			} else if e != 0 {
				t.Fatalf("step %d: %v cell %d holds energy %f", step, Cell(v), i, e)
			}
		}
		if world.Generation() != step {
			t.Fatalf("expected generation %d, got %d", step, world.Generation())
		}
		rabbits := world.RabbitHistory()
		wolves := world.WolfHistory()
		if len(rabbits) != min(step, DefaultHistoryLimit) || len(wolves) != len(rabbits) {
			t.Fatalf("step %d: history length %d/%d", step, len(rabbits), len(wolves))
		}
		if rabbits[len(rabbits)-1] != counts.Rabbits || wolves[len(wolves)-1] != counts.Wolves() {
			t.Fatalf("step %d: history tail does not match counts", step)
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	world := NewWithConfig(cfg)
	world.Reset(0)

	initialCells := slices.Clone(world.Cells())
	initialEnergy := slices.Clone(world.Energy())

	if got := world.Counts(); got.Rabbits != cfg.Params.InitialRabbits || got.Wolves() != cfg.Params.InitialWolves {
		t.Fatalf("unexpected initial populations %+v", got)
	}
	for i, v := range initialCells {
		if Cell(v).IsWolf() && initialEnergy[i] != cfg.Params.InitialEnergy {
			t.Fatalf("wolf %d starts with energy %f", i, initialEnergy[i])
		}
	}

	world.Step()
	world.Step()
	world.Reset(0)

	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for cells")
	}
	if !slices.Equal(initialEnergy, world.Energy()) {
		t.Fatal("Reset with config seed not deterministic for energy")
	}
	if world.Generation() != 0 || len(world.RabbitHistory()) != 0 {
		t.Fatal("Reset must clear the generation counter and history")
	}

	world.Reset(777)
	if world.Seed() != 777 {
		t.Fatalf("expected seed 777, got %d", world.Seed())
	}
	if slices.Equal(initialCells, world.Cells()) {
		t.Fatal("different seeds should produce different initial layouts")
	}
}

func TestResetClampsPopulationsToGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 3
	cfg.Params.InitialRabbits = 100
	cfg.Params.InitialWolves = 50
	world := NewWithConfig(cfg)
	world.Reset(5)

	if got := world.Counts(); got.Rabbits != 9 || got.Wolves() != 0 {
		t.Fatalf("expected 9 rabbits and no wolves, got %+v", got)
	}
}

func TestSameSeedSameTrajectory(t *testing.T) {
	run := func() []int {
		world := NewWithConfig(DefaultConfig())
		world.Reset(31)
		for i := 0; i < 50; i++ {
			world.Step()
		}
		return slices.Clone(world.RabbitHistory())
	}
	if a, b := run(), run(); !slices.Equal(a, b) {
		t.Fatal("identical seeds must reproduce identical histories")
	}
}

func TestEnergyMaskNormalized(t *testing.T) {
	world := newEmptyWorld(2, 1, DefaultConfig().Params)
	world.Set(0, 0, MaleWolf, 4)
	world.Set(1, 0, FemaleWolf, 2)

	mask := world.EnergyMask()
	if mask[0] != 1 || mask[1] != 0.5 {
		t.Fatalf("unexpected mask %v", mask)
	}
}
