// Package control owns the run state of a simulation and turns front-end
// commands into resets, steps and pauses. It never draws anything, so the
// automaton can be driven and tested headlessly.
package control

import (
	"fmt"
	"time"

	"predprey/internal/core"
	"predprey/internal/random"

	"github.com/charmbracelet/log"
)

// Status is a snapshot of the controller state for display.
type Status struct {
	Generation int
	Counts     core.Counts
	Running    bool
	MenuOpen   bool
	Extinct    bool
	Seed       int64
	StepTime   time.Duration
	TPS        int
}

// Controller advances a simulation according to the commands it receives.
// It is not safe for concurrent use; front-ends call it from their UI loop.
type Controller struct {
	sim    core.Sim
	pacer  *core.FixedStep
	logger *log.Logger

	seed     int64
	running  bool
	tickOnce bool
	menuOpen bool
	extinct  bool
	stepTime time.Duration

	newSeed func() (int64, error)
}

// Option customises a Controller.
type Option func(*Controller)

// WithSeedSource replaces the generator used by CommandReseed.
func WithSeedSource(fn func() (int64, error)) Option {
	return func(c *Controller) { c.newSeed = fn }
}

// New wraps sim, which must already have been reset with seed.
func New(sim core.Sim, seed int64, logger *log.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		sim:     sim,
		pacer:   core.NewFixedStep(stepsPerSecond(sim)),
		logger:  logger,
		seed:    seed,
		newSeed: random.NewSeed,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.extinct = c.counts().Extinct()
	return c
}

// Sim returns the controlled simulation.
func (c *Controller) Sim() core.Sim { return c.sim }

// Running reports whether the simulation advances on its own.
func (c *Controller) Running() bool { return c.running }

// MenuOpen reports whether the settings/help menu is shown.
func (c *Controller) MenuOpen() bool { return c.menuOpen }

// Dispatch applies a command. It returns ErrQuit for CommandQuit.
func (c *Controller) Dispatch(cmd Command) error {
	switch cmd {
	case CommandNone:
	case CommandStart:
		c.setRunning(true)
	case CommandPause:
		c.setRunning(false)
	case CommandTogglePause:
		c.setRunning(!c.running)
	case CommandReset:
		c.reset(c.seed)
	case CommandReseed:
		seed, err := c.newSeed()
		if err != nil {
			return fmt.Errorf("reseed: %w", err)
		}
		c.reset(seed)
	case CommandStep:
		c.tickOnce = true
	case CommandToggleMenu:
		c.menuOpen = !c.menuOpen
	case CommandQuit:
		return ErrQuit
	default:
		return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
	return nil
}

// Advance runs at most one step: either a requested single step or, while
// running, a paced step when the step interval has elapsed. It reports
// whether the simulation moved.
func (c *Controller) Advance(now time.Time) bool {
	c.pacer.SetTPS(stepsPerSecond(c.sim))
	due := c.running && c.pacer.ShouldStepAt(now)
	if !due && !c.tickOnce {
		return false
	}
	c.tickOnce = false
	c.step()
	return true
}

// StepNow advances exactly one step regardless of pacing or pause state.
func (c *Controller) StepNow() {
	c.tickOnce = false
	c.step()
}

// Status reports the current state.
func (c *Controller) Status() Status {
	st := Status{
		Counts:   c.counts(),
		Running:  c.running,
		MenuOpen: c.menuOpen,
		Extinct:  c.extinct,
		Seed:     c.seed,
		StepTime: c.stepTime,
		TPS:      c.pacer.TPS(),
	}
	if p, ok := c.sim.(core.PopulationProvider); ok {
		st.Generation = p.Generation()
	}
	return st
}

func (c *Controller) step() {
	start := time.Now()
	c.sim.Step()
	c.stepTime = time.Since(start)

	counts := c.counts()
	if counts.Extinct() && !c.extinct {
		c.extinct = true
		c.logger.Info("populations extinct", "generation", c.Status().Generation)
		c.setRunning(false)
	}
}

func (c *Controller) reset(seed int64) {
	c.seed = seed
	c.sim.Reset(seed)
	c.tickOnce = false
	c.extinct = c.counts().Extinct()
	c.pacer.Restart()
	counts := c.counts()
	c.logger.Info("reset", "seed", seed, "rabbits", counts.Rabbits, "wolves", counts.Wolves())
}

func (c *Controller) setRunning(running bool) {
	if running == c.running {
		return
	}
	c.running = running
	if running {
		c.pacer.Restart()
	}
	c.logger.Debug("run state changed", "running", running)
}

func (c *Controller) counts() core.Counts {
	if p, ok := c.sim.(core.PopulationProvider); ok {
		return p.Counts()
	}
	return core.Counts{}
}

func stepsPerSecond(sim core.Sim) int {
	if p, ok := sim.(core.Paced); ok {
		return p.StepsPerSecond()
	}
	return 60
}
