package term

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"predprey/internal/control"
	"predprey/internal/sims/predprey"

	"github.com/logrusorgru/aurora"
)

// ConsoleOut prints a batch run as plain lines: the configuration, periodic
// population samples and a final summary.
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

// NewConsoleOut reports to w, sampling every n generations.
func NewConsoleOut(w io.Writer, every int, colors bool) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: every}
}

// Register prints the running configuration.
func (c *ConsoleOut) Register(cfg predprey.Config, seed int64) {
	fmt.Fprintln(c.w, "Running configuration:")
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", cfg.Width, cfg.Height)
	fmt.Fprintf(c.w, "  Seed: %v\n", seed)
	p := cfg.Params
	c.printHashData(map[string]any{
		predprey.KeyReproductionRate: p.ReproductionRate,
		predprey.KeyEnergyLoss:       p.EnergyLoss,
		predprey.KeyEnergyGain:       p.EnergyGain,
		predprey.KeyInitialRabbits:   p.InitialRabbits,
		predprey.KeyInitialWolves:    p.InitialWolves,
		predprey.KeyInitialEnergy:    p.InitialEnergy,
	})
}

// Start marks the beginning of the run.
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

// Refresh prints a sample line on every n-th generation.
func (c *ConsoleOut) Refresh(st control.Status) {
	if st.Generation == 0 || st.Generation%c.every != 0 {
		return
	}
	fmt.Fprintf(c.w, "  %s %5d  %s %4d  %s %4d\n",
		c.au.Cyan("gen"), st.Generation,
		c.au.Yellow("rabbits"), st.Counts.Rabbits,
		c.au.Red("wolves"), st.Counts.Wolves())
}

// Finish prints the summary.
func (c *ConsoleOut) Finish(st control.Status) {
	outcome := c.au.Green("populations alive").String()
	switch {
	case st.Extinct:
		outcome = c.au.Red("extinct").String()
	case st.Counts.Wolves() == 0:
		outcome = c.au.Yellow("wolves died out").String()
	case st.Counts.Rabbits == 0:
		outcome = c.au.Yellow("rabbits died out").String()
	}
	fmt.Fprintln(c.w, "\nFinished:")
	c.printHashData(map[string]any{
		"Last generation": st.Generation,
		"Total time":      time.Since(c.startTime).Round(time.Millisecond),
		"Rabbits":         st.Counts.Rabbits,
		"Wolves":          st.Counts.Wolves(),
		"Outcome":         outcome,
	})
}

func (c *ConsoleOut) printHashData(d map[string]any) {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.w, "  %s: %v\n", name, d[name])
	}
}

// RunBatch steps ctrl up to steps times, reporting through out and waiting
// interval between steps. It stops early on extinction or when ctx is done.
func RunBatch(ctx context.Context, ctrl *control.Controller, out *ConsoleOut, steps int, interval time.Duration) (control.Status, error) {
	out.Start()
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			st := ctrl.Status()
			out.Finish(st)
			return st, err
		}
		ctrl.StepNow()
		st := ctrl.Status()
		out.Refresh(st)
		if st.Extinct {
			break
		}
		if interval > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}
	st := ctrl.Status()
	out.Finish(st)
	return st, nil
}
