package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"predprey/internal/config"
	"predprey/internal/control"
	"predprey/internal/sims/predprey"
	"predprey/internal/sweep"
	"predprey/internal/term"

	"github.com/charmbracelet/log"
	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
)

type runOptions struct {
	steps    int
	interval time.Duration
	every    int
	noColor  bool
}

type sweepOptions struct {
	steps   int
	workers int
	top     int
	grid    sweep.Grid
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load configuration", "err", err)
	}

	flaggy.SetName("predprey-cli")
	flaggy.SetDescription("Terminal and batch front-ends for the rabbits and wolves automaton")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	ro := runOptions{steps: 500, every: 10}
	runCmd := flaggy.NewSubcommand("run")
	runCmd.Description = "Run without a UI and print population samples"
	cfg.Bind(runCmd)
	runCmd.Int(&ro.steps, "n", "steps", "Maximum number of steps")
	runCmd.Duration(&ro.interval, "i", "interval", "Pause between steps, for example 150ms")
	runCmd.Int(&ro.every, "", "every", "Print a sample every n generations")
	runCmd.Bool(&ro.noColor, "", "no-color", "Disable ANSI colors")
	flaggy.AttachSubcommand(runCmd, 1)

	tuiCmd := flaggy.NewSubcommand("tui")
	tuiCmd.Description = "Interactive terminal interface"
	cfg.Bind(tuiCmd)
	flaggy.AttachSubcommand(tuiCmd, 1)

	so := sweepOptions{steps: 300, workers: runtime.NumCPU(), top: 10}
	sweepCmd := flaggy.NewSubcommand("sweep")
	sweepCmd.Description = "Rank parameter combinations by how long both species survive"
	cfg.Bind(sweepCmd)
	sweepCmd.Int(&so.steps, "n", "steps", "Steps simulated per combination")
	sweepCmd.Int(&so.workers, "", "workers", "Number of worker goroutines")
	sweepCmd.Int(&so.top, "", "top", "Number of results to print")
	sweepCmd.Float64Slice(&so.grid.ReproductionRates, "", "rates", "Reproduction rates to try (repeatable)")
	sweepCmd.Float64Slice(&so.grid.EnergyLosses, "", "losses", "Energy losses to try (repeatable)")
	sweepCmd.Float64Slice(&so.grid.EnergyGains, "", "gains", "Energy gains to try (repeatable)")
	flaggy.AttachSubcommand(sweepCmd, 1)

	flaggy.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case runCmd.Used:
		err = runBatch(ctx, cfg, ro)
	case tuiCmd.Used:
		err = runTUI(ctx, cfg)
	case sweepCmd.Used:
		err = runSweep(ctx, cfg, so)
	default:
		flaggy.ShowHelpAndExit("a subcommand is required")
	}
	if err != nil {
		stop()
		log.Fatal("predprey-cli", "err", err)
	}
}

func prepare(cfg *config.Config) error {
	if err := cfg.ApplyOverrides(); err != nil {
		return err
	}
	if err := cfg.ResolveSeed(); err != nil {
		return err
	}
	return cfg.Validate()
}

func newController(cfg config.Config, logger *log.Logger) (*control.Controller, *predprey.World) {
	world := predprey.NewWithConfig(cfg.World())
	world.Reset(cfg.Seed)
	return control.New(world, cfg.Seed, logger), world
}

func runBatch(ctx context.Context, cfg config.Config, ro runOptions) error {
	if err := prepare(&cfg); err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr, "run")
	ctrl, world := newController(cfg, logger)

	out := term.NewConsoleOut(os.Stdout, ro.every, !ro.noColor)
	out.Register(world.Config(), world.Seed())
	st, err := term.RunBatch(ctx, ctrl, out, ro.steps, ro.interval)
	if err != nil {
		logger.Warn("run interrupted", "generation", st.Generation, "err", err)
		return nil
	}
	logger.Debug("run finished", "generation", st.Generation, "rabbits", st.Counts.Rabbits, "wolves", st.Counts.Wolves())
	return nil
}

func runTUI(ctx context.Context, cfg config.Config) error {
	if err := prepare(&cfg); err != nil {
		return err
	}
	// Log lines would tear the gocui screen.
	logger := cfg.NewLogger(io.Discard, "tui")
	ctrl, _ := newController(cfg, logger)

	ui, err := term.NewConsoleUI(ctrl)
	if err != nil {
		return err
	}
	return ui.Run(ctx)
}

func runSweep(ctx context.Context, cfg config.Config, so sweepOptions) error {
	if err := prepare(&cfg); err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr, "sweep")

	grid := sweep.DefaultGrid()
	if len(so.grid.ReproductionRates) > 0 {
		grid.ReproductionRates = so.grid.ReproductionRates
	}
	if len(so.grid.EnergyLosses) > 0 {
		grid.EnergyLosses = so.grid.EnergyLosses
	}
	if len(so.grid.EnergyGains) > 0 {
		grid.EnergyGains = so.grid.EnergyGains
	}

	results, err := sweep.Run(ctx, sweep.Options{
		Base:    cfg.World(),
		Grid:    grid,
		Steps:   so.steps,
		Workers: so.workers,
	}, logger)
	if err != nil {
		return err
	}

	au := aurora.NewAurora(true)
	fmt.Printf("\nTop %d of %d combinations (%d steps, seed %d):\n", min(so.top, len(results)), len(results), so.steps, cfg.Seed)
	for i := 0; i < len(results) && i < so.top; i++ {
		res := results[i]
		outcome := au.Green("coexist").String()
		if res.Collapsed {
			outcome = au.Red("collapse").String()
		}
		fmt.Printf("%2d) %s gens=%d peak rabbits=%d peak wolves=%d final=%d/%d %s\n",
			i+1, res.Combination, res.Coexistence, res.PeakRabbits, res.PeakWolves,
			res.Final.Rabbits, res.Final.Wolves(), outcome)
	}
	return nil
}
