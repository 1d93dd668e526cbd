// Package config assembles the runtime configuration shared by every
// front-end: embedded YAML defaults, then PREDPREY_ environment variables,
// then command-line flags.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"predprey/internal/random"
	"predprey/internal/sims/predprey"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/integrii/flaggy"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PREDPREY_"

// ErrInvalid marks configuration values outside their accepted range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings shared by the GUI, terminal and batch runners.
type Config struct {
	Width        int    `yaml:"width" env:"WIDTH"`
	Height       int    `yaml:"height" env:"HEIGHT"`
	Scale        int    `yaml:"scale" env:"SCALE"`
	Seed         int64  `yaml:"seed" env:"SEED"`
	HistoryLimit int    `yaml:"history_limit" env:"HISTORY_LIMIT"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`

	Params Params `yaml:"params"`

	// Overrides holds key=value pairs from repeated --set flags.
	Overrides []string `yaml:"-"`
}

// Params mirrors predprey.Params with serialization tags.
type Params struct {
	ReproductionRate float64 `yaml:"reproduction_rate" env:"REPRODUCTION_RATE"`
	EnergyLoss       float64 `yaml:"energy_loss" env:"ENERGY_LOSS"`
	EnergyGain       float64 `yaml:"energy_gain" env:"ENERGY_GAIN"`
	Speed            int     `yaml:"speed" env:"SPEED"`
	InitialRabbits   int     `yaml:"initial_rabbits" env:"INITIAL_RABBITS"`
	InitialWolves    int     `yaml:"initial_wolves" env:"INITIAL_WOLVES"`
	InitialEnergy    float64 `yaml:"initial_energy" env:"INITIAL_ENERGY"`
}

// Defaults decodes the embedded defaults.
func Defaults() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode defaults: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with environment variables. Flags are
// bound separately with Bind; call Validate once parsing is done.
func Load() (Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return Config{}, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays PREDPREY_ environment variables onto target. Unset
// variables leave the existing values untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind attaches the configuration to the provided flag set.
func (c *Config) Bind(sc *flaggy.Subcommand) {
	sc.Int(&c.Width, "x", "width", "Grid width in cells")
	sc.Int(&c.Height, "y", "height", "Grid height in cells")
	sc.Int(&c.Scale, "", "scale", "Pixel size of one cell in the GUI")
	sc.Int64(&c.Seed, "", "seed", "Seed for placing the initial populations (0 picks one)")
	sc.Int(&c.HistoryLimit, "", "history", "Population samples kept for the graph")
	sc.String(&c.LogLevel, "", "log-level", "Log level [debug|info|warn|error]")
	sc.Float64(&c.Params.ReproductionRate, "", "reproduction-rate", "Chance a rabbit reproduces each step")
	sc.Float64(&c.Params.EnergyLoss, "", "energy-loss", "Energy a wolf loses on a step without food")
	sc.Float64(&c.Params.EnergyGain, "", "energy-gain", "Energy a wolf gains per rabbit")
	sc.Int(&c.Params.Speed, "", "speed", "Steps per second")
	sc.Int(&c.Params.InitialRabbits, "", "rabbits", "Rabbits placed on reset")
	sc.Int(&c.Params.InitialWolves, "", "wolves", "Wolves placed on reset")
	sc.Float64(&c.Params.InitialEnergy, "", "initial-energy", "Energy of wolves placed on reset")
	sc.StringSlice(&c.Overrides, "", "set", "Parameter override in key=value form (repeatable)")
}

// Set assigns one value by its automaton key, e.g. "energy_gain".
func (c *Config) Set(key, value string) error {
	w := c.World()
	if err := w.Set(key, value); err != nil {
		return err
	}
	c.Width, c.Height, c.Seed, c.HistoryLimit = w.Width, w.Height, w.Seed, w.HistoryLimit
	c.Params = Params{
		ReproductionRate: w.Params.ReproductionRate,
		EnergyLoss:       w.Params.EnergyLoss,
		EnergyGain:       w.Params.EnergyGain,
		Speed:            w.Params.Speed,
		InitialRabbits:   w.Params.InitialRabbits,
		InitialWolves:    w.Params.InitialWolves,
		InitialEnergy:    w.Params.InitialEnergy,
	}
	return nil
}

// ApplyOverrides applies the collected --set pairs in order.
func (c *Config) ApplyOverrides() error {
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: override %q is not key=value", ErrInvalid, kv)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("override %q: %w", kv, err)
		}
	}
	return nil
}

// Validate reports every out-of-range value, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, name, v))
		}
	}
	within := func(name string, v float64, r predprey.Range) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalid, name, v, r.Min, r.Max))
		}
	}

	positive("width", c.Width)
	positive("height", c.Height)
	positive("scale", c.Scale)
	positive("history_limit", c.HistoryLimit)
	within("reproduction_rate", c.Params.ReproductionRate, predprey.ReproductionRateRange)
	within("energy_loss", c.Params.EnergyLoss, predprey.EnergyLossRange)
	within("energy_gain", c.Params.EnergyGain, predprey.EnergyGainRange)
	within("speed", float64(c.Params.Speed), predprey.SpeedRange)
	within("initial_rabbits", float64(c.Params.InitialRabbits), predprey.InitialRabbitsRange)
	within("initial_wolves", float64(c.Params.InitialWolves), predprey.InitialWolvesRange)
	if c.Params.InitialEnergy <= 0 {
		errs = append(errs, fmt.Errorf("%w: initial_energy must be positive, got %v", ErrInvalid, c.Params.InitialEnergy))
	}
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}

// ResolveSeed replaces a zero seed with a freshly generated one.
func (c *Config) ResolveSeed() error {
	if c.Seed != 0 {
		return nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return fmt.Errorf("resolve seed: %w", err)
	}
	c.Seed = seed
	return nil
}

// World converts the configuration into automaton options.
func (c Config) World() predprey.Config {
	return predprey.Config{
		Width:        c.Width,
		Height:       c.Height,
		Seed:         c.Seed,
		HistoryLimit: c.HistoryLimit,
		Params: predprey.Params{
			ReproductionRate: c.Params.ReproductionRate,
			EnergyLoss:       c.Params.EnergyLoss,
			EnergyGain:       c.Params.EnergyGain,
			Speed:            c.Params.Speed,
			InitialRabbits:   c.Params.InitialRabbits,
			InitialWolves:    c.Params.InitialWolves,
			InitialEnergy:    c.Params.InitialEnergy,
		},
	}
}
