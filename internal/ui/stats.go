package ui

import (
	"fmt"

	"predprey/internal/control"
	"predprey/internal/core"
)

var statsParams = []struct {
	key, label string
}{
	{"reproduction_rate", "Reproduction"},
	{"energy_loss", "Energy loss"},
	{"energy_gain", "Energy gain"},
}

// StatusLines formats the panel statistics: populations, the live dynamics
// parameters of sim and the run state.
func StatusLines(st control.Status, sim core.Sim) []string {
	state := "paused"
	switch {
	case st.Extinct:
		state = "extinct"
	case st.Running:
		state = "running"
	}
	lines := []string{
		fmt.Sprintf("Generation    %d", st.Generation),
		fmt.Sprintf("Rabbits       %d", st.Counts.Rabbits),
		fmt.Sprintf("Wolves        %d (%dF/%dM)", st.Counts.Wolves(), st.Counts.FemaleWolves, st.Counts.MaleWolves),
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		snapshot := p.Parameters()
		for _, sp := range statsParams {
			if param, ok := snapshot.Lookup(sp.key); ok {
				lines = append(lines, fmt.Sprintf("%-13s %s", sp.label, param.Value))
			}
		}
	}
	return append(lines,
		fmt.Sprintf("Speed         %d steps/s", st.TPS),
		fmt.Sprintf("State         %s", state),
		fmt.Sprintf("Seed          %d", st.Seed),
	)
}
