package simulation

import (
	"fmt"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/config"
)

// OptionsFromConfig builds engine options from the simulation and
// sensitivity configuration sections.
//
// Precondition: both sections must have passed config validation.
// Postcondition: Returns Options or an error naming an unknown convention.
func OptionsFromConfig(sim config.SimulationConfig, sens config.SensitivityConfig) (Options, error) {
	batchConv, err := balance.ParseConvention(sim.BatchConvention)
	if err != nil {
		return Options{}, fmt.Errorf("simulation.batch_convention: %w", err)
	}
	queryConv, err := balance.ParseConvention(sim.QueryConvention)
	if err != nil {
		return Options{}, fmt.Errorf("simulation.query_convention: %w", err)
	}
	sensConv, err := balance.ParseConvention(sens.Convention)
	if err != nil {
		return Options{}, fmt.Errorf("sensitivity.convention: %w", err)
	}

	incoming := balance.Incoming{Phys: sim.IncomingPhysDPS, Mag: sim.IncomingMagDPS}
	return Options{
		Incoming:        incoming,
		BatchConvention: batchConv,
		QueryConvention: queryConv,
		Sensitivity: balance.Params{
			Level:         sens.Level,
			DefenderArmor: sens.DefenderArmor,
			DefenderMR:    sens.DefenderMR,
			PhysMix:       sens.PhysMix,
			Robust:        sens.Robust,
			Incoming:      incoming,
			Convention:    sensConv,
		},
		Sample: sens.Sample,
	}, nil
}

// QueryFromConfig returns the default per-call scenario.
func QueryFromConfig(sim config.SimulationConfig) Query {
	return Query{
		Level:         sim.Level,
		DefenderArmor: sim.DefenderArmor,
		DefenderMR:    sim.DefenderMR,
		PhysMix:       sim.PhysMix,
		Robust:        sim.Robust,
	}
}
