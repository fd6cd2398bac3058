// Package plasticity implements Spike-Timing-Dependent Plasticity (STDP):
// synapse weights strengthen when the post-synaptic neuron fires after the
// pre-synaptic one (potentiation, LTP) and weaken when it fires before
// (depression, LTD). The magnitude of each change decays with the spike
// interval through the fixed-point Taylor approximation of e^-x.
package plasticity

import (
	"fmt"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

// Config holds tunable parameters for STDP learning.
type Config struct {
	// LTPMax is the maximum potentiation per update. Default: 0.1 scaled.
	LTPMax fixedpoint.Value

	// LTDMax is the maximum depression per update. Default: -0.05 scaled.
	// Potentiation is twice as strong as depression.
	LTDMax fixedpoint.Value

	// TimeConstant is the decay time constant in steps. Default: 5.
	TimeConstant fixedpoint.Value

	// MaxRecentSpikes is the number of most recent global spikes examined
	// per pass. Default: 50.
	MaxRecentSpikes int

	// MinWeight and MaxWeight bound synapse weights after any update.
	MinWeight fixedpoint.Value
	MaxWeight fixedpoint.Value
}

// DefaultConfig returns the default STDP configuration.
func DefaultConfig() Config {
	one := fixedpoint.One()
	ltp, _ := one.DivInt(10) // 0.1
	ltd, _ := one.DivInt(20) // 0.05
	return Config{
		LTPMax:          ltp,
		LTDMax:          ltd.Neg(),
		TimeConstant:    fixedpoint.FromInt(constants.PlasticityTimeConstant),
		MaxRecentSpikes: constants.MaxRecentSpikes,
		MinWeight:       fixedpoint.FromInt(-constants.MaxWeightUnits),
		MaxWeight:       fixedpoint.FromInt(constants.MaxWeightUnits),
	}
}

// Delta computes the weight change for a pre/post spike pair separated by
// deltaSteps time steps. Potentiation deltas are non-negative,
// depression deltas non-positive; both shrink as the interval grows:
//
//	delta = maxChange * expDecay(deltaSteps, timeConstant)
func Delta(deltaSteps uint64, potentiation bool, cfg Config) (fixedpoint.Value, error) {
	decay, err := fixedpoint.ExpDecay(fixedpoint.FromInt(int64(deltaSteps)), cfg.TimeConstant)
	if err != nil {
		return fixedpoint.Zero(), fmt.Errorf("stdp delta: %w", err)
	}
	maxChange := cfg.LTPMax
	if !potentiation {
		maxChange = cfg.LTDMax
	}
	return maxChange.Mul(decay), nil
}

// Potentiate returns the new weight after an LTP update, clamped to
// cfg.MaxWeight from above.
func Potentiate(weight fixedpoint.Value, deltaSteps uint64, cfg Config) (fixedpoint.Value, error) {
	d, err := Delta(deltaSteps, true, cfg)
	if err != nil {
		return weight, err
	}
	next := weight.Add(d)
	if next.Cmp(cfg.MaxWeight) > 0 {
		return cfg.MaxWeight, nil
	}
	return next, nil
}

// Depress returns the new weight after an LTD update, clamped to
// cfg.MinWeight from below.
func Depress(weight fixedpoint.Value, deltaSteps uint64, cfg Config) (fixedpoint.Value, error) {
	d, err := Delta(deltaSteps, false, cfg)
	if err != nil {
		return weight, err
	}
	next := weight.Add(d)
	if next.Cmp(cfg.MinWeight) < 0 {
		return cfg.MinWeight, nil
	}
	return next, nil
}
