package network

import (
	"fmt"

	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/plasticity"
)

// leakFactor is the per-step decay ratio applied to sub-threshold
// potentials: exactly (S - S/10) / S = 0.9 in fixed-point form.
var leakFactor = mustLeakFactor()

func mustLeakFactor() fixedpoint.Value {
	tenth, err := fixedpoint.One().DivInt(10)
	if err != nil {
		panic(err)
	}
	return fixedpoint.One().Sub(tenth)
}

// Step advances the network by one discrete time step:
//
//  1. Every neuron flagged as fired records a spike, propagates its
//     synapse weights to non-refractory targets, resets to its resting
//     potential, and enters its refractory period.
//  2. In a second pass — only after all propagation completes, so firing
//     cannot cause immediate re-firing within the same step — refractory
//     counters tick down; otherwise a neuron at or above threshold is
//     flagged to fire next step, and sub-threshold potentials leak by 0.9.
//  3. If learning is enabled, STDP adjusts synapse weights.
//  4. The time step counter increments.
func (n *Network) Step(cfg plasticity.Config) error {
	n.firePhase()
	n.integratePhase()
	if n.LearningEnabled {
		if err := n.applySTDP(cfg); err != nil {
			return fmt.Errorf("step %d: %w", n.TimeStep, err)
		}
	}
	n.TimeStep++
	return nil
}

// firePhase processes every neuron flagged by the previous step.
func (n *Network) firePhase() {
	for id := range n.Neurons {
		neuron := &n.Neurons[id]
		if !neuron.HasFired {
			continue
		}
		n.recordSpike(id)
		for _, syn := range n.Synapses[id] {
			target := &n.Neurons[syn.Target]
			if target.Refractory() {
				continue
			}
			target.MembranePotential = target.MembranePotential.Add(syn.Weight)
		}
		neuron.MembranePotential = neuron.RestingPotential
		neuron.RefractoryCounter = neuron.RefractoryPeriod
		neuron.HasFired = false
	}
}

// integratePhase ticks refractory counters and applies threshold checks
// and leaky decay to the whole network.
func (n *Network) integratePhase() {
	for id := range n.Neurons {
		neuron := &n.Neurons[id]
		switch {
		case neuron.RefractoryCounter > 0:
			neuron.RefractoryCounter--
		case neuron.MembranePotential.Cmp(neuron.Threshold) >= 0:
			neuron.HasFired = true
		default:
			neuron.MembranePotential = neuron.MembranePotential.Mul(leakFactor)
		}
	}
}

// applySTDP examines the most recent global spikes and adjusts each
// spiking neuron's outgoing synapses by the timing of the target's most
// recent spike: potentiation when the target fired after the source,
// depression when before, no change on a tie.
func (n *Network) applySTDP(cfg plasticity.Config) error {
	recent := n.RecentSpikes(cfg.MaxRecentSpikes)
	for _, pre := range recent {
		syns := n.Synapses[pre.NeuronID]
		for i := range syns {
			syn := &syns[i]
			post, ok := n.LastSpikeTime(syn.Target)
			if !ok || post == pre.TimeStep {
				continue
			}

			var (
				next fixedpoint.Value
				err  error
			)
			if post > pre.TimeStep {
				next, err = plasticity.Potentiate(syn.Weight, post-pre.TimeStep, cfg)
			} else {
				next, err = plasticity.Depress(syn.Weight, pre.TimeStep-post, cfg)
			}
			if err != nil {
				return fmt.Errorf("stdp on synapse %d->%d: %w", pre.NeuronID, syn.Target, err)
			}
			syn.Weight = next
			syn.LastWeightUpdate = n.TimeStep
		}
	}
	return nil
}
