package simulation

import (
	"testing"

	"github.com/0nch41n/neuroprint/internal/engine"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/network"
)

// Runner orchestrates multi-memory simulation experiments against a real
// engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	eng := engine.New(engine.Options{
		StepsPerMemory: scenario.StepsPerMemory,
		Seed:           scenario.Seed,
		Plasticity:     scenario.Plasticity,
	})

	id := r.buildNetwork(eng, scenario)
	net, err := eng.Network(id)
	if err != nil {
		r.t.Fatalf("%s: Network: %v", scenario.Name, err)
	}

	if scenario.Learning {
		if err := eng.SetLearningEnabled(id, true); err != nil {
			r.t.Fatalf("%s: SetLearningEnabled: %v", scenario.Name, err)
		}
	}

	memories := make([]MemoryResult, len(scenario.Memories))
	for i, text := range scenario.Memories {
		if scenario.BeforeMemory != nil {
			scenario.BeforeMemory(i, net)
		}
		enc, err := eng.ProcessMemory(id, text)
		if err != nil {
			r.t.Fatalf("%s: memory %d: ProcessMemory: %v", scenario.Name, i, err)
		}
		memories[i] = MemoryResult{
			Index:    i,
			Text:     text,
			Encoding: enc,
			Weights:  snapshotWeights(net),
		}
	}

	return SimulationResult{
		NetworkID: id,
		Memories:  memories,
		Network:   net,
		Engine:    eng,
	}
}

// buildNetwork creates the network, layers, synapses, and concepts.
func (r *Runner) buildNetwork(eng *engine.Engine, scenario Scenario) string {
	r.t.Helper()

	id, err := eng.CreateNetwork(scenario.Name, scenario.Inputs, scenario.Outputs)
	if err != nil {
		r.t.Fatalf("%s: CreateNetwork: %v", scenario.Name, err)
	}

	for _, layer := range scenario.Hidden {
		if err := eng.AddHiddenLayer(id, layer.Count, layer.Position); err != nil {
			r.t.Fatalf("%s: AddHiddenLayer(%d, %d): %v",
				scenario.Name, layer.Count, layer.Position, err)
		}
	}

	for _, syn := range scenario.Synapses {
		weight := eng.RandomSynapseWeight()
		if syn.Weight != "" {
			w, err := fixedpoint.Parse(syn.Weight)
			if err != nil {
				r.t.Fatalf("%s: synapse weight %q: %v", scenario.Name, syn.Weight, err)
			}
			weight = w
		}
		if err := eng.CreateSynapse(id, syn.Source, syn.Target, weight); err != nil {
			r.t.Fatalf("%s: CreateSynapse(%d, %d): %v",
				scenario.Name, syn.Source, syn.Target, err)
		}
	}

	for _, c := range scenario.Concepts {
		threshold, err := fixedpoint.Parse(c.Threshold)
		if err != nil {
			r.t.Fatalf("%s: concept threshold %q: %v", scenario.Name, c.Threshold, err)
		}
		if _, err := eng.RegisterConcept(c.Name, c.Neurons, threshold); err != nil {
			r.t.Fatalf("%s: RegisterConcept(%s): %v", scenario.Name, c.Name, err)
		}
	}

	return id
}

// snapshotWeights captures every synapse weight in the network.
func snapshotWeights(net *network.Network) map[string]fixedpoint.Value {
	weights := make(map[string]fixedpoint.Value)
	for source, syns := range net.Synapses {
		for _, syn := range syns {
			weights[SynapseKey(source, syn.Target)] = syn.Weight
		}
	}
	return weights
}
