package simulation_test

import (
	"testing"

	"github.com/0nch41n/neuroprint/internal/simulation"
)

// layeredScenario builds a realistic three-layer network: 8 inputs fan
// into 8 hidden neurons, which fan into 4 outputs. Hidden neuron ids are
// 12..19 (appended after the outputs at 8..11); their excitatory or
// inhibitory type comes from the seeded randomness source.
func layeredScenario(name string, memories []string, seed int64) simulation.Scenario {
	var synapses []simulation.SynapseSpec
	for in := 0; in < 8; in++ {
		for hidden := 12; hidden < 20; hidden++ {
			synapses = append(synapses, simulation.SynapseSpec{Source: in, Target: hidden, Weight: "0.6"})
		}
	}
	for hidden := 12; hidden < 20; hidden++ {
		for out := 8; out < 12; out++ {
			synapses = append(synapses, simulation.SynapseSpec{Source: hidden, Target: out, Weight: "0.8"})
		}
	}
	return simulation.Scenario{
		Name:     name,
		Inputs:   8,
		Outputs:  4,
		Hidden:   []simulation.LayerSpec{{Count: 8, Position: 1}},
		Synapses: synapses,
		Memories: memories,
		Seed:     seed,
	}
}

// TestE2EStability is the capstone test: a three-layer network with
// mixed excitatory and inhibitory hidden neurons, processing 20 memories
// with learning enabled. It validates that the full pipeline (encoding +
// two-phase stepping + refractory gating + STDP) does not exhibit
// pathological dynamics: weights stay bounded, scores stay bounded, and
// the topology invariants survive.
func TestE2EStability(t *testing.T) {
	memories := []string{
		"~~~~~~~~", "zzzzzzzz", "qwerty~~", "~~zz~~zz", "hello!!!",
		"~~~~~~~~", "HELLOooo", "zz~~zz~~", "xxxxxxxx", "~~~~zzzz",
		"yyyy~~~~", "~~~~~~~~", "zzzzzzzz", "abcdefgh", "~~zz~~zz",
		"~~~~~~~~", "wwwwwwww", "~~~~zzzz", "zzzzzzzz", "~~~~~~~~",
	}
	scenario := layeredScenario("e2e-stability", memories, 11)
	scenario.Learning = true

	r := simulation.NewRunner(t)
	result := r.Run(scenario)

	simulation.AssertWeightBounded(t, result, -1000, 1000)
	simulation.AssertScoresBounded(t, result)
	simulation.AssertRefractoryInvariant(t, result)
	simulation.AssertFeedForward(t, result)
	simulation.AssertFingerprintsDistinct(t, result)
}

// TestE2EDeterminism runs the identical scenario twice from the same
// seed and expects byte-identical fingerprints for every memory.
func TestE2EDeterminism(t *testing.T) {
	memories := []string{"~~~~~~~~", "zz~~zz~~", "hello!!!", "~~~~~~~~"}

	build := func() simulation.Scenario {
		s := layeredScenario("e2e-determinism", memories, 3)
		s.Learning = true
		// A few randomly initialized synapses exercise the seeded
		// weight source too.
		s.Synapses = append(s.Synapses,
			simulation.SynapseSpec{Source: 0, Target: 8},
			simulation.SynapseSpec{Source: 1, Target: 9},
		)
		return s
	}

	first := simulation.NewRunner(t).Run(build())
	second := simulation.NewRunner(t).Run(build())

	for i := range memories {
		a := first.Memories[i].Encoding
		b := second.Memories[i].Encoding
		if a.Fingerprint != b.Fingerprint {
			t.Errorf("memory %d: fingerprints diverged: %s vs %s",
				i, a.Fingerprint[:12], b.Fingerprint[:12])
		}
		if a.NeuroplasticityScore != b.NeuroplasticityScore {
			t.Errorf("memory %d: scores diverged: %d vs %d",
				i, a.NeuroplasticityScore, b.NeuroplasticityScore)
		}
	}
}

// TestE2EConceptsAndSimilarity processes the same text twice and a
// dissimilar text once, then checks the similarity ordering.
func TestE2EConceptsAndSimilarity(t *testing.T) {
	var synapses []simulation.SynapseSpec
	for in := 0; in < 4; in++ {
		for out := 4; out < 6; out++ {
			synapses = append(synapses, simulation.SynapseSpec{Source: in, Target: out, Weight: "0.5"})
		}
	}

	r := simulation.NewRunner(t)
	result := r.Run(simulation.Scenario{
		Name:     "concepts-similarity",
		Inputs:   4,
		Outputs:  2,
		Synapses: synapses,
		Concepts: []simulation.ConceptSpec{
			{Name: "outputs", Neurons: []int{4, 5}, Threshold: "0.5"},
		},
		Memories: []string{"~~", "~~", "!!"},
	})

	same, err := result.Engine.Similarity(result.Memories[0].Encoding, result.Memories[1].Encoding)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if same != 100 {
		t.Errorf("identical memories scored %d, want 100", same)
	}

	different, err := result.Engine.Similarity(result.Memories[0].Encoding, result.Memories[2].Encoding)
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if different >= same {
		t.Errorf("dissimilar memories scored %d, not below %d", different, same)
	}
	if different < 0 || different > 100 {
		t.Errorf("similarity %d outside [0, 100]", different)
	}

	simulation.AssertFingerprintsDistinct(t, result)
	// '!' barely nudges the inputs: nothing fires.
	if got := simulation.CountActivated(result, 2); got != 0 {
		t.Errorf("weak memory activated %d neurons, want 0", got)
	}
}
