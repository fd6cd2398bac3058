package simulation

import (
	"testing"

	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

// AssertWeightBounded asserts that all synapse weights in all snapshots
// fall within [minUnits, maxUnits] whole units.
func AssertWeightBounded(t *testing.T, result SimulationResult, minUnits, maxUnits int64) {
	t.Helper()
	min, max := fixedpoint.FromInt(minUnits), fixedpoint.FromInt(maxUnits)
	for _, mr := range result.Memories {
		for key, w := range mr.Weights {
			if w.Cmp(min) < 0 || w.Cmp(max) > 0 {
				t.Errorf("AssertWeightBounded: memory %d: synapse %s weight %s not in [%d, %d]",
					mr.Index, key, w, minUnits, maxUnits)
			}
		}
	}
}

// AssertWeightIncreased asserts that a specific synapse weight is higher
// after a later memory than after an earlier one.
func AssertWeightIncreased(t *testing.T, result SimulationResult, source, target, fromMemory, toMemory int) {
	t.Helper()
	key := SynapseKey(source, target)
	wFrom, okFrom := result.Memories[fromMemory].Weights[key]
	wTo, okTo := result.Memories[toMemory].Weights[key]
	if !okFrom || !okTo {
		t.Errorf("AssertWeightIncreased: synapse %s missing from snapshot", key)
		return
	}
	if wTo.Cmp(wFrom) <= 0 {
		t.Errorf("AssertWeightIncreased: synapse %s did not increase: memory %d=%s, memory %d=%s",
			key, fromMemory, wFrom, toMemory, wTo)
	}
}

// AssertWeightUnchanged asserts that a specific synapse weight is
// identical across every snapshot.
func AssertWeightUnchanged(t *testing.T, result SimulationResult, source, target int) {
	t.Helper()
	key := SynapseKey(source, target)
	if len(result.Memories) == 0 {
		t.Fatal("AssertWeightUnchanged: no memories")
	}
	first, ok := result.Memories[0].Weights[key]
	if !ok {
		t.Errorf("AssertWeightUnchanged: synapse %s missing from first snapshot", key)
		return
	}
	for _, mr := range result.Memories[1:] {
		w, ok := mr.Weights[key]
		if !ok {
			t.Errorf("AssertWeightUnchanged: memory %d: synapse %s missing", mr.Index, key)
			continue
		}
		if !w.Equal(first) {
			t.Errorf("AssertWeightUnchanged: synapse %s changed: memory 0=%s, memory %d=%s",
				key, first, mr.Index, w)
		}
	}
}

// AssertNeuronActivated asserts that the given neuron appears in the
// memory's activated set.
func AssertNeuronActivated(t *testing.T, result SimulationResult, memoryIndex, neuronID int) {
	t.Helper()
	for _, id := range result.Memories[memoryIndex].Encoding.ActivatedNeurons {
		if id == neuronID {
			return
		}
	}
	t.Errorf("AssertNeuronActivated: memory %d: neuron %d not in activated set %v",
		memoryIndex, neuronID, result.Memories[memoryIndex].Encoding.ActivatedNeurons)
}

// AssertNeuronSilent asserts that the given neuron never spiked during
// the memory.
func AssertNeuronSilent(t *testing.T, result SimulationResult, memoryIndex, neuronID int) {
	t.Helper()
	for _, id := range result.Memories[memoryIndex].Encoding.ActivatedNeurons {
		if id == neuronID {
			t.Errorf("AssertNeuronSilent: memory %d: neuron %d unexpectedly activated",
				memoryIndex, neuronID)
			return
		}
	}
}

// AssertFingerprintsDistinct asserts that every memory produced a unique
// fingerprint.
func AssertFingerprintsDistinct(t *testing.T, result SimulationResult) {
	t.Helper()
	seen := make(map[string]int)
	for _, mr := range result.Memories {
		fp := mr.Encoding.Fingerprint
		if prev, ok := seen[fp]; ok {
			t.Errorf("AssertFingerprintsDistinct: memories %d and %d share fingerprint %s",
				prev, mr.Index, fp[:12])
		}
		seen[fp] = mr.Index
	}
}

// AssertScoresBounded asserts that every neuroplasticity score lies in
// [0, 100].
func AssertScoresBounded(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, mr := range result.Memories {
		if s := mr.Encoding.NeuroplasticityScore; s < 0 || s > 100 {
			t.Errorf("AssertScoresBounded: memory %d: score %d outside [0, 100]", mr.Index, s)
		}
	}
}

// AssertRefractoryInvariant asserts that no refractory counter in the
// final network state exceeds its neuron's period.
func AssertRefractoryInvariant(t *testing.T, result SimulationResult) {
	t.Helper()
	for id, nr := range result.Network.Neurons {
		if nr.RefractoryCounter > nr.RefractoryPeriod {
			t.Errorf("AssertRefractoryInvariant: neuron %d counter %d exceeds period %d",
				id, nr.RefractoryCounter, nr.RefractoryPeriod)
		}
	}
}

// AssertFeedForward asserts that every synapse still runs from a lower
// layer to a strictly higher one.
func AssertFeedForward(t *testing.T, result SimulationResult) {
	t.Helper()
	net := result.Network
	for source, syns := range net.Synapses {
		for _, syn := range syns {
			if net.Neurons[source].Layer >= net.Neurons[syn.Target].Layer {
				t.Errorf("AssertFeedForward: synapse %d->%d violates layer order (%d >= %d)",
					source, syn.Target, net.Neurons[source].Layer, net.Neurons[syn.Target].Layer)
			}
		}
	}
}

// CountActivated returns the size of the memory's activated set.
func CountActivated(result SimulationResult, memoryIndex int) int {
	return len(result.Memories[memoryIndex].Encoding.ActivatedNeurons)
}
