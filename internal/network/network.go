// Package network implements the spiking-network topology store and the
// discrete-time simulation engine. A Network owns its neurons, synapse
// adjacency, and spike histories; no other component mutates potentials
// or weights. Topology is strictly feed-forward: synapses only run from a
// lower layer to a strictly higher one, so each step is a single forward
// sweep with no cycle detection.
package network

import (
	"fmt"
	"math/rand"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
)

// Network is one simulated spiking network. All fields are exported so a
// network round-trips through JSON for persistence; callers outside this
// package must treat them as read-only.
type Network struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	InputCount  int    `json:"input_count"`
	OutputCount int    `json:"output_count"`
	LayerCount  int    `json:"layer_count"`

	// TimeStep is the monotonic step counter. It never resets.
	TimeStep        uint64 `json:"time_step"`
	LearningEnabled bool   `json:"learning_enabled"`

	Neurons []models.Neuron `json:"neurons"`

	// Synapses holds each neuron's outgoing synapse list, indexed by
	// source neuron id.
	Synapses [][]models.Synapse `json:"synapses"`

	// SpikeLog is the bounded global log of recent spikes, oldest first.
	SpikeLog []models.Spike `json:"spike_log"`

	// NeuronSpikes holds each neuron's bounded list of recent spike
	// times, oldest first.
	NeuronSpikes [][]uint64 `json:"neuron_spikes"`
}

// New creates a network with an input layer (layer 0) and an output layer
// (layer 1). Input neurons have threshold 1.0 and no refractory period;
// output neurons are excitatory with the default refractory period.
// Output neurons occupy ids [inputCount, inputCount+outputCount).
func New(name string, inputCount, outputCount int) (*Network, error) {
	if inputCount <= 0 || outputCount <= 0 {
		return nil, fmt.Errorf("%w: input and output counts must be positive (got %d, %d)",
			models.ErrInvalidTopology, inputCount, outputCount)
	}
	total := inputCount + outputCount
	if total > constants.MaxNeurons {
		return nil, fmt.Errorf("%w: %d neurons exceeds cap of %d",
			models.ErrInvalidTopology, total, constants.MaxNeurons)
	}

	n := &Network{
		Name:         name,
		InputCount:   inputCount,
		OutputCount:  outputCount,
		LayerCount:   2,
		Neurons:      make([]models.Neuron, 0, total),
		Synapses:     make([][]models.Synapse, total),
		NeuronSpikes: make([][]uint64, total),
	}

	for i := 0; i < inputCount; i++ {
		n.Neurons = append(n.Neurons, models.Neuron{
			Active:    true,
			Type:      models.NeuronInput,
			Threshold: fixedpoint.One(),
			Layer:     0,
		})
	}
	for i := 0; i < outputCount; i++ {
		n.Neurons = append(n.Neurons, models.Neuron{
			Active:           true,
			Type:             models.NeuronExcitatory,
			Threshold:        fixedpoint.One(),
			RefractoryPeriod: constants.DefaultRefractoryPeriod,
			Layer:            1,
		})
	}
	return n, nil
}

// AddHiddenLayer inserts count neurons as a new layer at the given
// position, which must lie strictly between the input layer and one past
// the last existing layer. Every neuron at or above the position shifts
// up one layer. New neurons are split excitatory/inhibitory 75/25 using
// the supplied randomness source.
func (n *Network) AddHiddenLayer(count, position int, rng *rand.Rand) error {
	if count <= 0 {
		return fmt.Errorf("%w: hidden layer count must be positive (got %d)",
			models.ErrInvalidTopology, count)
	}
	if position <= 0 || position >= n.LayerCount {
		return fmt.Errorf("%w: layer position %d not strictly inside [1, %d]",
			models.ErrInvalidTopology, position, n.LayerCount-1)
	}
	if len(n.Neurons)+count > constants.MaxNeurons {
		return fmt.Errorf("%w: %d neurons would exceed cap of %d",
			models.ErrInvalidTopology, len(n.Neurons)+count, constants.MaxNeurons)
	}

	for i := range n.Neurons {
		if int(n.Neurons[i].Layer) >= position {
			n.Neurons[i].Layer++
		}
	}
	for i := 0; i < count; i++ {
		typ := models.NeuronExcitatory
		if rng.Intn(100) >= constants.ExcitatoryPercent {
			typ = models.NeuronInhibitory
		}
		n.Neurons = append(n.Neurons, models.Neuron{
			Active:           true,
			Type:             typ,
			Threshold:        fixedpoint.One(),
			RefractoryPeriod: constants.DefaultRefractoryPeriod,
			Layer:            uint8(position),
		})
		n.Synapses = append(n.Synapses, nil)
		n.NeuronSpikes = append(n.NeuronSpikes, nil)
	}
	n.LayerCount++
	return nil
}

// CreateSynapse adds a directional synapse from source to target with the
// given weight. The weight's sign is forced to match the source neuron's
// polarity: inhibitory sources always carry non-positive weights.
func (n *Network) CreateSynapse(source, target int, weight fixedpoint.Value) error {
	if source < 0 || source >= len(n.Neurons) {
		return fmt.Errorf("%w: source %d out of range", models.ErrInvalidNeuron, source)
	}
	if target < 0 || target >= len(n.Neurons) {
		return fmt.Errorf("%w: target %d out of range", models.ErrInvalidNeuron, target)
	}
	maxWeight := fixedpoint.FromInt(constants.MaxWeightUnits)
	if weight.Abs().Cmp(maxWeight) > 0 {
		return fmt.Errorf("%w: |%s| exceeds %d", models.ErrWeightOutOfRange,
			weight, constants.MaxWeightUnits)
	}
	src := &n.Neurons[source]
	tgt := &n.Neurons[target]
	if src.Layer >= tgt.Layer {
		return fmt.Errorf("%w: synapse %d->%d is not feed-forward (layers %d >= %d)",
			models.ErrInvalidTopology, source, target, src.Layer, tgt.Layer)
	}
	if len(n.Synapses[source]) >= constants.MaxFanOut {
		return fmt.Errorf("%w: neuron %d already has %d outgoing synapses",
			models.ErrInvalidTopology, source, constants.MaxFanOut)
	}

	if src.Type == models.NeuronInhibitory && weight.Sign() > 0 {
		weight = weight.Neg()
	}
	n.Synapses[source] = append(n.Synapses[source], models.Synapse{
		Target:           target,
		Weight:           weight,
		LastWeightUpdate: n.TimeStep,
	})
	return nil
}

// SetInputs injects an external input vector by setting input-neuron
// potentials directly. A neuron whose potential reaches its threshold is
// flagged to fire on the next step.
func (n *Network) SetInputs(values []fixedpoint.Value) error {
	if len(values) != n.InputCount {
		return fmt.Errorf("%w: got %d values, network has %d inputs",
			models.ErrInputSizeMismatch, len(values), n.InputCount)
	}
	for i, v := range values {
		neuron := &n.Neurons[i]
		neuron.MembranePotential = v
		neuron.HasFired = v.Cmp(neuron.Threshold) >= 0
	}
	return nil
}

// Outputs returns the membrane potentials of the output neurons, which by
// convention immediately follow the input block.
func (n *Network) Outputs() []fixedpoint.Value {
	out := make([]fixedpoint.Value, n.OutputCount)
	for i := 0; i < n.OutputCount; i++ {
		out[i] = n.Neurons[n.InputCount+i].MembranePotential
	}
	return out
}

// RecentSpikes returns up to max of the most recent global spikes in
// chronological order.
func (n *Network) RecentSpikes(max int) []models.Spike {
	if max <= 0 || len(n.SpikeLog) == 0 {
		return nil
	}
	start := 0
	if len(n.SpikeLog) > max {
		start = len(n.SpikeLog) - max
	}
	out := make([]models.Spike, len(n.SpikeLog)-start)
	copy(out, n.SpikeLog[start:])
	return out
}

// SpikesSince returns the logged spikes with time step >= since, oldest
// first.
func (n *Network) SpikesSince(since uint64) []models.Spike {
	var out []models.Spike
	for _, sp := range n.SpikeLog {
		if sp.TimeStep >= since {
			out = append(out, sp)
		}
	}
	return out
}

// LastSpikeTime returns the most recent spike time recorded for the
// given neuron, and whether one exists.
func (n *Network) LastSpikeTime(neuronID int) (uint64, bool) {
	if neuronID < 0 || neuronID >= len(n.NeuronSpikes) {
		return 0, false
	}
	times := n.NeuronSpikes[neuronID]
	if len(times) == 0 {
		return 0, false
	}
	return times[len(times)-1], true
}

// recordSpike appends to both spike histories, evicting oldest entries
// beyond the configured bounds.
func (n *Network) recordSpike(neuronID int) {
	n.SpikeLog = append(n.SpikeLog, models.Spike{NeuronID: neuronID, TimeStep: n.TimeStep})
	if len(n.SpikeLog) > constants.MaxSpikeLog {
		n.SpikeLog = n.SpikeLog[len(n.SpikeLog)-constants.MaxSpikeLog:]
	}
	times := append(n.NeuronSpikes[neuronID], n.TimeStep)
	if len(times) > constants.MaxNeuronSpikeHistory {
		times = times[len(times)-constants.MaxNeuronSpikeHistory:]
	}
	n.NeuronSpikes[neuronID] = times
}
