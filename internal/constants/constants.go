// Package constants provides named constants used throughout the
// neuroprint codebase. This centralizes magic numbers for better
// maintainability and documentation.
package constants

// Topology caps
const (
	// MaxNeurons is the hard cap on neurons per network.
	MaxNeurons = 128

	// MaxFanOut is the maximum number of outgoing synapses per neuron.
	MaxFanOut = 32

	// MaxWeightUnits is the magnitude bound for synapse weights, in whole
	// fixed-point units. Weights are clamped to [-1000, 1000] scaled.
	MaxWeightUnits = 1000
)

// Neuron defaults
const (
	// DefaultRefractoryPeriod is the refractory period, in time steps, for
	// excitatory and inhibitory neurons. Input neurons have none.
	DefaultRefractoryPeriod = 2

	// ExcitatoryPercent is the percentage of hidden-layer neurons assigned
	// the excitatory type; the remainder are inhibitory.
	ExcitatoryPercent = 75
)

// Spike history bounds. Both histories are append-only within a run and
// evict oldest entries so memory stays constant regardless of run length.
const (
	// MaxSpikeLog bounds the per-network global spike log. It exceeds
	// MaxNeurons so a single step can never evict its own spikes.
	MaxSpikeLog = 256

	// MaxNeuronSpikeHistory bounds the per-neuron spike-time list.
	MaxNeuronSpikeHistory = 32

	// MaxRecentSpikes is the number of most recent global spikes examined
	// per STDP pass.
	MaxRecentSpikes = 50
)

// Memory processing
const (
	// StepsPerMemory is the number of simulation steps a single
	// ProcessMemory call advances the network.
	StepsPerMemory = 10

	// MaxMemorySpikes caps the spikes collected during one processing run.
	MaxMemorySpikes = 50

	// TextInputSpan is the number of leading text bytes mapped onto input
	// neurons; later bytes are ignored.
	TextInputSpan = 16

	// PrintableBase and PrintableRange map printable ASCII (32..126) into
	// the [0, 1] fixed-point interval: (byte - 32) / 94.
	PrintableBase  = 32
	PrintableRange = 94

	// NeuroplasticityPerNeuron is the score contribution of each activated
	// neuron; MaxNeuroplasticity caps the total.
	NeuroplasticityPerNeuron = 10
	MaxNeuroplasticity       = 100
)

// Concept activation blend: overlap ratio and the first output value are
// combined 80/20.
const (
	ConceptOverlapWeight = 8
	ConceptOutputWeight  = 2
	ConceptBlendDivisor  = 10
)

// Similarity weights: concept-activation distance dominates activated-
// neuron overlap 70/30 in the final [0, 100] score.
const (
	ConceptSimilarityWeight = 70
	NeuronSimilarityWeight  = 30
)

// Plasticity timing
const (
	// PlasticityTimeConstant is the STDP decay time constant, in steps.
	PlasticityTimeConstant = 5
)
