package simulation

import (
	"fmt"

	"github.com/0nch41n/neuroprint/internal/engine"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
	"github.com/0nch41n/neuroprint/internal/network"
	"github.com/0nch41n/neuroprint/internal/plasticity"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name    string
	Inputs  int
	Outputs int

	// Hidden layers are inserted in order before any synapses are wired.
	Hidden []LayerSpec

	Synapses []SynapseSpec
	Concepts []ConceptSpec

	// Memories are the texts processed in sequence, one encoding each.
	Memories []string

	Learning       bool
	Seed           int64
	StepsPerMemory int
	Plasticity     *plasticity.Config

	// BeforeMemory, when non-nil, is called before each memory is
	// processed. Use this to manipulate network state between runs.
	BeforeMemory func(index int, net *network.Network)
}

// LayerSpec defines one hidden-layer insertion.
type LayerSpec struct {
	Count    int
	Position int
}

// SynapseSpec defines a pre-wired synapse. Weight is a decimal string
// such as "0.5"; empty draws a random initial weight from the engine's
// seeded source.
type SynapseSpec struct {
	Source int
	Target int
	Weight string
}

// ConceptSpec registers a named concept before any memory runs.
// Threshold is a decimal string.
type ConceptSpec struct {
	Name      string
	Neurons   []int
	Threshold string
}

// MemoryResult captures the outcome of processing one memory.
type MemoryResult struct {
	Index    int
	Text     string
	Encoding *models.NeuralEncoding

	// Weights is the post-memory snapshot of every synapse, keyed by
	// SynapseKey.
	Weights map[string]fixedpoint.Value
}

// SimulationResult captures all memories and the final engine state.
type SimulationResult struct {
	NetworkID string
	Memories  []MemoryResult
	Network   *network.Network
	Engine    *engine.Engine
}

// SynapseKey builds the canonical map key for a synapse.
func SynapseKey(source, target int) string {
	return fmt.Sprintf("%d->%d", source, target)
}
