package engine

import (
	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/encoding"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
	"github.com/0nch41n/neuroprint/internal/similarity"
)

// ProcessMemory runs one full processing pass for the given text: encode
// the text onto the input layer, advance the fixed number of steps,
// collect the spikes recorded during the run, and derive the encoding.
// Each call produces a fresh NeuralEncoding; it replaces any prior
// encoding for the same memory rather than merging with it.
func (e *Engine) ProcessMemory(id string, text string) (*models.NeuralEncoding, error) {
	net, err := e.lookup(id)
	if err != nil {
		return nil, err
	}

	if err := net.SetInputs(encoding.TextToInputs(text, net.InputCount)); err != nil {
		return nil, err
	}

	// Collect per step: the global log is bounded, so reading it once at
	// the end could miss early spikes in a busy run.
	collected := make([]models.Spike, 0, constants.MaxMemorySpikes)
	for i := 0; i < e.steps; i++ {
		before := net.TimeStep
		if err := e.step(net); err != nil {
			return nil, err
		}
		for _, sp := range net.SpikesSince(before) {
			if len(collected) >= constants.MaxMemorySpikes {
				break
			}
			collected = append(collected, sp)
		}
	}

	// Distinct neuron ids, ordered by first spike.
	seen := make(map[int]bool, len(collected))
	activated := make([]int, 0, len(collected))
	for _, sp := range collected {
		if !seen[sp.NeuronID] {
			seen[sp.NeuronID] = true
			activated = append(activated, sp.NeuronID)
		}
	}

	outputs := net.Outputs()
	output0 := fixedpoint.Zero()
	if len(outputs) > 0 {
		output0 = outputs[0]
	}
	activations := e.concepts.Activations(activated, output0, net.TimeStep)

	enc := &models.NeuralEncoding{
		NetworkID:            id,
		ActivatedNeurons:     activated,
		ConceptActivations:   activations,
		LastProcessed:        net.TimeStep,
		NeuroplasticityScore: encoding.PlasticityScore(len(activated)),
		Fingerprint:          encoding.Fingerprint(text, activated, activations, net.TimeStep),
	}
	e.log.Info("memory processed", "network", id,
		"activated", len(activated), "score", enc.NeuroplasticityScore,
		"fingerprint", enc.Fingerprint[:12])
	return enc, nil
}

// Similarity compares two encodings into a bounded [0, 100] score.
func (e *Engine) Similarity(a, b *models.NeuralEncoding) (int, error) {
	return similarity.Score(a, b)
}
