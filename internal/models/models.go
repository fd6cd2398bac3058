// Package models defines the core domain types shared across the engine:
// neurons, synapses, spikes, concepts, and neural encodings. All numeric
// fields use the fixed-point convention from internal/fixedpoint.
package models

import (
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

// NeuronType classifies a neuron's role in the network.
type NeuronType string

const (
	// NeuronInput neurons form layer 0. They never receive synapses;
	// only external input sets their potential.
	NeuronInput NeuronType = "input"

	// NeuronExcitatory neurons carry positive-weight synapses.
	NeuronExcitatory NeuronType = "excitatory"

	// NeuronInhibitory neurons force their outgoing synapse weights
	// non-positive at creation.
	NeuronInhibitory NeuronType = "inhibitory"
)

// Neuron is a single simulated cell. Invariants: RefractoryCounter never
// exceeds RefractoryPeriod, and a neuron fires at most once per time step.
type Neuron struct {
	Active            bool             `json:"active"`
	Type              NeuronType       `json:"type"`
	MembranePotential fixedpoint.Value `json:"membrane_potential"`
	RestingPotential  fixedpoint.Value `json:"resting_potential"`
	Threshold         fixedpoint.Value `json:"threshold"`
	RefractoryPeriod  uint8            `json:"refractory_period"`
	RefractoryCounter uint8            `json:"refractory_counter"`
	HasFired          bool             `json:"has_fired"`
	Layer             uint8            `json:"layer"`
}

// Refractory reports whether the neuron is currently in its refractory
// interval and therefore cannot fire or be excited.
func (n *Neuron) Refractory() bool { return n.RefractoryCounter > 0 }

// Synapse is a directional connection owned by its source neuron.
// Synapses only run from a lower layer to a strictly higher one, which
// keeps the network acyclic by construction.
type Synapse struct {
	Target           int              `json:"target"`
	Weight           fixedpoint.Value `json:"weight"`
	LastWeightUpdate uint64           `json:"last_weight_update"`
}

// Spike records that a neuron fired at a given time step.
type Spike struct {
	NeuronID int    `json:"neuron_id"`
	TimeStep uint64 `json:"time_step"`
}

// Concept is a named cluster of neuron ids with an activation threshold,
// used to label higher-level themes detected in an input. Concepts are
// registered once and persist across encodings.
type Concept struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	AssociatedNeurons   []int            `json:"associated_neurons"`
	ActivationThreshold fixedpoint.Value `json:"activation_threshold"`
	LastActivated       uint64           `json:"last_activated"`
}

// NeuralEncoding is the derived, immutable result of one processing run:
// which neurons fired, how strongly each registered concept activated,
// and a content fingerprint. Reprocessing replaces the encoding entirely;
// it is never merged with a prior one.
type NeuralEncoding struct {
	NetworkID            string             `json:"network_id"`
	ActivatedNeurons     []int              `json:"activated_neurons"`
	ConceptActivations   []fixedpoint.Value `json:"concept_activations"`
	LastProcessed        uint64             `json:"last_processed"`
	NeuroplasticityScore int                `json:"neuroplasticity_score"`
	Fingerprint          string             `json:"fingerprint"`
}
