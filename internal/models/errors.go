package models

import "errors"

// Engine error kinds. All are caller-visible, non-retryable precondition
// failures: every failure aborts the triggering operation with no partial
// state change, and the engine performs no internal retries.
var (
	// ErrInvalidTopology covers bad neuron/layer counts, non-feed-forward
	// synapses, and exceeded caps.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrInvalidNeuron indicates a neuron id out of range.
	ErrInvalidNeuron = errors.New("invalid neuron")

	// ErrWeightOutOfRange indicates a synapse weight beyond ±1000 scaled.
	ErrWeightOutOfRange = errors.New("weight out of range")

	// ErrUnknownNetwork indicates a network id not found in the registry.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrUnknownConcept indicates a concept id not found in the registry.
	ErrUnknownConcept = errors.New("unknown concept")

	// ErrInputSizeMismatch indicates a supplied vector whose length does
	// not match what the operation requires.
	ErrInputSizeMismatch = errors.New("input size mismatch")
)
