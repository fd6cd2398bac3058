// Package engine is the facade the owning memory/record layer consumes:
// it holds the per-network state behind opaque ids and exposes the
// topology, simulation, concept, and similarity operations. Each
// operation runs to completion with exclusive access to engine state —
// no two steps or topology mutations interleave on the same network —
// and fails atomically with no partial mutation.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/0nch41n/neuroprint/internal/concepts"
	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/logging"
	"github.com/0nch41n/neuroprint/internal/models"
	"github.com/0nch41n/neuroprint/internal/network"
	"github.com/0nch41n/neuroprint/internal/plasticity"
)

// Options configures a new Engine.
type Options struct {
	// StepsPerMemory overrides the steps one ProcessMemory call runs.
	// Zero means the default of 10.
	StepsPerMemory int

	// Seed seeds the randomness provider. Zero means seed 1.
	Seed int64

	// Plasticity overrides the STDP configuration. Nil means defaults.
	Plasticity *plasticity.Config

	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger

	// Trace receives JSONL step traces. Nil disables tracing.
	Trace *logging.TraceLogger
}

// Engine owns a registry of networks and the shared concept registry.
type Engine struct {
	networks map[string]*network.Network
	concepts *concepts.Registry
	stdp     plasticity.Config
	steps    int
	rng      *rand.Rand
	log      *slog.Logger
	trace    *logging.TraceLogger
}

// New creates an engine from the given options.
func New(opts Options) *Engine {
	stdp := plasticity.DefaultConfig()
	if opts.Plasticity != nil {
		stdp = *opts.Plasticity
	}
	steps := opts.StepsPerMemory
	if steps <= 0 {
		steps = constants.StepsPerMemory
	}
	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		networks: make(map[string]*network.Network),
		concepts: concepts.NewRegistry(),
		stdp:     stdp,
		steps:    steps,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
		trace:    opts.Trace,
	}
}

// CreateNetwork builds a network with the given input and output counts
// and returns its opaque id.
func (e *Engine) CreateNetwork(name string, inputCount, outputCount int) (string, error) {
	net, err := network.New(name, inputCount, outputCount)
	if err != nil {
		return "", err
	}
	net.ID = uuid.NewString()
	e.networks[net.ID] = net
	e.log.Info("network created", "id", net.ID, "name", name,
		"inputs", inputCount, "outputs", outputCount)
	return net.ID, nil
}

// AttachNetwork registers a rehydrated network under its existing id.
func (e *Engine) AttachNetwork(net *network.Network) error {
	if net.ID == "" {
		return fmt.Errorf("%w: network has no id", models.ErrUnknownNetwork)
	}
	e.networks[net.ID] = net
	return nil
}

// Network returns the network with the given id, for persistence and
// inspection. Callers must not mutate it.
func (e *Engine) Network(id string) (*network.Network, error) {
	return e.lookup(id)
}

// Networks returns the ids of all registered networks.
func (e *Engine) Networks() []string {
	ids := make([]string, 0, len(e.networks))
	for id := range e.networks {
		ids = append(ids, id)
	}
	return ids
}

// Concepts exposes the shared concept registry for persistence.
func (e *Engine) Concepts() *concepts.Registry { return e.concepts }

// AddHiddenLayer inserts a hidden layer into the network.
func (e *Engine) AddHiddenLayer(id string, count, position int) error {
	net, err := e.lookup(id)
	if err != nil {
		return err
	}
	if err := net.AddHiddenLayer(count, position, e.rng); err != nil {
		return err
	}
	e.log.Debug("hidden layer added", "network", id, "count", count, "position", position)
	return nil
}

// RandomSynapseWeight draws an initial weight in (-1, 1) scaled from the
// engine's randomness provider.
func (e *Engine) RandomSynapseWeight() fixedpoint.Value {
	return network.RandomWeight(e.rng)
}

// CreateSynapse connects two neurons with the given fixed-point weight.
func (e *Engine) CreateSynapse(id string, source, target int, weight fixedpoint.Value) error {
	net, err := e.lookup(id)
	if err != nil {
		return err
	}
	return net.CreateSynapse(source, target, weight)
}

// SetInputs injects an external input vector into the network.
func (e *Engine) SetInputs(id string, values []fixedpoint.Value) error {
	net, err := e.lookup(id)
	if err != nil {
		return err
	}
	return net.SetInputs(values)
}

// Step advances the network by one time step.
func (e *Engine) Step(id string) error {
	net, err := e.lookup(id)
	if err != nil {
		return err
	}
	return e.step(net)
}

// SetLearningEnabled toggles STDP learning on the network.
func (e *Engine) SetLearningEnabled(id string, enabled bool) error {
	net, err := e.lookup(id)
	if err != nil {
		return err
	}
	net.LearningEnabled = enabled
	return nil
}

// RecentSpikes returns up to max of the network's most recent spikes.
func (e *Engine) RecentSpikes(id string, max int) ([]models.Spike, error) {
	net, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	return net.RecentSpikes(max), nil
}

// Outputs returns the network's output-neuron potentials.
func (e *Engine) Outputs(id string) ([]fixedpoint.Value, error) {
	net, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	return net.Outputs(), nil
}

// RegisterConcept adds a named concept and returns its id.
func (e *Engine) RegisterConcept(name string, neuronIDs []int, threshold fixedpoint.Value) (string, error) {
	c, err := e.concepts.Register(name, neuronIDs, threshold)
	if err != nil {
		return "", err
	}
	e.log.Info("concept registered", "id", c.ID, "name", name, "neurons", len(neuronIDs))
	return c.ID, nil
}

// step runs one network step and traces the spikes it recorded.
func (e *Engine) step(net *network.Network) error {
	before := net.TimeStep
	if err := net.Step(e.stdp); err != nil {
		return err
	}
	if e.trace != nil {
		fired := net.SpikesSince(before)
		ids := make([]int, 0, len(fired))
		for _, sp := range fired {
			ids = append(ids, sp.NeuronID)
		}
		e.trace.Log(map[string]any{
			"event":     "step",
			"network":   net.ID,
			"time_step": before,
			"fired":     ids,
		})
	}
	return nil
}

func (e *Engine) lookup(id string) (*network.Network, error) {
	net, ok := e.networks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownNetwork, id)
	}
	return net, nil
}
