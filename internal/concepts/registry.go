// Package concepts maintains the registry of named concepts and computes
// their activation levels for a processing run. Concepts are registered
// independently of any network and persist across encodings.
package concepts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
)

// Registry holds registered concepts in registration order. Concept
// activation vectors are aligned by this order.
type Registry struct {
	concepts []*models.Concept
	byID     map[string]*models.Concept
}

// NewRegistry creates an empty concept registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*models.Concept)}
}

// Register adds a concept and returns it. The associated neuron set must
// be non-empty; ids are stored as given.
func (r *Registry) Register(name string, neuronIDs []int, threshold fixedpoint.Value) (*models.Concept, error) {
	if len(neuronIDs) == 0 {
		return nil, fmt.Errorf("%w: concept %q has no associated neurons",
			models.ErrInvalidNeuron, name)
	}
	ids := make([]int, len(neuronIDs))
	copy(ids, neuronIDs)
	c := &models.Concept{
		ID:                  uuid.NewString(),
		Name:                name,
		AssociatedNeurons:   ids,
		ActivationThreshold: threshold,
	}
	r.concepts = append(r.concepts, c)
	r.byID[c.ID] = c
	return c, nil
}

// Get returns the concept with the given id.
func (r *Registry) Get(id string) (*models.Concept, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownConcept, id)
	}
	return c, nil
}

// List returns the registered concepts in registration order.
func (r *Registry) List() []*models.Concept {
	out := make([]*models.Concept, len(r.concepts))
	copy(out, r.concepts)
	return out
}

// Len returns the number of registered concepts.
func (r *Registry) Len() int { return len(r.concepts) }

// Load replaces the registry contents, preserving the given order. Used
// when rehydrating persisted concepts.
func (r *Registry) Load(cs []*models.Concept) {
	r.concepts = make([]*models.Concept, 0, len(cs))
	r.byID = make(map[string]*models.Concept, len(cs))
	for _, c := range cs {
		r.concepts = append(r.concepts, c)
		r.byID[c.ID] = c
	}
}

// Activations computes the activation level of every registered concept
// for the given activated-neuron set, aligned by concept index:
//
//	overlap   = |activated ∩ associated|
//	level     = overlap / |associated|
//	blended   = (level*8 + output0*2) / 10
//
// A concept whose blended level reaches its threshold is marked activated
// at the given time step.
func (r *Registry) Activations(activated []int, output0 fixedpoint.Value, timeStep uint64) []fixedpoint.Value {
	activeSet := make(map[int]bool, len(activated))
	for _, id := range activated {
		activeSet[id] = true
	}

	out := make([]fixedpoint.Value, len(r.concepts))
	for i, c := range r.concepts {
		overlap := 0
		for _, id := range c.AssociatedNeurons {
			if activeSet[id] {
				overlap++
			}
		}
		// Register rejects empty sets, so the division is safe.
		level, err := fixedpoint.FromInt(int64(overlap)).DivInt(int64(len(c.AssociatedNeurons)))
		if err != nil {
			panic(err)
		}
		blended, err := level.MulInt(constants.ConceptOverlapWeight).
			Add(output0.MulInt(constants.ConceptOutputWeight)).
			DivInt(constants.ConceptBlendDivisor)
		if err != nil {
			panic(err)
		}
		out[i] = blended
		if blended.Cmp(c.ActivationThreshold) >= 0 {
			c.LastActivated = timeStep
		}
	}
	return out
}
