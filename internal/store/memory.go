package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// InMemoryStore implements EngineStore for testing and for runs where
// persistence across invocations is not wanted.
type InMemoryStore struct {
	mu       sync.RWMutex
	networks map[string]NetworkRecord
	memories map[string]MemoryRecord
	concepts []ConceptRecord
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		networks: make(map[string]NetworkRecord),
		memories: make(map[string]MemoryRecord),
	}
}

// SaveNetwork inserts or replaces a network record.
func (s *InMemoryStore) SaveNetwork(ctx context.Context, rec NetworkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("network record ID is required")
	}
	s.networks[rec.ID] = rec
	return nil
}

// GetNetwork retrieves a network record by id.
func (s *InMemoryStore) GetNetwork(ctx context.Context, id string) (*NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.networks[id]
	if !ok {
		return nil, fmt.Errorf("network %s: %w", id, ErrNotFound)
	}
	return &rec, nil
}

// ListNetworks returns all network records ordered by name, then id.
func (s *InMemoryStore) ListNetworks(ctx context.Context) ([]NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]NetworkRecord, 0, len(s.networks))
	for _, rec := range s.networks {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveMemory inserts or replaces a memory record.
func (s *InMemoryStore) SaveMemory(ctx context.Context, rec MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("memory record ID is required")
	}
	s.memories[rec.ID] = rec
	return nil
}

// GetMemory retrieves a memory record by id.
func (s *InMemoryStore) GetMemory(ctx context.Context, id string) (*MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.memories[id]
	if !ok {
		return nil, fmt.Errorf("memory %s: %w", id, ErrNotFound)
	}
	return &rec, nil
}

// GetMemoryByFingerprint retrieves the memory carrying the fingerprint.
func (s *InMemoryStore) GetMemoryByFingerprint(ctx context.Context, fingerprint string) (*MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.memories {
		if rec.Fingerprint == fingerprint {
			out := rec
			return &out, nil
		}
	}
	return nil, fmt.Errorf("fingerprint %s: %w", fingerprint, ErrNotFound)
}

// ListMemories returns the memories for one network (or all networks when
// networkID is empty), oldest first.
func (s *InMemoryStore) ListMemories(ctx context.Context, networkID string) ([]MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]MemoryRecord, 0, len(s.memories))
	for _, rec := range s.memories {
		if networkID != "" && rec.NetworkID != networkID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedStep != out[j].CreatedStep {
			return out[i].CreatedStep < out[j].CreatedStep
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveConcept appends or replaces a concept record, preserving the
// original registration order on replace.
func (s *InMemoryStore) SaveConcept(ctx context.Context, rec ConceptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("concept record ID is required")
	}
	for i := range s.concepts {
		if s.concepts[i].ID == rec.ID {
			s.concepts[i] = rec
			return nil
		}
	}
	s.concepts = append(s.concepts, rec)
	return nil
}

// ListConcepts returns all concepts in registration order.
func (s *InMemoryStore) ListConcepts(ctx context.Context) ([]ConceptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ConceptRecord, len(s.concepts))
	copy(out, s.concepts)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
