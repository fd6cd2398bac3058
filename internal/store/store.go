// Package store defines the EngineStore interface for persisting
// networks, processed memories, and concepts, so CLI invocations compose.
// Persisted layout is the owning layer's concern; the simulation core
// never touches it.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// NetworkRecord is a persisted network: the full simulation state as an
// opaque JSON blob keyed by the network's id.
type NetworkRecord struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	State json.RawMessage `json:"state"`
}

// MemoryRecord is one processed memory: the text, its encoding, and the
// fingerprint used for identity lookups.
type MemoryRecord struct {
	ID          string          `json:"id"`
	NetworkID   string          `json:"network_id"`
	Text        string          `json:"text"`
	Fingerprint string          `json:"fingerprint"`
	Encoding    json.RawMessage `json:"encoding"`
	CreatedStep uint64          `json:"created_step"`
}

// ConceptRecord is a persisted concept definition.
type ConceptRecord struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// EngineStore persists engine state between invocations.
type EngineStore interface {
	// Network operations
	SaveNetwork(ctx context.Context, rec NetworkRecord) error
	GetNetwork(ctx context.Context, id string) (*NetworkRecord, error)
	ListNetworks(ctx context.Context) ([]NetworkRecord, error)

	// Memory operations
	SaveMemory(ctx context.Context, rec MemoryRecord) error
	GetMemory(ctx context.Context, id string) (*MemoryRecord, error)
	GetMemoryByFingerprint(ctx context.Context, fingerprint string) (*MemoryRecord, error)
	ListMemories(ctx context.Context, networkID string) ([]MemoryRecord, error)

	// Concept operations
	SaveConcept(ctx context.Context, rec ConceptRecord) error
	ListConcepts(ctx context.Context) ([]ConceptRecord, error)

	Close() error
}
