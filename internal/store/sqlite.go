package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements EngineStore using SQLite for persistence.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a SQLiteStore rooted at projectRoot. The
// database lives at .neuroprint/neuroprint.db.
func NewSQLiteStore(projectRoot string) (*SQLiteStore, error) {
	dir := filepath.Join(projectRoot, ".neuroprint")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .neuroprint directory: %w", err)
	}

	dbPath := filepath.Join(dir, "neuroprint.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// SaveNetwork inserts or replaces a network record.
func (s *SQLiteStore) SaveNetwork(ctx context.Context, rec NetworkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("network record ID is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO networks (id, name, state, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, string(rec.State))
	if err != nil {
		return fmt.Errorf("failed to save network %s: %w", rec.ID, err)
	}
	return nil
}

// GetNetwork retrieves a network record by id.
func (s *SQLiteStore) GetNetwork(ctx context.Context, id string) (*NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec NetworkRecord
	var state string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, state FROM networks WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("network %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get network %s: %w", id, err)
	}
	rec.State = []byte(state)
	return &rec, nil
}

// ListNetworks returns all network records ordered by name, then id.
func (s *SQLiteStore) ListNetworks(ctx context.Context) ([]NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state FROM networks ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	defer rows.Close()

	var out []NetworkRecord
	for rows.Next() {
		var rec NetworkRecord
		var state string
		if err := rows.Scan(&rec.ID, &rec.Name, &state); err != nil {
			return nil, fmt.Errorf("failed to scan network row: %w", err)
		}
		rec.State = []byte(state)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveMemory inserts or replaces a memory record.
func (s *SQLiteStore) SaveMemory(ctx context.Context, rec MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("memory record ID is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memories (id, network_id, text, fingerprint, encoding, created_step, created_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			fingerprint = excluded.fingerprint,
			encoding = excluded.encoding,
			created_step = excluded.created_step`,
		rec.ID, rec.NetworkID, rec.Text, rec.Fingerprint, string(rec.Encoding), rec.CreatedStep)
	if err != nil {
		return fmt.Errorf("failed to save memory %s: %w", rec.ID, err)
	}
	return nil
}

// GetMemory retrieves a memory record by id.
func (s *SQLiteStore) GetMemory(ctx context.Context, id string) (*MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanMemory(s.db.QueryRowContext(ctx, `
		SELECT id, network_id, text, fingerprint, encoding, created_step
		FROM memories WHERE id = ?`, id), id)
}

// GetMemoryByFingerprint retrieves the memory carrying the fingerprint.
func (s *SQLiteStore) GetMemoryByFingerprint(ctx context.Context, fingerprint string) (*MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanMemory(s.db.QueryRowContext(ctx, `
		SELECT id, network_id, text, fingerprint, encoding, created_step
		FROM memories WHERE fingerprint = ?`, fingerprint), fingerprint)
}

func (s *SQLiteStore) scanMemory(row *sql.Row, key string) (*MemoryRecord, error) {
	var rec MemoryRecord
	var enc string
	err := row.Scan(&rec.ID, &rec.NetworkID, &rec.Text, &rec.Fingerprint, &enc, &rec.CreatedStep)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("memory %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory %s: %w", key, err)
	}
	rec.Encoding = []byte(enc)
	return &rec, nil
}

// ListMemories returns the memories for one network (or all networks when
// networkID is empty), oldest first.
func (s *SQLiteStore) ListMemories(ctx context.Context, networkID string) ([]MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, network_id, text, fingerprint, encoding, created_step
		FROM memories`
	args := []any{}
	if networkID != "" {
		query += ` WHERE network_id = ?`
		args = append(args, networkID)
	}
	query += ` ORDER BY created_step, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	var out []MemoryRecord
	for rows.Next() {
		var rec MemoryRecord
		var enc string
		if err := rows.Scan(&rec.ID, &rec.NetworkID, &rec.Text, &rec.Fingerprint, &enc, &rec.CreatedStep); err != nil {
			return nil, fmt.Errorf("failed to scan memory row: %w", err)
		}
		rec.Encoding = []byte(enc)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveConcept inserts or replaces a concept record, assigning the next
// ordinal to new concepts so registration order survives round-trips.
func (s *SQLiteStore) SaveConcept(ctx context.Context, rec ConceptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("concept record ID is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO concepts (id, name, data, ordinal)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(ordinal), -1) + 1 FROM concepts))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data`,
		rec.ID, rec.Name, string(rec.Data))
	if err != nil {
		return fmt.Errorf("failed to save concept %s: %w", rec.ID, err)
	}
	return nil
}

// ListConcepts returns all concepts in registration order.
func (s *SQLiteStore) ListConcepts(ctx context.Context) ([]ConceptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, data FROM concepts ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts: %w", err)
	}
	defer rows.Close()

	var out []ConceptRecord
	for rows.Next() {
		var rec ConceptRecord
		var data string
		if err := rows.Scan(&rec.ID, &rec.Name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan concept row: %w", err)
		}
		rec.Data = []byte(data)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
