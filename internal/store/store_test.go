package store

import (
	"context"
	"errors"
	"testing"
)

// Both implementations must satisfy the same contract, so every test
// runs against each backend.
func forEachStore(t *testing.T, fn func(t *testing.T, s EngineStore)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, NewInMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewSQLiteStore: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func TestNetworkRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		rec := NetworkRecord{ID: "n1", Name: "test", State: []byte(`{"time_step":4}`)}
		if err := s.SaveNetwork(ctx, rec); err != nil {
			t.Fatalf("SaveNetwork: %v", err)
		}

		got, err := s.GetNetwork(ctx, "n1")
		if err != nil {
			t.Fatalf("GetNetwork: %v", err)
		}
		if got.ID != rec.ID || got.Name != rec.Name || string(got.State) != string(rec.State) {
			t.Errorf("got %+v, want %+v", got, rec)
		}
	})
}

func TestNetworkNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		_, err := s.GetNetwork(context.Background(), "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}

func TestNetworkUpsert(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		if err := s.SaveNetwork(ctx, NetworkRecord{ID: "n1", Name: "old", State: []byte(`{}`)}); err != nil {
			t.Fatalf("SaveNetwork: %v", err)
		}
		if err := s.SaveNetwork(ctx, NetworkRecord{ID: "n1", Name: "new", State: []byte(`{"time_step":1}`)}); err != nil {
			t.Fatalf("SaveNetwork (update): %v", err)
		}

		got, err := s.GetNetwork(ctx, "n1")
		if err != nil {
			t.Fatalf("GetNetwork: %v", err)
		}
		if got.Name != "new" {
			t.Errorf("Name = %q, want updated %q", got.Name, "new")
		}
		recs, err := s.ListNetworks(ctx)
		if err != nil {
			t.Fatalf("ListNetworks: %v", err)
		}
		if len(recs) != 1 {
			t.Errorf("ListNetworks = %d records, want 1", len(recs))
		}
	})
}

func TestSaveNetwork_RequiresID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		if err := s.SaveNetwork(context.Background(), NetworkRecord{Name: "anon"}); err == nil {
			t.Error("expected error for record without id")
		}
	})
}

func TestListNetworks_Ordered(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		for _, rec := range []NetworkRecord{
			{ID: "b", Name: "beta", State: []byte(`{}`)},
			{ID: "a", Name: "alpha", State: []byte(`{}`)},
		} {
			if err := s.SaveNetwork(ctx, rec); err != nil {
				t.Fatalf("SaveNetwork: %v", err)
			}
		}
		recs, err := s.ListNetworks(ctx)
		if err != nil {
			t.Fatalf("ListNetworks: %v", err)
		}
		if len(recs) != 2 || recs[0].Name != "alpha" || recs[1].Name != "beta" {
			t.Errorf("ListNetworks order = %+v, want alpha then beta", recs)
		}
	})
}

func TestMemoryRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		rec := MemoryRecord{
			ID:          "m1",
			NetworkID:   "n1",
			Text:        "hello world",
			Fingerprint: "abc123",
			Encoding:    []byte(`{"neuroplasticity_score":40}`),
			CreatedStep: 10,
		}
		if err := s.SaveMemory(ctx, rec); err != nil {
			t.Fatalf("SaveMemory: %v", err)
		}

		got, err := s.GetMemory(ctx, "m1")
		if err != nil {
			t.Fatalf("GetMemory: %v", err)
		}
		if got.Text != rec.Text || got.Fingerprint != rec.Fingerprint || got.CreatedStep != 10 {
			t.Errorf("got %+v, want %+v", got, rec)
		}

		byFp, err := s.GetMemoryByFingerprint(ctx, "abc123")
		if err != nil {
			t.Fatalf("GetMemoryByFingerprint: %v", err)
		}
		if byFp.ID != "m1" {
			t.Errorf("fingerprint lookup returned %q, want m1", byFp.ID)
		}

		if _, err := s.GetMemoryByFingerprint(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
			t.Errorf("unknown fingerprint: got %v, want ErrNotFound", err)
		}
	})
}

func TestListMemories_FilterAndOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		for _, rec := range []MemoryRecord{
			{ID: "m2", NetworkID: "n1", Fingerprint: "f2", Encoding: []byte(`{}`), CreatedStep: 20},
			{ID: "m1", NetworkID: "n1", Fingerprint: "f1", Encoding: []byte(`{}`), CreatedStep: 10},
			{ID: "m3", NetworkID: "n2", Fingerprint: "f3", Encoding: []byte(`{}`), CreatedStep: 5},
		} {
			if err := s.SaveMemory(ctx, rec); err != nil {
				t.Fatalf("SaveMemory(%s): %v", rec.ID, err)
			}
		}

		recs, err := s.ListMemories(ctx, "n1")
		if err != nil {
			t.Fatalf("ListMemories: %v", err)
		}
		if len(recs) != 2 || recs[0].ID != "m1" || recs[1].ID != "m2" {
			t.Errorf("filtered memories = %+v, want m1 then m2", recs)
		}

		all, err := s.ListMemories(ctx, "")
		if err != nil {
			t.Fatalf("ListMemories(all): %v", err)
		}
		if len(all) != 3 || all[0].ID != "m3" {
			t.Errorf("all memories = %+v, want m3 first (oldest step)", all)
		}
	})
}

func TestConceptOrderSurvives(t *testing.T) {
	forEachStore(t, func(t *testing.T, s EngineStore) {
		ctx := context.Background()
		for _, rec := range []ConceptRecord{
			{ID: "c1", Name: "first", Data: []byte(`{}`)},
			{ID: "c2", Name: "second", Data: []byte(`{}`)},
			{ID: "c3", Name: "third", Data: []byte(`{}`)},
		} {
			if err := s.SaveConcept(ctx, rec); err != nil {
				t.Fatalf("SaveConcept(%s): %v", rec.ID, err)
			}
		}
		// Replacing an existing concept must not move it.
		if err := s.SaveConcept(ctx, ConceptRecord{ID: "c1", Name: "renamed", Data: []byte(`{}`)}); err != nil {
			t.Fatalf("SaveConcept (update): %v", err)
		}

		recs, err := s.ListConcepts(ctx)
		if err != nil {
			t.Fatalf("ListConcepts: %v", err)
		}
		want := []string{"renamed", "second", "third"}
		if len(recs) != 3 {
			t.Fatalf("ListConcepts = %d records, want 3", len(recs))
		}
		for i, name := range want {
			if recs[i].Name != name {
				t.Errorf("concept[%d] = %q, want %q", i, recs[i].Name, name)
			}
		}
	})
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	s, err := NewSQLiteStore(root)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.SaveNetwork(ctx, NetworkRecord{ID: "n1", Name: "kept", State: []byte(`{}`)}); err != nil {
		t.Fatalf("SaveNetwork: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetNetwork(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNetwork after reopen: %v", err)
	}
	if got.Name != "kept" {
		t.Errorf("Name = %q, want kept", got.Name)
	}
}
