package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0nch41n/neuroprint/internal/config"
	"github.com/0nch41n/neuroprint/internal/engine"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/logging"
	"github.com/0nch41n/neuroprint/internal/models"
	"github.com/0nch41n/neuroprint/internal/network"
	"github.com/0nch41n/neuroprint/internal/plasticity"
	"github.com/0nch41n/neuroprint/internal/store"
)

// cmdEnv bundles everything a command needs: config, store, and a fully
// hydrated engine.
type cmdEnv struct {
	cfg    *config.Config
	store  store.EngineStore
	engine *engine.Engine
	trace  *logging.TraceLogger
}

// setup loads config, opens the store at root, and hydrates the engine
// with every persisted network and concept.
func setup(cmd *cobra.Command) (*cmdEnv, error) {
	root, _ := cmd.Flags().GetString("root")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var st store.EngineStore
	if cfg.Store.Backend == "memory" {
		st = store.NewInMemoryStore()
	} else {
		st, err = store.NewSQLiteStore(root)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	trace := logging.NewTraceLogger(root+"/.neuroprint", cfg.Logging.Level)

	stdp := plasticity.DefaultConfig()
	stdp.TimeConstant = fixedpoint.FromInt(int64(cfg.Plasticity.TimeConstantSteps))
	stdp.MaxRecentSpikes = cfg.Plasticity.MaxRecentSpikes

	eng := engine.New(engine.Options{
		StepsPerMemory: cfg.Engine.StepsPerMemory,
		Seed:           cfg.Engine.Seed,
		Plasticity:     &stdp,
		Logger:         logger,
		Trace:          trace,
	})

	ctx := cmd.Context()
	if err := hydrate(ctx, st, eng); err != nil {
		st.Close()
		trace.Close()
		return nil, err
	}

	return &cmdEnv{cfg: cfg, store: st, engine: eng, trace: trace}, nil
}

// close releases the environment's resources.
func (env *cmdEnv) close() {
	env.trace.Close()
	env.store.Close()
}

// hydrate loads persisted networks and concepts into the engine.
func hydrate(ctx context.Context, st store.EngineStore, eng *engine.Engine) error {
	nets, err := st.ListNetworks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load networks: %w", err)
	}
	for _, rec := range nets {
		var net network.Network
		if err := json.Unmarshal(rec.State, &net); err != nil {
			return fmt.Errorf("failed to decode network %s: %w", rec.ID, err)
		}
		if err := eng.AttachNetwork(&net); err != nil {
			return err
		}
	}

	crecs, err := st.ListConcepts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load concepts: %w", err)
	}
	concepts := make([]*models.Concept, 0, len(crecs))
	for _, rec := range crecs {
		var c models.Concept
		if err := json.Unmarshal(rec.Data, &c); err != nil {
			return fmt.Errorf("failed to decode concept %s: %w", rec.ID, err)
		}
		concepts = append(concepts, &c)
	}
	eng.Concepts().Load(concepts)
	return nil
}

// persistNetwork writes the network's current state back to the store.
func persistNetwork(ctx context.Context, env *cmdEnv, id string) error {
	net, err := env.engine.Network(id)
	if err != nil {
		return err
	}
	state, err := json.Marshal(net)
	if err != nil {
		return fmt.Errorf("failed to encode network %s: %w", id, err)
	}
	return env.store.SaveNetwork(ctx, store.NetworkRecord{
		ID:    net.ID,
		Name:  net.Name,
		State: state,
	})
}

// persistConcepts writes every registered concept back to the store.
func persistConcepts(ctx context.Context, env *cmdEnv) error {
	for _, c := range env.engine.Concepts().List() {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode concept %s: %w", c.ID, err)
		}
		if err := env.store.SaveConcept(ctx, store.ConceptRecord{
			ID:   c.ID,
			Name: c.Name,
			Data: data,
		}); err != nil {
			return err
		}
	}
	return nil
}

// printJSON writes v as a single JSON object to stdout.
func printJSON(v any) {
	json.NewEncoder(os.Stdout).Encode(v)
}

// parseWeight parses a decimal weight flag such as "0.5" or "-1.25".
func parseWeight(s string) (fixedpoint.Value, error) {
	v, err := fixedpoint.Parse(s)
	if err != nil {
		return fixedpoint.Zero(), fmt.Errorf("invalid weight %q: %w", s, err)
	}
	return v, nil
}
