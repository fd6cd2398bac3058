package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0nch41n/neuroprint/internal/models"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [memory-id-a] [memory-id-b]",
		Short: "Score the similarity of two stored memories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			a, err := loadEncoding(ctx, env, args[0])
			if err != nil {
				return err
			}
			b, err := loadEncoding(ctx, env, args[1])
			if err != nil {
				return err
			}

			score, err := env.engine.Similarity(a, b)
			if err != nil {
				return fmt.Errorf("failed to compare encodings: %w", err)
			}

			if jsonOut {
				printJSON(map[string]any{
					"a":     args[0],
					"b":     args[1],
					"score": score,
				})
			} else {
				fmt.Printf("Similarity: %d/100\n", score)
			}
			return nil
		},
	}
}

// loadEncoding fetches a stored memory and decodes its encoding.
func loadEncoding(ctx context.Context, env *cmdEnv, memoryID string) (*models.NeuralEncoding, error) {
	rec, err := env.store.GetMemory(ctx, memoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory %s: %w", memoryID, err)
	}
	var enc models.NeuralEncoding
	if err := json.Unmarshal(rec.Encoding, &enc); err != nil {
		return nil, fmt.Errorf("failed to decode encoding %s: %w", memoryID, err)
	}
	return &enc, nil
}
