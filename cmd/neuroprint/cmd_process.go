package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/0nch41n/neuroprint/internal/store"
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [network-id] [text...]",
		Short: "Process text through a network and store its encoding",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			learn, _ := cmd.Flags().GetBool("learn")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id := args[0]
			text := strings.Join(args[1:], " ")
			ctx := cmd.Context()

			if err := env.engine.SetLearningEnabled(id, learn); err != nil {
				return err
			}
			enc, err := env.engine.ProcessMemory(id, text)
			if err != nil {
				return fmt.Errorf("failed to process memory: %w", err)
			}

			encJSON, err := json.Marshal(enc)
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			memoryID := uuid.NewString()
			if err := env.store.SaveMemory(ctx, store.MemoryRecord{
				ID:          memoryID,
				NetworkID:   id,
				Text:        text,
				Fingerprint: enc.Fingerprint,
				Encoding:    encJSON,
				CreatedStep: enc.LastProcessed,
			}); err != nil {
				return fmt.Errorf("failed to save memory: %w", err)
			}
			if err := persistNetwork(ctx, env, id); err != nil {
				return err
			}
			if err := persistConcepts(ctx, env); err != nil {
				return err
			}

			if jsonOut {
				printJSON(map[string]any{
					"memory_id": memoryID,
					"encoding":  enc,
				})
			} else {
				fmt.Printf("Memory: %s\n", memoryID)
				fmt.Printf("Fingerprint: %s\n", enc.Fingerprint)
				fmt.Printf("Activated neurons: %v\n", enc.ActivatedNeurons)
				fmt.Printf("Neuroplasticity: %d\n", enc.NeuroplasticityScore)
			}
			return nil
		},
	}
	cmd.Flags().Bool("learn", false, "Enable STDP learning during the run")
	return cmd
}
