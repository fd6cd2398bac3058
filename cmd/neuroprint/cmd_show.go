package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0nch41n/neuroprint/internal/store"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a network or a stored memory by id (or fingerprint)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			id := args[0]

			// Try network first, then memory id, then fingerprint.
			if net, err := env.engine.Network(id); err == nil {
				if jsonOut {
					printJSON(net)
					return nil
				}
				fmt.Printf("Network: %s\n", net.ID)
				fmt.Printf("Name: %s\n", net.Name)
				fmt.Printf("Neurons: %d (inputs %d, outputs %d, layers %d)\n",
					len(net.Neurons), net.InputCount, net.OutputCount, net.LayerCount)
				fmt.Printf("Time step: %d\n", net.TimeStep)
				fmt.Printf("Learning: %t\n", net.LearningEnabled)
				return nil
			}

			rec, err := env.store.GetMemory(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				rec, err = env.store.GetMemoryByFingerprint(ctx, id)
			}
			if err != nil {
				return fmt.Errorf("no network or memory matches %s: %w", id, err)
			}

			if jsonOut {
				printJSON(rec)
				return nil
			}
			enc, err := loadEncoding(ctx, env, rec.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Memory: %s\n", rec.ID)
			fmt.Printf("Network: %s\n", rec.NetworkID)
			fmt.Printf("Text: %q\n", rec.Text)
			fmt.Printf("Fingerprint: %s\n", rec.Fingerprint)
			fmt.Printf("Activated neurons: %v\n", enc.ActivatedNeurons)
			fmt.Printf("Neuroplasticity: %d\n", enc.NeuroplasticityScore)
			fmt.Printf("Processed at step: %d\n", enc.LastProcessed)
			return nil
		},
	}
}
