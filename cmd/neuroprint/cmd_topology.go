package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

func newLayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layer [network-id]",
		Short: "Insert a hidden layer into a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			count, _ := cmd.Flags().GetInt("count")
			position, _ := cmd.Flags().GetInt("position")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id := args[0]
			if err := env.engine.AddHiddenLayer(id, count, position); err != nil {
				return fmt.Errorf("failed to add hidden layer: %w", err)
			}
			if err := persistNetwork(cmd.Context(), env, id); err != nil {
				return err
			}

			if jsonOut {
				printJSON(map[string]any{"network": id, "count": count, "position": position})
			} else {
				fmt.Printf("Added %d hidden neurons at layer %d\n", count, position)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 8, "Number of hidden neurons")
	cmd.Flags().Int("position", 1, "Layer position to insert at")
	return cmd
}

func newConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [network-id] [source] [target]",
		Short: "Create a synapse between two neurons",
		Long: `connect creates a feed-forward synapse from source to target.
Without --weight, a random initial weight in (-1, 1) is drawn from the
seeded randomness provider.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			weightStr, _ := cmd.Flags().GetString("weight")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id := args[0]
			source, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid source neuron id %q", args[1])
			}
			target, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid target neuron id %q", args[2])
			}

			var weight fixedpoint.Value
			if weightStr != "" {
				weight, err = parseWeight(weightStr)
				if err != nil {
					return err
				}
			} else {
				weight = env.engine.RandomSynapseWeight()
			}

			if err := env.engine.CreateSynapse(id, source, target, weight); err != nil {
				return fmt.Errorf("failed to create synapse: %w", err)
			}
			if err := persistNetwork(cmd.Context(), env, id); err != nil {
				return err
			}

			if jsonOut {
				printJSON(map[string]any{
					"network": id,
					"source":  source,
					"target":  target,
					"weight":  weight.String(),
				})
			} else {
				fmt.Printf("Connected %d -> %d (weight %s)\n", source, target, weight)
			}
			return nil
		},
	}
	cmd.Flags().String("weight", "", "Synapse weight as a decimal (e.g. 0.5)")
	return cmd
}
