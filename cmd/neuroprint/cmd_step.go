package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step [network-id]",
		Short: "Advance a network by discrete time steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			count, _ := cmd.Flags().GetInt("count")
			learn, _ := cmd.Flags().GetBool("learn")

			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id := args[0]
			if err := env.engine.SetLearningEnabled(id, learn); err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				if err := env.engine.Step(id); err != nil {
					return fmt.Errorf("failed at step %d: %w", i, err)
				}
			}
			if err := persistNetwork(cmd.Context(), env, id); err != nil {
				return err
			}

			net, err := env.engine.Network(id)
			if err != nil {
				return err
			}
			if jsonOut {
				printJSON(map[string]any{
					"network":   id,
					"steps":     count,
					"time_step": net.TimeStep,
				})
			} else {
				fmt.Printf("Advanced %d steps (time step now %d)\n", count, net.TimeStep)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 1, "Number of steps to advance")
	cmd.Flags().Bool("learn", false, "Enable STDP learning during the steps")
	return cmd
}
