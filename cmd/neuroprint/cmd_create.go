package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a spiking network",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name, _ := cmd.Flags().GetString("name")
			inputs, _ := cmd.Flags().GetInt("inputs")
			outputs, _ := cmd.Flags().GetInt("outputs")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id, err := env.engine.CreateNetwork(name, inputs, outputs)
			if err != nil {
				return fmt.Errorf("failed to create network: %w", err)
			}
			if err := persistNetwork(cmd.Context(), env, id); err != nil {
				return err
			}

			if jsonOut {
				printJSON(map[string]any{
					"id":      id,
					"name":    name,
					"inputs":  inputs,
					"outputs": outputs,
				})
			} else {
				fmt.Printf("Created network %s (%d inputs, %d outputs)\n", id, inputs, outputs)
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "Network name")
	cmd.Flags().Int("inputs", 16, "Number of input neurons")
	cmd.Flags().Int("outputs", 4, "Number of output neurons")
	return cmd
}
