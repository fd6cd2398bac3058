package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newConceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concept",
		Short: "Manage registered concepts",
	}
	cmd.AddCommand(newConceptAddCmd(), newConceptListCmd())
	return cmd
}

func newConceptAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a concept over a set of neuron ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			neuronsStr, _ := cmd.Flags().GetString("neurons")
			thresholdStr, _ := cmd.Flags().GetString("threshold")

			neuronIDs, err := parseNeuronList(neuronsStr)
			if err != nil {
				return err
			}
			threshold, err := parseWeight(thresholdStr)
			if err != nil {
				return fmt.Errorf("invalid threshold: %w", err)
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			id, err := env.engine.RegisterConcept(args[0], neuronIDs, threshold)
			if err != nil {
				return fmt.Errorf("failed to register concept: %w", err)
			}
			if err := persistConcepts(cmd.Context(), env); err != nil {
				return err
			}

			if jsonOut {
				printJSON(map[string]any{"id": id, "name": args[0], "neurons": neuronIDs})
			} else {
				fmt.Printf("Registered concept %s (%s)\n", args[0], id)
			}
			return nil
		},
	}
	cmd.Flags().String("neurons", "", "Comma-separated neuron ids (e.g. 4,5,9)")
	cmd.Flags().String("threshold", "0.5", "Activation threshold as a decimal")
	return cmd
}

func newConceptListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered concepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			concepts := env.engine.Concepts().List()
			if jsonOut {
				printJSON(concepts)
				return nil
			}
			if len(concepts) == 0 {
				fmt.Println("No concepts registered.")
				return nil
			}
			for _, c := range concepts {
				fmt.Printf("%s  %s  neurons=%v threshold=%s\n",
					c.ID, c.Name, c.AssociatedNeurons, c.ActivationThreshold)
			}
			return nil
		},
	}
}

// parseNeuronList parses a comma-separated list of neuron ids.
func parseNeuronList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("--neurons is required")
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid neuron id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
