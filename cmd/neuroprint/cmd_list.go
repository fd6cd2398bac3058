package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List networks and stored memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			networkID, _ := cmd.Flags().GetString("network")

			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			nets, err := env.store.ListNetworks(ctx)
			if err != nil {
				return fmt.Errorf("failed to list networks: %w", err)
			}
			memories, err := env.store.ListMemories(ctx, networkID)
			if err != nil {
				return fmt.Errorf("failed to list memories: %w", err)
			}

			if jsonOut {
				type memSummary struct {
					ID          string `json:"id"`
					NetworkID   string `json:"network_id"`
					Text        string `json:"text"`
					Fingerprint string `json:"fingerprint"`
				}
				mems := make([]memSummary, 0, len(memories))
				for _, m := range memories {
					mems = append(mems, memSummary{
						ID: m.ID, NetworkID: m.NetworkID,
						Text: m.Text, Fingerprint: m.Fingerprint,
					})
				}
				printJSON(map[string]any{"networks": nets, "memories": mems})
				return nil
			}

			if len(nets) == 0 {
				fmt.Println("No networks. Run 'neuroprint create' first.")
				return nil
			}
			fmt.Printf("Networks (%d):\n", len(nets))
			for _, n := range nets {
				fmt.Printf("  %s  %s\n", n.ID, n.Name)
			}
			fmt.Printf("Memories (%d):\n", len(memories))
			for _, m := range memories {
				text := m.Text
				if len(text) > 40 {
					text = text[:40] + "..."
				}
				fmt.Printf("  %s  %q  %s\n", m.ID, text, m.Fingerprint[:12])
			}
			return nil
		},
	}
	cmd.Flags().String("network", "", "Only list memories for this network")
	return cmd
}
