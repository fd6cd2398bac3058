// Command neuroprint manages fixed-point spiking networks and the neural
// fingerprints they derive from text.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "neuroprint",
		Short: "Neuroprint - neural fingerprints from spiking networks",
		Long: `neuroprint simulates small spiking neural networks with fixed-point
integer arithmetic, derives reproducible neural fingerprints for text,
and compares fingerprints for structural similarity.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newCreateCmd(),
		newLayerCmd(),
		newConnectCmd(),
		newStepCmd(),
		newProcessCmd(),
		newCompareCmd(),
		newConceptCmd(),
		newListCmd(),
		newShowCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("neuroprint version %s\n", version)
			}
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize neuroprint state in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			dir := filepath.Join(root, ".neuroprint")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create .neuroprint directory: %w", err)
			}

			manifestPath := filepath.Join(dir, "manifest.yaml")
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				manifest := `# Neuroprint Manifest
version: "1.0"
created: %s

# Networks and processed memories are stored in this directory.
# Run 'neuroprint create' to build a network.
# Run 'neuroprint process' to derive an encoding for text.
`
				content := fmt.Sprintf(manifest, time.Now().Format(time.RFC3339))
				if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("failed to create manifest.yaml: %w", err)
				}
			}

			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"initialized": dir})
			} else {
				fmt.Printf("Initialized neuroprint in %s\n", dir)
			}
			return nil
		},
	}
}
