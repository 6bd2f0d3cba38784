package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fleet-agent",
		Short: "Fleet agent CLI - route planning and fleet snapshots",
		Long: `Fleet agent CLI plans fuel-aware routes and manages the local world
snapshot the planner runs against.

Examples:
  fleet-agent route plan --from X1-GU52-A1 --to X1-GU52-K89 --engine-speed 30 --fuel 400 --fuel-capacity 400
  fleet-agent sync system X1-GU52
  fleet-agent sync fleet
  fleet-agent fleet status`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewSyncCommand())
	rootCmd.AddCommand(NewFleetCommand())

	return rootCmd
}

// loadConfig loads the agent configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
