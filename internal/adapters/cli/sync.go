package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/api"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	appFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/database"
)

// NewSyncCommand creates the sync command group
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh local world and fleet snapshots from the game API",
	}

	cmd.AddCommand(newSyncSystemCommand())
	cmd.AddCommand(newSyncFleetCommand())

	return cmd
}

func newSyncSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system <SYSTEM-SYMBOL>",
		Short: "Fetch and store all waypoints and markets of a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			systemSymbol := args[0]

			service, cleanup, err := newSyncService()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			ctx = withCLILogger(ctx)

			result, err := service.SyncSystem(ctx, systemSymbol)
			if err != nil {
				return fmt.Errorf("system sync failed: %w", err)
			}

			fmt.Printf("Synced %s: %d waypoints, %d markets\n",
				systemSymbol, result.Waypoints, result.Markets)
			return nil
		},
	}

	return cmd
}

func newSyncFleetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Fetch and store the current state of every ship",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := newSyncService()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			ctx = withCLILogger(ctx)

			count, err := service.SyncFleet(ctx)
			if err != nil {
				return fmt.Errorf("fleet sync failed: %w", err)
			}

			fmt.Printf("Synced %d ships\n", count)
			return nil
		},
	}

	return cmd
}

func newSyncService() (*appFleet.SyncService, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	token := os.Getenv("ST_AGENT_TOKEN")
	if token == "" {
		return nil, nil, fmt.Errorf("ST_AGENT_TOKEN environment variable is required")
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	client := api.NewSpaceTradersClientWithConfig(
		cfg.API.BaseURL,
		cfg.API.Retry.MaxAttempts,
		cfg.API.Retry.BackoffBase,
		nil,
	)

	service := appFleet.NewSyncService(
		client,
		persistence.NewGormWaypointRepository(db, nil),
		persistence.NewGormMarketRepository(db),
		persistence.NewGormShipRepository(db),
		nil,
		token,
	)

	cleanup := func() { database.Close(db) }
	return service, cleanup, nil
}

// withCLILogger attaches a text logger when --verbose is set
func withCLILogger(ctx context.Context) context.Context {
	if !verbose {
		return ctx
	}
	return common.WithLogger(ctx, common.NewWriterLogger(os.Stderr, "text"))
}
