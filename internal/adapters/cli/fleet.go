package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/database"
)

// NewFleetCommand creates the fleet command group
func NewFleetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Inspect the stored fleet snapshot",
	}

	cmd.AddCommand(newFleetStatusCommand())

	return cmd
}

func newFleetStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List all ships with fuel and cargo state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			ships, err := persistence.NewGormShipRepository(db).ListAll(ctx)
			if err != nil {
				return err
			}

			if len(ships) == 0 {
				fmt.Println("No ships in snapshot. Run: fleet-agent sync fleet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SHIP\tROLE\tLOCATION\tSTATUS\tFUEL\tCARGO")
			for _, ship := range ships {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d/%d\n",
					ship.Symbol(),
					ship.Role(),
					ship.Location(),
					ship.NavStatus(),
					ship.Fuel().Current, ship.Fuel().Capacity,
					ship.Cargo().Units, ship.Cargo().Capacity,
				)
			}
			return w.Flush()
		},
	}

	return cmd
}
