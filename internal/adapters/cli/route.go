package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	appNavigation "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/navigation"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/routing"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/database"
)

// NewRouteCommand creates the route command group
func NewRouteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan fuel- and time-aware routes",
	}

	cmd.AddCommand(newRoutePlanCommand())

	return cmd
}

func newRoutePlanCommand() *cobra.Command {
	var (
		from         string
		to           string
		engineSpeed  int
		currentFuel  int
		fuelCapacity int
		modes        []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route between two waypoints",
		Long: `Plan a route between two waypoints in the same system using the stored
world snapshot. The plan minimizes total travel time including refuel stops.

Examples:
  fleet-agent route plan --from X1-GU52-A1 --to X1-GU52-K89 --engine-speed 30 --fuel 400 --fuel-capacity 400
  fleet-agent route plan --from X1-GU52-A1 --to X1-GU52-K89 --engine-speed 10 --fuel 0 --fuel-capacity 0 --mode BURN --mode CRUISE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return fmt.Errorf("--from flag is required")
			}
			if to == "" {
				return fmt.Errorf("--to flag is required")
			}

			allowedModes := make([]shared.FlightMode, 0, len(modes))
			for _, name := range modes {
				mode, err := shared.ParseFlightMode(name)
				if err != nil {
					return err
				}
				allowedModes = append(allowedModes, mode)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			planner := appNavigation.NewRoutePlanner(
				persistence.NewGormWaypointRepository(db, nil),
				persistence.NewGormMarketRepository(db),
			)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			actions, found, err := planner.PlanRoute(ctx, routing.PlanRequest{
				From:         from,
				To:           to,
				EngineSpeed:  engineSpeed,
				CurrentFuel:  currentFuel,
				FuelCapacity: fuelCapacity,
				AllowedModes: allowedModes,
			})
			if err != nil {
				return fmt.Errorf("route planning failed: %w", err)
			}
			if !found {
				return fmt.Errorf("no feasible route from %s to %s", from, to)
			}

			printPlan(actions)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Starting waypoint symbol (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination waypoint symbol (required)")
	cmd.Flags().IntVar(&engineSpeed, "engine-speed", 30, "Ship engine speed rating")
	cmd.Flags().IntVar(&currentFuel, "fuel", 0, "Current fuel units")
	cmd.Flags().IntVar(&fuelCapacity, "fuel-capacity", 0, "Fuel tank capacity (0 means fuel-exempt)")
	cmd.Flags().StringArrayVar(&modes, "mode", nil, "Allowed flight mode (repeatable; default BURN, CRUISE, DRIFT)")

	return cmd
}

func printPlan(actions []routing.TravelAction) {
	if len(actions) == 0 {
		fmt.Println("Already at destination, nothing to do")
		return
	}

	fmt.Printf("Route with %d steps, %d seconds total:\n\n", len(actions), routing.PlanDuration(actions))
	for i, action := range actions {
		switch step := action.(type) {
		case routing.Navigate:
			fmt.Printf("%3d. %-8s %s -> %s  (dist %d, fuel %d, t+%ds)\n",
				i+1, step.Mode, step.From, step.To, step.Distance, step.FuelConsumption, step.TotalTime)
		case routing.Refuel:
			fmt.Printf("%3d. REFUEL   %s  (t+%ds)\n", i+1, step.At, step.TotalTime)
		}
	}
}
