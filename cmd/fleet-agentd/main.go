package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/api"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/metrics"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/adapters/persistence"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/common"
	appFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/fleet"
	appNavigation "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/navigation"
	appTransfer "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/application/transfer"
	domainFleet "github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/fleet"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/config"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/database"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/pidfile"
)

func main() {
	fmt.Println("Fleet Agent Daemon v0.1.0")
	fmt.Println("=========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Agent.PIDFile)
	pf := pidfile.New(cfg.Agent.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	token := os.Getenv("ST_AGENT_TOKEN")
	if token == "" {
		return fmt.Errorf("ST_AGENT_TOKEN environment variable is required")
	}
	if cfg.Agent.SystemSymbol == "" {
		return fmt.Errorf("agent.system_symbol must be configured")
	}
	if cfg.Agent.RendezvousWaypoint == "" {
		return fmt.Errorf("agent.rendezvous_waypoint must be configured")
	}

	// Database
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// Metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		routingCollector := metrics.NewRoutingMetricsCollector()
		if err := routingCollector.Register(); err != nil {
			return fmt.Errorf("failed to register routing metrics: %w", err)
		}
		metrics.SetGlobalRoutingCollector(routingCollector)

		transferCollector := metrics.NewTransferMetricsCollector()
		if err := transferCollector.Register(); err != nil {
			return fmt.Errorf("failed to register transfer metrics: %w", err)
		}
		metrics.SetGlobalTransferCollector(transferCollector)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			fmt.Printf("Metrics endpoint on http://%s%s\n", metricsServer.Addr, cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Adapters and repositories
	client := api.NewSpaceTradersClientWithConfig(
		cfg.API.BaseURL,
		cfg.API.Retry.MaxAttempts,
		cfg.API.Retry.BackoffBase,
		nil,
	)
	waypointRepo := persistence.NewGormWaypointRepository(db, nil)
	marketRepo := persistence.NewGormMarketRepository(db)
	shipRepo := persistence.NewGormShipRepository(db)

	// Application services
	syncService := appFleet.NewSyncService(client, waypointRepo, marketRepo, shipRepo, nil, token)
	planner := appNavigation.NewRoutePlanner(waypointRepo, marketRepo)
	executor := appFleet.NewRouteExecutor(client, shipRepo, nil, token)
	coordinator := appTransfer.NewCoordinator(nil)

	allowedModes, err := parseModes(cfg.Agent.AllowedFlightModes)
	if err != nil {
		return err
	}

	haulerWorker := appFleet.NewHaulerWorker(planner, executor, coordinator, shipRepo, allowedModes)
	minerWorker := appFleet.NewMinerWorker(client, coordinator, shipRepo, nil, cfg.Agent.TransferRetryDelay, token)

	logger := common.NewWriterLogger(os.Stdout, cfg.Logging.Format)
	ctx, cancel := context.WithCancel(common.WithLogger(context.Background(), logger))
	defer cancel()

	// Initial world and fleet snapshot
	fmt.Printf("Syncing system %s...\n", cfg.Agent.SystemSymbol)
	if _, err := syncService.SyncSystem(ctx, cfg.Agent.SystemSymbol); err != nil {
		return fmt.Errorf("initial system sync failed: %w", err)
	}
	if _, err := syncService.SyncFleet(ctx); err != nil {
		return fmt.Errorf("initial fleet sync failed: %w", err)
	}

	var wg sync.WaitGroup

	// Periodic snapshot refresh
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(cfg.Agent.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := syncService.SyncSystem(ctx, cfg.Agent.SystemSymbol); err != nil {
					logger.Log("ERROR", "System sync failed", map[string]interface{}{"error": err.Error()})
				}
			}
		}
	}()

	// Launch a worker per ship based on its fleet role
	ships, err := shipRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fleet: %w", err)
	}

	for _, ship := range ships {
		switch ship.Role() {
		case domainFleet.RoleHauler:
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()
				runHaulerLoop(ctx, haulerWorker, symbol, cfg.Agent.RendezvousWaypoint, logger)
			}(ship.Symbol())
		case domainFleet.RoleMiner:
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()
				runMinerLoop(ctx, minerWorker, symbol, cfg.Agent.TransferRetryDelay, logger)
			}(ship.Symbol())
		}
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Printf("\nReceived %s, shutting down...\n", sig)

	cancel()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Agent.ShutdownTimeout)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		fmt.Println("Shutdown complete")
	case <-time.After(cfg.Agent.ShutdownTimeout):
		fmt.Println("Shutdown timeout exceeded, exiting anyway")
	}

	return nil
}

// runHaulerLoop keeps one hauler cycling through pickup rounds until the
// daemon stops
func runHaulerLoop(ctx context.Context, worker *appFleet.HaulerWorker, symbol, waypoint string, logger common.Logger) {
	for ctx.Err() == nil {
		summary, err := worker.RunPickup(ctx, symbol, waypoint)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log("ERROR", "Hauler pickup failed", map[string]interface{}{
				"ship":  symbol,
				"error": err.Error(),
			})
			time.Sleep(5 * time.Second)
			continue
		}
		logger.Log("INFO", "Hauler pickup round complete", map[string]interface{}{
			"ship":      symbol,
			"transfers": len(summary.Transfers),
			"units":     summary.Cargo.Units,
		})
	}
}

// runMinerLoop keeps one miner offloading its cargo until the daemon stops
func runMinerLoop(ctx context.Context, worker *appFleet.MinerWorker, symbol string, retryDelay time.Duration, logger common.Logger) {
	for ctx.Err() == nil {
		if err := worker.OffloadCargo(ctx, symbol); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log("ERROR", "Miner offload failed", map[string]interface{}{
				"ship":  symbol,
				"error": err.Error(),
			})
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func parseModes(names []string) ([]shared.FlightMode, error) {
	modes := make([]shared.FlightMode, 0, len(names))
	for _, name := range names {
		mode, err := shared.ParseFlightMode(name)
		if err != nil {
			return nil, fmt.Errorf("invalid flight mode in config: %w", err)
		}
		modes = append(modes, mode)
	}
	return modes, nil
}
