package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/domain/shared"
	"github.com/FloWi/flwi-spacetraders-agent-sub001/internal/infrastructure/ports"
)

const (
	defaultBaseURL     = "https://api.spacetraders.io/v2"
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 5
	defaultBackoffBase = time.Second
)

// retryableError marks a request failure that may succeed on retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}

// addJitter randomizes a backoff delay by +/- 25% to avoid thundering herds
func addJitter(d time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(d) / 2))
	return d*3/4 + jitter
}

// SpaceTradersClient implements the APIClient interface
type SpaceTradersClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewSpaceTradersClient creates a new API client with default settings.
// Rate limit: 2 requests per second with burst of 2.
// Retry: max 5 attempts with 1s exponential backoff + jitter
func NewSpaceTradersClient() *SpaceTradersClient {
	return NewSpaceTradersClientWithConfig(
		defaultBaseURL,
		defaultMaxRetries,
		defaultBackoffBase,
		nil, // Use RealClock by default
	)
}

// NewSpaceTradersClientWithConfig creates a new API client with custom
// configuration. If clock is nil, uses RealClock for production
func NewSpaceTradersClientWithConfig(
	baseURL string,
	maxRetries int,
	backoffBase time.Duration,
	clock shared.Clock,
) *SpaceTradersClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SpaceTradersClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 2), // 2 req/sec, burst 2
		breaker:     NewCircuitBreaker(10, 30*time.Second, clock),
		baseURL:     baseURL,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		clock:       clock,
	}
}

// shipResponse is the wire shape of a ship object
type shipResponse struct {
	Symbol       string `json:"symbol"`
	Registration struct {
		Role string `json:"role"`
	} `json:"registration"`
	Nav struct {
		SystemSymbol   string `json:"systemSymbol"`
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
		Route          *struct {
			Arrival string `json:"arrival"`
		} `json:"route,omitempty"` // Only present when IN_TRANSIT
	} `json:"nav"`
	Fuel struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Cargo cargoResponse `json:"cargo"`
	Engine struct {
		Speed int `json:"speed"`
	} `json:"engine"`
}

type cargoResponse struct {
	Capacity  int `json:"capacity"`
	Units     int `json:"units"`
	Inventory []struct {
		Symbol string `json:"symbol"`
		Units  int    `json:"units"`
	} `json:"inventory"`
}

func convertCargo(cargo cargoResponse) ports.CargoData {
	inventory := make([]ports.CargoItemData, len(cargo.Inventory))
	for i, item := range cargo.Inventory {
		inventory[i] = ports.CargoItemData{
			Symbol: item.Symbol,
			Units:  item.Units,
		}
	}
	return ports.CargoData{
		Capacity:  cargo.Capacity,
		Units:     cargo.Units,
		Inventory: inventory,
	}
}

func convertShip(ship shipResponse) (*ports.ShipData, error) {
	data := &ports.ShipData{
		Symbol:         ship.Symbol,
		Registration:   ship.Registration.Role,
		SystemSymbol:   ship.Nav.SystemSymbol,
		WaypointSymbol: ship.Nav.WaypointSymbol,
		NavStatus:      ship.Nav.Status,
		FuelCurrent:    ship.Fuel.Current,
		FuelCapacity:   ship.Fuel.Capacity,
		Cargo:          convertCargo(ship.Cargo),
		EngineSpeed:    ship.Engine.Speed,
	}

	if ship.Nav.Status == "IN_TRANSIT" && ship.Nav.Route != nil {
		arrival, err := time.Parse(time.RFC3339, ship.Nav.Route.Arrival)
		if err != nil {
			return nil, fmt.Errorf("failed to parse arrival time: %w", err)
		}
		data.ArrivalTime = &arrival
	}

	return data, nil
}

// GetShip retrieves ship details
func (c *SpaceTradersClient) GetShip(ctx context.Context, symbol, token string) (*ports.ShipData, error) {
	path := fmt.Sprintf("/my/ships/%s", symbol)

	var response struct {
		Data shipResponse `json:"data"`
	}

	if err := c.request(ctx, "GET", path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}

	return convertShip(response.Data)
}

// ListShips retrieves all ships owned by the agent
func (c *SpaceTradersClient) ListShips(ctx context.Context, token string) ([]*ports.ShipData, error) {
	var response struct {
		Data []shipResponse `json:"data"`
	}

	if err := c.request(ctx, "GET", "/my/ships?limit=20", token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list ships: %w", err)
	}

	ships := make([]*ports.ShipData, 0, len(response.Data))
	for _, ship := range response.Data {
		data, err := convertShip(ship)
		if err != nil {
			return nil, fmt.Errorf("failed to convert ship %s: %w", ship.Symbol, err)
		}
		ships = append(ships, data)
	}

	return ships, nil
}

// NavigateShip sends a ship to a waypoint in its current system
func (c *SpaceTradersClient) NavigateShip(ctx context.Context, symbol, destination, token string) (*ports.NavigationResult, error) {
	path := fmt.Sprintf("/my/ships/%s/navigate", symbol)
	body := map[string]string{"waypointSymbol": destination}

	var response struct {
		Data struct {
			Fuel struct {
				Consumed struct {
					Amount int `json:"amount"`
				} `json:"consumed"`
			} `json:"fuel"`
			Nav struct {
				Route struct {
					Arrival string `json:"arrival"`
				} `json:"route"`
			} `json:"nav"`
		} `json:"data"`
	}

	if err := c.request(ctx, "POST", path, token, body, &response); err != nil {
		return nil, fmt.Errorf("failed to navigate ship: %w", err)
	}

	arrival, err := time.Parse(time.RFC3339, response.Data.Nav.Route.Arrival)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arrival time: %w", err)
	}

	return &ports.NavigationResult{
		FuelConsumed: response.Data.Fuel.Consumed.Amount,
		ArrivalTime:  arrival,
	}, nil
}

// OrbitShip moves a docked ship into orbit
func (c *SpaceTradersClient) OrbitShip(ctx context.Context, symbol, token string) error {
	path := fmt.Sprintf("/my/ships/%s/orbit", symbol)
	if err := c.request(ctx, "POST", path, token, nil, nil); err != nil {
		return fmt.Errorf("failed to orbit ship: %w", err)
	}
	return nil
}

// DockShip docks a ship at its current waypoint
func (c *SpaceTradersClient) DockShip(ctx context.Context, symbol, token string) error {
	path := fmt.Sprintf("/my/ships/%s/dock", symbol)
	if err := c.request(ctx, "POST", path, token, nil, nil); err != nil {
		return fmt.Errorf("failed to dock ship: %w", err)
	}
	return nil
}

// RefuelShip refuels a docked ship. A nil units refuels to capacity
func (c *SpaceTradersClient) RefuelShip(ctx context.Context, symbol, token string, units *int) (*ports.RefuelResult, error) {
	path := fmt.Sprintf("/my/ships/%s/refuel", symbol)

	var body map[string]int
	if units != nil {
		body = map[string]int{"units": *units}
	}

	var response struct {
		Data struct {
			Fuel struct {
				Current  int `json:"current"`
				Capacity int `json:"capacity"`
			} `json:"fuel"`
			Transaction struct {
				Units int `json:"units"`
			} `json:"transaction"`
		} `json:"data"`
	}

	if err := c.request(ctx, "POST", path, token, body, &response); err != nil {
		return nil, fmt.Errorf("failed to refuel ship: %w", err)
	}

	return &ports.RefuelResult{
		FuelCurrent:  response.Data.Fuel.Current,
		FuelCapacity: response.Data.Fuel.Capacity,
		UnitsAdded:   response.Data.Transaction.Units,
	}, nil
}

// SetFlightMode sets a ship's flight mode
func (c *SpaceTradersClient) SetFlightMode(ctx context.Context, symbol, flightMode, token string) error {
	path := fmt.Sprintf("/my/ships/%s/nav", symbol)
	body := map[string]string{"flightMode": flightMode}

	if err := c.request(ctx, "PATCH", path, token, body, nil); err != nil {
		return fmt.Errorf("failed to set flight mode: %w", err)
	}
	return nil
}

// TransferCargo moves cargo between two ships at the same waypoint. Both
// ships' post-transfer cargo manifests are returned
func (c *SpaceTradersClient) TransferCargo(ctx context.Context, fromShip, toShip, goodSymbol string, units int, token string) (*ports.TransferResult, error) {
	path := fmt.Sprintf("/my/ships/%s/transfer", fromShip)
	body := map[string]interface{}{
		"tradeSymbol": goodSymbol,
		"units":       units,
		"shipSymbol":  toShip,
	}

	var response struct {
		Data struct {
			Cargo       cargoResponse `json:"cargo"`
			TargetCargo cargoResponse `json:"targetCargo"`
		} `json:"data"`
	}

	if err := c.request(ctx, "POST", path, token, body, &response); err != nil {
		return nil, fmt.Errorf("failed to transfer cargo: %w", err)
	}

	return &ports.TransferResult{
		SenderCargo:   convertCargo(response.Data.Cargo),
		ReceiverCargo: convertCargo(response.Data.TargetCargo),
	}, nil
}

// ListWaypoints retrieves one page of a system's waypoints
func (c *SpaceTradersClient) ListWaypoints(ctx context.Context, systemSymbol, token string, page, limit int) (*ports.WaypointsPage, error) {
	path := fmt.Sprintf("/systems/%s/waypoints?page=%d&limit=%d", systemSymbol, page, limit)

	var response struct {
		Data []struct {
			Symbol       string `json:"symbol"`
			SystemSymbol string `json:"systemSymbol"`
			Type         string `json:"type"`
			X            int    `json:"x"`
			Y            int    `json:"y"`
			Traits       []struct {
				Symbol string `json:"symbol"`
			} `json:"traits"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}

	if err := c.request(ctx, "GET", path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list waypoints: %w", err)
	}

	waypoints := make([]*ports.WaypointData, 0, len(response.Data))
	for _, wp := range response.Data {
		traits := make([]string, 0, len(wp.Traits))
		for _, trait := range wp.Traits {
			traits = append(traits, trait.Symbol)
		}
		waypoints = append(waypoints, &ports.WaypointData{
			Symbol:       wp.Symbol,
			SystemSymbol: wp.SystemSymbol,
			Type:         wp.Type,
			X:            wp.X,
			Y:            wp.Y,
			Traits:       traits,
		})
	}

	return &ports.WaypointsPage{
		Waypoints: waypoints,
		Total:     response.Meta.Total,
		Page:      response.Meta.Page,
		Limit:     response.Meta.Limit,
	}, nil
}

// GetMarket retrieves market data for a waypoint
func (c *SpaceTradersClient) GetMarket(ctx context.Context, systemSymbol, waypointSymbol, token string) (*ports.MarketData, error) {
	path := fmt.Sprintf("/systems/%s/waypoints/%s/market", systemSymbol, waypointSymbol)

	var response struct {
		Data struct {
			Symbol  string `json:"symbol"`
			Imports []struct {
				Symbol string `json:"symbol"`
			} `json:"imports"`
			Exports []struct {
				Symbol string `json:"symbol"`
			} `json:"exports"`
			Exchange []struct {
				Symbol string `json:"symbol"`
			} `json:"exchange"`
		} `json:"data"`
	}

	if err := c.request(ctx, "GET", path, token, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get market: %w", err)
	}

	goods := func(listings []struct {
		Symbol string `json:"symbol"`
	}) []string {
		symbols := make([]string, 0, len(listings))
		for _, listing := range listings {
			symbols = append(symbols, listing.Symbol)
		}
		return symbols
	}

	return &ports.MarketData{
		Symbol:   response.Data.Symbol,
		Imports:  goods(response.Data.Imports),
		Exports:  goods(response.Data.Exports),
		Exchange: goods(response.Data.Exchange),
	}, nil
}

// request executes one API call with rate limiting, circuit breaking, and
// exponential backoff retries for transient failures
func (c *SpaceTradersClient) request(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	return c.breaker.Call(func() error {
		return c.doWithRetries(ctx, method, path, token, body, result)
	})
}

func (c *SpaceTradersClient) doWithRetries(ctx context.Context, method, path, token string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retryErr, fatalErr := c.do(ctx, method, url, token, body, result)
		if fatalErr != nil {
			return fatalErr
		}
		if retryErr == nil {
			return nil
		}

		lastErr = retryErr
		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryErr.retryAfter > 0 {
			// Use server-provided Retry-After value without jitter
			backoffDelay = retryErr.retryAfter
		}
		c.clock.Sleep(backoffDelay)
	}

	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// do performs a single HTTP exchange. It returns (retryable, nil) for
// transient failures and (nil, fatal) for permanent ones
func (c *SpaceTradersClient) do(ctx context.Context, method, url, token string, body interface{}, result interface{}) (*retryableError, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryableError{message: fmt.Sprintf("network error: %v", err)}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// 429 is retryable, honoring Retry-After when the server sends one
	if resp.StatusCode == http.StatusTooManyRequests {
		var retryAfterDuration time.Duration
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				retryAfterDuration = time.Duration(seconds) * time.Second
			}
		}
		return &retryableError{
			message:    "rate limited (429)",
			retryAfter: retryAfterDuration,
		}, nil
	}

	// 5xx server errors are retryable
	if resp.StatusCode >= 500 {
		return &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}, nil
	}

	// Remaining non-2xx status codes are permanent failures
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil, nil
}
