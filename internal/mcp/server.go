package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
)

// VehicleService defines vehicle operations needed by MCP.
type VehicleService interface {
	List(ctx context.Context, cfg listview.Config) (*vehicle.View, error)
}

// DriverService defines driver operations needed by MCP.
type DriverService interface {
	List(ctx context.Context, cfg listview.Config) (*driver.View, error)
}

// MaintenanceService defines maintenance operations needed by MCP.
type MaintenanceService interface {
	List(ctx context.Context, cfg listview.Config) (*maintenance.View, error)
	Upcoming(ctx context.Context, limit int) ([]maintenance.Upcoming, error)
}

// DashboardService defines dashboard operations needed by MCP.
type DashboardService interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Vehicles    VehicleService
	Drivers     DriverService
	Maintenance MaintenanceService
	Dashboard   DashboardService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// PageSize and Mode apply when a tool call leaves them out.
	PageSize int
	Mode     listview.Mode
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	logger := cfg.Logger.With(slog.String("component", "mcp"))

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "fleetview",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg)

	return server
}
