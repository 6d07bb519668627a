// Package testserver runs the full fleetview stack over an in-memory SQLite
// store seeded with the sample fleet.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/mcp"
	"github.com/rpggio/fleetview/internal/seed"
	"github.com/rpggio/fleetview/internal/sqlite"
	"github.com/rpggio/fleetview/internal/transport"
	"github.com/stretchr/testify/require"
)

// Now is the fixed clock of every test server. The sample fleet's dates are
// relative to it: one scheduled service falls due within the week.
var Now = time.Date(2025, 2, 25, 9, 0, 0, 0, time.UTC)

// TestServer is a running fleetview HTTP server.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Services transport.Services
	MCP      *sdkmcp.Server
}

// Options adjust a test server.
type Options struct {
	PageSize int
	Mode     listview.Mode
}

// New starts a server with default options.
func New(t *testing.T) *TestServer {
	return NewWithOptions(t, Options{})
}

// NewWithOptions starts a server backed by a fresh seeded database.
func NewWithOptions(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	vehicleRepo := sqlite.NewVehicleRepository(db)
	driverRepo := sqlite.NewDriverRepository(db)
	maintenanceRepo := sqlite.NewMaintenanceRepository(db)

	fx, err := seed.Sample()
	require.NoError(t, err)
	_, err = seed.Apply(context.Background(), fx, seed.Stores{
		Vehicles:    vehicleRepo,
		Drivers:     driverRepo,
		Maintenance: maintenanceRepo,
		Trips:       sqlite.NewTripRepository(db),
		FuelRecords: sqlite.NewFuelRecordRepository(db),
	}, nil)
	require.NoError(t, err)

	clock := func() time.Time { return Now }
	vehicleSvc := vehicle.NewService(vehicleRepo, nil, vehicle.WithClock(clock))
	driverSvc := driver.NewService(driverRepo, nil, driver.WithClock(clock))
	maintenanceSvc := maintenance.NewService(maintenanceRepo, nil, maintenance.WithClock(clock))
	dashboardSvc := dashboard.NewService(vehicleSvc, driverSvc, maintenanceSvc, nil, dashboard.WithClock(clock))

	services := transport.Services{
		Vehicles:    vehicleSvc,
		Drivers:     driverSvc,
		Maintenance: maintenanceSvc,
		Dashboard:   dashboardSvc,
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Vehicles:    vehicleSvc,
			Drivers:     driverSvc,
			Maintenance: maintenanceSvc,
			Dashboard:   dashboardSvc,
		},
		PageSize: opts.PageSize,
		Mode:     opts.Mode,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(services, transport.Options{
		Defaults: transport.ListDefaults{PageSize: opts.PageSize, Mode: opts.Mode},
		MCP:      mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Services: services,
		MCP:      mcpServer,
	}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
