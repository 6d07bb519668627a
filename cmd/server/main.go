package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/config"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/fleetapi"
	"github.com/rpggio/fleetview/internal/mcp"
	"github.com/rpggio/fleetview/internal/seed"
	"github.com/rpggio/fleetview/internal/sqlite"
	"github.com/rpggio/fleetview/internal/transport"
)

const version = "0.1.0"

type sources struct {
	vehicles    vehicle.Source
	drivers     driver.Source
	maintenance maintenance.Source
	close       func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Server.Transport == config.TransportStdio {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := openSources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open record source", "kind", cfg.Source.Kind, "error", err)
		os.Exit(1)
	}
	defer src.close()

	vehicleSvc := vehicle.NewService(src.vehicles, logger)
	driverSvc := driver.NewService(src.drivers, logger)
	maintenanceSvc := maintenance.NewService(src.maintenance, logger)
	dashboardSvc := dashboard.NewService(vehicleSvc, driverSvc, maintenanceSvc, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Vehicles:    vehicleSvc,
			Drivers:     driverSvc,
			Maintenance: maintenanceSvc,
			Dashboard:   dashboardSvc,
		},
		PageSize: cfg.List.PageSize,
		Mode:     cfg.ListMode(),
		Version:  version,
		Logger:   logger,
	})

	if cfg.Server.Transport == config.TransportStdio {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	router := transport.NewServer(transport.Services{
		Vehicles:    vehicleSvc,
		Drivers:     driverSvc,
		Maintenance: maintenanceSvc,
		Dashboard:   dashboardSvc,
	}, transport.Options{
		Defaults: transport.ListDefaults{PageSize: cfg.List.PageSize, Mode: cfg.ListMode()},
		Logger:   logger,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		),
	})
	runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port)
}

func openSources(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sources, error) {
	if cfg.Source.Kind == config.SourceRemote {
		client := fleetapi.New(cfg.Source.BaseURL, cfg.Source.Timeout, logger)
		logger.Info("using remote record source", "base_url", cfg.Source.BaseURL)
		return &sources{
			vehicles:    client.Vehicles(),
			drivers:     client.Drivers(),
			maintenance: client.Maintenance(),
			close:       func() error { return nil },
		}, nil
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	vehicleRepo := sqlite.NewVehicleRepository(db)
	driverRepo := sqlite.NewDriverRepository(db)
	maintenanceRepo := sqlite.NewMaintenanceRepository(db)

	if err := seedStore(ctx, cfg.Seed.Path, seed.Stores{
		Vehicles:    vehicleRepo,
		Drivers:     driverRepo,
		Maintenance: maintenanceRepo,
		Trips:       sqlite.NewTripRepository(db),
		FuelRecords: sqlite.NewFuelRecordRepository(db),
	}, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("using sqlite record source", "path", cfg.DB.Path)
	return &sources{
		vehicles:    vehicleRepo,
		drivers:     driverRepo,
		maintenance: maintenanceRepo,
		close:       db.Close,
	}, nil
}

// seedStore loads fixtures from path, or the bundled sample fleet when path
// is empty, into whichever stores are still empty.
func seedStore(ctx context.Context, path string, stores seed.Stores, logger *slog.Logger) error {
	var (
		fx  *seed.Fixtures
		err error
	)
	if path != "" {
		fx, err = seed.LoadFile(path)
	} else {
		fx, err = seed.Sample()
	}
	if err != nil {
		return err
	}

	res, err := seed.Apply(ctx, fx, stores, logger)
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	logger.Info("seeded store",
		"vehicles", res.Vehicles,
		"drivers", res.Drivers,
		"maintenance", res.Maintenance,
		"trips", res.Trips,
		"fuel_records", res.FuelRecords)
	return nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
