package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/fleetapi"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

// VehicleService is the vehicle surface the API needs.
type VehicleService interface {
	List(ctx context.Context, cfg listview.Config) (*vehicle.View, error)
	Get(ctx context.Context, id int64) (*vehicle.Row, error)
	All(ctx context.Context) ([]vehicle.Vehicle, error)
	Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[vehicle.Vehicle], error)
	StatusCounts(ctx context.Context) (*vehicle.StatusCounts, error)
}

// DriverService is the driver surface the API needs.
type DriverService interface {
	List(ctx context.Context, cfg listview.Config) (*driver.View, error)
	Get(ctx context.Context, id int64) (*driver.Row, error)
	All(ctx context.Context) ([]driver.Driver, error)
	Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[driver.Driver], error)
}

// MaintenanceService is the maintenance surface the API needs.
type MaintenanceService interface {
	List(ctx context.Context, cfg listview.Config) (*maintenance.View, error)
	Get(ctx context.Context, id int64) (*maintenance.Row, error)
	All(ctx context.Context) ([]maintenance.Record, error)
	Page(ctx context.Context, q recordsource.Query) (listview.SourcePage[maintenance.Record], error)
	Upcoming(ctx context.Context, limit int) ([]maintenance.Upcoming, error)
}

// DashboardService computes fleet statistics.
type DashboardService interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
}

// Services are the handlers' dependencies.
type Services struct {
	Vehicles    VehicleService
	Drivers     DriverService
	Maintenance MaintenanceService
	Dashboard   DashboardService
}

// Options configure the router.
type Options struct {
	Defaults ListDefaults
	Logger   *slog.Logger
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	defaults ListDefaults
	logger   *slog.Logger
}

const defaultUpcomingLimit = 5

// NewServer creates an HTTP server router with middleware.
func NewServer(services Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Defaults.PageSize <= 0 {
		opts.Defaults.PageSize = 10
	}
	if opts.Defaults.Mode == "" {
		opts.Defaults.Mode = listview.ModeClientSide
	}

	srv := &Server{
		services: services,
		defaults: opts.Defaults,
		logger:   logger.With(slog.String("component", "http")),
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(srv.logger))
	r.Use(MetricsMiddleware)

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/vehicles", listHandler(vehicle.Schema, srv.defaults, services.Vehicles.List))
		r.Get("/vehicles/status", srv.handleVehicleStatus)
		r.Get("/vehicles/{id}", getHandler(services.Vehicles.Get))

		r.Get("/drivers", listHandler(driver.Schema, srv.defaults, services.Drivers.List))
		r.Get("/drivers/{id}", getHandler(services.Drivers.Get))

		r.Get("/maintenance", listHandler(maintenance.Schema, srv.defaults, services.Maintenance.List))
		r.Get("/maintenance/upcoming", srv.handleUpcoming)
		r.Get("/maintenance/{id}", getHandler(services.Maintenance.Get))

		r.Get("/dashboard", srv.handleDashboard)

		// Envelope endpoints, so one instance can be another's remote source.
		r.Get(fleetapi.VehiclePath, sourceListHandler(srv.defaults, services.Vehicles.All, services.Vehicles.Page))
		r.Get(fleetapi.VehiclePath+"/{id}", sourceGetHandler(services.Vehicles.Get, func(row vehicle.Row) vehicle.Vehicle { return row.Vehicle }))
		r.Get(fleetapi.DriverPath, sourceListHandler(srv.defaults, services.Drivers.All, services.Drivers.Page))
		r.Get(fleetapi.DriverPath+"/{id}", sourceGetHandler(services.Drivers.Get, func(row driver.Row) driver.Driver { return row.Driver }))
		r.Get(fleetapi.MaintenancePath, sourceListHandler(srv.defaults, services.Maintenance.All, services.Maintenance.Page))
		r.Get(fleetapi.MaintenancePath+"/{id}", sourceGetHandler(services.Maintenance.Get, func(row maintenance.Row) maintenance.Record { return row.Record }))
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVehicleStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := s.services.Vehicles.StatusCounts(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), defaultUpcomingLimit, "limit")
	if err != nil {
		WriteError(w, err)
		return
	}
	items, err := s.services.Maintenance.Upcoming(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.services.Dashboard.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// listHandler serves a list view. A source failure still returns the empty
// view, with its error, under 502.
func listHandler[T, R any](
	schema listview.Schema[T],
	defaults ListDefaults,
	list func(context.Context, listview.Config) (*listview.View[R], error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := ParseListConfig(r, schema, defaults)
		if err != nil {
			WriteError(w, err)
			return
		}
		view, err := list(r.Context(), cfg)
		if err != nil {
			if view != nil && errors.Is(err, recordsource.ErrUnavailable) {
				writeJSON(w, http.StatusBadGateway, view)
				return
			}
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func getHandler[R any](get func(context.Context, int64) (*R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, err)
			return
		}
		row, err := get(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, row)
	}
}

func sourceListHandler[T any](
	defaults ListDefaults,
	all func(context.Context) ([]T, error),
	page func(context.Context, recordsource.Query) (listview.SourcePage[T], error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, paged, err := parseSourceQuery(r, defaults.PageSize)
		if err != nil {
			writeEnvelopeError(w, err)
			return
		}
		if !paged {
			items, err := all(r.Context())
			if err != nil {
				writeEnvelopeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, fleetapi.Envelope[[]T]{
				Success:    true,
				Data:       items,
				Total:      len(items),
				Page:       1,
				TotalPages: 1,
			})
			return
		}

		p, err := page(r.Context(), q)
		if err != nil {
			writeEnvelopeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, fleetapi.Envelope[[]T]{
			Success:    true,
			Data:       p.Items,
			Total:      p.Total,
			Page:       p.Page,
			TotalPages: p.TotalPages,
		})
	}
}

func sourceGetHandler[R, T any](get func(context.Context, int64) (*R, error), record func(R) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(chi.URLParam(r, "id"))
		if err != nil {
			writeEnvelopeError(w, err)
			return
		}
		row, err := get(r.Context(), id)
		if err != nil {
			writeEnvelopeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, fleetapi.Envelope[T]{Success: true, Data: record(*row)})
	}
}

func writeEnvelopeError(w http.ResponseWriter, err error) {
	status, _ := StatusFor(err)
	writeJSON(w, status, fleetapi.Envelope[any]{Success: false, Message: err.Error()})
}
