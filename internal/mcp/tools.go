package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/fleetview/internal/domain/dashboard"
	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
)

const (
	defaultPageSize      = 10
	defaultUpcomingLimit = 5
)

// ListInput mirrors the REST list query parameters.
type ListInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"case-insensitive substring matched against the search fields"`
	Fields   []string `json:"fields,omitempty" jsonschema:"fields to search instead of the defaults"`
	Status   string   `json:"status,omitempty" jsonschema:"only rows with this status"`
	Sort     string   `json:"sort,omitempty" jsonschema:"field to sort by"`
	Dir      string   `json:"dir,omitempty" jsonschema:"asc or desc"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page number"`
	PageSize int      `json:"pageSize,omitempty" jsonschema:"rows per page"`
	Mode     string   `json:"mode,omitempty" jsonschema:"client or server pagination"`
}

// UpcomingInput selects how many scheduled services to return.
type UpcomingInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of services, default 5"`
}

// UpcomingOutput is the maintenance schedule.
type UpcomingOutput struct {
	Items []maintenance.Upcoming `json:"items"`
}

// StatsInput takes no arguments.
type StatsInput struct{}

func registerTools(server *sdkmcp.Server, cfg Config) {
	svc := cfg.Services
	defaults := listDefaults{pageSize: cfg.PageSize, mode: cfg.Mode}
	if defaults.pageSize <= 0 {
		defaults.pageSize = defaultPageSize
	}
	if defaults.mode == "" {
		defaults.mode = listview.ModeClientSide
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_vehicles",
		Description: "List fleet vehicles with search, status filter, sorting and pagination. " + fieldHint(vehicle.Schema),
	}, listTool(vehicle.Schema, defaults, svc.Vehicles.List))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_drivers",
		Description: "List drivers with search, status filter, sorting and pagination. " + fieldHint(driver.Schema),
	}, listTool(driver.Schema, defaults, svc.Drivers.List))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_maintenance",
		Description: "List maintenance records with search, status filter, sorting and pagination. " + fieldHint(maintenance.Schema),
	}, listTool(maintenance.Schema, defaults, svc.Maintenance.List))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "upcoming_maintenance",
		Description: "Scheduled services ordered by date, each with days remaining and urgency",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpcomingInput) (*sdkmcp.CallToolResult, UpcomingOutput, error) {
		limit := in.Limit
		if limit == 0 {
			limit = defaultUpcomingLimit
		}
		items, err := svc.Maintenance.Upcoming(ctx, limit)
		if err != nil {
			return nil, UpcomingOutput{}, toolError(err)
		}
		return nil, UpcomingOutput{Items: items}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_fleet_stats",
		Description: "Dashboard totals for vehicles, drivers and maintenance",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ StatsInput) (*sdkmcp.CallToolResult, dashboard.Stats, error) {
		stats, err := svc.Dashboard.Stats(ctx)
		if err != nil {
			return nil, dashboard.Stats{}, toolError(err)
		}
		return nil, *stats, nil
	})
}

type listDefaults struct {
	pageSize int
	mode     listview.Mode
}

func listTool[T, R any](
	schema listview.Schema[T],
	defaults listDefaults,
	list func(context.Context, listview.Config) (*listview.View[R], error),
) sdkmcp.ToolHandlerFor[ListInput, listview.View[R]] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListInput) (*sdkmcp.CallToolResult, listview.View[R], error) {
		cfg, err := listConfig(schema, defaults, in)
		if err != nil {
			return nil, listview.View[R]{}, toolError(err)
		}
		view, err := list(ctx, cfg)
		if err != nil {
			return nil, listview.View[R]{}, toolError(err)
		}
		return nil, *view, nil
	}
}

func listConfig[T any](schema listview.Schema[T], defaults listDefaults, in ListInput) (listview.Config, error) {
	cfg := listview.Config{
		SearchTerm:   in.Search,
		SearchFields: in.Fields,
		SortField:    in.Sort,
		Page:         in.Page,
		PageSize:     in.PageSize,
		Mode:         defaults.mode,
	}
	if cfg.Page == 0 {
		cfg.Page = 1
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaults.pageSize
	}
	if in.Status != "" {
		cfg = cfg.WithStatus(in.Status)
	}

	dir, err := listview.ParseDirection(in.Dir)
	if err != nil {
		return listview.Config{}, err
	}
	cfg.SortDirection = dir

	if in.Mode != "" {
		if cfg.Mode, err = listview.ParseMode(in.Mode); err != nil {
			return listview.Config{}, err
		}
	}
	if err := schema.CheckFields(cfg); err != nil {
		return listview.Config{}, err
	}
	return cfg, nil
}

func fieldHint[T any](schema listview.Schema[T]) string {
	return "Fields: " + strings.Join(schema.FieldNames(), ", ") + "."
}
