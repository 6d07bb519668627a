package dashboard

import (
	"context"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
)

// VehicleLister lists the whole fleet.
type VehicleLister interface {
	All(ctx context.Context) ([]vehicle.Vehicle, error)
}

// DriverLister lists every driver.
type DriverLister interface {
	All(ctx context.Context) ([]driver.Driver, error)
}

// MaintenanceLister lists every maintenance record.
type MaintenanceLister interface {
	All(ctx context.Context) ([]maintenance.Record, error)
}
