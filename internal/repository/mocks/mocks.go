package mocks

import (
	"context"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/stretchr/testify/mock"
)

// VehicleSource is a mock for vehicle.Source.
type VehicleSource struct {
	mock.Mock
}

func (m *VehicleSource) FetchAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]vehicle.Vehicle); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VehicleSource) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[vehicle.Vehicle], error) {
	args := m.Called(ctx, q)
	if page, ok := args.Get(0).(listview.SourcePage[vehicle.Vehicle]); ok {
		return page, args.Error(1)
	}
	return listview.SourcePage[vehicle.Vehicle]{}, args.Error(1)
}

func (m *VehicleSource) Get(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*vehicle.Vehicle); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// DriverSource is a mock for driver.Source.
type DriverSource struct {
	mock.Mock
}

func (m *DriverSource) FetchAll(ctx context.Context) ([]driver.Driver, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]driver.Driver); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DriverSource) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[driver.Driver], error) {
	args := m.Called(ctx, q)
	if page, ok := args.Get(0).(listview.SourcePage[driver.Driver]); ok {
		return page, args.Error(1)
	}
	return listview.SourcePage[driver.Driver]{}, args.Error(1)
}

func (m *DriverSource) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*driver.Driver); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// MaintenanceSource is a mock for maintenance.Source.
type MaintenanceSource struct {
	mock.Mock
}

func (m *MaintenanceSource) FetchAll(ctx context.Context) ([]maintenance.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]maintenance.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MaintenanceSource) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[maintenance.Record], error) {
	args := m.Called(ctx, q)
	if page, ok := args.Get(0).(listview.SourcePage[maintenance.Record]); ok {
		return page, args.Error(1)
	}
	return listview.SourcePage[maintenance.Record]{}, args.Error(1)
}

func (m *MaintenanceSource) Get(ctx context.Context, id int64) (*maintenance.Record, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*maintenance.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
