// Package seed loads YAML fleet fixtures into a store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed fleet.yaml
var sampleFleet []byte

// Fixtures is the content of a seed file.
type Fixtures struct {
	Vehicles    []vehicle.Vehicle    `yaml:"vehicles"`
	Drivers     []driver.Driver      `yaml:"drivers"`
	Maintenance []maintenance.Record `yaml:"maintenance"`
	Trips       []TripFixture        `yaml:"trips"`
	FuelRecords []FuelRecordFixture  `yaml:"fuel_records"`
}

// TripFixture is a trip that names its vehicle by registration and its
// driver by name.
type TripFixture struct {
	trip.Trip `yaml:",inline"`
	Vehicle   string `yaml:"vehicle"`
	Driver    string `yaml:"driver"`
}

// FuelRecordFixture is a fuel record that names its vehicle by registration.
type FuelRecordFixture struct {
	vehicle.FuelRecord `yaml:",inline"`
	Vehicle            string `yaml:"vehicle"`
}

// Sample returns the bundled demo fleet.
func Sample() (*Fixtures, error) {
	return Parse(sampleFleet)
}

// LoadFile reads fixtures from a YAML file.
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML fixtures.
func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}
	return &fx, nil
}

// VehicleStore is where vehicle fixtures are written.
type VehicleStore interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	Count(ctx context.Context) (int, error)
}

// DriverStore is where driver fixtures are written.
type DriverStore interface {
	Create(ctx context.Context, d *driver.Driver) error
	Count(ctx context.Context) (int, error)
}

// MaintenanceStore is where maintenance fixtures are written.
type MaintenanceStore interface {
	Create(ctx context.Context, r *maintenance.Record) error
	Count(ctx context.Context) (int, error)
}

// TripStore is where trip fixtures are written.
type TripStore interface {
	Create(ctx context.Context, t *trip.Trip) error
	Count(ctx context.Context) (int, error)
}

// FuelRecordStore is where fuel record fixtures are written.
type FuelRecordStore interface {
	Create(ctx context.Context, f *vehicle.FuelRecord) error
	Count(ctx context.Context) (int, error)
}

// Stores groups the destinations of a seed run.
type Stores struct {
	Vehicles    VehicleStore
	Drivers     DriverStore
	Maintenance MaintenanceStore
	Trips       TripStore
	FuelRecords FuelRecordStore
}

// Result counts the rows written per entity.
type Result struct {
	Vehicles    int
	Drivers     int
	Maintenance int
	Trips       int
	FuelRecords int
}

// Apply writes fixtures into empty stores. A store that already holds rows is
// left untouched, so seeding on every start is safe. Maintenance records,
// trips and fuel records may name their vehicle by registration instead of
// ID, and trips may name their driver instead of giving its ID.
func Apply(ctx context.Context, fx *Fixtures, stores Stores, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "seed"))

	var res Result
	byRegistration := make(map[string]int64)
	byName := make(map[string]int64)

	n, err := stores.Vehicles.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for i := range fx.Vehicles {
			v := fx.Vehicles[i]
			if err := stores.Vehicles.Create(ctx, &v); err != nil {
				return res, fmt.Errorf("seed vehicle %q: %w", v.RegistrationNumber, err)
			}
			byRegistration[v.RegistrationNumber] = v.ID
			res.Vehicles++
		}
	} else {
		logger.Info("vehicles already present, skipping", "count", n)
	}

	n, err = stores.Drivers.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for i := range fx.Drivers {
			d := fx.Drivers[i]
			if err := stores.Drivers.Create(ctx, &d); err != nil {
				return res, fmt.Errorf("seed driver %q: %w", d.Name, err)
			}
			byName[d.Name] = d.ID
			res.Drivers++
		}
	} else {
		logger.Info("drivers already present, skipping", "count", n)
	}

	n, err = stores.Maintenance.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for i := range fx.Maintenance {
			r := fx.Maintenance[i]
			if r.VehicleID == 0 {
				id, err := lookup(byRegistration, r.VehicleRegistration, "vehicle")
				if err != nil {
					return res, fmt.Errorf("seed maintenance: %w", err)
				}
				r.VehicleID = id
			}
			if err := stores.Maintenance.Create(ctx, &r); err != nil {
				return res, fmt.Errorf("seed maintenance %q: %w", r.Type, err)
			}
			res.Maintenance++
		}
	} else {
		logger.Info("maintenance records already present, skipping", "count", n)
	}

	n, err = stores.Trips.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for i := range fx.Trips {
			t := fx.Trips[i].Trip
			if t.VehicleID == 0 {
				if t.VehicleID, err = lookup(byRegistration, fx.Trips[i].Vehicle, "vehicle"); err != nil {
					return res, fmt.Errorf("seed trip: %w", err)
				}
			}
			if t.DriverID == 0 {
				if t.DriverID, err = lookup(byName, fx.Trips[i].Driver, "driver"); err != nil {
					return res, fmt.Errorf("seed trip: %w", err)
				}
			}
			if err := stores.Trips.Create(ctx, &t); err != nil {
				return res, fmt.Errorf("seed trip %s to %s: %w", t.StartLocation, t.EndLocation, err)
			}
			res.Trips++
		}
	} else {
		logger.Info("trips already present, skipping", "count", n)
	}

	n, err = stores.FuelRecords.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for i := range fx.FuelRecords {
			f := fx.FuelRecords[i].FuelRecord
			if f.VehicleID == 0 {
				if f.VehicleID, err = lookup(byRegistration, fx.FuelRecords[i].Vehicle, "vehicle"); err != nil {
					return res, fmt.Errorf("seed fuel record: %w", err)
				}
			}
			if err := stores.FuelRecords.Create(ctx, &f); err != nil {
				return res, fmt.Errorf("seed fuel record %s: %w", f.Date, err)
			}
			res.FuelRecords++
		}
	} else {
		logger.Info("fuel records already present, skipping", "count", n)
	}

	logger.Info("seed complete",
		"vehicles", res.Vehicles,
		"drivers", res.Drivers,
		"maintenance", res.Maintenance,
		"trips", res.Trips,
		"fuel_records", res.FuelRecords)
	return res, nil
}

func lookup(ids map[string]int64, key, kind string) (int64, error) {
	id, ok := ids[key]
	if !ok {
		return 0, fmt.Errorf("unknown %s %q: %w", kind, key, repository.ErrInvalidInput)
	}
	return id, nil
}
