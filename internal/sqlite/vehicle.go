package sqlite

import (
	"context"

	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

const vehicleColumns = `id, registration_number, make, model, type, year, status, fuel_level,
	fuel_efficiency, mileage, location, assigned_driver, last_serviced, next_service,
	last_inspection, image`

// VehicleRepository implements vehicle.Source for SQLite. Vehicles are
// returned with their fuel records, maintenance records and trips.
type VehicleRepository struct {
	db          *DB
	table       table[vehicle.Vehicle]
	fuel        childTable[vehicle.FuelRecord]
	maintenance childTable[maintenance.Record]
	trips       childTable[trip.Trip]
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *DB) *VehicleRepository {
	r := &VehicleRepository{
		db:          db,
		fuel:        newFuelRecordTable(db),
		maintenance: childTable[maintenance.Record]{db: db, name: "maintenance_records", columns: maintenanceColumns, scan: scanMaintenance},
		trips:       newTripTable(db),
	}
	r.table = table[vehicle.Vehicle]{
		db:            db,
		name:          "vehicles",
		columns:       vehicleColumns,
		searchColumns: []string{"registration_number", "make", "model", "type", "location"},
		scan:          scanVehicle,
		attach:        r.attachHistory,
	}
	return r
}

// Create inserts a vehicle and sets its ID when it was zero
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (registration_number, make, model, type, year, status, fuel_level,
			fuel_efficiency, mileage, location, assigned_driver, last_serviced, next_service,
			last_inspection, image, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		v.RegistrationNumber,
		v.Make,
		v.Model,
		v.Type,
		v.Year,
		v.Status,
		v.FuelLevel,
		v.FuelEfficiency,
		v.Mileage,
		v.Location,
		v.AssignedDriver,
		v.LastServiced,
		v.NextService,
		v.LastInspection,
		v.Image,
		nullID(v.ID),
	)
	if err != nil {
		return mapWriteError("create vehicle", err)
	}

	if v.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return mapWriteError("read vehicle id", err)
		}
		v.ID = id
	}
	return nil
}

// FetchAll returns every vehicle ordered by ID
func (r *VehicleRepository) FetchAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	return r.table.fetchAll(ctx)
}

// FetchPage searches and pages vehicles
func (r *VehicleRepository) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[vehicle.Vehicle], error) {
	return r.table.fetchPage(ctx, q)
}

// Get retrieves a vehicle by ID
func (r *VehicleRepository) Get(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return r.table.get(ctx, id)
}

// Count returns the number of stored vehicles
func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(ctx)
}

func (r *VehicleRepository) attachHistory(ctx context.Context, vehicles []vehicle.Vehicle) error {
	ids := make([]int64, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}

	fuel, err := r.fuel.byParent(ctx, "vehicle_id", ids, func(f vehicle.FuelRecord) int64 { return f.VehicleID })
	if err != nil {
		return err
	}
	records, err := r.maintenance.byParent(ctx, "vehicle_id", ids, func(m maintenance.Record) int64 { return m.VehicleID })
	if err != nil {
		return err
	}
	trips, err := r.trips.byParent(ctx, "vehicle_id", ids, func(t trip.Trip) int64 { return t.VehicleID })
	if err != nil {
		return err
	}

	for i := range vehicles {
		id := vehicles[i].ID
		vehicles[i].FuelRecords = fuel[id]
		vehicles[i].MaintenanceRecords = records[id]
		vehicles[i].Trips = trips[id]
	}
	return nil
}

func scanVehicle(s scanner) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := s.Scan(
		&v.ID,
		&v.RegistrationNumber,
		&v.Make,
		&v.Model,
		&v.Type,
		&v.Year,
		&v.Status,
		&v.FuelLevel,
		&v.FuelEfficiency,
		&v.Mileage,
		&v.Location,
		&v.AssignedDriver,
		&v.LastServiced,
		&v.NextService,
		&v.LastInspection,
		&v.Image,
	)
	return v, err
}

// nullID lets SQLite assign the key for zero IDs.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
