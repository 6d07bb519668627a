package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
)

const tripColumns = `id, vehicle_id, driver_id, start_location, end_location, purpose,
	start_date, end_date, status, distance, fuel_used, fuel_cost, notes`

const fuelRecordColumns = `id, vehicle_id, date, liters, cost_per_liter, odometer, station,
	payment_method, notes`

// childTable loads rows that belong to a parent entity, such as the trips of
// a driver.
type childTable[C any] struct {
	db      *DB
	name    string
	columns string
	scan    func(scanner) (C, error)
}

// byParent returns the rows whose fk column is one of ids, grouped by that
// parent ID and ordered by row ID.
func (c childTable[C]) byParent(ctx context.Context, fk string, ids []int64, parent func(C) int64) (map[int64][]C, error) {
	out := make(map[int64][]C)
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s) ORDER BY id", c.columns, c.name, fk, placeholders)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := c.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.name, err)
		}
		id := parent(item)
		out[id] = append(out[id], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.name, err)
	}
	return out, nil
}

func (c childTable[C]) count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.name, err)
	}
	return n, nil
}

func newTripTable(db *DB) childTable[trip.Trip] {
	return childTable[trip.Trip]{db: db, name: "trips", columns: tripColumns, scan: scanTrip}
}

// TripRepository stores trips. Trips are read back nested in their vehicle
// and driver.
type TripRepository struct {
	db    *DB
	table childTable[trip.Trip]
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *DB) *TripRepository {
	return &TripRepository{db: db, table: newTripTable(db)}
}

// Create inserts a trip. Its vehicle and driver must already exist.
func (r *TripRepository) Create(ctx context.Context, t *trip.Trip) error {
	query := `
		INSERT INTO trips (vehicle_id, driver_id, start_location, end_location, purpose,
			start_date, end_date, status, distance, fuel_used, fuel_cost, notes, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		t.VehicleID,
		t.DriverID,
		t.StartLocation,
		t.EndLocation,
		t.Purpose,
		t.StartDate,
		t.EndDate,
		t.Status,
		t.Distance,
		t.FuelUsed,
		t.FuelCost,
		t.Notes,
		nullID(t.ID),
	)
	if err != nil {
		return mapWriteError("create trip", err)
	}

	if t.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return mapWriteError("read trip id", err)
		}
		t.ID = id
	}
	return nil
}

// Count returns the number of stored trips
func (r *TripRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(ctx)
}

func scanTrip(s scanner) (trip.Trip, error) {
	var t trip.Trip
	err := s.Scan(
		&t.ID,
		&t.VehicleID,
		&t.DriverID,
		&t.StartLocation,
		&t.EndLocation,
		&t.Purpose,
		&t.StartDate,
		&t.EndDate,
		&t.Status,
		&t.Distance,
		&t.FuelUsed,
		&t.FuelCost,
		&t.Notes,
	)
	return t, err
}

func newFuelRecordTable(db *DB) childTable[vehicle.FuelRecord] {
	return childTable[vehicle.FuelRecord]{db: db, name: "fuel_records", columns: fuelRecordColumns, scan: scanFuelRecord}
}

// FuelRecordRepository stores refuelling records, read back nested in their
// vehicle.
type FuelRecordRepository struct {
	db    *DB
	table childTable[vehicle.FuelRecord]
}

// NewFuelRecordRepository creates a new FuelRecordRepository
func NewFuelRecordRepository(db *DB) *FuelRecordRepository {
	return &FuelRecordRepository{db: db, table: newFuelRecordTable(db)}
}

// Create inserts a fuel record. The vehicle must already exist.
func (r *FuelRecordRepository) Create(ctx context.Context, f *vehicle.FuelRecord) error {
	query := `
		INSERT INTO fuel_records (vehicle_id, date, liters, cost_per_liter, odometer, station,
			payment_method, notes, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		f.VehicleID,
		f.Date,
		f.Liters,
		f.CostPerLiter,
		f.Odometer,
		f.Station,
		f.PaymentMethod,
		f.Notes,
		nullID(f.ID),
	)
	if err != nil {
		return mapWriteError("create fuel record", err)
	}

	if f.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return mapWriteError("read fuel record id", err)
		}
		f.ID = id
	}
	return nil
}

// Count returns the number of stored fuel records
func (r *FuelRecordRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(ctx)
}

func scanFuelRecord(s scanner) (vehicle.FuelRecord, error) {
	var f vehicle.FuelRecord
	err := s.Scan(
		&f.ID,
		&f.VehicleID,
		&f.Date,
		&f.Liters,
		&f.CostPerLiter,
		&f.Odometer,
		&f.Station,
		&f.PaymentMethod,
		&f.Notes,
	)
	return f, err
}
