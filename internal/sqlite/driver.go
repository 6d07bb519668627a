package sqlite

import (
	"context"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

const driverColumns = `id, name, phone, email, license_number, license_expiry, status, rating,
	hours_logged, join_date, address, avatar`

// DriverRepository implements driver.Source for SQLite. Drivers are returned
// with their trips.
type DriverRepository struct {
	db    *DB
	table table[driver.Driver]
	trips childTable[trip.Trip]
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db *DB) *DriverRepository {
	r := &DriverRepository{
		db:    db,
		trips: newTripTable(db),
	}
	r.table = table[driver.Driver]{
		db:            db,
		name:          "drivers",
		columns:       driverColumns,
		searchColumns: []string{"name", "email", "phone", "license_number"},
		scan:          scanDriver,
		attach:        r.attachTrips,
	}
	return r
}

// Create inserts a driver and sets its ID when it was zero
func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	query := `
		INSERT INTO drivers (name, phone, email, license_number, license_expiry, status, rating,
			hours_logged, join_date, address, avatar, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		d.Name,
		d.Phone,
		d.Email,
		d.LicenseNumber,
		d.LicenseExpiry,
		d.Status,
		d.Rating,
		d.HoursLogged,
		d.JoinDate,
		d.Address,
		d.Avatar,
		nullID(d.ID),
	)
	if err != nil {
		return mapWriteError("create driver", err)
	}

	if d.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return mapWriteError("read driver id", err)
		}
		d.ID = id
	}
	return nil
}

// FetchAll returns every driver ordered by ID
func (r *DriverRepository) FetchAll(ctx context.Context) ([]driver.Driver, error) {
	return r.table.fetchAll(ctx)
}

// FetchPage searches and pages drivers
func (r *DriverRepository) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[driver.Driver], error) {
	return r.table.fetchPage(ctx, q)
}

// Get retrieves a driver by ID
func (r *DriverRepository) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	return r.table.get(ctx, id)
}

// Count returns the number of stored drivers
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(ctx)
}

func (r *DriverRepository) attachTrips(ctx context.Context, drivers []driver.Driver) error {
	ids := make([]int64, len(drivers))
	for i, d := range drivers {
		ids[i] = d.ID
	}
	trips, err := r.trips.byParent(ctx, "driver_id", ids, func(t trip.Trip) int64 { return t.DriverID })
	if err != nil {
		return err
	}
	for i := range drivers {
		drivers[i].Trips = trips[drivers[i].ID]
	}
	return nil
}

func scanDriver(s scanner) (driver.Driver, error) {
	var d driver.Driver
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.Email,
		&d.LicenseNumber,
		&d.LicenseExpiry,
		&d.Status,
		&d.Rating,
		&d.HoursLogged,
		&d.JoinDate,
		&d.Address,
		&d.Avatar,
	)
	return d, err
}
