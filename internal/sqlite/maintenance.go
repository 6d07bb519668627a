package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
)

const maintenanceColumns = `id, vehicle_id, vehicle_registration, type, description, date, cost,
	status, facility, notes, parts`

// MaintenanceRepository implements maintenance.Source for SQLite
type MaintenanceRepository struct {
	db    *DB
	table table[maintenance.Record]
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(db *DB) *MaintenanceRepository {
	return &MaintenanceRepository{
		db: db,
		table: table[maintenance.Record]{
			db:            db,
			name:          "maintenance_records",
			columns:       maintenanceColumns,
			searchColumns: []string{"vehicle_registration", "type", "description", "facility"},
			scan:          scanMaintenance,
		},
	}
}

// Create inserts a maintenance record. The vehicle must already exist.
func (r *MaintenanceRepository) Create(ctx context.Context, rec *maintenance.Record) error {
	parts, err := json.Marshal(rec.Parts)
	if err != nil {
		return fmt.Errorf("failed to marshal parts: %w", err)
	}

	query := `
		INSERT INTO maintenance_records (vehicle_id, vehicle_registration, type, description, date,
			cost, status, facility, notes, parts, id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		rec.VehicleID,
		rec.VehicleRegistration,
		rec.Type,
		rec.Description,
		rec.Date,
		rec.Cost,
		rec.Status,
		rec.Facility,
		rec.Notes,
		string(parts),
		nullID(rec.ID),
	)
	if err != nil {
		return mapWriteError("create maintenance record", err)
	}

	if rec.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return mapWriteError("read maintenance record id", err)
		}
		rec.ID = id
	}
	return nil
}

// FetchAll returns every maintenance record ordered by ID
func (r *MaintenanceRepository) FetchAll(ctx context.Context) ([]maintenance.Record, error) {
	return r.table.fetchAll(ctx)
}

// FetchPage searches and pages maintenance records
func (r *MaintenanceRepository) FetchPage(ctx context.Context, q recordsource.Query) (listview.SourcePage[maintenance.Record], error) {
	return r.table.fetchPage(ctx, q)
}

// Get retrieves a maintenance record by ID
func (r *MaintenanceRepository) Get(ctx context.Context, id int64) (*maintenance.Record, error) {
	return r.table.get(ctx, id)
}

// Count returns the number of stored maintenance records
func (r *MaintenanceRepository) Count(ctx context.Context) (int, error) {
	return r.table.count(ctx)
}

func scanMaintenance(s scanner) (maintenance.Record, error) {
	var rec maintenance.Record
	var parts string
	err := s.Scan(
		&rec.ID,
		&rec.VehicleID,
		&rec.VehicleRegistration,
		&rec.Type,
		&rec.Description,
		&rec.Date,
		&rec.Cost,
		&rec.Status,
		&rec.Facility,
		&rec.Notes,
		&parts,
	)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(parts), &rec.Parts); err != nil {
		return rec, fmt.Errorf("decode parts: %w", err)
	}
	return rec, nil
}
