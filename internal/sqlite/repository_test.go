package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
	"github.com/rpggio/fleetview/internal/recordsource"
	"github.com/rpggio/fleetview/internal/repository"
	"github.com/stretchr/testify/require"
)

func recordsourceQuery(search, status string) recordsource.Query {
	return recordsource.Query{Page: 1, Limit: 10, Search: search, Status: status}
}

func seedVehicles(t *testing.T, repo *VehicleRepository, n int) {
	t.Helper()
	ctx := context.Background()
	makes := []string{"Isuzu", "Toyota", "Scania"}
	for i := 0; i < n; i++ {
		status := vehicle.StatusActive
		if i%2 == 0 {
			status = vehicle.StatusMaintenance
		}
		v := &vehicle.Vehicle{
			RegistrationNumber: "KC" + string(rune('A'+i)) + " 100",
			Make:               makes[i%len(makes)],
			Model:              "Model",
			Year:               2015 + i,
			Status:             status,
			Location:           "Nairobi",
		}
		require.NoError(t, repo.Create(ctx, v))
		require.Equal(t, int64(i+1), v.ID)
	}
}

func TestVehicleRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	v := &vehicle.Vehicle{
		ID:                 42,
		RegistrationNumber: "KCA 100A",
		Make:               "Isuzu",
		Model:              "NPR",
		Type:               "Truck",
		Year:               2019,
		Status:             "active",
		FuelLevel:          75.5,
		FuelEfficiency:     8.2,
		Mileage:            120500,
		Location:           "Nairobi",
		AssignedDriver:     "Wanjiku Kamau",
		LastServiced:       "2025-01-15",
		NextService:        "2025-04-15",
		LastInspection:     "2024-12-01",
	}
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, v, got)

	_, err = repo.Get(ctx, 7)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVehicleRepository_DuplicateRegistration(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &vehicle.Vehicle{RegistrationNumber: "KCA 100A"}))
	err := repo.Create(ctx, &vehicle.Vehicle{RegistrationNumber: "KCA 100A"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestVehicleRepository_FetchAll(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVehicleRepository(db)
	seedVehicles(t, repo, 5)

	all, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, int64(1), all[0].ID)
	require.Equal(t, int64(5), all[4].ID)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestVehicleRepository_FetchAll_Empty(t *testing.T) {
	db := NewTestDB(t)
	all, err := NewVehicleRepository(db).FetchAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestVehicleRepository_FetchPage(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVehicleRepository(db)
	seedVehicles(t, repo, 7)
	ctx := context.Background()

	page, err := repo.FetchPage(ctx, recordsource.Query{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Equal(t, 7, page.Total)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 3)
	require.Equal(t, int64(4), page.Items[0].ID)

	page, err = repo.FetchPage(ctx, recordsource.Query{Page: 3, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestVehicleRepository_FetchPage_SearchAndStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewVehicleRepository(db)
	seedVehicles(t, repo, 7)
	ctx := context.Background()

	page, err := repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 10, Search: "ISUZU"})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)

	page, err = repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 10, Search: "isuzu", Status: "MAINTENANCE"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.Equal(t, int64(1), page.Items[0].ID)
	require.Equal(t, int64(7), page.Items[1].ID)

	page, err = repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 10, Search: "%"})
	require.NoError(t, err)
	require.Zero(t, page.Total)
	require.Zero(t, page.TotalPages)
}

func TestVehicleRepository_FetchPage_InvalidQuery(t *testing.T) {
	db := NewTestDB(t)
	_, err := NewVehicleRepository(db).FetchPage(context.Background(), recordsource.Query{Page: 0, Limit: 10})
	require.ErrorIs(t, err, listview.ErrInvalidConfiguration)
}

func TestDriverRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewDriverRepository(db)
	ctx := context.Background()

	drivers := []*driver.Driver{
		{Name: "Wanjiku Kamau", Email: "wanjiku@fleet.co.ke", Phone: "+254 712 345678", LicenseNumber: "DL-1001", Status: "on-duty", Rating: 4.8},
		{Name: "Brian Otieno", Email: "brian@fleet.co.ke", Phone: "+254 722 111222", LicenseNumber: "DL-1002", Status: "available", Rating: 4.5},
	}
	for _, d := range drivers {
		require.NoError(t, repo.Create(ctx, d))
	}

	got, err := repo.Get(ctx, drivers[1].ID)
	require.NoError(t, err)
	require.Equal(t, drivers[1], got)

	page, err := repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 5, Search: "dl-1001"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Wanjiku Kamau", page.Items[0].Name)

	err = repo.Create(ctx, &driver.Driver{Name: "Dup", LicenseNumber: "DL-1001"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestDriverRepository_SearchFoldsASCIIOnly(t *testing.T) {
	db := NewTestDB(t)
	repo := NewDriverRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &driver.Driver{Name: "Émile Njoroge", LicenseNumber: "DL-2001"}))

	page, err := repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 5, Search: "ÉMILE"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Émile Njoroge", page.Items[0].Name)
}

func TestHistory_NestedInVehiclesAndDrivers(t *testing.T) {
	db := NewTestDB(t)
	vehicles := NewVehicleRepository(db)
	drivers := NewDriverRepository(db)
	trips := NewTripRepository(db)
	fuel := NewFuelRecordRepository(db)
	maint := NewMaintenanceRepository(db)
	ctx := context.Background()

	hilux := &vehicle.Vehicle{RegistrationNumber: "KCA 100A"}
	canter := &vehicle.Vehicle{RegistrationNumber: "KCB 200B"}
	require.NoError(t, vehicles.Create(ctx, hilux))
	require.NoError(t, vehicles.Create(ctx, canter))
	james := &driver.Driver{Name: "James Mwangi", LicenseNumber: "DL-1"}
	grace := &driver.Driver{Name: "Grace Odhiambo", LicenseNumber: "DL-2"}
	require.NoError(t, drivers.Create(ctx, james))
	require.NoError(t, drivers.Create(ctx, grace))

	first := &trip.Trip{VehicleID: hilux.ID, DriverID: james.ID, StartLocation: "Nairobi", EndLocation: "Nakuru", Distance: 160, Status: trip.StatusCompleted}
	second := &trip.Trip{VehicleID: canter.ID, DriverID: james.ID, StartLocation: "Mombasa", EndLocation: "Voi", Distance: 155, Status: trip.StatusPlanned}
	require.NoError(t, trips.Create(ctx, first))
	require.NoError(t, trips.Create(ctx, second))
	require.NoError(t, fuel.Create(ctx, &vehicle.FuelRecord{VehicleID: hilux.ID, Date: "2025-02-20", Liters: 60, CostPerLiter: 180, Station: "Total Westlands"}))
	require.NoError(t, maint.Create(ctx, &maintenance.Record{VehicleID: hilux.ID, VehicleRegistration: hilux.RegistrationNumber, Type: "Oil Change", Status: "completed", Parts: maintenance.Parts{}}))

	n, err := trips.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = fuel.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := drivers.Get(ctx, james.ID)
	require.NoError(t, err)
	require.Equal(t, []trip.Trip{*first, *second}, got.Trips)

	page, err := drivers.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Len(t, page.Items[0].Trips, 2)
	require.Nil(t, page.Items[1].Trips)

	all, err := vehicles.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Len(t, all[0].FuelRecords, 1)
	require.Equal(t, "Total Westlands", all[0].FuelRecords[0].Station)
	require.Len(t, all[0].MaintenanceRecords, 1)
	require.Equal(t, []trip.Trip{*first}, all[0].Trips)
	require.Nil(t, all[1].FuelRecords)
	require.Equal(t, []trip.Trip{*second}, all[1].Trips)

	err = trips.Create(ctx, &trip.Trip{VehicleID: 999, DriverID: james.ID})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestMaintenanceRepository(t *testing.T) {
	db := NewTestDB(t)
	vehicles := NewVehicleRepository(db)
	repo := NewMaintenanceRepository(db)
	ctx := context.Background()

	v := &vehicle.Vehicle{RegistrationNumber: "KCA 100A"}
	require.NoError(t, vehicles.Create(ctx, v))

	rec := &maintenance.Record{
		VehicleID:           v.ID,
		VehicleRegistration: v.RegistrationNumber,
		Type:                "Oil Change",
		Description:         "Routine oil and filter change",
		Date:                "2025-03-11",
		Cost:                8500,
		Status:              "scheduled",
		Facility:            "Nairobi Service Centre",
		Parts:               maintenance.Parts{"oil filter", "engine oil"},
	}
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	page, err := repo.FetchPage(ctx, recordsource.Query{Page: 1, Limit: 5, Search: "service centre", Status: "scheduled"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	err = repo.Create(ctx, &maintenance.Record{VehicleID: 999, Type: "Orphan"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
