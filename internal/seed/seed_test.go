package seed_test

import (
	"context"
	"testing"

	"github.com/rpggio/fleetview/internal/repository"
	"github.com/rpggio/fleetview/internal/seed"
	"github.com/rpggio/fleetview/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) (seed.Stores, *sqlite.MaintenanceRepository) {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	maint := sqlite.NewMaintenanceRepository(db)
	return seed.Stores{
		Vehicles:    sqlite.NewVehicleRepository(db),
		Drivers:     sqlite.NewDriverRepository(db),
		Maintenance: maint,
		Trips:       sqlite.NewTripRepository(db),
		FuelRecords: sqlite.NewFuelRecordRepository(db),
	}, maint
}

func TestSample(t *testing.T) {
	fx, err := seed.Sample()
	require.NoError(t, err)
	require.Len(t, fx.Vehicles, 8)
	require.Len(t, fx.Drivers, 6)
	require.Len(t, fx.Maintenance, 8)
	require.Len(t, fx.Trips, 9)
	require.Len(t, fx.FuelRecords, 5)
	require.Equal(t, "James Mwangi", fx.Trips[0].Driver)
	require.Equal(t, "KCA 482T", fx.Trips[0].Vehicle)
	require.Equal(t, 160.0, fx.Trips[0].Distance)
	require.Equal(t, "Total Westlands", fx.FuelRecords[0].Station)
	require.Equal(t, "KCA 482T", fx.Vehicles[0].RegistrationNumber)
	require.Equal(t, 11.4, fx.Vehicles[0].FuelEfficiency)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	stores, maint := newStores(t)
	fx, err := seed.Sample()
	require.NoError(t, err)

	res, err := seed.Apply(ctx, fx, stores, nil)
	require.NoError(t, err)
	require.Equal(t, seed.Result{Vehicles: 8, Drivers: 6, Maintenance: 8, Trips: 9, FuelRecords: 5}, res)

	first, err := maint.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), first.VehicleID, "KCB 117K is the second vehicle")

	res, err = seed.Apply(ctx, fx, stores, nil)
	require.NoError(t, err)
	require.Equal(t, seed.Result{}, res)
}

func TestApply_UnknownVehicle(t *testing.T) {
	stores, _ := newStores(t)
	fx, err := seed.Parse([]byte(`
maintenance:
  - vehicle_registration: KZZ 000Z
    type: Oil Change
`))
	require.NoError(t, err)

	_, err = seed.Apply(context.Background(), fx, stores, nil)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestApply_UnknownDriver(t *testing.T) {
	stores, _ := newStores(t)
	fx, err := seed.Parse([]byte(`
vehicles:
  - registration_number: KCA 100A
trips:
  - vehicle: KCA 100A
    driver: Nobody
`))
	require.NoError(t, err)

	_, err = seed.Apply(context.Background(), fx, stores, nil)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestParse_Invalid(t *testing.T) {
	_, err := seed.Parse([]byte("vehicles: {not: [a list"))
	require.Error(t, err)
}
