package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rpggio/fleetview/internal/domain/driver"
	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/vehicle"
	"github.com/rpggio/fleetview/internal/listview"
)

// Service aggregates fleet statistics.
type Service struct {
	vehicles    VehicleLister
	drivers     DriverLister
	maintenance MaintenanceLister
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new dashboard service.
func NewService(vehicles VehicleLister, drivers DriverLister, maint MaintenanceLister, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		vehicles:    vehicles,
		drivers:     drivers,
		maintenance: maint,
		logger:      logger.With(slog.String("component", "dashboard")),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats computes the dashboard numbers from the current source contents.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	vehicles, err := s.vehicles.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard vehicles: %w", err)
	}
	drivers, err := s.drivers.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard drivers: %w", err)
	}
	records, err := s.maintenance.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard maintenance: %w", err)
	}

	stats := Compute(vehicles, drivers, records, s.now())
	s.logger.Debug("computed dashboard stats",
		"vehicles", stats.TotalVehicles,
		"drivers", stats.TotalDrivers,
		"scheduled", stats.ScheduledMaintenance)
	return stats, nil
}

// Compute derives Stats at now.
func Compute(vehicles []vehicle.Vehicle, drivers []driver.Driver, records []maintenance.Record, now time.Time) *Stats {
	counts := vehicle.CountStatuses(vehicles)
	stats := &Stats{
		TotalVehicles:         counts.Total,
		ActiveVehicles:        counts.Active,
		VehiclesInMaintenance: counts.Maintenance,
		InactiveVehicles:      counts.Inactive,
		TotalDrivers:          len(drivers),
		AvailableDrivers:      driver.CountAvailable(drivers),
	}

	for _, r := range maintenance.Scheduled(records) {
		stats.ScheduledMaintenance++
		if listview.ClassifyUrgencyString(r.Date, now) == listview.UrgencyDueSoon {
			stats.UpcomingServices++
		}
	}

	if len(vehicles) > 0 {
		var sum float64
		for _, v := range vehicles {
			sum += v.FuelEfficiency
		}
		stats.AverageFuelEfficiency = math.Round(sum/float64(len(vehicles))*10) / 10
	}
	return stats
}
