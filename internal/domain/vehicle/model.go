package vehicle

import (
	"time"

	"github.com/rpggio/fleetview/internal/domain/maintenance"
	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/listview"
)

// Vehicle lifecycle statuses.
const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// Vehicle is a fleet vehicle as delivered by a record source. Dates are kept
// as the source's raw strings. The nested histories are present when the
// source delivers them.
type Vehicle struct {
	ID                 int64                `json:"id" yaml:"id"`
	RegistrationNumber string               `json:"registrationnumber" yaml:"registration_number"`
	Make               string               `json:"make" yaml:"make"`
	Model              string               `json:"model" yaml:"model"`
	Type               string               `json:"type" yaml:"type"`
	Year               int                  `json:"year" yaml:"year"`
	Status             string               `json:"status" yaml:"status"`
	FuelLevel          float64              `json:"fuellevel" yaml:"fuel_level"`
	FuelEfficiency     float64              `json:"fuelefficiency" yaml:"fuel_efficiency"`
	Mileage            float64              `json:"mileage" yaml:"mileage"`
	Location           string               `json:"location" yaml:"location"`
	AssignedDriver     string               `json:"assigneddriver" yaml:"assigned_driver"`
	LastServiced       string               `json:"lastserviced" yaml:"last_serviced"`
	NextService        string               `json:"nextservice" yaml:"next_service"`
	LastInspection     string               `json:"lastinspection" yaml:"last_inspection"`
	Image              string               `json:"image" yaml:"image"`
	FuelRecords        []FuelRecord         `json:"fuelrecords,omitempty" yaml:"-"`
	MaintenanceRecords []maintenance.Record `json:"maintenancerecords,omitempty" yaml:"-"`
	Trips              []trip.Trip          `json:"trips,omitempty" yaml:"-"`
}

// FuelRecord is one refuelling of a vehicle.
type FuelRecord struct {
	ID            int64   `json:"id" yaml:"id"`
	VehicleID     int64   `json:"vehicleid" yaml:"vehicle_id"`
	Date          string  `json:"date" yaml:"date"`
	Liters        float64 `json:"liters" yaml:"liters"`
	CostPerLiter  float64 `json:"costperliter" yaml:"cost_per_liter"`
	Odometer      float64 `json:"odometer" yaml:"odometer"`
	Station       string  `json:"station" yaml:"station"`
	PaymentMethod string  `json:"paymentmethod" yaml:"payment_method"`
	Notes         string  `json:"notes" yaml:"notes"`
}

// Row is a vehicle with its derived badges.
type Row struct {
	Vehicle        Vehicle          `json:"vehicle"`
	StatusBadge    listview.Badge   `json:"statusBadge"`
	ServiceUrgency listview.Urgency `json:"serviceUrgency"`
	ServiceBadge   listview.Badge   `json:"serviceBadge"`
}

// NewRow derives the badges of v at now.
func NewRow(v Vehicle, now time.Time) Row {
	urgency := listview.ClassifyUrgencyString(v.NextService, now)
	return Row{
		Vehicle:        v,
		StatusBadge:    Statuses.Classify(v.Status),
		ServiceUrgency: urgency,
		ServiceBadge:   urgency.Badge(),
	}
}

// View is one rendered page of vehicles.
type View = listview.View[Row]

// StatusCounts summarizes the fleet by status.
type StatusCounts struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
	Inactive    int `json:"inactive"`
	Other       int `json:"other"`
}
