package vehicle

import "github.com/rpggio/fleetview/internal/listview"

// Statuses maps vehicle statuses to badges.
var Statuses = listview.DefaultStatuses

// Schema declares the searchable and sortable vehicle fields.
var Schema = listview.Schema[Vehicle]{
	Entity: "vehicle",
	Fields: []listview.Field[Vehicle]{
		listview.StringField("registrationNumber", func(v Vehicle) string { return v.RegistrationNumber }),
		listview.StringField("make", func(v Vehicle) string { return v.Make }),
		listview.StringField("model", func(v Vehicle) string { return v.Model }),
		listview.StringField("type", func(v Vehicle) string { return v.Type }),
		listview.NumberField("year", func(v Vehicle) float64 { return float64(v.Year) }),
		listview.StatusField("status", func(v Vehicle) string { return v.Status }),
		listview.NumberField("fuelLevel", func(v Vehicle) float64 { return v.FuelLevel }),
		listview.NumberField("fuelEfficiency", func(v Vehicle) float64 { return v.FuelEfficiency }),
		listview.NumberField("mileage", func(v Vehicle) float64 { return v.Mileage }),
		listview.StringField("location", func(v Vehicle) string { return v.Location }),
		listview.StringField("assignedDriver", func(v Vehicle) string { return v.AssignedDriver }),
		listview.DateField("lastServiced", func(v Vehicle) string { return v.LastServiced }),
		listview.DateField("nextService", func(v Vehicle) string { return v.NextService }),
		listview.DateField("lastInspection", func(v Vehicle) string { return v.LastInspection }),
		listview.NumberField("fuelRecords", func(v Vehicle) float64 { return float64(len(v.FuelRecords)) }),
		listview.NumberField("maintenanceRecords", func(v Vehicle) float64 { return float64(len(v.MaintenanceRecords)) }),
		listview.NumberField("trips", func(v Vehicle) float64 { return float64(len(v.Trips)) }),
	},
	SearchFields: []string{"registrationNumber", "make", "model", "type", "location"},
	StatusField:  "status",
	DefaultSort:  "registrationNumber",
}
