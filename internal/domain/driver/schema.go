package driver

import "github.com/rpggio/fleetview/internal/listview"

// Statuses maps driver duty statuses to badges.
var Statuses = listview.NewStatusTable(map[string]listview.Badge{
	StatusAvailable: {Kind: listview.BadgeSuccess, Label: "Available"},
	StatusOnDuty:    {Kind: listview.BadgeWarning, Label: "On Duty"},
	StatusOffDuty:   {Kind: listview.BadgeNeutral, Label: "Off Duty"},
	StatusOnLeave:   {Kind: listview.BadgeWarning, Label: "On Leave"},
	StatusInactive:  {Kind: listview.BadgeError, Label: "Inactive"},
})

// Schema declares the searchable and sortable driver fields. The trips field
// sorts by the number of trips driven.
var Schema = listview.Schema[Driver]{
	Entity: "driver",
	Fields: []listview.Field[Driver]{
		listview.StringField("name", func(d Driver) string { return d.Name }),
		listview.StringField("email", func(d Driver) string { return d.Email }),
		listview.StringField("phone", func(d Driver) string { return d.Phone }),
		listview.StringField("licenseNumber", func(d Driver) string { return d.LicenseNumber }),
		listview.DateField("licenseExpiry", func(d Driver) string { return d.LicenseExpiry }),
		listview.StatusField("status", func(d Driver) string { return d.Status }),
		listview.NumberField("rating", func(d Driver) float64 { return d.Rating }),
		listview.NumberField("hoursLogged", func(d Driver) float64 { return d.HoursLogged }),
		listview.NumberField("trips", func(d Driver) float64 { return float64(len(d.Trips)) }),
		listview.DateField("joinDate", func(d Driver) string { return d.JoinDate }),
		listview.StringField("address", func(d Driver) string { return d.Address }),
	},
	SearchFields: []string{"name", "email", "phone", "licenseNumber"},
	StatusField:  "status",
	DefaultSort:  "name",
}
