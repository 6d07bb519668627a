package maintenance

import "github.com/rpggio/fleetview/internal/listview"

// Statuses maps maintenance statuses to badges.
var Statuses = listview.NewStatusTable(map[string]listview.Badge{
	StatusCompleted:  {Kind: listview.BadgeSuccess, Label: "Completed"},
	StatusScheduled:  {Kind: listview.BadgeWarning, Label: "Scheduled"},
	StatusInProgress: {Kind: listview.BadgeWarning, Label: "In Progress"},
	StatusCancelled:  {Kind: listview.BadgeError, Label: "Cancelled"},
})

// Schema declares the searchable and sortable maintenance fields.
var Schema = listview.Schema[Record]{
	Entity: "maintenance",
	Fields: []listview.Field[Record]{
		listview.StringField("vehicleRegistration", func(r Record) string { return r.VehicleRegistration }),
		listview.NumberField("vehicleId", func(r Record) float64 { return float64(r.VehicleID) }),
		listview.StringField("type", func(r Record) string { return r.Type }),
		listview.StringField("description", func(r Record) string { return r.Description }),
		listview.DateField("date", func(r Record) string { return r.Date }),
		listview.NumberField("cost", func(r Record) float64 { return r.Cost }),
		listview.StatusField("status", func(r Record) string { return r.Status }),
		listview.StringField("facility", func(r Record) string { return r.Facility }),
	},
	SearchFields: []string{"vehicleRegistration", "type", "description", "facility"},
	StatusField:  "status",
	DefaultSort:  "date",
}
