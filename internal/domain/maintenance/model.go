package maintenance

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rpggio/fleetview/internal/listview"
)

// Maintenance record statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Record is one maintenance entry for a vehicle.
type Record struct {
	ID                  int64   `json:"id" yaml:"id"`
	VehicleID           int64   `json:"vehicleid" yaml:"vehicle_id"`
	VehicleRegistration string  `json:"vehicleregistration" yaml:"vehicle_registration"`
	Type                string  `json:"type" yaml:"type"`
	Description         string  `json:"description" yaml:"description"`
	Date                string  `json:"date" yaml:"date"`
	Cost                float64 `json:"cost" yaml:"cost"`
	Status              string  `json:"status" yaml:"status"`
	Facility            string  `json:"facility" yaml:"facility"`
	Notes               string  `json:"notes" yaml:"notes"`
	Parts               Parts   `json:"parts" yaml:"parts"`
}

// Parts lists replaced parts. It decodes from either a plain array or the
// legacy {"parts": [...]} object.
type Parts []string

func (p *Parts) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}
	var wrapped struct {
		Parts []string `json:"parts"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*p = wrapped.Parts
	return nil
}

// Open reports whether work on the record is still pending.
func (r Record) Open() bool {
	switch strings.ToLower(strings.TrimSpace(r.Status)) {
	case StatusScheduled, StatusInProgress:
		return true
	default:
		return false
	}
}

// Row is a maintenance record with derived badges. Urgency is only set for
// open records.
type Row struct {
	Record      Record           `json:"record"`
	StatusBadge listview.Badge   `json:"statusBadge"`
	Urgency     listview.Urgency `json:"urgency,omitempty"`
}

// NewRow derives the status badge of r and, for open records, its urgency at now.
func NewRow(r Record, now time.Time) Row {
	row := Row{
		Record:      r,
		StatusBadge: Statuses.Classify(r.Status),
	}
	if r.Open() {
		row.Urgency = listview.ClassifyUrgencyString(r.Date, now)
	}
	return row
}

// View is one rendered page of maintenance records.
type View = listview.View[Row]

// Upcoming is a scheduled service on the maintenance schedule.
type Upcoming struct {
	Record        Record           `json:"record"`
	DaysRemaining *int             `json:"daysRemaining,omitempty"`
	DueLabel      string           `json:"dueLabel"`
	Urgency       listview.Urgency `json:"urgency"`
	Badge         listview.Badge   `json:"badge"`
}

func newUpcoming(r Record, now time.Time) Upcoming {
	item := Upcoming{Record: r, DueLabel: "Unknown", Urgency: listview.UrgencyUnknown}
	if target, ok := listview.ParseDate(r.Date); ok {
		days := listview.DaysRemaining(target, now)
		item.DaysRemaining = &days
		item.DueLabel = listview.DueLabel(days)
		item.Urgency = listview.ClassifyUrgency(target, now)
	}
	item.Badge = item.Urgency.Badge()
	return item
}
