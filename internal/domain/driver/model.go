package driver

import (
	"time"

	"github.com/rpggio/fleetview/internal/domain/trip"
	"github.com/rpggio/fleetview/internal/listview"
)

// Driver duty statuses.
const (
	StatusAvailable = "available"
	StatusOnDuty    = "on-duty"
	StatusOffDuty   = "off-duty"
	StatusOnLeave   = "on-leave"
	StatusInactive  = "inactive"
)

// Driver is a fleet driver as delivered by a record source, with the trips
// it has driven.
type Driver struct {
	ID            int64       `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Phone         string      `json:"phone" yaml:"phone"`
	Email         string      `json:"email" yaml:"email"`
	LicenseNumber string      `json:"licensenumber" yaml:"license_number"`
	LicenseExpiry string      `json:"licenseexpiry" yaml:"license_expiry"`
	Status        string      `json:"status" yaml:"status"`
	Rating        float64     `json:"rating" yaml:"rating"`
	HoursLogged   float64     `json:"hourslogged" yaml:"hours_logged"`
	JoinDate      string      `json:"joindate" yaml:"join_date"`
	Address       string      `json:"address" yaml:"address"`
	Avatar        string      `json:"avatar" yaml:"avatar"`
	Trips         []trip.Trip `json:"trips,omitempty" yaml:"-"`
}

// Row is a driver with derived badges. License urgency flags licenses that
// expire within a week or already have.
type Row struct {
	Driver         Driver           `json:"driver"`
	StatusBadge    listview.Badge   `json:"statusBadge"`
	LicenseUrgency listview.Urgency `json:"licenseUrgency"`
	LicenseBadge   listview.Badge   `json:"licenseBadge"`
}

// NewRow derives the status and license badges of d at now.
func NewRow(d Driver, now time.Time) Row {
	urgency := listview.ClassifyUrgencyString(d.LicenseExpiry, now)
	return Row{
		Driver:         d,
		StatusBadge:    Statuses.Classify(d.Status),
		LicenseUrgency: urgency,
		LicenseBadge:   urgency.Badge(),
	}
}

// View is one rendered page of drivers.
type View = listview.View[Row]
