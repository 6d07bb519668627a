// Package trip holds the journeys recorded against vehicles and drivers.
package trip

// Trip statuses.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Trip is one journey made by a driver in a vehicle.
type Trip struct {
	ID            int64   `json:"id" yaml:"id"`
	VehicleID     int64   `json:"vehicleid" yaml:"vehicle_id"`
	DriverID      int64   `json:"driverid" yaml:"driver_id"`
	StartLocation string  `json:"startlocation" yaml:"start_location"`
	EndLocation   string  `json:"endlocation" yaml:"end_location"`
	Purpose       string  `json:"purpose" yaml:"purpose"`
	StartDate     string  `json:"startdate" yaml:"start_date"`
	EndDate       string  `json:"enddate" yaml:"end_date"`
	Status        string  `json:"status" yaml:"status"`
	Distance      float64 `json:"distance" yaml:"distance"`
	FuelUsed      float64 `json:"fuelused" yaml:"fuel_used"`
	FuelCost      float64 `json:"fuelcost" yaml:"fuel_cost"`
	Notes         string  `json:"notes" yaml:"notes"`
}
