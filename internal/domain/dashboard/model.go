package dashboard

// Stats are the headline numbers of the fleet dashboard.
type Stats struct {
	TotalVehicles         int     `json:"totalVehicles"`
	ActiveVehicles        int     `json:"activeVehicles"`
	VehiclesInMaintenance int     `json:"vehiclesInMaintenance"`
	InactiveVehicles      int     `json:"inactiveVehicles"`
	TotalDrivers          int     `json:"totalDrivers"`
	AvailableDrivers      int     `json:"availableDrivers"`
	ScheduledMaintenance  int     `json:"scheduledMaintenance"`
	UpcomingServices      int     `json:"upcomingServices"`
	AverageFuelEfficiency float64 `json:"averageFuelEfficiency"`
}
