package domain

// VehicleType represents the class of vehicle a rider can request.
type VehicleType string

const (
	VehicleTypeEconomy VehicleType = "ECONOMY"
	VehicleTypePremium VehicleType = "PREMIUM"
	VehicleTypeXL      VehicleType = "XL"
)

// Driver is a queryable availability snapshot. The core reads it to
// rank candidates and flips IsAvailable via the atomic claim operation;
// location updates are owned by the real-time tracking collaborator.
type Driver struct {
	ID          string
	Name        string
	Phone       string
	IsAvailable bool
	VehicleID   string
	VehicleType VehicleType
}

// FareBreakdown is the priced output of the fare calculator. All
// monetary fields are rounded to the currency's minor unit.
type FareBreakdown struct {
	BaseFare        float64 `json:"base_fare"`
	DistanceFare    float64 `json:"distance_fare"`
	TimeFare        float64 `json:"time_fare"`
	Subtotal        float64 `json:"subtotal"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	Discount        float64 `json:"discount"`
	TotalFare       float64 `json:"total_fare"`
	Commission      float64 `json:"commission"`
	DriverEarnings  float64 `json:"driver_earnings"`
}

// RankedMatch is one candidate driver for a ride request, annotated
// with the distances and fare the rider would see.
type RankedMatch struct {
	DriverID         string        `json:"driver_id"`
	DriverName       string        `json:"driver_name"`
	VehicleID        string        `json:"vehicle_id"`
	VehicleType      VehicleType   `json:"vehicle_type"`
	DriverDistanceKm float64       `json:"driver_distance_km"`
	PickupEtaMin     int           `json:"pickup_eta_min"`
	RouteDistanceKm  float64       `json:"route_distance_km"`
	RouteDurationMin int           `json:"route_duration_min"`
	SurgeMultiplier  float64       `json:"surge_multiplier"`
	Fare             FareBreakdown `json:"fare"`
}
