package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested     RideStatus = "REQUESTED"
	RideStatusAccepted      RideStatus = "ACCEPTED"
	RideStatusDriverArrived RideStatus = "DRIVER_ARRIVED"
	RideStatusStarted       RideStatus = "STARTED"
	RideStatusCompleted     RideStatus = "COMPLETED"
	RideStatusCancelled     RideStatus = "CANCELLED"
)

// transitions maps each status to the statuses reachable from it.
// COMPLETED and CANCELLED are terminal.
var transitions = map[RideStatus][]RideStatus{
	RideStatusRequested:     {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted:      {RideStatusDriverArrived, RideStatusStarted, RideStatusCancelled},
	RideStatusDriverArrived: {RideStatusStarted, RideStatusCancelled},
	RideStatusStarted:       {RideStatusCompleted, RideStatusCancelled},
	RideStatusCompleted:     {},
	RideStatusCancelled:     {},
}

// CanTransition reports whether a ride may move from one status to another.
func CanTransition(from, to RideStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// ActorRole identifies who is requesting a status transition.
type ActorRole string

const (
	RoleRider  ActorRole = "RIDER"
	RoleDriver ActorRole = "DRIVER"
)

// PaymentMethod represents the payment method for a ride.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
	PaymentMethodUPI    PaymentMethod = "UPI"
)

// PaymentStatus represents the payment state of a ride or passenger.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSuccess    PaymentStatus = "SUCCESS"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// WaypointKind marks a waypoint as a pickup or a dropoff.
type WaypointKind string

const (
	WaypointPickup  WaypointKind = "PICKUP"
	WaypointDropoff WaypointKind = "DROPOFF"
)

// Point is a (latitude, longitude) pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point carries in-range coordinates.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Passenger is one rider on a ride, with their own leg and fare share.
type Passenger struct {
	RiderID       string        `json:"rider_id"`
	Pickup        Point         `json:"pickup"`
	Dropoff       Point         `json:"dropoff"`
	Fare          float64       `json:"fare"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	JoinedAt      time.Time     `json:"joined_at"`
	// SubscriptionID references the discount subscription applied to
	// this passenger's fare; its use is consumed on completion.
	SubscriptionID string `json:"subscription_id,omitempty"`
	Rating         int    `json:"rating,omitempty"` // 1-5, zero until rated
	Review         string `json:"review,omitempty"`
}

// Waypoint is a pickup or dropoff marker belonging to one passenger.
type Waypoint struct {
	RiderID string       `json:"rider_id"`
	Kind    WaypointKind `json:"kind"`
	Point   Point        `json:"point"`
	Seq     int          `json:"seq"`
}

// RideRequest is a rider's transient request for a ride. It is never persisted.
type RideRequest struct {
	RiderID        string
	Pickup         Point
	Dropoff        Point
	Pooled         bool
	VehicleType    VehicleType
	PaymentMethod  PaymentMethod
	DiscountPct    float64 // subscription discount percentage, 0 when none
	SubscriptionID string
}

// Ride is the persisted unit owned by the lifecycle service. Once it
// reaches COMPLETED or CANCELLED it is immutable except for post-hoc
// rating and refund bookkeeping.
type Ride struct {
	ID         string
	Pooled     bool
	Capacity   int // 1-6
	Passengers []Passenger
	Waypoints  []Waypoint

	DriverID  string // empty until matched
	VehicleID string

	DistanceKm     float64
	DurationMin    int
	ActualDistance float64
	ActualDuration int

	BaseFare        float64
	TotalFare       float64
	DriverEarnings  float64
	Commission      float64
	SurgeMultiplier float64

	Status        RideStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	OTP          string
	CancelReason string
	SOS          bool

	RequestedAt time.Time
	AcceptedAt  time.Time
	ArrivedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	CancelledAt time.Time

	// Version is the optimistic-concurrency token; every write must
	// carry the version it read and bumps it by one.
	Version int64
}

// PassengerIndex returns the position of the given rider in the
// passenger list, or -1 when absent.
func (r *Ride) PassengerIndex(riderID string) int {
	for i, p := range r.Passengers {
		if p.RiderID == riderID {
			return i
		}
	}
	return -1
}

// InFlight reports whether the ride still counts toward area demand.
func (r *Ride) InFlight() bool {
	switch r.Status {
	case RideStatusRequested, RideStatusAccepted, RideStatusStarted:
		return true
	}
	return false
}

// RecomputeTotalFare resets TotalFare to the sum of all passenger fares.
// Post-condition of every passenger add/remove.
func (r *Ride) RecomputeTotalFare() {
	total := 0.0
	for _, p := range r.Passengers {
		total += p.Fare
	}
	r.TotalFare = total
}
