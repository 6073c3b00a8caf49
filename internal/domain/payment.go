package domain

import "time"

// PaymentIntent records a payment trigger emitted when a ride completes.
// Capture and refunds happen in the external payment collaborator; the
// core only guarantees at-most-one intent per ride+rider.
type PaymentIntent struct {
	ID             string
	RideID         string
	RiderID        string
	Amount         float64
	Method         PaymentMethod
	Status         PaymentStatus
	IdempotencyKey string
	CreatedAt      time.Time
}

// Receipt summarizes a completed ride for the rider.
type Receipt struct {
	ID              string
	RideID          string
	DriverID        string
	Pooled          bool
	Passengers      int
	DistanceKm      float64
	DurationMin     int
	BaseFare        float64
	SurgeMultiplier float64
	TotalFare       float64
	Commission      float64
	DriverEarnings  float64
	Shares          []float64 // per passenger, in passenger order
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	CompletedAt     time.Time
	CreatedAt       time.Time
}
