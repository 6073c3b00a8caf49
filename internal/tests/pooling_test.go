package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// seedPooledRide stores a pooled ride with one passenger at fare 40.
func seedPooledRide(t *testing.T, rideRepo *MockRideRepository, capacity int) string {
	t.Helper()
	ride := &domain.Ride{
		ID:            "R-POOL",
		Pooled:        true,
		Capacity:      capacity,
		Status:        domain.RideStatusAccepted,
		DriverID:      "driver-1",
		PaymentMethod: domain.PaymentMethodCash,
		PaymentStatus: domain.PaymentStatusPending,
		RequestedAt:   time.Now(),
		Passengers: []domain.Passenger{
			{RiderID: "rider-1", Pickup: domain.Point{Lat: 12.97, Lng: 77.59}, Dropoff: domain.Point{Lat: 12.93, Lng: 77.62}, Fare: 40.0},
		},
		Waypoints: []domain.Waypoint{
			{RiderID: "rider-1", Kind: domain.WaypointPickup, Point: domain.Point{Lat: 12.97, Lng: 77.59}, Seq: 0},
			{RiderID: "rider-1", Kind: domain.WaypointDropoff, Point: domain.Point{Lat: 12.93, Lng: 77.62}, Seq: 1},
		},
	}
	ride.RecomputeTotalFare()
	if err := rideRepo.Create(context.Background(), ride); err != nil {
		t.Fatalf("seed pooled ride: %v", err)
	}
	return ride.ID
}

func addReq(rideID, riderID string, fare float64) service.AddPassengerRequest {
	return service.AddPassengerRequest{
		RideID:  rideID,
		RiderID: riderID,
		Pickup:  domain.Point{Lat: 12.96, Lng: 77.58},
		Dropoff: domain.Point{Lat: 12.94, Lng: 77.61},
		Fare:    fare,
	}
}

func TestAddPassenger_RecomputesTotal(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 4)

	ride, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-2", 60.0))
	if err != nil {
		t.Fatalf("add passenger: %v", err)
	}

	if len(ride.Passengers) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(ride.Passengers))
	}
	if ride.TotalFare != 100.0 {
		t.Errorf("expected total 100.00 after join, got %.2f", ride.TotalFare)
	}
	// The commission split follows the new total.
	if ride.Commission != 15.0 || ride.DriverEarnings != 85.0 {
		t.Errorf("expected commission/earnings 15.00/85.00, got %.2f/%.2f", ride.Commission, ride.DriverEarnings)
	}
	if ride.Commission+ride.DriverEarnings != ride.TotalFare {
		t.Errorf("commission %.2f + earnings %.2f does not reconstruct total %.2f",
			ride.Commission, ride.DriverEarnings, ride.TotalFare)
	}
	// Two waypoints per passenger.
	if len(ride.Waypoints) != 4 {
		t.Errorf("expected 4 waypoints, got %d", len(ride.Waypoints))
	}
}

func TestAddPassenger_CapacityThree(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 3)

	if _, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-2", 50)); err != nil {
		t.Fatalf("second passenger: %v", err)
	}
	if _, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-3", 50)); err != nil {
		t.Fatalf("third passenger: %v", err)
	}

	// The pool is full now.
	_, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-4", 50))
	if !errors.Is(err, service.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	ride := rideRepo.Get(rideID)
	if len(ride.Passengers) != 3 {
		t.Errorf("expected 3 passengers after overflow rejection, got %d", len(ride.Passengers))
	}
}

func TestAddPassenger_NonPooledRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedRide(t, rideRepo, domain.RideStatusAccepted) // not pooled

	_, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-2", 50))
	if !errors.Is(err, service.ErrRideNotPooled) {
		t.Fatalf("expected ErrRideNotPooled, got %v", err)
	}
}

func TestAddPassenger_FinalizedRideRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	ride := &domain.Ride{
		ID:         "R-DONE",
		Pooled:     true,
		Capacity:   4,
		Status:     domain.RideStatusCompleted,
		Passengers: []domain.Passenger{{RiderID: "rider-1", Fare: 40}},
	}
	if err := rideRepo.Create(ctx, ride); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := lifecycle.AddPassenger(ctx, addReq("R-DONE", "rider-2", 50))
	if !errors.Is(err, service.ErrRideFinalized) {
		t.Fatalf("expected ErrRideFinalized, got %v", err)
	}
}

func TestRemovePassenger_RecomputesTotalAndWaypoints(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 4)
	if _, err := lifecycle.AddPassenger(ctx, addReq(rideID, "rider-2", 60)); err != nil {
		t.Fatalf("add: %v", err)
	}

	ride, err := lifecycle.RemovePassenger(ctx, rideID, "rider-2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(ride.Passengers) != 1 || ride.Passengers[0].RiderID != "rider-1" {
		t.Fatalf("expected only rider-1 left, got %+v", ride.Passengers)
	}
	if ride.TotalFare != 40.0 {
		t.Errorf("expected total back to 40.00, got %.2f", ride.TotalFare)
	}
	if ride.Commission != 6.0 || ride.DriverEarnings != 34.0 {
		t.Errorf("expected commission/earnings 6.00/34.00, got %.2f/%.2f", ride.Commission, ride.DriverEarnings)
	}
	for _, w := range ride.Waypoints {
		if w.RiderID == "rider-2" {
			t.Errorf("waypoint of removed passenger left behind: %+v", w)
		}
	}
}

func TestRemovePassenger_LastPassengerRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 4)

	_, err := lifecycle.RemovePassenger(ctx, rideID, "rider-1")
	if !errors.Is(err, service.ErrLastPassenger) {
		t.Fatalf("expected ErrLastPassenger, got %v", err)
	}
}

func TestRemovePassenger_UnknownRider(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 4)

	_, err := lifecycle.RemovePassenger(ctx, rideID, "rider-unknown")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
