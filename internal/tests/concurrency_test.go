package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestConcurrentCreateRide_OneDriverOneWinner(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver-1"))

	lifecycle := newTestLifecycle(rideRepo, driverRepo, nil)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lifecycle.CreateRide(ctx, fmt.Sprintf("rider-%d", i), testRideRequest(), matchFor("driver-1"))
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrNoDriverAvailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one successful claim, got %d", wins)
	}
	if losses != attempts-1 {
		t.Fatalf("expected %d ErrNoDriverAvailable, got %d", attempts-1, losses)
	}

	driver, _ := driverRepo.GetByID(ctx, "driver-1")
	if driver.IsAvailable {
		t.Error("expected the winning ride to hold the driver claim")
	}
}

func TestConcurrentAddPassenger_RetriesThroughVersionConflicts(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	rideID := seedPooledRide(t, rideRepo, 4)

	// Two riders join at the same time; the losing writer retries
	// against the new version and still gets in.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lifecycle.AddPassenger(ctx, addReq(rideID, fmt.Sprintf("rider-join-%d", i), 50))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}

	ride := rideRepo.Get(rideID)
	if len(ride.Passengers) != 3 {
		t.Fatalf("expected 3 passengers after both joins, got %d", len(ride.Passengers))
	}
	if ride.TotalFare != 140.0 {
		t.Errorf("expected total 140.00, got %.2f", ride.TotalFare)
	}
}

func TestConcurrentAddPassenger_CapacityHeldAtWriteTime(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	lifecycle := newTestLifecycle(rideRepo, NewMockDriverRepository(), nil)

	// One free seat, two concurrent joiners.
	rideID := seedPooledRide(t, rideRepo, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lifecycle.AddPassenger(ctx, addReq(rideID, fmt.Sprintf("rider-join-%d", i), 50))
		}(i)
	}
	wg.Wait()

	wins, overflows := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrCapacityExceeded):
			overflows++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || overflows != 1 {
		t.Fatalf("expected one winner and one overflow, got %d/%d", wins, overflows)
	}

	ride := rideRepo.Get(rideID)
	if len(ride.Passengers) != 2 {
		t.Fatalf("expected exactly capacity passengers, got %d", len(ride.Passengers))
	}
}

func TestConcurrentStatusUpdate_SingleTerminalWriter(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver-1"))
	lifecycle := newTestLifecycle(rideRepo, driverRepo, nil)

	rideID := seedRide(t, rideRepo, domain.RideStatusStarted)

	// Driver completes while the rider cancels. Exactly one terminal
	// state wins; the other request observes the conflict.
	var wg sync.WaitGroup
	var completeErr, cancelErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, completeErr = lifecycle.UpdateStatus(ctx, service.UpdateStatusRequest{
			RideID:    rideID,
			NewStatus: domain.RideStatusCompleted,
			ActorID:   "driver-1",
			ActorRole: domain.RoleDriver,
		})
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = lifecycle.UpdateStatus(ctx, service.UpdateStatusRequest{
			RideID:    rideID,
			NewStatus: domain.RideStatusCancelled,
			ActorID:   "rider-1",
			ActorRole: domain.RoleRider,
			Reason:    "changed plans",
		})
	}()
	wg.Wait()

	succeeded := 0
	if completeErr == nil {
		succeeded++
	}
	if cancelErr == nil {
		succeeded++
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one terminal transition to win, got %d (complete=%v cancel=%v)",
			succeeded, completeErr, cancelErr)
	}

	ride := rideRepo.Get(rideID)
	if !ride.Status.IsTerminal() {
		t.Fatalf("expected a terminal status, got %s", ride.Status)
	}
}
