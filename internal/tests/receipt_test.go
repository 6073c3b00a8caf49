package tests

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestReceipt_PooledSharesSumToTotal(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()

	ride := &domain.Ride{
		ID:              "R-RCPT",
		Pooled:          true,
		Capacity:        4,
		Status:          domain.RideStatusCompleted,
		DriverID:        "driver-1",
		DistanceKm:      12.5,
		DurationMin:     25,
		BaseFare:        30.0,
		SurgeMultiplier: 1.2,
		Commission:      15.0,
		DriverEarnings:  85.0,
		PaymentMethod:   domain.PaymentMethodCard,
		PaymentStatus:   domain.PaymentStatusSuccess,
		CompletedAt:     time.Now(),
		Passengers: []domain.Passenger{
			{RiderID: "rider-1", Fare: 40.0},
			{RiderID: "rider-2", Fare: 60.0},
		},
	}
	ride.RecomputeTotalFare()
	if err := rideRepo.Create(ctx, ride); err != nil {
		t.Fatalf("seed: %v", err)
	}

	receipts := service.NewReceiptService(rideRepo, service.NewFareSplitter())

	receipt, err := receipts.Generate(ctx, "R-RCPT")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if receipt.Passengers != 2 {
		t.Errorf("expected 2 passengers on receipt, got %d", receipt.Passengers)
	}
	sum := 0.0
	for _, s := range receipt.Shares {
		sum += s
	}
	if math.Abs(sum-receipt.TotalFare) > 1e-9 {
		t.Errorf("shares sum %.2f != total %.2f", sum, receipt.TotalFare)
	}
	if receipt.SurgeMultiplier != 1.2 {
		t.Errorf("expected surge 1.2 on receipt, got %.2f", receipt.SurgeMultiplier)
	}
}

func TestReceipt_OnlyForCompletedRides(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()

	ride := &domain.Ride{
		ID:         "R-ACTIVE",
		Status:     domain.RideStatusStarted,
		Passengers: []domain.Passenger{{RiderID: "rider-1", Fare: 100}},
	}
	if err := rideRepo.Create(ctx, ride); err != nil {
		t.Fatalf("seed: %v", err)
	}

	receipts := service.NewReceiptService(rideRepo, service.NewFareSplitter())

	_, err := receipts.Generate(ctx, "R-ACTIVE")
	if !errors.Is(err, service.ErrRideNotCompleted) {
		t.Fatalf("expected ErrRideNotCompleted, got %v", err)
	}
}
