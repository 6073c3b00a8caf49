package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestDriverService_LocationRoundTrip(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	drivers := service.NewDriverService(driverRepo, locationStore, nil)

	driverRepo.AddDriver(availableDriver("driver-1"))

	point := domain.Point{Lat: 12.9716, Lng: 77.5946}
	if err := drivers.UpdateLocation(ctx, "driver-1", point); err != nil {
		t.Fatalf("update location: %v", err)
	}

	nearby, err := locationStore.FindNearbyDrivers(ctx, point.Lat, point.Lng, 1.0)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(nearby) != 1 || nearby[0].DriverID != "driver-1" {
		t.Fatalf("expected driver-1 in the index, got %+v", nearby)
	}

	// Invalid coordinates are rejected before touching the index.
	err = drivers.UpdateLocation(ctx, "driver-1", domain.Point{Lat: 100, Lng: 0})
	if !errors.Is(err, service.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestDriverService_Availability(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	drivers := service.NewDriverService(driverRepo, locationStore, nil)

	offline := availableDriver("driver-1")
	offline.IsAvailable = false
	driverRepo.AddDriver(offline)

	if err := drivers.GoOnline(ctx, "driver-1"); err != nil {
		t.Fatalf("go online: %v", err)
	}
	d, _ := driverRepo.GetByID(ctx, "driver-1")
	if !d.IsAvailable {
		t.Error("expected driver available after going online")
	}

	_ = drivers.UpdateLocation(ctx, "driver-1", domain.Point{Lat: 12.97, Lng: 77.59})

	if err := drivers.GoOffline(ctx, "driver-1"); err != nil {
		t.Fatalf("go offline: %v", err)
	}
	d, _ = driverRepo.GetByID(ctx, "driver-1")
	if d.IsAvailable {
		t.Error("expected driver unavailable after going offline")
	}

	// Going offline drops the driver from the geo index.
	nearby, _ := locationStore.FindNearbyDrivers(ctx, 12.97, 77.59, 1.0)
	if len(nearby) != 0 {
		t.Errorf("expected empty geo index, got %+v", nearby)
	}

	// A second GoOffline conflicts with the claim already held.
	if err := drivers.GoOffline(ctx, "driver-1"); !errors.Is(err, service.ErrDriverBusy) {
		t.Errorf("expected ErrDriverBusy, got %v", err)
	}
}

func TestSubscriptions_DiscountAndConsume(t *testing.T) {
	ctx := context.Background()
	subs := service.NewMemorySubscriptions()

	sub := subs.Issue("rider-1", 50.0, 2, 24*time.Hour)

	if got := subs.DiscountFor(ctx, sub.ID); got != 50.0 {
		t.Errorf("expected 50%% discount, got %.1f", got)
	}

	if err := subs.ConsumeUse(ctx, sub.ID); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if err := subs.ConsumeUse(ctx, sub.ID); err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Exhausted: no discount, no further uses.
	if got := subs.DiscountFor(ctx, sub.ID); got != 0 {
		t.Errorf("expected 0 discount when exhausted, got %.1f", got)
	}
	if err := subs.ConsumeUse(ctx, sub.ID); !errors.Is(err, service.ErrSubscriptionExhausted) {
		t.Errorf("expected ErrSubscriptionExhausted, got %v", err)
	}

	// Unknown subscriptions grant nothing.
	if got := subs.DiscountFor(ctx, "nope"); got != 0 {
		t.Errorf("expected 0 discount for unknown subscription, got %.1f", got)
	}
}
