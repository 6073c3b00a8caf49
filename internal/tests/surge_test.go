package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ridehail/internal/config"
	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func testSurgeConfig() config.SurgeConfig {
	return config.SurgeConfig{
		RadiusMeters:  5000,
		HighRatio:     2.0,
		MedRatio:      1.5,
		LowRatio:      1.0,
		HighMult:      1.5,
		MedMult:       1.3,
		LowMult:       1.2,
		NoSupplySurge: 2.0,
		MaxSurge:      3.0,
		CacheTTL:      15 * time.Second,
	}
}

var bangalore = domain.Point{Lat: 12.9716, Lng: 77.5946}

// seedSupplyDemand puts the given number of drivers and in-flight rides
// around the pickup point.
func seedSupplyDemand(locationStore *MockLocationStore, rideRepo *MockRideRepository, supply, demand int) {
	ctx := context.Background()
	for i := 0; i < supply; i++ {
		_ = locationStore.UpdateLocation(ctx, fmt.Sprintf("driver-%d", i), bangalore.Lat, bangalore.Lng)
	}
	for i := 0; i < demand; i++ {
		_ = rideRepo.Create(ctx, &domain.Ride{
			ID:     fmt.Sprintf("R-%d", i),
			Status: domain.RideStatusRequested,
			Passengers: []domain.Passenger{
				{RiderID: fmt.Sprintf("rider-%d", i), Pickup: bangalore},
			},
		})
	}
}

func TestSurgeEstimator_Tiers(t *testing.T) {
	cases := []struct {
		name   string
		supply int
		demand int
		want   float64
	}{
		{"balanced", 4, 2, 1.0},
		{"mild pressure", 2, 3, 1.2},
		{"medium pressure", 2, 4, 1.3},
		{"high pressure", 2, 5, 1.5},
		{"no supply", 0, 3, 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			locationStore := NewMockLocationStore()
			rideRepo := NewMockRideRepository()
			seedSupplyDemand(locationStore, rideRepo, tc.supply, tc.demand)

			estimator := service.NewSurgeEstimator(testSurgeConfig(), locationStore, nil, rideRepo)

			got := estimator.Estimate(context.Background(), bangalore, 0)
			if got != tc.want {
				t.Errorf("supply=%d demand=%d: expected %.1f, got %.1f", tc.supply, tc.demand, tc.want, got)
			}
		})
	}
}

func TestSurgeEstimator_ClampsAtMax(t *testing.T) {
	cfg := testSurgeConfig()
	cfg.NoSupplySurge = 5.0 // above the ceiling

	locationStore := NewMockLocationStore()
	rideRepo := NewMockRideRepository()
	seedSupplyDemand(locationStore, rideRepo, 0, 1)

	estimator := service.NewSurgeEstimator(cfg, locationStore, nil, rideRepo)

	got := estimator.Estimate(context.Background(), bangalore, 0)
	if got != cfg.MaxSurge {
		t.Errorf("expected clamp at %.1f, got %.1f", cfg.MaxSurge, got)
	}
}

func TestSurgeEstimator_FailsOpenToBase(t *testing.T) {
	locationStore := NewMockLocationStore()
	locationStore.FindError = errors.New("redis down")
	rideRepo := NewMockRideRepository()

	estimator := service.NewSurgeEstimator(testSurgeConfig(), locationStore, nil, rideRepo)

	got := estimator.Estimate(context.Background(), bangalore, 0)
	if got != 1.0 {
		t.Errorf("expected base multiplier 1.0 on directory failure, got %.1f", got)
	}
}

func TestSurgeEstimator_FarAwayDemandIgnored(t *testing.T) {
	locationStore := NewMockLocationStore()
	rideRepo := NewMockRideRepository()

	// One driver at the pickup, heavy demand in another city.
	ctx := context.Background()
	_ = locationStore.UpdateLocation(ctx, "driver-1", bangalore.Lat, bangalore.Lng)
	mumbai := domain.Point{Lat: 19.076, Lng: 72.8777}
	for i := 0; i < 10; i++ {
		_ = rideRepo.Create(ctx, &domain.Ride{
			ID:     fmt.Sprintf("R-far-%d", i),
			Status: domain.RideStatusRequested,
			Passengers: []domain.Passenger{
				{RiderID: fmt.Sprintf("rider-%d", i), Pickup: mumbai},
			},
		})
	}

	estimator := service.NewSurgeEstimator(testSurgeConfig(), locationStore, nil, rideRepo)

	got := estimator.Estimate(ctx, bangalore, 0)
	if got != 1.0 {
		t.Errorf("expected 1.0 when demand is outside the radius, got %.1f", got)
	}
}
