package service

import (
	"context"
	"log"

	"ridehail/internal/config"
	"ridehail/internal/domain"
	"ridehail/internal/geo"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// SurgeEstimator estimates a demand/supply multiplier for a pickup
// area from live ride and driver counts. Surge is an optimization, not
// a correctness requirement: any directory failure degrades to 1.0.
type SurgeEstimator struct {
	cfg           config.SurgeConfig
	locationStore redis.LocationStoreInterface
	surgeCache    redis.SurgeCacheInterface
	rideRepo      repository.RideRepository
}

// NewSurgeEstimator creates a new SurgeEstimator. surgeCache may be nil.
func NewSurgeEstimator(
	cfg config.SurgeConfig,
	locationStore redis.LocationStoreInterface,
	surgeCache redis.SurgeCacheInterface,
	rideRepo repository.RideRepository,
) *SurgeEstimator {
	return &SurgeEstimator{
		cfg:           cfg,
		locationStore: locationStore,
		surgeCache:    surgeCache,
		rideRepo:      rideRepo,
	}
}

// Estimate returns the surge multiplier for the given pickup area.
// radiusMeters <= 0 uses the configured default radius.
func (s *SurgeEstimator) Estimate(ctx context.Context, pickup domain.Point, radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		radiusMeters = s.cfg.RadiusMeters
	}
	radiusKm := radiusMeters / 1000

	if s.surgeCache != nil {
		if cached, err := s.surgeCache.GetSurge(ctx, pickup.Lat, pickup.Lng); err == nil && cached > 0 {
			return cached
		}
	}

	supply, err := s.countAvailableDrivers(ctx, pickup, radiusKm)
	if err != nil {
		log.Printf("surge: driver directory query failed, using base multiplier: %v", err)
		return 1.0
	}

	demand, err := s.countInFlightRides(ctx, pickup, radiusKm)
	if err != nil {
		log.Printf("surge: ride directory query failed, using base multiplier: %v", err)
		return 1.0
	}

	mult := s.multiplier(supply, demand)

	if s.surgeCache != nil {
		_ = s.surgeCache.SetSurge(ctx, pickup.Lat, pickup.Lng, mult, s.cfg.CacheTTL)
	}

	return mult
}

// countAvailableDrivers counts drivers in the geo index within radius.
func (s *SurgeEstimator) countAvailableDrivers(ctx context.Context, pickup domain.Point, radiusKm float64) (int, error) {
	drivers, err := s.locationStore.FindNearbyDrivers(ctx, pickup.Lat, pickup.Lng, radiusKm)
	if err != nil {
		return 0, err
	}
	return len(drivers), nil
}

// countInFlightRides counts REQUESTED/ACCEPTED/STARTED rides whose
// pickup falls within radius of the point.
func (s *SurgeEstimator) countInFlightRides(ctx context.Context, pickup domain.Point, radiusKm float64) (int, error) {
	rides, err := s.rideRepo.GetInFlight(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, ride := range rides {
		if !ride.InFlight() || len(ride.Passengers) == 0 {
			continue
		}
		if geo.Distance(ride.Passengers[0].Pickup, pickup) <= radiusKm {
			count++
		}
	}
	return count, nil
}

// multiplier maps the demand/supply ratio to a surge tier. Zero supply
// is treated as a saturated-demand signal, not an error.
func (s *SurgeEstimator) multiplier(supply, demand int) float64 {
	if supply == 0 {
		return s.clamp(s.cfg.NoSupplySurge)
	}

	ratio := float64(demand) / float64(supply)

	switch {
	case ratio > s.cfg.HighRatio:
		return s.clamp(s.cfg.HighMult)
	case ratio > s.cfg.MedRatio:
		return s.clamp(s.cfg.MedMult)
	case ratio > s.cfg.LowRatio:
		return s.clamp(s.cfg.LowMult)
	default:
		return 1.0
	}
}

func (s *SurgeEstimator) clamp(mult float64) float64 {
	if mult > s.cfg.MaxSurge {
		return s.cfg.MaxSurge
	}
	if mult < 1.0 {
		return 1.0
	}
	return mult
}
