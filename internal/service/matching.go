package service

import (
	"context"
	"sort"

	"ridehail/internal/config"
	"ridehail/internal/domain"
	"ridehail/internal/geo"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// SurgeEstimatorInterface defines the surge estimator contract.
// This interface allows for testing with mock implementations.
type SurgeEstimatorInterface interface {
	Estimate(ctx context.Context, pickup domain.Point, radiusMeters float64) float64
}

// Ensure SurgeEstimator implements SurgeEstimatorInterface.
var _ SurgeEstimatorInterface = (*SurgeEstimator)(nil)

// DriverMatcher ranks available drivers for a ride request. It is a
// pure read+compute pass over the current snapshot: it never mutates
// driver or ride state, so any number of Match calls may run
// concurrently. Claiming the winner is the lifecycle service's job.
type DriverMatcher struct {
	cfg           config.MatchConfig
	locationStore redis.LocationStoreInterface
	driverRepo    repository.DriverRepository
	surge         SurgeEstimatorInterface
	fares         *FareCalculator
}

// NewDriverMatcher creates a new DriverMatcher.
func NewDriverMatcher(
	cfg config.MatchConfig,
	locationStore redis.LocationStoreInterface,
	driverRepo repository.DriverRepository,
	surge SurgeEstimatorInterface,
	fares *FareCalculator,
) *DriverMatcher {
	return &DriverMatcher{
		cfg:           cfg,
		locationStore: locationStore,
		driverRepo:    driverRepo,
		surge:         surge,
		fares:         fares,
	}
}

// Match returns candidate drivers for the request, closest first. An
// empty slice means no eligible driver; callers decide whether that is
// a failure. Ties keep the input order so results are deterministic.
func (m *DriverMatcher) Match(ctx context.Context, req domain.RideRequest) ([]domain.RankedMatch, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	nearby, err := m.locationStore.FindNearbyDrivers(ctx, req.Pickup.Lat, req.Pickup.Lng, m.cfg.SearchRadiusKm)
	if err != nil {
		return nil, err
	}

	if len(nearby) == 0 {
		return []domain.RankedMatch{}, nil
	}

	// Price the route once; it is the same for every candidate.
	routeKm := geo.Distance(req.Pickup, req.Dropoff)
	routeMin := geo.EstimateDuration(routeKm, m.cfg.AvgSpeedKmh)
	surgeMult := 1.0
	if m.surge != nil {
		surgeMult = m.surge.Estimate(ctx, req.Pickup, m.cfg.SearchRadiusKm*1000)
	}
	fare := m.fares.Calculate(routeKm, float64(routeMin), surgeMult, req.DiscountPct)

	matches := make([]domain.RankedMatch, 0, len(nearby))
	for _, loc := range nearby {
		driver, err := m.driverRepo.GetByID(ctx, loc.DriverID)
		if err != nil {
			if err == repository.ErrNotFound {
				continue // stale geo index entry
			}
			return nil, err
		}

		if !driver.IsAvailable {
			continue
		}
		if req.VehicleType != "" && driver.VehicleType != req.VehicleType {
			continue
		}

		driverKm := geo.Distance(domain.Point{Lat: loc.Lat, Lng: loc.Lng}, req.Pickup)

		matches = append(matches, domain.RankedMatch{
			DriverID:         driver.ID,
			DriverName:       driver.Name,
			VehicleID:        driver.VehicleID,
			VehicleType:      driver.VehicleType,
			DriverDistanceKm: driverKm,
			PickupEtaMin:     geo.EstimateDuration(driverKm, m.cfg.AvgSpeedKmh),
			RouteDistanceKm:  routeKm,
			RouteDurationMin: routeMin,
			SurgeMultiplier:  surgeMult,
			Fare:             fare,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DriverDistanceKm < matches[j].DriverDistanceKm
	})

	return matches, nil
}

func validateRequest(req domain.RideRequest) error {
	if !req.Pickup.Valid() {
		return ErrInvalidPickupLocation
	}
	if !req.Dropoff.Valid() {
		return ErrInvalidDropoffLocation
	}
	return nil
}

// ValidatePaymentMethod validates a payment method string, defaulting
// to CASH when empty.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodCard,
		domain.PaymentMethodWallet, domain.PaymentMethodUPI:
		return domain.PaymentMethod(method), nil
	case "":
		return domain.PaymentMethodCash, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
