package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/geo"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

const (
	driverClaimLockTTL = 10 * time.Second
	rideWriteLockTTL   = 30 * time.Second

	minCapacity = 1
	maxCapacity = 6
)

// MatcherInterface defines the driver matcher contract.
// This interface allows for testing with mock implementations.
type MatcherInterface interface {
	Match(ctx context.Context, req domain.RideRequest) ([]domain.RankedMatch, error)
}

// Ensure DriverMatcher implements MatcherInterface.
var _ MatcherInterface = (*DriverMatcher)(nil)

// RideLifecycle owns the ride state machine: creation, status
// transitions, pooled passenger add/remove, OTP issuance and
// cancellation bookkeeping. It is stateless service logic over the
// shared store; every ride write is a versioned compare-and-swap.
type RideLifecycle struct {
	rideRepo   repository.RideRepository
	driverRepo repository.DriverRepository
	matcher    MatcherInterface
	fares      *FareCalculator
	surge      SurgeEstimatorInterface
	lockStore  redis.LockStoreInterface
	cacheStore *redis.CacheStore

	payments      *PaymentTrigger
	subscriptions SubscriptionService
	notifier      *NotificationService

	poolCapacity    int
	otpDigits       int
	claimAttempts   int
	conflictRetries int
	avgSpeedKmh     float64
}

// LifecycleDeps bundles the collaborators of the lifecycle service.
// lockStore, cacheStore, surge, payments, subscriptions and notifier
// are optional; the rest are required.
type LifecycleDeps struct {
	RideRepo      repository.RideRepository
	DriverRepo    repository.DriverRepository
	Matcher       MatcherInterface
	Fares         *FareCalculator
	Surge         SurgeEstimatorInterface
	LockStore     redis.LockStoreInterface
	CacheStore    *redis.CacheStore
	Payments      *PaymentTrigger
	Subscriptions SubscriptionService
	Notifier      *NotificationService

	PoolCapacity    int
	OTPDigits       int
	ClaimAttempts   int
	ConflictRetries int
	AvgSpeedKmh     float64
}

// NewRideLifecycle creates a new RideLifecycle.
func NewRideLifecycle(deps LifecycleDeps) *RideLifecycle {
	if deps.PoolCapacity < minCapacity {
		deps.PoolCapacity = 4
	}
	if deps.PoolCapacity > maxCapacity {
		deps.PoolCapacity = maxCapacity
	}
	if deps.OTPDigits <= 0 {
		deps.OTPDigits = 4
	}
	if deps.ClaimAttempts <= 0 {
		deps.ClaimAttempts = 3
	}
	if deps.ConflictRetries <= 0 {
		deps.ConflictRetries = 3
	}

	return &RideLifecycle{
		rideRepo:        deps.RideRepo,
		driverRepo:      deps.DriverRepo,
		matcher:         deps.Matcher,
		fares:           deps.Fares,
		surge:           deps.Surge,
		lockStore:       deps.LockStore,
		cacheStore:      deps.CacheStore,
		payments:        deps.Payments,
		subscriptions:   deps.Subscriptions,
		notifier:        deps.Notifier,
		poolCapacity:    deps.PoolCapacity,
		otpDigits:       deps.OTPDigits,
		claimAttempts:   deps.ClaimAttempts,
		conflictRetries: deps.ConflictRetries,
		avgSpeedKmh:     deps.AvgSpeedKmh,
	}
}

// CreateRide builds a ride from a request and an optional pre-matched
// candidate. With a candidate, the driver is atomically claimed first;
// a lost claim falls back to the next ranked candidate, bounded by the
// claim-attempt budget, then surfaces ErrNoDriverAvailable. A ride
// with a driver starts ACCEPTED and carries an OTP; without one it
// starts REQUESTED and has none.
func (s *RideLifecycle) CreateRide(ctx context.Context, riderID string, req domain.RideRequest, match *domain.RankedMatch) (*domain.Ride, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodCash
	}

	var claimed *domain.RankedMatch
	if match != nil {
		winner, err := s.claimDriver(ctx, req, match)
		if err != nil {
			return nil, err
		}
		claimed = winner
	}

	now := time.Now()

	ride := &domain.Ride{
		ID:            newRideID(),
		Pooled:        req.Pooled,
		Capacity:      1,
		Status:        domain.RideStatusRequested,
		PaymentMethod: paymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		RequestedAt:   now,
	}
	if req.Pooled {
		ride.Capacity = s.poolCapacity
	}

	fare := s.priceLeg(ctx, req, claimed)
	ride.DistanceKm = fare.routeKm
	ride.DurationMin = fare.routeMin
	ride.BaseFare = fare.breakdown.BaseFare
	ride.Commission = fare.breakdown.Commission
	ride.DriverEarnings = fare.breakdown.DriverEarnings
	ride.SurgeMultiplier = fare.breakdown.SurgeMultiplier

	ride.Passengers = []domain.Passenger{{
		RiderID:        riderID,
		Pickup:         req.Pickup,
		Dropoff:        req.Dropoff,
		Fare:           fare.breakdown.TotalFare,
		PaymentStatus:  domain.PaymentStatusPending,
		JoinedAt:       now,
		SubscriptionID: req.SubscriptionID,
	}}
	ride.Waypoints = []domain.Waypoint{
		{RiderID: riderID, Kind: domain.WaypointPickup, Point: req.Pickup, Seq: 0},
		{RiderID: riderID, Kind: domain.WaypointDropoff, Point: req.Dropoff, Seq: 1},
	}
	ride.RecomputeTotalFare()

	if claimed != nil {
		otp, err := generateOTP(s.otpDigits)
		if err != nil {
			s.releaseDriver(ctx, claimed.DriverID)
			return nil, err
		}
		ride.DriverID = claimed.DriverID
		ride.VehicleID = claimed.VehicleID
		ride.Status = domain.RideStatusAccepted
		ride.AcceptedAt = now
		ride.OTP = otp
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		if claimed != nil {
			s.releaseDriver(ctx, claimed.DriverID)
		}
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyRideConfirmed(ctx, ride)
	}

	return ride, nil
}

// AcceptRide lets a driver take an unassigned REQUESTED ride: the
// driver is claimed atomically, attached, and the ride moves to
// ACCEPTED with a fresh OTP.
func (s *RideLifecycle) AcceptRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	unlock, err := s.lockRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	ok, err := s.driverRepo.Claim(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDriverAvailable
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.RemoveAvailableDriver(ctx, driverID)
	}

	var ride *domain.Ride
	err = s.withConflictRetry(ctx, rideID, func(r *domain.Ride) error {
		if r.Status != domain.RideStatusRequested {
			return &InvalidTransitionError{From: r.Status, To: domain.RideStatusAccepted}
		}
		if r.DriverID != "" {
			return &InvalidTransitionError{From: r.Status, To: domain.RideStatusAccepted}
		}

		otp, err := generateOTP(s.otpDigits)
		if err != nil {
			return err
		}

		r.DriverID = driver.ID
		r.VehicleID = driver.VehicleID
		r.Status = domain.RideStatusAccepted
		r.AcceptedAt = time.Now()
		r.OTP = otp
		ride = r
		return nil
	})
	if err != nil {
		s.releaseDriver(ctx, driverID)
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyRideConfirmed(ctx, ride)
	}

	return ride, nil
}

// UpdateStatusRequest contains the parameters for a status transition.
type UpdateStatusRequest struct {
	RideID    string
	NewStatus domain.RideStatus
	ActorID   string
	ActorRole domain.ActorRole
	Reason    string // stored verbatim on CANCELLED
}

// UpdateStatus applies one transition of the ride state machine. The
// read-validate-write sequence is one logical unit: the versioned
// write fails a racing second writer, which retries by reloading and
// re-validating, a bounded number of times.
func (s *RideLifecycle) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if !validStatus(req.NewStatus) {
		return nil, ErrInvalidStatus
	}

	unlock, err := s.lockRide(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var ride *domain.Ride
	err = s.withConflictRetry(ctx, req.RideID, func(r *domain.Ride) error {
		if err := authorizeTransition(r, req); err != nil {
			return err
		}
		if !domain.CanTransition(r.Status, req.NewStatus) {
			return &InvalidTransitionError{From: r.Status, To: req.NewStatus}
		}

		s.applyTransition(r, req)
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.fireTransitionEffects(ctx, ride, req)

	return ride, nil
}

// authorizeTransition enforces the actor rules: a rider may only
// cancel rides they are a passenger of; a driver may move their own
// ride to any status the table allows.
func authorizeTransition(ride *domain.Ride, req UpdateStatusRequest) error {
	switch req.ActorRole {
	case domain.RoleRider:
		if ride.PassengerIndex(req.ActorID) < 0 {
			return ErrUnauthorized
		}
		if req.NewStatus != domain.RideStatusCancelled {
			return ErrUnauthorized
		}
		return nil
	case domain.RoleDriver:
		if ride.DriverID == "" || ride.DriverID != req.ActorID {
			return ErrUnauthorized
		}
		return nil
	default:
		return ErrInvalidRole
	}
}

// applyTransition mutates the ride for an already-validated
// transition. Each timestamp is written exactly once, at the moment of
// its transition, and never rewritten.
func (s *RideLifecycle) applyTransition(ride *domain.Ride, req UpdateStatusRequest) {
	now := time.Now()
	ride.Status = req.NewStatus

	switch req.NewStatus {
	case domain.RideStatusAccepted:
		ride.AcceptedAt = now
	case domain.RideStatusDriverArrived:
		ride.ArrivedAt = now
	case domain.RideStatusStarted:
		ride.StartedAt = now
	case domain.RideStatusCompleted:
		ride.CompletedAt = now
		ride.ActualDistance = ride.DistanceKm
		if !ride.StartedAt.IsZero() {
			ride.ActualDuration = int(now.Sub(ride.StartedAt).Minutes())
		}
		// Signal for the payment collaborator, not a direct call.
		ride.PaymentStatus = domain.PaymentStatusProcessing
		for i := range ride.Passengers {
			ride.Passengers[i].PaymentStatus = domain.PaymentStatusProcessing
		}
	case domain.RideStatusCancelled:
		ride.CancelledAt = now
		ride.CancelReason = req.Reason
	}
}

// fireTransitionEffects runs the post-persist side effects. All of
// them are fire-and-forget: a failed payment trigger or notification
// never rolls back the recorded status.
func (s *RideLifecycle) fireTransitionEffects(ctx context.Context, ride *domain.Ride, req UpdateStatusRequest) {
	switch req.NewStatus {
	case domain.RideStatusCompleted:
		if ride.DriverID != "" {
			s.releaseDriverToPool(ctx, ride.DriverID)
		}
		for _, p := range ride.Passengers {
			if s.payments != nil {
				if _, err := s.payments.Trigger(ctx, ride, p); err != nil {
					log.Printf("payment trigger failed for ride %s rider %s: %v", ride.ID, p.RiderID, err)
				}
			}
			if s.subscriptions != nil && p.SubscriptionID != "" {
				if err := s.subscriptions.ConsumeUse(ctx, p.SubscriptionID); err != nil {
					log.Printf("subscription consume failed for %s: %v", p.SubscriptionID, err)
				}
			}
		}
		if s.notifier != nil {
			_ = s.notifier.NotifyRideCompleted(ctx, ride)
		}
	case domain.RideStatusCancelled:
		if ride.DriverID != "" {
			s.releaseDriverToPool(ctx, ride.DriverID)
		}
		if s.notifier != nil {
			_ = s.notifier.NotifyRideCancelled(ctx, ride, req.ActorID, req.Reason)
		}
	}
}

// AddPassengerRequest contains the parameters for joining a pooled ride.
type AddPassengerRequest struct {
	RideID         string
	RiderID        string
	Pickup         domain.Point
	Dropoff        domain.Point
	Fare           float64 // 0 means price the leg at current rates
	SubscriptionID string
}

// AddPassenger joins a rider to a pooled ride. The capacity check is
// conditioned on the passenger count at write time: the versioned
// write makes a stale earlier read harmless.
func (s *RideLifecycle) AddPassenger(ctx context.Context, req AddPassengerRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if !req.Pickup.Valid() {
		return nil, ErrInvalidPickupLocation
	}
	if !req.Dropoff.Valid() {
		return nil, ErrInvalidDropoffLocation
	}

	unlock, err := s.lockRide(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var ride *domain.Ride
	err = s.withConflictRetry(ctx, req.RideID, func(r *domain.Ride) error {
		if !r.Pooled {
			return ErrRideNotPooled
		}
		if r.Status.IsTerminal() {
			return ErrRideFinalized
		}
		if len(r.Passengers) >= r.Capacity {
			return ErrCapacityExceeded
		}

		fare := req.Fare
		if fare <= 0 {
			fare = s.pricePassengerLeg(ctx, req.Pickup, req.Dropoff)
		}

		seq := len(r.Waypoints)
		r.Passengers = append(r.Passengers, domain.Passenger{
			RiderID:        req.RiderID,
			Pickup:         req.Pickup,
			Dropoff:        req.Dropoff,
			Fare:           fare,
			PaymentStatus:  domain.PaymentStatusPending,
			JoinedAt:       time.Now(),
			SubscriptionID: req.SubscriptionID,
		})
		r.Waypoints = append(r.Waypoints,
			domain.Waypoint{RiderID: req.RiderID, Kind: domain.WaypointPickup, Point: req.Pickup, Seq: seq},
			domain.Waypoint{RiderID: req.RiderID, Kind: domain.WaypointDropoff, Point: req.Dropoff, Seq: seq + 1},
		)
		r.RecomputeTotalFare()
		r.Commission, r.DriverEarnings = s.fares.CommissionSplit(r.TotalFare)
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ride, nil
}

// RemovePassenger removes a rider from a pooled ride and recomputes
// the total fare. The sole remaining passenger cannot be removed;
// cancelling the ride is the escape hatch.
func (s *RideLifecycle) RemovePassenger(ctx context.Context, rideID, riderID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}

	unlock, err := s.lockRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var ride *domain.Ride
	err = s.withConflictRetry(ctx, rideID, func(r *domain.Ride) error {
		if !r.Pooled {
			return ErrRideNotPooled
		}
		if r.Status.IsTerminal() {
			return ErrRideFinalized
		}

		idx := r.PassengerIndex(riderID)
		if idx < 0 {
			return repository.ErrNotFound
		}
		if len(r.Passengers) == 1 {
			return ErrLastPassenger
		}

		r.Passengers = append(r.Passengers[:idx], r.Passengers[idx+1:]...)

		kept := r.Waypoints[:0]
		for _, w := range r.Waypoints {
			if w.RiderID != riderID {
				kept = append(kept, w)
			}
		}
		r.Waypoints = kept
		for i := range r.Waypoints {
			r.Waypoints[i].Seq = i
		}

		r.RecomputeTotalFare()
		r.Commission, r.DriverEarnings = s.fares.CommissionSplit(r.TotalFare)
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ride, nil
}

// VerifyOTP compares a candidate OTP against the stored value.
func (s *RideLifecycle) VerifyOTP(ctx context.Context, rideID, code string) error {
	if rideID == "" {
		return ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}

	if ride.OTP == "" || subtle.ConstantTimeCompare([]byte(ride.OTP), []byte(code)) != 1 {
		return ErrInvalidOTP
	}
	return nil
}

// RateRequest contains the parameters for a post-completion rating.
type RateRequest struct {
	RideID  string
	RiderID string
	Rating  int
	Review  string
}

// RatePassenger records a passenger's rating. Settable at most once,
// and only after the ride is COMPLETED.
func (s *RideLifecycle) RatePassenger(ctx context.Context, req RateRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var ride *domain.Ride
	err := s.withConflictRetry(ctx, req.RideID, func(r *domain.Ride) error {
		if r.Status != domain.RideStatusCompleted {
			return ErrRideNotCompleted
		}

		idx := r.PassengerIndex(req.RiderID)
		if idx < 0 {
			return ErrUnauthorized
		}
		if r.Passengers[idx].Rating != 0 {
			return ErrRatingAlreadySet
		}

		r.Passengers[idx].Rating = req.Rating
		r.Passengers[idx].Review = req.Review
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ride, nil
}

// FlagSOS raises the SOS flag on an in-flight ride.
func (s *RideLifecycle) FlagSOS(ctx context.Context, rideID, actorID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	var ride *domain.Ride
	err := s.withConflictRetry(ctx, rideID, func(r *domain.Ride) error {
		if r.Status.IsTerminal() {
			return ErrRideFinalized
		}
		if r.PassengerIndex(actorID) < 0 && r.DriverID != actorID {
			return ErrUnauthorized
		}
		r.SOS = true
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifySOS(ctx, ride, actorID)
	}

	return ride, nil
}

// GetRide retrieves a ride by ID.
func (s *RideLifecycle) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// claimDriver walks ranked candidates, atomically flipping the first
// available driver's flag. Losing a claim race is expected; the loser
// re-ranks and tries the next candidate within the attempt budget.
func (s *RideLifecycle) claimDriver(ctx context.Context, req domain.RideRequest, preferred *domain.RankedMatch) (*domain.RankedMatch, error) {
	tried := map[string]bool{}
	candidates := []domain.RankedMatch{*preferred}

	for attempt := 0; attempt < s.claimAttempts; attempt++ {
		for _, cand := range candidates {
			if tried[cand.DriverID] {
				continue
			}
			tried[cand.DriverID] = true

			if s.lockStore != nil {
				locked, err := s.lockStore.AcquireDriverLock(ctx, cand.DriverID, driverClaimLockTTL)
				if err != nil {
					return nil, err
				}
				if !locked {
					continue // being claimed by another ride
				}
			}

			ok, err := s.driverRepo.Claim(ctx, cand.DriverID)
			if err != nil {
				s.releaseDriverLock(ctx, cand.DriverID)
				return nil, err
			}
			if ok {
				if s.cacheStore != nil {
					_ = s.cacheStore.RemoveAvailableDriver(ctx, cand.DriverID)
				}
				// Driver lock expires via TTL.
				c := cand
				return &c, nil
			}

			s.releaseDriverLock(ctx, cand.DriverID)
		}

		if s.matcher == nil {
			break
		}
		fresh, err := s.matcher.Match(ctx, req)
		if err != nil {
			return nil, err
		}
		candidates = fresh
		if len(candidates) == 0 {
			break
		}
	}

	return nil, ErrNoDriverAvailable
}

// withConflictRetry runs the read-mutate-persist cycle, reloading and
// re-validating on version conflicts up to the configured bound.
func (s *RideLifecycle) withConflictRetry(ctx context.Context, rideID string, mutate func(*domain.Ride) error) error {
	var lastErr error
	for attempt := 0; attempt <= s.conflictRetries; attempt++ {
		ride, err := s.rideRepo.GetByID(ctx, rideID)
		if err != nil {
			return err
		}

		if err := mutate(ride); err != nil {
			return err
		}

		err = s.rideRepo.Update(ctx, ride)
		if err == nil {
			return nil
		}
		if err != repository.ErrConcurrencyConflict {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// lockRide takes the per-ride single-writer lock when a lock store is
// configured; the returned func releases it.
func (s *RideLifecycle) lockRide(ctx context.Context, rideID string) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	locked, err := s.lockStore.AcquireRideLock(ctx, rideID, rideWriteLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrRideBusy
	}
	return func() { _ = s.lockStore.ReleaseRideLock(ctx, rideID) }, nil
}

func (s *RideLifecycle) releaseDriverLock(ctx context.Context, driverID string) {
	if s.lockStore != nil {
		_ = s.lockStore.ReleaseDriverLock(ctx, driverID)
	}
}

// releaseDriver undoes a claim after a failed create.
func (s *RideLifecycle) releaseDriver(ctx context.Context, driverID string) {
	if err := s.driverRepo.Release(ctx, driverID); err != nil {
		log.Printf("driver release failed for %s: %v", driverID, err)
	}
}

// releaseDriverToPool frees the driver after a terminal transition and
// puts them back in the available set.
func (s *RideLifecycle) releaseDriverToPool(ctx context.Context, driverID string) {
	s.releaseDriver(ctx, driverID)
	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableDriver(ctx, driverID)
	}
}

type pricedLeg struct {
	routeKm   float64
	routeMin  int
	breakdown domain.FareBreakdown
}

// priceLeg prices the initial passenger leg, reusing the match's fare
// when a candidate was already priced by the matcher.
func (s *RideLifecycle) priceLeg(ctx context.Context, req domain.RideRequest, match *domain.RankedMatch) pricedLeg {
	if match != nil {
		return pricedLeg{
			routeKm:   match.RouteDistanceKm,
			routeMin:  match.RouteDurationMin,
			breakdown: match.Fare,
		}
	}

	routeKm := geo.Distance(req.Pickup, req.Dropoff)
	routeMin := geo.EstimateDuration(routeKm, s.avgSpeedKmh)
	surgeMult := 1.0
	if s.surge != nil {
		surgeMult = s.surge.Estimate(ctx, req.Pickup, 0)
	}
	return pricedLeg{
		routeKm:   routeKm,
		routeMin:  routeMin,
		breakdown: s.fares.Calculate(routeKm, float64(routeMin), surgeMult, req.DiscountPct),
	}
}

// pricePassengerLeg prices a joining passenger's leg at base surge.
func (s *RideLifecycle) pricePassengerLeg(ctx context.Context, pickup, dropoff domain.Point) float64 {
	routeKm := geo.Distance(pickup, dropoff)
	routeMin := geo.EstimateDuration(routeKm, s.avgSpeedKmh)
	return s.fares.Calculate(routeKm, float64(routeMin), 1.0, 0).TotalFare
}

func validStatus(status domain.RideStatus) bool {
	switch status {
	case domain.RideStatusRequested, domain.RideStatusAccepted, domain.RideStatusDriverArrived,
		domain.RideStatusStarted, domain.RideStatusCompleted, domain.RideStatusCancelled:
		return true
	}
	return false
}

// newRideID returns a short human-readable ride identifier.
func newRideID() string {
	return "R-" + strings.ToUpper(uuid.New().String()[:8])
}

// generateOTP draws an n-digit numeric code from crypto/rand, so the
// value is unpredictable to a third party.
func generateOTP(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}
