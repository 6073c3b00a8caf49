package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// ReceiptService builds rider-facing receipts for completed rides.
type ReceiptService struct {
	rideRepo repository.RideRepository
	splitter *FareSplitter
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(rideRepo repository.RideRepository, splitter *FareSplitter) *ReceiptService {
	return &ReceiptService{rideRepo: rideRepo, splitter: splitter}
}

// Generate builds the receipt for a completed ride. The shares mirror
// the passenger order and sum to the ride total.
func (s *ReceiptService) Generate(ctx context.Context, rideID string) (*domain.Receipt, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusCompleted {
		return nil, ErrRideNotCompleted
	}

	shares, err := s.splitter.Shares(ride)
	if err != nil {
		return nil, err
	}

	distance := ride.ActualDistance
	if distance == 0 {
		distance = ride.DistanceKm
	}
	duration := ride.ActualDuration
	if duration == 0 {
		duration = ride.DurationMin
	}

	return &domain.Receipt{
		ID:              "RCPT-" + uuid.New().String()[:8],
		RideID:          ride.ID,
		DriverID:        ride.DriverID,
		Pooled:          ride.Pooled,
		Passengers:      len(ride.Passengers),
		DistanceKm:      distance,
		DurationMin:     duration,
		BaseFare:        ride.BaseFare,
		SurgeMultiplier: ride.SurgeMultiplier,
		TotalFare:       ride.TotalFare,
		Commission:      ride.Commission,
		DriverEarnings:  ride.DriverEarnings,
		Shares:          shares,
		PaymentMethod:   ride.PaymentMethod,
		PaymentStatus:   ride.PaymentStatus,
		CompletedAt:     ride.CompletedAt,
		CreatedAt:       time.Now(),
	}, nil
}
