package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RiderService manages rider accounts.
type RiderService struct {
	riderRepo repository.RiderRepository
}

// NewRiderService creates a new RiderService.
func NewRiderService(riderRepo repository.RiderRepository) *RiderService {
	return &RiderService{riderRepo: riderRepo}
}

// Register creates a rider record.
func (s *RiderService) Register(ctx context.Context, name, phone string) (*domain.Rider, error) {
	rider := &domain.Rider{
		ID:        "U-" + uuid.New().String()[:8],
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	if err := s.riderRepo.Create(ctx, rider); err != nil {
		return nil, err
	}
	return rider, nil
}

// GetRider retrieves a rider by ID.
func (s *RiderService) GetRider(ctx context.Context, riderID string) (*domain.Rider, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	return s.riderRepo.GetByID(ctx, riderID)
}
