package repository

import (
	"context"

	"ridehail/internal/domain"
)

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	// Create adds a new rider.
	Create(ctx context.Context, rider *domain.Rider) error

	// GetByID retrieves a rider by ID.
	GetByID(ctx context.Context, id string) (*domain.Rider, error)

	// GetAll retrieves all riders.
	GetAll(ctx context.Context) ([]*domain.Rider, error)
}
