package repository

import (
	"context"

	"ridehail/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride at version 1.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetInFlight retrieves rides in REQUESTED, ACCEPTED or STARTED state.
	GetInFlight(ctx context.Context) ([]*domain.Ride, error)

	// Update writes the ride conditioned on ride.Version matching the
	// stored row, bumping the version on success. Returns
	// ErrConcurrencyConflict when the version moved, ErrNotFound when
	// the ride does not exist.
	Update(ctx context.Context, ride *domain.Ride) error
}
