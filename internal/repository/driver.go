package repository

import (
	"context"

	"ridehail/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// Claim atomically flips the driver's availability from available
	// to unavailable. Returns false when the driver was already
	// claimed or offline; this is the double-booking guard.
	Claim(ctx context.Context, id string) (bool, error)

	// Release marks the driver available again (ride completed or
	// cancelled).
	Release(ctx context.Context, id string) error
}
