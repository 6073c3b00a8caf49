package repository

import (
	"context"

	"ridehail/internal/domain"
)

// PaymentIntentRepository defines the persistence operations for
// payment intents emitted on ride completion.
type PaymentIntentRepository interface {
	// Create persists a new payment intent.
	Create(ctx context.Context, intent *domain.PaymentIntent) error

	// GetByID retrieves a payment intent by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error)

	// GetByIdempotencyKey retrieves an intent by its idempotency key.
	// Returns nil, nil when no intent exists with the given key.
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.PaymentIntent, error)

	// UpdateStatus updates the status of a payment intent.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}
