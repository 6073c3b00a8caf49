package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PaymentIntentRepository is a PostgreSQL implementation of
// repository.PaymentIntentRepository.
type PaymentIntentRepository struct {
	q Querier
}

// NewPaymentIntentRepository creates a new PostgreSQL payment intent repository.
func NewPaymentIntentRepository(db *sql.DB) *PaymentIntentRepository {
	return &PaymentIntentRepository{q: db}
}

// Create persists a new payment intent.
func (r *PaymentIntentRepository) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	query := `
		INSERT INTO payment_intents (id, ride_id, rider_id, amount, method, status, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.q.ExecContext(ctx, query,
		intent.ID, intent.RideID, intent.RiderID, intent.Amount,
		intent.Method, intent.Status, intent.IdempotencyKey, intent.CreatedAt)
	return err
}

// GetByID retrieves a payment intent by ID.
func (r *PaymentIntentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	query := `
		SELECT id, ride_id, rider_id, amount, method, status, idempotency_key, created_at
		FROM payment_intents WHERE id = $1
	`

	intent, err := scanPaymentIntent(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return intent, nil
}

// GetByIdempotencyKey retrieves an intent by its idempotency key.
func (r *PaymentIntentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.PaymentIntent, error) {
	query := `
		SELECT id, ride_id, rider_id, amount, method, status, idempotency_key, created_at
		FROM payment_intents WHERE idempotency_key = $1
	`

	intent, err := scanPaymentIntent(r.q.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // absence is not an error for the idempotency check
		}
		return nil, err
	}
	return intent, nil
}

// UpdateStatus updates the status of a payment intent.
func (r *PaymentIntentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payment_intents SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanPaymentIntent(row rowScanner) (*domain.PaymentIntent, error) {
	var intent domain.PaymentIntent
	err := row.Scan(
		&intent.ID,
		&intent.RideID,
		&intent.RiderID,
		&intent.Amount,
		&intent.Method,
		&intent.Status,
		&intent.IdempotencyKey,
		&intent.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}
