package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RiderRepository is a PostgreSQL implementation of repository.RiderRepository.
type RiderRepository struct {
	q Querier
}

// NewRiderRepository creates a new PostgreSQL rider repository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{q: db}
}

// Create adds a new rider.
func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	query := `INSERT INTO riders (id, name, phone, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.ExecContext(ctx, query, rider.ID, rider.Name, rider.Phone, rider.CreatedAt)
	return err
}

// GetByID retrieves a rider by ID.
func (r *RiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	query := `SELECT id, COALESCE(name, ''), COALESCE(phone, ''), created_at FROM riders WHERE id = $1`

	var rider domain.Rider
	err := r.q.QueryRowContext(ctx, query, id).Scan(&rider.ID, &rider.Name, &rider.Phone, &rider.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &rider, nil
}

// GetAll retrieves all riders.
func (r *RiderRepository) GetAll(ctx context.Context) ([]*domain.Rider, error) {
	query := `SELECT id, COALESCE(name, ''), COALESCE(phone, ''), created_at FROM riders ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []*domain.Rider
	for rows.Next() {
		var rider domain.Rider
		if err := rows.Scan(&rider.ID, &rider.Name, &rider.Phone, &rider.CreatedAt); err != nil {
			return nil, err
		}
		riders = append(riders, &rider)
	}
	return riders, rows.Err()
}
