package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, is_available, vehicle_id, vehicle_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID, driver.Name, driver.Phone, driver.IsAvailable, driver.VehicleID, driver.VehicleType)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), is_available, COALESCE(vehicle_id, ''), vehicle_type
		FROM drivers WHERE id = $1
	`

	var driver domain.Driver
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.IsAvailable,
		&driver.VehicleID,
		&driver.VehicleType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), is_available, COALESCE(vehicle_id, ''), vehicle_type
		FROM drivers ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(&driver.ID, &driver.Name, &driver.Phone, &driver.IsAvailable, &driver.VehicleID, &driver.VehicleType); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}
	return drivers, rows.Err()
}

// Claim atomically flips is_available true -> false. The conditional
// update is the double-booking guard: at most one caller wins.
func (r *DriverRepository) Claim(ctx context.Context, id string) (bool, error) {
	query := `UPDATE drivers SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// Release marks the driver available again.
func (r *DriverRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE drivers SET is_available = TRUE WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
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
