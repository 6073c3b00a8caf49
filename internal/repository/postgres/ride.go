package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
// Passengers and waypoints are stored as JSONB documents on the ride row,
// so a ride is always read and written as one unit.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

const rideColumns = `
	id, pooled, capacity, passengers, waypoints,
	driver_id, vehicle_id,
	distance_km, duration_min, actual_distance, actual_duration,
	base_fare, total_fare, driver_earnings, commission, surge_multiplier,
	status, payment_method, payment_status,
	otp, cancel_reason, sos,
	requested_at, accepted_at, arrived_at, started_at, completed_at, cancelled_at,
	version
`

// Create persists a new ride at version 1.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`

	passengers, err := json.Marshal(ride.Passengers)
	if err != nil {
		return err
	}
	waypoints, err := json.Marshal(ride.Waypoints)
	if err != nil {
		return err
	}

	ride.Version = 1

	_, err = r.q.ExecContext(ctx, query,
		ride.ID,
		ride.Pooled,
		ride.Capacity,
		passengers,
		waypoints,
		nullString(ride.DriverID),
		nullString(ride.VehicleID),
		ride.DistanceKm,
		ride.DurationMin,
		ride.ActualDistance,
		ride.ActualDuration,
		ride.BaseFare,
		ride.TotalFare,
		ride.DriverEarnings,
		ride.Commission,
		ride.SurgeMultiplier,
		ride.Status,
		ride.PaymentMethod,
		ride.PaymentStatus,
		nullString(ride.OTP),
		nullString(ride.CancelReason),
		ride.SOS,
		ride.RequestedAt,
		nullTime(ride.AcceptedAt),
		nullTime(ride.ArrivedAt),
		nullTime(ride.StartedAt),
		nullTime(ride.CompletedAt),
		nullTime(ride.CancelledAt),
		ride.Version,
	)
	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetInFlight retrieves rides in REQUESTED, ACCEPTED or STARTED state.
func (r *RideRepository) GetInFlight(ctx context.Context) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE status IN ('REQUESTED', 'ACCEPTED', 'STARTED')
		ORDER BY requested_at DESC LIMIT 500
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update writes the ride conditioned on its version matching the stored
// row. A zero-row update against an existing ride means a lost race.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides SET
			pooled = $1, capacity = $2, passengers = $3, waypoints = $4,
			driver_id = $5, vehicle_id = $6,
			distance_km = $7, duration_min = $8, actual_distance = $9, actual_duration = $10,
			base_fare = $11, total_fare = $12, driver_earnings = $13, commission = $14, surge_multiplier = $15,
			status = $16, payment_method = $17, payment_status = $18,
			otp = $19, cancel_reason = $20, sos = $21,
			accepted_at = $22, arrived_at = $23, started_at = $24, completed_at = $25, cancelled_at = $26,
			version = version + 1
		WHERE id = $27 AND version = $28
	`

	passengers, err := json.Marshal(ride.Passengers)
	if err != nil {
		return err
	}
	waypoints, err := json.Marshal(ride.Waypoints)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		ride.Pooled,
		ride.Capacity,
		passengers,
		waypoints,
		nullString(ride.DriverID),
		nullString(ride.VehicleID),
		ride.DistanceKm,
		ride.DurationMin,
		ride.ActualDistance,
		ride.ActualDuration,
		ride.BaseFare,
		ride.TotalFare,
		ride.DriverEarnings,
		ride.Commission,
		ride.SurgeMultiplier,
		ride.Status,
		ride.PaymentMethod,
		ride.PaymentStatus,
		nullString(ride.OTP),
		nullString(ride.CancelReason),
		ride.SOS,
		nullTime(ride.AcceptedAt),
		nullTime(ride.ArrivedAt),
		nullTime(ride.StartedAt),
		nullTime(ride.CompletedAt),
		nullTime(ride.CancelledAt),
		ride.ID,
		ride.Version,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing ride from a lost version race.
		var exists bool
		err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, ride.ID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConcurrencyConflict
	}

	ride.Version++
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var passengers, waypoints []byte
	var driverID, vehicleID, otp, cancelReason sql.NullString
	var acceptedAt, arrivedAt, startedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.Pooled,
		&ride.Capacity,
		&passengers,
		&waypoints,
		&driverID,
		&vehicleID,
		&ride.DistanceKm,
		&ride.DurationMin,
		&ride.ActualDistance,
		&ride.ActualDuration,
		&ride.BaseFare,
		&ride.TotalFare,
		&ride.DriverEarnings,
		&ride.Commission,
		&ride.SurgeMultiplier,
		&ride.Status,
		&ride.PaymentMethod,
		&ride.PaymentStatus,
		&otp,
		&cancelReason,
		&ride.SOS,
		&ride.RequestedAt,
		&acceptedAt,
		&arrivedAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&ride.Version,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(passengers, &ride.Passengers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(waypoints, &ride.Waypoints); err != nil {
		return nil, err
	}

	ride.DriverID = driverID.String
	ride.VehicleID = vehicleID.String
	ride.OTP = otp.String
	ride.CancelReason = cancelReason.String
	ride.AcceptedAt = acceptedAt.Time
	ride.ArrivedAt = arrivedAt.Time
	ride.StartedAt = startedAt.Time
	ride.CompletedAt = completedAt.Time
	ride.CancelledAt = cancelledAt.Time

	return &ride, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
