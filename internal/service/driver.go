package service

import (
	"context"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// DriverService manages driver registration, the live location index
// and the availability flag.
type DriverService struct {
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface
	cacheStore    *redis.CacheStore
}

// NewDriverService creates a new DriverService. cacheStore may be nil.
func NewDriverService(
	driverRepo repository.DriverRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore *redis.CacheStore,
) *DriverService {
	return &DriverService{
		driverRepo:    driverRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
	}
}

// Register creates a driver record. New drivers start offline.
func (s *DriverService) Register(ctx context.Context, name, phone, vehicleID string, vehicleType domain.VehicleType) (*domain.Driver, error) {
	driver := &domain.Driver{
		ID:          "D-" + uuid.New().String()[:8],
		Name:        name,
		Phone:       phone,
		IsAvailable: false,
		VehicleID:   vehicleID,
		VehicleType: vehicleType,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// UpdateLocation records the driver's current position in the geo index.
func (s *DriverService) UpdateLocation(ctx context.Context, driverID string, point domain.Point) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if !point.Valid() {
		return ErrInvalidLocation
	}
	return s.locationStore.UpdateLocation(ctx, driverID, point.Lat, point.Lng)
}

// GoOnline marks the driver available for matching.
func (s *DriverService) GoOnline(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return err
	}

	if err := s.driverRepo.Release(ctx, driverID); err != nil {
		return err
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableDriver(ctx, driverID)
	}
	return nil
}

// GoOffline takes the driver out of the matching pool. Fails with
// ErrDriverBusy when the driver is mid-ride; finish or cancel the
// ride first.
func (s *DriverService) GoOffline(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	ok, err := s.driverRepo.Claim(ctx, driverID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDriverBusy
	}

	if err := s.locationStore.RemoveLocation(ctx, driverID); err != nil {
		return err
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.RemoveAvailableDriver(ctx, driverID)
	}
	return nil
}
