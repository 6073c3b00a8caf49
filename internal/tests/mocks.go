package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/geo"
	"ridehail/internal/redis"
	"ridehail/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository with
// the same version-CAS semantics as the PostgreSQL implementation.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// cloneRide deep-copies a ride so callers can't mutate stored state.
func cloneRide(r *domain.Ride) *domain.Ride {
	copied := *r
	copied.Passengers = append([]domain.Passenger(nil), r.Passengers...)
	copied.Waypoints = append([]domain.Waypoint(nil), r.Waypoints...)
	return &copied
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride.Version = 1
	m.rides[ride.ID] = cloneRide(ride)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRide(ride), nil
}

func (m *MockRideRepository) GetInFlight(ctx context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if r.InFlight() {
			result = append(result, cloneRide(r))
		}
	}
	return result, nil
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rides[ride.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != ride.Version {
		return repository.ErrConcurrencyConflict
	}
	ride.Version++
	m.rides[ride.ID] = cloneRide(ride)
	return nil
}

// Get returns the stored ride directly, for assertions.
func (m *MockRideRepository) Get(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil
	}
	return cloneRide(ride)
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
// Claim flips availability under the mutex, matching the conditional
// UPDATE of the PostgreSQL implementation.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	ClaimCallCount   int32
	ReleaseCallCount int32

	// Error injection
	ClaimError   error
	ReleaseError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copied := *driver
	return &copied, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copied := *d
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MockDriverRepository) Claim(ctx context.Context, id string) (bool, error) {
	atomic.AddInt32(&m.ClaimCallCount, 1)
	if m.ClaimError != nil {
		return false, m.ClaimError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if !driver.IsAvailable {
		return false, nil
	}
	driver.IsAvailable = false
	return true, nil
}

func (m *MockDriverRepository) Release(ctx context.Context, id string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	if m.ReleaseError != nil {
		return m.ReleaseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.IsAvailable = true
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is an in-memory implementation of the geo index.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]redis.DriverLocation

	// Error injection
	FindError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make(map[string]redis.DriverLocation),
	}
}

// SetLocations replaces the stored locations.
func (m *MockLocationStore) SetLocations(locations []redis.DriverLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = make(map[string]redis.DriverLocation, len(locations))
	for _, loc := range locations {
		m.locations[loc.DriverID] = loc
	}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[driverID] = redis.DriverLocation{DriverID: driverID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]redis.DriverLocation, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	center := domain.Point{Lat: lat, Lng: lng}
	var result []redis.DriverLocation
	for _, loc := range m.locations {
		if geo.Distance(center, domain.Point{Lat: loc.Lat, Lng: loc.Lng}) <= radiusKm {
			result = append(result, loc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		di := geo.Distance(center, domain.Point{Lat: result[i].Lat, Lng: result[i].Lng})
		dj := geo.Distance(center, domain.Point{Lat: result[j].Lat, Lng: result[j].Lng})
		if di == dj {
			return result[i].DriverID < result[j].DriverID
		}
		return di < dj
	})
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, driverID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the distributed locks.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) acquire(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false
	}
	m.locks[key] = true
	return true
}

func (m *MockLockStore) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:driver:" + driverID), nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	m.release("lock:driver:" + driverID)
	return nil
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:ride:" + rideID), nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.release("lock:ride:" + rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT INTENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentIntentRepository is an in-memory PaymentIntentRepository.
type MockPaymentIntentRepository struct {
	mu      sync.RWMutex
	intents map[string]*domain.PaymentIntent // by ID
	byKey   map[string]*domain.PaymentIntent // by idempotency key

	CreateCallCount int32
}

// NewMockPaymentIntentRepository creates a new mock payment intent repository.
func NewMockPaymentIntentRepository() *MockPaymentIntentRepository {
	return &MockPaymentIntentRepository{
		intents: make(map[string]*domain.PaymentIntent),
		byKey:   make(map[string]*domain.PaymentIntent),
	}
}

func (m *MockPaymentIntentRepository) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *intent
	m.intents[intent.ID] = &copied
	m.byKey[intent.IdempotencyKey] = &copied
	return nil
}

func (m *MockPaymentIntentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	intent, ok := m.intents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *intent
	return &copied, nil
}

func (m *MockPaymentIntentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.PaymentIntent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	intent, ok := m.byKey[key]
	if !ok {
		return nil, nil
	}
	copied := *intent
	return &copied, nil
}

func (m *MockPaymentIntentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	intent, ok := m.intents[id]
	if !ok {
		return repository.ErrNotFound
	}
	intent.Status = status
	return nil
}

// ──────────────────────────────────────────────
// FIXED SURGE
// ──────────────────────────────────────────────

// FixedSurge is a surge estimator that always returns the same multiplier.
type FixedSurge struct {
	Mult float64
}

func (f FixedSurge) Estimate(ctx context.Context, pickup domain.Point, radiusMeters float64) float64 {
	return f.Mult
}
