package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore holds the short-lived surge cache and the available-driver
// set. Both tolerate staleness; lifecycle writes never go through here.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

const availableDriversKey = "drivers:available"

// surgeCellKey buckets a pickup point into a ~1km grid cell so nearby
// requests within the TTL share one computed multiplier.
func surgeCellKey(lat, lng float64) string {
	return fmt.Sprintf("surge:%.2f:%.2f", lat, lng)
}

// GetSurge returns the cached multiplier for the area, or 0 on miss.
func (s *CacheStore) GetSurge(ctx context.Context, lat, lng float64) (float64, error) {
	val, err := s.client.Get(ctx, surgeCellKey(lat, lng)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // cache miss
		}
		return 0, err
	}

	mult, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, err
	}
	return mult, nil
}

// SetSurge caches the multiplier for the area.
func (s *CacheStore) SetSurge(ctx context.Context, lat, lng, multiplier float64, ttl time.Duration) error {
	return s.client.Set(ctx, surgeCellKey(lat, lng), strconv.FormatFloat(multiplier, 'f', -1, 64), ttl).Err()
}

// AddAvailableDriver adds a driver to the available set.
func (s *CacheStore) AddAvailableDriver(ctx context.Context, driverID string) error {
	return s.client.SAdd(ctx, availableDriversKey, driverID).Err()
}

// RemoveAvailableDriver removes a driver from the available set.
func (s *CacheStore) RemoveAvailableDriver(ctx context.Context, driverID string) error {
	return s.client.SRem(ctx, availableDriversKey, driverID).Err()
}
