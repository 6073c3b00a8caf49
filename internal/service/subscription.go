package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSubscriptionNotFound is returned for an unknown subscription ID.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionExhausted is returned when a subscription has no
	// uses left or has expired.
	ErrSubscriptionExhausted = errors.New("subscription exhausted or expired")
)

// Subscription is a prepaid discount pack: a percentage off each ride,
// limited by use count and expiry.
type Subscription struct {
	ID          string
	RiderID     string
	DiscountPct float64
	UsesLeft    int
	ExpiresAt   time.Time
}

// SubscriptionService resolves and consumes ride discounts.
type SubscriptionService interface {
	// Get returns the subscription, or ErrSubscriptionNotFound.
	Get(ctx context.Context, id string) (*Subscription, error)

	// DiscountFor returns the discount percentage a subscription grants
	// right now: 0 when exhausted, expired or unknown. It never
	// consumes a use.
	DiscountFor(ctx context.Context, id string) float64

	// ConsumeUse decrements the remaining uses. Returns
	// ErrSubscriptionExhausted when none remain.
	ConsumeUse(ctx context.Context, id string) error
}

// MemorySubscriptions is an in-memory SubscriptionService.
type MemorySubscriptions struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// NewMemorySubscriptions creates an empty in-memory subscription store.
func NewMemorySubscriptions() *MemorySubscriptions {
	return &MemorySubscriptions{subs: make(map[string]*Subscription)}
}

var _ SubscriptionService = (*MemorySubscriptions)(nil)

// Issue creates a subscription for a rider and returns its ID.
func (s *MemorySubscriptions) Issue(riderID string, discountPct float64, uses int, validFor time.Duration) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		ID:          uuid.New().String(),
		RiderID:     riderID,
		DiscountPct: discountPct,
		UsesLeft:    uses,
		ExpiresAt:   time.Now().Add(validFor),
	}
	s.subs[sub.ID] = sub
	return sub
}

// Get returns the subscription, or ErrSubscriptionNotFound.
func (s *MemorySubscriptions) Get(ctx context.Context, id string) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	copied := *sub
	return &copied, nil
}

// DiscountFor returns the active discount percentage, or 0.
func (s *MemorySubscriptions) DiscountFor(ctx context.Context, id string) float64 {
	if id == "" {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok || sub.UsesLeft <= 0 || time.Now().After(sub.ExpiresAt) {
		return 0
	}
	return sub.DiscountPct
}

// ConsumeUse decrements the remaining uses of a subscription.
func (s *MemorySubscriptions) ConsumeUse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return ErrSubscriptionNotFound
	}
	if sub.UsesLeft <= 0 || time.Now().After(sub.ExpiresAt) {
		return ErrSubscriptionExhausted
	}

	sub.UsesLeft--
	return nil
}
