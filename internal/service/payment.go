package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PaymentGateway is the external payment collaborator. Capture is
// asynchronous from the ride's point of view; the gateway reports back
// through its own channel.
type PaymentGateway interface {
	Charge(ctx context.Context, intent *domain.PaymentIntent) error
}

// PaymentTrigger emits at most one payment intent per ride+rider. The
// idempotency key makes a retried completion a no-op instead of a
// double charge.
type PaymentTrigger struct {
	intents repository.PaymentIntentRepository
	gateway PaymentGateway
}

// NewPaymentTrigger creates a new PaymentTrigger. gateway may be nil,
// in which case intents are recorded but not forwarded.
func NewPaymentTrigger(intents repository.PaymentIntentRepository, gateway PaymentGateway) *PaymentTrigger {
	return &PaymentTrigger{intents: intents, gateway: gateway}
}

// Trigger creates (or returns the existing) payment intent for one
// passenger of a completed ride.
func (p *PaymentTrigger) Trigger(ctx context.Context, ride *domain.Ride, passenger domain.Passenger) (*domain.PaymentIntent, error) {
	key := idempotencyKey(ride.ID, passenger.RiderID)

	existing, err := p.intents.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	intent := &domain.PaymentIntent{
		ID:             uuid.New().String(),
		RideID:         ride.ID,
		RiderID:        passenger.RiderID,
		Amount:         passenger.Fare,
		Method:         ride.PaymentMethod,
		Status:         domain.PaymentStatusProcessing,
		IdempotencyKey: key,
		CreatedAt:      time.Now(),
	}

	if err := p.intents.Create(ctx, intent); err != nil {
		return nil, err
	}

	if p.gateway != nil {
		if err := p.gateway.Charge(ctx, intent); err != nil {
			// Capture failures are reconciled out of band; the intent
			// stays PROCESSING until the gateway reports back.
			log.Printf("payment gateway charge failed for intent %s: %v", intent.ID, err)
		}
	}

	return intent, nil
}

func idempotencyKey(rideID, riderID string) string {
	return fmt.Sprintf("payment:%s:%s", rideID, riderID)
}

// LoggingGateway is a stand-in gateway that records charges to the log
// and immediately reports success. Used when no real processor is
// configured.
type LoggingGateway struct {
	intents repository.PaymentIntentRepository
}

// NewLoggingGateway creates a new LoggingGateway.
func NewLoggingGateway(intents repository.PaymentIntentRepository) *LoggingGateway {
	return &LoggingGateway{intents: intents}
}

// Charge logs the charge and marks the intent SUCCESS.
func (g *LoggingGateway) Charge(ctx context.Context, intent *domain.PaymentIntent) error {
	log.Printf("PAYMENT: charging %.2f via %s for ride %s rider %s", intent.Amount, intent.Method, intent.RideID, intent.RiderID)
	return g.intents.UpdateStatus(ctx, intent.ID, domain.PaymentStatusSuccess)
}

var _ PaymentGateway = (*LoggingGateway)(nil)
