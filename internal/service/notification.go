package service

import (
	"context"
	"log"

	"ridehail/internal/domain"
)

// NotificationService fans ride events out to riders and drivers. The
// current sink is the process log; delivery is best effort and a failed
// notification never affects the ride.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideConfirmed announces a newly created or accepted ride.
func (n *NotificationService) NotifyRideConfirmed(ctx context.Context, ride *domain.Ride) error {
	if ride.DriverID == "" {
		log.Printf("NOTIFY: ride %s requested, searching for a driver", ride.ID)
		return nil
	}
	log.Printf("NOTIFY: ride %s confirmed with driver %s, otp %s", ride.ID, ride.DriverID, ride.OTP)
	return nil
}

// NotifyRideCompleted announces completion and the amount due per passenger.
func (n *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride) error {
	for _, p := range ride.Passengers {
		log.Printf("NOTIFY: ride %s completed, rider %s owes %.2f via %s", ride.ID, p.RiderID, p.Fare, ride.PaymentMethod)
	}
	if ride.DriverID != "" {
		log.Printf("NOTIFY: ride %s completed, driver %s earned %.2f", ride.ID, ride.DriverID, ride.DriverEarnings)
	}
	return nil
}

// NotifyRideCancelled announces a cancellation to all parties.
func (n *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride, actorID, reason string) error {
	log.Printf("NOTIFY: ride %s cancelled by %s: %s", ride.ID, actorID, reason)
	return nil
}

// NotifySOS escalates an SOS flag. This path must never be silently
// dropped, so it logs even when everything else is quiet.
func (n *NotificationService) NotifySOS(ctx context.Context, ride *domain.Ride, actorID string) error {
	log.Printf("SOS: ride %s flagged by %s, driver %s, %d passengers", ride.ID, actorID, ride.DriverID, len(ride.Passengers))
	return nil
}
