package service

import (
	"errors"
	"fmt"

	"ridehail/internal/domain"
)

var (
	// ErrNoDriverAvailable is returned when no driver can be claimed
	// for a ride. Match itself returns an empty list instead.
	ErrNoDriverAvailable = errors.New("no driver available")

	// ErrUnauthorized is returned when the actor/role combination may
	// not perform the requested transition.
	ErrUnauthorized = errors.New("actor not authorized for this transition")

	// ErrCapacityExceeded is returned when a pooled ride is full.
	ErrCapacityExceeded = errors.New("ride capacity exceeded")

	// ErrRideNotPooled is returned when passenger add/remove targets a
	// non-pooled ride.
	ErrRideNotPooled = errors.New("ride is not pooled")

	// ErrLastPassenger is returned when removing the sole passenger;
	// cancel the ride instead.
	ErrLastPassenger = errors.New("cannot remove the last passenger")

	// ErrRideFinalized is returned when mutating a COMPLETED or
	// CANCELLED ride.
	ErrRideFinalized = errors.New("ride already completed or cancelled")

	// ErrRatingAlreadySet is returned when a passenger tries to rate twice.
	ErrRatingAlreadySet = errors.New("rating already set")

	// ErrRideNotCompleted is returned when rating a ride that has not completed.
	ErrRideNotCompleted = errors.New("ride not completed")

	// ErrInvalidOTP is returned when the candidate OTP does not match.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are invalid.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDropoffLocation is returned when dropoff coordinates are invalid.
	ErrInvalidDropoffLocation = errors.New("invalid dropoff location")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidPaymentMethod is returned when payment method is invalid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidRating is returned when the rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidStatus is returned for an unknown ride status value.
	ErrInvalidStatus = errors.New("invalid ride status")

	// ErrInvalidRole is returned for an unknown actor role.
	ErrInvalidRole = errors.New("invalid actor role")

	// ErrRideBusy is returned when the per-ride writer lock is held.
	ErrRideBusy = errors.New("ride is being processed by another request")

	// ErrDriverBusy is returned when an availability change conflicts
	// with an active claim.
	ErrDriverBusy = errors.New("driver is on a ride or already offline")
)

// InvalidTransitionError reports a state machine violation. The message
// names both the current and the requested status.
type InvalidTransitionError struct {
	From domain.RideStatus
	To   domain.RideStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
