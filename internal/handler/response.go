package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	if service.IsInvalidTransition(err) {
		return http.StatusConflict
	}

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDropoffLocation),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrConcurrencyConflict),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrRideNotPooled),
		errors.Is(err, service.ErrLastPassenger),
		errors.Is(err, service.ErrRideFinalized),
		errors.Is(err, service.ErrRatingAlreadySet),
		errors.Is(err, service.ErrRideNotCompleted),
		errors.Is(err, service.ErrRideBusy),
		errors.Is(err, service.ErrDriverBusy),
		errors.Is(err, service.ErrSubscriptionExhausted):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, service.ErrInvalidOTP):
		return http.StatusUnauthorized

	// Service unavailable
	case errors.Is(err, service.ErrNoDriverAvailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
