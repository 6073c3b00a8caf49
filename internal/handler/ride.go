package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	lifecycle     *service.RideLifecycle
	matcher       service.MatcherInterface
	receipts      *service.ReceiptService
	subscriptions service.SubscriptionService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(
	lifecycle *service.RideLifecycle,
	matcher service.MatcherInterface,
	receipts *service.ReceiptService,
	subscriptions service.SubscriptionService,
) *RideHandler {
	return &RideHandler{
		lifecycle:     lifecycle,
		matcher:       matcher,
		receipts:      receipts,
		subscriptions: subscriptions,
	}
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	RiderID        string  `json:"rider_id"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLng     float64 `json:"dropoff_lng"`
	Pooled         bool    `json:"pooled,omitempty"`
	VehicleType    string  `json:"vehicle_type,omitempty"` // ECONOMY, PREMIUM, XL
	PaymentMethod  string  `json:"payment_method,omitempty"`
	SubscriptionID string  `json:"subscription_id,omitempty"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID              string             `json:"id"`
	Pooled          bool               `json:"pooled"`
	Capacity        int                `json:"capacity"`
	Passengers      []domain.Passenger `json:"passengers"`
	DriverID        string             `json:"driver_id,omitempty"`
	VehicleID       string             `json:"vehicle_id,omitempty"`
	Status          string             `json:"status"`
	DistanceKm      float64            `json:"distance_km"`
	DurationMin     int                `json:"duration_min"`
	TotalFare       float64            `json:"total_fare"`
	DriverEarnings  float64            `json:"driver_earnings"`
	Commission      float64            `json:"commission"`
	SurgeMultiplier float64            `json:"surge_multiplier"`
	SurgeActive     bool               `json:"surge_active"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentStatus   string             `json:"payment_status"`
	OTP             string             `json:"otp,omitempty"`
	SOS             bool               `json:"sos,omitempty"`
	CancelReason    string             `json:"cancel_reason,omitempty"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:              ride.ID,
		Pooled:          ride.Pooled,
		Capacity:        ride.Capacity,
		Passengers:      ride.Passengers,
		DriverID:        ride.DriverID,
		VehicleID:       ride.VehicleID,
		Status:          string(ride.Status),
		DistanceKm:      ride.DistanceKm,
		DurationMin:     ride.DurationMin,
		TotalFare:       ride.TotalFare,
		DriverEarnings:  ride.DriverEarnings,
		Commission:      ride.Commission,
		SurgeMultiplier: ride.SurgeMultiplier,
		SurgeActive:     ride.SurgeMultiplier > 1.0,
		PaymentMethod:   string(ride.PaymentMethod),
		PaymentStatus:   string(ride.PaymentStatus),
		OTP:             ride.OTP,
		SOS:             ride.SOS,
		CancelReason:    ride.CancelReason,
	}
}

func (h *RideHandler) buildRequest(c *gin.Context, req CreateRideRequest) (domain.RideRequest, error) {
	paymentMethod, err := service.ValidatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return domain.RideRequest{}, err
	}

	discountPct := 0.0
	if h.subscriptions != nil && req.SubscriptionID != "" {
		discountPct = h.subscriptions.DiscountFor(c.Request.Context(), req.SubscriptionID)
	}

	return domain.RideRequest{
		RiderID:        req.RiderID,
		Pickup:         domain.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		Dropoff:        domain.Point{Lat: req.DropoffLat, Lng: req.DropoffLng},
		Pooled:         req.Pooled,
		VehicleType:    domain.VehicleType(req.VehicleType),
		PaymentMethod:  paymentMethod,
		DiscountPct:    discountPct,
		SubscriptionID: req.SubscriptionID,
	}, nil
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rideReq, err := h.buildRequest(c, req)
	if err != nil {
		respondError(c, err)
		return
	}

	matches, err := h.matcher.Match(c.Request.Context(), rideReq)
	if err != nil {
		respondError(c, err)
		return
	}

	var best *domain.RankedMatch
	if len(matches) > 0 {
		best = &matches[0]
	}

	ride, err := h.lifecycle.CreateRide(c.Request.Context(), req.RiderID, rideReq, best)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// Match handles POST /v1/rides/match — ranking only, no claim.
func (h *RideHandler) Match(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rideReq, err := h.buildRequest(c, req)
	if err != nil {
		respondError(c, err)
		return
	}

	matches, err := h.matcher.Match(c.Request.Context(), rideReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"matches": matches})
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.lifecycle.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// UpdateStatusRequest is the HTTP request body for a status transition.
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ActorID   string `json:"actor_id"`
	ActorRole string `json:"actor_role"` // RIDER or DRIVER
	Reason    string `json:"reason,omitempty"`
}

// UpdateStatus handles POST /v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		RideID:    c.Param("id"),
		NewStatus: domain.RideStatus(req.Status),
		ActorID:   req.ActorID,
		ActorRole: domain.ActorRole(req.ActorRole),
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// AddPassengerRequest is the HTTP request body for joining a pooled ride.
type AddPassengerRequest struct {
	RiderID        string  `json:"rider_id"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLng     float64 `json:"dropoff_lng"`
	SubscriptionID string  `json:"subscription_id,omitempty"`
}

// AddPassenger handles POST /v1/rides/:id/passengers
func (h *RideHandler) AddPassenger(c *gin.Context) {
	var req AddPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.AddPassenger(c.Request.Context(), service.AddPassengerRequest{
		RideID:         c.Param("id"),
		RiderID:        req.RiderID,
		Pickup:         domain.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		Dropoff:        domain.Point{Lat: req.DropoffLat, Lng: req.DropoffLng},
		SubscriptionID: req.SubscriptionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// RemovePassenger handles DELETE /v1/rides/:id/passengers/:riderId
func (h *RideHandler) RemovePassenger(c *gin.Context) {
	ride, err := h.lifecycle.RemovePassenger(c.Request.Context(), c.Param("id"), c.Param("riderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// VerifyOTPRequest is the HTTP request body for OTP verification.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// VerifyOTP handles POST /v1/rides/:id/otp/verify
func (h *RideHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.lifecycle.VerifyOTP(c.Request.Context(), c.Param("id"), req.OTP); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"verified": true})
}

// RateRequest is the HTTP request body for rating a completed ride.
type RateRequest struct {
	RiderID string `json:"rider_id"`
	Rating  int    `json:"rating"`
	Review  string `json:"review,omitempty"`
}

// Rate handles POST /v1/rides/:id/rate
func (h *RideHandler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.RatePassenger(c.Request.Context(), service.RateRequest{
		RideID:  c.Param("id"),
		RiderID: req.RiderID,
		Rating:  req.Rating,
		Review:  req.Review,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// SOSRequest is the HTTP request body for flagging an SOS.
type SOSRequest struct {
	ActorID string `json:"actor_id"`
}

// FlagSOS handles POST /v1/rides/:id/sos
func (h *RideHandler) FlagSOS(c *gin.Context) {
	var req SOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.FlagSOS(c.Request.Context(), c.Param("id"), req.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetReceipt handles GET /v1/rides/:id/receipt
func (h *RideHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.receipts.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, receipt)
}
