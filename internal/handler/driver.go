package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	drivers   *service.DriverService
	lifecycle *service.RideLifecycle
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(drivers *service.DriverService, lifecycle *service.RideLifecycle) *DriverHandler {
	return &DriverHandler{drivers: drivers, lifecycle: lifecycle}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleID   string `json:"vehicle_id"`
	VehicleType string `json:"vehicle_type"` // ECONOMY, PREMIUM, XL
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.drivers.Register(c.Request.Context(), req.Name, req.Phone, req.VehicleID, domain.VehicleType(req.VehicleType))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driver)
}

// GetDriver handles GET /v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.drivers.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, driver)
}

// UpdateLocationRequest is the HTTP request body for a location update.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles POST /v1/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.drivers.UpdateLocation(c.Request.Context(), c.Param("id"), domain.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"updated": true})
}

// SetAvailabilityRequest is the HTTP request body for availability changes.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability handles POST /v1/drivers/:id/availability
func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var err error
	if req.Available {
		err = h.drivers.GoOnline(c.Request.Context(), c.Param("id"))
	} else {
		err = h.drivers.GoOffline(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"available": req.Available})
}

// AcceptRideRequest is the HTTP request body for accepting a ride.
type AcceptRideRequest struct {
	RideID string `json:"ride_id"`
}

// AcceptRide handles POST /v1/drivers/:id/accept
func (h *DriverHandler) AcceptRide(c *gin.Context) {
	var req AcceptRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.lifecycle.AcceptRide(c.Request.Context(), req.RideID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
