package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/service"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riders *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riders *service.RiderService) *RiderHandler {
	return &RiderHandler{riders: riders}
}

// RegisterRiderRequest is the HTTP request body for rider registration.
type RegisterRiderRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Register handles POST /v1/riders/register
func (h *RiderHandler) Register(c *gin.Context) {
	var req RegisterRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider, err := h.riders.Register(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rider)
}

// GetRider handles GET /v1/riders/:id
func (h *RiderHandler) GetRider(c *gin.Context) {
	rider, err := h.riders.GetRider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, rider)
}
