package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/geo"
	"ridehail/internal/service"
)

// FareHandler handles HTTP requests for fare estimates.
type FareHandler struct {
	fares       *service.FareCalculator
	surge       service.SurgeEstimatorInterface
	avgSpeedKmh float64
}

// NewFareHandler creates a new FareHandler. surge may be nil.
func NewFareHandler(fares *service.FareCalculator, surge service.SurgeEstimatorInterface, avgSpeedKmh float64) *FareHandler {
	return &FareHandler{fares: fares, surge: surge, avgSpeedKmh: avgSpeedKmh}
}

// Estimate handles GET /v1/fares/estimate. Query params: pickup_lat,
// pickup_lng, dropoff_lat, dropoff_lng, discount_pct (optional).
func (h *FareHandler) Estimate(c *gin.Context) {
	pickup, err := pointFromQuery(c, "pickup_lat", "pickup_lng")
	if err != nil {
		respondError(c, service.ErrInvalidPickupLocation)
		return
	}
	dropoff, err := pointFromQuery(c, "dropoff_lat", "dropoff_lng")
	if err != nil {
		respondError(c, service.ErrInvalidDropoffLocation)
		return
	}

	if !pickup.Valid() {
		respondError(c, service.ErrInvalidPickupLocation)
		return
	}
	if !dropoff.Valid() {
		respondError(c, service.ErrInvalidDropoffLocation)
		return
	}

	discountPct, _ := strconv.ParseFloat(c.DefaultQuery("discount_pct", "0"), 64)

	distanceKm := geo.Distance(pickup, dropoff)
	durationMin := geo.EstimateDuration(distanceKm, h.avgSpeedKmh)

	surgeMult := 1.0
	if h.surge != nil {
		surgeMult = h.surge.Estimate(c.Request.Context(), pickup, 0)
	}

	breakdown := h.fares.Calculate(distanceKm, float64(durationMin), surgeMult, discountPct)

	respondJSON(c, http.StatusOK, gin.H{
		"distance_km":  distanceKm,
		"duration_min": durationMin,
		"fare":         breakdown,
	})
}

func pointFromQuery(c *gin.Context, latKey, lngKey string) (domain.Point, error) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		return domain.Point{}, err
	}
	lng, err := strconv.ParseFloat(c.Query(lngKey), 64)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{Lat: lat, Lng: lng}, nil
}
