// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"ridehail/internal/domain"
)

const earthRadiusKm = 6371.0

// DefaultAvgSpeedKmh is the assumed city travel speed for duration estimates.
const DefaultAvgSpeedKmh = 30.0

// Distance returns the great-circle distance in kilometres between two
// points, via the haversine formula. Symmetric in its arguments and
// zero for identical points. Road-network distance is out of scope;
// great-circle is the system's documented simplification.
func Distance(a, b domain.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateDuration returns the ceiling of the travel time in minutes
// for the given distance at the given average speed. A speed of zero
// or below falls back to DefaultAvgSpeedKmh. Never negative; zero only
// for zero distance.
func EstimateDuration(distanceKm, avgSpeedKmh float64) int {
	if distanceKm <= 0 {
		return 0
	}
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAvgSpeedKmh
	}
	return int(math.Ceil(distanceKm / avgSpeedKmh * 60))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
