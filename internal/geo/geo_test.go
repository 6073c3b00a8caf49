package geo

import (
	"math"
	"testing"

	"ridehail/internal/domain"
)

func TestDistance_IdenticalPoints_IsZero(t *testing.T) {
	t.Parallel()

	p := domain.Point{Lat: 12.9716, Lng: 77.5946}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0 for identical points, got %v", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		a, b domain.Point
	}{
		{"bangalore-mysore", domain.Point{Lat: 12.9716, Lng: 77.5946}, domain.Point{Lat: 12.2958, Lng: 76.6394}},
		{"equator-crossing", domain.Point{Lat: -1.5, Lng: 36.8}, domain.Point{Lat: 1.2, Lng: 36.9}},
		{"antimeridian", domain.Point{Lat: 10, Lng: 179.9}, domain.Point{Lat: 10, Lng: -179.9}},
		{"poles", domain.Point{Lat: 89, Lng: 0}, domain.Point{Lat: -89, Lng: 0}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ab := Distance(tc.a, tc.b)
			ba := Distance(tc.b, tc.a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric: a->b=%v b->a=%v", ab, ba)
			}
		})
	}
}

func TestDistance_KnownValue(t *testing.T) {
	t.Parallel()

	// Bangalore to Mysore is roughly 128 km great-circle.
	a := domain.Point{Lat: 12.9716, Lng: 77.5946}
	b := domain.Point{Lat: 12.2958, Lng: 76.6394}

	d := Distance(a, b)
	if d < 125 || d > 132 {
		t.Errorf("expected ~128km, got %v", d)
	}
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	t.Parallel()

	// One degree of latitude is ~111.19 km everywhere.
	a := domain.Point{Lat: 0, Lng: 0}
	b := domain.Point{Lat: 1, Lng: 0}

	d := Distance(a, b)
	if math.Abs(d-111.19) > 0.5 {
		t.Errorf("expected ~111.19km per degree of latitude, got %v", d)
	}
}

func TestEstimateDuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		distance float64
		speed    float64
		want     int
	}{
		{"zero distance", 0, 30, 0},
		{"negative distance", -5, 30, 0},
		{"ten km at default speed", 10, 30, 20},
		{"rounds up", 10, 29, 21}, // 20.68 min
		{"speed fallback", 10, 0, 20},
		{"negative speed fallback", 10, -1, 20},
		{"short hop", 0.4, 30, 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := EstimateDuration(tc.distance, tc.speed)
			if got != tc.want {
				t.Errorf("EstimateDuration(%v, %v) = %d, want %d", tc.distance, tc.speed, got, tc.want)
			}
			if got < 0 {
				t.Error("duration must never be negative")
			}
		})
	}
}
