package tests

import (
	"errors"
	"math"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestFareSplitter_EvenSplitSumsToTotal(t *testing.T) {
	splitter := service.NewFareSplitter()

	for n := 1; n <= 6; n++ {
		shares, err := splitter.SplitEven(100.0, n)
		if err != nil {
			t.Fatalf("split across %d: %v", n, err)
		}
		if len(shares) != n {
			t.Fatalf("expected %d shares, got %d", n, len(shares))
		}

		sum := 0.0
		for _, s := range shares {
			sum += s
		}
		if math.Abs(sum-100.0) > 1e-9 {
			t.Errorf("shares across %d sum to %.4f, want 100.00", n, sum)
		}
	}
}

func TestFareSplitter_LastShareAbsorbsRemainder(t *testing.T) {
	splitter := service.NewFareSplitter()

	// 100 / 3 = 33.33 rounded; the last passenger picks up the cent.
	shares, err := splitter.SplitEven(100.0, 3)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	if shares[0] != 33.33 || shares[1] != 33.33 {
		t.Errorf("expected first two shares 33.33, got %.2f and %.2f", shares[0], shares[1])
	}
	if shares[2] != 33.34 {
		t.Errorf("expected last share 33.34, got %.2f", shares[2])
	}
}

func TestFareSplitter_ZeroPassengers(t *testing.T) {
	splitter := service.NewFareSplitter()

	if _, err := splitter.SplitEven(100.0, 0); !errors.Is(err, service.ErrNoShares) {
		t.Errorf("expected ErrNoShares, got %v", err)
	}
}

func TestFareSplitter_PooledSharesAreEven(t *testing.T) {
	splitter := service.NewFareSplitter()

	// Uneven leg fares still split evenly: each head pays total/N.
	ride := &domain.Ride{
		Pooled: true,
		Passengers: []domain.Passenger{
			{RiderID: "rider-1", Fare: 40.0},
			{RiderID: "rider-2", Fare: 60.0},
		},
	}
	ride.RecomputeTotalFare()

	shares, err := splitter.Shares(ride)
	if err != nil {
		t.Fatalf("shares: %v", err)
	}

	if shares[0] != 50.0 || shares[1] != 50.0 {
		t.Errorf("expected even shares [50 50], got %v", shares)
	}
	if ride.TotalFare != 100.0 {
		t.Errorf("expected total 100, got %.2f", ride.TotalFare)
	}
}

func TestFareSplitter_SoloRideSingleShare(t *testing.T) {
	splitter := service.NewFareSplitter()

	ride := &domain.Ride{
		Passengers: []domain.Passenger{{RiderID: "rider-1", Fare: 190.0}},
	}
	ride.RecomputeTotalFare()

	shares, err := splitter.Shares(ride)
	if err != nil {
		t.Fatalf("shares: %v", err)
	}
	if len(shares) != 1 || shares[0] != 190.0 {
		t.Errorf("expected [190], got %v", shares)
	}
}
