package service

import (
	"errors"

	"ridehail/internal/domain"
)

// ErrNoShares is returned when splitting a fare across zero passengers.
var ErrNoShares = errors.New("cannot split fare across zero passengers")

// FareSplitter divides a pooled total across passengers.
type FareSplitter struct{}

// NewFareSplitter creates a new FareSplitter.
func NewFareSplitter() *FareSplitter {
	return &FareSplitter{}
}

// SplitEven splits total evenly into n shares. Each share is rounded to
// the minor unit; the last share absorbs the remainder so the shares
// always sum exactly to the rounded total.
func (s *FareSplitter) SplitEven(total float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrNoShares
	}

	total = roundMoney(total)
	share := roundMoney(total / float64(n))

	shares := make([]float64, n)
	running := 0.0
	for i := 0; i < n-1; i++ {
		shares[i] = share
		running += share
	}
	shares[n-1] = roundMoney(total - running)

	return shares, nil
}

// Shares returns the per-passenger amounts for a ride: the total split
// evenly across the passenger list, order following the list. The even
// split deliberately ignores per-leg distance; a longer leg already
// raised the total every passenger shares.
func (s *FareSplitter) Shares(ride *domain.Ride) ([]float64, error) {
	return s.SplitEven(ride.TotalFare, len(ride.Passengers))
}
