package service

import (
	"math"

	"ridehail/internal/config"
	"ridehail/internal/domain"
)

// FareCalculator turns distance, duration, surge and discount into a
// fare breakdown and the driver/platform split. All constants come
// from configuration so they can differ per deployment/region.
type FareCalculator struct {
	cfg config.FareConfig
}

// NewFareCalculator creates a new FareCalculator.
func NewFareCalculator(cfg config.FareConfig) *FareCalculator {
	return &FareCalculator{cfg: cfg}
}

// Calculate prices a ride leg. Rounding happens once, at the boundary,
// so intermediate surge/discount stages don't compound rounding error.
// The minimum fare floor is applied twice: after surge and again after
// the discount, so a promotion can never drive the fare below the floor.
func (c *FareCalculator) Calculate(distanceKm, durationMin, surgeMultiplier, discountPct float64) domain.FareBreakdown {
	if surgeMultiplier < 1.0 {
		surgeMultiplier = 1.0
	}
	if discountPct < 0 {
		discountPct = 0
	}
	if discountPct > 100 {
		discountPct = 100
	}

	distanceFare := distanceKm * c.cfg.PerKmRate
	timeFare := durationMin * c.cfg.PerMinuteRate
	subtotal := c.cfg.BaseFare + distanceFare + timeFare

	surged := subtotal * surgeMultiplier
	if surged < c.cfg.MinimumFare {
		surged = c.cfg.MinimumFare
	}

	discount := surged * discountPct / 100
	total := surged - discount
	if total < c.cfg.MinimumFare {
		total = c.cfg.MinimumFare
		discount = surged - total
	}

	total = roundMoney(total)
	commission, driverEarnings := c.CommissionSplit(total)

	return domain.FareBreakdown{
		BaseFare:        roundMoney(c.cfg.BaseFare),
		DistanceFare:    roundMoney(distanceFare),
		TimeFare:        roundMoney(timeFare),
		Subtotal:        roundMoney(subtotal),
		SurgeMultiplier: surgeMultiplier,
		Discount:        roundMoney(discount),
		TotalFare:       total,
		Commission:      commission,
		DriverEarnings:  driverEarnings,
	}
}

// CommissionSplit divides a total into the platform commission and the
// driver's earnings. The earnings side absorbs the rounding remainder
// so the two always reconstruct the total exactly.
func (c *FareCalculator) CommissionSplit(total float64) (commission, driverEarnings float64) {
	total = roundMoney(total)
	commission = roundMoney(total * c.cfg.CommissionRate)
	return commission, roundMoney(total - commission)
}

// MinimumFare exposes the configured floor.
func (c *FareCalculator) MinimumFare() float64 {
	return c.cfg.MinimumFare
}

// BaseFare exposes the configured base component.
func (c *FareCalculator) BaseFare() float64 {
	return c.cfg.BaseFare
}

// roundMoney rounds to the currency's minor unit (2 decimal places).
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
