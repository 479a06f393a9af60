package finance

import (
	"math"
	"slices"
)

// Input ranges offered by the finance page sliders and selectors.
const (
	MinDownPaymentRatio = 0.10
	MaxDownPaymentRatio = 0.50
	DownPaymentStep     = 1000.0
	PresetDownRatio     = 0.20

	MinRatePercent = 2.0
	MaxRatePercent = 12.0
	RateStep       = 0.1

	DefaultVehiclePrice = 280000.0
	DefaultRatePercent  = 4.9
	DefaultTermMonths   = 60
)

// Terms are the selectable loan terms in months.
var Terms = []int{36, 48, 60, 72, 84}

// PresetPrices are the quick-select vehicle prices on the finance page.
var PresetPrices = []float64{280000, 320000, 450000}

// ValidTerm reports whether n is one of the selectable terms.
func ValidTerm(n int) bool {
	return slices.Contains(Terms, n)
}

// DefaultRequest is the calculator state a visitor lands on.
func DefaultRequest() LoanRequest {
	return LoanRequest{
		VehiclePrice:      DefaultVehiclePrice,
		DownPayment:       PresetDownPayment(DefaultVehiclePrice),
		AnnualRatePercent: DefaultRatePercent,
		TermMonths:        DefaultTermMonths,
	}
}

// PresetDownPayment is the 20% down payment applied when a preset vehicle is
// picked, rounded to the nearest dollar.
func PresetDownPayment(price float64) float64 {
	return math.Round(price * PresetDownRatio)
}

// DownPaymentRange returns the slider bounds for a price.
func DownPaymentRange(price float64) (lo, hi float64) {
	return price * MinDownPaymentRatio, price * MaxDownPaymentRatio
}

// ClampRequest forces interactive inputs into the ranges the sliders allow:
// down payment within [10%, 50%] of price, rate within [2%, 12%] rounded to
// the slider step, and a term from Terms (the nearest one when off-list).
// A non-positive price is left untouched so Calculate reports it as absent.
func ClampRequest(req LoanRequest) LoanRequest {
	if req.VehiclePrice > 0 {
		lo, hi := DownPaymentRange(req.VehiclePrice)
		req.DownPayment = clamp(req.DownPayment, lo, hi)
	}
	req.AnnualRatePercent = clamp(math.Round(req.AnnualRatePercent/RateStep)*RateStep, MinRatePercent, MaxRatePercent)
	req.TermMonths = nearestTerm(req.TermMonths)
	return req
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func nearestTerm(n int) int {
	best := Terms[0]
	for _, t := range Terms {
		if abs(t-n) < abs(best-n) {
			best = t
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
