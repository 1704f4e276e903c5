// Package exitreturn models the end of the hold: sale proceeds, taxes on the
// way out, and whole-period return metrics over the cash-flow stream.
package exitreturn

import (
	"math"
)

// Newton-Raphson bounds for IRR. The rate clamp prevents divergence on
// pathological streams; the iteration cap guarantees termination with a
// best-effort estimate.
const (
	irrMaxIterations = 100
	irrTolerance     = 1e-4
	irrMinRate       = -0.99
	irrMaxRate       = 10.0
)

// NPV discounts a cash-flow stream at the given rate. flows[0] is time zero
// (typically the negative initial investment) and is not discounted.
func NPV(flows []float64, rate float64) float64 {
	var npv float64
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// npvDerivative is d(NPV)/d(rate) for the Newton step.
func npvDerivative(flows []float64, rate float64) float64 {
	var d float64
	for t := 1; t < len(flows); t++ {
		d -= float64(t) * flows[t] / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// IRR finds the discount rate that zeroes the stream's NPV via
// Newton-Raphson: 100 iteration cap, 1e-4 tolerance, rate clamped to
// [-0.99, 10]. If the derivative underflows the iteration stops early and
// returns the last estimate; the routine always terminates. Returns 0 for
// streams with no sign change (no IRR exists).
func IRR(flows []float64) float64 {
	if len(flows) < 2 || !hasSignChange(flows) {
		return 0
	}

	rate := 0.10 // conventional starting guess
	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(flows, rate)
		if math.Abs(npv) < irrTolerance {
			return rate
		}

		derivative := npvDerivative(flows, rate)
		if math.Abs(derivative) < 1e-12 {
			// Flat spot: a further step would explode. Best effort.
			return rate
		}

		rate -= npv / derivative
		if rate < irrMinRate {
			rate = irrMinRate
		}
		if rate > irrMaxRate {
			rate = irrMaxRate
		}
	}
	return rate
}

func hasSignChange(flows []float64) bool {
	var pos, neg bool
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// MIRR discounts negative flows to present value at the finance rate,
// compounds positive flows to terminal value at the reinvestment rate, and
// takes the n-th root of their ratio.
//
// FORMULA: MIRR = (FV_positive / -PV_negative)^(1/n) - 1
func MIRR(flows []float64, financeRate, reinvestRate float64) float64 {
	n := len(flows) - 1
	if n < 1 {
		return 0
	}

	var pvNegative, fvPositive float64
	for t, cf := range flows {
		if cf < 0 {
			pvNegative += cf / math.Pow(1+financeRate, float64(t))
		} else if cf > 0 {
			fvPositive += cf * math.Pow(1+reinvestRate, float64(n-t))
		}
	}

	if pvNegative == 0 || fvPositive == 0 {
		return 0
	}
	return math.Pow(fvPositive/-pvNegative, 1/float64(n)) - 1
}

// PaybackPeriod walks cumulative cash flow until it meets or exceeds the
// initial investment. flows excludes time zero; exitProceeds is credited in
// the final period if the explicit flows never cover the investment. Returns
// -1 when the investment is never recovered.
func PaybackPeriod(initialInvestment float64, flows []float64, exitProceeds float64) float64 {
	if initialInvestment <= 0 {
		return 0
	}

	var cumulative float64
	for i, cf := range flows {
		prev := cumulative
		cumulative += cf
		if cumulative >= initialInvestment {
			// Linear interpolation inside the crossing period.
			if cf > 0 {
				return float64(i) + (initialInvestment-prev)/cf
			}
			return float64(i + 1)
		}
	}

	if cumulative+exitProceeds >= initialInvestment {
		return float64(len(flows))
	}
	return -1
}
