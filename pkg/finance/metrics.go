// Package finance provides discounted cash-flow metrics for loan simulations.
package finance

import (
	"math"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
)

// NPV discounts each flow at index t by t periods at ratePerPeriod and sums
// the result. The flow at index 0 is undiscounted.
func NPV(ratePerPeriod float64, cashFlows []float64) float64 {
	npv := 0.0
	for t, flow := range cashFlows {
		npv += flow / math.Pow(1+ratePerPeriod, float64(t))
	}
	return npv
}

// IRR finds the periodic rate at which the NPV of cashFlows is zero by
// bisection over [IRRLowerBound, IRRUpperBound]. The second return value is
// false when no rate satisfied the tolerance within the iteration budget.
//
// The search assumes exactly one root inside the interval; sign patterns with
// no root or several roots there are reported as indeterminate or may return
// an arbitrary one of the roots.
func IRR(cashFlows []float64) (float64, bool) {
	low := constants.IRRLowerBound
	high := constants.IRRUpperBound

	for iter := 0; iter < constants.IRRMaxIterations; iter++ {
		mid := (low + high) / 2
		npvMid := NPV(mid, cashFlows)

		if math.Abs(npvMid) < constants.IRRTolerance {
			return mid, true
		}

		npvLow := NPV(low, cashFlows)
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
		}
	}

	return 0, false
}

// AnnualizeMonthlyRate compounds a monthly rate over twelve months.
func AnnualizeMonthlyRate(monthly float64) float64 {
	return math.Pow(1+monthly, constants.MonthsPerYear) - 1
}
