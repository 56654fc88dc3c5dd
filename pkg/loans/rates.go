package loans

import (
	"math"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/mathutil"
)

// MonthlyRate converts the annual rate of a LoanConfig into a monthly
// effective rate expressed as a decimal. Zero and negative rates yield 0.
//
// Nominal rates are first converted to an annual effective rate using the
// configured capitalization and only then to a monthly rate.
func MonthlyRate(config LoanConfig) float64 {
	annual := mathutil.FromPercent(config.RateValue)
	if annual <= 0 {
		return 0
	}

	if config.RateType.Normalize() == RateEffective {
		return EffectiveToMonthly(annual)
	}

	m := CapitalizationsPerYear(config.Capitalization)
	return EffectiveToMonthly(NominalToEffective(annual, m))
}

// CapitalizationsPerYear resolves the number of compounding periods per year.
// Unrecognized values compound once a year.
func CapitalizationsPerYear(capitalization Capitalization) int {
	switch capitalization.Normalize() {
	case CapitalizationMonthly:
		return 12
	case CapitalizationBimonthly:
		return 6
	case CapitalizationQuarterly:
		return 4
	case CapitalizationSemiannual:
		return 2
	default:
		return 1
	}
}

// NominalToEffective converts an annual nominal rate compounded m times a
// year into an annual effective rate.
func NominalToEffective(nominal float64, m int) float64 {
	if m <= 0 {
		m = 1
	}
	return math.Pow(1+nominal/float64(m), float64(m)) - 1
}

// EffectiveToMonthly converts an annual effective rate into the equivalent
// monthly effective rate.
func EffectiveToMonthly(annual float64) float64 {
	return math.Pow(1+annual, 1.0/constants.MonthsPerYear) - 1
}
