package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
)

// ErrNonFinite is returned when a simulation input or result is NaN or
// infinite.
var ErrNonFinite = errors.New("value is not a finite number")

// CheckLoanInputs rejects inputs the engine cannot simulate: non-finite
// principal or rate, and terms longer than constants.MaxTermMonths.
func CheckLoanInputs(principal float64, config loans.LoanConfig) error {
	if !isFinite(principal) {
		return fmt.Errorf("principal: %w", ErrNonFinite)
	}
	if !isFinite(config.RateValue) {
		return fmt.Errorf("rateValue: %w", ErrNonFinite)
	}
	if config.TermMonths > constants.MaxTermMonths {
		return fmt.Errorf("termMonths %d exceeds the maximum of %d", config.TermMonths, constants.MaxTermMonths)
	}
	return nil
}

// CheckResult reports the first NaN or infinite value in result.
func CheckResult(result loans.Result) error {
	summary := result.Summary
	fields := []struct {
		name  string
		value float64
	}{
		{"principal", summary.Principal},
		{"monthlyRate", summary.MonthlyRate},
		{"totalPaid", summary.TotalPaid},
		{"totalInterest", summary.TotalInterest},
		{"npv", summary.NPV},
	}
	for _, field := range fields {
		if !isFinite(field.value) {
			return fmt.Errorf("summary %s: %w", field.name, ErrNonFinite)
		}
	}
	if summary.IRRMonthly != nil && !isFinite(*summary.IRRMonthly) {
		return fmt.Errorf("summary irrMonthly: %w", ErrNonFinite)
	}
	if summary.IRRAnnual != nil && !isFinite(*summary.IRRAnnual) {
		return fmt.Errorf("summary irrAnnual: %w", ErrNonFinite)
	}

	for _, row := range result.Schedule {
		for _, value := range []float64{row.OpeningBalance, row.Installment, row.Interest, row.PrincipalPortion, row.ClosingBalance} {
			if !isFinite(value) {
				return fmt.Errorf("schedule period %d: %w", row.Period, ErrNonFinite)
			}
		}
	}

	for i, flow := range result.CashFlows {
		if !isFinite(flow) {
			return fmt.Errorf("cash flow %d: %w", i, ErrNonFinite)
		}
	}
	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
