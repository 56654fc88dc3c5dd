package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// ScheduleRow holds the values for a given period of the schedule.
type ScheduleRow struct {
	Period           int     `json:"period" parquet:"period"`
	OpeningBalance   float64 `json:"openingBalance" parquet:"opening_balance"`
	Installment      float64 `json:"installment" parquet:"installment"`
	Interest         float64 `json:"interest" parquet:"interest"`
	PrincipalPortion float64 `json:"principalPortion" parquet:"principal_portion"`
	ClosingBalance   float64 `json:"closingBalance" parquet:"closing_balance"`
}

// FrenchInstallment calculates the fixed installment that amortizes balance
// over periods at the given periodic rate.
func FrenchInstallment(balance, rate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if rate == 0 {
		// Compounding is degenerate, so amortize straight-line
		return balance / float64(periods)
	}
	return balance * rate / (1 - math.Pow(1+rate, -float64(periods)))
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the amortization schedule for principal under the
// given configuration, together with the lender's cash-flow vector. The
// cash-flow vector always has TermMonths+1 entries: the disbursement as a
// negative amount followed by every installment received.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal float64, config LoanConfig) ([]ScheduleRow, []float64) {
	termMonths := config.TermMonths
	if termMonths < 0 {
		termMonths = 0
	}
	graceMonths := mathutil.Clamp(config.GraceMonths, 0, termMonths)
	graceType := config.GraceType.Normalize()
	monthlyRate := MonthlyRate(config)

	schedule := make([]ScheduleRow, 0, termMonths)
	cashFlows := make([]float64, 0, termMonths+1)
	cashFlows = append(cashFlows, -principal)

	balance := principal
	period := 1

	switch {
	case graceType == GraceTotal && graceMonths > 0:
		g.logger.Debug(fmt.Sprintf("capitalizing interest over %d months of total grace", graceMonths),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("monthlyRate", monthlyRate),
		)
		for k := 0; k < graceMonths; k++ {
			// Interest accrues into the balance and is displayed as zero
			opening := balance
			closing := opening * (1 + monthlyRate)
			schedule = append(schedule, ScheduleRow{
				Period:         period,
				OpeningBalance: opening,
				ClosingBalance: closing,
			})
			cashFlows = append(cashFlows, 0)
			balance = closing
			period++
		}
	case graceType == GracePartial && graceMonths > 0:
		g.logger.Debug(fmt.Sprintf("charging interest only over %d months of partial grace", graceMonths),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("monthlyRate", monthlyRate),
		)
		for k := 0; k < graceMonths; k++ {
			interest := balance * monthlyRate
			schedule = append(schedule, ScheduleRow{
				Period:         period,
				OpeningBalance: balance,
				Installment:    interest,
				Interest:       interest,
				ClosingBalance: balance,
			})
			cashFlows = append(cashFlows, interest)
			period++
		}
	default:
		// Without a total or partial grace type the whole term amortizes.
		if graceMonths > 0 {
			g.logger.Debug(fmt.Sprintf("ignoring %d grace months for grace type %q", graceMonths, string(config.GraceType)),
				zap.String("op", "loans.GenerateSchedule"),
			)
		}
		graceMonths = 0
	}

	remainingMonths := termMonths - graceMonths

	if remainingMonths > 0 {
		installment := FrenchInstallment(balance, monthlyRate, remainingMonths)
		g.logger.Debug(fmt.Sprintf("amortizing %.2f over %d months with installment %.2f",
			balance, remainingMonths, installment),
			zap.String("op", "loans.GenerateSchedule"),
		)
		for k := 0; k < remainingMonths; k++ {
			opening := balance
			interest := opening * monthlyRate
			principalPortion := installment - interest
			closing := opening - principalPortion
			schedule = append(schedule, ScheduleRow{
				Period:           period,
				OpeningBalance:   opening,
				Installment:      installment,
				Interest:         interest,
				PrincipalPortion: principalPortion,
				ClosingBalance:   closing,
			})
			cashFlows = append(cashFlows, installment)
			balance = closing
			period++
		}
	}

	return schedule, cashFlows
}
