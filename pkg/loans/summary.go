package loans

import (
	"github.com/iwvelando/mortgage-simulator/pkg/finance"
	"github.com/iwvelando/mortgage-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// Summary aggregates a schedule and its cash-flow metrics.
type Summary struct {
	Principal     float64  `json:"principal"`
	TermMonths    int      `json:"termMonths"`
	MonthlyRate   float64  `json:"monthlyRate"` // percent
	TotalPaid     float64  `json:"totalPaid"`
	TotalInterest float64  `json:"totalInterest"`
	NPV           float64  `json:"npv"`
	IRRMonthly    *float64 `json:"irrMonthly"`
	IRRAnnual     *float64 `json:"irrAnnual"`
}

// HasIRR reports whether the internal rate of return could be determined.
func (s Summary) HasIRR() bool {
	return s.IRRMonthly != nil
}

// Result is the complete output of a simulation.
type Result struct {
	Schedule  []ScheduleRow `json:"schedule"`
	Summary   Summary       `json:"summary"`
	CashFlows []float64     `json:"cashFlows"`
}

// Summarize reduces a schedule and its cash flows into a Summary. The
// monthly rate is a decimal and is stored in the Summary as a percentage.
func Summarize(principal float64, termMonths int, monthlyRate float64, schedule []ScheduleRow, cashFlows []float64) Summary {
	var totalPaid, totalInterest float64
	for _, row := range schedule {
		totalPaid += row.Installment
		totalInterest += row.Interest
	}

	summary := Summary{
		Principal:     principal,
		TermMonths:    termMonths,
		MonthlyRate:   mathutil.ToPercent(monthlyRate),
		TotalPaid:     totalPaid,
		TotalInterest: totalInterest,
		NPV:           finance.NPV(monthlyRate, cashFlows),
	}

	if irr, ok := finance.IRR(cashFlows); ok {
		annual := finance.AnnualizeMonthlyRate(irr)
		summary.IRRMonthly = &irr
		summary.IRRAnnual = &annual
	}

	return summary
}

// Simulate runs the full pipeline for principal under config: rate
// conversion, schedule generation and summary.
func Simulate(logger *zap.Logger, principal float64, config LoanConfig) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	generator := NewAmortizationScheduleGenerator(logger)
	schedule, cashFlows := generator.GenerateSchedule(principal, config)
	summary := Summarize(principal, config.TermMonths, MonthlyRate(config), schedule, cashFlows)

	if !summary.HasIRR() {
		logger.Warn("internal rate of return did not converge",
			zap.String("op", "loans.Simulate"),
			zap.Float64("principal", principal),
			zap.Int("termMonths", config.TermMonths),
		)
	}

	logger.Debug("simulation computed",
		zap.String("op", "loans.Simulate"),
		zap.Float64("principal", principal),
		zap.Int("periods", len(schedule)),
		zap.Float64("totalPaid", summary.TotalPaid),
		zap.Float64("totalInterest", summary.TotalInterest),
	)

	return Result{Schedule: schedule, Summary: summary, CashFlows: cashFlows}
}
