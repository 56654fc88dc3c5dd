// Package adapters translates externally computed simulation results into the
// canonical loans.Result shape.
package adapters

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/mathutil"
)

// Field name candidates accepted from an external service. Both camelCase and
// PascalCase spellings are seen in practice.
var (
	summaryKeys       = []string{"summary", "Summary"}
	scheduleKeys      = []string{"schedule", "Schedule"}
	principalKeys     = []string{"principal", "Principal"}
	termMonthsKeys    = []string{"termMonths", "TermMonths"}
	monthlyRateKeys   = []string{"monthlyRate", "MonthlyRate"}
	monthKeys         = []string{"month", "Month"}
	paymentKeys       = []string{"payment", "Payment"}
	interestKeys      = []string{"interest", "Interest"}
	principalPaidKeys = []string{"principalPaid", "PrincipalPaid"}
	balanceKeys       = []string{"balance", "Balance"}
)

// BackendPayment is one row of an externally computed schedule.
type BackendPayment struct {
	Month         int
	Payment       float64
	Interest      float64
	PrincipalPaid float64
	Balance       float64
}

// BackendResult is an externally computed schedule and summary after field
// name reconciliation. MonthlyRate is a percentage.
type BackendResult struct {
	Principal   float64
	TermMonths  int
	MonthlyRate float64
	Schedule    []BackendPayment
}

// DecodeBackendResult parses a JSON document produced by an external
// simulation service.
func DecodeBackendResult(data []byte) (BackendResult, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return BackendResult{}, fmt.Errorf("failed to decode backend result: %w", err)
	}
	return ParseBackendResult(raw)
}

// ParseBackendResult reconciles the field names of a decoded backend result.
func ParseBackendResult(raw map[string]interface{}) (BackendResult, error) {
	var result BackendResult

	if rawSummary, ok := lookup(raw, summaryKeys); ok {
		summary, ok := rawSummary.(map[string]interface{})
		if !ok {
			return BackendResult{}, fmt.Errorf("invalid summary: expected object, got %T", rawSummary)
		}
		result.Principal = number(summary, principalKeys)
		result.TermMonths = int(number(summary, termMonthsKeys))
		result.MonthlyRate = number(summary, monthlyRateKeys)
	}

	if rawSchedule, ok := lookup(raw, scheduleKeys); ok {
		rows, ok := rawSchedule.([]interface{})
		if !ok {
			return BackendResult{}, fmt.Errorf("invalid schedule: expected array, got %T", rawSchedule)
		}
		for i, rawRow := range rows {
			row, ok := rawRow.(map[string]interface{})
			if !ok {
				return BackendResult{}, fmt.Errorf("invalid schedule row %d: expected object, got %T", i, rawRow)
			}
			result.Schedule = append(result.Schedule, BackendPayment{
				Month:         int(number(row, monthKeys)),
				Payment:       number(row, paymentKeys),
				Interest:      number(row, interestKeys),
				PrincipalPaid: number(row, principalPaidKeys),
				Balance:       number(row, balanceKeys),
			})
		}
	}

	return result, nil
}

// AdaptBackendResult converts an external result into a loans.Result using
// the loan configuration the simulation was requested with. Rows inside a
// total grace window are rewritten to the zero-installment display
// convention, and cash flows, totals and metrics are recomputed from the
// adapted rows.
func AdaptBackendResult(backend BackendResult, snapshot *loans.LoanConfig) loans.Result {
	graceType := loans.GraceNone
	graceMonths := 0
	if snapshot != nil {
		graceType = snapshot.GraceType.Normalize()
		graceMonths = snapshot.GraceMonths
		if graceMonths < 0 {
			graceMonths = 0
		}
	}

	monthlyRate := mathutil.FromPercent(backend.MonthlyRate)
	if backend.MonthlyRate == 0 && snapshot != nil {
		monthlyRate = loans.MonthlyRate(*snapshot)
	}

	schedule := make([]loans.ScheduleRow, 0, len(backend.Schedule))
	cashFlows := make([]float64, 0, len(backend.Schedule)+1)
	cashFlows = append(cashFlows, -backend.Principal)

	previousBalance := backend.Principal
	for index, payment := range backend.Schedule {
		row := loans.ScheduleRow{
			Period:           payment.Month,
			OpeningBalance:   previousBalance,
			Installment:      payment.Payment,
			Interest:         payment.Interest,
			PrincipalPortion: payment.PrincipalPaid,
			ClosingBalance:   payment.Balance,
		}

		if graceType == loans.GraceTotal && index < graceMonths {
			row.Installment = 0
			row.Interest = 0
			row.PrincipalPortion = 0
			row.ClosingBalance = row.OpeningBalance * (1 + monthlyRate)
		}

		schedule = append(schedule, row)
		cashFlows = append(cashFlows, row.Installment)
		previousBalance = row.ClosingBalance
	}

	summary := loans.Summarize(backend.Principal, backend.TermMonths, monthlyRate, schedule, cashFlows)
	return loans.Result{Schedule: schedule, Summary: summary, CashFlows: cashFlows}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// lookup returns the first non-null value under keys.
func lookup(m map[string]interface{}, keys []string) (interface{}, bool) {
	for _, key := range keys {
		if value, ok := m[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// number returns the first non-zero numeric value under keys, or 0.
func number(m map[string]interface{}, keys []string) float64 {
	for _, key := range keys {
		value, ok := m[key]
		if !ok {
			continue
		}
		if n := coerceFloat(value); n != 0 {
			return n
		}
	}
	return 0
}

func coerceFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return 0
}
