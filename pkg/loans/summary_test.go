package loans

import (
	"encoding/json"
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestSummarize(t *testing.T) {
	schedule := []ScheduleRow{
		{Period: 1, OpeningBalance: 1000, Installment: 0, Interest: 0, ClosingBalance: 1010},
		{Period: 2, OpeningBalance: 1010, Installment: 515.05, Interest: 10.10, PrincipalPortion: 504.95, ClosingBalance: 505.05},
		{Period: 3, OpeningBalance: 505.05, Installment: 510.10, Interest: 5.05, PrincipalPortion: 505.05, ClosingBalance: 0},
	}
	cashFlows := []float64{-1000, 0, 515.05, 510.10}

	summary := Summarize(1000, 3, 0.01, schedule, cashFlows)

	if summary.Principal != 1000 || summary.TermMonths != 3 {
		t.Errorf("unexpected principal/term: %+v", summary)
	}
	if math.Abs(summary.MonthlyRate-1.0) > 1e-12 {
		t.Errorf("MonthlyRate = %.6f, expected 1.0 percent", summary.MonthlyRate)
	}
	if math.Abs(summary.TotalPaid-1025.15) > 1e-9 {
		t.Errorf("TotalPaid = %.6f, expected 1025.15", summary.TotalPaid)
	}
	if math.Abs(summary.TotalInterest-15.15) > 1e-9 {
		t.Errorf("TotalInterest = %.6f, expected 15.15", summary.TotalInterest)
	}

	expectedNPV := -1000 + 515.05/math.Pow(1.01, 2) + 510.10/math.Pow(1.01, 3)
	if math.Abs(summary.NPV-expectedNPV) > 1e-9 {
		t.Errorf("NPV = %.6f, expected %.6f", summary.NPV, expectedNPV)
	}
}

func TestSimulateIRRRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		config LoanConfig
	}{
		{
			name:   "Effective without grace",
			config: LoanConfig{RateType: RateEffective, RateValue: 12, TermMonths: 12, GraceType: GraceNone},
		},
		{
			name:   "Nominal long term",
			config: LoanConfig{RateType: RateNominal, RateValue: 9.5, Capitalization: CapitalizationMonthly, TermMonths: 240, GraceType: GraceNone},
		},
		{
			name:   "Total grace",
			config: LoanConfig{RateType: RateEffective, RateValue: 12, TermMonths: 12, GraceType: GraceTotal, GraceMonths: 3},
		},
		{
			name:   "Partial grace",
			config: LoanConfig{RateType: RateEffective, RateValue: 15, TermMonths: 60, GraceType: GracePartial, GraceMonths: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Simulate(zap.NewNop(), 100000, tt.config)
			rate := MonthlyRate(tt.config)

			if !result.Summary.HasIRR() {
				t.Fatal("expected IRR to converge")
			}
			if math.Abs(*result.Summary.IRRMonthly-rate) > 1e-6 {
				t.Errorf("IRRMonthly = %.8f, expected %.8f", *result.Summary.IRRMonthly, rate)
			}
			expectedAnnual := math.Pow(1+*result.Summary.IRRMonthly, 12) - 1
			if math.Abs(*result.Summary.IRRAnnual-expectedAnnual) > 1e-12 {
				t.Errorf("IRRAnnual = %.8f, expected %.8f", *result.Summary.IRRAnnual, expectedAnnual)
			}
			// Discounting at the loan's own rate leaves nothing over.
			if math.Abs(result.Summary.NPV) > 1e-4 {
				t.Errorf("NPV = %g, expected about 0", result.Summary.NPV)
			}
			if len(result.CashFlows) != tt.config.TermMonths+1 {
				t.Errorf("expected %d cash flows, got %d", tt.config.TermMonths+1, len(result.CashFlows))
			}
		})
	}
}

func TestSimulateTotalGraceTotals(t *testing.T) {
	config := LoanConfig{RateType: RateEffective, RateValue: 12, TermMonths: 12, GraceType: GraceTotal, GraceMonths: 3}
	result := Simulate(nil, 100000, config)

	var paid float64
	for _, row := range result.Schedule {
		paid += row.Installment
	}
	if math.Abs(result.Summary.TotalPaid-paid) > 1e-9 {
		t.Errorf("TotalPaid = %.6f, expected %.6f", result.Summary.TotalPaid, paid)
	}

	// Capitalized grace interest is not displayed, so the displayed interest
	// only covers the amortizing rows.
	grown := result.Schedule[3].OpeningBalance
	if math.Abs(result.Summary.TotalInterest-(result.Summary.TotalPaid-grown)) > 1e-6 {
		t.Errorf("TotalInterest = %.6f, expected %.6f", result.Summary.TotalInterest, result.Summary.TotalPaid-grown)
	}
}

func TestSimulateIndeterminateIRRSerializesAsNull(t *testing.T) {
	config := LoanConfig{RateType: RateEffective, RateValue: 0, TermMonths: 10, GraceType: GraceNone}
	result := Simulate(zap.NewNop(), 1000, config)

	if result.Summary.HasIRR() {
		t.Fatalf("expected indeterminate IRR for zero-rate loan, got %v", *result.Summary.IRRMonthly)
	}
	if result.Summary.IRRAnnual != nil {
		t.Fatal("expected annual IRR to be absent when monthly IRR is absent")
	}

	data, err := json.Marshal(result.Summary)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"irrMonthly", "irrAnnual"} {
		value, ok := decoded[key]
		if !ok {
			t.Errorf("expected key %s in summary JSON", key)
		}
		if value != nil {
			t.Errorf("expected %s to be null, got %v", key, value)
		}
	}
}
