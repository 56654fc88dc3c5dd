package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"go.uber.org/zap"
)

func testReports() []Report {
	config := loans.LoanConfig{
		Currency:   "PEN",
		RateType:   loans.RateEffective,
		RateValue:  12,
		TermMonths: 12,
		GraceType:  loans.GraceNone,
	}
	return []Report{
		{
			Name:   "Test Simulation",
			Config: config,
			Result: loans.Simulate(zap.NewNop(), 100000, config),
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testReports())
	output := buf.String()

	expected := []string{
		"--- Results for simulation Test Simulation ---",
		"Period | Opening balance | Installment | Interest | Principal | Closing balance",
		"S/100,000.00",
		"S/8,856.21",
		"Total paid:     S/106,274.48",
		"Monthly rate:   0.948879%",
		"IRR (annual):   12.000000%",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}
}

func TestPrettyFormatIndeterminateIRR(t *testing.T) {
	config := loans.LoanConfig{Currency: "USD", RateType: loans.RateEffective, RateValue: 0, TermMonths: 4, GraceType: loans.GraceNone}
	reports := []Report{{Name: "Zero", Config: config, Result: loans.Simulate(nil, 400, config)}}

	var buf bytes.Buffer
	PrettyFormat(&buf, reports)

	if !strings.Contains(buf.String(), "IRR (monthly):  indeterminate") {
		t.Errorf("expected indeterminate IRR line, got\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "$100.00") {
		t.Errorf("expected dollar installments, got\n%s", buf.String())
	}
}

func TestCsvString(t *testing.T) {
	csv := CsvString(testReports())
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if len(lines) != 13 {
		t.Fatalf("expected header plus 12 rows, got %d lines", len(lines))
	}
	if lines[0] != `"simulation","period","openingBalance","installment","interest","principalPortion","closingBalance"` {
		t.Errorf("unexpected header %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Test Simulation","1","100000.00","8856.21","948.88"`) {
		t.Errorf("unexpected first row %s", lines[1])
	}
}

func TestCsvFormatMatchesCsvString(t *testing.T) {
	reports := testReports()
	var buf bytes.Buffer
	CsvFormat(&buf, reports)

	if buf.String() != CsvString(reports) {
		t.Error("CsvFormat output differs from CsvString")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testReports()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 report, got %d", len(decoded))
	}
	result, ok := decoded[0]["result"].(map[string]interface{})
	if !ok {
		t.Fatal("expected result object")
	}
	for _, key := range []string{"schedule", "summary", "cashFlows"} {
		if _, ok := result[key]; !ok {
			t.Errorf("expected key %s in result", key)
		}
	}
}
