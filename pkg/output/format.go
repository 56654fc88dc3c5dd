// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-simulator/pkg/format"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is a named simulation result ready for display.
type Report struct {
	Name   string           `json:"name"`
	Config loans.LoanConfig `json:"config"`
	Result loans.Result     `json:"result"`
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, reports []Report) {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		symbol := format.Symbol(report.Config.Currency)
		summary := report.Result.Summary

		fmt.Fprintf(w, "--- Results for simulation %s ---\n", report.Name)
		fmt.Fprintf(w, "Period | Opening balance | Installment | Interest | Principal | Closing balance\n")
		fmt.Fprintf(w, "______ | _______________ | ___________ | ________ | _________ | _______________\n")
		for _, row := range report.Result.Schedule {
			_, _ = p.Fprintf(w, "%6d | %s%.2f | %s%.2f | %s%.2f | %s%.2f | %s%.2f\n",
				row.Period,
				symbol, row.OpeningBalance,
				symbol, row.Installment,
				symbol, row.Interest,
				symbol, row.PrincipalPortion,
				symbol, row.ClosingBalance,
			)
		}

		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Principal:      %s\n", format.Currency(summary.Principal, report.Config.Currency))
		fmt.Fprintf(w, "Term:           %d months\n", summary.TermMonths)
		fmt.Fprintf(w, "Monthly rate:   %s\n", format.Percent(summary.MonthlyRate, 6))
		fmt.Fprintf(w, "Total paid:     %s\n", format.Currency(summary.TotalPaid, report.Config.Currency))
		fmt.Fprintf(w, "Total interest: %s\n", format.Currency(summary.TotalInterest, report.Config.Currency))
		fmt.Fprintf(w, "NPV:            %s\n", format.Currency(summary.NPV, report.Config.Currency))
		fmt.Fprintf(w, "IRR (monthly):  %s\n", formatOptionalRate(summary.IRRMonthly))
		fmt.Fprintf(w, "IRR (annual):   %s\n", formatOptionalRate(summary.IRRAnnual))

		if i < len(reports)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, reports []Report) {
	_, _ = io.WriteString(w, CsvString(reports))
}

// CsvString returns the CSV representation of the schedules of all reports.
func CsvString(reports []Report) string {
	var b strings.Builder
	b.WriteString(`"simulation","period","openingBalance","installment","interest","principalPortion","closingBalance"`)
	b.WriteString("\n")
	for _, report := range reports {
		name := strings.ReplaceAll(report.Name, `"`, `""`)
		for _, row := range report.Result.Schedule {
			fmt.Fprintf(&b, `"%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f"`,
				name, row.Period, row.OpeningBalance, row.Installment, row.Interest, row.PrincipalPortion, row.ClosingBalance)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// JSONFormat outputs the reports as an indented JSON array.
func JSONFormat(w io.Writer, reports []Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

func formatOptionalRate(rate *float64) string {
	if rate == nil {
		return "indeterminate"
	}
	return format.Percent(*rate*100, 6)
}
