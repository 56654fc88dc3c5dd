// Package format renders monetary amounts for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"PEN": "S/",
	"USD": "$",
	"EUR": "€",
}

// Symbol returns the display symbol for an ISO currency code. Unknown codes
// are returned as-is and an empty code maps to "$".
func Symbol(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return "$"
	}
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code + " "
}

// Currency returns a currency string with the currency symbol and thousands
// separators (e.g., "-S/1,234.56").
func Currency(amount float64, currency string) string {
	symbol := Symbol(currency)
	value := decimal.NewFromFloat(amount).Round(2)
	if value.IsNegative() {
		return "-" + symbol + groupThousands(value.Abs().StringFixed(2))
	}
	return symbol + groupThousands(value.StringFixed(2))
}

// Percent renders a percentage value with the given number of decimals.
func Percent(value float64, places int32) string {
	return decimal.NewFromFloat(value).StringFixed(places) + "%"
}

func groupThousands(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
