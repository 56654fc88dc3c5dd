// Package loans provides the loan simulation engine: rate conversion, French
// amortization schedules with optional grace periods, and result summaries.
package loans

import (
	"strings"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
)

// RateType tells how the annual rate of a LoanConfig is quoted.
type RateType string

// Capitalization is the compounding frequency of a nominal annual rate.
type Capitalization string

// GraceType selects how the first GraceMonths periods of a loan are handled.
type GraceType string

const (
	RateEffective RateType = "effective"
	RateNominal   RateType = "nominal"
)

const (
	CapitalizationMonthly    Capitalization = "monthly"
	CapitalizationBimonthly  Capitalization = "bimonthly"
	CapitalizationQuarterly  Capitalization = "quarterly"
	CapitalizationSemiannual Capitalization = "semiannual"
	CapitalizationAnnual     Capitalization = "annual"
)

const (
	GraceNone    GraceType = "none"
	GraceTotal   GraceType = "total"
	GracePartial GraceType = "partial"
)

var rateTypeAliases = map[string]RateType{
	"effective": RateEffective,
	"efectiva":  RateEffective,
	"tea":       RateEffective,
	"nominal":   RateNominal,
	"tna":       RateNominal,
}

var capitalizationAliases = map[string]Capitalization{
	"monthly":    CapitalizationMonthly,
	"mensual":    CapitalizationMonthly,
	"bimonthly":  CapitalizationBimonthly,
	"bimestral":  CapitalizationBimonthly,
	"quarterly":  CapitalizationQuarterly,
	"trimestral": CapitalizationQuarterly,
	"semiannual": CapitalizationSemiannual,
	"semestral":  CapitalizationSemiannual,
	"annual":     CapitalizationAnnual,
	"anual":      CapitalizationAnnual,
}

var graceTypeAliases = map[string]GraceType{
	"none":    GraceNone,
	"sin":     GraceNone,
	"total":   GraceTotal,
	"partial": GracePartial,
	"parcial": GracePartial,
}

// Normalize maps a rate type alias to its canonical value. Unknown values are
// returned unchanged.
func (r RateType) Normalize() RateType {
	if canonical, ok := rateTypeAliases[normalizeKey(string(r))]; ok {
		return canonical
	}
	return r
}

// Known reports whether the value is a recognized rate type or alias.
func (r RateType) Known() bool {
	_, ok := rateTypeAliases[normalizeKey(string(r))]
	return ok
}

// Normalize maps a capitalization alias to its canonical value. Unknown
// values are returned unchanged.
func (c Capitalization) Normalize() Capitalization {
	if canonical, ok := capitalizationAliases[normalizeKey(string(c))]; ok {
		return canonical
	}
	return c
}

// Known reports whether the value is a recognized capitalization or alias.
func (c Capitalization) Known() bool {
	_, ok := capitalizationAliases[normalizeKey(string(c))]
	return ok
}

// Normalize maps a grace type alias to its canonical value. Unknown values
// are returned unchanged.
func (g GraceType) Normalize() GraceType {
	if canonical, ok := graceTypeAliases[normalizeKey(string(g))]; ok {
		return canonical
	}
	return g
}

// Known reports whether the value is a recognized grace type or alias.
func (g GraceType) Known() bool {
	_, ok := graceTypeAliases[normalizeKey(string(g))]
	return ok
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LoanConfig holds the rate, term and grace settings of a simulation.
type LoanConfig struct {
	Currency       string         `json:"currency,omitempty" yaml:"currency,omitempty"`
	RateType       RateType       `json:"rateType" yaml:"rateType"`
	RateValue      float64        `json:"rateValue" yaml:"rateValue"` // annual, percent
	Capitalization Capitalization `json:"capitalization,omitempty" yaml:"capitalization,omitempty"`
	TermMonths     int            `json:"termMonths" yaml:"termMonths"` // includes grace months
	GraceType      GraceType      `json:"graceType" yaml:"graceType"`
	GraceMonths    int            `json:"graceMonths" yaml:"graceMonths"`
}

// DefaultLoanConfig returns the configuration applied to fields a caller
// leaves unset.
func DefaultLoanConfig() LoanConfig {
	return LoanConfig{
		Currency:       constants.DefaultCurrency,
		RateType:       constants.DefaultRateType,
		RateValue:      constants.DefaultRateValue,
		Capitalization: constants.DefaultCapitalization,
		TermMonths:     constants.DefaultTermMonths,
		GraceType:      constants.DefaultGraceType,
		GraceMonths:    constants.DefaultGraceMonths,
	}
}

// Normalized returns a copy with all enum aliases replaced by canonical values.
func (c LoanConfig) Normalized() LoanConfig {
	c.RateType = c.RateType.Normalize()
	c.Capitalization = c.Capitalization.Normalize()
	c.GraceType = c.GraceType.Normalize()
	return c
}
