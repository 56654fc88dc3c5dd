// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
)

// ValidateLoanConfig checks a simulation's inputs and returns warnings for
// values the engine will coerce or fall back on. None of them prevent the
// simulation from running.
func ValidateLoanConfig(name string, principal float64, config loans.LoanConfig) []string {
	var warnings []string

	if principal <= 0 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has non-positive principal %.2f", name, principal))
	}

	if config.TermMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has non-positive term of %d months - schedule will be empty",
			name, config.TermMonths))
	}

	if config.TermMonths > constants.MaxTermMonths {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has term of %d months above the maximum of %d - simulation will be skipped",
			name, config.TermMonths, constants.MaxTermMonths))
	}

	if !config.RateType.Known() {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has unrecognized rate type '%s' - treating as nominal",
			name, config.RateType))
	}

	if config.RateType.Normalize() != loans.RateEffective && !config.Capitalization.Known() {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has unrecognized capitalization '%s' - compounding annually",
			name, config.Capitalization))
	}

	if config.RateValue < 0 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has negative rate %.4f%% - treating as zero interest",
			name, config.RateValue))
	}

	if !config.GraceType.Known() {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has unrecognized grace type '%s' - treating as no grace",
			name, config.GraceType))
	}

	if config.GraceMonths < 0 || (config.TermMonths >= 0 && config.GraceMonths > config.TermMonths) {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' has grace of %d months outside [0, %d] - value will be clamped",
			name, config.GraceMonths, config.TermMonths))
	}

	return warnings
}
