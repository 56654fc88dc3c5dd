// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/mortgage-simulator/pkg/output"
)

// FindReport finds a report by name in the reports slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(reports []output.Report, name string) *output.Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

// AlmostEqual reports whether got is within tolerance of expected.
func AlmostEqual(got, expected, tolerance float64) bool {
	return math.Abs(got-expected) <= tolerance
}
