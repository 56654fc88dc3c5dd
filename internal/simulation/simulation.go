// Package simulation runs the configured simulations and collects their
// results for output.
package simulation

import (
	"fmt"

	"github.com/iwvelando/mortgage-simulator/internal/config"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/output"
	"github.com/iwvelando/mortgage-simulator/pkg/validation"
	"go.uber.org/zap"
)

// Run simulates every enabled simulation of conf in order. Simulations whose
// inputs or results are out of range are logged and left out.
func Run(logger *zap.Logger, conf config.Configuration) []output.Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	var reports []output.Report
	for _, sim := range conf.Simulations {
		if sim.Disabled {
			logger.Debug(fmt.Sprintf("skipping simulation %s because it is disabled", sim.Name),
				zap.String("op", "simulation.Run"),
			)
			continue
		}

		loanConfig := conf.LoanConfig(sim).Normalized()
		if err := validation.CheckLoanInputs(sim.Principal, loanConfig); err != nil {
			logger.Error("skipping simulation with invalid inputs",
				zap.String("op", "simulation.Run"),
				zap.String("simulation", sim.Name),
				zap.Error(err),
			)
			continue
		}

		result := loans.Simulate(logger.With(zap.String("simulation", sim.Name)), sim.Principal, loanConfig)
		if err := validation.CheckResult(result); err != nil {
			logger.Error("skipping simulation with non-finite results",
				zap.String("op", "simulation.Run"),
				zap.String("simulation", sim.Name),
				zap.Error(err),
			)
			continue
		}

		logger.Info("simulation completed",
			zap.String("op", "simulation.Run"),
			zap.String("simulation", sim.Name),
			zap.Int("periods", len(result.Schedule)),
			zap.Bool("irrDetermined", result.Summary.HasIRR()),
		)

		reports = append(reports, output.Report{
			Name:   sim.Name,
			Config: loanConfig,
			Result: result,
		})
	}

	return reports
}
