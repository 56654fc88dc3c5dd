// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving simulations.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"github.com/iwvelando/mortgage-simulator/pkg/loans"
	"github.com/iwvelando/mortgage-simulator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-simulator.
type Configuration struct {
	Defaults    LoanSettings  `yaml:"defaults,omitempty"`
	Simulations []Simulation  `yaml:"simulations"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Export      ExportConfig  `yaml:"export,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// ExportConfig holds the optional schedule export destination.
type ExportConfig struct {
	Destination string `yaml:"destination,omitempty"` // directory or s3://bucket/prefix
	Profile     string `yaml:"profile,omitempty"`     // AWS profile for S3 destinations
}

// LoanSettings holds loan parameters where every field is optional. Unset
// fields are inherited from the next layer of defaults.
type LoanSettings struct {
	Currency       string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	RateType       string   `json:"rateType,omitempty" yaml:"rateType,omitempty"`
	RateValue      *float64 `json:"rateValue,omitempty" yaml:"rateValue,omitempty"`
	Capitalization string   `json:"capitalization,omitempty" yaml:"capitalization,omitempty"`
	TermMonths     *int     `json:"termMonths,omitempty" yaml:"termMonths,omitempty"`
	GraceType      string   `json:"graceType,omitempty" yaml:"graceType,omitempty"`
	GraceMonths    *int     `json:"graceMonths,omitempty" yaml:"graceMonths,omitempty"`
}

// Simulation is one named loan to simulate.
type Simulation struct {
	Name       string       `yaml:"name"`
	Disabled   bool         `yaml:"disabled,omitempty"`
	Principal  float64      `yaml:"principal"`
	ClientID   string       `yaml:"clientId,omitempty"`
	PropertyID string       `yaml:"propertyId,omitempty"`
	Loan       LoanSettings `yaml:"loan,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := loans.DefaultLoanConfig()
	v.SetDefault("defaults.currency", defaults.Currency)
	v.SetDefault("defaults.rateType", string(defaults.RateType))
	v.SetDefault("defaults.rateValue", defaults.RateValue)
	v.SetDefault("defaults.capitalization", string(defaults.Capitalization))
	v.SetDefault("defaults.termMonths", defaults.TermMonths)
	v.SetDefault("defaults.graceType", string(defaults.GraceType))
	v.SetDefault("defaults.graceMonths", defaults.GraceMonths)
	v.SetDefault("output.format", constants.OutputFormatPretty)

	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Apply overlays the fields set in s onto base.
func (s LoanSettings) Apply(base loans.LoanConfig) loans.LoanConfig {
	if s.Currency != "" {
		base.Currency = s.Currency
	}
	if s.RateType != "" {
		base.RateType = loans.RateType(s.RateType)
	}
	if s.RateValue != nil {
		base.RateValue = *s.RateValue
	}
	if s.Capitalization != "" {
		base.Capitalization = loans.Capitalization(s.Capitalization)
	}
	if s.TermMonths != nil {
		base.TermMonths = *s.TermMonths
	}
	if s.GraceType != "" {
		base.GraceType = loans.GraceType(s.GraceType)
	}
	if s.GraceMonths != nil {
		base.GraceMonths = *s.GraceMonths
	}
	return base
}

// LoanConfig resolves the loan configuration of a simulation: built-in
// defaults, then the configuration's defaults section, then the simulation's
// own settings.
func (conf *Configuration) LoanConfig(sim Simulation) loans.LoanConfig {
	return sim.Loan.Apply(conf.Defaults.Apply(loans.DefaultLoanConfig()))
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Simulations) == 0 {
		warnings = append(warnings, "No simulations configured")
	}

	seen := make(map[string]bool)
	for i, sim := range conf.Simulations {
		name := sim.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Simulation %s has no name", name))
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Simulation '%s' is defined more than once", name))
		}
		seen[name] = true

		if sim.Disabled {
			continue
		}
		warnings = append(warnings, validation.ValidateLoanConfig(name, sim.Principal, conf.LoanConfig(sim))...)
	}

	return warnings
}
