package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-simulator/pkg/loans"
)

const testConfigYAML = `defaults:
  currency: USD
  rateValue: 9.5
logging:
  level: debug
  format: console
output:
  format: csv
export:
  destination: s3://bucket/schedules
simulations:
  - name: inherit everything
    principal: 250000
  - name: total grace
    principal: 100000
    clientId: client-7
    loan:
      rateType: efectiva
      rateValue: 12
      termMonths: 12
      graceType: total
      graceMonths: 3
  - name: zero rate
    principal: 1000
    loan:
      rateValue: 0
      termMonths: 10
  - name: skipped
    disabled: true
    principal: 1
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: filepath.Join("..", "..", "config.yaml.example"),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if len(conf.Simulations) != 4 {
		t.Fatalf("expected 4 simulations, got %d", len(conf.Simulations))
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, expected csv", conf.Output.Format)
	}
	if conf.Export.Destination != "s3://bucket/schedules" {
		t.Errorf("Export.Destination = %s", conf.Export.Destination)
	}
	if conf.Simulations[1].ClientID != "client-7" {
		t.Errorf("ClientID = %s, expected client-7", conf.Simulations[1].ClientID)
	}
	if !conf.Simulations[3].Disabled {
		t.Error("expected last simulation to be disabled")
	}
}

func TestLoanConfigLayering(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	tests := []struct {
		name     string
		index    int
		expected loans.LoanConfig
	}{
		{
			name:  "Built-in defaults with overridden currency and rate",
			index: 0,
			expected: loans.LoanConfig{
				Currency: "USD", RateType: "effective", RateValue: 9.5, Capitalization: "monthly",
				TermMonths: 240, GraceType: "none", GraceMonths: 0,
			},
		},
		{
			name:  "Simulation overrides",
			index: 1,
			expected: loans.LoanConfig{
				Currency: "USD", RateType: "efectiva", RateValue: 12, Capitalization: "monthly",
				TermMonths: 12, GraceType: "total", GraceMonths: 3,
			},
		},
		{
			name:  "Explicit zero rate is kept",
			index: 2,
			expected: loans.LoanConfig{
				Currency: "USD", RateType: "effective", RateValue: 0, Capitalization: "monthly",
				TermMonths: 10, GraceType: "none", GraceMonths: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conf.LoanConfig(conf.Simulations[tt.index])
			if got != tt.expected {
				t.Errorf("LoanConfig() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestLoadConfigurationFromReaderDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("simulations:\n  - name: only\n    principal: 5000\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Output.Format != "pretty" {
		t.Errorf("Output.Format = %s, expected pretty default", conf.Output.Format)
	}
	if got := conf.LoanConfig(conf.Simulations[0]); got != loans.DefaultLoanConfig() {
		t.Errorf("LoanConfig() = %+v, expected defaults %+v", got, loans.DefaultLoanConfig())
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("simulations: [\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	rate := 5.0
	grace := 50
	term := 24

	conf := &Configuration{
		Simulations: []Simulation{
			{Name: "ok", Principal: 1000},
			{Name: "ok", Principal: 1000},
			{Name: "", Principal: 1000},
			{Name: "long grace", Principal: 1000, Loan: LoanSettings{RateValue: &rate, TermMonths: &term, GraceType: "total", GraceMonths: &grace}},
			{Name: "disabled", Disabled: true, Principal: -1},
		},
	}

	warnings := conf.ValidateConfiguration()

	expected := []string{
		"Simulation 'ok' is defined more than once",
		"Simulation #3 has no name",
		"Simulation 'long grace' has grace of 50 months outside [0, 24]",
	}
	if len(warnings) != len(expected) {
		t.Fatalf("expected %d warnings, got %d: %v", len(expected), len(warnings), warnings)
	}
	for i, want := range expected {
		if !strings.Contains(warnings[i], want) {
			t.Errorf("warning %q does not contain %q", warnings[i], want)
		}
	}
}

func TestValidateConfigurationEmpty(t *testing.T) {
	warnings := (&Configuration{}).ValidateConfiguration()
	if len(warnings) != 1 || warnings[0] != "No simulations configured" {
		t.Errorf("unexpected warnings %v", warnings)
	}
}
