// Package constants provides shared constants for the mortgage-simulator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Internal rate of return search parameters. The search runs over monthly
// rates in [IRRLowerBound, IRRUpperBound].
const (
	IRRLowerBound    = 0.0
	IRRUpperBound    = 1.0
	IRRTolerance     = 1e-7
	IRRMaxIterations = 100
)

// Default loan configuration, used when a simulation omits a field.
const (
	DefaultCurrency       = "PEN"
	DefaultRateType       = "effective"
	DefaultRateValue      = 12.0
	DefaultCapitalization = "monthly"
	DefaultTermMonths     = 240
	DefaultGraceType      = "none"
	DefaultGraceMonths    = 0
)

// Input limits
const (
	// MaxTermMonths is the longest loan term that will be simulated (100 years)
	MaxTermMonths = 1200
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitCapacity is the number of requests a client may issue per window
	DefaultRateLimitCapacity = 30

	// DefaultRateLimitWindow is the refill window of the rate limiter
	DefaultRateLimitWindow = "1m"

	// DefaultStoreType is the default simulation store backend
	DefaultStoreType = "memory"
)
