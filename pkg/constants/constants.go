// Package constants provides shared constants for the mediation-calc application.
package constants

// DateLayout is the day.month.year format accepted for start dates and used
// for rendered deadlines.
const DateLayout = "02.01.2006"

// Tax constants
const (
	// TaxRate is the rate applied for both VAT (KDV) and withholding tax (stopaj).
	TaxRate = "0.20"

	// CurrencyPlaces is the number of decimal places shown for amounts.
	CurrencyPlaces = 2

	// CurrencySymbol is appended to rendered amounts.
	CurrencySymbol = "₺"
)

// Deadline constants
const (
	// DaysPerWeek is the calendar length of one week offset.
	DaysPerWeek = 7

	// NotApplicableMarker is rendered in deadline cells that do not apply to a category.
	NotApplicableMarker = "-"
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

// Locale constants
const (
	// LocaleTurkish renders amounts as 1.234,56
	LocaleTurkish = "tr"

	// LocaleEnglish renders amounts as 1,234.56
	LocaleEnglish = "en"

	// DefaultLocale is used when none is configured.
	DefaultLocale = LocaleTurkish
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
