// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/internal/invoice"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. MEDIATION_CALC_OUTPUT_LOCALE.
const EnvPrefix = "MEDIATION_CALC"

// DefaultOption is the tax treatment used when none is configured.
const DefaultOption = 1

// Configuration holds all configuration for mediation-calc.
type Configuration struct {
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Invoice   InvoiceConfig   `yaml:"invoice,omitempty"`
	Deadlines DeadlinesConfig `yaml:"deadlines,omitempty"`
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
	Locale string `yaml:"locale,omitempty"` // tr, en
}

// InvoiceConfig holds invoice calculation defaults.
type InvoiceConfig struct {
	DefaultOption int `yaml:"defaultOption,omitempty"` // 1-4
}

// DeadlinesConfig optionally replaces the built-in dispute catalog.
type DeadlinesConfig struct {
	Categories []CategoryConfig `yaml:"categories,omitempty"`
}

// CategoryConfig is one dispute category and its week offsets.
type CategoryConfig struct {
	Name  string `yaml:"name"`
	Weeks []int  `yaml:"weeks"`
}

// Default returns the configuration used when no file is present: the
// built-in defaults with environment overrides applied.
func Default() (*Configuration, error) {
	return decode(newViper())
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

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
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
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment overrides only reach keys viper knows about.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.locale", constants.DefaultLocale)
	v.SetDefault("invoice.defaultOption", DefaultOption)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Output.Locale == "" {
		conf.Output.Locale = constants.DefaultLocale
	}
	if conf.Invoice.DefaultOption == 0 {
		conf.Invoice.DefaultOption = DefaultOption
	}
}

// Categories returns the configured catalog, or the built-in one when the
// configuration does not override it.
func (conf *Configuration) Categories() []deadline.Category {
	if len(conf.Deadlines.Categories) == 0 {
		return deadline.DefaultCategories()
	}
	categories := make([]deadline.Category, 0, len(conf.Deadlines.Categories))
	for _, c := range conf.Deadlines.Categories {
		weeks := make([]int, len(c.Weeks))
		copy(weeks, c.Weeks)
		categories = append(categories, deadline.Category{Name: c.Name, Weeks: weeks})
	}
	return categories
}

// DeadlineEngine builds the deadline engine for the configured catalog.
func (conf *Configuration) DeadlineEngine(opts ...deadline.Option) (*deadline.Engine, error) {
	engine, err := deadline.NewEngine(conf.Categories(), opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline catalog: %w", err)
	}
	return engine, nil
}

// DefaultTreatment resolves the configured default tax treatment.
func (conf *Configuration) DefaultTreatment() (invoice.Treatment, error) {
	return invoice.ParseTreatment(conf.Invoice.DefaultOption)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateLocale(conf.Output.Locale); err != nil {
		warnings = append(warnings, err.Error())
	}
	if _, err := conf.DefaultTreatment(); err != nil {
		warnings = append(warnings, fmt.Sprintf("invoice.defaultOption: %v", err))
	}
	if len(conf.Deadlines.Categories) > 0 {
		if _, err := deadline.NewEngine(conf.Categories()); err != nil {
			warnings = append(warnings, fmt.Sprintf("deadlines.categories: %v", err))
		}
	}

	return warnings
}
