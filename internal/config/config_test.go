package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
			name:       "Custom config file",
			configPath: "testdata/custom.yaml",
			wantError:  false,
		},
		{
			name:       "Example config file",
			configPath: "../../" + constants.ExampleConfigFile,
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

func TestLoadConfigurationValues(t *testing.T) {
	conf, err := LoadConfiguration("testdata/custom.yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "console", conf.Logging.Format)
	assert.Equal(t, "csv", conf.Output.Format)
	assert.Equal(t, "en", conf.Output.Locale)
	assert.Equal(t, 3, conf.Invoice.DefaultOption)
	require.Len(t, conf.Deadlines.Categories, 2)
	assert.Equal(t, []int{2, 3}, conf.Deadlines.Categories[1].Weeks)
	assert.Empty(t, conf.ValidateConfiguration())

	engine, err := conf.DeadlineEngine()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, engine.Offsets())
	assert.False(t, engine.IsApplicable("Tarımsal Üretim Sözleşmesinden Kaynaklanan Uyuşmazlıklar", 4))

	treatment, err := conf.DefaultTreatment()
	require.NoError(t, err)
	assert.Equal(t, 3, treatment.Code())
}

func TestLoadConfigurationFromReaderDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", conf.Logging.Level)
	assert.Equal(t, constants.OutputFormatPretty, conf.Output.Format)
	assert.Equal(t, constants.DefaultLocale, conf.Output.Locale)
	assert.Equal(t, DefaultOption, conf.Invoice.DefaultOption)
	assert.Equal(t, deadline.DefaultCategories(), conf.Categories())
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("logging: [unterminated"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("MEDIATION_CALC_OUTPUT_LOCALE", "en-GB")

	conf, err := LoadConfigurationFromReader(strings.NewReader("output:\n  locale: tr\n"))
	require.NoError(t, err)
	assert.Equal(t, "en-GB", conf.Output.Locale)
}

func defaultConfig(t *testing.T) *Configuration {
	t.Helper()
	conf, err := Default()
	require.NoError(t, err)
	return conf
}

func TestEnvironmentOverrideWithoutKeyInFile(t *testing.T) {
	t.Setenv("MEDIATION_CALC_OUTPUT_LOCALE", "en")
	t.Setenv("MEDIATION_CALC_INVOICE_DEFAULTOPTION", "3")
	t.Setenv("MEDIATION_CALC_LOGGING_LEVEL", "debug")

	conf, err := LoadConfigurationFromReader(strings.NewReader("output:\n  format: csv\n"))
	require.NoError(t, err)
	assert.Equal(t, "csv", conf.Output.Format)
	assert.Equal(t, "en", conf.Output.Locale)
	assert.Equal(t, 3, conf.Invoice.DefaultOption)
	assert.Equal(t, "debug", conf.Logging.Level)

	conf = defaultConfig(t)
	assert.Equal(t, "en", conf.Output.Locale)
	assert.Equal(t, 3, conf.Invoice.DefaultOption)
}

func TestDefaultRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("MEDIATION_CALC_INVOICE_DEFAULTOPTION", "three")

	_, err := Default()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	conf := defaultConfig(t)
	assert.Equal(t, constants.DefaultLocale, conf.Output.Locale)
	assert.Equal(t, DefaultOption, conf.Invoice.DefaultOption)
	assert.Equal(t, constants.OutputFormatPretty, conf.Output.Format)
	assert.Empty(t, conf.ValidateConfiguration())

	engine, err := conf.DeadlineEngine()
	require.NoError(t, err)
	assert.Equal(t, deadline.Default().Offsets(), engine.Offsets())
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Configuration)
		warnings int
		contains string
	}{
		{
			name:     "valid",
			modify:   func(*Configuration) {},
			warnings: 0,
		},
		{
			name:     "bad output format",
			modify:   func(c *Configuration) { c.Output.Format = "xml" },
			warnings: 1,
			contains: "output format",
		},
		{
			name:     "bad locale",
			modify:   func(c *Configuration) { c.Output.Locale = "not a locale" },
			warnings: 1,
			contains: "locale",
		},
		{
			name:     "default option out of range",
			modify:   func(c *Configuration) { c.Invoice.DefaultOption = 7 },
			warnings: 1,
			contains: "invoice.defaultOption",
		},
		{
			name: "invalid catalog",
			modify: func(c *Configuration) {
				c.Deadlines.Categories = []CategoryConfig{{Name: "A", Weeks: []int{0}}}
			},
			warnings: 1,
			contains: "deadlines.categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := defaultConfig(t)
			tt.modify(conf)

			warnings := conf.ValidateConfiguration()
			require.Len(t, warnings, tt.warnings)
			if tt.contains != "" {
				assert.Contains(t, warnings[0], tt.contains)
			}
		})
	}
}

func TestDeadlineEngineInvalidCatalog(t *testing.T) {
	conf := defaultConfig(t)
	conf.Deadlines.Categories = []CategoryConfig{{Name: "A", Weeks: []int{1}}, {Name: "A", Weeks: []int{2}}}

	_, err := conf.DeadlineEngine()
	assert.Error(t, err)
}

func TestCategoriesAreCopied(t *testing.T) {
	conf := defaultConfig(t)
	conf.Deadlines.Categories = []CategoryConfig{{Name: "A", Weeks: []int{1, 2}}}

	categories := conf.Categories()
	categories[0].Weeks[0] = 9
	assert.Equal(t, []int{1, 2}, conf.Deadlines.Categories[0].Weeks)
}
