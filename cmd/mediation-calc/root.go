package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/mediation-calc/internal/config"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath   string
	logLevel     string
	outputFormat string
	locale       string
}

// app carries the state every subcommand needs once the root has loaded it.
type app struct {
	opts   rootOptions
	conf   *config.Configuration
	logger *zap.Logger
	format string
	locale string
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "mediation-calc",
		Short: "Mediation fee receipts and statutory deadline calculator",
		Long: "mediation-calc splits a mediation fee into the lines of a self-employment\n" +
			"receipt under each VAT and withholding treatment, and computes the week-based\n" +
			"deadlines that apply to each mediation dispute category.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&a.opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	pf.StringVar(&a.opts.locale, "locale", "", "amount formatting locale override: tr, en")

	cmd.AddCommand(
		newInvoiceCommand(a),
		newOptionsCommand(a),
		newDeadlinesCommand(a),
		newCategoriesCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// load reads the configuration, builds the logger and resolves output settings.
func (a *app) load(cmd *cobra.Command) error {
	conf, err := a.loadConfiguration(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	a.format = conf.Output.Format
	if a.opts.outputFormat != "" {
		a.format = a.opts.outputFormat
	}
	if err := validation.ValidateOutputFormat(a.format); err != nil {
		return err
	}

	a.locale = conf.Output.Locale
	if a.opts.locale != "" {
		a.locale = a.opts.locale
	}
	if err := validation.ValidateLocale(a.locale); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	logger.Debug("configuration loaded",
		zap.String("op", "main"),
		zap.String("config", a.opts.configPath),
		zap.String("outputFormat", a.format),
		zap.String("locale", a.locale),
	)
	return nil
}

// loadConfiguration falls back to the built-in defaults when the default
// config file is absent. An explicitly named file must exist.
func (a *app) loadConfiguration(explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(a.opts.configPath); errors.Is(err, fs.ErrNotExist) {
			conf, err := config.Default()
			if err != nil {
				return nil, fmt.Errorf("failed to load default configuration: %w", err)
			}
			return conf, nil
		}
	}

	conf, err := config.LoadConfiguration(a.opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", a.opts.configPath, err)
	}
	return conf, nil
}
