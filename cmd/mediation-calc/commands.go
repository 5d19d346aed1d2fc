package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/mediation-calc/internal/config"
	"github.com/iwvelando/mediation-calc/internal/invoice"
	"github.com/iwvelando/mediation-calc/internal/metrics"
	"github.com/iwvelando/mediation-calc/internal/server"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/datetime"
	"github.com/iwvelando/mediation-calc/pkg/format"
	"github.com/iwvelando/mediation-calc/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

func newInvoiceCommand(a *app) *cobra.Command {
	var (
		option int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "invoice FEE",
		Short: "Split a fee into receipt lines for legal entities and individuals",
		Example: "  mediation-calc invoice 1.000,00 --option 3\n" +
			"  mediation-calc invoice 25000 --all --output-format json",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "main.invoice"

			fee, err := format.ParseAmount(args[0], a.locale)
			if err != nil {
				return err
			}

			var breakdowns []invoice.Breakdown
			if all {
				breakdowns = invoice.ComputeAll(fee)
			} else {
				code := a.conf.Invoice.DefaultOption
				if cmd.Flags().Changed("option") {
					code = option
				}
				b, err := invoice.Compute(fee, code)
				if err != nil {
					return err
				}
				breakdowns = []invoice.Breakdown{b}
			}

			a.logger.Debug("invoice computed",
				zap.String("op", op),
				zap.String("fee", fee.String()),
				zap.Int("breakdowns", len(breakdowns)),
			)
			return a.writeInvoice(cmd.OutOrStdout(), breakdowns)
		},
	}

	cmd.Flags().IntVarP(&option, "option", "n", config.DefaultOption, "tax treatment option (1-4), see the options command")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "compute every tax treatment option")
	return cmd
}

func (a *app) writeInvoice(w io.Writer, breakdowns []invoice.Breakdown) error {
	switch a.format {
	case constants.OutputFormatCSV:
		return output.InvoiceCSV(w, breakdowns)
	case constants.OutputFormatJSON:
		return output.InvoiceJSON(w, breakdowns, a.locale)
	default:
		return output.InvoicePretty(w, breakdowns, a.locale)
	}
}

func newOptionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the VAT and withholding treatment options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.OptionsCSV(w, invoice.Treatments())
			case constants.OutputFormatJSON:
				return output.OptionsJSON(w, invoice.Treatments())
			default:
				return output.OptionsPretty(w, invoice.Treatments())
			}
		},
	}
}

func newDeadlinesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deadlines [DD.MM.YYYY]",
		Short: "Compute mediation deadlines for every dispute category",
		Long: "Computes the week-offset deadlines from a start date for every dispute\n" +
			"category. The date may be written as DD.MM.YYYY or as eight digits; today\n" +
			"is used when it is omitted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "main.deadlines"

			engine, err := a.conf.DeadlineEngine()
			if err != nil {
				return err
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			}
			table, err := engine.TableFromString(datetime.NormalizeDateInput(input))
			if err != nil {
				return err
			}

			a.logger.Debug("deadlines computed",
				zap.String("op", op),
				zap.Time("start", table.Start),
				zap.Int("offsets", len(table.Offsets)),
			)

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.DeadlinesCSV(w, table)
			case constants.OutputFormatJSON:
				return output.DeadlinesJSON(w, table)
			default:
				return output.DeadlinesPretty(w, table)
			}
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the dispute categories and their week offsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.conf.DeadlineEngine()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.CategoriesCSV(w, engine.Categories())
			case constants.OutputFormatJSON:
				return output.CategoriesJSON(w, engine.Categories())
			default:
				return output.CategoriesPretty(w, engine.Categories())
			}
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
		maxBodySize      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "main.serve"

			srvCfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				srvCfg.Address = address
			}
			if maxBodySize != "" {
				size, err := server.ParseSize(maxBodySize)
				if err != nil {
					return err
				}
				srvCfg.SetBodySizeBytes(size)
			}

			logger := a.logger
			if srvCfg.Logging != (config.LoggingConfig{}) {
				if logger, err = initializeLogger(srvCfg.Logging, a.opts.logLevel); err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			engine, err := a.conf.DeadlineEngine()
			if err != nil {
				return err
			}

			handler := server.NewHandler(logger, engine, metrics.NewRecorder(), server.Settings{
				MaxBodySize:   srvCfg.BodySizeBytes(),
				Version:       version,
				Locale:        a.locale,
				DefaultOption: a.conf.Invoice.DefaultOption,
			})

			readTimeout, writeTimeout := srvCfg.Timeouts()
			httpServer := &http.Server{
				Addr:              srvCfg.Address,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting web server",
					zap.String("op", op),
					zap.String("address", srvCfg.Address),
					zap.Int64("maxBodySize", srvCfg.BodySizeBytes()),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("web server failed: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down web server", zap.String("op", op))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("web server shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override, e.g. :8080")
	cmd.Flags().StringVar(&maxBodySize, "max-body-size", "", "request body limit override, e.g. 256K")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
