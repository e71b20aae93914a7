package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/afea/einvoice/config"
	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/logger"
	"github.com/afea/einvoice/observability"
	"github.com/afea/einvoice/provider"
	"github.com/afea/einvoice/provider/nes"
	"github.com/afea/einvoice/provider/nilvera"
	"github.com/afea/einvoice/version"
)

const serviceName = "einvoice"

// Global flags
type options struct {
	configFile string
	envFile    string
	provider   string
	token      string
	logLevel   string
	telemetry  bool
}

// app carries state shared by subcommands of one invocation.
type app struct {
	opts     options
	out      io.Writer
	errOut   io.Writer
	registry *provider.Registry
	log      *logger.Logger
	shutdown observability.ShutdownFunc
}

// Run executes the CLI and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) {
			fmt.Fprintf(stderr, "Error: %s\n", gwErr.FormattedMessage())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		out:      stdout,
		errOut:   stderr,
		registry: provider.NewRegistry(),
		log:      logger.NewNop(),
	}
	a.registry.Register(provider.NES, nes.Factory)
	a.registry.Register(provider.Nilvera, nilvera.Factory)

	root := &cobra.Command{
		Use:   "einvoice",
		Short: "Talk to the NES and Nilvera e-invoice APIs",
		Long: `einvoice is an operator tool for the NES and Nilvera e-invoice REST APIs.

Configuration is read from einvoice.yml, a .env file and EINVOICE_*
environment variables, in increasing order of precedence.

Examples:
  # Credit summary of the NES account
  einvoice credit --provider nes

  # Raw call, printing the normalized response
  einvoice request get /general/Credits --provider nilvera

  # Download an invoice PDF
  einvoice download /einvoice/Sale/{uuid}/pdf -o invoice.pdf --provider nilvera

  # Amount in words
  einvoice amount 1250,50`,
		Version:       version.Get().Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(context.WithoutCancel(cmd.Context()))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configFile, "config", "", "Config file (default: ./einvoice.yml if present)")
	pf.StringVar(&a.opts.envFile, "env-file", "", "Env file (default: ./.env.einvoice or ./.env if present)")
	pf.StringVarP(&a.opts.provider, "provider", "p", provider.NES.String(), "Provider: nes or nilvera")
	pf.StringVar(&a.opts.token, "token", "", "Bearer token (overrides EINVOICE_<PROVIDER>_TOKEN)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "Log level (overrides logging.level)")
	pf.BoolVar(&a.opts.telemetry, "telemetry", false, "Export traces and metrics over OTLP")

	root.AddCommand(
		newCreditCommand(a),
		newRequestCommand(a),
		newDownloadCommand(a),
		newAmountCommand(a),
		newProvidersCommand(a),
		newVersionCommand(a),
	)
	return root
}

// loadConfig reads configuration and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.LoaderOption
	if a.opts.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.opts.configFile))
	}
	if a.opts.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.opts.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if a.opts.logLevel != "" {
		cfg.Logging.Level = a.opts.logLevel
	}
	if cmd.Flags().Changed("telemetry") {
		cfg.Telemetry.Enabled = a.opts.telemetry
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// client builds the selected provider client with logging and telemetry wired in.
func (a *app) client(cmd *cobra.Command) (provider.Client, error) {
	name, err := provider.Parse(a.opts.provider)
	if err != nil {
		return nil, err
	}
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a.log = logger.NewWithWriter(&cfg.Logging, serviceName, a.errOut)
	logger.SetGlobalLogger(a.log)

	if cfg.Telemetry.ServiceVersion == "" {
		cfg.Telemetry.ServiceVersion = version.Version
	}
	shutdown, err := observability.Init(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	a.shutdown = shutdown

	metrics, err := observability.NewGatewayMetrics(observability.Meter("github.com/afea/einvoice/gateway"))
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	gwCfg, err := cfg.Gateway(name)
	if err != nil {
		return nil, err
	}
	m := provider.NewManager(a.registry, a.log, gateway.WithLogger(a.log), gateway.WithMetrics(metrics))
	c, err := m.Initialize(name, gwCfg)
	if err != nil {
		return nil, err
	}
	if a.opts.token != "" {
		if err := m.SetToken(name, a.opts.token); err != nil {
			return nil, err
		}
	}
	return c, nil
}
