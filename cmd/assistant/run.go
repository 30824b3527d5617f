package main

import (
	"context"
	"fmt"
	"log/slog"

	"parsonlabs/assistant/pkg/cli"
	"parsonlabs/assistant/pkg/config"
	"parsonlabs/assistant/pkg/server"
	"parsonlabs/assistant/pkg/telemetry/logging"
	"parsonlabs/assistant/pkg/telemetry/metrics"
	"parsonlabs/assistant/pkg/telemetry/tracing"
	"parsonlabs/assistant/pkg/upstream"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay server with the specified configuration.

The server listens on the configured address and relays POST /chat requests
to the upstream chat-completions API.

Examples:
  # Start with default config
  assistant run

  # Start with custom config
  assistant run --config /etc/assistant/config.yaml

  # Override listen address
  assistant run --listen 0.0.0.0:8000

  # Validate config without starting server
  assistant run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, fromFile, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(&cfg.Telemetry.Logging)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	if !fromFile {
		logger.Info("config file not found, using defaults", "path", cfgFile)
	}

	settings, err := upstream.SettingsFromConfig(&cfg.Upstream)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.IsEnabled() {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	client := upstream.NewClient(settings, upstream.Options{
		MaxIdleConns: cfg.Upstream.MaxIdleConns,
		Logger:       logger,
	})

	deps := server.Deps{
		Upstream: client,
		Metrics:  collector,
		Tracer:   tracer,
		Logger:   logger,
	}
	if fromFile {
		deps.ConfigPath = cfgFile
	}

	srv := server.NewServer(cfg, deps)

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// loadConfig initializes the global configuration and applies the run
// flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	cfg, fromFile, err := config.Load(cfgFile, configRequired(cmd))
	if err != nil {
		return nil, false, cli.NewConfigError(cfgFile, err)
	}

	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, false, cli.NewConfigError(cfgFile, err)
	}

	config.SetConfig(cfg)
	return cfg, fromFile, nil
}
