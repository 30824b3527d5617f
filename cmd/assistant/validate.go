package main

import (
	"fmt"
	"strconv"

	"parsonlabs/assistant/pkg/cli"
	"parsonlabs/assistant/pkg/config"
	"parsonlabs/assistant/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var validateFlags struct {
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and print the resolved settings",
	Long: `Load the configuration file, apply defaults and ASSISTANT_* environment
overrides, validate the result and print the effective settings. The API key
is redacted.

Examples:
  # Validate config.yaml in the current directory
  assistant validate

  # Validate a specific file and print JSON
  assistant validate --config /etc/assistant/config.yaml --output json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format (text, json)")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.output)
	if err != nil {
		return err
	}

	cfg, fromFile, err := config.Load(cfgFile, configRequired(cmd))
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	source := cfgFile
	if !fromFile {
		source = "defaults"
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), settingsFields(cfg, source))
}

// settingsFields lists the effective settings for display.
func settingsFields(cfg *config.Config, source string) []cli.Field {
	return []cli.Field{
		{Key: "source", Value: source},
		{Key: "proxy.listen_address", Value: cfg.Proxy.ListenAddress},
		{Key: "proxy.max_body_bytes", Value: strconv.FormatInt(cfg.Proxy.MaxBodyBytes, 10)},
		{Key: "proxy.shutdown_timeout", Value: cfg.Proxy.ShutdownTimeout.String()},
		{Key: "upstream.url", Value: cfg.Upstream.URL},
		{Key: "upstream.model", Value: cfg.Upstream.Model},
		{Key: "upstream.timeout", Value: cfg.Upstream.Timeout.String()},
		{Key: "upstream.api_key", Value: logging.RedactAPIKey(cfg.Upstream.APIKey)},
		{Key: "upstream.watch", Value: strconv.FormatBool(cfg.Upstream.Watch)},
		{Key: "telemetry.logging", Value: fmt.Sprintf("%s/%s", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)},
		{Key: "telemetry.metrics", Value: metricsSummary(&cfg.Telemetry.Metrics)},
		{Key: "telemetry.tracing", Value: tracingSummary(&cfg.Telemetry.Tracing)},
	}
}

func metricsSummary(m *config.MetricsConfig) string {
	if !m.IsEnabled() {
		return "disabled"
	}
	return m.Path
}

func tracingSummary(t *config.TracingConfig) string {
	if !t.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s (%s %.2f)", t.Endpoint, t.Sampler, t.SampleRatio)
}
