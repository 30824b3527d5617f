/*
Package cli provides command-line helpers shared by the assistant commands.

Output Formatting:

Commands that print settings build a list of fields and hand it to a
formatter selected by the --output flag:

	format, err := cli.ParseOutputFormat(outputFlag)
	if err != nil {
		return err
	}
	fields := []cli.Field{{Key: "upstream.url", Value: cfg.Upstream.URL}}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, fields); err != nil {
		return err
	}

Errors and Exit Codes:

Configuration problems are wrapped in ConfigError so main can exit with
ExitConfigError; everything else exits with ExitError:

	os.Exit(cli.ExitCode(err))

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
