package main

import (
	"fmt"
	"os"

	"parsonlabs/assistant/pkg/cli"

	"github.com/spf13/cobra"
)

// defaultConfigFile is read when present; its absence is not an error.
const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Streaming chat relay",
	Long: `assistant relays prompts to a chat-completions API and streams the
response back to the caller unchanged.

POST /chat with {"prompt": "..."} opens one streaming upstream request and
forwards every chunk as text/event-stream as soon as it arrives.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
}

// configRequired reports whether the config file must exist. It must when
// the path was given explicitly.
func configRequired(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("config")
}
