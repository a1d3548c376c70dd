// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "debriefr",
	Short: "A CLI tool to post GitHub activity digests to Slack.",
	Long: `debriefr summarizes the GitHub activity of a user or a team
(closed and opened issues, commits, pull requests) over a daily, weekly,
monthly or yearly interval and posts the digest to a Slack channel.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./debriefr.yaml, then ~/.config/debriefr/debriefr.yaml)")
	rootCmd.PersistentFlags().String("pushgateway", "", "Prometheus Pushgateway URL receiving the run metrics")
	rootCmd.PersistentFlags().Bool("trace", false, "Log a span for every GitHub query")
}
