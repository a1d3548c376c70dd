package cmd

import (
	"fmt"

	"github.com/naka-gawa/debriefr/internal/usecase"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Posts the activity digest of a GitHub user",
	Long: `Counts the closed issues, opened issues and commits of a GitHub user
within the interval, ranks the repositories the user committed to and posts
the digest to Slack.`,
	Args: cobra.ExactArgs(1),
	RunE: runUser,
}

func runUser(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	intervalName, _ := flags.GetString("interval")
	interval, err := parseIntervalFlag(intervalName)
	if err != nil {
		return err
	}
	org, _ := flags.GetString("organization")
	message, _ := flags.GetString("message")
	include, _ := flags.GetStringSlice("include")
	exclude, _ := flags.GetStringSlice("exclude")
	channel, _ := flags.GetString("channel")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	githubGateway, err := s.newGateway(ctx)
	if err != nil {
		return err
	}
	reporter := usecase.NewUserReporter(githubGateway, s.newNotifier(), s.logger)
	reporter.Observer = s.recorder

	req := usecase.UserRequest{
		Username:            args[0],
		Interval:            interval,
		Organization:        org,
		IncludeRepositories: include,
		ExcludeRepositories: exclude,
		Message:             message,
		Channel:             firstNonEmpty(channel, s.cfg.Slack.Channel),
	}

	bar := newSpinner(cmd.ErrOrStderr(), "Building user report")
	report, err := reporter.Run(ctx, req)
	finishSpinner(bar)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s of %s sent to %s\n", report.Title(), req.Username, req.Channel)
	return nil
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.Flags().StringP("interval", "i", "daily", "Reporting interval: daily, weekly, monthly or yearly")
	userCmd.Flags().StringP("organization", "o", "", "Only count activity in repositories owned by this organization")
	userCmd.Flags().StringP("message", "m", "", "Custom message shown in the digest")
	userCmd.Flags().StringSlice("include", nil, "Only count these repositories (comma-separated)")
	userCmd.Flags().StringSlice("exclude", nil, "Never count these repositories (comma-separated)")
	userCmd.Flags().String("channel", "", "Slack channel (default slack.channel)")
}
