package cmd

import (
	"fmt"

	"github.com/naka-gawa/debriefr/internal/config"
	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/usecase"
	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team [member...]",
	Short: "Posts the activity digest of a team within a GitHub organization",
	Long: `Counts the closed issues, commits, created and merged pull requests of
the team members across the organization's repositories and posts the digest
to Slack. Members, organization, interval, repositories and channel can come
from a profile of the config file; flags and arguments take precedence.`,
	RunE: runTeam,
}

// teamOptions are the command line inputs of the team command.
type teamOptions struct {
	Members      []string
	Interval     string
	Organization string
	Profile      string
	Message      string
	Channel      string
}

// resolveTeamRequest merges the command line with the selected profile and the global config.
func resolveTeamRequest(opts teamOptions, cfg *config.Config) (usecase.TeamRequest, error) {
	var team config.TeamProfile
	if opts.Profile != "" {
		p, err := cfg.Profile(opts.Profile)
		if err != nil {
			return usecase.TeamRequest{}, err
		}
		team = p.Team
	}

	interval, err := parseIntervalFlag(firstNonEmpty(opts.Interval, team.Interval, string(domain.Weekly)))
	if err != nil {
		return usecase.TeamRequest{}, err
	}

	members := make([]string, 0, len(team.Members)+len(opts.Members))
	members = append(members, team.Members...)
	members = append(members, opts.Members...)

	return usecase.TeamRequest{
		Members:             members,
		Interval:            interval,
		Organization:        firstNonEmpty(opts.Organization, team.Organization),
		IncludeRepositories: team.Include,
		ExcludeRepositories: team.Exclude,
		Message:             opts.Message,
		Channel:             firstNonEmpty(opts.Channel, team.Slack.Channel, cfg.Slack.Channel),
	}, nil
}

func runTeam(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	opts := teamOptions{Members: args}
	opts.Interval, _ = flags.GetString("interval")
	opts.Organization, _ = flags.GetString("organization")
	opts.Profile, _ = flags.GetString("profile")
	opts.Message, _ = flags.GetString("message")
	opts.Channel, _ = flags.GetString("channel")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	req, err := resolveTeamRequest(opts, s.cfg)
	if err != nil {
		return err
	}
	if req.Organization == "" {
		s.logger.Error("team report needs an organization")
		return domain.ErrMissingOrganization
	}

	githubGateway, err := s.newGateway(ctx)
	if err != nil {
		return err
	}
	reporter := usecase.NewTeamReporter(githubGateway, s.newNotifier(), s.logger)
	reporter.Observer = s.recorder

	bar := newSpinner(cmd.ErrOrStderr(), "Building team report")
	report, err := reporter.Run(ctx, req)
	finishSpinner(bar)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s of %s sent to %s\n", report.Title(), req.Organization, req.Channel)
	return nil
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.Flags().StringP("interval", "i", "", "Reporting interval: daily, weekly, monthly or yearly (default from profile, else weekly)")
	teamCmd.Flags().StringP("organization", "o", "", "GitHub organization of the team (default from profile)")
	teamCmd.Flags().StringP("profile", "p", "", "Team profile of the config file")
	teamCmd.Flags().StringP("message", "m", "", "Custom message shown in the digest")
	teamCmd.Flags().String("channel", "", "Slack channel (default profile slack.channel, then slack.channel)")
}
