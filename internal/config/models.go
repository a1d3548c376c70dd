package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/naka-gawa/debriefr/internal/domain"
)

// Config holds application configuration.
type Config struct {
	GitHub   GitHubConfig       `mapstructure:"github"`
	Slack    SlackConfig        `mapstructure:"slack"`
	Profiles map[string]Profile `mapstructure:"profiles"`
}

// GitHubConfig contains the GraphQL endpoint and credentials.
type GitHubConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// SlackConfig contains the bot token and the default channel.
type SlackConfig struct {
	Token   string `mapstructure:"token"`
	Channel string `mapstructure:"channel"`
	// APIURL points the sender at another Slack Web API base.
	APIURL string `mapstructure:"api_url"`
}

// Profile is a named set of team report defaults.
type Profile struct {
	Team TeamProfile `mapstructure:"team"`
}

// TeamProfile describes a team and where its report goes.
type TeamProfile struct {
	Organization string       `mapstructure:"organization"`
	Interval     string       `mapstructure:"interval"`
	Members      []string     `mapstructure:"members"`
	Include      []string     `mapstructure:"include"`
	Exclude      []string     `mapstructure:"exclude"`
	Slack        SlackChannel `mapstructure:"slack"`
}

// SlackChannel overrides the destination channel of a profile.
type SlackChannel struct {
	Channel string `mapstructure:"channel"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("github.token is required (or GH_API_TOKEN / GITHUB_TOKEN)")
	}
	if c.Slack.Token == "" {
		return errors.New("slack.token is required (or SLACK_BOT_TOKEN)")
	}
	return nil
}

// Profile returns the named profile. Names are case-insensitive.
func (c Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", domain.ErrUnknownProfile, name)
	}
	return p, nil
}
