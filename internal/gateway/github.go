// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// DefaultGraphQLURL is used when no API url is configured.
	DefaultGraphQLURL = "https://api.github.com/graphql"

	userHistorySize = 15
	orgHistorySize  = 10

	tracerName = "debriefr/internal/gateway"
)

// Result is the success-or-error envelope returned for every query.
// Data is only meaningful when OK reports true.
type Result[T any] struct {
	Data *T
	Err  error
}

// OK reports whether the query succeeded and returned data.
func (r Result[T]) OK() bool {
	return r.Err == nil && r.Data != nil
}

// Credentials locate and authenticate the GraphQL endpoint.
type Credentials struct {
	URL   string
	Token string
}

// RateBudget is the remaining REST API quota reported by GitHub.
type RateBudget struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Fetcher defines the behavior of a gateway for fetching activity from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) Result[UserActivity]
	FetchOrganizationCommits(ctx context.Context, org string) Result[OrgCommits]
	FetchOrganizationIssues(ctx context.Context, org string) Result[OrgIssues]
	FetchOrganizationPullRequests(ctx context.Context, org string) Result[OrgPullRequests]
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

var _ Fetcher = (*GitHubGateway)(nil)

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty credentials URL targets github.com; any other URL is treated as a
// GitHub Enterprise GraphQL endpoint.
func NewGitHubGateway(creds Credentials, logger *zap.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if creds.URL != "" && creds.URL != DefaultGraphQLURL {
		graphqlClient = githubv4.NewEnterpriseClient(creds.URL, httpClient)
		base := restBaseURL(creds.URL)
		restClient, err = restClient.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise REST client: %w", err)
		}
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// restBaseURL derives the enterprise host root from a GraphQL endpoint,
// e.g. https://ghe.example.com/api/graphql -> https://ghe.example.com/.
// go-github appends api/v3/ itself.
func restBaseURL(graphqlURL string) string {
	u := strings.TrimSuffix(graphqlURL, "/")
	u = strings.TrimSuffix(u, "/graphql")
	u = strings.TrimSuffix(u, "/api")
	return u + "/"
}

// FetchUser queries the profile, issues and commit contributions of a user.
func (g *GitHubGateway) FetchUser(ctx context.Context, login string) Result[UserActivity] {
	var q struct {
		User *UserActivity `graphql:"user(login: $login)"`
	}
	variables := map[string]interface{}{
		"login":       githubv4.String(login),
		"historySize": githubv4.Int(userHistorySize),
	}
	if err := g.query(ctx, "user", login, &q, variables); err != nil {
		return Result[UserActivity]{Err: err}
	}
	if q.User == nil {
		return Result[UserActivity]{Err: fmt.Errorf("user %q not found", login)}
	}
	return Result[UserActivity]{Data: q.User}
}

// FetchOrganizationCommits queries recent branch history of every organization repository.
func (g *GitHubGateway) FetchOrganizationCommits(ctx context.Context, org string) Result[OrgCommits] {
	var q struct {
		Organization *OrgCommits `graphql:"organization(login: $login)"`
	}
	variables := map[string]interface{}{
		"login":       githubv4.String(org),
		"historySize": githubv4.Int(orgHistorySize),
	}
	if err := g.query(ctx, "commits", org, &q, variables); err != nil {
		return Result[OrgCommits]{Err: err}
	}
	if q.Organization == nil {
		return Result[OrgCommits]{Err: fmt.Errorf("organization %q not found", org)}
	}
	return Result[OrgCommits]{Data: q.Organization}
}

// FetchOrganizationIssues queries the closed issues of every organization repository.
func (g *GitHubGateway) FetchOrganizationIssues(ctx context.Context, org string) Result[OrgIssues] {
	var q struct {
		Organization *OrgIssues `graphql:"organization(login: $login)"`
	}
	variables := map[string]interface{}{"login": githubv4.String(org)}
	if err := g.query(ctx, "issues", org, &q, variables); err != nil {
		return Result[OrgIssues]{Err: err}
	}
	if q.Organization == nil {
		return Result[OrgIssues]{Err: fmt.Errorf("organization %q not found", org)}
	}
	return Result[OrgIssues]{Data: q.Organization}
}

// FetchOrganizationPullRequests queries the merged pull requests of every organization repository.
func (g *GitHubGateway) FetchOrganizationPullRequests(ctx context.Context, org string) Result[OrgPullRequests] {
	var q struct {
		Organization *OrgPullRequests `graphql:"organization(login: $login)"`
	}
	variables := map[string]interface{}{"login": githubv4.String(org)}
	if err := g.query(ctx, "pull_requests", org, &q, variables); err != nil {
		return Result[OrgPullRequests]{Err: err}
	}
	if q.Organization == nil {
		return Result[OrgPullRequests]{Err: fmt.Errorf("organization %q not found", org)}
	}
	return Result[OrgPullRequests]{Data: q.Organization}
}

func (g *GitHubGateway) query(ctx context.Context, category, login string, q interface{}, variables map[string]interface{}) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "gateway.query."+category, trace.WithAttributes(
		attribute.String("github.category", category),
		attribute.String("github.login", login),
	))
	defer span.End()

	start := time.Now()
	g.logger.Debug("sending query", zap.String("category", category), zap.String("login", login))
	if err := g.graphqlClient.Query(ctx, q, variables); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to execute GraphQL query for %s: %w", category, err)
	}
	span.SetStatus(codes.Ok, "query completed")
	g.logger.Debug("query completed",
		zap.String("category", category),
		zap.String("login", login),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// RateBudget reports the remaining core REST quota of the configured token.
func (g *GitHubGateway) RateBudget(ctx context.Context) (RateBudget, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return RateBudget{}, fmt.Errorf("failed to get rate limit: %w", err)
	}
	core := limits.GetCore()
	if core == nil {
		return RateBudget{}, nil
	}
	return RateBudget{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}
