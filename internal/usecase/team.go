package usecase

import (
	"context"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/gateway"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TeamRequest describes one team report.
type TeamRequest struct {
	Members             []string
	Interval            domain.Interval
	Organization        string
	IncludeRepositories []string
	ExcludeRepositories []string
	Message             string
	Channel             string
}

// TeamReporter builds and sends the activity summary of a team within an organization.
type TeamReporter struct {
	reporter
}

// NewTeamReporter creates a new TeamReporter instance.
func NewTeamReporter(fetcher gateway.Fetcher, notifier Notifier, logger *zap.Logger) *TeamReporter {
	return &TeamReporter{reporter: newReporter(fetcher, notifier, logger)}
}

// Run queries commits, issues and pull requests of the organization concurrently,
// keeps the team's activity and sends the report. A failed query zeroes only its
// own categories.
func (t *TeamReporter) Run(ctx context.Context, req TeamRequest) (Report, error) {
	if req.Organization == "" {
		t.logger.Error("team report needs an organization")
		return Report{}, domain.ErrMissingOrganization
	}

	now := t.Now()
	members := uniqueLogins(req.Members)
	logger := t.logger.With(zap.String("organization", req.Organization), zap.String("interval", string(req.Interval)))
	logger.Info("starting team report", zap.Strings("members", members))

	var (
		commits gateway.Result[gateway.OrgCommits]
		issues  gateway.Result[gateway.OrgIssues]
		prs     gateway.Result[gateway.OrgPullRequests]
	)

	// Failures travel inside the envelopes, so no goroutine returns an error
	// and one failed query never cancels its siblings.
	var eg errgroup.Group
	eg.Go(func() error {
		commits = t.fetcher.FetchOrganizationCommits(ctx, req.Organization)
		return nil
	})
	eg.Go(func() error {
		issues = t.fetcher.FetchOrganizationIssues(ctx, req.Organization)
		return nil
	})
	eg.Go(func() error {
		prs = t.fetcher.FetchOrganizationPullRequests(ctx, req.Organization)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Report{}, err
	}

	criteria := domain.FilterCriteria{
		IncludeRepositories: req.IncludeRepositories,
		ExcludeRepositories: req.ExcludeRepositories,
		TeamMembers:         members,
	}
	in := TeamReportInput{
		Interval:     req.Interval,
		Organization: req.Organization,
		Message:      req.Message,
		TopN:         t.TopN,
		Now:          now,
		Members:      members,
		Repositories: req.IncludeRepositories,
	}

	if commits.OK() {
		in.Identity = commits.Data.Identity()
		in.Commits = criteria.Select(gateway.OrganizationCommits(commits.Data), domain.RuleCommits, req.Interval, now)
		logger.Debug("commits filtered", zap.Int("count", len(in.Commits)))
	} else {
		t.queryFailed(ReportTeam, commits.Err, domain.CategoryCommits)
	}

	if issues.OK() {
		if in.Identity == (domain.Identity{}) {
			in.Identity = issues.Data.Identity()
		}
		in.ClosedIssues = criteria.Select(gateway.OrganizationIssues(issues.Data), domain.RuleTeamClosedIssues, req.Interval, now)
		logger.Debug("issues filtered", zap.Int("count", len(in.ClosedIssues)))
	} else {
		t.queryFailed(ReportTeam, issues.Err, domain.CategoryClosedIssues)
	}

	if prs.OK() {
		if in.Identity == (domain.Identity{}) {
			in.Identity = prs.Data.Identity()
		}
		records := gateway.OrganizationPullRequests(prs.Data)
		in.CreatedPullRequests = criteria.Select(records, domain.RuleCreatedPullRequests, req.Interval, now)
		in.MergedPullRequests = criteria.Select(records, domain.RuleMergedPullRequests, req.Interval, now)
		logger.Debug("pull requests filtered",
			zap.Int("created", len(in.CreatedPullRequests)),
			zap.Int("merged", len(in.MergedPullRequests)),
		)
	} else {
		t.queryFailed(ReportTeam, prs.Err, domain.CategoryCreatedPullRequests, domain.CategoryMergedPullRequests)
	}

	report := BuildTeamReport(in)
	return report, t.dispatch(ctx, report, req.Channel)
}

// uniqueLogins drops empty and repeated logins, keeping first occurrences in order.
func uniqueLogins(logins []string) []string {
	seen := make(map[string]struct{}, len(logins))
	unique := make([]string, 0, len(logins))
	for _, l := range logins {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		unique = append(unique, l)
	}
	return unique
}
