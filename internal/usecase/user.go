package usecase

import (
	"context"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/gateway"
	"go.uber.org/zap"
)

// UserRequest describes one user report.
type UserRequest struct {
	Username            string
	Interval            domain.Interval
	Organization        string
	IncludeRepositories []string
	ExcludeRepositories []string
	Message             string
	Channel             string
}

// UserReporter builds and sends the activity summary of a single user.
type UserReporter struct {
	reporter
}

// NewUserReporter creates a new UserReporter instance.
func NewUserReporter(fetcher gateway.Fetcher, notifier Notifier, logger *zap.Logger) *UserReporter {
	return &UserReporter{reporter: newReporter(fetcher, notifier, logger)}
}

// Run queries the user's activity, filters it and sends the report.
// A failed query still produces a report with zero counts. The returned
// error wraps domain.ErrDispatch when only delivery failed.
func (u *UserReporter) Run(ctx context.Context, req UserRequest) (Report, error) {
	now := u.Now()
	logger := u.logger.With(zap.String("user", req.Username), zap.String("interval", string(req.Interval)))
	logger.Info("starting user report")

	in := UserReportInput{
		Interval:     req.Interval,
		Organization: req.Organization,
		Message:      req.Message,
		TopN:         u.TopN,
		Now:          now,
	}

	result := u.fetcher.FetchUser(ctx, req.Username)
	if result.OK() {
		criteria := domain.FilterCriteria{
			Organization:        req.Organization,
			IncludeRepositories: req.IncludeRepositories,
			ExcludeRepositories: req.ExcludeRepositories,
		}
		commitCriteria := criteria
		commitCriteria.TeamMembers = []string{req.Username}

		in.Identity = result.Data.Identity()
		in.ClosedIssues = criteria.Select(gateway.UserClosedIssues(result.Data), domain.RuleClosedIssues, req.Interval, now)
		in.OpenIssues = criteria.Select(gateway.UserOpenIssues(result.Data), domain.RuleOpenIssues, req.Interval, now)
		in.Commits = commitCriteria.Select(gateway.UserCommits(result.Data), domain.RuleCommits, req.Interval, now)
	} else {
		u.queryFailed(ReportUser, result.Err,
			domain.CategoryClosedIssues, domain.CategoryOpenIssues, domain.CategoryCommits)
	}

	report := BuildUserReport(in)
	return report, u.dispatch(ctx, report, req.Channel)
}
