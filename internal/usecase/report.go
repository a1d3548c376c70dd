package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMessage replaces an empty custom message.
const DefaultMessage = "No message was entered so let's assume it was an awesome day."

const (
	reportColor    = "#F46085"
	githubMarkIcon = "https://assets-cdn.github.com/images/modules/logos_page/GitHub-Mark.png"
)

// ReportKind tells user reports and team reports apart.
type ReportKind string

const (
	ReportUser ReportKind = "user"
	ReportTeam ReportKind = "team"
)

// Report is the presentation-ready summary handed to a Notifier.
type Report struct {
	Kind            ReportKind
	Interval        domain.Interval
	Identity        domain.Identity
	Organization    string
	Counts          []domain.CategoryCount
	Aggregation     Aggregation
	TopRepositories string
	Message         string
	Members         []string
	Repositories    []string
	GeneratedAt     time.Time
}

// UserReportInput carries the filtered record lists of a user report.
type UserReportInput struct {
	Identity     domain.Identity
	Interval     domain.Interval
	Organization string
	Message      string
	TopN         int
	Now          time.Time
	ClosedIssues []domain.ActivityRecord
	OpenIssues   []domain.ActivityRecord
	Commits      []domain.ActivityRecord
}

// TeamReportInput carries the filtered record lists of a team report.
type TeamReportInput struct {
	Identity            domain.Identity
	Interval            domain.Interval
	Organization        string
	Message             string
	TopN                int
	Now                 time.Time
	Members             []string
	Repositories        []string
	ClosedIssues        []domain.ActivityRecord
	Commits             []domain.ActivityRecord
	CreatedPullRequests []domain.ActivityRecord
	MergedPullRequests  []domain.ActivityRecord
}

// BuildUserReport counts the filtered lists of a user report and ranks its commits.
func BuildUserReport(in UserReportInput) Report {
	agg := Aggregate(in.Commits)
	return Report{
		Kind:         ReportUser,
		Interval:     in.Interval,
		Identity:     in.Identity,
		Organization: in.Organization,
		Counts: []domain.CategoryCount{
			{Category: domain.CategoryClosedIssues, Count: len(in.ClosedIssues)},
			{Category: domain.CategoryOpenIssues, Count: len(in.OpenIssues)},
			{Category: domain.CategoryCommits, Count: len(in.Commits)},
		},
		Aggregation:     agg,
		TopRepositories: RankedString(agg.Top(in.TopN)),
		Message:         messageOrDefault(in.Message),
		GeneratedAt:     in.Now,
	}
}

// BuildTeamReport counts the filtered lists of a team report and ranks its commits.
func BuildTeamReport(in TeamReportInput) Report {
	agg := Aggregate(in.Commits)
	return Report{
		Kind:         ReportTeam,
		Interval:     in.Interval,
		Identity:     in.Identity,
		Organization: in.Organization,
		Counts: []domain.CategoryCount{
			{Category: domain.CategoryClosedIssues, Count: len(in.ClosedIssues)},
			{Category: domain.CategoryCommits, Count: len(in.Commits)},
			{Category: domain.CategoryCreatedPullRequests, Count: len(in.CreatedPullRequests)},
			{Category: domain.CategoryMergedPullRequests, Count: len(in.MergedPullRequests)},
		},
		Aggregation:     agg,
		TopRepositories: RankedString(agg.Top(in.TopN)),
		Message:         messageOrDefault(in.Message),
		Members:         in.Members,
		Repositories:    in.Repositories,
		GeneratedAt:     in.Now,
	}
}

// RankedString renders one "#<rank>: <count> commits in <repository>" line per entry.
func RankedString(entries []domain.RepositoryContribution) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("#%d: %d commits in %s", i+1, e.Commits, e.Repository))
	}
	return strings.Join(lines, "\n")
}

// Count returns the count of a category, or zero when the report does not carry it.
func (r Report) Count(c domain.Category) int {
	for _, cc := range r.Counts {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

// Title is the interval-labeled headline of the report.
func (r Report) Title() string {
	label := cases.Title(language.English).String(string(r.Interval))
	if r.Kind == ReportTeam {
		return label + " team summary"
	}
	return label + " summary"
}

// Attachment renders the report as a notification attachment.
func (r Report) Attachment() domain.Attachment {
	fields := make([]domain.Field, 0, len(r.Counts)+3)
	for _, cc := range r.Counts {
		fields = append(fields, domain.Field{Title: cc.Category.Title(), Value: strconv.Itoa(cc.Count), Short: true})
	}
	fields = append(fields, domain.Field{Title: "Top repositories", Value: r.TopRepositories, Short: false})
	if r.Kind == ReportTeam {
		fields = append(fields,
			domain.Field{Title: "Team", Value: strings.Join(r.Members, "\n"), Short: true},
			domain.Field{Title: "Repositories", Value: strings.Join(r.Repositories, "\n"), Short: true},
		)
	}

	return domain.Attachment{
		Fallback:   r.fallback(),
		Color:      reportColor,
		AuthorName: r.Identity.Name,
		AuthorLink: r.Identity.URL,
		AuthorIcon: r.Identity.AvatarURL,
		Title:      r.Title(),
		Text:       r.Message,
		Fields:     fields,
		Footer:     r.Organization,
		FooterIcon: githubMarkIcon,
		Ts:         r.GeneratedAt.Unix(),
	}
}

func (r Report) fallback() string {
	if r.Kind == ReportTeam {
		return fmt.Sprintf("%s for %s: %d closed issues, %d commits, %d created pull requests and %d merged pull requests.",
			r.Title(), r.Organization,
			r.Count(domain.CategoryClosedIssues),
			r.Count(domain.CategoryCommits),
			r.Count(domain.CategoryCreatedPullRequests),
			r.Count(domain.CategoryMergedPullRequests),
		)
	}
	scope := ""
	if r.Organization != "" {
		scope = fmt.Sprintf(" for the %s GitHub org", r.Organization)
	}
	return fmt.Sprintf("Here's my %s summary%s. %d closed issues, %d opened issues and %d commits.",
		r.Interval, scope,
		r.Count(domain.CategoryClosedIssues),
		r.Count(domain.CategoryOpenIssues),
		r.Count(domain.CategoryCommits),
	)
}

func messageOrDefault(message string) string {
	if strings.TrimSpace(message) == "" {
		return DefaultMessage
	}
	return message
}
