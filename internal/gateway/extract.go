package gateway

import (
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/shurcooL/githubv4"
)

// Identity returns the display identity of a user response.
func (u *UserActivity) Identity() domain.Identity {
	if u == nil {
		return domain.Identity{}
	}
	return domain.Identity{Name: u.Name, AvatarURL: u.AvatarURL, URL: u.URL}
}

// Identity returns the display identity of the organization.
func (o *OrgCommits) Identity() domain.Identity {
	if o == nil {
		return domain.Identity{}
	}
	return domain.Identity{Name: o.Name, AvatarURL: o.AvatarURL, URL: o.URL}
}

// Identity returns the display identity of the organization.
func (o *OrgIssues) Identity() domain.Identity {
	if o == nil {
		return domain.Identity{}
	}
	return domain.Identity{Name: o.Name, AvatarURL: o.AvatarURL, URL: o.URL}
}

// Identity returns the display identity of the organization.
func (o *OrgPullRequests) Identity() domain.Identity {
	if o == nil {
		return domain.Identity{}
	}
	return domain.Identity{Name: o.Name, AvatarURL: o.AvatarURL, URL: o.URL}
}

// UserClosedIssues flattens the closed issues of a user response.
func UserClosedIssues(u *UserActivity) []domain.ActivityRecord {
	if u == nil {
		return nil
	}
	return issueRecords(u.ClosedIssues)
}

// UserOpenIssues flattens the open issues of a user response.
func UserOpenIssues(u *UserActivity) []domain.ActivityRecord {
	if u == nil {
		return nil
	}
	return issueRecords(u.OpenIssues)
}

// UserCommits walks contributions, refs and commit history of a user response.
// A commit belongs to the contributed repository enclosing it; the ref's own
// repository name is used only when the contribution carries no name.
func UserCommits(u *UserActivity) []domain.ActivityRecord {
	if u == nil || u.Contributions == nil {
		return nil
	}
	var records []domain.ActivityRecord
	for _, repo := range u.Contributions.Nodes {
		owner := loginOf(repo.Owner)
		if repo.Refs == nil {
			continue
		}
		for _, ref := range repo.Refs.Nodes {
			name := repo.Name
			if name == "" && ref.Repository != nil {
				name = ref.Repository.Name
			}
			records = append(records, refCommits(ref, owner, name)...)
		}
	}
	return records
}

// OrganizationCommits walks repositories, refs and commit history of an organization response.
func OrganizationCommits(o *OrgCommits) []domain.ActivityRecord {
	if o == nil || o.Repositories == nil {
		return nil
	}
	var records []domain.ActivityRecord
	for _, edge := range o.Repositories.Edges {
		if edge.Node == nil || edge.Node.Refs == nil {
			continue
		}
		for _, ref := range edge.Node.Refs.Nodes {
			records = append(records, refCommits(ref, o.Login, edge.Node.Name)...)
		}
	}
	return records
}

// OrganizationIssues flattens the closed issues of every repository of an organization response.
func OrganizationIssues(o *OrgIssues) []domain.ActivityRecord {
	if o == nil || o.Repositories == nil {
		return nil
	}
	var records []domain.ActivityRecord
	for _, edge := range o.Repositories.Edges {
		if edge.Node == nil || edge.Node.Issues == nil {
			continue
		}
		for _, issue := range edge.Node.Issues.Edges {
			if issue.Node == nil {
				continue
			}
			records = append(records, domain.ActivityRecord{
				Kind:            domain.KindIssue,
				Author:          loginOf(issue.Node.Author),
				RepositoryOwner: o.Login,
				RepositoryName:  edge.Node.Name,
				CreatedAt:       timeOf(issue.Node.CreatedAt),
				ClosedAt:        timeOf(issue.Node.ClosedAt),
			})
		}
	}
	return records
}

// OrganizationPullRequests flattens the merged pull requests of every repository of an organization response.
func OrganizationPullRequests(o *OrgPullRequests) []domain.ActivityRecord {
	if o == nil || o.Repositories == nil {
		return nil
	}
	var records []domain.ActivityRecord
	for _, edge := range o.Repositories.Edges {
		if edge.Node == nil || edge.Node.PullRequests == nil {
			continue
		}
		for _, pr := range edge.Node.PullRequests.Edges {
			if pr.Node == nil {
				continue
			}
			records = append(records, domain.ActivityRecord{
				Kind:            domain.KindPullRequest,
				Author:          loginOf(pr.Node.Author),
				MergedBy:        loginOf(pr.Node.MergedBy),
				RepositoryOwner: o.Login,
				RepositoryName:  edge.Node.Name,
				CreatedAt:       timeOf(pr.Node.CreatedAt),
				ClosedAt:        timeOf(pr.Node.ClosedAt),
				MergedAt:        timeOf(pr.Node.MergedAt),
			})
		}
	}
	return records
}

func issueRecords(issues *issueNodes) []domain.ActivityRecord {
	if issues == nil {
		return nil
	}
	records := make([]domain.ActivityRecord, 0, len(issues.Nodes))
	for _, issue := range issues.Nodes {
		r := domain.ActivityRecord{
			Kind:      domain.KindIssue,
			Author:    loginOf(issue.Author),
			CreatedAt: timeOf(issue.CreatedAt),
			ClosedAt:  timeOf(issue.ClosedAt),
		}
		if issue.Repository != nil {
			r.RepositoryName = issue.Repository.Name
			r.RepositoryOwner = loginOf(issue.Repository.Owner)
		}
		records = append(records, r)
	}
	return records
}

func refCommits(ref refNode, owner, repository string) []domain.ActivityRecord {
	if ref.Target == nil || ref.Target.Commit.History == nil {
		return nil
	}
	records := make([]domain.ActivityRecord, 0, len(ref.Target.Commit.History.Edges))
	for _, edge := range ref.Target.Commit.History.Edges {
		if edge.Node == nil {
			continue
		}
		var author string
		if edge.Node.Author != nil {
			author = loginOf(edge.Node.Author.User)
		}
		records = append(records, domain.ActivityRecord{
			Kind:            domain.KindCommit,
			Author:          author,
			RepositoryOwner: owner,
			RepositoryName:  repository,
			PushedAt:        timeOf(edge.Node.CommittedDate),
		})
	}
	return records
}

func loginOf(l *login) string {
	if l == nil {
		return ""
	}
	return l.Login
}

func timeOf(dt *githubv4.DateTime) *time.Time {
	if dt == nil || dt.IsZero() {
		return nil
	}
	t := dt.Time
	return &t
}
