// Package domain contains the core data structures and domain logic for the application.
package domain

// RepositoryContribution holds the number of commits attributed to a single repository.
type RepositoryContribution struct {
	Repository string `json:"repository"`
	Commits    int    `json:"commits"`
}

// Category names a counted list of records in a report.
type Category string

const (
	CategoryClosedIssues        Category = "closed_issues"
	CategoryOpenIssues          Category = "open_issues"
	CategoryCommits             Category = "commits"
	CategoryCreatedPullRequests Category = "created_pull_requests"
	CategoryMergedPullRequests  Category = "merged_pull_requests"
)

// Title is the human readable label used as a notification field title.
func (c Category) Title() string {
	switch c {
	case CategoryClosedIssues:
		return "Closed issues"
	case CategoryOpenIssues:
		return "Opened issues"
	case CategoryCommits:
		return "Commits"
	case CategoryCreatedPullRequests:
		return "Created pull requests"
	case CategoryMergedPullRequests:
		return "Merged pull requests"
	default:
		return string(c)
	}
}

// CategoryCount is the size of one filtered record list.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}
