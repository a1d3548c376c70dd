package domain

import "time"

// Kind tags the type of activity an ActivityRecord describes.
type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pull_request"
	KindCommit      Kind = "commit"
)

// ActivityRecord is a normalized unit of activity extracted from a query response.
// RepositoryName is empty when the owning repository is unknown.
type ActivityRecord struct {
	Kind            Kind
	Author          string
	MergedBy        string
	RepositoryOwner string
	RepositoryName  string
	CreatedAt       *time.Time
	ClosedAt        *time.Time
	MergedAt        *time.Time
	PushedAt        *time.Time
}

// Identity describes the user or organization a report is about.
type Identity struct {
	Name      string
	AvatarURL string
	URL       string
}
