package gateway

import "github.com/shurcooL/githubv4"

// The types in this file mirror the nested GraphQL response shapes. Every
// optional object is a pointer so that a null anywhere in the tree decodes
// to nil instead of failing the whole query.

type login struct {
	Login string
}

type commitAuthor struct {
	User *login
}

type commitNode struct {
	CommittedDate *githubv4.DateTime
	Author        *commitAuthor
}

type historyEdge struct {
	Node *commitNode
}

type historyConnection struct {
	Edges []historyEdge
}

type commitFragment struct {
	History *historyConnection `graphql:"history(first: $historySize)"`
}

type refTarget struct {
	Commit commitFragment `graphql:"... on Commit"`
}

type repositoryName struct {
	Name string
}

type refNode struct {
	Repository *repositoryName
	Target     *refTarget
}

type refConnection struct {
	Nodes []refNode
}

type issueRepository struct {
	Name  string
	Owner *login
}

type issueNode struct {
	Title      string
	Author     *login
	Repository *issueRepository
	CreatedAt  *githubv4.DateTime
	ClosedAt   *githubv4.DateTime
}

type issueNodes struct {
	Nodes []issueNode
}

type contributedRepository struct {
	Name  string
	Owner *login
	Refs  *refConnection `graphql:"refs(last: 100, refPrefix: \"refs/heads/\")"`
}

type contributionConnection struct {
	Nodes []contributedRepository
}

// UserActivity is the response of the user report query.
type UserActivity struct {
	Name          string
	AvatarURL     string                  `graphql:"avatarUrl"`
	URL           string                  `graphql:"url"`
	ClosedIssues  *issueNodes             `graphql:"closedIssues: issues(first: 100, states: CLOSED, orderBy: {field: CREATED_AT, direction: DESC})"`
	OpenIssues    *issueNodes             `graphql:"openIssues: issues(first: 100, states: OPEN, orderBy: {field: CREATED_AT, direction: DESC})"`
	Contributions *contributionConnection `graphql:"contributions: repositoriesContributedTo(first: 100, orderBy: {field: PUSHED_AT, direction: DESC}, contributionTypes: COMMIT)"`
}

type orgCommitRepository struct {
	Name string
	Refs *refConnection `graphql:"refs(last: 100, refPrefix: \"refs/heads/\")"`
}

type orgCommitEdge struct {
	Node *orgCommitRepository
}

type orgCommitRepositories struct {
	Edges []orgCommitEdge
}

// OrgCommits is the response of the organization commits query.
type OrgCommits struct {
	Login        string
	Name         string
	AvatarURL    string                 `graphql:"avatarUrl"`
	URL          string                 `graphql:"url"`
	Repositories *orgCommitRepositories `graphql:"repositories(first: 100, orderBy: {field: PUSHED_AT, direction: DESC})"`
}

type orgIssue struct {
	Title     string
	CreatedAt *githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	Author    *login
}

type orgIssueEdge struct {
	Node *orgIssue
}

type orgIssueConnection struct {
	Edges []orgIssueEdge
}

type orgIssueRepository struct {
	Name   string
	Issues *orgIssueConnection `graphql:"issues(first: 100, states: CLOSED, orderBy: {field: CREATED_AT, direction: DESC})"`
}

type orgIssueRepositoryEdge struct {
	Node *orgIssueRepository
}

type orgIssueRepositories struct {
	Edges []orgIssueRepositoryEdge
}

// OrgIssues is the response of the organization closed issues query.
type OrgIssues struct {
	Login        string
	Name         string
	AvatarURL    string                `graphql:"avatarUrl"`
	URL          string                `graphql:"url"`
	Repositories *orgIssueRepositories `graphql:"repositories(first: 100, orderBy: {field: PUSHED_AT, direction: DESC})"`
}

type orgPullRequest struct {
	HeadRefName string
	BaseRefName string
	CreatedAt   *githubv4.DateTime
	ClosedAt    *githubv4.DateTime
	MergedAt    *githubv4.DateTime
	MergedBy    *login
	Author      *login
}

type orgPullRequestEdge struct {
	Node *orgPullRequest
}

type orgPullRequestConnection struct {
	Edges []orgPullRequestEdge
}

type orgPullRequestRepository struct {
	Name         string
	PullRequests *orgPullRequestConnection `graphql:"pullRequests(last: 100, states: MERGED, orderBy: {field: UPDATED_AT, direction: DESC})"`
}

type orgPullRequestRepositoryEdge struct {
	Node *orgPullRequestRepository
}

type orgPullRequestRepositories struct {
	Edges []orgPullRequestRepositoryEdge
}

// OrgPullRequests is the response of the organization merged pull requests query.
type OrgPullRequests struct {
	Login        string
	Name         string
	AvatarURL    string                      `graphql:"avatarUrl"`
	URL          string                      `graphql:"url"`
	Repositories *orgPullRequestRepositories `graphql:"repositories(first: 100, orderBy: {field: PUSHED_AT, direction: DESC})"`
}
