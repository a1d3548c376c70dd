package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterCriteria_PassesRepositoryList(t *testing.T) {
	testCases := []struct {
		name       string
		criteria   FilterCriteria
		repository string
		expected   bool
	}{
		{name: "no lists", criteria: FilterCriteria{}, repository: "api", expected: true},
		{name: "included", criteria: FilterCriteria{IncludeRepositories: []string{"api"}}, repository: "api", expected: true},
		{name: "not included", criteria: FilterCriteria{IncludeRepositories: []string{"api"}}, repository: "web", expected: false},
		{name: "excluded", criteria: FilterCriteria{ExcludeRepositories: []string{"web"}}, repository: "web", expected: false},
		{name: "exclude overrides include", criteria: FilterCriteria{IncludeRepositories: []string{"api"}, ExcludeRepositories: []string{"api"}}, repository: "api", expected: false},
		{name: "unknown repository with include list", criteria: FilterCriteria{IncludeRepositories: []string{"api"}}, repository: "", expected: false},
		{name: "unknown repository with exclude list", criteria: FilterCriteria{ExcludeRepositories: []string{"api"}}, repository: "", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.criteria.PassesRepositoryList(tc.repository))
		})
	}
}

func TestFilterCriteria_PassesOrganization(t *testing.T) {
	record := ActivityRecord{RepositoryOwner: "other-org"}

	assert.True(t, FilterCriteria{}.PassesOrganization(record))
	assert.False(t, FilterCriteria{Organization: "acme"}.PassesOrganization(record))
	assert.True(t, FilterCriteria{Organization: "other-org"}.PassesOrganization(record))
	assert.False(t, FilterCriteria{Organization: "Other-Org"}.PassesOrganization(record))
}

func TestFilterCriteria_PassesTeamMembership(t *testing.T) {
	c := FilterCriteria{TeamMembers: []string{"alice", "bob"}}

	assert.True(t, c.PassesTeamMembership("alice"))
	assert.False(t, c.PassesTeamMembership("carol"))
	assert.False(t, c.PassesTeamMembership(""))
	assert.False(t, FilterCriteria{TeamMembers: []string{""}}.PassesTeamMembership(""))
}

func TestFilterCriteria_Select(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour)
	lastYear := now.AddDate(-1, 0, -1)

	t.Run("team members only", func(t *testing.T) {
		c := FilterCriteria{TeamMembers: []string{"alice", "bob"}}
		issues := []ActivityRecord{
			{Kind: KindIssue, Author: "alice", ClosedAt: &today},
			{Kind: KindIssue, Author: "carol", ClosedAt: &today},
		}

		got := c.Select(issues, RuleTeamClosedIssues, Daily, now)

		assert.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].Author)
	})

	t.Run("organization mismatch excludes regardless of date", func(t *testing.T) {
		c := FilterCriteria{Organization: "acme"}
		records := []ActivityRecord{
			{Kind: KindIssue, RepositoryOwner: "other-org", CreatedAt: &today},
			{Kind: KindIssue, RepositoryOwner: "other-org", CreatedAt: &lastYear},
		}

		for _, i := range Intervals {
			assert.Empty(t, c.Select(records, RuleOpenIssues, i, now))
		}
	})

	t.Run("merged by subject", func(t *testing.T) {
		c := FilterCriteria{TeamMembers: []string{"bob"}}
		prs := []ActivityRecord{
			{Kind: KindPullRequest, Author: "carol", MergedBy: "bob", MergedAt: &today},
			{Kind: KindPullRequest, Author: "bob", MergedBy: "carol", MergedAt: &today},
		}

		assert.Equal(t, prs[:1], c.Select(prs, RuleMergedPullRequests, Daily, now))
		assert.Equal(t, prs[1:], c.Select(prs, RuleCreatedPullRequests, Daily, now))
	})

	t.Run("reference timestamp is chosen by the rule", func(t *testing.T) {
		c := FilterCriteria{}
		issue := ActivityRecord{Kind: KindIssue, CreatedAt: &lastYear, ClosedAt: &today}

		assert.Len(t, c.Select([]ActivityRecord{issue}, RuleClosedIssues, Daily, now), 1)
		assert.Empty(t, c.Select([]ActivityRecord{issue}, RuleOpenIssues, Daily, now))
	})

	t.Run("idempotent", func(t *testing.T) {
		c := FilterCriteria{
			Organization:        "acme",
			IncludeRepositories: []string{"api", "web"},
			ExcludeRepositories: []string{"web"},
			TeamMembers:         []string{"alice"},
		}
		records := []ActivityRecord{
			{Kind: KindCommit, Author: "alice", RepositoryOwner: "acme", RepositoryName: "api", PushedAt: &today},
			{Kind: KindCommit, Author: "alice", RepositoryOwner: "acme", RepositoryName: "web", PushedAt: &today},
			{Kind: KindCommit, Author: "bob", RepositoryOwner: "acme", RepositoryName: "api", PushedAt: &today},
			{Kind: KindCommit, Author: "alice", RepositoryOwner: "acme", RepositoryName: "api", PushedAt: nil},
			{Kind: KindCommit, Author: "alice", RepositoryOwner: "acme", RepositoryName: "api", PushedAt: &lastYear},
		}

		once := c.Select(records, RuleCommits, Weekly, now)
		twice := c.Select(once, RuleCommits, Weekly, now)

		assert.Len(t, once, 1)
		assert.Equal(t, once, twice)
	})
}
