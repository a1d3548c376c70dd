package domain

import (
	"slices"
	"time"
)

// FilterCriteria restricts which records contribute to a report.
type FilterCriteria struct {
	Organization        string
	IncludeRepositories []string
	ExcludeRepositories []string
	TeamMembers         []string
}

// Reference selects which timestamp of a record is checked against the interval.
type Reference int

const (
	ReferenceCreatedAt Reference = iota
	ReferenceClosedAt
	ReferenceMergedAt
	ReferencePushedAt
)

// Subject selects which login of a record is checked against TeamMembers.
type Subject int

const (
	SubjectNone Subject = iota
	SubjectAuthor
	SubjectMergedBy
)

// Rule parameterizes Select for one record category.
type Rule struct {
	Reference Reference
	Subject   Subject
}

// Rules for each report category.
var (
	RuleClosedIssues        = Rule{Reference: ReferenceClosedAt}
	RuleOpenIssues          = Rule{Reference: ReferenceCreatedAt}
	RuleCommits             = Rule{Reference: ReferencePushedAt, Subject: SubjectAuthor}
	RuleTeamClosedIssues    = Rule{Reference: ReferenceClosedAt, Subject: SubjectAuthor}
	RuleCreatedPullRequests = Rule{Reference: ReferenceMergedAt, Subject: SubjectAuthor}
	RuleMergedPullRequests  = Rule{Reference: ReferenceMergedAt, Subject: SubjectMergedBy}
)

// PassesOrganization reports whether the record's owner matches the organization filter.
// The match is exact and case-sensitive.
func (c FilterCriteria) PassesOrganization(r ActivityRecord) bool {
	if c.Organization == "" {
		return true
	}
	return r.RepositoryOwner == c.Organization
}

// PassesRepositoryList applies the include list and then the exclude list.
// Exclusion always wins over inclusion.
func (c FilterCriteria) PassesRepositoryList(repository string) bool {
	if len(c.IncludeRepositories) > 0 && !slices.Contains(c.IncludeRepositories, repository) {
		return false
	}
	if len(c.ExcludeRepositories) > 0 && slices.Contains(c.ExcludeRepositories, repository) {
		return false
	}
	return true
}

// PassesTeamMembership reports whether login is a non-empty member of the team.
func (c FilterCriteria) PassesTeamMembership(login string) bool {
	return login != "" && slices.Contains(c.TeamMembers, login)
}

// Eligible reports whether a single record passes every predicate of the rule.
func (c FilterCriteria) Eligible(r ActivityRecord, rule Rule, interval Interval, now time.Time) bool {
	if !c.PassesOrganization(r) || !c.PassesRepositoryList(r.RepositoryName) {
		return false
	}
	switch rule.Subject {
	case SubjectAuthor:
		if !c.PassesTeamMembership(r.Author) {
			return false
		}
	case SubjectMergedBy:
		if !c.PassesTeamMembership(r.MergedBy) {
			return false
		}
	}
	return interval.Contains(referenceOf(r, rule.Reference), now)
}

// Select returns the records eligible under rule, preserving input order.
func (c FilterCriteria) Select(records []ActivityRecord, rule Rule, interval Interval, now time.Time) []ActivityRecord {
	selected := make([]ActivityRecord, 0, len(records))
	for _, r := range records {
		if c.Eligible(r, rule, interval, now) {
			selected = append(selected, r)
		}
	}
	return selected
}

func referenceOf(r ActivityRecord, ref Reference) *time.Time {
	switch ref {
	case ReferenceClosedAt:
		return r.ClosedAt
	case ReferenceMergedAt:
		return r.MergedAt
	case ReferencePushedAt:
		return r.PushedAt
	default:
		return r.CreatedAt
	}
}
