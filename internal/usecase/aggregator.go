// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/debriefr/internal/domain"
)

// DefaultTopN is the number of repositories shown in a rendered summary.
const DefaultTopN = 3

// Aggregation is the per-repository breakdown of a list of commits.
type Aggregation struct {
	// Counts maps each known repository to its commit count.
	Counts map[string]int
	// Ranked lists every known repository, most commits first. Ties keep the
	// order in which repositories were first seen.
	Ranked []domain.RepositoryContribution
	// Unattributed counts commits whose repository is unknown.
	Unattributed int
}

// Aggregate groups commits by repository and ranks the repositories by commit count.
func Aggregate(commits []domain.ActivityRecord) Aggregation {
	agg := Aggregation{
		Counts: make(map[string]int),
		Ranked: []domain.RepositoryContribution{},
	}

	var order []string
	for _, c := range commits {
		if c.RepositoryName == "" {
			agg.Unattributed++
			continue
		}
		if _, seen := agg.Counts[c.RepositoryName]; !seen {
			order = append(order, c.RepositoryName)
		}
		agg.Counts[c.RepositoryName]++
	}

	for _, name := range order {
		agg.Ranked = append(agg.Ranked, domain.RepositoryContribution{Repository: name, Commits: agg.Counts[name]})
	}
	sort.SliceStable(agg.Ranked, func(i, j int) bool {
		return agg.Ranked[i].Commits > agg.Ranked[j].Commits
	})
	return agg
}

// Top returns the first n ranked repositories. A non-positive n means DefaultTopN.
func (a Aggregation) Top(n int) []domain.RepositoryContribution {
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(a.Ranked) {
		n = len(a.Ranked)
	}
	return a.Ranked[:n]
}

// Spread returns the mean and median number of commits per repository.
// Both are zero when no repository received commits.
func (a Aggregation) Spread() (mean, median float64) {
	data := make(stats.Float64Data, 0, len(a.Ranked))
	for _, r := range a.Ranked {
		data = append(data, float64(r.Commits))
	}
	if len(data) == 0 {
		return 0, 0
	}
	mean, _ = stats.Mean(data)
	median, _ = stats.Median(data)
	return mean, median
}
