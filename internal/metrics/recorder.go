// Package metrics exports the outcome of a report run to a Prometheus Pushgateway.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	namespace = "debriefr"
	jobName   = "debriefr"
)

// Recorder collects per-category counts and query failures on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	activity *prometheus.GaugeVec
	failures *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
	now      func() time.Time
}

// NewRecorder creates a new Recorder instance.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		activity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_activity",
			Help:      "Number of records counted per report category in the last run.",
		}, []string{"report", "category"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_failures_total",
			Help:      "Queries that failed and were reported as empty categories.",
		}, []string{"report", "category"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last report built.",
		}, []string{"report"}),
		now: time.Now,
	}
	r.registry.MustRegister(r.activity, r.failures, r.lastRun)
	return r
}

// ObserveCounts records the category counts of a built report.
func (r *Recorder) ObserveCounts(report string, counts []domain.CategoryCount) {
	for _, cc := range counts {
		r.activity.WithLabelValues(report, string(cc.Category)).Set(float64(cc.Count))
	}
	r.lastRun.WithLabelValues(report).Set(float64(r.now().Unix()))
}

// ObserveQueryFailure counts a category zeroed by a failed query.
func (r *Recorder) ObserveQueryFailure(report string, category domain.Category) {
	r.failures.WithLabelValues(report, string(category)).Inc()
}

// Gatherer exposes the registry, e.g. for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push replaces the debriefr job's metrics on the Pushgateway at url.
func (r *Recorder) Push(ctx context.Context, url string) error {
	if err := push.New(url, jobName).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
