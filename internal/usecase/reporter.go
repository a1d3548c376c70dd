package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/gateway"
	"go.uber.org/zap"
)

// Notifier delivers a rendered report to a chat channel.
type Notifier interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Observer receives the outcome of a run, e.g. to export it as metrics.
type Observer interface {
	ObserveCounts(report string, counts []domain.CategoryCount)
	ObserveQueryFailure(report string, category domain.Category)
}

type nopObserver struct{}

func (nopObserver) ObserveCounts(string, []domain.CategoryCount)  {}
func (nopObserver) ObserveQueryFailure(string, domain.Category) {}

// reporter holds what user and team reports share.
type reporter struct {
	fetcher  gateway.Fetcher
	notifier Notifier
	logger   *zap.Logger

	// Now is injected for testability.
	Now func() time.Time
	// Observer defaults to a no-op.
	Observer Observer
	// TopN bounds the ranked repository list; zero means DefaultTopN.
	TopN int
}

func newReporter(fetcher gateway.Fetcher, notifier Notifier, logger *zap.Logger) reporter {
	return reporter{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		Now:      time.Now,
		Observer: nopObserver{},
	}
}

func (r *reporter) queryFailed(kind ReportKind, err error, categories ...domain.Category) {
	for _, c := range categories {
		r.logger.Error("query failed, reporting category as empty",
			zap.String("report", string(kind)),
			zap.String("category", string(c)),
			zap.Error(err),
		)
		r.Observer.ObserveQueryFailure(string(kind), c)
	}
}

func (r *reporter) dispatch(ctx context.Context, report Report, channel string) error {
	mean, median := report.Aggregation.Spread()
	r.logger.Info("report built",
		zap.String("report", string(report.Kind)),
		zap.String("interval", string(report.Interval)),
		zap.Any("counts", report.Counts),
		zap.Int("repositories", len(report.Aggregation.Ranked)),
		zap.Int("unattributed_commits", report.Aggregation.Unattributed),
		zap.Float64("mean_commits_per_repository", mean),
		zap.Float64("median_commits_per_repository", median),
	)
	r.Observer.ObserveCounts(string(report.Kind), report.Counts)

	msg := domain.Message{
		Channel:     channel,
		AsUser:      true,
		Attachments: []domain.Attachment{report.Attachment()},
	}
	if err := r.notifier.Send(ctx, msg); err != nil {
		r.logger.Error("failed to send report", zap.String("channel", channel), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrDispatch, err)
	}
	r.logger.Info("report sent", zap.String("channel", channel))
	return nil
}
