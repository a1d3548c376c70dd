package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/naka-gawa/debriefr/internal/config"
	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/gateway"
	"github.com/naka-gawa/debriefr/internal/metrics"
	"github.com/naka-gawa/debriefr/internal/notifier"
	"github.com/naka-gawa/debriefr/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// session bundles what every report command needs for one run.
type session struct {
	logger    *zap.Logger
	cfg       *config.Config
	recorder  *metrics.Recorder
	telemetry telemetry.Runtime
	pushURL   string
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	configPath, _ := flags.GetString("config")
	pushURL, _ := flags.GetString("pushgateway")
	trace, _ := flags.GetBool("trace")

	logger := newLogger(cmd.ErrOrStderr(), verbose).With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", cmd.Name()),
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	telemetryRuntime, err := telemetry.Setup(telemetry.Config{
		Enabled:     trace,
		ServiceName: "debriefr",
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	return &session{
		logger:    logger,
		cfg:       cfg,
		recorder:  metrics.NewRecorder(),
		telemetry: telemetryRuntime,
		pushURL:   pushURL,
	}, nil
}

// newLogger writes console-encoded entries to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

// newGateway builds the GitHub gateway and logs the remaining rate budget.
func (s *session) newGateway(ctx context.Context) (*gateway.GitHubGateway, error) {
	gw, err := gateway.NewGitHubGateway(gateway.Credentials{URL: s.cfg.GitHub.URL, Token: s.cfg.GitHub.Token}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("create GitHub gateway: %w", err)
	}
	budget, err := gw.RateBudget(ctx)
	if err != nil {
		s.logger.Warn("could not read GitHub rate limit", zap.Error(err))
		return gw, nil
	}
	s.logger.Info("GitHub rate limit",
		zap.Int("limit", budget.Limit),
		zap.Int("remaining", budget.Remaining),
		zap.Time("reset", budget.Reset),
	)
	return gw, nil
}

func (s *session) newNotifier() *notifier.SlackNotifier {
	return notifier.NewSlackNotifier(notifier.SlackConfig{
		Token:  s.cfg.Slack.Token,
		APIURL: s.cfg.Slack.APIURL,
	}, s.logger)
}

// close pushes the run metrics when a Pushgateway is set and flushes telemetry.
func (s *session) close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if s.pushURL != "" {
		pushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := s.recorder.Push(pushCtx, s.pushURL); err != nil {
			s.logger.Warn("failed to push metrics", zap.Error(err))
		} else {
			s.logger.Debug("metrics pushed", zap.String("url", s.pushURL))
		}
		cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = s.telemetry.Shutdown(shutdownCtx)
	_ = s.logger.Sync()
}

// parseIntervalFlag accepts the interval names case-insensitively.
func parseIntervalFlag(name string) (domain.Interval, error) {
	if !domain.IsKnownInterval(name) {
		names := make([]string, 0, len(domain.Intervals))
		for _, i := range domain.Intervals {
			names = append(names, string(i))
		}
		return "", fmt.Errorf("invalid interval %q: must be one of %s", name, strings.Join(names, ", "))
	}
	return domain.ParseInterval(name), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
