// Package telemetry configures OpenTelemetry tracing for a run.
package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// Config configures OpenTelemetry tracing setup.
type Config struct {
	Enabled     bool
	ServiceName string
	// Logger receives one entry per finished span when tracing is enabled.
	Logger *zap.Logger
}

// Runtime contains initialized telemetry providers and lifecycle hooks.
type Runtime struct {
	TracerProvider *sdktrace.TracerProvider
	Shutdown       func(ctx context.Context) error
}

// Setup initializes global OpenTelemetry tracing according to the provided configuration.
func Setup(cfg Config) (Runtime, error) {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "debriefr"
	}

	resourceConfig, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return Runtime{}, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(resourceConfig)}
	if cfg.Enabled {
		logger := cfg.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		opts = append(opts,
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithSpanProcessor(&logProcessor{logger: logger}),
		)
	} else {
		opts = append(opts, sdktrace.WithSampler(sdktrace.NeverSample()))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return Runtime{
		TracerProvider: provider,
		Shutdown:       provider.Shutdown,
	}, nil
}

// logProcessor writes finished spans to the logger.
type logProcessor struct {
	logger *zap.Logger
}

func (p *logProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := []zap.Field{
		zap.String("span", s.Name()),
		zap.String("trace_id", s.SpanContext().TraceID().String()),
		zap.Duration("duration", s.EndTime().Sub(s.StartTime())),
		zap.String("status", s.Status().Code.String()),
	}
	for _, kv := range s.Attributes() {
		fields = append(fields, zap.String("attr."+string(kv.Key), kv.Value.Emit()))
	}
	p.logger.Info("span finished", fields...)
}

func (p *logProcessor) Shutdown(context.Context) error { return nil }

func (p *logProcessor) ForceFlush(context.Context) error { return nil }
