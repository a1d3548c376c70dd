package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name          string
		enabled       bool
		expectEntries int
		expectSampled bool
	}{
		{name: "disabled tracing drops spans", enabled: false, expectEntries: 0, expectSampled: false},
		{name: "enabled tracing logs spans", enabled: true, expectEntries: 1, expectSampled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			runtime, err := Setup(Config{Enabled: tc.enabled, Logger: zap.New(core)})
			require.NoError(t, err)
			require.NotNil(t, runtime.TracerProvider)

			_, span := runtime.TracerProvider.Tracer("test").Start(context.Background(), "gateway.query.user")
			span.SetAttributes(attribute.String("github.login", "alice"))
			assert.Equal(t, tc.expectSampled, span.SpanContext().IsSampled())
			span.End()

			require.NoError(t, runtime.Shutdown(context.Background()))

			entries := logs.FilterMessage("span finished").All()
			require.Len(t, entries, tc.expectEntries)
			if tc.expectEntries > 0 {
				fields := entries[0].ContextMap()
				assert.Equal(t, "gateway.query.user", fields["span"])
				assert.Equal(t, "alice", fields["attr.github.login"])
			}
		})
	}
}
