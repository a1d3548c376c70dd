package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/naka-gawa/debriefr/internal/domain"
	"github.com/naka-gawa/debriefr/internal/gateway"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchUser(ctx context.Context, login string) gateway.Result[gateway.UserActivity] {
	args := m.Called(ctx, login)
	return args.Get(0).(gateway.Result[gateway.UserActivity])
}

func (m *mockFetcher) FetchOrganizationCommits(ctx context.Context, org string) gateway.Result[gateway.OrgCommits] {
	args := m.Called(ctx, org)
	return args.Get(0).(gateway.Result[gateway.OrgCommits])
}

func (m *mockFetcher) FetchOrganizationIssues(ctx context.Context, org string) gateway.Result[gateway.OrgIssues] {
	args := m.Called(ctx, org)
	return args.Get(0).(gateway.Result[gateway.OrgIssues])
}

func (m *mockFetcher) FetchOrganizationPullRequests(ctx context.Context, org string) gateway.Result[gateway.OrgPullRequests] {
	args := m.Called(ctx, org)
	return args.Get(0).(gateway.Result[gateway.OrgPullRequests])
}

// mockNotifier records every message it is asked to send.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, msg domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// sentMessage returns the single message passed to Send.
func sentMessage(t *testing.T, n *mockNotifier) domain.Message {
	t.Helper()
	var sends []mock.Call
	for _, c := range n.Calls {
		if c.Method == "Send" {
			sends = append(sends, c)
		}
	}
	require.Len(t, sends, 1)
	return sends[0].Arguments.Get(1).(domain.Message)
}

// recordingObserver collects observations for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	counts   map[string][]domain.CategoryCount
	failures []domain.Category
}

func (r *recordingObserver) ObserveCounts(report string, counts []domain.CategoryCount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string][]domain.CategoryCount{}
	}
	r.counts[report] = counts
}

func (r *recordingObserver) ObserveQueryFailure(_ string, category domain.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, category)
}

// fixture decodes a GraphQL-shaped JSON document into a response type.
func fixture[T any](t *testing.T, doc string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(doc), &v))
	return &v
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
