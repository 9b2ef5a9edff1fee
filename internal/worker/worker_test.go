package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocoder89/toolhub/internal/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSweeper struct {
	calls atomic.Int32
	fn    func(call int32) (int64, error)
}

func (f *fakeSweeper) DeleteDangling(context.Context) (int64, error) {
	n := f.calls.Add(1)
	if f.fn != nil {
		return f.fn(n)
	}
	return 0, nil
}

type pingFunc func(ctx context.Context) error

func (p pingFunc) Ping(ctx context.Context) error { return p(ctx) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	ceiling := time.Second
	jitter := 250 * time.Millisecond

	tests := []struct {
		attempt int
		floor   time.Duration
	}{
		{attempt: 0, floor: base},
		{attempt: 1, floor: 2 * base},
		{attempt: 2, floor: 4 * base},
		{attempt: 10, floor: ceiling},
		{attempt: -1, floor: base},
	}

	for _, tt := range tests {
		got := ExponentialBackoff(tt.attempt, base, ceiling)
		assert.GreaterOrEqual(t, got, tt.floor, "attempt %d", tt.attempt)
		assert.Less(t, got, tt.floor+jitter, "attempt %d", tt.attempt)
	}
}

func TestRunOnce_RecordsMetrics(t *testing.T) {
	prom := observability.NewProm(prometheus.NewRegistry())
	sweeper := &fakeSweeper{fn: func(int32) (int64, error) { return 3, nil }}

	r := New(Config{}, sweeper, nil, prom, quietLogger())

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	snap := r.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.Runs)
	assert.Equal(t, uint64(0), snap.Failed)
	assert.Equal(t, uint64(3), snap.Deleted)
	assert.NotNil(t, snap.LastSuccess)

	assert.Equal(t, float64(1), testutil.ToFloat64(prom.ReconcileRuns.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(prom.ReconcileDeleted))
}

func TestRunOnce_Failure(t *testing.T) {
	boom := errors.New("db down")
	sweeper := &fakeSweeper{fn: func(int32) (int64, error) { return 0, boom }}

	r := New(Config{}, sweeper, nil, nil, quietLogger())

	_, err := r.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)

	snap := r.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.Runs)
	assert.Equal(t, uint64(1), snap.Failed)
	assert.Nil(t, snap.LastSuccess)
}

func TestRun_SweepsImmediatelyAndStopsOnCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := New(Config{Interval: time.Hour}, sweeper, nil, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, r.isReady, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), sweeper.calls.Load())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.False(t, r.isReady())
	assert.Equal(t, int32(1), sweeper.calls.Load(), "hour interval must not trigger a second pass")
}

func TestRun_NotReadyUntilFirstSuccess(t *testing.T) {
	release := make(chan struct{})
	sweeper := &fakeSweeper{fn: func(call int32) (int64, error) {
		if call == 1 {
			return 0, errors.New("db down")
		}
		<-release
		return 0, nil
	}}
	r := New(Config{Interval: time.Hour, RetryBase: time.Millisecond}, sweeper, nil, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return sweeper.calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, r.isReady(), "a failed pass must not mark the worker ready")

	close(release)
	require.Eventually(t, r.isReady, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_RetriesAfterFailure(t *testing.T) {
	sweeper := &fakeSweeper{fn: func(call int32) (int64, error) {
		if call == 1 {
			return 0, errors.New("transient")
		}
		return 0, nil
	}}

	// the retry fires after RetryBase (+jitter), long before Interval
	r := New(Config{Interval: time.Hour, RetryBase: 10 * time.Millisecond}, sweeper, nil, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	snap := r.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.Failed)
}

func TestHealthHandler(t *testing.T) {
	r := New(Config{}, &fakeSweeper{}, nil, observability.NewProm(prometheus.NewRegistry()), quietLogger())

	var pingErr error
	h := r.HealthHandler(pingFunc(func(context.Context) error { return pingErr }))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/healthz").Code)

	// not running yet
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code)

	r.setReady(true)
	assert.Equal(t, http.StatusOK, get("/readyz").Code)

	pingErr = errors.New("connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code)

	_, _ = r.RunOnce(context.Background())
	w := get("/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var snap observability.ReconcileMetricsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.Runs)

	assert.Equal(t, http.StatusOK, get("/metrics").Code)
}
