package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptor = "../adapters/file/testdata/machines.yaml"

func TestMetrics_CountsVerdicts(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng, err := acceptor.New(descriptor, acceptor.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	ctx := context.Background()
	for _, in := range []string{"ab", "aabb", "aab", "abx"} {
		_, err := eng.Check(ctx, "anbn", in)
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Checks.WithLabelValues("anbn", "pda", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Checks.WithLabelValues("anbn", "pda", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Checks.WithLabelValues("anbn", "pda", "malformed_input")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Steps))
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestCombine_RunsInOrder(t *testing.T) {
	var calls []string
	hook := func(name string) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnCheckEnd: func(context.Context, *domain.CheckEvent) { calls = append(calls, name) },
		}
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.Combine(hook("first"), observability.LogHooks(logger), hook("second"))

	eng, err := acceptor.New(descriptor, acceptor.WithLifecycleHooks(hooks))
	require.NoError(t, err)
	_, err = eng.Check(context.Background(), "ab-star", "ab")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Contains(t, buf.String(), "check started")
	assert.Contains(t, buf.String(), "verdict=accepted")
}
