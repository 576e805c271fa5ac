package telemetry

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(config.ProfilingConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())

	var nilProfiler *Profiler
	assert.False(t, nilProfiler.Enabled())
	assert.NoError(t, nilProfiler.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(config.ProfilingConfig{Enabled: true}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")

	_, err = NewProfiler(config.ProfilingConfig{
		Enabled:       true,
		ServerAddress: "http://localhost:4040",
		ProfileTypes:  []string{"cpu", "heap"},
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"heap"`)
}

func TestProfileTypes(t *testing.T) {
	types, err := ProfileTypes([]string{"cpu", "inuse_space", "mutex_count"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileMutexCount,
	}, types)

	types, err = ProfileTypes(nil)
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestWithProfilingLabels(t *testing.T) {
	var route, method string
	var role bool
	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelRoute:      "/api/v1/basket",
		ProfilingLabelMethod:     "POST",
		ProfilingLabelCallerRole: "",
	}, func(ctx context.Context) {
		route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		method, _ = pprof.Label(ctx, ProfilingLabelMethod)
		_, role = pprof.Label(ctx, ProfilingLabelCallerRole)
	})
	assert.Equal(t, "/api/v1/basket", route)
	assert.Equal(t, "POST", method)
	assert.False(t, role, "empty values are not attached")

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}

func TestEnableSpanProfiles_DisabledTracer(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.NotPanics(t, tp.EnableSpanProfiles)
}
