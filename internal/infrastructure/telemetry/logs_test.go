package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type exportedRecord struct {
	body     string
	severity log.Severity
}

type recordingProcessor struct {
	mu      sync.Mutex
	records []exportedRecord
}

func (p *recordingProcessor) OnEmit(_ context.Context, r *sdklog.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, exportedRecord{body: r.Body().AsString(), severity: r.Severity()})
	return nil
}

func (p *recordingProcessor) Enabled(context.Context, sdklog.EnabledParameters) bool { return true }
func (p *recordingProcessor) Shutdown(context.Context) error                         { return nil }
func (p *recordingProcessor) ForceFlush(context.Context) error                       { return nil }

func (p *recordingProcessor) Records() []exportedRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]exportedRecord(nil), p.records...)
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.Enabled())
	assert.NoError(t, lp.Shutdown(context.Background()))

	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, "shopfeed", zapcore.InfoLevel))
}

func TestLoggerProvider_Bridge(t *testing.T) {
	processor := &recordingProcessor{}
	lp := NewLoggerProviderWithProcessor(processor, nil)
	require.True(t, lp.Enabled())

	core, local := observer.New(zapcore.DebugLevel)
	bridged := lp.Bridge(zap.New(core), "shopfeed", zapcore.InfoLevel)

	bridged.Debug("feed fetched")
	bridged.Info("import finished", zap.String("shop", "Euroset"))
	bridged.With(zap.String("order_id", "42")).Error("mail failed")

	assert.Equal(t, 3, local.Len(), "the base logger keeps every entry")

	records := processor.Records()
	require.Len(t, records, 2, "debug stays below the export level")
	assert.Equal(t, "import finished", records[0].body)
	assert.Equal(t, log.SeverityInfo, records[0].severity)
	assert.Equal(t, "mail failed", records[1].body)
	assert.Equal(t, log.SeverityError, records[1].severity)

	require.NoError(t, lp.Shutdown(context.Background()))
}
