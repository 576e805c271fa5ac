package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// RegisterGormTracing installs the otelgorm plugin plus a callback pair that
// flags queries slower than cfg.DBSlowQueryThresh on the statement span. The
// after hooks run before otelgorm ends that span.
func RegisterGormTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName("postgresql"), otelgorm.WithoutQueryVariables())); err != nil {
		return err
	}
	if err := registerSlowQueryCallbacks(db, cfg.DBSlowQueryThresh); err != nil {
		return err
	}
	logger.Info("Database tracing enabled", zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh))
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, threshold) }

	cb := db.Callback()
	registrations := []error{
		cb.Create().Before("gorm:create").Register("shopfeed_timing:before_create", before),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("shopfeed_timing:after_create", after),
		cb.Query().Before("gorm:query").Register("shopfeed_timing:before_query", before),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("shopfeed_timing:after_query", after),
		cb.Update().Before("gorm:update").Register("shopfeed_timing:before_update", before),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("shopfeed_timing:after_update", after),
		cb.Delete().Before("gorm:delete").Register("shopfeed_timing:before_delete", before),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("shopfeed_timing:after_delete", after),
		cb.Row().Before("gorm:row").Register("shopfeed_timing:before_row", before),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("shopfeed_timing:after_row", after),
		cb.Raw().Before("gorm:raw").Register("shopfeed_timing:before_raw", before),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("shopfeed_timing:after_raw", after),
	}
	return errors.Join(registrations...)
}

func annotateSpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || threshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
