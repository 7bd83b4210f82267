// Package telemetry provides OpenTelemetry integration for distributed tracing.
package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool          // Enable database tracing
	LogFullSQL      bool          // Include query variables in spans (dev only)
	SlowQueryThresh time.Duration // Threshold for marking queries as slow
	DBSystem        string        // Database system name (default: "postgresql")
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin wraps the otelgorm plugin with slow query detection.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm registers the otelgorm plugin plus timing callbacks on the
// given GORM DB instance. A no-op when tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		// Keep query parameters out of spans.
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

// registerTimingCallbacks wires before/after callbacks around every GORM
// operation so the after hook can compute elapsed time and annotate the span.
func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	register := func(before, after error) error {
		if before != nil {
			return before
		}
		return after
	}

	if err := register(
		db.Callback().Create().Before("gorm:create").Register("otel_timing:before_create", markQueryStart),
		db.Callback().Create().After("gorm:create").Register("otel_timing:after_create", p.annotateSpan),
	); err != nil {
		return err
	}
	if err := register(
		db.Callback().Query().Before("gorm:query").Register("otel_timing:before_query", markQueryStart),
		db.Callback().Query().After("gorm:query").Register("otel_timing:after_query", p.annotateSpan),
	); err != nil {
		return err
	}
	if err := register(
		db.Callback().Update().Before("gorm:update").Register("otel_timing:before_update", markQueryStart),
		db.Callback().Update().After("gorm:update").Register("otel_timing:after_update", p.annotateSpan),
	); err != nil {
		return err
	}
	if err := register(
		db.Callback().Delete().Before("gorm:delete").Register("otel_timing:before_delete", markQueryStart),
		db.Callback().Delete().After("gorm:delete").Register("otel_timing:after_delete", p.annotateSpan),
	); err != nil {
		return err
	}
	if err := register(
		db.Callback().Row().Before("gorm:row").Register("otel_timing:before_row", markQueryStart),
		db.Callback().Row().After("gorm:row").Register("otel_timing:after_row", p.annotateSpan),
	); err != nil {
		return err
	}
	if err := register(
		db.Callback().Raw().Before("gorm:raw").Register("otel_timing:before_raw", markQueryStart),
		db.Callback().Raw().After("gorm:raw").Register("otel_timing:after_raw", p.annotateSpan),
	); err != nil {
		return err
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotateSpan runs after each operation: it records rows affected and the
// table name, marks errors, and flags queries slower than the threshold.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// ErrRecordNotFound is an expected outcome, not a failure.
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

// queryStartTimeKey is the context key for storing query start time.
const queryStartTimeKey contextKey = "otel_query_start_time"
