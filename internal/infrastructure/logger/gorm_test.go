package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func advocateQuery() (string, int64) {
	return "SELECT * FROM advocates WHERE specialization = $1 AND verification_status = 'verified'", 3
}

func TestNewGormLoggerDefaults(t *testing.T) {
	gl, _ := newTestGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestNewGormLoggerOptions(t *testing.T) {
	gl, _ := newTestGormLogger(
		gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLoggerLogModeClones(t *testing.T) {
	gl, _ := newTestGormLogger(gormlogger.Info)

	lowered := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.logLevel, "original must be unchanged")
	clone, ok := lowered.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLoggerLevelMethods(t *testing.T) {
	t.Run("info formats and logs", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Info)
		gl.Info(context.Background(), "migrating %s", "appointments")

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "migrating appointments", entries[0].Message)
	})

	t.Run("warn formats and logs", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Warn)
		gl.Warn(context.Background(), "pool near capacity: %d", 95)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("error formats and logs", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Error)
		gl.Error(context.Background(), "connection lost")

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("silent suppresses everything", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Silent)
		gl.Info(context.Background(), "hidden")
		gl.Warn(context.Background(), "hidden")
		gl.Error(context.Background(), "hidden")

		assert.Empty(t, recorded.All())
	})
}

func TestGormLoggerTrace(t *testing.T) {
	t.Run("failed statement logs SQL Error", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), advocateQuery, errors.New("deadlock detected"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("record not found is swallowed by default", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), advocateQuery, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("record not found logs when opted in", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(context.Background(), time.Now(), advocateQuery, gormlogger.ErrRecordNotFound)

		assert.Len(t, recorded.FilterMessage("SQL Error").All(), 1)
	})

	t.Run("slow statement logs Slow SQL with threshold", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), advocateQuery, nil)

		entries := recorded.FilterMessage("Slow SQL").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

		fields := logFields(entries[0])
		assert.Contains(t, fields, "threshold")
		assert.Contains(t, fields, "elapsed")
	})

	t.Run("normal statement logs at debug", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), advocateQuery, nil)

		entries := recorded.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)

		fields := logFields(entries[0])
		require.Contains(t, fields, "rows")
		assert.Equal(t, int64(3), fields["rows"].Integer)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), advocateQuery, errors.New("ignored"))

		assert.Empty(t, recorded.All())
	})

	t.Run("carries request_id from context", func(t *testing.T) {
		gl, recorded := newTestGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
		gl.Trace(ctx, time.Now(), advocateQuery, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := logFields(entries[0])
		require.Contains(t, fields, "request_id")
		assert.Equal(t, "req-42", fields["request_id"].String)
	})
}

func TestMapGormLogLevel(t *testing.T) {
	cases := []struct {
		level string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"verbose", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tc := range cases {
		t.Run("level "+tc.level, func(t *testing.T) {
			assert.Equal(t, tc.want, MapGormLogLevel(tc.level))
		})
	}
}

var _ gormlogger.Interface = (*GormLogger)(nil)
