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

func newObservedGormLogger(t *testing.T, level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestNewGormLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		gl, _ := newObservedGormLogger(t, gormlogger.Info)

		assert.Equal(t, gormlogger.Info, gl.level)
		assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
		assert.True(t, gl.skipNotFound)
	})

	t.Run("options override defaults", func(t *testing.T) {
		gl, _ := newObservedGormLogger(t, gormlogger.Info,
			WithSlowThreshold(500*time.Millisecond),
			WithIgnoreRecordNotFoundError(false),
		)

		assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
		assert.False(t, gl.skipNotFound)
	})

	t.Run("satisfies the gorm logger interface", func(t *testing.T) {
		gl, _ := newObservedGormLogger(t, gormlogger.Info)
		var _ gormlogger.Interface = gl
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(t, gormlogger.Info)

	quieter := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.level, "receiver stays at its level")
	clone, ok := quieter.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.level)
}

func TestGormLogger_Levels(t *testing.T) {
	ctx := context.Background()

	t.Run("info passes through at info level", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Info)
		gl.Info(ctx, "migrated %s", "bills")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "migrated bills")
	})

	t.Run("silent suppresses info", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Silent)
		gl.Info(ctx, "migrated bills")

		assert.Empty(t, recorded.All())
	})

	t.Run("warn and error log at their levels", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Warn)
		gl.Warn(ctx, "connection pool at %d", 95)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)

		gl, recorded = newObservedGormLogger(t, gormlogger.Error)
		gl.Error(ctx, "lost connection")

		logs = recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	statement := func() (string, int64) {
		return "SELECT * FROM bills WHERE landlord_id = $1", 3
	}

	t.Run("failed statements log as errors", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Error)
		gl.Trace(ctx, time.Now(), statement, errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("record-not-found is dropped by default", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Error)
		gl.Trace(ctx, time.Now(), statement, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("record-not-found surfaces when configured", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(ctx, time.Now(), statement, gormlogger.ErrRecordNotFound)

		assert.Len(t, recorded.All(), 1)
	})

	t.Run("statements over the threshold log as slow", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(ctx, time.Now().Add(-time.Second), statement, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("routine statements trace at debug", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Info)
		gl.Trace(ctx, time.Now(), statement, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("silent traces nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Silent)
		gl.Trace(ctx, time.Now(), statement, nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("request ID from the query context is attached", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(t, gormlogger.Info)
		reqCtx := context.WithValue(ctx, RequestIDKey, "req-7f3a")

		gl.Trace(reqCtx, time.Now(), statement, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		fields := entryFields(&logs[0])
		require.Contains(t, fields, "request_id")
		assert.Equal(t, "req-7f3a", fields["request_id"].String)
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
		assert.Equal(t, tc.want, MapGormLogLevel(tc.level), "level %q", tc.level)
	}
}
