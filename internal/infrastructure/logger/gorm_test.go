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

func newObservedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func TestNewGormLogger(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	assert.NotNil(t, gormLog)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)

	var _ gormlogger.Interface = gormLog
}

func TestGormLogger_SlowThresholdOption(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info, WithSlowThreshold(500*time.Millisecond))

	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	changed := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)

	clone, ok := changed.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLogger_Levels(t *testing.T) {
	t.Run("info", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)
		gormLog.Info(context.Background(), "applying %d migrations", 3)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "applying 3 migrations")
	})

	t.Run("info suppressed at silent", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Silent)
		gormLog.Info(context.Background(), "applying migrations")

		assert.Empty(t, recorded.All())
	})

	t.Run("warn", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn)
		gormLog.Warn(context.Background(), "connection pool at %d%%", 90)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
		assert.Contains(t, logs[0].Message, "connection pool at 90%")
	})

	t.Run("error", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)
		gormLog.Error(context.Background(), "migration failed")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})
}

func TestGormLogger_Trace(t *testing.T) {
	queryInvoices := func() (string, int64) {
		return "SELECT * FROM invoices WHERE status = 'UNPAID'", 4
	}

	t.Run("query error", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), queryInvoices, errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SQL Error")
	})

	t.Run("record not found skipped", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), queryInvoices, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("slow query warned", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), queryInvoices, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
	})

	t.Run("normal query at debug", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		gormLog.Trace(context.Background(), time.Now(), queryInvoices, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SQL Query")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)
		gormLog.Trace(context.Background(), time.Now(), queryInvoices, nil)

		assert.Empty(t, recorded.All())
	})

	t.Run("request id carried from context", func(t *testing.T) {
		gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-inv-42")

		gormLog.Trace(ctx, time.Now(), queryInvoices, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)

		hasRequestID := false
		for _, field := range logs[0].Context {
			if field.Key == "request_id" {
				hasRequestID = true
				assert.Equal(t, "req-inv-42", field.String)
			}
		}
		assert.True(t, hasRequestID, "request_id should be in log fields")
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
