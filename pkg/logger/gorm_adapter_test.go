package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"propertyhub/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLoggerAdapterLevels(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  gormlogger.LogLevel
		wantInfo  bool
		wantWarn  bool
		wantTrace bool
	}{
		{"warn level", gormlogger.Warn, false, true, false},
		{"info level", gormlogger.Info, true, true, true},
		{"silent level", gormlogger.Silent, false, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			restore := Replace(zap.New(core))
			defer restore()

			adapter := NewGormLoggerAdapter(tc.logLevel)
			if adapter.LogMode(gormlogger.Info) == nil {
				t.Fatal("LogMode should return a new adapter")
			}

			ctx := context.Background()
			adapter.Info(ctx, "test info %s", "message")
			adapter.Warn(ctx, "test warn message")
			adapter.Trace(ctx, time.Now(), func() (string, int64) {
				return "SELECT * FROM carts", 1
			}, nil)

			if got := logs.FilterMessage("test info message").Len() > 0; got != tc.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tc.wantInfo)
			}
			if got := logs.FilterMessage("test warn message").Len() > 0; got != tc.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tc.wantWarn)
			}
			traces := logs.FilterMessage("SQL query executed").All()
			if got := len(traces) > 0; got != tc.wantTrace {
				t.Errorf("trace logged = %v, want %v", got, tc.wantTrace)
			}
			for _, entry := range traces {
				if _, ok := entry.ContextMap()["sql"]; !ok {
					t.Error("SQL not found in trace fields")
				}
			}
		})
	}
}

func TestGormLoggerAdapterSlowQueryAndNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	adapter := NewGormLoggerAdapterWithConfig(gormlogger.Info, &GormLoggerConfig{
		SlowThreshold:             time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})

	ctx := persistence.ContextWithRequestID(context.Background(), "test-request-123")

	adapter.Trace(ctx, time.Now().Add(-10*time.Millisecond), func() (string, int64) {
		return "SELECT * FROM enquiries", 3
	}, nil)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE owner_id = 'x'", 0
	}, gormlogger.ErrRecordNotFound)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "INSERT INTO carts", 0
	}, errors.New("connection refused"))

	slow := logs.FilterMessage("Slow SQL query").All()
	if len(slow) != 1 {
		t.Fatalf("expected 1 slow query entry, got %d", len(slow))
	}
	if got := slow[0].ContextMap()["request_id"]; got != "test-request-123" {
		t.Errorf("request_id = %v, want test-request-123", got)
	}

	failed := logs.FilterMessage("Database operation failed").All()
	if len(failed) != 1 {
		t.Fatalf("expected only the non-notfound failure to be logged, got %d", len(failed))
	}
}

func TestParseGormLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"debug":  gormlogger.Info,
		"info":   gormlogger.Info,
		"warn":   gormlogger.Warn,
		"error":  gormlogger.Error,
		"silent": gormlogger.Silent,
		"":       gormlogger.Warn,
	}
	for in, want := range tests {
		if got := ParseGormLevel(in); got != want {
			t.Errorf("ParseGormLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
