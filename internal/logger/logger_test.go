package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json to stdout", func(t *testing.T) {
		l := New(Config{Level: "debug", Format: "json", Output: "stdout"})
		require.NotNil(t, l)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l := New(Config{Level: "warn", Format: "console", Output: path})
		require.NotNil(t, l)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.FileExists(t, path)
	})
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs request and propagates request id", func(t *testing.T) {
		zl, logs := newObservedLogger()
		r := gin.New()
		r.Use(GinMiddleware(zl))
		r.GET("/ping", func(c *gin.Context) {
			FromGin(c).Info("inside handler")
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

		entries := logs.All()
		require.Len(t, entries, 2)
		assert.Equal(t, "inside handler", entries[0].Message)
		assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "HTTP Request", entries[1].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	})

	t.Run("generates request id and logs client errors at warn", func(t *testing.T) {
		zl, logs := newObservedLogger()
		r := gin.New()
		r.Use(GinMiddleware(zl))
		r.GET("/bad", func(c *gin.Context) {
			c.Status(http.StatusUnprocessableEntity)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	zl, logs := newObservedLogger()

	r := gin.New()
	r.Use(Recovery(zl))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestFromGin_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, FromGin(c))
}

func TestGormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) { return `DELETE FROM "invoices" WHERE id = 'i1'`, 1 }

	t.Run("logs errors", func(t *testing.T) {
		zl, logs := newObservedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, 200*time.Millisecond)

		gl.Trace(context.Background(), time.Now(), fc, errors.New("connection reset"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "SQL Error", logs.All()[0].Message)
	})

	t.Run("ignores record not found", func(t *testing.T) {
		zl, logs := newObservedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, 200*time.Millisecond)

		gl.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("flags slow statements", func(t *testing.T) {
		zl, logs := newObservedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, time.Millisecond)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Slow SQL", logs.All()[0].Message)
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		zl, logs := newObservedLogger()
		gl := NewGormLogger(zl, gormlogger.Warn, time.Millisecond).LogMode(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, errors.New("x"))

		assert.Equal(t, 0, logs.Len())
	})
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel(""))
}
