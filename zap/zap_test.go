//go:build unit

package zap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/rossipedia/sch/log"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return Wrap(zap.New(core)), logs
}

func TestNew_ValidLevel(t *testing.T) {
	t.Parallel()

	logger, err := New("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.True(t, logger.Enabled(logpkg.LevelDebug))
	assert.Equal(t, zapcore.DebugLevel, logger.Level().Level())
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLogger_LogDispatchesLevels(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger(zapcore.DebugLevel)

	ctx := context.Background()
	logger.Log(ctx, logpkg.LevelDebug, "d")
	logger.Log(ctx, logpkg.LevelInfo, "i")
	logger.Log(ctx, logpkg.LevelWarn, "w")
	logger.Log(ctx, logpkg.LevelError, "e")

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLogger_LogCarriesFields(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "compiled",
		logpkg.Int("groups", 2), logpkg.String("stage", "compile"))

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["groups"])
	assert.Equal(t, "compile", fields["stage"])
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger(zapcore.DebugLevel)

	child := logger.With(logpkg.String("component", "sch"))
	child.Log(context.Background(), logpkg.LevelInfo, "msg")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sch", entries[0].ContextMap()["component"])
}

func TestLogger_Enabled(t *testing.T) {
	t.Parallel()

	logger, _ := newObservedLogger(zapcore.InfoLevel)

	assert.True(t, logger.Enabled(logpkg.LevelInfo))
	assert.True(t, logger.Enabled(logpkg.LevelError))
	assert.False(t, logger.Enabled(logpkg.LevelDebug))
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger

	assert.NotPanics(t, func() {
		logger.Log(context.Background(), logpkg.LevelInfo, "dropped")
		logger.Debug("dropped")
	})
}

func TestLogger_SyncRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	logger, _ := newObservedLogger(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := logger.Sync(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
