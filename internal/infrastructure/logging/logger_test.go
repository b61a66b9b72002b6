package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLevels(t *testing.T) {
	l, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	dev := NewDevelopment()
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	base, err := New(Config{})
	require.NoError(t, err)
	assert.True(t, base.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, base.Core().Enabled(zapcore.DebugLevel))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil).Logger)
	assert.NotNil(t, OrNop(&Logger{}).Logger)

	l := NewDefault()
	assert.Same(t, l, OrNop(l))
}

func TestComponentAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	l.Component("mount").With(zap.String("app", "posts")).Info("mounted")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "mount", entries[0].LoggerName)
	assert.Equal(t, "posts", entries[0].ContextMap()["app"])
}

func TestApp(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{Logger: zap.New(core)}

	l.App("users").Debug("probed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "users", logs.All()[0].ContextMap()["app"])
}
