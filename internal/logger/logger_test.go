package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/etivest/rebalancer/internal/config"
)

func TestNew(t *testing.T) {
	dev, err := New(&config.Config{Env: "development"})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New(&config.Config{Env: "production"})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	warn, err := New(&config.Config{Env: "development", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, warn.Core().Enabled(zapcore.InfoLevel))

	_, err = New(&config.Config{Env: "development", LogLevel: "loud"})
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	nop := FromContext(context.Background())
	require.NotNil(t, nop)
	assert.False(t, nop.Core().Enabled(zapcore.ErrorLevel))

	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
