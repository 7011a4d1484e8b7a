package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_ENCODING", "json")

	cfg := FromEnv("site-api")
	assert.False(t, cfg.Development)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, "site-api", cfg.Service)

	t.Setenv("APP_ENV", "")
	assert.True(t, FromEnv("site-api").Development)
}

func TestNewAppliesLevel(t *testing.T) {
	l, err := New(Config{Level: "WARN", Encoding: "json", Service: "site-api"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewDefaultsByEnvironment(t *testing.T) {
	dev, err := New(Config{Development: true})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
}

func TestMustInit(t *testing.T) {
	assert.Panics(t, func() { MustInit(Config{Level: "loud"}) })
	assert.NotNil(t, MustInit(Config{Encoding: "json"}))
}
