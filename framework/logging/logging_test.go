package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-di/framework/config"
	"github.com/km-arc/go-di/framework/logging"
)

func cfg(env, level string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test", Env: env},
		Log: config.LogConfig{Level: level},
	}
}

func TestNew_HonorsLevel(t *testing.T) {
	for _, env := range []string{"local", "production"} {
		t.Run(env, func(t *testing.T) {
			logger, err := logging.New(cfg(env, "warn"))
			require.NoError(t, err)

			assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestNew_TestingIsNop(t *testing.T) {
	logger, err := logging.New(cfg("testing", "debug"))
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(cfg("local", "loud"))
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
