package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-di/framework/config"
	"github.com/km-arc/go-di/framework/container"
	"github.com/km-arc/go-di/framework/providers"
)

func build(t *testing.T, cfg *config.Config, logger *zap.Logger) *container.Container {
	t.Helper()
	c, err := container.NewFactory(
		container.NewCombinedProvider(providers.Framework(cfg, logger)...),
	).Build()
	require.NoError(t, err)
	return c
}

func TestConfigProvider(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "demo"}}
	c := build(t, cfg, nil)

	got, err := container.Resolve[*config.Config](c, "config")
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	byType, err := container.Resolve[*config.Config](c, container.TypeKeyOf[config.Config]())
	require.NoError(t, err)
	assert.Same(t, cfg, byType)
}

func TestLoggerProvider(t *testing.T) {
	logger := zap.NewExample()
	c := build(t, &config.Config{}, logger)

	got, err := container.Resolve[*zap.Logger](c, "logger")
	require.NoError(t, err)
	assert.Same(t, logger, got)

	byType, err := container.Resolve[*zap.Logger](c, container.TypeKeyOf[*zap.Logger]())
	require.NoError(t, err)
	assert.Same(t, logger, byType)
}

func TestLoggerProvider_DefaultsToNop(t *testing.T) {
	c := build(t, &config.Config{}, nil)

	got, err := container.Resolve[*zap.Logger](c, "logger")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestContainerProvider_YieldsItself(t *testing.T) {
	c := build(t, &config.Config{}, nil)

	got, err := c.Get("container")
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestFramework_Tagged(t *testing.T) {
	defs, err := container.NewCombinedProvider(providers.Framework(&config.Config{}, nil)...).Definitions()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "logger", "container"}, defs.Tagged(providers.FrameworkTag))
}
