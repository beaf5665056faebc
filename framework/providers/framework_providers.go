package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-di/framework/config"
	"github.com/km-arc/go-di/framework/container"
)

// FrameworkTag marks every definition contributed by this package.
const FrameworkTag = "framework"

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider binds the loaded configuration.
//
// Defined identifiers:
//   - "config"                → *config.Config
//   - TypeKeyOf[config.Config] → alias of "config", for autowired parameters
type ConfigProvider struct {
	Config *config.Config
}

func (p ConfigProvider) Definitions() (*container.Definitions, error) {
	return container.NewDefinitions().
		Set("config", container.Define().
			Singleton().
			Substitute(container.Value(p.Config)).
			Tags(FrameworkTag).
			Build()).
		Set(container.TypeKeyOf[config.Config](), container.Define().
			Substitute(container.Ref("config")).
			Build()), nil
}

// ── LoggerProvider ────────────────────────────────────────────────────────────

// LoggerProvider binds the application logger.
//
// Defined identifiers:
//   - "logger"                → *zap.Logger
//   - TypeKeyOf[zap.Logger]   → alias of "logger"
type LoggerProvider struct {
	Logger *zap.Logger
}

func (p LoggerProvider) Definitions() (*container.Definitions, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return container.NewDefinitions().
		Set("logger", container.Define().
			Singleton().
			Substitute(container.Value(logger)).
			Tags(FrameworkTag).
			Build()).
		Set(container.TypeKeyOf[zap.Logger](), container.Define().
			Substitute(container.Ref("logger")).
			Build()), nil
}

// ── ContainerProvider ─────────────────────────────────────────────────────────

// ContainerProvider lets services depend on the container itself.
//
// Defined identifiers:
//   - "container" → the Locator serving the lookup
type ContainerProvider struct{}

func (ContainerProvider) Definitions() (*container.Definitions, error) {
	return container.NewDefinitions().
		Set("container", container.Define().Singleton().Tags(FrameworkTag).Build()), nil
}

// Framework returns the built-in providers in registration order.
func Framework(cfg *config.Config, logger *zap.Logger) []container.DefinitionProvider {
	return []container.DefinitionProvider{
		ConfigProvider{Config: cfg},
		LoggerProvider{Logger: logger},
		ContainerProvider{},
	}
}
