package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-di/framework/config"
)

// New creates the application logger: JSON output in production, console
// output elsewhere, and a no-op logger under APP_ENV=testing.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "testing" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: LOG_LEVEL: %w", err)
	}

	var zc zap.Config
	if cfg.App.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(cfg.App.Name), nil
}
