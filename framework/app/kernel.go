package app

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/km-arc/go-di/framework/config"
	"github.com/km-arc/go-di/framework/container"
	"github.com/km-arc/go-di/framework/definitions"
	"github.com/km-arc/go-di/framework/logging"
	"github.com/km-arc/go-di/framework/providers"
)

// Application is the top-level application container.
// It embeds the built Container so user code can call app.Get() and
// app.Has() directly.
type Application struct {
	*container.Container

	config      *config.Config
	logger      *zap.Logger
	definitions *container.Definitions
}

type options struct {
	envFiles  []string
	config    *config.Config
	logger    *zap.Logger
	files     []string
	providers []container.DefinitionProvider
	types     *container.Types
}

// Option configures New.
type Option func(*options)

// WithEnvFiles sets the .env files read when no Config is given.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithConfig uses cfg instead of loading the environment.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLogger uses logger instead of building one from the config.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDefinitionFiles adds definition files after those listed in DI_DEFINITIONS.
func WithDefinitionFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// WithProviders adds user providers. They are merged after the framework
// providers and definition files.
func WithProviders(p ...container.DefinitionProvider) Option {
	return func(o *options) { o.providers = append(o.providers, p...) }
}

// WithTypes sets the registry used for subtype matching and autowiring.
func WithTypes(t *container.Types) Option {
	return func(o *options) { o.types = t }
}

// New creates and bootstraps the application: configuration, logger,
// definitions and a validated container.
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.config
	if cfg == nil {
		cfg = config.Load(o.envFiles...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg); err != nil {
			return nil, err
		}
	}

	// framework providers first, then files, then user providers
	combined := container.NewCombinedProvider(providers.Framework(cfg, logger)...)
	files, err := definitions.Parse(context.Background(), append(slices.Clone(cfg.DI.Definitions), o.files...)...)
	if err != nil {
		return nil, err
	}
	for _, src := range files {
		combined.Register(src)
	}
	for _, p := range o.providers {
		combined.Register(p)
	}

	defs, err := combined.Definitions()
	if err != nil {
		return nil, err
	}

	factoryOpts := []container.FactoryOption{
		container.WithTypes(o.types),
		container.WithFactoryLogger(logger),
	}
	if cfg.DI.Autowire {
		factoryOpts = append(factoryOpts, container.WithAutowiring())
	}
	if !cfg.DI.Validate {
		factoryOpts = append(factoryOpts, container.WithoutValidation())
	}

	c, err := container.NewFactory(container.StaticProvider{Defs: defs}, factoryOpts...).Build()
	if err != nil {
		return nil, err
	}

	logger.Info("application ready",
		zap.String("env", cfg.App.Env),
		zap.Int("definitions", defs.Len()),
		zap.Bool("autowire", cfg.DI.Autowire),
		zap.Bool("validated", cfg.DI.Validate),
	)

	return &Application{
		Container:   c,
		config:      cfg,
		logger:      logger,
		definitions: defs,
	}, nil
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Definitions returns the merged definition set.
func (a *Application) Definitions() *container.Definitions { return a.definitions }

// Tagged resolves every identifier whose definition carries tag, in
// definition order. Pattern and catch-all rules are not identifiers and
// are skipped.
func (a *Application) Tagged(tag string) ([]any, error) {
	var out []any
	for _, id := range a.definitions.Tagged(tag) {
		if id == container.CatchAll || container.IsPattern(id) {
			continue
		}
		v, err := a.Get(id)
		if err != nil {
			return nil, fmt.Errorf("app: tagged %q: %w", tag, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
