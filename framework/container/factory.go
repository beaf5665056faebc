package container

import (
	"go.uber.org/zap"
)

// ResolverKind selects a built-in resolver for ContainerFactory.
type ResolverKind int

const (
	ExplicitKind ResolverKind = iota
	AutowiringKind
)

// ContainerFactory builds a validated Container from a DefinitionProvider.
//
//	c, err := container.NewFactory(provider,
//	    container.WithTypes(types),
//	    container.WithAutowiring(),
//	).Build()
type ContainerFactory struct {
	provider DefinitionProvider
	types    *Types
	kinds    []ResolverKind
	validate bool
	logger   *zap.Logger
}

// FactoryOption configures a ContainerFactory.
type FactoryOption func(*ContainerFactory)

// WithTypes sets the type registry shared by every resolver.
func WithTypes(t *Types) FactoryOption {
	return func(f *ContainerFactory) { f.types = t }
}

// WithAutowiring appends an AutowiringResolver after the explicit one.
func WithAutowiring() FactoryOption {
	return func(f *ContainerFactory) { f.kinds = append(f.kinds, AutowiringKind) }
}

// WithResolvers replaces the resolver list.
func WithResolvers(kinds ...ResolverKind) FactoryOption {
	return func(f *ContainerFactory) { f.kinds = append([]ResolverKind(nil), kinds...) }
}

// WithoutValidation skips the dry-run pass.
func WithoutValidation() FactoryOption {
	return func(f *ContainerFactory) { f.validate = false }
}

// WithFactoryLogger sets the logger handed to the validator and the container.
func WithFactoryLogger(l *zap.Logger) FactoryOption {
	return func(f *ContainerFactory) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFactory creates a factory. provider may be nil for an empty definition set.
func NewFactory(provider DefinitionProvider, opts ...FactoryOption) *ContainerFactory {
	f := &ContainerFactory{
		provider: provider,
		kinds:    []ResolverKind{ExplicitKind},
		validate: true,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.types == nil {
		f.types = NewTypes()
	}
	return f
}

// Build loads the definitions, creates the resolvers, validates every
// declared identifier and returns the container. No instance is built.
func (f *ContainerFactory) Build() (*Container, error) {
	defs := NewDefinitions()
	if f.provider != nil {
		var err error
		if defs, err = f.provider.Definitions(); err != nil {
			return nil, err
		}
	}

	resolvers := f.resolvers(defs)
	if f.validate {
		if err := f.Validate(defs, resolvers); err != nil {
			return nil, err
		}
	}
	f.logger.Debug("container: built",
		zap.Int("definitions", defs.Len()),
		zap.Int("resolvers", len(resolvers)),
	)
	return New(resolvers, WithLogger(f.logger)), nil
}

// Validate runs the dry-run pass over every identifier key of defs.
// Patterns and the catch-all are rules, not identifiers, and are skipped.
func (f *ContainerFactory) Validate(defs *Definitions, resolvers []Resolver) error {
	v := NewValidationContainer(resolvers, f.logger)
	return v.Validate(ValidationIDs(defs))
}

// ValidationIDs returns the definition keys that name identifiers.
func ValidationIDs(defs *Definitions) []string {
	var ids []string
	defs.Each(func(key string, _ *Definition) bool {
		if key != CatchAll && !IsPattern(key) {
			ids = append(ids, key)
		}
		return true
	})
	return ids
}

func (f *ContainerFactory) resolvers(defs *Definitions) []Resolver {
	out := make([]Resolver, 0, len(f.kinds))
	for _, k := range f.kinds {
		switch k {
		case ExplicitKind:
			out = append(out, NewExplicitResolver(defs, WithTypeRegistry(f.types)))
		case AutowiringKind:
			out = append(out, NewAutowiringResolver(f.types, WithDefinitions(defs)))
		}
	}
	return out
}
