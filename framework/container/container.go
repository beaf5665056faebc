package container

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ── Locator ───────────────────────────────────────────────────────────────────

// Locator is the container boundary consumed by application code and by
// resolvers recursing into nested dependencies.
type Locator interface {
	Has(id string) bool
	Get(id string) (any, error)
}

// Composable is a Locator that can delegate nested lookups to a parent.
type Composable interface {
	Locator
	SetParent(parent Locator) error
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container orchestrates an ordered list of resolvers.
//
// Per identifier it moves from uncached to one of two cached states on the
// first Get: singleton definitions cache the built value, everything else
// caches the factory and invokes it on every Get.
type Container struct {
	mu sync.RWMutex

	resolvers []Resolver

	// normalized id → resolved singleton instance
	instances map[string]any

	// normalized id → factory for non-singleton scopes
	factories map[string]func() (any, error)

	// set at most once; receives nested lookups made by resolvers
	parent Locator

	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for resolution tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a container that tries resolvers in order.
//
//	c := container.New([]container.Resolver{
//	    container.NewExplicitResolver(defs, container.WithTypeRegistry(types)),
//	    container.NewAutowiringResolver(types),
//	})
func New(resolvers []Resolver, opts ...Option) *Container {
	c := &Container{
		resolvers: append([]Resolver(nil), resolvers...),
		instances: make(map[string]any),
		factories: make(map[string]func() (any, error)),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the value for id, building it on first use.
func (c *Container) Get(id string) (any, error) {
	key := NormalizeID(id)

	c.mu.RLock()
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	factory, ok := c.factories[key]
	c.mu.RUnlock()
	if ok {
		return factory()
	}

	r := c.resolverFor(id)
	if r == nil {
		return nil, &NotFoundError{ID: id}
	}

	rf, err := r.Resolve(id, c.effective())
	if err != nil {
		return nil, err
	}
	c.logger.Debug("container: resolved",
		zap.String("id", id),
		zap.String("definition", rf.DefinitionID),
		zap.Stringer("scope", rf.Scope()),
		zap.String("resolver", fmt.Sprintf("%T", r)),
	)

	if rf.Scope() == Singleton {
		inst, err := rf.Factory()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.instances[key] = inst
		c.mu.Unlock()
		return inst, nil
	}

	c.mu.Lock()
	c.factories[key] = rf.Factory
	c.mu.Unlock()
	return rf.Factory()
}

// Has reports whether any resolver can produce id. Negative results are not cached.
func (c *Container) Has(id string) bool {
	return c.resolverFor(id) != nil
}

func (c *Container) resolverFor(id string) Resolver {
	for _, r := range c.resolvers {
		if r.Has(id) {
			return r
		}
	}
	return nil
}

// ── Parent linkage ────────────────────────────────────────────────────────────

// SetParent links the container to a parent that receives every nested
// lookup made while resolving. It may be called once.
func (c *Container) SetParent(parent Locator) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.parent != nil {
		return &ContainerError{Reason: "parent already set"}
	}
	c.parent = parent
	return nil
}

// effective returns the parent if one is set, otherwise the container itself.
func (c *Container) effective() Locator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.parent != nil {
		return c.parent
	}
	return c
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Resolved reports whether id is cached as a singleton instance.
func (c *Container) Resolved(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[NormalizeID(id)]
	return ok
}

// Flush drops every cached instance and factory. Resolvers and the parent
// link are kept.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[string]any)
	c.factories = make(map[string]func() (any, error))
}

// Resolvers returns the resolvers in the order they are tried.
func (c *Container) Resolvers() []Resolver {
	return append([]Resolver(nil), c.resolvers...)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](l Locator, id string) (T, error) {
	var zero T
	instance, err := l.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &ContainerError{ID: id, Reason: fmt.Sprintf("resolved to %T, want %v", instance, reflect.TypeFor[T]())}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Meant for bootstrap code.
func MustResolve[T any](l Locator, id string) T {
	v, err := Resolve[T](l, id)
	if err != nil {
		panic(err)
	}
	return v
}
