package container

// Resolver is a strategy that turns an identifier into a buildable factory.
type Resolver interface {
	// Has reports whether the resolver can produce a value for id.
	Has(id string) bool

	// Resolve matches id and composes its factory. Nested dependencies are
	// looked up through c. It fails with a *NotFoundError when the resolver
	// has no definition for id.
	Resolve(id string, c Locator) (*ResolvedFactory, error)
}

// ── ExplicitResolver ──────────────────────────────────────────────────────────

// ExplicitResolver resolves identifiers from declared definitions only.
type ExplicitResolver struct {
	m  *matcher
	cp composer
}

// ResolverOption configures a resolver.
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	types *Types
	defs  *Definitions
}

// WithTypeRegistry supplies the registry used for subtype matching and for
// constructing identifiers as types.
func WithTypeRegistry(t *Types) ResolverOption {
	return func(o *resolverOptions) { o.types = t }
}

// WithDefinitions supplies per-type definitions to an AutowiringResolver.
func WithDefinitions(d *Definitions) ResolverOption {
	return func(o *resolverOptions) { o.defs = d }
}

// NewExplicitResolver creates a resolver over defs.
//
//	defs := container.NewDefinitions().
//	    Set("mailer", container.Define().Singleton().Substitute(container.Func(newMailer)).Build())
//	r := container.NewExplicitResolver(defs)
func NewExplicitResolver(defs *Definitions, opts ...ResolverOption) *ExplicitResolver {
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ExplicitResolver{
		m:  newMatcher(defs, o.types),
		cp: composer{types: o.types},
	}
}

func (r *ExplicitResolver) Has(id string) bool {
	found, ok := r.m.find(id)
	return ok && r.cp.buildable(id, found)
}

func (r *ExplicitResolver) Resolve(id string, c Locator) (*ResolvedFactory, error) {
	found, ok := r.m.find(id)
	if !ok {
		return nil, notFound(id, "no explicit definition")
	}
	if !r.cp.buildable(id, found) {
		return nil, notFound(id, "definition [%s] has no substitute and the id is not a constructible type", found.key)
	}
	return r.cp.compose(id, found.key, found.def, c)
}

// Definitions exposes the underlying definition set.
func (r *ExplicitResolver) Definitions() *Definitions { return r.m.defs }

// ── AutowiringResolver ────────────────────────────────────────────────────────

// AutowiringResolver constructs any registered type, deriving constructor
// arguments from its registered parameter descriptors. Optional definitions
// can still adjust scope, substitutes or hooks for individual types.
type AutowiringResolver struct {
	types *Types
	m     *matcher
	cp    composer
}

// NewAutowiringResolver creates a resolver over types.
func NewAutowiringResolver(types *Types, opts ...ResolverOption) *AutowiringResolver {
	o := resolverOptions{types: types}
	for _, opt := range opts {
		opt(&o)
	}
	if o.types == nil {
		o.types = NewTypes()
	}
	return &AutowiringResolver{
		types: o.types,
		m:     newMatcher(o.defs, o.types),
		cp:    composer{types: o.types, autowire: true},
	}
}

func (r *AutowiringResolver) Has(id string) bool {
	return r.types.Has(id)
}

func (r *AutowiringResolver) Resolve(id string, c Locator) (*ResolvedFactory, error) {
	if !r.types.Has(id) {
		return nil, notFound(id, "cannot autowire: type is not registered")
	}
	if found, ok := r.m.find(id); ok {
		return r.cp.compose(id, found.key, found.def, c)
	}
	return r.cp.compose(id, id, nil, c)
}
