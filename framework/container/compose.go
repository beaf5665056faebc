package container

import "errors"

// ResolvedFactory is the outcome of matching an identifier: the matched
// definition and, once the resolver has composed it, a nullary factory.
type ResolvedFactory struct {
	Factory      func() (any, error)
	DefinitionID string
	// Definition is nil when a resolver produced a factory without a rule,
	// e.g. plain autowiring of a registered type.
	Definition *Definition
}

// Scope returns the lifecycle policy for the resolved value.
func (r *ResolvedFactory) Scope() Scope {
	if r == nil || r.Definition == nil {
		return Prototype
	}
	return r.Definition.Scope()
}

// selfIDs are the identifiers under which a singleton definition yields the
// current container instead of constructing a new one.
var selfIDs = map[string]bool{
	"container":                         true,
	NormalizeID(TypeKeyOf[Container]()): true,
}

// composer turns a matched definition into a factory. Both resolver
// variants share it; autowire switches parameter derivation on.
type composer struct {
	types    *Types
	autowire bool
}

func (cp *composer) compose(id, key string, def *Definition, c Locator) (*ResolvedFactory, error) {
	rf := &ResolvedFactory{DefinitionID: key, Definition: def}
	if def == nil {
		def = Define().Build()
	}

	var factory func() (any, error)
	sub := def.Substitute()

	switch sub.Kind() {
	case SubstituteInstance:
		v := sub.Value()
		factory = func() (any, error) { return v, nil }

	case SubstituteCallable:
		fn := sub.Func()
		factory = func() (any, error) {
			args, err := cp.explicitArgs(id, def.withParams, c)
			if err != nil {
				return nil, err
			}
			v, err := fn(c, args)
			if err != nil {
				return nil, engineError(id, err, "factory failed")
			}
			return v, nil
		}

	case SubstituteReference:
		ref, _ := sub.ID()
		switch {
		case c.Has(ref):
			factory = func() (any, error) { return c.Get(ref) }
		case cp.types.Has(ref) || selfIDs[NormalizeID(ref)]:
			factory = cp.construct(id, ref, def, c)
		default:
			return nil, notFound(id, "substitute [%s] is unresolvable", ref)
		}

	default:
		factory = cp.construct(id, id, def, c)
	}

	if hook := def.Call(); hook != nil {
		factory = decorate(id, factory, hook, c)
	}
	rf.Factory = factory
	return rf, nil
}

// construct builds target as a type, short-circuiting to the container
// itself when a singleton asks for "the container".
func (cp *composer) construct(id, target string, def *Definition, c Locator) func() (any, error) {
	if def.Scope() == Singleton && selfIDs[NormalizeID(target)] {
		return func() (any, error) { return c, nil }
	}
	return func() (any, error) {
		var (
			args []any
			err  error
		)
		if len(def.withParams) > 0 || !cp.autowire {
			args, err = cp.explicitArgs(id, def.withParams, c)
		} else {
			args, err = cp.autowiredArgs(id, target, c)
		}
		if err != nil {
			return nil, err
		}
		return cp.types.Construct(target, args)
	}
}

// buildable reports whether m can actually produce a value for id. An exact
// key always applies. A rule reached through inheritance, a pattern or the
// catch-all without a substitute only covers ids that are constructible types.
func (cp *composer) buildable(id string, m *match) bool {
	if m.exact || !m.def.Substitute().IsAbsent() {
		return true
	}
	return cp.types.Has(id) || selfIDs[NormalizeID(id)]
}

// missingParam reports a Use(dep) parameter of id that nothing can serve.
func missingParam(id string, pos int, dep string) error {
	return configError(id, nil, "cannot resolve parameter #%d [%s]", pos, dep)
}

// explicitArgs resolves withParams: Reference entries always, plain strings
// only when the container knows them.
func (cp *composer) explicitArgs(id string, params []any, c Locator) ([]any, error) {
	args := make([]any, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case Reference:
			if !c.Has(v.ID) {
				return nil, missingParam(id, i, v.ID)
			}
			dep, err := c.Get(v.ID)
			if err != nil {
				return nil, err
			}
			args[i] = dep
		case string:
			if v != "" && c.Has(v) {
				dep, err := c.Get(v)
				if err != nil {
					return nil, err
				}
				args[i] = dep
				continue
			}
			args[i] = v
		default:
			args[i] = p
		}
	}
	return args, nil
}

// autowiredArgs derives constructor arguments from the registered
// parameter descriptors of target.
func (cp *composer) autowiredArgs(id, target string, c Locator) ([]any, error) {
	spec, ok := cp.types.Lookup(target)
	if !ok {
		return nil, nil
	}
	args := make([]any, 0, len(spec.Params))
	for _, p := range spec.Params {
		switch {
		case p.Type != "" && c.Has(p.Type):
			dep, err := c.Get(p.Type)
			if err != nil {
				return nil, err
			}
			args = append(args, dep)
		case p.HasDefault:
			args = append(args, p.Default)
		default:
			return nil, configError(id, nil, "cannot resolve parameter %q of [%s]", p.Name, target)
		}
	}
	return args, nil
}

func decorate(id string, inner func() (any, error), hook CallHook, c Locator) func() (any, error) {
	return func() (any, error) {
		instance, err := inner()
		if err != nil {
			return nil, err
		}
		replacement, err := hook(instance, c)
		if err != nil {
			return nil, engineError(id, err, "call hook failed")
		}
		if replacement != nil {
			return replacement, nil
		}
		return instance, nil
	}
}

// engineError passes the engine's own error kinds through and wraps anything
// else raised by user code into a ContainerError naming id.
func engineError(id string, err error, reason string) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrContainer) {
		return err
	}
	return configError(id, err, "%s", reason)
}
