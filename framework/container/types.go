package container

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Param describes one constructor parameter of a registered type.
type Param struct {
	Name string
	// Type is the identifier to resolve for this parameter. Empty for
	// builtin values that can only come from withParams or Default.
	Type       string
	Default    any
	HasDefault bool
}

// Constructor builds a value from positional arguments.
type Constructor func(args []any) (any, error)

// TypeSpec registers a constructible (or abstract) type under a name.
type TypeSpec struct {
	Name string
	// Parents lists the names this type may stand in for: embedded base types
	// or interfaces it satisfies.
	Parents []string
	Params  []Param
	// New is nil for abstract entries such as interfaces.
	New Constructor
	// Reflect is optional; when both sides carry it, interface satisfaction
	// counts as a subtype relation.
	Reflect reflect.Type
}

// Types is the static registry that stands in for runtime constructor
// introspection. Lookups are case-insensitive.
type Types struct {
	mu    sync.RWMutex
	specs map[string]*TypeSpec
}

// NewTypes creates an empty registry.
func NewTypes() *Types {
	return &Types{specs: make(map[string]*TypeSpec)}
}

// Register adds or replaces a type.
func (t *Types) Register(spec TypeSpec) *Types {
	spec.Parents = slices.Clone(spec.Parents)
	spec.Params = slices.Clone(spec.Params)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.specs[NormalizeID(spec.Name)] = &spec
	return t
}

// Has reports whether name is registered and constructible.
func (t *Types) Has(name string) bool {
	spec, ok := t.Lookup(name)
	return ok && spec.New != nil
}

// Lookup returns the registered spec for name.
func (t *Types) Lookup(name string) (*TypeSpec, bool) {
	if t == nil {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	spec, ok := t.specs[NormalizeID(name)]
	return spec, ok
}

// IsSubtype reports whether id can stand in for key: key is reachable
// through id's Parents, or key is a registered interface that id's Go type
// implements.
func (t *Types) IsSubtype(id, key string) bool {
	child, ok := t.Lookup(id)
	if !ok {
		return false
	}
	target := NormalizeID(key)
	if target == NormalizeID(child.Name) {
		return false
	}

	seen := map[string]bool{}
	queue := []*TypeSpec{child}
	for len(queue) > 0 {
		spec := queue[0]
		queue = queue[1:]
		for _, p := range spec.Parents {
			np := NormalizeID(p)
			if np == target {
				return true
			}
			if seen[np] {
				continue
			}
			seen[np] = true
			if parent, ok := t.Lookup(p); ok {
				queue = append(queue, parent)
			}
		}
	}

	if parent, ok := t.Lookup(key); ok && child.Reflect != nil && parent.Reflect != nil {
		if parent.Reflect.Kind() == reflect.Interface {
			return child.Reflect.Implements(parent.Reflect)
		}
	}
	return false
}

// Construct builds the named type with args.
func (t *Types) Construct(name string, args []any) (any, error) {
	spec, ok := t.Lookup(name)
	if !ok || spec.New == nil {
		return nil, notFound(name, "not a constructible type")
	}
	v, err := spec.New(args)
	if err != nil {
		return nil, configError(name, err, "construction failed")
	}
	return v, nil
}

// ── Generic registration helpers ──────────────────────────────────────────────

// RegisterType registers T under TypeKey(T) with a typed constructor.
//
//	container.RegisterType(types, func(args []any) (*SMTPMailer, error) {
//	    return &SMTPMailer{Host: args[0].(string)}, nil
//	}, container.Param{Name: "host", Default: "localhost", HasDefault: true})
func RegisterType[T any](t *Types, ctor func(args []any) (T, error), params ...Param) string {
	rt := reflect.TypeFor[T]()
	name := typeName(rt)
	t.Register(TypeSpec{
		Name:    name,
		Params:  params,
		Reflect: rt,
		New: func(args []any) (any, error) {
			return ctor(args)
		},
	})
	return name
}

// RegisterInterface registers the abstract interface type I so that
// implementations registered with RegisterType become its subtypes.
func RegisterInterface[I any](t *Types) string {
	rt := reflect.TypeFor[I]()
	if rt.Kind() != reflect.Interface {
		panic(fmt.Sprintf("container: RegisterInterface[%s]: not an interface", rt))
	}
	name := typeName(rt)
	t.Register(TypeSpec{Name: name, Reflect: rt})
	return name
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// identifier when working with interfaces. Pointers are unwrapped.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	return typeName(reflect.TypeOf(v))
}

// TypeKeyOf is the generic form of TypeKey.
func TypeKeyOf[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
