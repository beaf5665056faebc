package container

import (
	"fmt"
	"slices"
	"strings"
)

// ── Scope ─────────────────────────────────────────────────────────────────────

// Scope is the lifecycle policy of a definition.
type Scope int

const (
	// Prototype builds a new value on every Get.
	Prototype Scope = iota
	// Singleton builds once per container and caches the value.
	Singleton
	// Request is reserved for long-running hosts; it currently behaves like Prototype.
	Request
	// Session is reserved for long-running hosts; it currently behaves like Prototype.
	Session
)

var scopeNames = [...]string{"prototype", "singleton", "request", "session"}

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return fmt.Sprintf("scope(%d)", int(s))
	}
	return scopeNames[s]
}

// ScopeFromBool maps the boolean "shared" shorthand onto a Scope.
func ScopeFromBool(shared bool) Scope {
	if shared {
		return Singleton
	}
	return Prototype
}

// ParseScope parses "prototype", "singleton", "request" or "session".
func ParseScope(s string) (Scope, error) {
	for i, name := range scopeNames {
		if strings.EqualFold(s, name) {
			return Scope(i), nil
		}
	}
	return Prototype, fmt.Errorf("container: unknown scope %q", s)
}

// ── Substitute ────────────────────────────────────────────────────────────────

// FactoryFunc builds a value. args holds the definition's withParams after
// identifier references have been resolved.
type FactoryFunc func(c Locator, args []any) (any, error)

// CallHook runs after construction. A non-nil return value replaces the
// instance; nil keeps the original.
type CallHook func(instance any, c Locator) (any, error)

// SubstituteKind tags the variant held by a Substitute.
type SubstituteKind int

const (
	SubstituteAbsent SubstituteKind = iota
	SubstituteCallable
	SubstituteInstance
	SubstituteReference
)

// Substitute redirects construction of an identifier. The zero value is
// Absent: the identifier itself is constructed as a type.
type Substitute struct {
	kind  SubstituteKind
	fn    FactoryFunc
	value any
	id    string
}

// Func substitutes a factory function.
func Func(fn FactoryFunc) Substitute { return Substitute{kind: SubstituteCallable, fn: fn} }

// Value substitutes a pre-built value. Parameter injection is skipped for it.
func Value(v any) Substitute { return Substitute{kind: SubstituteInstance, value: v} }

// Ref substitutes another identifier or constructible type name.
func Ref(id string) Substitute { return Substitute{kind: SubstituteReference, id: id} }

func (s Substitute) Kind() SubstituteKind { return s.kind }
func (s Substitute) IsAbsent() bool       { return s.kind == SubstituteAbsent }
func (s Substitute) Func() FactoryFunc    { return s.fn }
func (s Substitute) Value() any           { return s.value }

// ID returns the referenced identifier and whether s is a reference.
func (s Substitute) ID() (string, bool) { return s.id, s.kind == SubstituteReference }

func (s Substitute) String() string {
	switch s.kind {
	case SubstituteCallable:
		return "func"
	case SubstituteInstance:
		return fmt.Sprintf("value(%T)", s.value)
	case SubstituteReference:
		return s.id
	}
	return ""
}

// ── Param references ──────────────────────────────────────────────────────────

// Reference marks a withParams entry that must be resolved from the container.
// Plain strings are resolved only when the container has them; a Reference
// always is.
type Reference struct{ ID string }

// Use builds a Reference parameter.
func Use(id string) Reference { return Reference{ID: id} }

// ── Definition ────────────────────────────────────────────────────────────────

// Definition is an immutable rule describing how to build an identifier.
// Build one with Define().
type Definition struct {
	scope            Scope
	strict           bool
	substitute       Substitute
	withParams       []any
	singletonsInTree []string
	call             CallHook
	tags             []string
}

func (d *Definition) Scope() Scope           { return d.scope }
func (d *Definition) Strict() bool           { return d.strict }
func (d *Definition) Substitute() Substitute { return d.substitute }
func (d *Definition) Call() CallHook         { return d.call }
func (d *Definition) WithParams() []any      { return slices.Clone(d.withParams) }
func (d *Definition) Tags() []string         { return slices.Clone(d.tags) }

// SingletonsInTree lists ids meant to be shared within a single object-graph
// build. The engine stores it but does not act on it yet.
func (d *Definition) SingletonsInTree() []string { return slices.Clone(d.singletonsInTree) }

// HasTag reports whether the definition carries tag.
func (d *Definition) HasTag(tag string) bool { return slices.Contains(d.tags, tag) }

// ── DefinitionBuilder ─────────────────────────────────────────────────────────

// DefinitionBuilder is the fluent constructor for a Definition.
//
//	def := container.Define().
//	    Singleton().
//	    Substitute(container.Ref("smtp.mailer")).
//	    WithParams("localhost", 25).
//	    Build()
type DefinitionBuilder struct {
	def Definition
}

// Define starts a new definition with Prototype scope.
func Define() *DefinitionBuilder { return &DefinitionBuilder{} }

// Shared sets the scope from the boolean shorthand.
func (b *DefinitionBuilder) Shared(shared bool) *DefinitionBuilder {
	b.def.scope = ScopeFromBool(shared)
	return b
}

// Singleton is shorthand for Scoped(Singleton).
func (b *DefinitionBuilder) Singleton() *DefinitionBuilder { return b.Scoped(Singleton) }

func (b *DefinitionBuilder) Scoped(s Scope) *DefinitionBuilder {
	b.def.scope = s
	return b
}

// Strict prevents the definition from applying to subtypes of its key.
func (b *DefinitionBuilder) Strict() *DefinitionBuilder {
	b.def.strict = true
	return b
}

func (b *DefinitionBuilder) Substitute(s Substitute) *DefinitionBuilder {
	b.def.substitute = s
	return b
}

// WithParams sets positional constructor arguments.
func (b *DefinitionBuilder) WithParams(params ...any) *DefinitionBuilder {
	b.def.withParams = slices.Clone(params)
	return b
}

func (b *DefinitionBuilder) SingletonsInTree(ids ...string) *DefinitionBuilder {
	b.def.singletonsInTree = slices.Clone(ids)
	return b
}

func (b *DefinitionBuilder) Call(hook CallHook) *DefinitionBuilder {
	b.def.call = hook
	return b
}

func (b *DefinitionBuilder) Tags(tags ...string) *DefinitionBuilder {
	b.def.tags = slices.Clone(tags)
	return b
}

// Build returns the finished Definition. The builder may be reused; later
// changes do not affect definitions already built.
func (b *DefinitionBuilder) Build() *Definition {
	d := b.def
	d.withParams = slices.Clone(d.withParams)
	d.singletonsInTree = slices.Clone(d.singletonsInTree)
	d.tags = slices.Clone(d.tags)
	return &d
}

// ── Definitions ───────────────────────────────────────────────────────────────

// Definitions is an insertion-ordered map of definition key → Definition.
// Keys are identifiers, delimited patterns or the catch-all "*".
type Definitions struct {
	keys []string
	defs map[string]*Definition
}

// NewDefinitions creates an empty set.
func NewDefinitions() *Definitions {
	return &Definitions{defs: make(map[string]*Definition)}
}

// Set adds or replaces a definition. Replacing keeps the original position.
func (d *Definitions) Set(key string, def *Definition) *Definitions {
	if def == nil {
		def = Define().Build()
	}
	if _, ok := d.defs[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.defs[key] = def
	return d
}

// Get returns the definition stored under key exactly as written.
func (d *Definitions) Get(key string) (*Definition, bool) {
	def, ok := d.defs[key]
	return def, ok
}

// Keys returns the keys in insertion order.
func (d *Definitions) Keys() []string { return slices.Clone(d.keys) }

func (d *Definitions) Len() int { return len(d.keys) }

// Each visits every definition in insertion order until fn returns false.
func (d *Definitions) Each(fn func(key string, def *Definition) bool) {
	for _, k := range d.keys {
		if !fn(k, d.defs[k]) {
			return
		}
	}
}

// Tagged returns the keys of every definition carrying tag, in insertion order.
func (d *Definitions) Tagged(tag string) []string {
	var out []string
	d.Each(func(key string, def *Definition) bool {
		if def.HasTag(tag) {
			out = append(out, key)
		}
		return true
	})
	return out
}
