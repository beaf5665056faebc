package container

import "sync"

// ── DefinitionProvider interface ──────────────────────────────────────────────

// DefinitionProvider supplies raw definitions. Keys are identifiers,
// delimited patterns or the catch-all "*".
//
//	type MailProvider struct{}
//
//	func (MailProvider) Definitions() (*container.Definitions, error) {
//	    return container.NewDefinitions().
//	        Set("mailer", container.Define().Singleton().Substitute(container.Ref("smtp")).Build()), nil
//	}
type DefinitionProvider interface {
	Definitions() (*Definitions, error)
}

// ProviderFunc adapts a function to DefinitionProvider.
type ProviderFunc func() (*Definitions, error)

func (f ProviderFunc) Definitions() (*Definitions, error) { return f() }

// StaticProvider serves a fixed definition set.
type StaticProvider struct {
	Defs *Definitions
}

func (p StaticProvider) Definitions() (*Definitions, error) {
	if p.Defs == nil {
		return NewDefinitions(), nil
	}
	return p.Defs, nil
}

// ── CombinedProvider ──────────────────────────────────────────────────────────

// CombinedProvider merges several providers in registration order. Keys that
// are not patterns are normalized; two keys that land on the same normalized
// id are a collision.
type CombinedProvider struct {
	mu        sync.Mutex
	providers []DefinitionProvider
	merged    *Definitions
}

// NewCombinedProvider creates a combiner over providers.
func NewCombinedProvider(providers ...DefinitionProvider) *CombinedProvider {
	return &CombinedProvider{providers: append([]DefinitionProvider(nil), providers...)}
}

// Register appends a provider. It invalidates a previous merge.
func (c *CombinedProvider) Register(p DefinitionProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = append(c.providers, p)
	c.merged = nil
}

// Providers returns the registered providers in merge order.
func (c *CombinedProvider) Providers() []DefinitionProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DefinitionProvider(nil), c.providers...)
}

// Definitions merges lazily and caches the result.
func (c *CombinedProvider) Definitions() (*Definitions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.merged != nil {
		return c.merged, nil
	}

	sets := make([]*Definitions, 0, len(c.providers))
	for _, p := range c.providers {
		defs, err := p.Definitions()
		if err != nil {
			return nil, err
		}
		sets = append(sets, defs)
	}
	merged, err := Combine(sets...)
	if err != nil {
		return nil, err
	}
	c.merged = merged
	return merged, nil
}

// Combine merges definition sets, normalizing non-pattern keys and failing
// on any collision.
func Combine(sets ...*Definitions) (*Definitions, error) {
	out := NewDefinitions()
	for _, set := range sets {
		if set == nil {
			continue
		}
		var err error
		set.Each(func(key string, def *Definition) bool {
			if !IsPattern(key) {
				key = NormalizeID(key)
			}
			if _, exists := out.Get(key); exists {
				err = &ContainerError{ID: key, Reason: "definition collision: already defined"}
				return false
			}
			out.Set(key, def)
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
