package container

import (
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// match is the outcome of a definition lookup.
type match struct {
	key   string
	def   *Definition
	exact bool
}

// matcher implements definition matching over one Definitions set:
// exact normalized key, then inheritance or pattern in insertion order,
// then the catch-all.
type matcher struct {
	defs  *Definitions
	types *Types

	// normalized id → original key, for non-pattern keys
	exact map[string]string

	// definition key → compiled pattern, nil when the key is not a pattern
	patterns *lru.Cache[string, *regexp.Regexp]

	mu    sync.Mutex
	cache map[string]*match // nil entry caches a miss
}

func newMatcher(defs *Definitions, types *Types) *matcher {
	if defs == nil {
		defs = NewDefinitions()
	}
	patterns, err := lru.New[string, *regexp.Regexp](max(defs.Len(), 1))
	if err != nil {
		panic(err)
	}
	m := &matcher{
		defs:     defs,
		types:    types,
		exact:    make(map[string]string, defs.Len()),
		patterns: patterns,
		cache:    make(map[string]*match),
	}
	defs.Each(func(key string, _ *Definition) bool {
		if key == CatchAll || m.pattern(key) != nil {
			return true
		}
		n := NormalizeID(key)
		if _, dup := m.exact[n]; !dup {
			m.exact[n] = key
		}
		return true
	})
	return m
}

// pattern compiles key once per matcher.
func (m *matcher) pattern(key string) *regexp.Regexp {
	if re, ok := m.patterns.Get(key); ok {
		return re
	}
	re := compilePattern(key)
	m.patterns.Add(key, re)
	return re
}

// find returns the definition that applies to id.
func (m *matcher) find(id string) (*match, bool) {
	m.mu.Lock()
	cached, ok := m.cache[id]
	m.mu.Unlock()
	if ok {
		return cached, cached != nil
	}

	found := m.lookup(id)

	m.mu.Lock()
	m.cache[id] = found
	m.mu.Unlock()
	return found, found != nil
}

func (m *matcher) lookup(id string) *match {
	if key, ok := m.exact[NormalizeID(id)]; ok {
		def, _ := m.defs.Get(key)
		return &match{key: key, def: def, exact: true}
	}

	var found *match
	m.defs.Each(func(key string, def *Definition) bool {
		if key == CatchAll {
			return true
		}
		if !def.Strict() && m.types.IsSubtype(id, key) {
			found = &match{key: key, def: def}
			return false
		}
		if re := m.pattern(key); re != nil && re.MatchString(id) {
			found = &match{key: key, def: def}
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	if def, ok := m.defs.Get(CatchAll); ok {
		return &match{key: CatchAll, def: def}
	}
	return nil
}
