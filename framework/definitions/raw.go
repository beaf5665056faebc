// Package definitions loads container definitions from raw maps and
// definition files. Every source is a container.DefinitionProvider.
//
// A raw definition is a map with any of these keys:
//
//	scope             "prototype" | "singleton" | "request" | "session", or a bool
//	singleton         same as scope
//	shared            bool shorthand for singleton / prototype
//	strict            bool
//	substitute        identifier or type name to build instead
//	withParams        positional arguments; "@id" strings become references
//	singletonsInTree  list of identifiers
//	tags              list of strings
//
// A document is either a map of key → definition, or a single "rules" list
// whose items carry their key under "name".
package definitions

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/km-arc/go-di/framework/container"
)

// RawEntry is one undecoded definition with its key.
type RawEntry struct {
	Key   string
	Value map[string]any
}

// scopeValue is a scope name; booleans decode to singleton or prototype.
type scopeValue string

var scopeValueType = reflect.TypeFor[scopeValue]()

// boolScopeHook turns true/false into a scope name before weak typing would
// turn it into "1"/"0".
func boolScopeHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	if to != scopeValueType || from.Kind() != reflect.Bool {
		return data, nil
	}
	return container.ScopeFromBool(reflect.ValueOf(data).Bool()).String(), nil
}

// rawDefinition is the decoding target for a single entry.
type rawDefinition struct {
	Scope            scopeValue  `mapstructure:"scope"`
	Singleton        *scopeValue `mapstructure:"singleton"`
	Shared           *bool       `mapstructure:"shared"`
	Strict           bool        `mapstructure:"strict"`
	Substitute       string      `mapstructure:"substitute"`
	WithParams       []any       `mapstructure:"withParams"`
	SingletonsInTree []string    `mapstructure:"singletonsInTree"`
	Tags             []string    `mapstructure:"tags"`
}

// Decode turns one raw entry into a Definition.
func Decode(key string, raw map[string]any) (*container.Definition, error) {
	var rd rawDefinition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rd,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       boolScopeHook,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &container.ContainerError{ID: key, Reason: "invalid definition", Err: err}
	}

	b := container.Define()
	name := rd.Scope
	if name == "" && rd.Singleton != nil {
		name = *rd.Singleton
	}
	switch {
	case name != "":
		scope, err := container.ParseScope(string(name))
		if err != nil {
			return nil, &container.ContainerError{ID: key, Reason: "invalid definition", Err: err}
		}
		b.Scoped(scope)
	case rd.Shared != nil:
		b.Shared(*rd.Shared)
	}
	if rd.Strict {
		b.Strict()
	}
	if rd.Substitute != "" {
		b.Substitute(container.Ref(rd.Substitute))
	}
	if len(rd.WithParams) > 0 {
		b.WithParams(params(rd.WithParams)...)
	}
	if len(rd.SingletonsInTree) > 0 {
		b.SingletonsInTree(rd.SingletonsInTree...)
	}
	if len(rd.Tags) > 0 {
		b.Tags(rd.Tags...)
	}
	return b.Build(), nil
}

// params converts "@id" strings into references. "@@" escapes a literal "@".
func params(in []any) []any {
	out := make([]any, len(in))
	for i, p := range in {
		s, ok := p.(string)
		switch {
		case !ok:
			out[i] = p
		case strings.HasPrefix(s, "@@"):
			out[i] = s[1:]
		case len(s) > 1 && s[0] == '@':
			out[i] = container.Use(s[1:])
		default:
			out[i] = s
		}
	}
	return out
}

// Build decodes entries in order.
func Build(entries []RawEntry) (*container.Definitions, error) {
	defs := container.NewDefinitions()
	for _, e := range entries {
		def, err := Decode(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		defs.Set(e.Key, def)
	}
	return defs, nil
}

// ── Providers ─────────────────────────────────────────────────────────────────

// Raw serves ordered raw entries.
type Raw []RawEntry

func (r Raw) Definitions() (*container.Definitions, error) {
	return Build(r)
}

// RawMap serves an unordered map. Keys are sorted so that pattern and
// inheritance tie-breaking stays deterministic.
type RawMap map[string]any

func (m RawMap) Definitions() (*container.Definitions, error) {
	entries, err := fromDocument(m, slices.Sorted(maps.Keys(m)))
	if err != nil {
		return nil, err
	}
	return Build(entries)
}

// Code serves definitions declared in Go.
//
//	definitions.Code(func(d *container.Definitions) {
//	    d.Set("mailer", container.Define().Singleton().Build())
//	})
type Code func(d *container.Definitions)

func (c Code) Definitions() (*container.Definitions, error) {
	defs := container.NewDefinitions()
	c(defs)
	return defs, nil
}

// ── Document shape ────────────────────────────────────────────────────────────

// fromDocument converts a decoded document into entries, visiting keys in
// the given order.
func fromDocument(doc map[string]any, order []string) ([]RawEntry, error) {
	if rules, ok := doc["rules"]; ok && len(doc) == 1 {
		return fromRules(rules)
	}
	entries := make([]RawEntry, 0, len(order))
	for _, key := range order {
		value, err := asMap(key, doc[key])
		if err != nil {
			return nil, err
		}
		entries = append(entries, RawEntry{Key: key, Value: value})
	}
	return entries, nil
}

func fromRules(rules any) ([]RawEntry, error) {
	list, ok := rules.([]any)
	if !ok {
		return nil, &container.ContainerError{ID: "rules", Reason: "rules must be a list"}
	}
	entries := make([]RawEntry, 0, len(list))
	for i, item := range list {
		value, err := asMap(fmt.Sprintf("rules[%d]", i), item)
		if err != nil {
			return nil, err
		}
		name, _ := value["name"].(string)
		if name == "" {
			return nil, &container.ContainerError{ID: fmt.Sprintf("rules[%d]", i), Reason: "rule has no name"}
		}
		delete(value, "name")
		entries = append(entries, RawEntry{Key: name, Value: value})
	}
	return entries, nil
}

func asMap(key string, v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return maps.Clone(m), nil
	}
	return nil, &container.ContainerError{ID: key, Reason: fmt.Sprintf("definition must be a map, got %T", v)}
}
