package container_test

import (
	"fmt"

	"github.com/km-arc/go-di/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type TestClass struct {
	Name  string
	Value int
}

type AnotherTestClass struct {
	TestClass
}

func testClassArgs(args []any) (string, int, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("want 2 args, got %d", len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return "", 0, fmt.Errorf("arg 0: want string, got %T", args[0])
	}
	value, ok := args[1].(int)
	if !ok {
		return "", 0, fmt.Errorf("arg 1: want int, got %T", args[1])
	}
	return name, value, nil
}

// testTypes registers TestClass and its subtype AnotherTestClass.
func testTypes() *container.Types {
	types := container.NewTypes()
	types.Register(container.TypeSpec{
		Name: "TestClass",
		New: func(args []any) (any, error) {
			name, value, err := testClassArgs(args)
			if err != nil {
				return nil, err
			}
			return &TestClass{Name: name, Value: value}, nil
		},
	})
	types.Register(container.TypeSpec{
		Name:    "AnotherTestClass",
		Parents: []string{"TestClass"},
		New: func(args []any) (any, error) {
			name, value, err := testClassArgs(args)
			if err != nil {
				return nil, err
			}
			return &AnotherTestClass{TestClass{Name: name, Value: value}}, nil
		},
	})
	return types
}

// explicit builds a container with a single explicit resolver over defs.
func explicit(defs *container.Definitions, types *container.Types) *container.Container {
	return container.New([]container.Resolver{
		container.NewExplicitResolver(defs, container.WithTypeRegistry(types)),
	})
}

func newObject(_ container.Locator, _ []any) (any, error) {
	return &struct{ N int }{}, nil
}

// stubResolver answers Has for a fixed set of ids and counts Resolve calls.
type stubResolver struct {
	ids      map[string]any
	resolved int
}

func (s *stubResolver) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *stubResolver) Resolve(id string, _ container.Locator) (*container.ResolvedFactory, error) {
	s.resolved++
	v, ok := s.ids[id]
	if !ok {
		return nil, &container.NotFoundError{ID: id}
	}
	return &container.ResolvedFactory{
		DefinitionID: id,
		Factory:      func() (any, error) { return v, nil },
	}, nil
}
