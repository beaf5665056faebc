package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/km-arc/go-di/framework/container"
	"github.com/km-arc/go-di/framework/definitions"
)

// placeholder is what declared types construct to during a check.
type placeholder struct {
	Type string
	Args []any
}

// parseTypes turns Name[:Parent,...] declarations into a type registry.
func parseTypes(decls []string) (*container.Types, error) {
	types := container.NewTypes()
	for _, decl := range decls {
		name, parents, _ := strings.Cut(decl, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --type %q: empty name", decl)
		}
		spec := container.TypeSpec{
			Name: name,
			New: func(args []any) (any, error) {
				return &placeholder{Type: name, Args: args}, nil
			},
		}
		for _, p := range strings.Split(parents, ",") {
			if p = strings.TrimSpace(p); p != "" {
				spec.Parents = append(spec.Parents, p)
			}
		}
		types.Register(spec)
	}
	return types, nil
}

// loadDefinitions merges files in order, as the application would.
func loadDefinitions(ctx context.Context, files []string) (*container.Definitions, error) {
	sources, err := definitions.Parse(ctx, files...)
	if err != nil {
		return nil, err
	}
	return container.NewCombinedProvider(sources...).Definitions()
}
