package definitions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-di/framework/container"
)

// DirPlaceholder is replaced with the absolute directory of the file being
// loaded before the file is parsed.
const DirPlaceholder = "__DIR__"

// JSONFile loads definitions from a JSON document. Key order is kept.
type JSONFile string

func (f JSONFile) Definitions() (*container.Definitions, error) {
	data, err := readFile(string(f))
	if err != nil {
		return nil, err
	}
	entries, err := parseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("definitions: %s: %w", f, err)
	}
	return Build(entries)
}

// YAMLFile loads definitions from a YAML document. Key order is kept.
type YAMLFile string

func (f YAMLFile) Definitions() (*container.Definitions, error) {
	data, err := readFile(string(f))
	if err != nil {
		return nil, err
	}
	entries, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("definitions: %s: %w", f, err)
	}
	return Build(entries)
}

// File picks the loader from the file extension.
func File(path string) (container.DefinitionProvider, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFile(path), nil
	case ".yaml", ".yml":
		return YAMLFile(path), nil
	}
	return nil, fmt.Errorf("definitions: %s: unsupported file type", path)
}

// Files combines several definition files into one provider.
func Files(paths ...string) (*container.CombinedProvider, error) {
	combined := container.NewCombinedProvider()
	for _, p := range paths {
		src, err := File(p)
		if err != nil {
			return nil, err
		}
		combined.Register(src)
	}
	return combined, nil
}

// maxParallelReads bounds how many files Parse decodes at once.
const maxParallelReads = 8

// Parse reads and decodes every path concurrently and returns one provider
// per path, in the order given. The first failure cancels the rest.
func Parse(ctx context.Context, paths ...string) ([]container.DefinitionProvider, error) {
	out := make([]container.DefinitionProvider, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		src, err := File(path)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defs, err := src.Definitions()
			if err != nil {
				return err
			}
			out[i] = container.StaticProvider{Defs: defs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readFile(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("definitions: %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}
	return bytes.ReplaceAll(data, []byte(DirPlaceholder), []byte(filepath.Dir(abs))), nil
}

// ── JSON ──────────────────────────────────────────────────────────────────────

// parseJSON walks the top-level object token by token so that key order
// survives; values are decoded whole.
func parseJSON(data []byte) ([]RawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("could not decode json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("could not decode json: top level must be an object")
	}

	doc := map[string]any{}
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("could not decode json: %w", err)
		}
		key := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("could not decode json: [%s]: %w", key, err)
		}
		if _, dup := doc[key]; !dup {
			order = append(order, key)
		}
		doc[key] = jsonNumbers(value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("could not decode json: %w", err)
	}
	return fromDocument(doc, order)
}

// jsonNumbers turns json.Number into int where the value is integral and
// float64 otherwise, recursively.
func jsonNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = jsonNumbers(t[i])
		}
	case map[string]any:
		for k := range t {
			t[k] = jsonNumbers(t[k])
		}
	}
	return v
}

// ── YAML ──────────────────────────────────────────────────────────────────────

func parseYAML(data []byte) ([]RawEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("could not decode yaml: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("could not decode yaml: top level must be a mapping")
	}

	mapping := root.Content[0]
	doc := map[string]any{}
	var order []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		var value any
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("could not decode yaml: [%s]: %w", key, err)
		}
		if _, dup := doc[key]; !dup {
			order = append(order, key)
		}
		doc[key] = value
	}
	return fromDocument(doc, order)
}
