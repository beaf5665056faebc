// Package container provides a definition-driven dependency resolution engine.
//
// # Overview
//
// Instead of hand-written factory code, the container decides how to build
// an identifier from declarative rules ("definitions"). An identifier is a
// string key: a type name, an interface name or any arbitrary string.
//
// Resolution is performed by an ordered list of resolvers:
//
//   - ExplicitResolver matches declared definitions.
//   - AutowiringResolver constructs any type registered in a Types registry,
//     deriving constructor arguments from registered parameter descriptors.
//
// # Container Lifecycle
//
//  1. Describe: defs := container.NewDefinitions().Set(...)
//  2. Build:    c, err := container.NewFactory(provider).Build()   // validates, builds nothing
//  3. Resolve:  v, err := c.Get("mailer")
//
// # Definitions
//
//	// Singleton built by a factory function
//	defs.Set("mailer", container.Define().
//	    Singleton().
//	    Substitute(container.Func(func(c container.Locator, args []any) (any, error) {
//	        return &SMTPMailer{Host: args[0].(string)}, nil
//	    })).
//	    WithParams("localhost").
//	    Build())
//
//	// Redirect to another identifier
//	defs.Set("notifier", container.Define().Substitute(container.Ref("mailer")).Build())
//
//	// Pre-built value
//	defs.Set("config", container.Define().Substitute(container.Value(cfg)).Build())
//
//	// Decorate after construction
//	defs.Set("logger", container.Define().
//	    Call(func(instance any, c container.Locator) (any, error) {
//	        return &TimestampLogger{Inner: instance.(*Logger)}, nil
//	    }).
//	    Build())
//
// # Matching
//
// For a requested id the first applicable rule wins:
//
//  1. an exact key, compared case-insensitively without leading `\`
//  2. in insertion order, a non-strict key that id is a subtype of, or a
//     delimited pattern key such as `/^app\./` that id matches
//  3. the catch-all key "*"
//
// A rule found in step 2 or 3 that has no substitute only applies to ids
// registered as constructible types.
//
// # Scopes
//
// Singleton definitions are built once per container. Every other scope
// caches the factory and builds a fresh value on each Get.
//
// # Validation
//
// ContainerFactory walks every declared identifier through a
// ValidationContainer before returning, so cycles such as
//
//	a -> b -> a
//
// and missing substitute targets surface at configuration time.
//
// # Composition
//
//	app, _ := container.NewFactory(appDefs).Build()
//	infra, _ := container.NewFactory(infraDefs).Build()
//	root, _ := container.NewComposite(app, infra) // app resolves infra deps through root
package container
