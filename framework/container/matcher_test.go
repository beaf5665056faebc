package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-di/framework/container"
)

// matchedKey returns the definition key the resolver picks for id.
func matchedKey(t *testing.T, r *container.ExplicitResolver, id string) string {
	t.Helper()
	rf, err := r.Resolve(id, container.New(nil))
	require.NoError(t, err)
	return rf.DefinitionID
}

func plain() *container.Definition {
	return container.Define().Substitute(container.Value("x")).Build()
}

func TestMatch_ExactBeatsEverything(t *testing.T) {
	defs := container.NewDefinitions().
		Set("*", plain()).
		Set(`/^app\./`, plain()).
		Set("App.Mailer", plain())
	r := container.NewExplicitResolver(defs)

	assert.Equal(t, "App.Mailer", matchedKey(t, r, "app.mailer"))
	assert.Equal(t, "App.Mailer", matchedKey(t, r, `\APP.MAILER`))
}

func TestMatch_PatternInInsertionOrder(t *testing.T) {
	defs := container.NewDefinitions().
		Set(`/^app\.(.+)$/`, plain()).
		Set(`/Mailer$/`, plain()).
		Set("*", plain())
	r := container.NewExplicitResolver(defs)

	assert.Equal(t, `/^app\.(.+)$/`, matchedKey(t, r, "app.Mailer"))
	assert.Equal(t, `/Mailer$/`, matchedKey(t, r, "infra.Mailer"))
	assert.Equal(t, "*", matchedKey(t, r, "infra.Queue"))
}

func TestMatch_PatternFlags(t *testing.T) {
	defs := container.NewDefinitions().Set(`#^repo\.#i`, plain())
	r := container.NewExplicitResolver(defs)

	assert.True(t, r.Has("REPO.users"))
	assert.False(t, r.Has("users.repo"))
}

func TestMatch_PatternIsCaseSensitiveWithoutFlag(t *testing.T) {
	defs := container.NewDefinitions().Set(`/^Repo/`, plain())
	r := container.NewExplicitResolver(defs)

	assert.True(t, r.Has("RepoUsers"))
	assert.False(t, r.Has("repoUsers"))
}

func TestMatch_MalformedPatternNeverErrors(t *testing.T) {
	defs := container.NewDefinitions().
		Set(`/[unclosed/`, plain()).
		Set(`/ok/x`, plain())
	r := container.NewExplicitResolver(defs)

	assert.NotPanics(t, func() {
		assert.False(t, r.Has("unclosed"))
		assert.False(t, r.Has("ok"))
	})
	// malformed keys still work as exact keys
	assert.True(t, r.Has(`/[unclosed/`))
}

func TestMatch_CatchAllLast(t *testing.T) {
	defs := container.NewDefinitions().
		Set("*", plain()).
		Set("TestClass", container.Define().WithParams("n", 1).Build())
	r := container.NewExplicitResolver(defs, container.WithTypeRegistry(testTypes()))

	assert.Equal(t, "TestClass", matchedKey(t, r, "AnotherTestClass"))
	assert.Equal(t, "*", matchedKey(t, r, "anything"))
}

func TestMatch_NotFoundWithoutCatchAll(t *testing.T) {
	r := container.NewExplicitResolver(container.NewDefinitions().Set("a", plain()))

	assert.False(t, r.Has("b"))
	_, err := r.Resolve("b", container.New(nil))
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestMatch_StrictSkipsInheritanceButNotPatterns(t *testing.T) {
	defs := container.NewDefinitions().
		Set("TestClass", container.Define().Strict().Build()).
		Set(`/TestClass$/`, plain())
	r := container.NewExplicitResolver(defs, container.WithTypeRegistry(testTypes()))

	assert.Equal(t, `/TestClass$/`, matchedKey(t, r, "AnotherTestClass"))
}

func TestMatch_InheritanceInInsertionOrder(t *testing.T) {
	types := testTypes()
	types.Register(container.TypeSpec{Name: "Named"})
	types.Register(container.TypeSpec{
		Name:    "Leaf",
		Parents: []string{"AnotherTestClass", "Named"},
		New:     func([]any) (any, error) { return "leaf", nil },
	})
	defs := container.NewDefinitions().
		Set("Named", plain()).
		Set("TestClass", plain())
	r := container.NewExplicitResolver(defs, container.WithTypeRegistry(types))

	assert.Equal(t, "Named", matchedKey(t, r, "Leaf"))
}

// ── Interface satisfaction ────────────────────────────────────────────────────

type Greeter interface{ Greet() string }

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

func TestMatch_InterfaceDefinitionAppliesToImplementations(t *testing.T) {
	types := container.NewTypes()
	iface := container.RegisterInterface[Greeter](types)
	impl := container.RegisterType(types, func([]any) (*englishGreeter, error) {
		return &englishGreeter{}, nil
	})

	defs := container.NewDefinitions().Set(iface, container.Define().Singleton().Build())
	c := explicit(defs, types)

	require.True(t, c.Has(impl))
	a, err := c.Get(impl)
	require.NoError(t, err)
	b, err := c.Get(impl)
	require.NoError(t, err)
	assert.Same(t, a, b, "singleton scope inherited from the interface definition")
	assert.Equal(t, "hello", a.(Greeter).Greet())
}
