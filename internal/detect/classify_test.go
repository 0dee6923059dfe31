package detect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pylens/internal/provider"
)

func classFixture(t *testing.T, src, name string) (*provider.Document, *provider.Symbol) {
	t.Helper()
	ws := newFakeWorkspace(t, map[string]string{"a.py": src})
	doc := ws.docs["a.py"]
	for _, c := range provider.Classes(ws.symbols["a.py"]) {
		if c.Name == name {
			return doc, c
		}
	}
	t.Fatalf("class %s not found", name)
	return nil, nil
}

func TestIsSupertypeReference_HeaderReference(t *testing.T) {
	doc, child := classFixture(t, "class Child(Base):\n    pass\n", "Child")
	require.True(t, isSupertypeReference(doc, child, provider.Position{Line: 0, Character: 12}))
}

func TestIsSupertypeReference_MultiLineHeader(t *testing.T) {
	src := "class Child(\n    Base,\n    Mixin\n):\n    pass\n"
	doc, child := classFixture(t, src, "Child")
	require.True(t, isSupertypeReference(doc, child, provider.Position{Line: 1, Character: 4}))
	require.True(t, isSupertypeReference(doc, child, provider.Position{Line: 2, Character: 4}))
}

func TestIsSupertypeReference_BodyReference(t *testing.T) {
	src := "class Config:\n    factory = Base\n"
	doc, config := classFixture(t, src, "Config")
	require.False(t, isSupertypeReference(doc, config, provider.Position{Line: 1, Character: 14}))
}

func TestIsSupertypeReference_ClassNameItself(t *testing.T) {
	doc, child := classFixture(t, "class Child(Base):\n    pass\n", "Child")
	// The declared name sits before the opening paren, at depth 0.
	require.False(t, isSupertypeReference(doc, child, provider.Position{Line: 0, Character: 6}))
}

func TestIsSupertypeReference_UnbalancedParensAfterHeader(t *testing.T) {
	// A default-value expression with an open paren on a continuation line
	// fools plain depth counting; the header bound must reject it.
	src := "class Widget(Base):\n" +
		"    def configure(self, factory=(\n" +
		"        Base)):\n" +
		"        pass\n"
	doc, widget := classFixture(t, src, "Widget")
	require.False(t, isSupertypeReference(doc, widget, provider.Position{Line: 2, Character: 8}),
		"references past the header end are body references regardless of paren depth")
}
