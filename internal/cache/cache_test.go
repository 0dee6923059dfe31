package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/internal/provider"
)

func TestCache_SubclassRoundTrip(t *testing.T) {
	c := New()

	_, ok := c.Subclasses("animal.py", "Animal")
	assert.False(t, ok)

	subs := []Subclass{{Name: "Dog", Doc: "pets.py"}}
	c.PutSubclasses("animal.py", "Animal", subs)

	got, ok := c.Subclasses("animal.py", "Animal")
	require.True(t, ok)
	assert.Equal(t, subs, got)
}

func TestCache_EmptySubclassListIsMemoized(t *testing.T) {
	c := New()
	c.PutSubclasses("animal.py", "Animal", nil)

	got, ok := c.Subclasses("animal.py", "Animal")
	assert.True(t, ok, "a negative result is still a result")
	assert.Empty(t, got)
}

func TestCache_ReferenceMemoizesBothOutcomes(t *testing.T) {
	c := New()
	r1 := provider.Range{Start: provider.Position{Line: 1, Character: 10}}
	r2 := provider.Range{Start: provider.Position{Line: 5, Character: 2}}

	c.PutReference("pets.py", r1, true)
	c.PutReference("config.py", r2, false)

	v, ok := c.Reference("pets.py", r1)
	require.True(t, ok)
	assert.True(t, v)

	v, ok = c.Reference("config.py", r2)
	require.True(t, ok)
	assert.False(t, v)

	_, ok = c.Reference("pets.py", r2)
	assert.False(t, ok)
}

func TestCache_InvalidateDropsDocumentEntries(t *testing.T) {
	c := New()
	r := provider.Range{Start: provider.Position{Line: 0, Character: 10}}

	c.PutSubclasses("animal.py", "Animal", []Subclass{{Name: "Dog", Doc: "pets.py"}})
	c.PutSubclasses("other.py", "Other", nil)
	c.PutReference("pets.py", r, true)
	c.PutReference("other.py", r, false)

	c.Invalidate("pets.py")

	t.Run("entries keyed by the document", func(t *testing.T) {
		_, ok := c.Reference("pets.py", r)
		assert.False(t, ok)
	})

	t.Run("subclass lists derived from the document", func(t *testing.T) {
		_, ok := c.Subclasses("animal.py", "Animal")
		assert.False(t, ok, "the Dog entry lives in the edited file")
	})

	t.Run("unrelated entries survive", func(t *testing.T) {
		_, ok := c.Subclasses("other.py", "Other")
		assert.True(t, ok)
		_, ok = c.Reference("other.py", r)
		assert.True(t, ok)
	})
}

func TestCache_Reset(t *testing.T) {
	c := New()
	c.PutSubclasses("animal.py", "Animal", nil)
	c.Reset()
	_, ok := c.Subclasses("animal.py", "Animal")
	assert.False(t, ok)
}
