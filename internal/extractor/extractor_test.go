package extractor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/internal/provider"
)

func TestExtractor_ExtractFile(t *testing.T) {
	testFile := filepath.Join("testdata", "sample.py")

	ext, err := New("python")
	require.NoError(t, err)

	doc, symbols, err := ext.ExtractFile(testFile)
	require.NoError(t, err)
	require.NotNil(t, doc)

	byName := make(map[string]*provider.Symbol)
	for _, s := range symbols {
		byName[s.Name] = s
	}

	t.Run("Top level symbols", func(t *testing.T) {
		assert.Len(t, symbols, 5, "Bread, Sandwich, MultiLineChild, Meal, bake")
		for _, name := range []string{"Bread", "Sandwich", "MultiLineChild", "Meal"} {
			require.Contains(t, byName, name)
			assert.Equal(t, provider.KindClass, byName[name].Kind)
		}
		require.Contains(t, byName, "bake")
		assert.Equal(t, provider.KindOther, byName["bake"].Kind, "top-level functions are not methods")
	})

	t.Run("Name ranges", func(t *testing.T) {
		bread := byName["Bread"]
		assert.Equal(t, 3, bread.NameRange.Start.Line)
		assert.Equal(t, 6, bread.NameRange.Start.Character)
		assert.Equal(t, 11, bread.NameRange.End.Character)
		assert.Equal(t, 3, bread.Range.Start.Line)
		assert.Equal(t, 7, bread.Range.End.Line, "declaration range covers the body")
	})

	t.Run("Methods", func(t *testing.T) {
		sandwich := byName["Sandwich"]
		methods := provider.Methods(sandwich)
		require.Len(t, methods, 2)
		assert.Equal(t, "prep", methods[0].Name)
		assert.Equal(t, "has_top", methods[1].Name)
		assert.Equal(t, provider.KindMethod, methods[0].Kind)
	})

	t.Run("Decorated method range includes decorator", func(t *testing.T) {
		sandwich := byName["Sandwich"]
		hasTop := provider.Methods(sandwich)[1]
		assert.Equal(t, 15, hasTop.Range.Start.Line, "@property line")
		assert.Equal(t, 16, hasTop.NameRange.Start.Line)
	})

	t.Run("Decorated class", func(t *testing.T) {
		meal := byName["Meal"]
		assert.Equal(t, 32, meal.Range.Start.Line, "@dataclass line")
		assert.Equal(t, 33, meal.NameRange.Start.Line)
		assert.Empty(t, provider.Methods(meal))
	})

	t.Run("Nested class", func(t *testing.T) {
		sandwich := byName["Sandwich"]
		var filling *provider.Symbol
		for _, c := range sandwich.Children {
			if c.Name == "Filling" {
				filling = c
			}
		}
		require.NotNil(t, filling, "nested class should be a child of Sandwich")
		assert.Equal(t, provider.KindClass, filling.Kind)
		require.Len(t, provider.Methods(filling), 1)
		assert.Equal(t, "name", provider.Methods(filling)[0].Name)
	})

	t.Run("Multi-line header", func(t *testing.T) {
		mlc := byName["MultiLineChild"]
		assert.Equal(t, 24, mlc.Range.Start.Line)
		require.Len(t, provider.Methods(mlc), 1)
		assert.Equal(t, "prep", provider.Methods(mlc)[0].Name)
	})
}

func TestExtractor_UnsupportedLanguage(t *testing.T) {
	_, err := New("cobol")
	assert.Error(t, err)
}
