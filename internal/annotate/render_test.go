package annotate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/internal/detect"
	"pylens/internal/provider"
)

func TestRenderer_Render(t *testing.T) {
	src := "class Animal:\n    def speak(self):\n        pass\n"
	doc := provider.NewDocument("animal.py", src)

	findings := []detect.Finding{
		{
			Kind:  detect.KindSubclassed,
			Range: provider.Range{Start: provider.Position{Line: 0, Character: 6}},
			Targets: []detect.Target{
				{Label: "Dog"},
				{Label: "Cat"},
			},
		},
		{
			Kind:    detect.KindImplementation,
			Range:   provider.Range{Start: provider.Position{Line: 1, Character: 8}},
			Targets: []detect.Target{{Label: "Dog.speak"}},
		},
	}

	var buf bytes.Buffer
	r := &Renderer{}
	require.NoError(t, r.Render(&buf, doc, findings))
	out := buf.String()

	assert.Contains(t, out, "◂ subclassed by Dog, Cat")
	assert.Contains(t, out, "▾ implemented by Dog.speak")

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "subclassed by", "marker precedes the anchored line")
	assert.Contains(t, lines[1], "class Animal:")
	assert.Contains(t, lines[2], "implemented by")
	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[2], " "), "▾"),
		"marker indentation follows the anchored line")
	assert.Contains(t, lines[3], "def speak")
}

func TestRenderer_NoFindingsPrintsPlainSource(t *testing.T) {
	doc := provider.NewDocument("a.py", "x = 1\n")
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Render(&buf, doc, nil))
	assert.Contains(t, buf.String(), "x = 1")
	assert.NotContains(t, buf.String(), "▸")
}

func TestRenderer_OverrideMarker(t *testing.T) {
	doc := provider.NewDocument("a.py", "class Dog(Animal):\n    def speak(self):\n        pass\n")
	findings := []detect.Finding{{
		Kind:    detect.KindOverride,
		Range:   provider.Range{Start: provider.Position{Line: 1, Character: 8}},
		Targets: []detect.Target{{Label: "Animal.speak"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Render(&buf, doc, findings))
	assert.Contains(t, buf.String(), "▸ overrides Animal.speak")
}
