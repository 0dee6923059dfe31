// Package annotate renders detection findings as inline marker lines
// interleaved with the annotated source.
package annotate

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pylens/internal/detect"
	"pylens/internal/provider"
)

var (
	overrideMarker  = color.New(color.FgCyan)
	childrenMarker  = color.New(color.FgGreen)
	subclassMarker  = color.New(color.FgYellow)
	lineNumberStyle = color.New(color.Faint)
)

// Renderer writes annotated source. With Color disabled the markers render as
// plain text, which is also what the tests assert against.
type Renderer struct {
	Color bool
}

// Render writes the document's lines with marker lines inserted above each
// anchored line. Findings keep their discovery order within a line.
func (r *Renderer) Render(w io.Writer, doc *provider.Document, findings []detect.Finding) error {
	byLine := make(map[int][]detect.Finding)
	for _, f := range findings {
		byLine[f.Range.Start.Line] = append(byLine[f.Range.Start.Line], f)
	}

	color.NoColor = !r.Color

	for line := 0; line < doc.LineCount(); line++ {
		text := doc.Line(line)
		for _, f := range byLine[line] {
			indent := text[:indentLen(text)]
			if _, err := fmt.Fprintf(w, "      %s%s\n", indent, r.marker(f)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", lineNumberStyle.Sprintf("%4d |", line+1), text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) marker(f detect.Finding) string {
	labels := make([]string, len(f.Targets))
	for i, t := range f.Targets {
		labels[i] = t.Label
	}
	joined := strings.Join(labels, ", ")

	switch f.Kind {
	case detect.KindOverride:
		return overrideMarker.Sprintf("▸ overrides %s", joined)
	case detect.KindImplementation:
		return childrenMarker.Sprintf("▾ implemented by %s", joined)
	case detect.KindSubclassed:
		return subclassMarker.Sprintf("◂ subclassed by %s", joined)
	default:
		return joined
	}
}

func indentLen(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
