package detect

import (
	"strings"

	"pylens/internal/header"
	"pylens/internal/provider"
)

// isSupertypeReference decides whether a reference to a class name, enclosed
// by the given class symbol, sits inside that class's inheritance-declaration
// header rather than its body.
//
// The header end is located first; a reference at or past it is a body
// reference. Within the header, net parenthesis depth from the declaration
// start up to the reference position decides: depth > 0 means the reference
// lies inside the parent list.
func isSupertypeReference(doc *provider.Document, enclosing *provider.Symbol, ref provider.Position) bool {
	end, ok := header.End(doc, enclosing)
	if !ok {
		return false
	}
	if !ref.Before(end) {
		return false
	}

	// Depth counting starts at the name line so decorator lines above the
	// declaration cannot skew the balance.
	start := provider.Position{Line: enclosing.NameRange.Start.Line}
	if ref.Before(start) {
		return false
	}

	depth := 0
	for line := start.Line; line <= ref.Line; line++ {
		text := stripComment(doc.Line(line))
		from := 0
		if line == start.Line {
			from = start.Character
		}
		to := len(text)
		if line == ref.Line && ref.Character < to {
			to = ref.Character
		}
		if from > len(text) {
			from = len(text)
		}
		for i := from; i < to; i++ {
			switch text[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
	}
	return depth > 0
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}
