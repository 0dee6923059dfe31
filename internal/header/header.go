// Package header parses Python class declaration headers textually: the span
// from the `class` keyword through the colon that opens the body, possibly
// across multiple lines.
package header

import (
	"strings"

	"pylens/internal/provider"
)

// maxLines bounds the scan for a header terminator. Exceeding it is treated
// as "no parents found", not an error.
const maxLines = 50

// Parent is one declared parent name and the position of its first token
// occurrence within the header. For dotted names like `p.Base`, Position
// points at the final attribute segment so definition lookups land on the
// class identifier.
type Parent struct {
	Name     string
	Position provider.Position
}

// Parse extracts the ordered parent list from a class symbol's declaration
// header. Classes without a parenthesized parent list yield nil.
func Parse(doc *provider.Document, class *provider.Symbol) []Parent {
	startLine, endLine, ok := span(doc, class)
	if !ok {
		return nil
	}

	var header strings.Builder
	for i := startLine; i <= endLine; i++ {
		header.WriteString(stripComment(doc.Line(i)))
		header.WriteString("\n")
	}

	names := parentNames(header.String())
	if len(names) == 0 {
		return nil
	}

	var parents []Parent
	for _, name := range names {
		pos, ok := locate(doc, name, startLine, endLine)
		if !ok {
			continue
		}
		parents = append(parents, Parent{Name: name, Position: pos})
	}
	return parents
}

// End returns the position just past the header's terminating colon line,
// i.e. the first position that belongs to the class body.
func End(doc *provider.Document, class *provider.Symbol) (provider.Position, bool) {
	_, endLine, ok := span(doc, class)
	if !ok {
		return provider.Position{}, false
	}
	return provider.Position{Line: endLine, Character: len(stripComment(doc.Line(endLine)))}, true
}

// span finds the header's first and last line. The scan starts at the name
// line rather than the declaration start, so decorators are skipped, and the
// name line must contain the `class` keyword; hosts occasionally misclassify
// other constructs.
func span(doc *provider.Document, class *provider.Symbol) (int, int, bool) {
	start := class.NameRange.Start.Line
	if !containsWord(doc.Line(start), "class") {
		return 0, 0, false
	}
	for i := start; i < doc.LineCount() && i-start < maxLines; i++ {
		line := strings.TrimRight(stripComment(doc.Line(i)), " \t")
		if strings.HasSuffix(line, ":") {
			return start, i, true
		}
	}
	return 0, 0, false
}

// parentNames extracts the substring between the outermost parenthesis pair
// of the header and splits it on depth-0 commas. Subscripted parent
// expressions with internal commas split naively; the resulting fragments
// simply fail position lookup and are skipped.
func parentNames(header string) []string {
	open := strings.Index(header, "(")
	if open < 0 {
		return nil
	}
	depth := 0
	end := -1
	for i := open; i < len(header); i++ {
		switch header[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil
	}

	inner := header[open+1 : end]
	var names []string
	depth = 0
	field := strings.Builder{}
	flush := func() {
		name := strings.TrimSpace(field.String())
		field.Reset()
		if name != "" {
			names = append(names, name)
		}
	}
	for i := 0; i < len(inner); i++ {
		switch c := inner[i]; c {
		case '(':
			depth++
			field.WriteByte(c)
		case ')':
			depth--
			field.WriteByte(c)
		case ',':
			if depth == 0 {
				flush()
			} else {
				field.WriteByte(c)
			}
		default:
			field.WriteByte(c)
		}
	}
	flush()
	return names
}

// locate scans the header lines for the first whole-word occurrence of name.
func locate(doc *provider.Document, name string, startLine, endLine int) (provider.Position, bool) {
	for i := startLine; i <= endLine; i++ {
		line := stripComment(doc.Line(i))
		col := indexWord(line, name)
		if col < 0 {
			continue
		}
		// Point at the last dotted segment for aliased parents.
		if dot := strings.LastIndex(name, "."); dot >= 0 {
			col += dot + 1
		}
		return provider.Position{Line: i, Character: col}, true
	}
	return provider.Position{}, false
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}

func containsWord(line, word string) bool {
	return indexWord(line, word) >= 0
}

// indexWord returns the index of the first occurrence of word in line that is
// not part of a larger identifier, or -1.
func indexWord(line, word string) int {
	for from := 0; from < len(line); {
		i := strings.Index(line[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isIdentChar(line[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(line) || !isIdentChar(line[afterIdx])
		if before && after {
			return i
		}
		from = i + 1
	}
	return -1
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
