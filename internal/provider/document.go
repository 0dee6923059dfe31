package provider

import "strings"

// Document is an immutable, line-addressable snapshot of a source file.
type Document struct {
	ID    DocumentID
	lines []string
}

// NewDocument splits source text into lines. Both LF and CRLF input produce
// lines without terminators.
func NewDocument(id DocumentID, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{ID: id, lines: strings.Split(text, "\n")}
}

// Line returns the line at index i, or "" when out of bounds.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}
