// Package provider defines the contract between the detection engine and the
// host's code-analysis services. The engine never parses source itself beyond
// line-level heuristics; symbols, references and definitions all come from a
// Workspace implementation.
package provider

import "context"

// DocumentID identifies a source document, typically an absolute file path.
type DocumentID string

// Position is a zero-based (line, character) coordinate within a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location anchors a range inside a specific document.
type Location struct {
	Doc   DocumentID `json:"doc"`
	Range Range      `json:"range"`
}

// Kind tags the variant of a Symbol. Provider results are duck-typed trees;
// the engine always guards on Kind before descending.
type Kind int

const (
	KindOther Kind = iota
	KindClass
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	default:
		return "other"
	}
}

// Symbol is a named code entity in a document's symbol tree. Range covers the
// whole declaration including the body, NameRange only the identifier.
// Symbols are immutable snapshots; the engine only reads them.
type Symbol struct {
	Name      string
	Kind      Kind
	Range     Range
	NameRange Range
	Children  []*Symbol
}

// SymbolProvider returns the symbol tree for a document. A nil slice with a
// nil error means the backing analysis is not ready yet; callers are expected
// to retry.
type SymbolProvider interface {
	ResolveSymbols(ctx context.Context, doc DocumentID) ([]*Symbol, error)
}

// ReferenceProvider returns every textual occurrence referencing the entity
// declared at the given position.
type ReferenceProvider interface {
	ResolveReferences(ctx context.Context, doc DocumentID, pos Position) ([]Location, error)
}

// DefinitionProvider resolves the identifier at a position to its declaring
// location(s).
type DefinitionProvider interface {
	ResolveDefinition(ctx context.Context, doc DocumentID, pos Position) ([]Location, error)
}

// DocumentOpener gives line-addressable access to a document's text.
type DocumentOpener interface {
	OpenDocument(ctx context.Context, doc DocumentID) (*Document, error)
}

// LibraryClassifier reports whether a document belongs to dependency or
// vendor code rather than the user's workspace.
type LibraryClassifier interface {
	IsLibrary(doc DocumentID) bool
}

// Workspace bundles every service the detection engine consumes.
type Workspace interface {
	SymbolProvider
	ReferenceProvider
	DefinitionProvider
	DocumentOpener
	LibraryClassifier
}
