// Package extractor builds provider symbol trees from Python source using
// tree-sitter. It is the concrete symbol provider backing the CLI; the
// detection engine itself only ever sees the provider contract.
package extractor

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"pylens/internal/provider"
)

// Extractor parses source files into symbol trees.
type Extractor struct {
	lang LanguageExtractor
}

// New creates an extractor for the given language tag.
func New(lang string) (*Extractor, error) {
	switch lang {
	case "python":
		return &Extractor{lang: &PythonExtractor{}}, nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// ExtractFile parses a file from disk and returns its document snapshot
// together with its symbol tree.
func (e *Extractor) ExtractFile(path string) (*provider.Document, []*provider.Symbol, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc := provider.NewDocument(provider.DocumentID(path), string(source))
	symbols, err := e.Extract(source)
	if err != nil {
		return nil, nil, err
	}
	return doc, symbols, nil
}

// Extract parses source bytes into a symbol tree.
func (e *Extractor) Extract(source []byte) ([]*provider.Symbol, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.lang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return e.lang.ExtractSymbols(tree.RootNode(), source), nil
}

// LanguageExtractor turns a parsed syntax tree into provider symbols.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	ExtractSymbols(root *sitter.Node, source []byte) []*provider.Symbol
}

func nodeRange(n *sitter.Node) provider.Range {
	return provider.Range{
		Start: provider.Position{Line: int(n.StartPoint().Row), Character: int(n.StartPoint().Column)},
		End:   provider.Position{Line: int(n.EndPoint().Row), Character: int(n.EndPoint().Column)},
	}
}
