package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"pylens/internal/provider"
)

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

// ExtractSymbols walks the module tree and emits classes with their methods
// and nested classes. Top-level functions come out as KindOther so containment
// lookups can still land on them.
func (p *PythonExtractor) ExtractSymbols(root *sitter.Node, source []byte) []*provider.Symbol {
	return p.walk(root, source, false)
}

func (p *PythonExtractor) walk(node *sitter.Node, source []byte, insideClass bool) []*provider.Symbol {
	var out []*provider.Symbol
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		// Decorators belong to the declaration range, like hosts report them.
		decl := child
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}

		switch child.Type() {
		case "class_definition":
			sym := p.definitionSymbol(decl, child, source, provider.KindClass)
			if sym == nil {
				continue
			}
			if body := child.ChildByFieldName("body"); body != nil {
				sym.Children = p.walk(body, source, true)
			}
			out = append(out, sym)
		case "function_definition":
			kind := provider.KindOther
			if insideClass {
				kind = provider.KindMethod
			}
			sym := p.definitionSymbol(decl, child, source, kind)
			if sym == nil {
				continue
			}
			out = append(out, sym)
		default:
			// Compound statements (if/try at module level) can hide
			// definitions; descend without changing class context.
			if child.NamedChildCount() > 0 && child.Type() != "expression_statement" {
				out = append(out, p.walk(child, source, insideClass)...)
			}
		}
	}
	return out
}

func (p *PythonExtractor) definitionSymbol(decl, def *sitter.Node, source []byte, kind provider.Kind) *provider.Symbol {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return &provider.Symbol{
		Name:      nameNode.Content(source),
		Kind:      kind,
		Range:     nodeRange(decl),
		NameRange: nodeRange(nameNode),
	}
}
