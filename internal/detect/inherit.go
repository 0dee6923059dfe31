package detect

import (
	"context"

	"pylens/internal/header"
	"pylens/internal/provider"
)

// ancestorMethod records the nearest ancestor declaring a method name.
type ancestorMethod struct {
	class string
	loc   provider.Location
}

type ancestorEntry struct {
	class *provider.Symbol
	doc   *provider.Document
	depth int
}

// nearestAncestors walks the parent chain breadth-first up to the configured
// depth bound (0 = unlimited) and maps each inherited method name to its
// nearest declaring ancestor. First write wins: BFS visits shallower depths
// first, which is exactly the "closest ancestor" rule.
func (d *Detector) nearestAncestors(ctx context.Context, doc *provider.Document, class *provider.Symbol) map[string]ancestorMethod {
	methods := make(map[string]ancestorMethod)
	visited := map[string]bool{visitKey(doc.ID, class.Name): true}

	queue := d.resolveParents(ctx, doc, class, 1)
	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		key := visitKey(entry.doc.ID, entry.class.Name)
		if visited[key] {
			continue
		}
		visited[key] = true

		for _, m := range provider.Methods(entry.class) {
			if _, seen := methods[m.Name]; seen {
				continue
			}
			methods[m.Name] = ancestorMethod{
				class: entry.class.Name,
				loc:   provider.Location{Doc: entry.doc.ID, Range: m.NameRange},
			}
		}

		if d.maxDepth == 0 || entry.depth < d.maxDepth {
			queue = append(queue, d.resolveParents(ctx, entry.doc, entry.class, entry.depth+1)...)
		}
	}
	return methods
}

// resolveParents resolves a class's declared parent names to class symbols in
// their declaring documents. A name that fails to resolve, or a document that
// fails to open, abandons that branch only.
func (d *Detector) resolveParents(ctx context.Context, doc *provider.Document, class *provider.Symbol, depth int) []ancestorEntry {
	var out []ancestorEntry
	for _, parent := range header.Parse(doc, class) {
		locs, err := d.ws.ResolveDefinition(ctx, doc.ID, parent.Position)
		if err != nil {
			d.logf("resolve definition for %s in %s: %v", parent.Name, doc.ID, err)
			continue
		}
		if len(locs) == 0 {
			continue
		}
		loc := locs[0]

		parentDoc, err := d.ws.OpenDocument(ctx, loc.Doc)
		if err != nil {
			d.logf("open %s: %v", loc.Doc, err)
			continue
		}
		symbols, err := d.ws.ResolveSymbols(ctx, loc.Doc)
		if err != nil {
			d.logf("resolve symbols for %s: %v", loc.Doc, err)
			continue
		}
		parentClass := provider.ClassAt(symbols, loc.Range.Start)
		if parentClass == nil {
			continue
		}
		out = append(out, ancestorEntry{class: parentClass, doc: parentDoc, depth: depth})
	}
	return out
}

func visitKey(doc provider.DocumentID, class string) string {
	return string(doc) + "\x00" + class
}
