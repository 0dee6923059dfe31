package detect

import (
	"context"

	"pylens/internal/cache"
	"pylens/internal/provider"
)

// subclasses finds every class in the workspace whose declaration header
// genuinely references the given class as a parent, deduplicated by
// (class name, owning document). Results are memoized per session.
func (d *Detector) subclasses(ctx context.Context, doc *provider.Document, class *provider.Symbol) []cache.Subclass {
	if subs, ok := d.cache.Subclasses(doc.ID, class.Name); ok {
		return subs
	}

	refs, err := d.ws.ResolveReferences(ctx, doc.ID, class.NameRange.Start)
	if err != nil {
		d.logf("resolve references for %s in %s: %v", class.Name, doc.ID, err)
		return nil
	}

	symbolsByDoc := make(map[provider.DocumentID][]*provider.Symbol)
	docsByID := make(map[provider.DocumentID]*provider.Document)
	seen := make(map[string]bool)
	var subs []cache.Subclass

	for _, ref := range refs {
		// References inside dependency code never yield workspace subclasses.
		if d.ws.IsLibrary(ref.Doc) {
			continue
		}
		if verdict, ok := d.cache.Reference(ref.Doc, ref.Range); ok && !verdict {
			continue
		}

		symbols, ok := symbolsByDoc[ref.Doc]
		if !ok {
			symbols, err = d.ws.ResolveSymbols(ctx, ref.Doc)
			if err != nil {
				d.logf("resolve symbols for %s: %v", ref.Doc, err)
				symbolsByDoc[ref.Doc] = nil
				continue
			}
			symbolsByDoc[ref.Doc] = symbols
		}
		if symbols == nil {
			continue
		}

		enclosing := provider.SymbolContaining(symbols, ref.Range)
		if enclosing == nil || enclosing.Kind != provider.KindClass {
			continue
		}

		verdict, ok := d.cache.Reference(ref.Doc, ref.Range)
		if !ok {
			refDoc, found := docsByID[ref.Doc]
			if !found {
				refDoc, err = d.ws.OpenDocument(ctx, ref.Doc)
				if err != nil {
					d.logf("open %s: %v", ref.Doc, err)
					docsByID[ref.Doc] = nil
					continue
				}
				docsByID[ref.Doc] = refDoc
			}
			if refDoc == nil {
				continue
			}
			verdict = isSupertypeReference(refDoc, enclosing, ref.Range.Start)
			d.cache.PutReference(ref.Doc, ref.Range, verdict)
		}
		if !verdict {
			continue
		}

		key := visitKey(ref.Doc, enclosing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		sub := cache.Subclass{
			Name:      enclosing.Name,
			Doc:       ref.Doc,
			NameRange: enclosing.NameRange,
		}
		for _, m := range provider.Methods(enclosing) {
			sub.Methods = append(sub.Methods, cache.SubMethod{Name: m.Name, NameRange: m.NameRange})
		}
		subs = append(subs, sub)
	}

	d.cache.PutSubclasses(doc.ID, class.Name, subs)
	return subs
}
