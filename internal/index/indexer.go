// Package index builds an in-memory workspace index over extracted symbol
// trees and serves it through the provider contract. It is the standalone
// stand-in for a host editor's language services.
package index

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"pylens/internal/crawler"
	"pylens/internal/extractor"
	"pylens/internal/provider"
)

type entry struct {
	doc     *provider.Document
	symbols []*provider.Symbol
}

// Index implements provider.Workspace over a parsed snapshot of a directory
// tree. Building is concurrent; serving is read-only.
type Index struct {
	root        string
	libraryDirs []string

	mu   sync.Mutex
	docs map[provider.DocumentID]*entry
	// class name -> declaring locations, filled at build time so definition
	// lookups do not rescan the workspace.
	classDefs map[string][]provider.Location
}

// Options configures index construction.
type Options struct {
	// LibraryDirs are path segments marking dependency code (e.g. ".venv",
	// "site-packages", "vendor"). Files under them are indexed but
	// classified as library.
	LibraryDirs []string
	// Ignore lists directory names excluded from the walk entirely.
	Ignore []string
	// Workers bounds the parallel parse; 0 means 2x NumCPU.
	Workers int
}

// Build walks root, parses every Python file and assembles the index.
// Files that fail to parse are skipped; the walk itself failing is an error.
func Build(ctx context.Context, root string, opts Options) (*Index, error) {
	ext, err := extractor.New("python")
	if err != nil {
		return nil, err
	}

	idx := &Index{
		root:        root,
		libraryDirs: opts.LibraryDirs,
		docs:        make(map[provider.DocumentID]*entry),
		classDefs:   make(map[string][]provider.Location),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	cr := crawler.New(opts.Ignore...)
	walkErr := cr.Scan(root, func(path string) {
		p.Go(func(ctx context.Context) error {
			doc, symbols, err := ext.ExtractFile(path)
			if err != nil {
				// Unparseable files degrade to "no symbols", never abort.
				return nil
			}
			idx.add(doc, symbols)
			return nil
		})
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	idx.indexDefinitions()
	return idx, nil
}

func (i *Index) add(doc *provider.Document, symbols []*provider.Symbol) {
	i.mu.Lock()
	i.docs[doc.ID] = &entry{doc: doc, symbols: symbols}
	i.mu.Unlock()
}

func (i *Index) indexDefinitions() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for id, e := range i.docs {
		for _, class := range provider.Classes(e.symbols) {
			i.classDefs[class.Name] = append(i.classDefs[class.Name],
				provider.Location{Doc: id, Range: class.NameRange})
		}
	}
	for name := range i.classDefs {
		locs := i.classDefs[name]
		sort.Slice(locs, func(a, b int) bool {
			if locs[a].Doc != locs[b].Doc {
				return locs[a].Doc < locs[b].Doc
			}
			return locs[a].Range.Start.Before(locs[b].Range.Start)
		})
	}
}

// Documents returns every indexed document ID in deterministic order.
func (i *Index) Documents() []provider.DocumentID {
	i.mu.Lock()
	defer i.mu.Unlock()
	ids := make([]provider.DocumentID, 0, len(i.docs))
	for id := range i.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// ResolveSymbols implements provider.SymbolProvider.
func (i *Index) ResolveSymbols(_ context.Context, doc provider.DocumentID) ([]*provider.Symbol, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	e, ok := i.docs[doc]
	if !ok {
		return nil, fmt.Errorf("document not indexed: %s", doc)
	}
	return e.symbols, nil
}

// OpenDocument implements provider.DocumentOpener.
func (i *Index) OpenDocument(_ context.Context, doc provider.DocumentID) (*provider.Document, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	e, ok := i.docs[doc]
	if !ok {
		return nil, fmt.Errorf("document not indexed: %s", doc)
	}
	return e.doc, nil
}

// ResolveReferences implements provider.ReferenceProvider: every whole-word
// occurrence of the identifier declared at pos, across all indexed documents
// in deterministic order.
func (i *Index) ResolveReferences(ctx context.Context, doc provider.DocumentID, pos provider.Position) ([]provider.Location, error) {
	name, err := i.wordAt(ctx, doc, pos)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}

	var out []provider.Location
	for _, id := range i.Documents() {
		i.mu.Lock()
		e := i.docs[id]
		i.mu.Unlock()
		for line := 0; line < e.doc.LineCount(); line++ {
			text := e.doc.Line(line)
			for col := 0; col < len(text); {
				rel := indexWord(text[col:], name)
				if rel < 0 {
					break
				}
				start := col + rel
				out = append(out, provider.Location{
					Doc: id,
					Range: provider.Range{
						Start: provider.Position{Line: line, Character: start},
						End:   provider.Position{Line: line, Character: start + len(name)},
					},
				})
				col = start + len(name)
			}
		}
	}
	return out, nil
}

// ResolveDefinition implements provider.DefinitionProvider: the identifier at
// pos resolved against indexed class declarations.
func (i *Index) ResolveDefinition(ctx context.Context, doc provider.DocumentID, pos provider.Position) ([]provider.Location, error) {
	name, err := i.wordAt(ctx, doc, pos)
	if err != nil {
		return nil, err
	}
	// Dotted lookups resolve on the final attribute segment.
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[dot+1:]
	}
	if name == "" {
		return nil, nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.classDefs[name], nil
}

// IsLibrary implements provider.LibraryClassifier via path-segment matching.
func (i *Index) IsLibrary(doc provider.DocumentID) bool {
	path := string(doc)
	for _, dir := range i.libraryDirs {
		if dir == "" {
			continue
		}
		if strings.Contains(path, "/"+dir+"/") || strings.HasPrefix(path, dir+"/") {
			return true
		}
	}
	return false
}

// wordAt reads the identifier covering pos in the document text.
func (i *Index) wordAt(ctx context.Context, doc provider.DocumentID, pos provider.Position) (string, error) {
	d, err := i.OpenDocument(ctx, doc)
	if err != nil {
		return "", err
	}
	line := d.Line(pos.Line)
	if pos.Character >= len(line) {
		return "", nil
	}
	start, end := pos.Character, pos.Character
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	if start == end {
		return "", nil
	}
	return line[start:end], nil
}

// indexWord finds the first whole-word occurrence of word in text, or -1.
func indexWord(text, word string) int {
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isIdentChar(text[i-1])
		after := i+len(word) >= len(text) || !isIdentChar(text[i+len(word)])
		if before && after {
			return i
		}
		from = i + 1
	}
	return -1
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
