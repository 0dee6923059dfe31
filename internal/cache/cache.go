// Package cache memoizes subclass lookups and reference classifications for
// the lifetime of a workspace session. Detection passes are single-threaded,
// but the indexer builds concurrently, so access stays mutex-guarded.
package cache

import (
	"sync"

	"pylens/internal/provider"
)

// SubMethod is a method declared directly on a discovered subclass.
type SubMethod struct {
	Name      string
	NameRange provider.Range
}

// Subclass is one memoized subclass discovery result.
type Subclass struct {
	Name      string
	Doc       provider.DocumentID
	NameRange provider.Range
	Methods   []SubMethod
}

type subclassKey struct {
	doc  provider.DocumentID
	name string
}

type refKey struct {
	doc provider.DocumentID
	r   provider.Range
}

// Cache holds per-session memoized results.
type Cache struct {
	mu         sync.Mutex
	subclasses map[subclassKey][]Subclass
	refs       map[refKey]bool
}

func New() *Cache {
	return &Cache{
		subclasses: make(map[subclassKey][]Subclass),
		refs:       make(map[refKey]bool),
	}
}

// Subclasses returns the memoized subclass list for a class, if present.
func (c *Cache) Subclasses(doc provider.DocumentID, class string) ([]Subclass, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.subclasses[subclassKey{doc, class}]
	return v, ok
}

// PutSubclasses memoizes a subclass list.
func (c *Cache) PutSubclasses(doc provider.DocumentID, class string, subs []Subclass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subclasses[subclassKey{doc, class}] = subs
}

// Reference returns the memoized supertype classification of a reference.
// Negative outcomes are memoized too, so repeated misses stay cheap.
func (c *Cache) Reference(doc provider.DocumentID, r provider.Range) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.refs[refKey{doc, r}]
	return v, ok
}

// PutReference memoizes a reference classification.
func (c *Cache) PutReference(doc provider.DocumentID, r provider.Range, isSupertype bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs[refKey{doc, r}] = isSupertype
}

// Invalidate drops every entry keyed by, or derived from, the given document.
// The surrounding system calls this when a document is edited.
func (c *Cache) Invalidate(doc provider.DocumentID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.subclasses {
		if k.doc == doc {
			delete(c.subclasses, k)
			continue
		}
		for _, s := range c.subclasses[k] {
			if s.Doc == doc {
				delete(c.subclasses, k)
				break
			}
		}
	}
	for k := range c.refs {
		if k.doc == doc {
			delete(c.refs, k)
		}
	}
}

// Reset clears the whole cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subclasses = make(map[subclassKey][]Subclass)
	c.refs = make(map[refKey]bool)
}
