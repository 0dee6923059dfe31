// Package detect implements the override/implementation/subclass resolution
// engine. Given the symbol tree of a document and a provider workspace, it
// reconstructs the inheritance graph across files and emits range-anchored
// findings for the presentation layer.
package detect

import (
	"context"
	"log"
	"time"

	"pylens/internal/cache"
	"pylens/internal/provider"
)

const (
	// DefaultMaxDepth bounds the ancestor traversal; 0 means unlimited.
	DefaultMaxDepth = 3
	// DefaultMaxRetries bounds the wait for provider warm-up.
	DefaultMaxRetries = 5
	// DefaultRetryDelay is the fixed delay between readiness attempts.
	DefaultRetryDelay = 300 * time.Millisecond
)

// Options configures a Detector. Zero fields fall back to defaults, except
// MaxDepth where 0 is meaningful and -1 requests the default.
type Options struct {
	MaxDepth   int
	MaxRetries int
	RetryDelay time.Duration
	Clock      Clock
	Logf       func(format string, args ...any)
}

// Detector runs detection passes over documents. All provider calls within a
// pass happen strictly sequentially, keeping "closest ancestor wins" ordering
// deterministic and provider load bounded.
type Detector struct {
	ws         provider.Workspace
	cache      *cache.Cache
	maxDepth   int
	maxRetries int
	retryDelay time.Duration
	clock      Clock
	logf       func(format string, args ...any)
}

// New creates a Detector over a provider workspace.
func New(ws provider.Workspace, c *cache.Cache, opts Options) *Detector {
	d := &Detector{
		ws:         ws,
		cache:      c,
		maxDepth:   opts.MaxDepth,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		clock:      opts.Clock,
		logf:       opts.Logf,
	}
	if d.cache == nil {
		d.cache = cache.New()
	}
	if d.maxDepth < 0 {
		d.maxDepth = DefaultMaxDepth
	}
	if d.maxRetries <= 0 {
		d.maxRetries = DefaultMaxRetries
	}
	if d.retryDelay <= 0 {
		d.retryDelay = DefaultRetryDelay
	}
	if d.clock == nil {
		d.clock = systemClock{}
	}
	if d.logf == nil {
		d.logf = log.Printf
	}
	return d
}

// Cache exposes the session cache so callers can invalidate edited documents.
func (d *Detector) Cache() *cache.Cache { return d.cache }

// Run executes one detection pass over a document and returns the findings in
// discovery order: per class in declaration order, overrides first (method
// order), then the subclassed finding, then implementation findings.
//
// If the symbol provider reports no symbols the pass retries with a fixed
// delay up to the retry bound, then returns an empty result. No branch
// failure is fatal; the worst outcome is an under-reported result set.
func (d *Detector) Run(ctx context.Context, docID provider.DocumentID) ([]Finding, error) {
	symbols, err := d.awaitSymbols(ctx, docID)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []Finding{}, nil
	}

	doc, err := d.ws.OpenDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	findings := []Finding{}
	subjectIsLibrary := d.ws.IsLibrary(docID)

	for _, class := range provider.Classes(symbols) {
		findings = append(findings, d.detectClass(ctx, doc, class, subjectIsLibrary)...)
	}
	return findings, nil
}

// awaitSymbols drives the readiness state machine against the symbol
// provider. Exhaustion yields an empty tree, not an error.
func (d *Detector) awaitSymbols(ctx context.Context, docID provider.DocumentID) ([]*provider.Symbol, error) {
	ready := newReadiness(d.clock, d.maxRetries, d.retryDelay)
	for {
		symbols, err := d.ws.ResolveSymbols(ctx, docID)
		if err != nil {
			return nil, err
		}
		switch ready.observe(len(symbols) > 0) {
		case stateReady:
			return symbols, nil
		case stateExhausted:
			return nil, nil
		}
	}
}

func (d *Detector) detectClass(ctx context.Context, doc *provider.Document, class *provider.Symbol, subjectIsLibrary bool) []Finding {
	var findings []Finding

	// Overrides: methods redeclared from the nearest reachable ancestor.
	ancestors := d.nearestAncestors(ctx, doc, class)
	for _, m := range provider.Methods(class) {
		anc, ok := ancestors[m.Name]
		if !ok {
			continue
		}
		findings = append(findings, Finding{
			Kind:  KindOverride,
			Range: m.NameRange,
			Targets: []Target{{
				Label:    anc.class + "." + m.Name,
				Location: anc.loc,
			}},
		})
	}

	// Library-classified classes still resolve as ancestors above, but their
	// own subclass search is skipped to bound work spent inside dependencies.
	if subjectIsLibrary {
		return findings
	}

	subs := d.subclasses(ctx, doc, class)
	if len(subs) == 0 {
		return findings
	}

	subclassed := Finding{Kind: KindSubclassed, Range: class.NameRange}
	for _, sub := range subs {
		subclassed.Targets = append(subclassed.Targets, Target{
			Label:    sub.Name,
			Location: provider.Location{Doc: sub.Doc, Range: sub.NameRange},
		})
	}
	findings = append(findings, subclassed)

	// Implementations: subclass methods redeclaring a method declared
	// directly on this class, grouped per parent method.
	for _, m := range provider.Methods(class) {
		var targets []Target
		for _, sub := range subs {
			for _, sm := range sub.Methods {
				if sm.Name != m.Name {
					continue
				}
				targets = append(targets, Target{
					Label:    sub.Name + "." + sm.Name,
					Location: provider.Location{Doc: sub.Doc, Range: sm.NameRange},
				})
			}
		}
		if len(targets) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Kind:    KindImplementation,
			Range:   m.NameRange,
			Targets: targets,
		})
	}
	return findings
}
