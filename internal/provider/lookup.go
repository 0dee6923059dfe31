package provider

// Before reports whether p comes strictly before q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Character < q.Character
}

// Contains reports whether the range covers position p. The end bound is
// inclusive, matching how hosts report declaration ranges.
func (r Range) Contains(p Position) bool {
	if p.Before(r.Start) {
		return false
	}
	return !r.End.Before(p)
}

// ContainsRange reports whether r fully covers s.
func (r Range) ContainsRange(s Range) bool {
	return r.Contains(s.Start) && r.Contains(s.End)
}

// SymbolContaining finds the deepest symbol whose range fully covers r.
// When several symbols at the same depth match, the first in document order
// wins. Returns nil when no symbol contains r.
func SymbolContaining(symbols []*Symbol, r Range) *Symbol {
	for _, s := range symbols {
		if !s.Range.ContainsRange(r) {
			continue
		}
		if inner := SymbolContaining(s.Children, r); inner != nil {
			return inner
		}
		return s
	}
	return nil
}

// ClassAt finds the deepest class symbol whose range contains pos. Favoring
// the deepest match resolves nested class definitions over enclosing scopes.
func ClassAt(symbols []*Symbol, pos Position) *Symbol {
	var found *Symbol
	for _, s := range symbols {
		if !s.Range.Contains(pos) {
			continue
		}
		if inner := ClassAt(s.Children, pos); inner != nil {
			return inner
		}
		if s.Kind == KindClass && found == nil {
			found = s
		}
	}
	return found
}

// Classes returns every class symbol in the tree, outer classes before the
// nested classes they contain, preserving document order.
func Classes(symbols []*Symbol) []*Symbol {
	var out []*Symbol
	for _, s := range symbols {
		if s.Kind == KindClass {
			out = append(out, s)
		}
		out = append(out, Classes(s.Children)...)
	}
	return out
}

// Methods returns the direct method children of a symbol in declaration order.
func Methods(s *Symbol) []*Symbol {
	var out []*Symbol
	for _, c := range s.Children {
		if c.Kind == KindMethod {
			out = append(out, c)
		}
	}
	return out
}
