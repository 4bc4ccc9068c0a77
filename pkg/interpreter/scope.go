package interpreter

import "jyro/pkg/value"

// scope is one stack-frame hash map keyed by name -> value (spec §9 "a stack
// of hash maps keyed by name -> value"). Scopes form a stack searched
// innermost-first; the bottom scope is the global scope and is never popped.
type scope struct {
	vars  map[string]*value.Value
	outer *scope
}

func newScope(outer *scope) *scope {
	return &scope{vars: make(map[string]*value.Value), outer: outer}
}

// lookup walks the scope stack from innermost outward (spec §4.6).
func (s *scope) lookup(name string) (*value.Value, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// declare binds name in this (innermost) scope, shadowing any outer binding.
func (s *scope) declare(name string, v *value.Value) {
	s.vars[name] = v
}

// assign updates name in the innermost enclosing scope that already declares
// it, returning false if no such scope exists (spec §4.7: "For bare
// identifier, if the name resolves in any enclosing scope, update the
// innermost match").
func (s *scope) assign(name string, v *value.Value) bool {
	for cur := s; cur != nil; cur = cur.outer {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return true
		}
	}
	return false
}
