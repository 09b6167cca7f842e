package atomspace

import (
	"iter"
	"sort"
)

// Matcher performs the structural unification of §4.2 against one
// AtomSpace. It holds no state of its own — all mutable state lives in the
// bindings threaded through a single match attempt — so one Matcher can be
// shared by concurrent readers.
type Matcher struct {
	as *AtomSpace
}

// NewMatcher returns a Matcher bound to as.
func NewMatcher(as *AtomSpace) *Matcher {
	return &Matcher{as: as}
}

// Match yields every VariableBinding under which pattern unifies with an
// atom resident in the AtomSpace. The sequence is lazy and finite: iteration
// stops as soon as the caller's range body returns/breaks. Per §4.2 this is
// sound (every yielded binding substitutes in pattern to an atom already
// present) and complete modulo a deterministic, implementation-defined
// enumeration order — here, ascending handle order within the candidate
// root type, since GetAtomsByType's backing index is handle-ordered.
func (m *Matcher) Match(pattern Atom) iter.Seq[VariableBinding] {
	return func(yield func(VariableBinding) bool) {
		for _, candidate := range m.candidateRoots(pattern.Type) {
			bindings := make(VariableBinding)
			if m.unify(pattern, candidate, bindings) {
				if !yield(bindings) {
					return
				}
			}
		}
	}
}

// candidateRoots returns the atoms a top-level pattern of type t could bind
// to. A bare VariableNode pattern (matching "any atom") has no fixed type to
// index by, so it scans the whole store; every other pattern type narrows to
// GetAtomsByType, which is the common case and stays index-backed.
func (m *Matcher) candidateRoots(t Type) []Atom {
	if t != VariableNode {
		return m.as.GetAtomsByType(t, false)
	}

	m.as.mu.RLock()
	defer m.as.mu.RUnlock()
	out := make([]Atom, 0, len(m.as.atoms))
	for _, a := range m.as.atoms {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// unify matches pattern p against candidate c, extending bindings in place.
// It never widens the search across children — the candidate already fixes
// each outgoing position, so matching one (p, c) pair is deterministic: it
// either succeeds with one binding extension or fails outright. The only
// nondeterminism in the whole matcher is which root candidate Match tries.
func (m *Matcher) unify(p, c Atom, bindings VariableBinding) bool {
	if p.Type == VariableNode {
		if existing, ok := bindings[p.Handle]; ok {
			return existing == c.Handle
		}
		bindings[p.Handle] = c.Handle
		return true
	}

	if p.Kind != c.Kind || p.Type != c.Type {
		return false
	}

	if p.Kind == KindNode {
		return p.Name == c.Name
	}

	if len(p.Outgoing) != len(c.Outgoing) {
		return false
	}
	for i := range p.Outgoing {
		pChild, err := m.as.GetAtom(p.Outgoing[i])
		if err != nil {
			return false
		}
		cChild, err := m.as.GetAtom(c.Outgoing[i])
		if err != nil {
			return false
		}
		if !m.unify(pChild, cChild, bindings) {
			return false
		}
	}
	return true
}

// Substitute applies bindings to pattern, returning the handle of the
// concrete atom it denotes (itself if pattern carries no variables). Used by
// callers (and by P4's soundness check) to turn a binding back into the atom
// it was derived from.
func (m *Matcher) Substitute(pattern Atom, bindings VariableBinding) (Handle, bool) {
	if pattern.Type == VariableNode {
		h, ok := bindings[pattern.Handle]
		return h, ok
	}
	if pattern.Kind == KindNode {
		return pattern.Handle, true
	}
	resolved := make([]Handle, len(pattern.Outgoing))
	for i, h := range pattern.Outgoing {
		child, err := m.as.GetAtom(h)
		if err != nil {
			return invalidHandle, false
		}
		rh, ok := m.Substitute(child, bindings)
		if !ok {
			return invalidHandle, false
		}
		resolved[i] = rh
	}
	m.as.mu.RLock()
	existing, ok := m.as.identity[linkIdentity(pattern.Type, resolved)]
	m.as.mu.RUnlock()
	if ok {
		return existing, true
	}
	return invalidHandle, false
}
