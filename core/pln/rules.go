package pln

import (
	"math"

	"github.com/EchoCog/atomreason/core/atomspace"
)

// rule is the capability set Design Notes describes for rule polymorphism:
// a value, not a nominal hierarchy, so the engine can hold a plain slice of
// them in the fixed application order spec.md §4.3 mandates.
type rule interface {
	// apply enumerates applicable premise combinations among links and
	// inserts every derivable conclusion through the AtomSpace. Rule
	// application never panics: a malformed premise is skipped, not
	// propagated (§7 — one bad atom must not poison the pass).
	apply(as *atomspace.AtomSpace, links []atomspace.Atom)

	// produces reports whether, given the currently-resident links, this
	// rule would derive an atom with goal's identity. Used only by the
	// shallow BackwardChain.
	produces(as *atomspace.AtomSpace, links []atomspace.Atom, goal atomspace.Atom) bool
}

// inheritance pairs a resident InheritanceLink atom with its decomposed
// antecedent/consequent handles, to avoid re-fetching outgoing atoms
// repeatedly across rules.
type inheritance struct {
	link atomspace.Atom
	a, b atomspace.Handle
}

func decompose(link atomspace.Atom) (inheritance, bool) {
	if link.Type != atomspace.InheritanceLink || len(link.Outgoing) != 2 {
		return inheritance{}, false
	}
	return inheritance{link: link, a: link.Outgoing[0], b: link.Outgoing[1]}, true
}

// ---- Deduction: A→B, B→C exist ⟹ A→C ----

type deductionRule struct{ opts Options }

func (r deductionRule) apply(as *atomspace.AtomSpace, links []atomspace.Atom) {
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok {
			continue
		}
		for _, bc := range links {
			bci, ok := decompose(bc)
			if !ok || bci.a != abi.b {
				continue
			}
			tv := deduceTV(abi.link.TV, bci.link.TV, r.opts.Discount)
			as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{abi.a, bci.b}, &tv)
		}
	}
}

func (r deductionRule) produces(as *atomspace.AtomSpace, links []atomspace.Atom, goal atomspace.Atom) bool {
	if goal.Type != atomspace.InheritanceLink || len(goal.Outgoing) != 2 {
		return false
	}
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok || abi.a != goal.Outgoing[0] {
			continue
		}
		for _, bc := range links {
			bci, ok := decompose(bc)
			if ok && bci.a == abi.b && bci.b == goal.Outgoing[1] {
				return true
			}
		}
	}
	return false
}

func deduceTV(ab, bc atomspace.TruthValue, discount float64) atomspace.TruthValue {
	return atomspace.TruthValue{
		Strength:   ab.Strength * bc.Strength,
		Confidence: ab.Confidence * bc.Confidence * discount,
	}.Clamp()
}

// ---- Inversion: A→B exists ⟹ B→A ----

type inversionRule struct{ opts Options }

func (r inversionRule) apply(as *atomspace.AtomSpace, links []atomspace.Atom) {
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok {
			continue
		}
		tv := invertTV(abi.link.TV, r.opts.InversionDiscount)
		as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{abi.b, abi.a}, &tv)
	}
}

func (r inversionRule) produces(as *atomspace.AtomSpace, links []atomspace.Atom, goal atomspace.Atom) bool {
	if goal.Type != atomspace.InheritanceLink || len(goal.Outgoing) != 2 {
		return false
	}
	for _, ab := range links {
		abi, ok := decompose(ab)
		if ok && abi.b == goal.Outgoing[0] && abi.a == goal.Outgoing[1] {
			return true
		}
	}
	return false
}

func invertTV(ab atomspace.TruthValue, discount float64) atomspace.TruthValue {
	s := ab.Strength
	var inverted float64
	if s <= 0 {
		inverted = 0
	} else {
		inverted = 1 / (1 + (1-s)/s)
	}
	return atomspace.TruthValue{
		Strength:   inverted,
		Confidence: ab.Confidence * discount,
	}.Clamp()
}

// ---- ModusPonens: A→B exists, node A has confidence > 0.5 ⟹ update B ----

type modusPonensRule struct{ opts Options }

func (r modusPonensRule) apply(as *atomspace.AtomSpace, links []atomspace.Atom) {
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok {
			continue
		}
		nodeA, err := as.GetAtom(abi.a)
		if err != nil || nodeA.Kind != atomspace.KindNode || nodeA.TV.Confidence <= 0.5 {
			continue
		}
		nodeB, err := as.GetAtom(abi.b)
		if err != nil || nodeB.Kind != atomspace.KindNode {
			continue
		}
		tv := modusPonensTV(abi.link.TV, nodeA.TV, r.opts.Discount, r.opts.ModusPonensBackground)
		as.AddNode(nodeB.Type, nodeB.Name, &tv)
	}
}

func (r modusPonensRule) produces(as *atomspace.AtomSpace, links []atomspace.Atom, goal atomspace.Atom) bool {
	if goal.Kind != atomspace.KindNode {
		return false
	}
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok || abi.b != goal.Handle {
			continue
		}
		nodeA, err := as.GetAtom(abi.a)
		if err == nil && nodeA.Kind == atomspace.KindNode && nodeA.TV.Confidence > 0.5 {
			return true
		}
	}
	return false
}

func modusPonensTV(ab, a atomspace.TruthValue, discount, background float64) atomspace.TruthValue {
	return atomspace.TruthValue{
		Strength:   ab.Strength*a.Strength + background*(1-a.Strength),
		Confidence: math.Min(ab.Confidence, a.Confidence) * discount,
	}.Clamp()
}

// ---- Abduction: A→B, C→B (A≠C) exist ⟹ A→C ----

type abductionRule struct{ opts Options }

func (r abductionRule) apply(as *atomspace.AtomSpace, links []atomspace.Atom) {
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok {
			continue
		}
		for _, cb := range links {
			cbi, ok := decompose(cb)
			if !ok || cbi.b != abi.b || cbi.a == abi.a {
				continue
			}
			tv := abductionTV(abi.link.TV, cbi.link.TV, r.opts.AbductionDiscount)
			as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{abi.a, cbi.a}, &tv)
		}
	}
}

func (r abductionRule) produces(as *atomspace.AtomSpace, links []atomspace.Atom, goal atomspace.Atom) bool {
	if goal.Type != atomspace.InheritanceLink || len(goal.Outgoing) != 2 {
		return false
	}
	for _, ab := range links {
		abi, ok := decompose(ab)
		if !ok || abi.a != goal.Outgoing[0] {
			continue
		}
		for _, cb := range links {
			cbi, ok := decompose(cb)
			if ok && cbi.b == abi.b && cbi.a == goal.Outgoing[1] && cbi.a != abi.a {
				return true
			}
		}
	}
	return false
}

func abductionTV(ab, cb atomspace.TruthValue, discount float64) atomspace.TruthValue {
	num := ab.Strength * cb.Strength
	den := num + (1-ab.Strength)*(1-cb.Strength)
	var strength float64
	if den != 0 {
		strength = num / den
	}
	return atomspace.TruthValue{
		Strength:   strength,
		Confidence: math.Min(ab.Confidence, cb.Confidence) * discount,
	}.Clamp()
}
