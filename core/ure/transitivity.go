package ure

import (
	"context"
	"math"

	"github.com/EchoCog/atomreason/core/atomspace"
)

// TransitivityRule is the default URE rule registered by NewDefaultRegistry:
// InheritanceLink(A,B), InheritanceLink(B,C) ⟹ InheritanceLink(A,C). It
// reuses the PLN deduction tv formula (strength product, confidence product
// discounted) so forward- and backward-derived atoms agree with the PLN
// engine when both reason over the same InheritanceLink data, but it is a
// URE rule, independent of the pln package, per spec.md's separation of the
// two engines.
type TransitivityRule struct {
	// Discount applied to confidence, default 0.9 (same constant as PLN
	// Deduction, since both express the same inference rule).
	Discount float64
	// BridgeLimit caps how many candidate intermediate nodes Invert proposes
	// per goal, bounding BIT branching factor (no silent truncation: callers
	// that hit the cap see Invert return exactly BridgeLimit combinations).
	// The backward chainer explores every returned combination as its own
	// OR-branch, so this is a real bound on search fan-out, not a "first one
	// wins" cutoff.
	BridgeLimit int
}

// NewTransitivityRule returns a TransitivityRule with the default discount
// and a modest bridge limit.
func NewTransitivityRule() *TransitivityRule {
	return &TransitivityRule{Discount: 0.9, BridgeLimit: 16}
}

func (r *TransitivityRule) Name() string { return "Transitivity" }

func (r *TransitivityRule) Premises() []atomspace.Type {
	return []atomspace.Type{atomspace.InheritanceLink, atomspace.InheritanceLink}
}

func (r *TransitivityRule) Conclusion() atomspace.Type { return atomspace.InheritanceLink }

func (r *TransitivityRule) AppliesTo(premises []atomspace.Atom) bool {
	if len(premises) != 2 {
		return false
	}
	ab, bc := premises[0], premises[1]
	if ab.Type != atomspace.InheritanceLink || bc.Type != atomspace.InheritanceLink {
		return false
	}
	if len(ab.Outgoing) != 2 || len(bc.Outgoing) != 2 {
		return false
	}
	return ab.Outgoing[1] == bc.Outgoing[0]
}

func (r *TransitivityRule) Apply(ctx context.Context, premises []atomspace.Atom, as *atomspace.AtomSpace) (*atomspace.Atom, error) {
	if !r.AppliesTo(premises) {
		return nil, nil
	}
	ab, bc := premises[0], premises[1]
	tv := atomspace.TruthValue{
		Strength:   ab.TV.Strength * bc.TV.Strength,
		Confidence: ab.TV.Confidence * bc.TV.Confidence * r.Discount,
	}.Clamp()
	out, err := as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{ab.Outgoing[0], bc.Outgoing[1]}, &tv)
	if err != nil {
		return nil, nil
	}
	return &out, nil
}

func (r *TransitivityRule) Fitness(premises []atomspace.Atom) float64 {
	if len(premises) != 2 {
		return 0
	}
	return math.Min(premises[0].TV.Confidence, premises[1].TV.Confidence)
}

// Invert proposes, for goal A→C, every resident ConceptNode, PredicateNode
// or SchemaNode M (other than A and C) as a bridge, yielding the subgoal pair
// (A→M, M→C). Other node types are not used as bridges. Candidates are
// scanned type by type in that order, ascending handle within each type, and
// capped at BridgeLimit.
func (r *TransitivityRule) Invert(as *atomspace.AtomSpace, goal atomspace.Atom) ([][]atomspace.Atom, bool) {
	if goal.Type != atomspace.InheritanceLink || len(goal.Outgoing) != 2 {
		return nil, false
	}
	a, c := goal.Outgoing[0], goal.Outgoing[1]

	var combos [][]atomspace.Atom
	for _, nodeType := range []atomspace.Type{atomspace.ConceptNode, atomspace.PredicateNode, atomspace.SchemaNode} {
		for _, m := range as.GetAtomsByType(nodeType, false) {
			if m.Handle == a || m.Handle == c {
				continue
			}
			subAB := atomspace.Atom{Kind: atomspace.KindLink, Type: atomspace.InheritanceLink, Outgoing: []atomspace.Handle{a, m.Handle}}
			subMC := atomspace.Atom{Kind: atomspace.KindLink, Type: atomspace.InheritanceLink, Outgoing: []atomspace.Handle{m.Handle, c}}
			combos = append(combos, []atomspace.Atom{subAB, subMC})
			if len(combos) >= r.BridgeLimit {
				return combos, true
			}
		}
	}
	return combos, len(combos) > 0
}
