package ure

import (
	"math"

	"github.com/EchoCog/atomreason/core/atomspace"
)

// bitLambda is the default depth-decay constant in the BIT fitness formula
// s·c·e^(-λ·depth).
const bitLambda = 0.2

// BITNode is one node of a Backward Inference Tree (spec.md §4.4). Target
// is a possibly-non-resident atom template; Alternatives is set once the
// node is expanded (IsLeaf becomes false) and holds every OR-branch a
// BackwardRule proposed for producing Target — solve tries each in turn,
// and Prove pushes every alternative's premises onto the frontier, so a
// dead-end bridge at one depth doesn't strand the whole search.
type BITNode struct {
	Target    atomspace.Atom
	Depth     int
	IsLeaf    bool
	Exhausted bool
	Fitness   float64

	Alternatives []*bitExpansion

	seq int // insertion order, for the leaf-selection tie-break
}

// bitExpansion is one OR-branch of an expanded BITNode: a rule and the AND
// of premise subgoals that, if all solved, let the rule produce the node's
// target.
type bitExpansion struct {
	Rule     BackwardRule
	Premises []*BITNode
}

func newBITNode(target atomspace.Atom, depth, seq int, lambda float64) *BITNode {
	return &BITNode{
		Target:  target,
		Depth:   depth,
		IsLeaf:  true,
		Fitness: target.TV.Strength * target.TV.Confidence * math.Exp(-lambda*float64(depth)),
		seq:     seq,
	}
}

// bitNodeLess orders BITNodes for the frontier: higher fitness first, then
// shallower depth, then earlier insertion — spec.md §4.4's exact tie-break
// chain. It returns the same ordering convention as a comparator: negative
// when a should pop before b.
func bitNodeLess(a, b *BITNode) int {
	if a.Fitness != b.Fitness {
		if a.Fitness > b.Fitness {
			return -1
		}
		return 1
	}
	if a.Depth != b.Depth {
		if a.Depth < b.Depth {
			return -1
		}
		return 1
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}
