package ure

import (
	"context"
	"time"

	"github.com/emirpasic/gods/v2/trees/binaryheap"

	"github.com/EchoCog/atomreason/core/atomspace"
	"github.com/EchoCog/atomreason/core/corectx"
)

// BackwardResult reports how a Prove call terminated.
type BackwardResult struct {
	Iterations int
	Solved     bool
	BudgetHit  bool
	Cancelled  bool
}

// BackwardChainer searches a Backward Inference Tree for a proof of a goal
// atom, per spec.md §4.4.
type BackwardChainer struct {
	ctx      *corectx.Context
	as       *atomspace.AtomSpace
	registry *Registry

	maxDepth      int
	maxIterations int
	lambda        float64

	seq int
}

// NewBackwardChainer returns a BackwardChainer bounded by maxDepth and
// maxIterations, matching the ure.create_engine / backward_chainer
// constructors of §6.
func NewBackwardChainer(ctx *corectx.Context, as *atomspace.AtomSpace, registry *Registry, maxDepth, maxIterations int) *BackwardChainer {
	return &BackwardChainer{
		ctx:           ctx,
		as:            as,
		registry:      registry,
		maxDepth:      maxDepth,
		maxIterations: maxIterations,
		lambda:        bitLambda,
	}
}

func (bc *BackwardChainer) nextSeq() int {
	bc.seq++
	return bc.seq
}

// Prove searches for a proof of goal, returning the root BITNode (whose
// subtree records the search) and whether a proof was found. deadline is a
// hard wall-clock ceiling (§5's "absolute deadline"); pass the zero Time for
// no deadline beyond ctx/maxIterations.
func (bc *BackwardChainer) Prove(ctx context.Context, goal atomspace.Atom, deadline time.Time) (*BITNode, BackwardResult) {
	root := newBITNode(goal, 0, bc.nextSeq(), bc.lambda)
	frontier := binaryheap.NewWith(bitNodeLess)
	frontier.Push(root)

	result := BackwardResult{}
	for result.Iterations < bc.maxIterations {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			return root, result
		default:
		}
		if !deadline.IsZero() && bc.ctx.Clock().After(deadline) {
			result.BudgetHit = true
			return root, result
		}

		if _, solved := bc.solve(root); solved {
			result.Solved = true
			return root, result
		}

		leaf, ok := frontier.Pop()
		if !ok {
			// Frontier exhausted with no proof: nothing left to expand.
			return root, result
		}
		result.Iterations++

		if _, resident := bc.as.Lookup(leaf.Target); resident {
			continue // solved trivially; solve() above will pick this up next pass
		}
		bc.expand(leaf)
		if leaf.Exhausted {
			continue
		}
		for _, alt := range leaf.Alternatives {
			for _, child := range alt.Premises {
				frontier.Push(child)
			}
		}
	}
	result.BudgetHit = true
	_, result.Solved = bc.solve(root)
	return root, result
}

// expand tries each registered BackwardRule in registration order (the
// single canonical rule-choice path) and attaches the first applicable
// rule's inversion as Alternatives: every combination Invert proposed, not
// just the first, since each is an independent OR-branch (a different
// candidate bridge atom, in TransitivityRule's case) and discarding all but
// one would make multi-hop proofs depend on guessing the right bridge on
// the first try. A leaf with no applicable inversion, or already past
// maxDepth, is marked Exhausted.
func (bc *BackwardChainer) expand(node *BITNode) {
	node.IsLeaf = false
	if node.Depth >= bc.maxDepth {
		node.Exhausted = true
		return
	}

	for _, r := range bc.registry.Rules() {
		br, ok := r.(BackwardRule)
		if !ok {
			continue
		}
		combos, ok := br.Invert(bc.as, node.Target)
		if !ok || len(combos) == 0 {
			continue
		}
		node.Alternatives = make([]*bitExpansion, len(combos))
		for i, combo := range combos {
			premises := make([]*BITNode, len(combo))
			for j, sub := range combo {
				premises[j] = newBITNode(sub, node.Depth+1, bc.nextSeq(), bc.lambda)
			}
			node.Alternatives[i] = &bitExpansion{Rule: br, Premises: premises}
		}
		return
	}
	node.Exhausted = true
}

// solve reports whether node's target is resident (trivially solved) or any
// one of its OR-alternatives has every premise solve and, applied, produces
// the target. Alternatives are tried in order; the first that fully solves
// wins.
func (bc *BackwardChainer) solve(node *BITNode) (atomspace.Atom, bool) {
	if atom, ok := bc.as.Lookup(node.Target); ok {
		return atom, true
	}
	if node.IsLeaf || node.Exhausted || len(node.Alternatives) == 0 {
		return atomspace.Atom{}, false
	}

	for _, alt := range node.Alternatives {
		premiseAtoms := make([]atomspace.Atom, len(alt.Premises))
		solved := true
		for i, child := range alt.Premises {
			atom, ok := bc.solve(child)
			if !ok {
				solved = false
				break
			}
			premiseAtoms[i] = atom
		}
		if !solved {
			continue
		}
		concl, err := alt.Rule.Apply(context.Background(), premiseAtoms, bc.as)
		if err != nil || concl == nil || !matchesIdentity(*concl, node.Target) {
			continue
		}
		return *concl, true
	}
	return atomspace.Atom{}, false
}

// VariableFulfillmentQuery returns every binding that makes pattern
// derivable: direct structural matches first (§4.2), then — for patterns
// the matcher alone can't satisfy — a backward-search fallback that tries
// each resident ConceptNode/PredicateNode as a variable's binding and
// attempts a proof of the resulting ground pattern. The fallback handles
// only patterns with exactly one VariableNode among their direct outgoing
// atoms; for any other pattern it yields no bindings.
func (bc *BackwardChainer) VariableFulfillmentQuery(ctx context.Context, pattern atomspace.Atom, deadline time.Time) []atomspace.VariableBinding {
	matcher := atomspace.NewMatcher(bc.as)
	var bindings []atomspace.VariableBinding
	for b := range matcher.Match(pattern) {
		bindings = append(bindings, b)
	}
	if len(bindings) > 0 {
		return bindings
	}
	return bc.backwardFulfillment(ctx, pattern, deadline)
}

// backwardFulfillment is the fallback path: it finds pattern's direct
// VariableNode child, substitutes each candidate resident node in turn, and
// keeps any substitution that Prove can close. It returns nil when pattern
// has no direct VariableNode child or more than one; nested variables are
// not searched.
func (bc *BackwardChainer) backwardFulfillment(ctx context.Context, pattern atomspace.Atom, deadline time.Time) []atomspace.VariableBinding {
	var varHandles []atomspace.Handle
	for _, h := range pattern.Outgoing {
		child, err := bc.as.GetAtom(h)
		if err == nil && child.Type == atomspace.VariableNode {
			varHandles = append(varHandles, h)
		}
	}
	if len(varHandles) != 1 {
		return nil
	}
	varHandle := varHandles[0]

	var out []atomspace.VariableBinding
	for _, nodeType := range []atomspace.Type{atomspace.ConceptNode, atomspace.PredicateNode} {
		for _, candidate := range bc.as.GetAtomsByType(nodeType, false) {
			ground := substituteOutgoing(pattern, varHandle, candidate.Handle)
			if _, result := bc.Prove(ctx, ground, deadline); result.Solved {
				out = append(out, atomspace.VariableBinding{varHandle: candidate.Handle})
			}
		}
	}
	return out
}

func substituteOutgoing(pattern atomspace.Atom, from, to atomspace.Handle) atomspace.Atom {
	out := append([]atomspace.Handle(nil), pattern.Outgoing...)
	for i, h := range out {
		if h == from {
			out[i] = to
		}
	}
	ground := pattern
	ground.Outgoing = out
	return ground
}

// TruthValueFulfillment backward-propagates confidence for a resident atom
// from its resident supporting premises via the registered rules, returning
// the highest-confidence tv found (which may just be the atom's own stored
// tv, if no rule yields a higher-confidence alternative).
func (bc *BackwardChainer) TruthValueFulfillment(ctx context.Context, atom atomspace.Atom) atomspace.TruthValue {
	best := atom.TV
	for _, r := range bc.registry.Rules() {
		br, ok := r.(BackwardRule)
		if !ok {
			continue
		}
		combos, ok := br.Invert(bc.as, atom)
		if !ok {
			continue
		}
		for _, combo := range combos {
			resolved := make([]atomspace.Atom, len(combo))
			allResident := true
			for i, sub := range combo {
				a, present := bc.as.Lookup(sub)
				if !present {
					allResident = false
					break
				}
				resolved[i] = a
			}
			if !allResident {
				continue
			}
			concl, err := br.Apply(ctx, resolved, bc.as)
			if err != nil || concl == nil {
				continue
			}
			if concl.TV.Confidence > best.Confidence {
				best = concl.TV
			}
		}
	}
	return best
}
