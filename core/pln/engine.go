// Package pln implements the fixed-rule probabilistic logic network reasoner
// of spec.md §4.3: Deduction, Inversion, ModusPonens, and Abduction over
// InheritanceLink atoms, plus forward and (shallow) backward chaining
// drivers.
package pln

import (
	"context"

	"github.com/EchoCog/atomreason/core/atomspace"
	"github.com/EchoCog/atomreason/core/corectx"
)

// Options configures the PLN engine's rule constants. A zero-value Options
// passed to CreateEngine is replaced by DefaultOptions.
type Options struct {
	// Discount applied to Deduction and ModusPonens confidence, default 0.9.
	Discount float64
	// InversionDiscount applied to Inversion confidence, default 0.8.
	InversionDiscount float64
	// AbductionDiscount applied to Abduction confidence, default 0.6.
	AbductionDiscount float64
	// ModusPonensBackground is the background probability ModusPonens mixes
	// in for the unconditional case (the 0.2 constant in spec.md §4.3,
	// resolved per Open Question (c) as a configuration parameter rather
	// than a hard-coded literal).
	ModusPonensBackground float64
}

// DefaultOptions returns the constants spec.md §4.3 specifies.
func DefaultOptions() Options {
	return Options{
		Discount:              0.9,
		InversionDiscount:     0.8,
		AbductionDiscount:     0.6,
		ModusPonensBackground: 0.2,
	}
}

// Engine is the PLN reasoner bound to one AtomSpace.
type Engine struct {
	ctx   *corectx.Context
	as    *atomspace.AtomSpace
	opts  Options
	rules []rule
}

// CreateEngine constructs a PLN engine with the given options over as. An
// all-zero opts selects DefaultOptions; otherwise opts is used as given.
func CreateEngine(ctx *corectx.Context, as *atomspace.AtomSpace, opts Options) *Engine {
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	e := &Engine{ctx: ctx, as: as, opts: opts}
	// Rule application order within one pass is fixed per spec.md §4.3:
	// Deduction, Inversion, ModusPonens, Abduction.
	e.rules = []rule{
		deductionRule{opts},
		inversionRule{opts},
		modusPonensRule{opts},
		abductionRule{opts},
	}
	return e
}

// Result reports how a reasoning run terminated. Termination by reaching
// MaxIterations without a budget error is not a failure — see §7's
// "Budget exhausted" error kind, which is informational here, not an error
// return.
type Result struct {
	Iterations   int
	AtomsAdded   int
	BudgetHit    bool
	Cancelled    bool
}

// Reason performs up to maxIterations fixpoint passes: each pass enumerates
// current InheritanceLink atoms, applies every rule whose applies-to holds,
// and inserts results through the AtomSpace so duplicates merge rather than
// multiply. It halts when a pass inserts zero new atoms or maxIterations is
// reached, whichever comes first (P7), and checks ctx.Err() once per pass so
// cancellation leaves the AtomSpace in a consistent state (P8).
func (e *Engine) Reason(ctx context.Context, maxIterations int) Result {
	result := Result{}
	for i := 0; i < maxIterations; i++ {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			return result
		default:
		}

		before := e.as.Size()
		e.reasonStep(ctx)
		after := e.as.Size()
		result.Iterations++
		result.AtomsAdded += after - before

		e.ctx.Log().Debug("pln: reason pass", "iteration", i, "added", after-before)
		if after == before {
			return result
		}
	}
	result.BudgetHit = true
	return result
}

// reasonStep applies every rule once across all currently-enumerable
// InheritanceLink atoms, in the fixed rule order.
func (e *Engine) reasonStep(ctx context.Context) {
	links := e.as.GetAtomsByType(atomspace.InheritanceLink, false)
	for _, r := range e.rules {
		select {
		case <-ctx.Done():
			return
		default:
		}
		r.apply(e.as, links)
	}
}

// ForwardChain iterates single reasoning passes and accumulates newly
// derived atoms of targetType, up to maxSteps passes.
func (e *Engine) ForwardChain(ctx context.Context, targetType atomspace.Type, maxSteps int) []atomspace.Atom {
	var derived []atomspace.Atom
	seen := make(map[atomspace.Handle]bool)
	for _, a := range e.as.GetAtomsByType(targetType, false) {
		seen[a.Handle] = true
	}

	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			return derived
		default:
		}
		e.reasonStep(ctx)
		for _, a := range e.as.GetAtomsByType(targetType, false) {
			if !seen[a.Handle] {
				seen[a.Handle] = true
				derived = append(derived, a)
			}
		}
	}
	return derived
}

// BackwardChain is deliberately shallow and recursion-free (spec.md §4.3):
// it reports true when goal is already resident, or can be produced by one
// application of any single rule to currently-resident premises.
func (e *Engine) BackwardChain(ctx context.Context, goal atomspace.Atom) bool {
	if e.as.Contains(goal) {
		return true
	}
	links := e.as.GetAtomsByType(atomspace.InheritanceLink, false)
	for _, r := range e.rules {
		if r.produces(e.as, links, goal) {
			return true
		}
	}
	return false
}
