package ure

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/EchoCog/atomreason/core/atomspace"
	"github.com/EchoCog/atomreason/core/corectx"
)

// ForwardOptions configures one ForwardChainer run.
type ForwardOptions struct {
	MaxSteps int
	// Target, if non-nil, stops the chainer as soon as an atom matching its
	// identity is derived.
	Target *atomspace.Atom
	// FitnessCutoff discards premise combinations whose fitness, computed
	// during the concurrent evaluation, is below this value, so they are
	// never applied.
	FitnessCutoff float64
}

// ForwardResult reports how a ForwardChainer.Run call terminated.
type ForwardResult struct {
	Steps       int
	AtomsAdded  int
	TargetFound bool
	BudgetHit   bool
	Cancelled   bool
}

// ForwardChainer is the URE's generic forward driver: it selects premise
// combinations across the registry's rules in descending fitness order,
// applies them, and inserts results, stopping on step budget, zero-growth,
// or target discovery (spec.md §4.4).
type ForwardChainer struct {
	ctx      *corectx.Context
	as       *atomspace.AtomSpace
	registry *Registry
}

// NewForwardChainer binds a ForwardChainer to as and registry.
func NewForwardChainer(ctx *corectx.Context, as *atomspace.AtomSpace, registry *Registry) *ForwardChainer {
	return &ForwardChainer{ctx: ctx, as: as, registry: registry}
}

// candidate is one fitness-scored, rule-bound premise combination considered
// during a forward step.
type candidate struct {
	rule     Rule
	premises []atomspace.Atom
	fitness  float64
}

// Run performs up to opts.MaxSteps forward-chaining steps.
func (f *ForwardChainer) Run(ctx context.Context, opts ForwardOptions) ForwardResult {
	result := ForwardResult{}
	for step := 0; step < opts.MaxSteps; step++ {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			return result
		default:
		}

		before := f.as.Size()
		found := f.runStep(ctx, opts)
		after := f.as.Size()

		result.Steps++
		result.AtomsAdded += after - before
		if found {
			result.TargetFound = true
			return result
		}
		if after == before {
			return result
		}
	}
	result.BudgetHit = true
	return result
}

// runStep evaluates every candidate premise combination across all
// registered rules concurrently (fitness/applicability only — pure
// functions of already-resident atoms), then applies them, highest fitness
// first, serializing inserts through the AtomSpace's writer lock. It returns
// true if opts.Target was produced.
func (f *ForwardChainer) runStep(ctx context.Context, opts ForwardOptions) bool {
	candidates := f.collectCandidates(ctx, opts.FitnessCutoff)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].fitness > candidates[j].fitness
	})

	for _, c := range candidates {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		atom, err := c.rule.Apply(ctx, c.premises, f.as)
		if err != nil || atom == nil {
			continue
		}
		if opts.Target != nil && matchesIdentity(*atom, *opts.Target) {
			return true
		}
	}
	return false
}

// collectCandidates builds the cartesian product of resident atoms for each
// rule's premise types, filters by AppliesTo, and scores by Fitness — the
// evaluation (not the insertion) runs concurrently via errgroup.
func (f *ForwardChainer) collectCandidates(ctx context.Context, cutoff float64) []candidate {
	var (
		mu  sync.Mutex
		out []candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, rule := range f.registry.Rules() {
		rule := rule
		g.Go(func() error {
			for _, premises := range cartesian(f.as, rule.Premises()) {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if !rule.AppliesTo(premises) {
					continue
				}
				fit := rule.Fitness(premises)
				if fit < cutoff {
					continue
				}
				mu.Lock()
				out = append(out, candidate{rule: rule, premises: premises, fitness: fit})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func matchesIdentity(a, b atomspace.Atom) bool {
	if a.Kind != b.Kind || a.Type != b.Type {
		return false
	}
	if a.Kind == atomspace.KindNode {
		return a.Name == b.Name
	}
	if len(a.Outgoing) != len(b.Outgoing) {
		return false
	}
	for i := range a.Outgoing {
		if a.Outgoing[i] != b.Outgoing[i] {
			return false
		}
	}
	return true
}

// cartesian enumerates every tuple of resident atoms matching types, in
// order. Used to build rule premise combinations; kept deliberately simple
// (no streaming/lazy generator) since rule arity is small in practice.
func cartesian(as *atomspace.AtomSpace, types []atomspace.Type) [][]atomspace.Atom {
	if len(types) == 0 {
		return nil
	}
	pools := make([][]atomspace.Atom, len(types))
	for i, t := range types {
		pools[i] = as.GetAtomsByType(t, true)
	}
	var out [][]atomspace.Atom
	var build func(prefix []atomspace.Atom, idx int)
	build = func(prefix []atomspace.Atom, idx int) {
		if idx == len(pools) {
			out = append(out, append([]atomspace.Atom(nil), prefix...))
			return
		}
		for _, a := range pools[idx] {
			build(append(prefix, a), idx+1)
		}
	}
	build(nil, 0)
	return out
}
