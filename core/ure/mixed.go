package ure

import (
	"context"
	"time"

	"github.com/EchoCog/atomreason/core/atomspace"
	"github.com/EchoCog/atomreason/core/corectx"
)

// Strategy selects how MixedEngine pursues a goal, per spec.md §4.4.
type Strategy int

const (
	ForwardOnly Strategy = iota
	BackwardOnly
	MixedForwardFirst
	MixedBackwardFirst
	AdaptiveBidirectional
)

// MixedOptions configures the adaptive efficiency-score weights.
type MixedOptions struct {
	Alpha float64 // weight on goal_achieved, default 0.5
	Beta  float64 // weight on confidence_improvement, default 1.0
}

// DefaultMixedOptions returns the α=0.5, β=1.0 defaults spec.md suggests.
func DefaultMixedOptions() MixedOptions {
	return MixedOptions{Alpha: 0.5, Beta: 1.0}
}

// MixedEngine dispatches across Forward, Backward, and hybrid strategies and
// records InferenceMetrics per run so AdaptiveChain can learn from history.
type MixedEngine struct {
	ctx      *corectx.Context
	as       *atomspace.AtomSpace
	forward  *ForwardChainer
	backward *BackwardChainer
	opts     MixedOptions
	history  *metricsHistory
}

// NewMixedEngine builds a MixedEngine over a shared registry, forward
// chainer, and backward chainer (the latter bounded by maxDepth/
// maxIterations as ure.backward_chainer's constructor specifies in §6).
func NewMixedEngine(ctx *corectx.Context, as *atomspace.AtomSpace, registry *Registry, maxDepth, maxIterations int, opts MixedOptions) *MixedEngine {
	if opts == (MixedOptions{}) {
		opts = DefaultMixedOptions()
	}
	return &MixedEngine{
		ctx:      ctx,
		as:       as,
		forward:  NewForwardChainer(ctx, as, registry),
		backward: NewBackwardChainer(ctx, as, registry, maxDepth, maxIterations),
		opts:     opts,
		history:  newMetricsHistory(),
	}
}

// ExecuteStrategy dispatches deterministically per spec.md §4.4 and records
// an InferenceMetrics entry for the run. maxTime is a wall-clock ceiling.
func (m *MixedEngine) ExecuteStrategy(ctx context.Context, strategy Strategy, goal atomspace.Atom, maxTime time.Duration) (InferenceMetrics, bool) {
	start := m.ctx.Clock()
	deadline := start.Add(maxTime)
	ctx, cancel := context.WithTimeout(ctx, maxTime)
	defer cancel()
	before := m.as.Size()
	priorAtom, hadPrior := m.as.Lookup(goal)

	var achieved bool
	switch strategy {
	case ForwardOnly:
		res := m.forward.Run(ctx, ForwardOptions{MaxSteps: 1000, Target: &goal})
		achieved = res.TargetFound
	case BackwardOnly:
		_, res := m.backward.Prove(ctx, goal, deadline)
		achieved = res.Solved
	case MixedForwardFirst:
		res := m.forward.Run(ctx, ForwardOptions{MaxSteps: 100, Target: &goal})
		achieved = res.TargetFound
		if !achieved {
			_, bres := m.backward.Prove(ctx, goal, deadline)
			achieved = bres.Solved
		}
	case MixedBackwardFirst:
		_, res := m.backward.Prove(ctx, goal, deadline)
		achieved = res.Solved
		if !achieved {
			fres := m.forward.Run(ctx, ForwardOptions{MaxSteps: 100, Target: &goal})
			achieved = fres.TargetFound
		}
	case AdaptiveBidirectional:
		return m.AdaptiveChain(ctx, goal, maxTime)
	default:
		achieved = false
	}

	metrics := newInferenceMetrics(strategy)
	metrics.ReasoningTime = m.ctx.Clock().Sub(start)
	metrics.AtomsGenerated = m.as.Size() - before
	metrics.GoalAchieved = achieved
	if resolved, ok := m.as.Lookup(goal); ok {
		priorTV := atomspace.Default()
		if hadPrior {
			priorTV = priorAtom.TV
		}
		metrics.ConfidenceImprovement = resolved.TV.Confidence - priorTV.Confidence
	}
	m.history.record(metrics)
	return metrics, achieved
}

// AdaptiveChain analyzes goal complexity and prior per-strategy performance
// to choose among BackwardOnly, MixedForwardFirst, and MixedBackwardFirst,
// then executes the choice. It never recurses into AdaptiveBidirectional.
func (m *MixedEngine) AdaptiveChain(ctx context.Context, goal atomspace.Atom, maxTime time.Duration) (InferenceMetrics, bool) {
	candidates := m.candidateStrategies(goal)
	best := candidates[0]
	bestScore := m.history.averageEfficiency(best, m.opts.Alpha, m.opts.Beta)
	for _, s := range candidates[1:] {
		if score := m.history.averageEfficiency(s, m.opts.Alpha, m.opts.Beta); score > bestScore {
			best, bestScore = s, score
		}
	}
	return m.ExecuteStrategy(ctx, best, goal, maxTime)
}

// candidateStrategies buckets a goal by structural depth, variable count,
// and nested-link presence, per spec.md §4.4's "goal complexity" analysis.
func (m *MixedEngine) candidateStrategies(goal atomspace.Atom) []Strategy {
	depth, vars, nested := goalComplexity(m.as, goal, 0)
	switch {
	case depth <= 1 && vars == 0 && !nested:
		return []Strategy{BackwardOnly, MixedBackwardFirst}
	case vars > 0:
		return []Strategy{MixedBackwardFirst, BackwardOnly}
	case nested:
		return []Strategy{MixedForwardFirst, MixedBackwardFirst}
	default:
		return []Strategy{MixedForwardFirst, BackwardOnly}
	}
}

// goalComplexity recursively measures a goal atom's structural depth,
// total VariableNode count, and whether it contains a nested Link (a Link
// among its Link's outgoing atoms, rather than only leaf nodes).
func goalComplexity(as *atomspace.AtomSpace, atom atomspace.Atom, depth int) (maxDepth, vars int, nested bool) {
	if atom.Kind == atomspace.KindNode {
		if atom.Type == atomspace.VariableNode {
			vars = 1
		}
		return depth, vars, false
	}
	maxDepth = depth
	for _, h := range atom.Outgoing {
		child, err := as.GetAtom(h)
		if err != nil {
			continue
		}
		if child.Kind == atomspace.KindLink {
			nested = true
		}
		cd, cv, cn := goalComplexity(as, child, depth+1)
		if cd > maxDepth {
			maxDepth = cd
		}
		vars += cv
		nested = nested || cn
	}
	return maxDepth, vars, nested
}
