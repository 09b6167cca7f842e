package ure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EchoCog/atomreason/core/atomspace"
)

func seedTransitiveChain(t *testing.T, as *atomspace.AtomSpace) (a, b, c atomspace.Atom) {
	t.Helper()
	a, _ = as.AddNode(atomspace.ConceptNode, "A", nil)
	b, _ = as.AddNode(atomspace.ConceptNode, "B", nil)
	c, _ = as.AddNode(atomspace.ConceptNode, "C", nil)
	tv := atomspace.TruthValue{Strength: 0.9, Confidence: 0.8}
	_, err := as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{a.Handle, b.Handle}, &tv)
	require.NoError(t, err)
	_, err = as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{b.Handle, c.Handle}, &tv)
	require.NoError(t, err)
	return a, b, c
}

func TestForwardChainerFindsTarget(t *testing.T) {
	as := atomspace.New(nil)
	a, _, c := seedTransitiveChain(t, as)

	registry := NewDefaultRegistry()
	chainer := NewForwardChainer(nil, as, registry)

	target := atomspace.Atom{Kind: atomspace.KindLink, Type: atomspace.InheritanceLink, Outgoing: []atomspace.Handle{a.Handle, c.Handle}}
	result := chainer.Run(context.Background(), ForwardOptions{MaxSteps: 10, Target: &target})

	assert.True(t, result.TargetFound)
	assert.Greater(t, result.AtomsAdded, 0)
}

func TestForwardChainerStopsAtFixpoint(t *testing.T) {
	as := atomspace.New(nil)
	seedTransitiveChain(t, as)

	registry := NewDefaultRegistry()
	chainer := NewForwardChainer(nil, as, registry)

	result := chainer.Run(context.Background(), ForwardOptions{MaxSteps: 20})
	assert.False(t, result.BudgetHit)
	assert.Less(t, result.Steps, 20)
}

func TestForwardChainerRespectsCancellation(t *testing.T) {
	as := atomspace.New(nil)
	seedTransitiveChain(t, as)

	registry := NewDefaultRegistry()
	chainer := NewForwardChainer(nil, as, registry)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := chainer.Run(ctx, ForwardOptions{MaxSteps: 10})
	assert.True(t, result.Cancelled)
}

func TestForwardChainerFitnessCutoffExcludesLowConfidence(t *testing.T) {
	as := atomspace.New(nil)
	a, _ := as.AddNode(atomspace.ConceptNode, "A", nil)
	b, _ := as.AddNode(atomspace.ConceptNode, "B", nil)
	c, _ := as.AddNode(atomspace.ConceptNode, "C", nil)
	low := atomspace.TruthValue{Strength: 0.9, Confidence: 0.01}
	_, err := as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{a.Handle, b.Handle}, &low)
	require.NoError(t, err)
	_, err = as.AddLink(atomspace.InheritanceLink, []atomspace.Handle{b.Handle, c.Handle}, &low)
	require.NoError(t, err)

	registry := NewDefaultRegistry()
	chainer := NewForwardChainer(nil, as, registry)

	result := chainer.Run(context.Background(), ForwardOptions{MaxSteps: 5, FitnessCutoff: 0.5})
	assert.Equal(t, 0, result.AtomsAdded, "fitness below cutoff should never be applied")
}

func TestCartesianEnumeratesAllCombinations(t *testing.T) {
	as := atomspace.New(nil)
	as.AddNode(atomspace.ConceptNode, "a", nil)
	as.AddNode(atomspace.ConceptNode, "b", nil)
	as.AddNode(atomspace.PredicateNode, "p", nil)

	combos := cartesian(as, []atomspace.Type{atomspace.ConceptNode, atomspace.PredicateNode})
	assert.Len(t, combos, 2)
}
