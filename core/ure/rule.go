// Package ure implements the generic, rule-driven Unified Rule Engine of
// spec.md §4.4: a heterogeneous rule registry plus Forward, Backward (BIT),
// and adaptive Mixed drivers with inference metrics.
package ure

import (
	"context"

	"github.com/EchoCog/atomreason/core/atomspace"
)

// Rule is the capability set a URE rule value must implement (Design Notes:
// "Rule polymorphism" — a value, not a nominal hierarchy). Apply never
// panics: a structurally ill-formed premise list returns (nil, nil), the
// "no derivation" outcome of §7, never an error that would poison the pass.
type Rule interface {
	Name() string
	Premises() []atomspace.Type
	Conclusion() atomspace.Type
	AppliesTo(premises []atomspace.Atom) bool
	Apply(ctx context.Context, premises []atomspace.Atom, as *atomspace.AtomSpace) (*atomspace.Atom, error)
	Fitness(premises []atomspace.Atom) float64
}

// BackwardRule is implemented by rules the backward chainer can invert: given
// a desired conclusion, propose concrete premise combinations ("subgoals")
// that would let Apply produce it. Not every Rule need support this — a rule
// without it simply never contributes a BIT expansion.
type BackwardRule interface {
	Rule
	// Invert returns candidate premise-atom combinations (each matching the
	// arity and order of Premises()) that would make Apply produce an atom
	// with goal's identity, given the AtomSpace's current contents. ok is
	// false when the rule has no idea how to produce goal at all.
	Invert(as *atomspace.AtomSpace, goal atomspace.Atom) (combinations [][]atomspace.Atom, ok bool)
}

// Registry is the heterogeneous collection of Rule values the engine
// drivers search, in registration order — the "single canonical path"
// Design Notes' Open Question (b) calls for.
type Registry struct {
	rules []Rule
}

// NewRegistry returns a Registry seeded with rules, in order.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: append([]Rule(nil), rules...)}
}

// Register appends a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// NewDefaultRegistry returns a Registry seeded with the rules this package
// ships (currently TransitivityRule). Callers with a richer domain register
// additional rules with Register.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewTransitivityRule())
}

// Rules returns the registry's rules in registration order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}
