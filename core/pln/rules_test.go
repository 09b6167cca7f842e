package pln

import (
	"math"
	"testing"

	"github.com/EchoCog/atomreason/core/atomspace"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestDeduceTVFormula(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 0.8, Confidence: 0.9}
	bc := atomspace.TruthValue{Strength: 0.5, Confidence: 0.6}

	got := deduceTV(ab, bc, 0.9)
	wantStrength := 0.8 * 0.5
	wantConfidence := 0.9 * 0.6 * 0.9

	if !approxEqual(got.Strength, wantStrength, 1e-9) {
		t.Errorf("deduceTV strength = %v, want %v", got.Strength, wantStrength)
	}
	if !approxEqual(got.Confidence, wantConfidence, 1e-9) {
		t.Errorf("deduceTV confidence = %v, want %v", got.Confidence, wantConfidence)
	}
}

func TestInvertTVGuardsZeroStrength(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 0, Confidence: 0.5}
	got := invertTV(ab, 0.8)
	if got.Strength != 0 {
		t.Errorf("invertTV with s=0 should yield strength 0, got %v", got.Strength)
	}
}

func TestInvertTVBayesSwap(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 1, Confidence: 0.5}
	got := invertTV(ab, 1.0)
	if !approxEqual(got.Strength, 1, 1e-9) {
		t.Errorf("invertTV(s=1) should stay 1, got %v", got.Strength)
	}
}

func TestModusPonensTVMixesBackground(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 0.9, Confidence: 0.8}
	a := atomspace.TruthValue{Strength: 0.6, Confidence: 0.7}

	got := modusPonensTV(ab, a, 0.9, 0.2)
	wantStrength := 0.9*0.6 + 0.2*(1-0.6)
	if !approxEqual(got.Strength, wantStrength, 1e-9) {
		t.Errorf("modusPonensTV strength = %v, want %v", got.Strength, wantStrength)
	}
	wantConfidence := math.Min(0.8, 0.7) * 0.9
	if !approxEqual(got.Confidence, wantConfidence, 1e-9) {
		t.Errorf("modusPonensTV confidence = %v, want %v", got.Confidence, wantConfidence)
	}
}

func TestAbductionTVGuardsZeroDenominator(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 0, Confidence: 0.5}
	cb := atomspace.TruthValue{Strength: 1, Confidence: 0.5}
	got := abductionTV(ab, cb, 0.6)
	if got.Strength != 0 {
		t.Errorf("abductionTV with zero denominator should yield strength 0, got %v", got.Strength)
	}
}

func TestAbductionTVFormula(t *testing.T) {
	ab := atomspace.TruthValue{Strength: 0.7, Confidence: 0.8}
	cb := atomspace.TruthValue{Strength: 0.6, Confidence: 0.5}

	got := abductionTV(ab, cb, 0.6)
	num := 0.7 * 0.6
	den := num + (1-0.7)*(1-0.6)
	want := num / den
	if !approxEqual(got.Strength, want, 1e-9) {
		t.Errorf("abductionTV strength = %v, want %v", got.Strength, want)
	}
}

func TestDecomposeRejectsWrongArityOrType(t *testing.T) {
	node := atomspace.Atom{Kind: atomspace.KindNode, Type: atomspace.ConceptNode}
	if _, ok := decompose(node); ok {
		t.Error("decompose should reject a node")
	}

	link := atomspace.Atom{Kind: atomspace.KindLink, Type: atomspace.SimilarityLink, Outgoing: []atomspace.Handle{1, 2}}
	if _, ok := decompose(link); ok {
		t.Error("decompose should reject a non-InheritanceLink")
	}
}
