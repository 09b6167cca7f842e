package atomspace

import "math"

// TruthValue is an immutable (strength, confidence) pair, both in [0,1].
// Zero value is not meaningful on its own — use Default for the vacuous tv.
type TruthValue struct {
	Strength   float64
	Confidence float64
}

// Default is the vacuous truth value assigned to atoms created without one.
func Default() TruthValue {
	return TruthValue{Strength: 1.0, Confidence: 0.0}
}

// Clamp pins Strength and Confidence to [0,1] and replaces NaN with the
// vacuous truth value, per the numeric clamping rule in the error-handling
// design (no tv is ever stored or returned outside these bounds).
func (tv TruthValue) Clamp() TruthValue {
	if math.IsNaN(tv.Strength) || math.IsNaN(tv.Confidence) {
		return Default()
	}
	return TruthValue{
		Strength:   clamp01(tv.Strength),
		Confidence: clamp01(tv.Confidence),
	}
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// And implements PLN's min-strength, min-confidence conjunction.
func And(a, b TruthValue) TruthValue {
	return TruthValue{
		Strength:   math.Min(a.Strength, b.Strength),
		Confidence: math.Min(a.Confidence, b.Confidence),
	}.Clamp()
}

// Or implements PLN's max-strength, min-confidence disjunction.
func Or(a, b TruthValue) TruthValue {
	return TruthValue{
		Strength:   math.Max(a.Strength, b.Strength),
		Confidence: math.Min(a.Confidence, b.Confidence),
	}.Clamp()
}

// Not negates strength and carries confidence through unchanged.
func Not(a TruthValue) TruthValue {
	return TruthValue{
		Strength:   1 - a.Strength,
		Confidence: a.Confidence,
	}.Clamp()
}

// Equal is structural equality, used by tests and by rule-purity checks (P5).
func (tv TruthValue) Equal(other TruthValue) bool {
	return tv.Strength == other.Strength && tv.Confidence == other.Confidence
}

// Merge implements the §4.1 monotonic-confidence merge: the incoming tv
// replaces the stored one only if its confidence is strictly higher. The
// bool return is false when the update was ignored (the "Conflict" case in
// §7, which is not an error — lower-confidence updates are silently dropped).
func Merge(stored, incoming TruthValue) (TruthValue, bool) {
	incoming = incoming.Clamp()
	if incoming.Confidence > stored.Confidence {
		return incoming, true
	}
	return stored, false
}
