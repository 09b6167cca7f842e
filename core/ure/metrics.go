package ure

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// InferenceMetrics is the per-run record spec.md §4.4 requires the adaptive
// engine to keep. RunID disambiguates concurrent or historical runs in logs
// (mirrors the orchestration layer's uuid-keyed records in the source
// corpus).
type InferenceMetrics struct {
	RunID                 string
	Strategy              Strategy
	AtomsGenerated         int
	ReasoningTime          time.Duration
	GoalAchieved           bool
	ConfidenceImprovement float64
}

func newInferenceMetrics(strategy Strategy) InferenceMetrics {
	return InferenceMetrics{RunID: uuid.New().String(), Strategy: strategy}
}

// EfficiencyScore implements spec.md §4.4's formula:
//
//	(atoms_generated / reasoning_time) · (1 + α·goal_achieved) · (1 + β·confidence_improvement)
//
// and is zero when ReasoningTime is zero, exactly as specified.
func (m InferenceMetrics) EfficiencyScore(alpha, beta float64) float64 {
	seconds := m.ReasoningTime.Seconds()
	if seconds <= 0 {
		return 0
	}
	achieved := 0.0
	if m.GoalAchieved {
		achieved = 1.0
	}
	rate := float64(m.AtomsGenerated) / seconds
	return rate * (1 + alpha*achieved) * (1 + beta*m.ConfidenceImprovement)
}

// metricsHistory accumulates InferenceMetrics per strategy so AdaptiveChain
// can weigh past performance, per spec.md §4.4.
type metricsHistory struct {
	byStrategy map[Strategy][]InferenceMetrics
}

func newMetricsHistory() *metricsHistory {
	return &metricsHistory{byStrategy: make(map[Strategy][]InferenceMetrics)}
}

func (h *metricsHistory) record(m InferenceMetrics) {
	h.byStrategy[m.Strategy] = append(h.byStrategy[m.Strategy], m)
}

// averageEfficiency returns the mean EfficiencyScore across every recorded
// run of strategy, or 0 if none exist yet. Uses gonum/floats to aggregate
// the score series rather than a hand-rolled summation loop.
func (h *metricsHistory) averageEfficiency(strategy Strategy, alpha, beta float64) float64 {
	runs := h.byStrategy[strategy]
	if len(runs) == 0 {
		return 0
	}
	scores := make([]float64, len(runs))
	for i, m := range runs {
		scores[i] = m.EfficiencyScore(alpha, beta)
	}
	return floats.Sum(scores) / float64(len(scores))
}
