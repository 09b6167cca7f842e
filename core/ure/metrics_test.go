package ure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyScoreZeroOnNoTime(t *testing.T) {
	m := InferenceMetrics{AtomsGenerated: 5, ReasoningTime: 0}
	assert.Equal(t, 0.0, m.EfficiencyScore(0.5, 1.0))
}

func TestEfficiencyScoreFormula(t *testing.T) {
	m := InferenceMetrics{
		AtomsGenerated:        10,
		ReasoningTime:         2 * time.Second,
		GoalAchieved:          true,
		ConfidenceImprovement: 0.2,
	}
	got := m.EfficiencyScore(0.5, 1.0)
	want := (10.0 / 2.0) * (1 + 0.5*1) * (1 + 1.0*0.2)
	assert.InDelta(t, want, got, 1e-9)
}

func TestMetricsHistoryAveragesPerStrategy(t *testing.T) {
	h := newMetricsHistory()
	h.record(InferenceMetrics{Strategy: ForwardOnly, AtomsGenerated: 10, ReasoningTime: time.Second})
	h.record(InferenceMetrics{Strategy: ForwardOnly, AtomsGenerated: 20, ReasoningTime: time.Second})
	h.record(InferenceMetrics{Strategy: BackwardOnly, AtomsGenerated: 100, ReasoningTime: time.Second})

	avg := h.averageEfficiency(ForwardOnly, 0, 0)
	assert.InDelta(t, 15.0, avg, 1e-9)

	assert.Equal(t, 0.0, h.averageEfficiency(MixedForwardFirst, 0, 0), "unrecorded strategy should average to zero")
}
