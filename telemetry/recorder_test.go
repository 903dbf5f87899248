package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aldermoss/genlab/lab"
)

func TestObserveGenerationUpdatesCounterAndGauge(t *testing.T) {
	r := NewRecorder()
	r.ObserveGeneration(0, lab.GenerationStats{AlgoID: 0, Generation: 1, BestScore: 4.5})
	r.ObserveGeneration(0, lab.GenerationStats{AlgoID: 0, Generation: 2, BestScore: 2.0})

	if got := testutil.ToFloat64(r.generationsTotal.WithLabelValues("0")); got != 2 {
		t.Fatalf("expected generations_total=2 after two observations, got %v", got)
	}
	if got := testutil.ToFloat64(r.bestScore.WithLabelValues("0")); got != 2.0 {
		t.Fatalf("expected best_score gauge to track the latest observation, got %v", got)
	}
}

func TestObserveRunCompleteSetsRunBestScore(t *testing.T) {
	r := NewRecorder()
	r.ObserveRunComplete(0.125)
	if got := testutil.ToFloat64(r.runBestScore); got != 0.125 {
		t.Fatalf("expected run best score 0.125, got %v", got)
	}
}

func TestTwoRecordersDoNotCollideOnRegistration(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	if a.Registry() == b.Registry() {
		t.Fatalf("expected each Recorder to own a private registry")
	}
	a.ObserveGeneration(1, lab.GenerationStats{BestScore: 1})
	b.ObserveGeneration(1, lab.GenerationStats{BestScore: 2})
}
