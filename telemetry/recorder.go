// Package telemetry instruments a lab.Lab run with Prometheus counters,
// gauges, and histograms, grounded on
// ducminhle1904-crypto-dca-bot/internal/monitoring/metrics.go.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aldermoss/genlab/lab"
)

// Recorder wraps the metric vectors one Lab run reports through. Scoped to
// its own prometheus.Registry (rather than the global default one) so a
// process can run more than one Lab concurrently, or a test suite can
// construct many Recorders without "duplicate metrics collector
// registration" panics.
type Recorder struct {
	registry *prometheus.Registry

	generationsTotal *prometheus.CounterVec
	bestScore        *prometheus.GaugeVec
	generationTime   *prometheus.HistogramVec
	runBestScore     prometheus.Gauge
}

// NewRecorder builds a Recorder with a fresh private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genlab_generations_total",
				Help: "Total number of generations processed per algo",
			},
			[]string{"algo_id"},
		),
		bestScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "genlab_best_score",
				Help: "Best score observed for an algo at the end of its most recent generation",
			},
			[]string{"algo_id"},
		),
		generationTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "genlab_generation_duration_seconds",
				Help:    "Wall-clock time spent per generation",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"algo_id"},
		),
		runBestScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "genlab_run_best_score",
			Help: "Best score returned by the most recently completed Start call",
		}),
	}
}

// Registry exposes the private registry so a caller can serve it over
// /metrics with promhttp.HandlerFor.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveGeneration records one algo's GenerationStats. Intended as the
// value for Lab.OnGenerationComplete.
func (r *Recorder) ObserveGeneration(algoID int, stats lab.GenerationStats) {
	label := strconv.Itoa(algoID)
	r.generationsTotal.WithLabelValues(label).Inc()
	r.bestScore.WithLabelValues(label).Set(stats.BestScore)
}

// ObserveRunComplete records the final score returned by Start.
func (r *Recorder) ObserveRunComplete(score float64) {
	r.runBestScore.Set(score)
}

// ObserveGenerationDuration records how long one generation took for algo
// algoID, in seconds.
func (r *Recorder) ObserveGenerationDuration(algoID int, seconds float64) {
	r.generationTime.WithLabelValues(strconv.Itoa(algoID)).Observe(seconds)
}
