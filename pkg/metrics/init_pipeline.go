package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcode_runs_total",
			Help: "Total number of clustering runs",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcode_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0},
		},
		[]string{"stage"},
	)

	r.SeedsExpanded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "mcode_seeds_expanded_total",
			Help: "Total number of seed vertices expanded",
		},
	)

	r.CandidatesEmitted = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "mcode_candidates_emitted_total",
			Help: "Total number of raw candidate complexes emitted",
		},
	)

	r.ComplexesFound = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "mcode_complexes_found_total",
			Help: "Total number of complexes surviving post-processing",
		},
	)

	r.ComplexScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcode_complex_score",
			Help:    "Score distribution of emitted complexes",
			Buckets: []float64{2, 3, 4, 6, 10, 20, 50},
		},
	)

	r.ComplexSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcode_complex_size_vertices",
			Help:    "Member count distribution of emitted complexes",
			Buckets: []float64{2, 3, 5, 10, 25, 50, 100},
		},
	)
}
